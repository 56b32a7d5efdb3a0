package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/admin"
	"github.com/rpupo63/portfolio-site/client"
	"github.com/rpupo63/portfolio-site/models"
)

type write struct {
	method     string
	collection string
	id         uuid.UUID
	body       any
}

// memAPI is an in-memory admin.API.
type memAPI struct {
	mu         sync.Mutex
	categories []models.Category
	users      []models.User
	settings   *models.Settings
	writes     []write
}

func (a *memAPI) Categories(context.Context) ([]models.Category, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Category(nil), a.categories...), nil
}
func (a *memAPI) Clients(context.Context) ([]models.Client, error)   { return nil, nil }
func (a *memAPI) Projects(context.Context) ([]models.Project, error) { return nil, nil }
func (a *memAPI) Testimonials(context.Context, bool) ([]models.Testimonial, error) {
	return nil, nil
}
func (a *memAPI) Settings(context.Context) (*models.Settings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings, nil
}
func (a *memAPI) Users(context.Context) ([]models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.User(nil), a.users...), nil
}
func (a *memAPI) Create(_ context.Context, collection string, body any) error {
	a.record(write{method: "POST", collection: collection, body: body})
	return nil
}
func (a *memAPI) Update(_ context.Context, collection string, id uuid.UUID, body any) error {
	a.record(write{method: "PATCH", collection: collection, id: id, body: body})
	return nil
}
func (a *memAPI) Delete(_ context.Context, collection string, id uuid.UUID) error {
	a.record(write{method: "DELETE", collection: collection, id: id})
	return nil
}
func (a *memAPI) Seed(context.Context) (client.SeedResult, error) {
	a.record(write{method: "POST", collection: "seed"})
	return client.SeedResult{}, nil
}
func (a *memAPI) VerifyAdmin(_ context.Context, id uuid.UUID, grant bool) (models.User, error) {
	a.record(write{method: "PATCH", collection: "users", id: id, body: grant})
	return models.User{ID: id}, nil
}

func (a *memAPI) record(w write) {
	a.mu.Lock()
	a.writes = append(a.writes, w)
	a.mu.Unlock()
}

func (a *memAPI) recorded() []write {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]write(nil), a.writes...)
}

type staticAuth bool

func (s staticAuth) IsAdmin() bool { return bool(s) }

func newTestModel(t *testing.T, api *memAPI, isAdmin bool) Model {
	t.Helper()
	ctrl := admin.New(api, staticAuth(isAdmin))
	m := New(context.Background(), ctrl)
	m = drain(t, m, m.Init())
	return m
}

// drain runs cmd and feeds its message back into the model until no
// command is left.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return m
		}
		next, nextCmd := m.Update(msg)
		m = next.(Model)
		cmd = nextCmd
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, cmd := m.Update(msg)
		m = drain(t, next.(Model), cmd)
	}
	return m
}

func TestLockedView(t *testing.T) {
	t.Parallel()
	api := &memAPI{}
	m := newTestModel(t, api, false)

	if !strings.Contains(m.View(), "Admin locked") {
		t.Errorf("locked view missing placeholder:\n%s", m.View())
	}
	m = press(t, m, "n", "s", "d")
	if m.mode != modeBrowse {
		t.Errorf("mode = %v, want browse", m.mode)
	}
	if got := api.recorded(); len(got) != 0 {
		t.Errorf("locked panel issued writes: %+v", got)
	}
}

func TestTabsIncludeUsersForAdmins(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, &memAPI{}, true)

	tabs := m.tabs()
	if got := tabs[len(tabs)-1]; got != tabUsers {
		t.Errorf("last tab = %q, want users", got)
	}
	m = press(t, m, "shift+tab")
	if got := m.currentTab(); got != tabUsers {
		t.Errorf("shift+tab from first tab = %q, want users", got)
	}
	m = press(t, m, "tab")
	if got := m.currentTab(); got != tabCategories {
		t.Errorf("tab wraps to %q, want categories", got)
	}
}

func TestCreateCategoryThroughForm(t *testing.T) {
	t.Parallel()
	api := &memAPI{}
	m := newTestModel(t, api, true)

	m = press(t, m, "n")
	if m.mode != modeForm {
		t.Fatalf("mode = %v, want form", m.mode)
	}
	m = press(t, m, "uiux", "tab", "Product Design", "tab", "Apps", "enter")

	writes := api.recorded()
	if len(writes) != 1 {
		t.Fatalf("got %d writes, want 1", len(writes))
	}
	w := writes[0]
	if w.method != "POST" || w.collection != "categories" {
		t.Errorf("write = %s %s", w.method, w.collection)
	}
	body := w.body.(map[string]any)
	if body["key"] != "uiux" || body["title"] != "Product Design" || body["description"] != "Apps" {
		t.Errorf("body = %v", body)
	}
	if !strings.Contains(m.View(), "Saved successfully") {
		t.Errorf("view missing success message:\n%s", m.View())
	}
}

func TestDeleteAsksFirst(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	api := &memAPI{categories: []models.Category{{ID: id, Key: "uiux", Title: "Product Design"}}}
	m := newTestModel(t, api, true)

	m = press(t, m, "d")
	if !strings.Contains(m.View(), "Delete this item?") {
		t.Errorf("confirm prompt missing:\n%s", m.View())
	}
	m = press(t, m, "n")
	if got := api.recorded(); len(got) != 0 {
		t.Fatalf("declined delete issued writes: %+v", got)
	}

	m = press(t, m, "d", "y")
	writes := api.recorded()
	if len(writes) != 1 || writes[0].method != "DELETE" || writes[0].id != id {
		t.Errorf("writes = %+v", writes)
	}
}

func TestSettingsFormPostsThenPatches(t *testing.T) {
	t.Parallel()
	api := &memAPI{}
	m := newTestModel(t, api, true)

	m = press(t, m, "tab", "tab", "tab", "tab")
	if got := m.currentTab(); got != tabSettings {
		t.Fatalf("tab = %q, want settings", got)
	}
	m = press(t, m, "e", "enter")
	writes := api.recorded()
	if len(writes) != 1 || writes[0].method != "POST" || writes[0].collection != "settings" {
		t.Fatalf("writes = %+v", writes)
	}

	stored := models.DefaultSettings()
	stored.ID = uuid.New()
	api.mu.Lock()
	api.settings = &stored
	api.mu.Unlock()
	m = press(t, m, "r", "e", "enter")

	writes = api.recorded()
	if len(writes) != 2 || writes[1].method != "PATCH" || writes[1].id != stored.ID {
		t.Errorf("writes = %+v", writes)
	}
}

func TestSettingsFormRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	api := &memAPI{}
	m := newTestModel(t, api, true)

	m = press(t, m, "tab", "tab", "tab", "tab", "e", "tab", "tab")
	// Replace the glow value with something out of range.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	m = next.(Model)
	m = press(t, m, "7", "enter")

	if m.mode != modeForm {
		t.Errorf("form closed on invalid input")
	}
	if !strings.Contains(m.View(), "glow_intensity") {
		t.Errorf("form error missing:\n%s", m.View())
	}
	if got := api.recorded(); len(got) != 0 {
		t.Errorf("invalid settings were sent: %+v", got)
	}
}

func TestTestimonialStatusCycles(t *testing.T) {
	t.Parallel()
	api := &memAPI{}
	m := newTestModel(t, api, true)

	m = press(t, m, "tab", "tab", "tab", "n")
	m = press(t, m, "Ada", "tab", "tab", "tab", "tab", "Great work", "tab")
	// Typing does not change a choice field.
	m = press(t, m, "x")
	if !strings.Contains(m.View(), "‹ approved ›") {
		t.Fatalf("status should start approved:\n%s", m.View())
	}
	m = press(t, m, "right", "left", "left", "enter")

	writes := api.recorded()
	if len(writes) != 1 || writes[0].collection != "testimonials" {
		t.Fatalf("writes = %+v", writes)
	}
	body := writes[0].body.(map[string]any)
	if body["status"] != "rejected" || body["name"] != "Ada" {
		t.Errorf("body = %v", body)
	}
}

func TestTestimonialFormRejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	f := newForm("Testimonial", tabTestimonials, uuid.New(), testimonialFields(models.Testimonial{
		ID: uuid.New(), Name: "Ada", Quote: "Great", Rating: 5,
	}))
	if _, err := f.body(); err == nil || !strings.Contains(err.Error(), "Status") {
		t.Errorf("body() err = %v, want a Status error", err)
	}

	f.focus = len(f.fields) - 2
	f.update(tea.KeyMsg{Type: tea.KeyRight})
	body, err := f.body()
	if err != nil {
		t.Fatalf("body() after cycling: %v", err)
	}
	if body["status"] != "approved" {
		t.Errorf("status = %v, want approved", body["status"])
	}
}

func TestVerifyAdminOnUsersTab(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	api := &memAPI{users: []models.User{{ID: id, Email: "new@example.com"}}}
	m := newTestModel(t, api, true)

	m = press(t, m, "shift+tab", "v")
	writes := api.recorded()
	if len(writes) != 1 || writes[0].collection != "users" || writes[0].id != id || writes[0].body != true {
		t.Errorf("writes = %+v", writes)
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, &memAPI{}, true)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q did not quit")
	}
}
