// Package tui is the terminal admin panel: tabbed lists of the site
// content with forms for create and edit.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/admin"
	"github.com/rpupo63/portfolio-site/models"
)

const (
	tabCategories   = "categories"
	tabClients      = "clients"
	tabProjects     = "projects"
	tabTestimonials = "testimonials"
	tabSettings     = "settings"
	tabUsers        = "users"
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirm
)

// ChangedMsg tells the model the controller state moved.
type ChangedMsg struct{}

// SessionMsg tells the model the sign in changed and data must be
// reloaded.
type SessionMsg struct{}

type doneMsg struct {
	err error
}

type row struct {
	id    uuid.UUID
	label string
}

type Model struct {
	ctx   context.Context
	ctrl  *admin.Controller
	keys  KeyMap
	theme theme

	tab     int
	cursors map[string]int
	mode    mode
	form    *form
	pending uuid.UUID
	width   int
}

func New(ctx context.Context, ctrl *admin.Controller) Model {
	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		keys:    DefaultKeyMap,
		theme:   defaultTheme(),
		cursors: make(map[string]int),
	}
}

func (m Model) Init() tea.Cmd {
	return m.run(m.ctrl.FetchAll)
}

func (m Model) tabs() []string {
	tabs := []string{tabCategories, tabClients, tabProjects, tabTestimonials, tabSettings}
	if !m.ctrl.Locked() {
		tabs = append(tabs, tabUsers)
	}
	return tabs
}

func (m Model) currentTab() string {
	tabs := m.tabs()
	return tabs[min(m.tab, len(tabs)-1)]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case ChangedMsg, doneMsg:
		return m, nil
	case SessionMsg:
		return m, m.run(m.ctrl.FetchAll)
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.handleFormKeys(msg)
		case modeConfirm:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}
	}
	return m, nil
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Refresh) {
		return m, m.run(m.ctrl.FetchAll)
	}
	if m.ctrl.Locked() {
		return m, nil
	}

	tab := m.currentTab()
	rows := m.rows(tab, m.ctrl.Snapshot())
	cursor := min(m.cursors[tab], max(len(rows)-1, 0))

	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % len(m.tabs())
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab - 1 + len(m.tabs())) % len(m.tabs())
	case key.Matches(msg, m.keys.Up):
		m.cursors[tab] = max(cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursors[tab] = min(cursor+1, max(len(rows)-1, 0))
	case key.Matches(msg, m.keys.New):
		m.openForm(tab, -1)
	case key.Matches(msg, m.keys.Edit):
		m.openForm(tab, cursor)
	case key.Matches(msg, m.keys.Delete):
		if isCollection(tab) && len(rows) > 0 {
			m.pending = rows[cursor].id
			m.mode = modeConfirm
		}
	case key.Matches(msg, m.keys.Seed):
		return m, m.run(m.ctrl.Seed)
	case key.Matches(msg, m.keys.Verify):
		if tab == tabUsers && len(rows) > 0 {
			id := rows[cursor].id
			return m, m.run(func(ctx context.Context) error { return m.ctrl.VerifyAdmin(ctx, id) })
		}
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeBrowse
		collection, id := admin.Collection(m.currentTab()), m.pending
		m.pending = uuid.Nil
		return m, m.run(func(ctx context.Context) error { return m.ctrl.Remove(ctx, collection, id) })
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.pending = uuid.Nil
	}
	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.form = nil
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.form.move(1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.form.move(-1)
		return m, nil
	case tea.KeyEnter:
		return m.submitForm()
	}
	return m, m.form.update(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	body, err := f.body()
	if err != nil {
		f.err = err.Error()
		return m, nil
	}

	var call func(ctx context.Context) error
	switch {
	case f.tab == tabSettings:
		payload := settingsFromBody(body)
		if err := payload.Validate(); err != nil {
			f.err = err.Error()
			return m, nil
		}
		call = func(ctx context.Context) error { return m.ctrl.SaveSettings(ctx, payload) }
	case f.id == uuid.Nil:
		call = func(ctx context.Context) error { return m.ctrl.Create(ctx, admin.Collection(f.tab), body) }
	default:
		id := f.id
		call = func(ctx context.Context) error { return m.ctrl.Update(ctx, admin.Collection(f.tab), id, body) }
	}

	m.mode = modeBrowse
	m.form = nil
	return m, m.run(call)
}

// openForm opens an empty form when index is negative and the record at
// index otherwise.
func (m *Model) openForm(tab string, index int) {
	snap := m.ctrl.Snapshot()
	var (
		specs []fieldSpec
		id    uuid.UUID
		title string
	)
	switch tab {
	case tabCategories:
		var c models.Category
		if index >= 0 && index < len(snap.Categories) {
			c = snap.Categories[index]
		}
		id, specs, title = c.ID, categoryFields(c), "Category"
	case tabClients:
		var c models.Client
		if index >= 0 && index < len(snap.Clients) {
			c = snap.Clients[index]
		}
		id, specs, title = c.ID, clientFields(c), "Client"
	case tabProjects:
		var p models.Project
		if index >= 0 && index < len(snap.Projects) {
			p = snap.Projects[index]
		}
		id, specs, title = p.ID, projectFields(p), "Project"
	case tabTestimonials:
		var t models.Testimonial
		if index >= 0 && index < len(snap.Testimonials) {
			t = snap.Testimonials[index]
		}
		id, specs, title = t.ID, testimonialFields(t), "Testimonial"
	case tabSettings:
		id, specs, title = snap.Settings.ID, settingsFields(snap.Settings), "Settings"
	default:
		return
	}

	if tab != tabSettings && index >= 0 && id == uuid.Nil {
		return
	}
	if id == uuid.Nil {
		title = "New " + strings.ToLower(title)
	} else {
		title = "Edit " + strings.ToLower(title)
	}
	m.form = newForm(title, tab, id, specs)
	m.mode = modeForm
}

// run executes a controller call off the update loop.
func (m Model) run(call func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{err: call(ctx)}
	}
}

func (m Model) rows(tab string, snap admin.Snapshot) []row {
	var rows []row
	switch tab {
	case tabCategories:
		for _, c := range snap.Categories {
			rows = append(rows, row{c.ID, fmt.Sprintf("%-12s %s", c.Key, c.Title)})
		}
	case tabClients:
		for _, c := range snap.Clients {
			rows = append(rows, row{c.ID, fmt.Sprintf("%-24s %s", c.Name, c.CategoryKey)})
		}
	case tabProjects:
		for _, p := range snap.Projects {
			rows = append(rows, row{p.ID, fmt.Sprintf("%-32s %s", p.Title, p.ClientName)})
		}
	case tabTestimonials:
		for _, t := range snap.Testimonials {
			rows = append(rows, row{t.ID, fmt.Sprintf("%-20s %-10s %s", t.Name, t.Status, strings.Repeat("★", models.ClampRating(t.Rating)))})
		}
	case tabUsers:
		for _, u := range snap.Users {
			flags := ""
			if u.IsAdmin {
				flags += " admin"
			}
			if u.IsVerified {
				flags += " verified"
			}
			rows = append(rows, row{u.ID, fmt.Sprintf("%-32s%s", u.Email, flags)})
		}
	}
	return rows
}

func isCollection(tab string) bool {
	switch tab {
	case tabCategories, tabClients, tabProjects, tabTestimonials:
		return true
	}
	return false
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.title.Render("Portfolio admin"))
	b.WriteString("\n\n")

	snap := m.ctrl.Snapshot()
	if snap.Locked {
		b.WriteString(m.theme.locked.Render("Admin locked.\nSign in as a verified admin with `portfolioctl login`."))
		b.WriteString("\n\n")
		b.WriteString(m.theme.help.Render("r refresh · q quit"))
		return b.String()
	}

	current := m.currentTab()
	for _, tab := range m.tabs() {
		if tab == current {
			b.WriteString(m.theme.activeTab.Render(tab))
		} else {
			b.WriteString(m.theme.tab.Render(tab))
		}
	}
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.form.view(m.theme))
		b.WriteString("\n")
		b.WriteString(m.theme.help.Render("tab next field · enter save · esc cancel"))
	case modeConfirm:
		b.WriteString(m.theme.errorText.Render(admin.DeletePrompt + " (y/n)"))
	default:
		b.WriteString(m.browseView(current, snap))
	}

	b.WriteString("\n\n")
	switch {
	case snap.Loading:
		b.WriteString(m.theme.faint.Render("Loading…"))
	case strings.HasPrefix(snap.Message, "Error") || strings.HasPrefix(snap.Message, "Failed"):
		b.WriteString(m.theme.errorText.Render(snap.Message))
	case snap.Message != "":
		b.WriteString(m.theme.message.Render(snap.Message))
	}
	return b.String()
}

func (m Model) browseView(tab string, snap admin.Snapshot) string {
	var b strings.Builder
	if tab == tabSettings {
		s := snap.Settings
		fmt.Fprintf(&b, "Marquee A   %gs\nMarquee B   %gs\nGlow        %g\nParallax    %g\n", s.MarqueeASeconds, s.MarqueeBSeconds, s.GlowIntensity, s.ParallaxIntensity)
		if !s.Saved() {
			b.WriteString(m.theme.faint.Render("(defaults, not saved yet)"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.theme.help.Render("e edit · tab switch · q quit"))
		return b.String()
	}

	rows := m.rows(tab, snap)
	if len(rows) == 0 {
		b.WriteString(m.theme.faint.Render("Nothing here yet."))
		b.WriteString("\n")
	}
	cursor := min(m.cursors[tab], max(len(rows)-1, 0))
	for i, r := range rows {
		if i == cursor {
			b.WriteString(m.theme.selected.Render("› " + r.label))
		} else {
			b.WriteString("  " + r.label)
		}
		b.WriteString("\n")
	}

	help := "n new · e edit · d delete · s seed · r refresh · tab switch · q quit"
	if tab == tabUsers {
		help = "v verify admin · r refresh · tab switch · q quit"
	}
	b.WriteString("\n")
	b.WriteString(m.theme.help.Render(help))
	return b.String()
}
