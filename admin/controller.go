// Package admin holds the state behind the admin panel: the collections
// being edited, the status message, and the fetch/mutate/re-sync cycle.
package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/client"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Collection string

const (
	Categories   Collection = "categories"
	Clients      Collection = "clients"
	Projects     Collection = "projects"
	Testimonials Collection = "testimonials"
)

// Collections lists the editable collections in tab order.
var Collections = []Collection{Categories, Clients, Projects, Testimonials}

const (
	msgLoadFailed  = "Failed to load data"
	msgSaved       = "Saved successfully"
	msgUpdated     = "Updated"
	msgDeleted     = "Deleted"
	msgSeeded      = "Sample data loaded"
	msgSettings    = "Settings saved"
	msgRolesUpdate = "User updated"
)

// DeletePrompt is the question asked before every delete.
const DeletePrompt = "Delete this item?"

// API is the part of the REST client the controller uses.
type API interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Clients(ctx context.Context) ([]models.Client, error)
	Projects(ctx context.Context) ([]models.Project, error)
	Testimonials(ctx context.Context, includeAll bool) ([]models.Testimonial, error)
	Settings(ctx context.Context) (*models.Settings, error)
	Users(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, collection string, body any) error
	Update(ctx context.Context, collection string, id uuid.UUID, body any) error
	Delete(ctx context.Context, collection string, id uuid.UUID) error
	Seed(ctx context.Context) (client.SeedResult, error)
	VerifyAdmin(ctx context.Context, id uuid.UUID, grant bool) (models.User, error)
}

// Authorizer reports whether the cached session may edit. It is only used
// to decide what to show and fetch.
type Authorizer interface {
	IsAdmin() bool
}

// Confirmer asks the user a yes/no question.
type Confirmer func(prompt string) bool

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	Categories   []models.Category
	Clients      []models.Client
	Projects     []models.Project
	Testimonials []models.Testimonial
	Users        []models.User
	Settings     models.Settings
	Loading      bool
	Message      string
	Locked       bool
}

type Controller struct {
	api     API
	auth    Authorizer
	confirm Confirmer
	logger  zerolog.Logger

	mu       sync.Mutex
	state    Snapshot
	onChange func()
}

type Option func(*Controller)

func WithConfirmer(confirm Confirmer) Option {
	return func(c *Controller) {
		c.confirm = confirm
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(api API, auth Authorizer, opts ...Option) *Controller {
	c := &Controller{
		api:     api,
		auth:    auth,
		confirm: func(string) bool { return true },
		logger:  log.With().Str("component", "admin").Logger(),
		state:   Snapshot{Settings: models.DefaultSettings()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange sets a callback fired after every state transition.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Locked is true unless the session belongs to a verified admin.
func (c *Controller) Locked() bool {
	return c.auth == nil || !c.auth.IsAdmin()
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Loading
}

func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Message
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	s := c.state
	c.mu.Unlock()
	s.Locked = c.Locked()
	return s
}

// FetchAll reloads every collection and the settings in parallel. Any
// failure leaves the previous state untouched.
func (c *Controller) FetchAll(ctx context.Context) error {
	admin := !c.Locked()

	var (
		categories   []models.Category
		clients      []models.Client
		projects     []models.Project
		testimonials []models.Testimonial
		settings     *models.Settings
		users        []models.User
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { categories, err = c.api.Categories(ctx); return })
	g.Go(func() (err error) { clients, err = c.api.Clients(ctx); return })
	g.Go(func() (err error) { projects, err = c.api.Projects(ctx); return })
	g.Go(func() (err error) { testimonials, err = c.api.Testimonials(ctx, admin); return })
	g.Go(func() (err error) { settings, err = c.api.Settings(ctx); return })
	if admin {
		g.Go(func() (err error) { users, err = c.api.Users(ctx); return })
	}

	if err := g.Wait(); err != nil {
		c.logger.Error().Err(err).Msg("Failed to load admin data")
		c.update(func(s *Snapshot) { s.Message = msgLoadFailed })
		return err
	}

	c.update(func(s *Snapshot) {
		s.Categories = categories
		s.Clients = clients
		s.Projects = projects
		s.Testimonials = testimonials
		s.Users = users
		s.Settings = mergeSettings(s.Settings, settings)
	})
	return nil
}

func (c *Controller) Create(ctx context.Context, collection Collection, body any) error {
	return c.mutate(ctx, msgSaved, func() error {
		return c.api.Create(ctx, string(collection), body)
	})
}

func (c *Controller) Update(ctx context.Context, collection Collection, id uuid.UUID, body any) error {
	return c.mutate(ctx, msgUpdated, func() error {
		return c.api.Update(ctx, string(collection), id, body)
	})
}

// Remove deletes a record after the confirmer agrees. A declined prompt
// returns nil without touching the API.
func (c *Controller) Remove(ctx context.Context, collection Collection, id uuid.UUID) error {
	if !c.confirm(DeletePrompt) {
		return nil
	}
	return c.mutate(ctx, msgDeleted, func() error {
		return c.api.Delete(ctx, string(collection), id)
	})
}

func (c *Controller) Seed(ctx context.Context) error {
	return c.mutate(ctx, msgSeeded, func() error {
		_, err := c.api.Seed(ctx)
		return err
	})
}

// SaveSettings creates the settings record when none is known yet and
// updates it otherwise.
func (c *Controller) SaveSettings(ctx context.Context, payload models.Settings) error {
	c.mu.Lock()
	id := c.state.Settings.ID
	c.mu.Unlock()

	return c.mutate(ctx, msgSettings, func() error {
		if id == uuid.Nil {
			return c.api.Create(ctx, "settings", settingsBody(payload))
		}
		return c.api.Update(ctx, "settings", id, settingsBody(payload))
	})
}

// VerifyAdmin grants a user both the admin and verified flags.
func (c *Controller) VerifyAdmin(ctx context.Context, userID uuid.UUID) error {
	return c.mutate(ctx, msgRolesUpdate, func() error {
		_, err := c.api.VerifyAdmin(ctx, userID, true)
		return err
	})
}

// mutate runs call, then on success re-syncs everything exactly once. The
// success message is shown even if the re-sync fails, since the change
// itself went through.
func (c *Controller) mutate(ctx context.Context, success string, call func() error) error {
	c.update(func(s *Snapshot) {
		s.Loading = true
		s.Message = ""
	})
	defer c.update(func(s *Snapshot) { s.Loading = false })

	if err := call(); err != nil {
		c.update(func(s *Snapshot) { s.Message = "Error: " + detail(err) })
		return err
	}

	err := c.FetchAll(ctx)
	c.update(func(s *Snapshot) { s.Message = success })
	return err
}

func (c *Controller) update(fn func(s *Snapshot)) {
	c.mu.Lock()
	fn(&c.state)
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// mergeSettings lays a stored record over the current values. With
// nothing stored the current values, without an id, are kept.
func mergeSettings(current models.Settings, stored *models.Settings) models.Settings {
	if stored == nil {
		return current
	}
	merged := *stored
	if merged.Key == "" {
		merged.Key = models.SettingsKey
	}
	return merged
}

// settingsBody sends only the editable fields.
func settingsBody(s models.Settings) map[string]any {
	return map[string]any{
		"key":                models.SettingsKey,
		"marquee_a_seconds":  s.MarqueeASeconds,
		"marquee_b_seconds":  s.MarqueeBSeconds,
		"glow_intensity":     s.GlowIntensity,
		"parallax_intensity": s.ParallaxIntensity,
	}
}

func detail(err error) string {
	var apiErr *client.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}
