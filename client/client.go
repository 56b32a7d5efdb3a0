// Package client is a typed client for the portfolio JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rs/zerolog"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 10 << 20

// TokenSource returns the bearer token to send, or "" for none.
type TokenSource func() string

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		c.token = src
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client for the API served at baseURL, for example
// "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Auth is what login and signup return.
type Auth struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// TestimonialSubmission is the public testimonial form. It has no status
// field; the server decides it.
type TestimonialSubmission struct {
	Name    string `json:"name"`
	Role    string `json:"role,omitempty"`
	Company string `json:"company,omitempty"`
	Rating  int    `json:"rating,omitempty"`
	Quote   string `json:"quote"`
}

type ContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category,omitempty"`
	Message  string `json:"message"`
}

type SeedResult struct {
	Categories   int `json:"categories"`
	Clients      int `json:"clients"`
	Projects     int `json:"projects"`
	Testimonials int `json:"testimonials"`
}

type validatable interface {
	Validate() error
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.get(ctx, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, validateAll(out)
}

func (c *Client) Clients(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	if err := c.get(ctx, "/api/clients", nil, &out); err != nil {
		return nil, err
	}
	return out, validateAll(out)
}

func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.get(ctx, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, validateAll(out)
}

// Testimonials lists approved testimonials, or all of them when includeAll
// is set and the token belongs to a verified admin.
func (c *Client) Testimonials(ctx context.Context, includeAll bool) ([]models.Testimonial, error) {
	var query url.Values
	if includeAll {
		query = url.Values{"include_all": {"true"}}
	}
	var out []models.Testimonial
	if err := c.get(ctx, "/api/testimonials", query, &out); err != nil {
		return nil, err
	}
	return out, validateAll(out)
}

// Settings returns nil when nothing has been saved yet.
func (c *Client) Settings(ctx context.Context) (*models.Settings, error) {
	var out *models.Settings
	if err := c.get(ctx, "/api/settings", nil, &out); err != nil {
		return nil, err
	}
	if out != nil {
		if err := out.Validate(); err != nil {
			return nil, decodeError(http.StatusOK, err)
		}
	}
	return out, nil
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, validateAll(out)
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.get(ctx, "/api/auth/me", nil, &out)
	return out, err
}

// Create POSTs body to /api/<collection>.
func (c *Client) Create(ctx context.Context, collection string, body any) error {
	return c.do(ctx, http.MethodPost, "/api/"+collection, nil, body, nil)
}

// Update PATCHes body onto /api/<collection>/<id>. Only the fields present
// in body change.
func (c *Client) Update(ctx context.Context, collection string, id uuid.UUID, body any) error {
	return c.do(ctx, http.MethodPatch, "/api/"+collection+"/"+id.String(), nil, body, nil)
}

func (c *Client) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/"+collection+"/"+id.String(), nil, nil, nil)
}

func (c *Client) Seed(ctx context.Context) (SeedResult, error) {
	var out SeedResult
	err := c.do(ctx, http.MethodPost, "/api/seed", nil, nil, &out)
	return out, err
}

// VerifyAdmin grants (or with grant false, revokes) both the admin and
// verified flags.
func (c *Client) VerifyAdmin(ctx context.Context, id uuid.UUID, grant bool) (models.User, error) {
	body := map[string]bool{"is_admin": grant, "is_verified": grant}
	var out models.User
	err := c.do(ctx, http.MethodPatch, "/api/users/"+id.String()+"/verify-admin", nil, body, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (Auth, error) {
	body := map[string]string{"email": email, "password": password}
	var out Auth
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &out); err != nil {
		return Auth{}, err
	}
	return out, checkAuth(out)
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (Auth, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out Auth
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, body, &out); err != nil {
		return Auth{}, err
	}
	return out, checkAuth(out)
}

func (c *Client) SubmitTestimonial(ctx context.Context, t TestimonialSubmission) (models.Testimonial, error) {
	var out models.Testimonial
	err := c.do(ctx, http.MethodPost, "/api/testimonials/submit", nil, t, &out)
	return out, err
}

func (c *Client) Contact(ctx context.Context, msg ContactRequest) error {
	return c.do(ctx, http.MethodPost, "/api/contact", nil, msg, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Detail: "encoding request body", Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Detail: "building request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &Error{Kind: KindTransport, Detail: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &Error{Kind: KindTransport, StatusCode: resp.StatusCode, Detail: "reading response", Err: err}
	}
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return decodeError(resp.StatusCode, fmt.Errorf("decoding %s %s: %w", method, path, err))
	}
	return nil
}

// validateAll rejects a list whose records do not pass their own
// validation, so malformed data never reaches the caller.
func validateAll[T any, PT interface {
	*T
	validatable
}](records []T) error {
	for i := range records {
		if err := PT(&records[i]).Validate(); err != nil {
			return decodeError(http.StatusOK, fmt.Errorf("record %d: %w", i, err))
		}
	}
	return nil
}

func checkAuth(a Auth) error {
	if a.Token == "" || a.User.ID == uuid.Nil {
		return decodeError(http.StatusOK, fmt.Errorf("auth response without token or user"))
	}
	return nil
}
