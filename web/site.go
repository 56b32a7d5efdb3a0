// Package web renders the public portfolio page from the same database
// the admin API edits.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:embed templates
var templateFS embed.FS

var flashMessages = map[string]string{
	"contact=sent":          "Thanks! Your message has been sent.",
	"contact=error":         "Sorry, your message could not be sent. Please check the form and try again.",
	"testimonial=submitted": "Thank you! Your testimonial will appear once it is approved.",
	"testimonial=error":     "Sorry, your testimonial could not be submitted. Name and quote are required.",
}

type Site struct {
	db       database.Database
	contacts *services.ContactService
	profile  Profile
	tmpl     *template.Template
	logger   zerolog.Logger
}

func NewSite(db database.Database, contacts *services.ContactService, profile Profile) (*Site, error) {
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		"initial": initial,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Site{
		db:       db,
		contacts: contacts,
		profile:  profile,
		tmpl:     tmpl,
		logger:   log.With().Str("handlerName", "site").Logger(),
	}, nil
}

func (s *Site) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.index)
	r.Post("/contact", s.submitContact)
	r.Post("/testimonials", s.submitTestimonial)
	r.Get("/static/site.css", s.stylesheet)
	return r
}

func (s *Site) index(w http.ResponseWriter, r *http.Request) {
	p, err := loadPage(r.Context(), s.db)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load page data")
		http.Error(w, "Failed to load page", http.StatusInternalServerError)
		return
	}
	p.Profile = s.profile
	for key, msg := range flashMessages {
		name, value, _ := strings.Cut(key, "=")
		if r.URL.Query().Get(name) == value {
			p.Flash = msg
		}
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", p); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Site) submitContact(w http.ResponseWriter, r *http.Request) {
	msg := &models.ContactMessage{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Category: r.PostFormValue("category"),
		Message:  r.PostFormValue("message"),
	}
	status := "sent"
	if err := s.contacts.Submit(r.Context(), msg); err != nil {
		s.logger.Warn().Err(err).Msg("Contact form rejected")
		status = "error"
	}
	redirect(w, r, "contact", status)
}

func (s *Site) submitTestimonial(w http.ResponseWriter, r *http.Request) {
	rating, err := strconv.Atoi(r.PostFormValue("rating"))
	if err != nil {
		rating = models.DefaultRating
	}
	t := &models.Testimonial{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Role:    strings.TrimSpace(r.PostFormValue("role")),
		Company: strings.TrimSpace(r.PostFormValue("company")),
		Quote:   strings.TrimSpace(r.PostFormValue("quote")),
		Rating:  rating,
		Status:  models.StatusPending,
	}

	status := "submitted"
	if err := t.Validate(); err != nil {
		status = "error"
	} else if err := s.db.TestimonialRepo().Add(t); err != nil {
		s.logger.Error().Err(err).Msg("Failed to store testimonial")
		status = "error"
	}
	redirect(w, r, "testimonial", status)
}

func (s *Site) stylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFileFS(w, r, templateFS, "templates/site.css")
}

func redirect(w http.ResponseWriter, r *http.Request, name, status string) {
	anchor := "#contact"
	if name == "testimonial" {
		anchor = "#testimonials"
	}
	target := "/?" + url.Values{name: {status}}.Encode() + anchor
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// initial is the letter shown when a company has no logo.
func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return "?"
}
