package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/services"
)

func newTestSite(t *testing.T) (*Site, database.Database) {
	t.Helper()

	gdb, err := database.Open(map[string]string{
		"DB_TYPE":     "sqlite",
		"SQLITE_PATH": filepath.Join(t.TempDir(), "web.db"),
	})
	if err != nil {
		t.Fatalf("database.Open: %v", err)
	}
	if err := models.AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	db := database.New(gdb)

	profile, err := LoadProfile("")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	site, err := NewSite(db, services.NewContactService(db.ContactMessageRepo(), nil), profile)
	if err != nil {
		t.Fatalf("NewSite: %v", err)
	}
	return site, db
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndexFallsBackToSampleTestimonials(t *testing.T) {
	t.Parallel()
	site, _ := newTestSite(t)

	rec := get(t, site.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Alex Morgan") {
		t.Errorf("page does not contain the profile name")
	}
	sample := services.SampleTestimonials()[0]
	if !strings.Contains(body, sample.Name) {
		t.Errorf("page does not contain sample testimonial by %q", sample.Name)
	}
	if !strings.Contains(body, "--marquee-a: 30s") {
		t.Errorf("page does not use default marquee duration")
	}
}

func TestIndexUsesStoredData(t *testing.T) {
	t.Parallel()
	site, db := newTestSite(t)

	if err := db.ClientRepo().Add(&models.Client{Name: "Acme", CategoryKey: "uiux", LogoURL: "https://cdn.example.com/acme.png"}); err != nil {
		t.Fatalf("add client: %v", err)
	}
	if err := db.CategoryRepo().Add(&models.Category{Key: "uiux", Title: "Product Design"}); err != nil {
		t.Fatalf("add category: %v", err)
	}
	if err := db.TestimonialRepo().Add(&models.Testimonial{Name: "Jordan", Company: "Acme", Quote: "Great work", Rating: 4, Status: models.StatusApproved}); err != nil {
		t.Fatalf("add testimonial: %v", err)
	}
	if err := db.TestimonialRepo().Add(&models.Testimonial{Name: "Hidden", Quote: "Not yet", Rating: 5, Status: models.StatusPending}); err != nil {
		t.Fatalf("add testimonial: %v", err)
	}
	settings := models.DefaultSettings()
	settings.MarqueeASeconds = 45
	if err := db.SettingsRepo().Create(&settings); err != nil {
		t.Fatalf("create settings: %v", err)
	}

	body := get(t, site.Handler(), "/").Body.String()
	for _, want := range []string{"Product Design", "Great work", "https://cdn.example.com/acme.png", "--marquee-a: 45s"} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
	if strings.Contains(body, "Not yet") {
		t.Errorf("page shows a pending testimonial")
	}
	if strings.Contains(body, services.SampleTestimonials()[0].Quote) {
		t.Errorf("page shows sample testimonials although approved ones exist")
	}
}

func TestContactForm(t *testing.T) {
	t.Parallel()
	site, db := newTestSite(t)
	h := site.Handler()

	rec := postForm(t, h, "/contact", url.Values{
		"name": {"Sam"}, "email": {"sam@example.com"}, "category": {"photography"}, "message": {"Hi"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got, want := rec.Header().Get("Location"), "/?contact=sent#contact"; got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
	messages, err := db.ContactMessageRepo().FindAll()
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("stored %d messages, want 1", len(messages))
	}

	rec = postForm(t, h, "/contact", url.Values{"name": {"Sam"}, "email": {"not-an-email"}})
	if got, want := rec.Header().Get("Location"), "/?contact=error#contact"; got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}

	body := get(t, h, "/?contact=sent").Body.String()
	if !strings.Contains(body, flashMessages["contact=sent"]) {
		t.Errorf("flash message missing after redirect")
	}
}

func TestTestimonialFormIsPending(t *testing.T) {
	t.Parallel()
	site, db := newTestSite(t)

	rec := postForm(t, site.Handler(), "/testimonials", url.Values{
		"name": {"Riley"}, "company": {"Globex"}, "quote": {"Lovely"}, "rating": {"nope"},
	})
	if got, want := rec.Header().Get("Location"), "/?testimonial=submitted#testimonials"; got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}

	all, err := db.TestimonialRepo().FindAll(true)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("stored %d testimonials, want 1", len(all))
	}
	if all[0].Status != models.StatusPending {
		t.Errorf("status = %q, want pending", all[0].Status)
	}
	if all[0].Rating != models.DefaultRating {
		t.Errorf("rating = %d, want %d", all[0].Rating, models.DefaultRating)
	}

	rec = postForm(t, site.Handler(), "/testimonials", url.Values{"name": {"Riley"}})
	if got, want := rec.Header().Get("Location"), "/?testimonial=error#testimonials"; got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
}

func TestMarqueeRows(t *testing.T) {
	t.Parallel()

	base := []testimonialView{
		{Testimonial: models.Testimonial{Name: "a"}},
		{Testimonial: models.Testimonial{Name: "b"}},
		{Testimonial: models.Testimonial{Name: "c"}},
	}
	a, b := marqueeRows(base)
	names := func(views []testimonialView) string {
		var out []string
		for _, v := range views {
			out = append(out, v.Name)
		}
		return strings.Join(out, "")
	}
	if got, want := names(a), "abcabc"; got != want {
		t.Errorf("row A = %q, want %q", got, want)
	}
	if got, want := names(b), "cbacba"; got != want {
		t.Errorf("row B = %q, want %q", got, want)
	}
}

func TestStars(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		rating int
		filled int
	}{{0, 0}, {3, 3}, {5, 5}, {9, 5}, {-2, 0}} {
		filled := 0
		for _, on := range stars(tt.rating) {
			if on {
				filled++
			}
		}
		if filled != tt.filled {
			t.Errorf("stars(%d) filled = %d, want %d", tt.rating, filled, tt.filled)
		}
	}
}

func TestStylesheet(t *testing.T) {
	t.Parallel()
	site, _ := newTestSite(t)

	rec := get(t, site.Handler(), "/static/site.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q", ct)
	}
}
