package models

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "models.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		record  interface{ Validate() error }
		wantErr error
	}{
		{"category ok", &Category{Key: "web", Title: "Web"}, nil},
		{"category missing key", &Category{Title: "Web"}, errs.ErrMissingRequiredField},
		{"client missing name", &Client{CategoryKey: "web"}, errs.ErrMissingRequiredField},
		{"project ok without client", &Project{Title: "Site"}, nil},
		{"project missing title", &Project{ClientName: "Acme"}, errs.ErrMissingRequiredField},
		{"testimonial ok", &Testimonial{Name: "Ana", Quote: "Great", Rating: 5, Status: StatusApproved}, nil},
		{"testimonial rating zero", &Testimonial{Name: "Ana", Quote: "Great"}, nil},
		{"testimonial rating too high", &Testimonial{Name: "Ana", Quote: "Great", Rating: 6}, errs.ErrInvalidField},
		{"testimonial bad status", &Testimonial{Name: "Ana", Quote: "Great", Status: "archived"}, errs.ErrInvalidField},
		{"settings defaults", ptr(DefaultSettings()), nil},
		{"settings marquee too fast", &Settings{MarqueeASeconds: 4, MarqueeBSeconds: 28, GlowIntensity: 0.25, ParallaxIntensity: 8}, errs.ErrInvalidField},
		{"settings glow too bright", &Settings{MarqueeASeconds: 30, MarqueeBSeconds: 28, GlowIntensity: 1.5, ParallaxIntensity: 8}, errs.ErrInvalidField},
		{"settings parallax bound", &Settings{MarqueeASeconds: 120, MarqueeBSeconds: 5, GlowIntensity: 1, ParallaxIntensity: 40}, nil},
		{"user bad email", &User{Email: "nope", PasswordHash: "x"}, errs.ErrInvalidField},
		{"user no password", &User{Email: "a@b.co"}, errs.ErrMissingRequiredField},
		{"contact missing email", &ContactMessage{Name: "Ana"}, errs.ErrMissingRequiredField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.record.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestSplitImages(t *testing.T) {
	t.Parallel()

	got := SplitImages(" a.png, ,b.png,")
	if len(got) != 2 || got[0] != "a.png" || got[1] != "b.png" {
		t.Fatalf("SplitImages = %q, want [a.png b.png]", got)
	}
	if got := SplitImages(""); len(got) != 0 {
		t.Fatalf("SplitImages(\"\") = %q, want empty", got)
	}
}

func TestClampRating(t *testing.T) {
	t.Parallel()

	for in, want := range map[int]int{-3: 0, 0: 0, 3: 3, 5: 5, 9: 5} {
		if got := ClampRating(in); got != want {
			t.Fatalf("ClampRating(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestBeforeCreateDefaults(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	tm := Testimonial{Name: "Ana", Quote: "Great", Rating: 4}
	if err := db.Create(&tm).Error; err != nil {
		t.Fatalf("create testimonial: %v", err)
	}
	if tm.ID == uuid.Nil {
		t.Fatal("testimonial id not assigned")
	}
	if tm.Status != StatusPending {
		t.Fatalf("status = %q, want %q", tm.Status, StatusPending)
	}

	s := Settings{Key: "other", MarqueeASeconds: 30, MarqueeBSeconds: 28, GlowIntensity: 0.25, ParallaxIntensity: 8}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create settings: %v", err)
	}
	if s.Key != SettingsKey {
		t.Fatalf("settings key = %q, want %q", s.Key, SettingsKey)
	}

	u := User{Email: "  Admin@Example.COM ", PasswordHash: "hash"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Email != "admin@example.com" {
		t.Fatalf("email = %q, want normalized", u.Email)
	}
}

func TestColumnReport(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if err := db.Exec("ALTER TABLE clients ADD COLUMN legacy_slug text").Error; err != nil {
		t.Fatalf("add column: %v", err)
	}

	var buf bytes.Buffer
	total, err := ColumnReport(db, &buf)
	if err != nil {
		t.Fatalf("ColumnReport: %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1\n%s", total, buf.String())
	}
	if !strings.Contains(buf.String(), "  - legacy_slug") {
		t.Fatalf("report missing column:\n%s", buf.String())
	}
}
