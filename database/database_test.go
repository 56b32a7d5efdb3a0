package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
)

func newTestDatabase(t *testing.T) Database {
	t.Helper()
	db, err := Open(map[string]string{
		"DB_TYPE":     "sqlite",
		"SQLITE_PATH": filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return New(db)
}

func TestDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         map[string]string
		wantDialect string
		wantDSN     string
		wantErr     bool
	}{
		{"default sqlite", map[string]string{}, "sqlite", "portfolio.db", false},
		{"postgres", map[string]string{"DB_TYPE": "postgres", "DATABASE_URL": "postgres://x"}, "postgres", "postgres://x", false},
		{"postgres without url", map[string]string{"DB_TYPE": "postgres"}, "", "", true},
		{"supa", map[string]string{"DB_TYPE": "supa", "SUPABASE_DB_HOST": "h", "SUPABASE_DB_USER": "u", "SUPABASE_DB_PASSWORD": "p", "SUPABASE_DB_NAME": "n"}, "postgres", "host=h user=u password=p dbname=n port=5432 sslmode=require", false},
		{"unknown", map[string]string{"DB_TYPE": "mongo"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dialect, dsn, err := DSN(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("DSN: expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DSN: %v", err)
			}
			if dialect != tt.wantDialect || dsn != tt.wantDSN {
				t.Fatalf("DSN = (%q, %q), want (%q, %q)", dialect, dsn, tt.wantDialect, tt.wantDSN)
			}
		})
	}
}

func TestReplicasNeedPostgres(t *testing.T) {
	t.Parallel()

	_, err := Open(map[string]string{
		"DB_TYPE":         "sqlite",
		"SQLITE_PATH":     filepath.Join(t.TempDir(), "test.db"),
		"DB_REPLICA_DSNS": "postgres://replica",
	})
	if err == nil {
		t.Fatal("Open: expected error for sqlite with replicas")
	}
}

func TestCategoryCRUD(t *testing.T) {
	t.Parallel()
	d := newTestDatabase(t)
	repo := d.CategoryRepo()

	c := &models.Category{Key: "web", Title: "Web"}
	if err := repo.Add(c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repo.Add(&models.Category{Key: "web", Title: "Again"}); !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("duplicate Add = %v, want ErrAlreadyExists", err)
	}

	c.Title = "Web Apps"
	if err := repo.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.FindByKey("web")
	if err != nil {
		t.Fatalf("FindByKey: %v", err)
	}
	if got.Title != "Web Apps" {
		t.Fatalf("title = %q, want %q", got.Title, "Web Apps")
	}

	if err := repo.Delete(c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(c.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second Delete = %v, want ErrNotFound", err)
	}
	if _, err := repo.FindByID(c.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("FindByID after delete = %v, want ErrNotFound", err)
	}
}

func TestProjectImagesRoundTrip(t *testing.T) {
	t.Parallel()
	d := newTestDatabase(t)

	p := &models.Project{Title: "Site", ClientName: "Acme", Images: []string{"a.png", "b.png"}}
	if err := d.ProjectRepo().Add(p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	byClient, err := d.ProjectRepo().FindByClient("Acme")
	if err != nil {
		t.Fatalf("FindByClient: %v", err)
	}
	if len(byClient) != 1 || len(byClient[0].Images) != 2 || byClient[0].Images[1] != "b.png" {
		t.Fatalf("FindByClient = %+v, want one project with two images", byClient)
	}
}

func TestTestimonialVisibility(t *testing.T) {
	t.Parallel()
	d := newTestDatabase(t)
	repo := d.TestimonialRepo()

	for _, status := range []models.TestimonialStatus{models.StatusApproved, models.StatusPending, models.StatusRejected} {
		if err := repo.Add(&models.Testimonial{Name: string(status), Quote: "q", Rating: 5, Status: status}); err != nil {
			t.Fatalf("Add %s: %v", status, err)
		}
	}

	public, err := repo.FindAll(false)
	if err != nil {
		t.Fatalf("FindAll(false): %v", err)
	}
	if len(public) != 1 || public[0].Status != models.StatusApproved {
		t.Fatalf("public testimonials = %+v, want only the approved one", public)
	}

	all, err := repo.FindAll(true)
	if err != nil {
		t.Fatalf("FindAll(true): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}

	pending, err := repo.CountByStatus(models.StatusPending)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if pending != 1 {
		t.Fatalf("pending = %d, want 1", pending)
	}
}

func TestSettingsSingleton(t *testing.T) {
	t.Parallel()
	d := newTestDatabase(t)
	repo := d.SettingsRepo()

	got, err := repo.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("Get = %+v, want nil before first save", got)
	}

	s := models.DefaultSettings()
	if err := repo.Create(&s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	again := models.DefaultSettings()
	if err := repo.Create(&again); !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("second Create = %v, want ErrAlreadyExists", err)
	}

	s.GlowIntensity = 0.9
	if err := repo.Update(&s); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != s.ID || got.GlowIntensity != 0.9 {
		t.Fatalf("Get = %+v, want id %s with glow 0.9", got, s.ID)
	}
}

func TestUserRoles(t *testing.T) {
	t.Parallel()
	d := newTestDatabase(t)
	repo := d.UserRepo()

	u := &models.User{Email: "Owner@Example.com", PasswordHash: "hash"}
	if err := repo.Add(u); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repo.Add(&models.User{Email: "owner@example.com", PasswordHash: "hash"}); !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("duplicate email Add = %v, want ErrAlreadyExists", err)
	}

	found, err := repo.FindByEmail("OWNER@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.ID != u.ID {
		t.Fatalf("FindByEmail id = %s, want %s", found.ID, u.ID)
	}

	updated, err := repo.SetRoles(u.ID, true, true)
	if err != nil {
		t.Fatalf("SetRoles: %v", err)
	}
	if !updated.CanEdit() {
		t.Fatal("user cannot edit after SetRoles(true, true)")
	}
	if _, err := repo.SetRoles(uuid.New(), true, true); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("SetRoles unknown id = %v, want ErrNotFound", err)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	t.Parallel()
	d := newTestDatabase(t)

	boom := errors.New("boom")
	err := d.Transaction(func(tx Database) error {
		if err := tx.ClientRepo().Add(&models.Client{Name: "Acme", LogoURL: "acme.png"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction = %v, want boom", err)
	}

	logos, err := d.ClientRepo().LogosByName()
	if err != nil {
		t.Fatalf("LogosByName: %v", err)
	}
	if len(logos) != 0 {
		t.Fatalf("logos = %v, want none after rollback", logos)
	}
}
