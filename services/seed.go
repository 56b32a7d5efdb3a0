package services

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed sample_data.yaml
var sampleDataYAML []byte

// SampleData is the demo content loaded by POST /api/seed.
type SampleData struct {
	Categories []models.Category `yaml:"categories"`
	Clients    []struct {
		Name        string `yaml:"name"`
		CategoryKey string `yaml:"category_key"`
		Description string `yaml:"description"`
		LogoURL     string `yaml:"logo_url"`
	} `yaml:"clients"`
	Projects []struct {
		ClientName  string   `yaml:"client_name"`
		Title       string   `yaml:"title"`
		Tag         string   `yaml:"tag"`
		Description string   `yaml:"description"`
		Images      []string `yaml:"images"`
		Link        string   `yaml:"link"`
	} `yaml:"projects"`
	Testimonials []models.Testimonial `yaml:"testimonials"`
}

var (
	sampleOnce sync.Once
	sample     SampleData
	sampleErr  error
)

// LoadSampleData parses the embedded sample content once.
func LoadSampleData() (SampleData, error) {
	sampleOnce.Do(func() {
		sampleErr = yaml.Unmarshal(sampleDataYAML, &sample)
	})
	return sample, sampleErr
}

// SampleTestimonials are shown on the public page when nothing is approved.
func SampleTestimonials() []models.Testimonial {
	data, err := LoadSampleData()
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse sample data")
		return nil
	}
	out := make([]models.Testimonial, len(data.Testimonials))
	for i, t := range data.Testimonials {
		t.Status = models.StatusApproved
		out[i] = t
	}
	return out
}

type SeedResult struct {
	Categories   int `json:"categories"`
	Clients      int `json:"clients"`
	Projects     int `json:"projects"`
	Testimonials int `json:"testimonials"`
}

// Seed inserts the sample content that is not there yet. Running it twice
// adds nothing the second time.
func Seed(db database.Database) (SeedResult, error) {
	data, err := LoadSampleData()
	if err != nil {
		return SeedResult{}, fmt.Errorf("parsing sample data: %w", err)
	}

	var result SeedResult
	err = db.Transaction(func(tx database.Database) error {
		for _, c := range data.Categories {
			_, err := tx.CategoryRepo().FindByKey(c.Key)
			if err == nil {
				continue
			}
			if !errs.IsNotFound(err) {
				return err
			}
			if err := tx.CategoryRepo().Add(&c); err != nil {
				return err
			}
			result.Categories++
		}

		clients, err := tx.ClientRepo().FindAll()
		if err != nil {
			return err
		}
		haveClient := make(map[string]bool, len(clients))
		for _, c := range clients {
			haveClient[c.Name] = true
		}
		for _, c := range data.Clients {
			if haveClient[c.Name] {
				continue
			}
			record := &models.Client{Name: c.Name, CategoryKey: c.CategoryKey, Description: c.Description, LogoURL: c.LogoURL}
			if err := tx.ClientRepo().Add(record); err != nil {
				return err
			}
			result.Clients++
		}

		projects, err := tx.ProjectRepo().FindAll()
		if err != nil {
			return err
		}
		haveProject := make(map[string]bool, len(projects))
		for _, p := range projects {
			haveProject[p.ClientName+"\x00"+p.Title] = true
		}
		for _, p := range data.Projects {
			if haveProject[p.ClientName+"\x00"+p.Title] {
				continue
			}
			record := &models.Project{ClientName: p.ClientName, Title: p.Title, Tag: p.Tag, Description: p.Description, Images: p.Images, Link: p.Link}
			if err := tx.ProjectRepo().Add(record); err != nil {
				return err
			}
			result.Projects++
		}

		testimonials, err := tx.TestimonialRepo().FindAll(true)
		if err != nil {
			return err
		}
		haveTestimonial := make(map[string]bool, len(testimonials))
		for _, t := range testimonials {
			haveTestimonial[t.Name+"\x00"+t.Quote] = true
		}
		for _, t := range data.Testimonials {
			if haveTestimonial[t.Name+"\x00"+t.Quote] {
				continue
			}
			t.Status = models.StatusApproved
			if err := tx.TestimonialRepo().Add(&t); err != nil {
				return err
			}
			result.Testimonials++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	log.Info().
		Int("categories", result.Categories).
		Int("clients", result.Clients).
		Int("projects", result.Projects).
		Int("testimonials", result.Testimonials).
		Msg("Seeded sample data")
	return result, nil
}
