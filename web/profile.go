package web

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

// Profile is the static part of the page: who the site is about. It is
// edited as YAML rather than through the admin panel.
type Profile struct {
	Name              string      `yaml:"name"`
	Headline          string      `yaml:"headline"`
	About             string      `yaml:"about"`
	ResumeURL         string      `yaml:"resume_url"`
	Education         []Education `yaml:"education"`
	ContactCategories []string    `yaml:"contact_categories"`
	Socials           []Link      `yaml:"socials"`
}

type Education struct {
	Title string `yaml:"title"`
	Org   string `yaml:"org"`
	Years string `yaml:"years"`
}

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// LoadProfile reads the profile at path, or the built-in one when path is
// empty.
func LoadProfile(path string) (Profile, error) {
	raw := defaultProfile
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Profile{}, fmt.Errorf("reading profile: %w", err)
		}
		raw = b
	}

	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	if p.Name == "" {
		return Profile{}, fmt.Errorf("profile has no name")
	}
	return p, nil
}
