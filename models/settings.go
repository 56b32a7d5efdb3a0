package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/errs"
	"gorm.io/gorm"
)

// SettingsKey is the key of the single UI settings record.
const SettingsKey = "ui"

// Settings holds the animation parameters of the public page. There is at
// most one row, keyed "ui", created on first save.
type Settings struct {
	ID                uuid.UUID `json:"id,omitempty" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Key               string    `json:"key" db:"key" gorm:"type:text;not null;uniqueIndex"`
	MarqueeASeconds   float64   `json:"marquee_a_seconds" db:"marquee_a_seconds" gorm:"not null;default:30"`
	MarqueeBSeconds   float64   `json:"marquee_b_seconds" db:"marquee_b_seconds" gorm:"not null;default:28"`
	GlowIntensity     float64   `json:"glow_intensity" db:"glow_intensity" gorm:"not null;default:0.25"`
	ParallaxIntensity float64   `json:"parallax_intensity" db:"parallax_intensity" gorm:"not null;default:8"`
	CreatedAt         time.Time `json:"created_at,omitzero" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at,omitzero" db:"updated_at"`
}

// DefaultSettings returns the values used before anything was saved.
func DefaultSettings() Settings {
	return Settings{
		Key:               SettingsKey,
		MarqueeASeconds:   30,
		MarqueeBSeconds:   28,
		GlowIntensity:     0.25,
		ParallaxIntensity: 8,
	}
}

// Saved reports whether the record exists on the server.
func (s Settings) Saved() bool {
	return s.ID != uuid.Nil
}

func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Key = SettingsKey
	return nil
}

func (s *Settings) Validate() error {
	if s.MarqueeASeconds < 5 || s.MarqueeASeconds > 120 {
		return errs.NewInvalidFieldError("marquee_a_seconds", "must be between 5 and 120")
	}
	if s.MarqueeBSeconds < 5 || s.MarqueeBSeconds > 120 {
		return errs.NewInvalidFieldError("marquee_b_seconds", "must be between 5 and 120")
	}
	if s.GlowIntensity < 0 || s.GlowIntensity > 1 {
		return errs.NewInvalidFieldError("glow_intensity", "must be between 0 and 1")
	}
	if s.ParallaxIntensity < 0 || s.ParallaxIntensity > 40 {
		return errs.NewInvalidFieldError("parallax_intensity", "must be between 0 and 40")
	}
	return nil
}
