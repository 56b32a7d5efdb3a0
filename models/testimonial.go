package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/errs"
	"gorm.io/gorm"
)

type TestimonialStatus string

const (
	StatusApproved TestimonialStatus = "approved"
	StatusPending  TestimonialStatus = "pending"
	StatusRejected TestimonialStatus = "rejected"
)

const (
	MinRating     = 0
	MaxRating     = 5
	DefaultRating = 5
)

func (s TestimonialStatus) Valid() bool {
	switch s {
	case StatusApproved, StatusPending, StatusRejected:
		return true
	}
	return false
}

// Testimonial is a client quote. Only approved testimonials are public.
type Testimonial struct {
	ID        uuid.UUID         `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string            `json:"name" db:"name" gorm:"type:text;not null"`
	Role      string            `json:"role" db:"role" gorm:"type:text"`
	Company   string            `json:"company" db:"company" gorm:"type:text"`
	Rating    int               `json:"rating" db:"rating" gorm:"type:integer;not null;default:5"`
	Quote     string            `json:"quote" db:"quote" gorm:"type:text;not null"`
	Status    TestimonialStatus `json:"status" db:"status" gorm:"type:text;not null;default:pending;index"`
	LogoURL   string            `json:"logo_url,omitempty" db:"logo_url" gorm:"type:text"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	return nil
}

func (t *Testimonial) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if strings.TrimSpace(t.Quote) == "" {
		return errs.NewMissingRequiredFieldError("quote")
	}
	if t.Rating < MinRating || t.Rating > MaxRating {
		return errs.NewInvalidFieldError("rating", "must be between 0 and 5")
	}
	if t.Status != "" && !t.Status.Valid() {
		return errs.NewInvalidFieldError("status", "must be approved, pending or rejected")
	}
	return nil
}

// ClampRating bounds a rating for display, mirroring the star widget.
func ClampRating(rating int) int {
	return max(MinRating, min(MaxRating, rating))
}
