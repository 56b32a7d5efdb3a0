package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/errs"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is a work sample shown in the gallery. ClientName refers to a
// Client by name and is not validated against the clients table.
type Project struct {
	ID          uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ClientName  string                      `json:"client_name" db:"client_name" gorm:"type:text;index"`
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Tag         string                      `json:"tag" db:"tag" gorm:"type:text"`
	Description string                      `json:"description" db:"description" gorm:"type:text"`
	Images      datatypes.JSONSlice[string] `json:"images" db:"images"`
	Link        string                      `json:"link" db:"link" gorm:"type:text"`
	CreatedAt   time.Time                   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at" db:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Images == nil {
		p.Images = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	return nil
}

// SplitImages turns the comma separated form input used by the admin
// forms into a clean list of URLs.
func SplitImages(raw string) []string {
	var images []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			images = append(images, part)
		}
	}
	return images
}
