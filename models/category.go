package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/errs"
	"gorm.io/gorm"
)

// Category groups clients on the portfolio page. Key is what
// Client.CategoryKey points at.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Key         string    `json:"key" db:"key" gorm:"type:text;not null;uniqueIndex"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return errs.NewMissingRequiredFieldError("key")
	}
	if strings.TrimSpace(c.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	return nil
}
