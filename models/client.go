package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/errs"
	"gorm.io/gorm"
)

// Client is a company the site owner has worked with.
type Client struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null;index"`
	CategoryKey string    `json:"category_key" db:"category_key" gorm:"type:text"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	LogoURL     string    `json:"logo_url" db:"logo_url" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	return nil
}
