package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/errs"
	"gorm.io/gorm"
)

// User is an account that can sign in to the admin panel. Editing rights
// need both IsAdmin and IsVerified.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name         string    `json:"name" db:"name" gorm:"type:text"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin" gorm:"not null;default:false"`
	IsVerified   bool      `json:"is_verified" db:"is_verified" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// CanEdit reports whether the user may change site content.
func (u *User) CanEdit() bool {
	return u != nil && u.IsAdmin && u.IsVerified
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return errs.NewMissingRequiredFieldError("email")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errs.NewInvalidFieldError("email", "not a valid address")
	}
	if u.ID == uuid.Nil && u.PasswordHash == "" {
		return errs.NewMissingRequiredFieldError("password")
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
