package database

import (
	"github.com/rpupo63/portfolio-site/models"
	"gorm.io/gorm"
)

type ContactMessageRepo struct {
	db *gorm.DB
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{db}
}

// FindAll lists messages newest first.
func (r *ContactMessageRepo) FindAll() ([]*models.ContactMessage, error) {
	var messages []*models.ContactMessage
	err := r.db.Order("created_at DESC").Find(&messages).Error
	return messages, classify("list", "contact message", err)
}

func (r *ContactMessageRepo) Add(message *models.ContactMessage) error {
	return classify("create", "contact message", r.db.Create(message).Error)
}
