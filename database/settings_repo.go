package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
	"gorm.io/gorm"
)

type SettingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) *SettingsRepo {
	return &SettingsRepo{db}
}

// Get returns the stored UI settings, or nil when none were saved yet.
func (r *SettingsRepo) Get() (*models.Settings, error) {
	var record models.Settings
	err := r.db.Where("key = ?", models.SettingsKey).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("find", "settings", err)
	}
	return &record, nil
}

func (r *SettingsRepo) FindByID(id uuid.UUID) (*models.Settings, error) {
	var record models.Settings
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, classify("find", "settings", err)
	}
	return &record, nil
}

// Create stores the singleton. A second create is a conflict.
func (r *SettingsRepo) Create(record *models.Settings) error {
	existing, err := r.Get()
	if err != nil {
		return err
	}
	if existing != nil {
		return errs.NewAlreadyExists("settings")
	}
	record.Key = models.SettingsKey
	return classify("create", "settings", r.db.Create(record).Error)
}

func (r *SettingsRepo) Update(record *models.Settings) error {
	record.Key = models.SettingsKey
	return classify("update", "settings", r.db.Save(record).Error)
}
