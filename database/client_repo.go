package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/models"
	"gorm.io/gorm"
)

type ClientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) *ClientRepo {
	return &ClientRepo{db}
}

// FindAll returns every client in creation order.
func (r *ClientRepo) FindAll() ([]*models.Client, error) {
	var records []*models.Client
	err := r.db.Order("created_at ASC").Find(&records).Error
	return records, classify("list", "client", err)
}

func (r *ClientRepo) FindByID(id uuid.UUID) (*models.Client, error) {
	var record models.Client
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, classify("find", "client", err)
	}
	return &record, nil
}

func (r *ClientRepo) Add(record *models.Client) error {
	return classify("create", "client", r.db.Create(record).Error)
}

// Update writes every column of an existing client.
func (r *ClientRepo) Update(record *models.Client) error {
	return classify("update", "client", r.db.Save(record).Error)
}

func (r *ClientRepo) Delete(id uuid.UUID) error {
	return affected("delete", "client", r.db.Where("id = ?", id).Delete(&models.Client{}))
}

// LogosByName maps client names to their logo URL, skipping clients
// without a logo. Used to decorate testimonials by company.
func (r *ClientRepo) LogosByName() (map[string]string, error) {
	var clients []models.Client
	err := r.db.Select("name", "logo_url").Where("logo_url <> ''").Find(&clients).Error
	if err != nil {
		return nil, classify("list", "client", err)
	}
	logos := make(map[string]string, len(clients))
	for _, c := range clients {
		logos[c.Name] = c.LogoURL
	}
	return logos, nil
}
