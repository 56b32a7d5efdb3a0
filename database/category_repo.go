package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns every category in creation order.
func (r *CategoryRepo) FindAll() ([]*models.Category, error) {
	var records []*models.Category
	err := r.db.Order("created_at ASC").Find(&records).Error
	return records, classify("list", "category", err)
}

func (r *CategoryRepo) FindByID(id uuid.UUID) (*models.Category, error) {
	var record models.Category
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, classify("find", "category", err)
	}
	return &record, nil
}

func (r *CategoryRepo) Add(record *models.Category) error {
	return classify("create", "category", r.db.Create(record).Error)
}

// Update writes every column of an existing category.
func (r *CategoryRepo) Update(record *models.Category) error {
	return classify("update", "category", r.db.Save(record).Error)
}

func (r *CategoryRepo) Delete(id uuid.UUID) error {
	return affected("delete", "category", r.db.Where("id = ?", id).Delete(&models.Category{}))
}

// FindByKey looks a category up by its unique key.
func (r *CategoryRepo) FindByKey(key string) (*models.Category, error) {
	var record models.Category
	if err := r.db.Where("key = ?", key).First(&record).Error; err != nil {
		return nil, classify("find", "category", err)
	}
	return &record, nil
}
