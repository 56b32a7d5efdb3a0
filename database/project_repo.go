package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns every project in creation order.
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var records []*models.Project
	err := r.db.Order("created_at ASC").Find(&records).Error
	return records, classify("list", "project", err)
}

func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var record models.Project
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, classify("find", "project", err)
	}
	return &record, nil
}

func (r *ProjectRepo) Add(record *models.Project) error {
	return classify("create", "project", r.db.Create(record).Error)
}

// Update writes every column of an existing project.
func (r *ProjectRepo) Update(record *models.Project) error {
	return classify("update", "project", r.db.Save(record).Error)
}

func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return affected("delete", "project", r.db.Where("id = ?", id).Delete(&models.Project{}))
}

func (r *ProjectRepo) FindByClient(clientName string) ([]*models.Project, error) {
	var records []*models.Project
	err := r.db.Where("client_name = ?", clientName).Order("created_at ASC").Find(&records).Error
	return records, classify("list", "project", err)
}
