package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/models"
	"gorm.io/gorm"
)

type TestimonialRepo struct {
	db *gorm.DB
}

func NewTestimonialRepo(db *gorm.DB) *TestimonialRepo {
	return &TestimonialRepo{db}
}

// FindAll returns approved testimonials, or every testimonial when
// includeAll is set. Callers decide who may see unapproved ones.
func (r *TestimonialRepo) FindAll(includeAll bool) ([]*models.Testimonial, error) {
	var records []*models.Testimonial
	query := r.db.Order("created_at ASC")
	if !includeAll {
		query = query.Where("status = ?", models.StatusApproved)
	}
	err := query.Find(&records).Error
	return records, classify("list", "testimonial", err)
}

func (r *TestimonialRepo) FindByID(id uuid.UUID) (*models.Testimonial, error) {
	var record models.Testimonial
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, classify("find", "testimonial", err)
	}
	return &record, nil
}

func (r *TestimonialRepo) Add(record *models.Testimonial) error {
	return classify("create", "testimonial", r.db.Create(record).Error)
}

func (r *TestimonialRepo) Update(record *models.Testimonial) error {
	return classify("update", "testimonial", r.db.Save(record).Error)
}

func (r *TestimonialRepo) Delete(id uuid.UUID) error {
	return affected("delete", "testimonial", r.db.Where("id = ?", id).Delete(&models.Testimonial{}))
}

// CountByStatus is used by the seeder and the health report.
func (r *TestimonialRepo) CountByStatus(status models.TestimonialStatus) (int64, error) {
	var n int64
	err := r.db.Model(&models.Testimonial{}).Where("status = ?", status).Count(&n).Error
	return n, classify("count", "testimonial", err)
}
