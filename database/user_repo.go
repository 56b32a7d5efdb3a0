package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

func (r *UserRepo) FindAll() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Order("created_at ASC").Find(&users).Error
	return users, classify("list", "user", err)
}

func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, classify("find", "user", err)
	}
	return &user, nil
}

// FindByEmail matches case-insensitively; emails are stored normalized.
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, classify("find", "user", err)
	}
	return &user, nil
}

func (r *UserRepo) Add(user *models.User) error {
	return classify("create", "user", r.db.Create(user).Error)
}

// SetRoles updates the admin flags and returns the fresh record.
func (r *UserRepo) SetRoles(id uuid.UUID, isAdmin, isVerified bool) (*models.User, error) {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"is_admin":    isAdmin,
		"is_verified": isVerified,
	})
	if err := affected("update", "user", result); err != nil {
		return nil, err
	}
	return r.FindByID(id)
}
