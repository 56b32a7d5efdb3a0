package database

import (
	"gorm.io/gorm"
)

type Database struct {
	db                 *gorm.DB
	categoryRepo       *CategoryRepo
	clientRepo         *ClientRepo
	projectRepo        *ProjectRepo
	testimonialRepo    *TestimonialRepo
	settingsRepo       *SettingsRepo
	userRepo           *UserRepo
	contactMessageRepo *ContactMessageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                 db,
		categoryRepo:       NewCategoryRepo(db),
		clientRepo:         NewClientRepo(db),
		projectRepo:        NewProjectRepo(db),
		testimonialRepo:    NewTestimonialRepo(db),
		settingsRepo:       NewSettingsRepo(db),
		userRepo:           NewUserRepo(db),
		contactMessageRepo: NewContactMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ClientRepo() *ClientRepo {
	return d.clientRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TestimonialRepo() *TestimonialRepo {
	return d.testimonialRepo
}

func (d Database) SettingsRepo() *SettingsRepo {
	return d.settingsRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

// Transaction runs fn against a Database bound to a single transaction.
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping checks that the primary connection is alive.
func (d Database) Ping() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
