package database

import (
	"errors"

	"github.com/rpupo63/portfolio-site/errs"
	"gorm.io/gorm"
)

// classify turns a gorm error into an *errs.ApiErr carrying the HTTP status
// a handler should answer with.
func classify(operation, entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound(entity)
	}
	return errs.NewDatabaseError(operation, entity, err)
}

// affected reports a write that matched no row as not found.
func affected(operation, entity string, result *gorm.DB) error {
	if result.Error != nil {
		return classify(operation, entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound(entity)
	}
	return nil
}
