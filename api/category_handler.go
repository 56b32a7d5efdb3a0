package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
)

type categoryHandler struct {
	resourceHandler[models.Category, *models.Category]
	categoryRepo *database.CategoryRepo
}

func newCategoryHandler(categoryRepo *database.CategoryRepo) categoryHandler {
	return categoryHandler{
		resourceHandler: newResourceHandler[models.Category]("category", categoryRepo),
		categoryRepo:    categoryRepo,
	}
}

// getAllCategories retrieves all categories
// @Summary Get all categories
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} ErrorResponse
// @Router /api/categories [get]
func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, nonNil(categories))
	}
}

// createCategory creates a new category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body models.Category true "Category data"
// @Success 201 {object} models.Category
// @Failure 400 {object} ErrorResponse "missing key or title"
// @Failure 409 {object} ErrorResponse "key already used"
// @Router /api/categories [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return h.create(nil)
}

// updateCategory applies a partial update
// @Summary Update category
// @Tags Categories
// @Security BearerAuth
// @Param id path string true "Category ID" format(uuid)
// @Success 200 {object} models.Category
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [patch]
func (h categoryHandler) updateCategory() http.HandlerFunc {
	return h.update(nil)
}

// deleteCategory deletes a category by ID
// @Summary Delete category
// @Tags Categories
// @Security BearerAuth
// @Param id path string true "Category ID" format(uuid)
// @Success 200 {object} StatusResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [delete]
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return h.delete()
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
