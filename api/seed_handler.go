package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/services"
	"github.com/rs/zerolog/log"
)

type seedHandler struct {
	responder Responder
	database  database.Database
}

func newSeedHandler(db database.Database) seedHandler {
	logger := log.With().Str("handlerName", "seedHandler").Logger()
	return seedHandler{responder: NewResponder(logger), database: db}
}

// seed loads the sample content
// @Summary Load sample data
// @Description Inserts sample categories, clients, projects and approved testimonials that are not present yet.
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} services.SeedResult
// @Router /api/seed [post]
func (h seedHandler) seed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := services.Seed(h.database)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	}
}
