package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
)

type clientHandler struct {
	resourceHandler[models.Client, *models.Client]
	clientRepo *database.ClientRepo
}

func newClientHandler(clientRepo *database.ClientRepo) clientHandler {
	return clientHandler{
		resourceHandler: newResourceHandler[models.Client]("client", clientRepo),
		clientRepo:      clientRepo,
	}
}

// getAllClients retrieves all clients
// @Summary Get all clients
// @Tags Clients
// @Produce json
// @Success 200 {array} models.Client
// @Router /api/clients [get]
func (h clientHandler) getAllClients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := h.clientRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, nonNil(clients))
	}
}

// @Summary Create client
// @Tags Clients
// @Security BearerAuth
// @Param client body models.Client true "Client data"
// @Success 201 {object} models.Client
// @Router /api/clients [post]
func (h clientHandler) createClient() http.HandlerFunc {
	return h.create(nil)
}

// @Summary Update client
// @Tags Clients
// @Security BearerAuth
// @Router /api/clients/{id} [patch]
func (h clientHandler) updateClient() http.HandlerFunc {
	return h.update(nil)
}

// @Summary Delete client
// @Tags Clients
// @Security BearerAuth
// @Router /api/clients/{id} [delete]
func (h clientHandler) deleteClient() http.HandlerFunc {
	return h.delete()
}
