package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contacts    *services.ContactService
	messageRepo *database.ContactMessageRepo
}

func newContactHandler(contacts *services.ContactService, messageRepo *database.ContactMessageRepo) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()
	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contacts:    contacts,
		messageRepo: messageRepo,
	}
}

// submitContact stores a contact form submission
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Param message body models.ContactMessage true "name, email, category, message"
// @Success 201 {object} models.ContactMessage
// @Failure 400 {object} ErrorResponse
// @Router /api/contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg models.ContactMessage
		if err := decodeBody(r, &msg, "contact message"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.contacts.Submit(r.Context(), &msg); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, msg)
	}
}

// @Summary List contact messages
// @Tags Contact
// @Security BearerAuth
// @Success 200 {array} models.ContactMessage
// @Router /api/contact [get]
func (h contactHandler) getAllContactMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.messageRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, nonNil(messages))
	}
}
