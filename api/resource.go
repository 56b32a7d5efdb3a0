package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type validatable[T any] interface {
	*T
	Validate() error
}

type resourceStore[T any] interface {
	FindByID(id uuid.UUID) (*T, error)
	Add(record *T) error
	Update(record *T) error
	Delete(id uuid.UUID) error
}

// resourceHandler implements create, patch and delete for the simple
// content collections. Listing differs per collection and lives on the
// concrete handlers.
type resourceHandler[T any, PT validatable[T]] struct {
	responder Responder
	logger    zerolog.Logger
	entity    string
	store     resourceStore[T]
}

func newResourceHandler[T any, PT validatable[T]](entity string, store resourceStore[T]) resourceHandler[T, PT] {
	logger := log.With().Str("handlerName", entity+"Handler").Logger()
	return resourceHandler[T, PT]{
		responder: NewResponder(logger),
		logger:    logger,
		entity:    entity,
		store:     store,
	}
}

// create decodes, optionally adjusts, validates and stores a record.
func (h resourceHandler[T, PT]) create(prepare func(PT)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record := PT(new(T))
		if err := decodeBody(r, record, h.entity); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if prepare != nil {
			prepare(record)
		}
		if err := record.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.store.Add((*T)(record)); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Msg("created " + h.entity)
		h.responder.WriteJSONStatus(w, http.StatusCreated, record)
	}
}

// update applies the fields present in the body to the stored record.
// check, when set, runs after Validate on the merged record.
func (h resourceHandler[T, PT]) update(check func(PT) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.store.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		record := PT(existing)
		if err := decodeBody(r, record, h.entity); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := record.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if check != nil {
			if err := check(record); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}
		if err := h.store.Update(existing); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, record)
	}
}

func (h resourceHandler[T, PT]) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.store.Delete(id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("id", id.String()).Msg("deleted " + h.entity)
		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: h.entity + " deleted successfully",
		})
	}
}
