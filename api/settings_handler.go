package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type settingsHandler struct {
	responder    Responder
	logger       zerolog.Logger
	settingsRepo *database.SettingsRepo
}

func newSettingsHandler(settingsRepo *database.SettingsRepo) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()
	return settingsHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		settingsRepo: settingsRepo,
	}
}

// getSettings returns the stored UI settings
// @Summary Get UI settings
// @Description Returns the settings record, or null when none has been saved.
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Settings
// @Router /api/settings [get]
func (h settingsHandler) getSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settingsRepo.Get()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}

// createSettings stores the settings for the first time
// @Summary Create UI settings
// @Tags Settings
// @Security BearerAuth
// @Success 201 {object} models.Settings
// @Failure 409 {object} ErrorResponse "settings already exist"
// @Router /api/settings [post]
func (h settingsHandler) createSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings := models.DefaultSettings()
		if err := decodeBody(r, &settings, "settings"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := settings.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.settingsRepo.Create(&settings); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("id", settings.ID.String()).Msg("created UI settings")
		h.responder.WriteJSONStatus(w, http.StatusCreated, settings)
	}
}

// updateSettings applies a partial update
// @Summary Update UI settings
// @Tags Settings
// @Security BearerAuth
// @Param id path string true "Settings ID" format(uuid)
// @Success 200 {object} models.Settings
// @Router /api/settings/{id} [patch]
func (h settingsHandler) updateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		settings, err := h.settingsRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := decodeBody(r, settings, "settings"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := settings.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.settingsRepo.Update(settings); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}
