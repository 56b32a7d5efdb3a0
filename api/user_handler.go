package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
}

func newUserHandler(userRepo *database.UserRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()
	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
	}
}

// getAllUsers lists accounts for the admin users tab
// @Summary Get users
// @Tags Users
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /api/users [get]
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, nonNil(users))
	}
}

// verifyAdmin grants or revokes editing rights. An empty body grants both
// flags.
// @Summary Verify admin
// @Tags Users
// @Security BearerAuth
// @Param id path string true "User ID" format(uuid)
// @Success 200 {object} models.User
// @Failure 404 {object} ErrorResponse
// @Router /api/users/{id}/verify-admin [patch]
func (h userHandler) verifyAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req verifyAdminRequest
		if err := decodeBody(r, &req, "verify admin request"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		isAdmin, isVerified := true, true
		if req.IsAdmin != nil {
			isAdmin = *req.IsAdmin
		}
		if req.IsVerified != nil {
			isVerified = *req.IsVerified
		}

		user, err := h.userRepo.SetRoles(id, isAdmin, isVerified)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor, _ := ctxGetUser(r.Context())
		h.logger.Info().
			Str("userId", user.ID.String()).
			Str("by", actor.Email).
			Bool("isAdmin", isAdmin).
			Bool("isVerified", isVerified).
			Msg("updated user roles")
		h.responder.WriteJSON(w, user)
	}
}
