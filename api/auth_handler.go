package api

import (
	"net/http"
	"slices"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	userRepo    *database.UserRepo
	tokens      *services.TokenIssuer
	adminEmails []string
}

func newAuthHandler(userRepo *database.UserRepo, tokens *services.TokenIssuer, adminEmails []string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()
	normalized := make([]string, 0, len(adminEmails))
	for _, email := range adminEmails {
		normalized = append(normalized, models.NormalizeEmail(email))
	}
	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		userRepo:    userRepo,
		tokens:      tokens,
		adminEmails: normalized,
	}
}

func (h authHandler) respondWithToken(w http.ResponseWriter, status int, user *models.User) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
		return
	}
	h.responder.WriteJSONStatus(w, status, AuthResponse{Token: token, User: user})
}

// signup creates an account
// @Summary Sign up
// @Description Creates a user. Addresses listed in ADMIN_EMAILS start as verified admins; everyone else waits for verification.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} AuthResponse
// @Failure 409 {object} ErrorResponse "email already registered"
// @Router /api/auth/signup [post]
func (h authHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := decodeBody(r, &creds, "signup"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hash, err := services.HashPassword(creds.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		user := &models.User{
			Name:         creds.Name,
			Email:        models.NormalizeEmail(creds.Email),
			PasswordHash: hash,
		}
		if slices.Contains(h.adminEmails, user.Email) {
			user.IsAdmin = true
			user.IsVerified = true
		}
		if err := user.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.userRepo.Add(user); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("userId", user.ID.String()).Bool("isAdmin", user.IsAdmin).Msg("user signed up")
		h.respondWithToken(w, http.StatusCreated, user)
	}
}

// login exchanges credentials for a token
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ErrorResponse "invalid email or password"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := decodeBody(r, &creds, "login"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(creds.Email)
		if err != nil {
			if errs.IsNotFound(err) {
				// Same answer as a wrong password.
				h.responder.WriteError(w, errs.NewInvalidCredentialsError())
				return
			}
			h.responder.WriteError(w, err)
			return
		}
		if !services.CheckPassword(user.PasswordHash, creds.Password) {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		h.respondWithToken(w, http.StatusOK, user)
	}
}

// me returns the user behind the bearer token
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := ctxGetUser(r.Context())
		h.responder.WriteJSON(w, user)
	}
}
