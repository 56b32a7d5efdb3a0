package api

import (
	"github.com/rpupo63/portfolio-site/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	categoryHandler    categoryHandler
	clientHandler      clientHandler
	projectHandler     projectHandler
	testimonialHandler testimonialHandler
	settingsHandler    settingsHandler
	userHandler        userHandler
	authHandler        authHandler
	seedHandler        seedHandler
	contactHandler     contactHandler
	uploadHandler      uploadHandler
	healthHandler      healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid field"`
	Detail  string `json:"detail" example:"invalid field: must be between 0 and 5"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"rating"`
	Details string `json:"details,omitempty" example:"must be between 0 and 5"`
}

// StatusResponse is returned by deletes and other bodiless operations.
type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"category deleted successfully"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// verifyAdminRequest is optional; both flags default to true.
type verifyAdminRequest struct {
	IsAdmin    *bool `json:"is_admin"`
	IsVerified *bool `json:"is_verified"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}
