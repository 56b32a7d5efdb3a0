package api

import (
	"time"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, router router) *routeHandlers {
	contacts := services.NewContactService(database.ContactMessageRepo(), router.notifier)

	return &routeHandlers{
		categoryHandler:    newCategoryHandler(database.CategoryRepo()),
		clientHandler:      newClientHandler(database.ClientRepo()),
		projectHandler:     newProjectHandler(database.ProjectRepo()),
		testimonialHandler: newTestimonialHandler(database.TestimonialRepo()),
		settingsHandler:    newSettingsHandler(database.SettingsRepo()),
		userHandler:        newUserHandler(database.UserRepo()),
		authHandler:        newAuthHandler(database.UserRepo(), router.tokens, router.adminEmails),
		seedHandler:        newSeedHandler(database),
		contactHandler:     newContactHandler(contacts, database.ContactMessageRepo()),
		uploadHandler:      newUploadHandler(router.uploader),
		healthHandler:      newHealthHandler(database, startupOrNow(router.startupTime)),
	}
}

func startupOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
