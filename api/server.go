package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// NewServer builds the HTTP server. The public site, when given, is served
// at / next to the API.
func NewServer(database database.Database, opts ...Option) (Server, error) {
	r := router{config: config.New()}
	for _, opt := range opts {
		opt(&r)
	}
	c := r.config

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()
	r.startupTime = startupTime

	handler, err := newRouter(database, r)
	if err != nil {
		return Server{}, err
	}

	server := &http.Server{
		Addr:         address,
		Handler:      handler,
		ReadTimeout:  config.GetDuration(c, "READ_TIMEOUT_SECONDS", 30*time.Second),
		WriteTimeout: config.GetDuration(c, "WRITE_TIMEOUT_SECONDS", 60*time.Second),
		IdleTimeout:  config.GetDuration(c, "IDLE_TIMEOUT_SECONDS", 180*time.Second),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	tokens      *services.TokenIssuer
	notifier    services.Notifier
	uploader    Uploader
	adminEmails []string
	site        http.Handler
}

type Option func(*router)

func WithConfig(c map[string]string) Option {
	return func(r *router) {
		r.config = c
	}
}

// WithNotifier sets who hears about contact form submissions.
func WithNotifier(n services.Notifier) Option {
	return func(r *router) {
		r.notifier = n
	}
}

func WithUploader(u *services.S3Uploader) Option {
	return func(r *router) {
		if u != nil {
			r.uploader = u
		}
	}
}

func withUploader(u Uploader) Option {
	return func(r *router) {
		r.uploader = u
	}
}

func WithSite(site http.Handler) Option {
	return func(r *router) {
		r.site = site
	}
}

func newRouter(database database.Database, router router) (*chi.Mux, error) {
	secret := config.GetString(router.config, "JWT_SECRET", "")
	ttl := time.Duration(config.GetInt(router.config, "TOKEN_TTL_HOURS", 24*7)) * time.Hour
	tokens, err := services.NewTokenIssuer(secret, ttl)
	if err != nil {
		return nil, fmt.Errorf("configuring tokens: %w", err)
	}
	router.tokens = tokens
	router.adminEmails = config.GetList(router.config, "ADMIN_EMAILS")

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(ColoredHTTPLoggingMiddleware)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	handlers := initializeHandlers(database, router)
	authMiddleware := newAuthMiddleware(router.tokens, database.UserRepo())
	setupRoutes(chiRouter, handlers, authMiddleware)

	if router.site != nil {
		chiRouter.Mount("/", router.site)
	}

	return chiRouter, nil
}

func errNoRoute(r *http.Request) error {
	return errs.NewNotFoundError(fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
