package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/api"
	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/services"
	"github.com/rpupo63/portfolio-site/web"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("Initializing app...")

	config.LoadEnv()
	cfg := config.New()
	if config.GetBool(cfg, "DEBUG", false) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx := context.Background()
	if err := config.LoadSSM(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("Error loading SSM parameters")
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	if err := models.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}
	currentDB := database.New(db)

	// If generating query helpers, run generation and exit
	if strings.ToLower(config.GetString(cfg, "GENERATE_QUERIES", "")) == "true" {
		log.Info().Msg("Generating query helpers...")
		if err := models.GenerateQueries(db, config.GetString(cfg, "GENERATE_QUERIES_PATH", "")); err != nil {
			log.Fatal().Err(err).Msg("Error generating query helpers")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(cfg, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		mismatches, err := models.ColumnReport(db, os.Stdout)
		if err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		if mismatches > 0 {
			os.Exit(2)
		}
		return
	}

	notifier := buildNotifier(cfg)

	uploader, err := services.NewS3Uploader(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring uploads")
	}

	profile, err := web.LoadProfile(config.GetString(cfg, "PROFILE_PATH", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading profile")
	}
	site, err := web.NewSite(currentDB, services.NewContactService(currentDB.ContactMessageRepo(), notifier), profile)
	if err != nil {
		log.Fatal().Err(err).Msg("Error building site")
	}

	// Buffered so the losing sender does not block after shutdown.
	errChannel := make(chan error, 2)

	server, err := api.NewServer(currentDB,
		api.WithConfig(cfg),
		api.WithNotifier(notifier),
		api.WithUploader(uploader),
		api.WithSite(site.Handler()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// buildNotifier returns every configured owner notifier, or nil when none
// is configured.
func buildNotifier(cfg map[string]string) services.Notifier {
	var notifiers services.Notifiers
	if email := services.NewEmailNotifier(cfg); email != nil {
		notifiers = append(notifiers, email)
	}
	if sms := services.NewSMSNotifier(cfg); sms != nil {
		notifiers = append(notifiers, sms)
	}
	if len(notifiers) == 0 {
		log.Warn().Msg("No contact notifier configured; messages are only stored")
		return nil
	}
	return notifiers
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
