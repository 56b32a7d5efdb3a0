package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rpupo63/portfolio-site/config"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// DSN builds the connection string for the configured DB_TYPE.
func DSN(cfg map[string]string) (dialect string, dsn string, err error) {
	dbType := config.GetString(cfg, "DB_TYPE", "sqlite")
	switch dbType {
	case "supa":
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(cfg, "SUPABASE_DB_HOST", ""),
			config.GetString(cfg, "SUPABASE_DB_USER", ""),
			config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(cfg, "SUPABASE_DB_NAME", ""),
			config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
		)
		return "postgres", dsn, nil
	case "postgres":
		dsn = config.GetString(cfg, "DATABASE_URL", "")
		if dsn == "" {
			return "", "", fmt.Errorf("DATABASE_URL is required for DB_TYPE=postgres")
		}
		return "postgres", dsn, nil
	case "sqlite":
		return "sqlite", config.GetString(cfg, "SQLITE_PATH", "portfolio.db"), nil
	default:
		return "", "", fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

// Open connects to the configured database and registers any read
// replicas listed in DB_REPLICA_DSNS.
func Open(cfg map[string]string) (*gorm.DB, error) {
	dialect, dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var dialector gorm.Dialector
	switch dialect {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", dialect, err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("testing database connection: %w", err)
	}

	replicas := config.GetList(cfg, "DB_REPLICA_DSNS")
	if len(replicas) > 0 {
		if dialect != "postgres" {
			return nil, fmt.Errorf("read replicas need a postgres primary, got %s", dialect)
		}
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, replica := range replicas {
			dialectors = append(dialectors, postgres.Open(replica))
		}
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("registering read replicas: %w", err)
		}
		zlog.Info().Int("replicas", len(dialectors)).Msg("Read replicas registered")
	}

	zlog.Info().Str("dialect", dialect).Msg("Connected to database")
	return db, nil
}
