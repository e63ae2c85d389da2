// Package database opens the catalog's GORM connection for SQLite or
// PostgreSQL and prepares the schema
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	gormrepo "github.com/alchemorsel/catalog/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/catalog/internal/infrastructure/persistence/migrations"
)

// Open connects to the configured database, registers read replicas and
// migrates the schema when auto_migrate is set
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	log = log.Named("database")

	dialector, err := dialectorFor(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 NewGormLogger(log, cfg.LogLevel, cfg.SlowQueryThreshold),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// one writer avoids "database is locked" and keeps in-memory databases alive
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := registerReplicas(db, cfg, log); err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(db, cfg, log); err != nil {
			return nil, err
		}
	}

	log.Info("Database connection established",
		zap.String("driver", cfg.Driver),
		zap.Int("replicas", len(cfg.Replicas)),
	)

	return db, nil
}

// Migrate brings the schema up to date. PostgreSQL uses the versioned SQL
// migrations; SQLite uses GORM's AutoMigrate.
func Migrate(db *gorm.DB, cfg config.DatabaseConfig, log *zap.Logger) error {
	if cfg.Driver != config.DriverPostgres {
		if err := db.AutoMigrate(gormrepo.Models()...); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	migrator, err := migrations.New(sqlDB, cfg.Database, log)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Up()
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverSQLite:
		if dsn == "" {
			dsn = ":memory:"
		}
		return sqlite.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// registerReplicas routes reads to the configured replica hosts
func registerReplicas(db *gorm.DB, cfg config.DatabaseConfig, log *zap.Logger) error {
	if len(cfg.Replicas) == 0 {
		return nil
	}
	if cfg.Driver != config.DriverPostgres {
		log.Warn("Read replicas are only supported for postgres, ignoring",
			zap.Strings("replicas", cfg.Replicas))
		return nil
	}

	replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
	for _, host := range cfg.Replicas {
		replica := cfg
		replica.Host = strings.TrimSpace(host)
		replicas = append(replicas, postgres.Open(replica.DSN()))
	}

	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}).
		SetMaxOpenConns(cfg.MaxOpenConns).
		SetMaxIdleConns(cfg.MaxIdleConns).
		SetConnMaxLifetime(cfg.ConnMaxLifetime))
	if err != nil {
		return fmt.Errorf("failed to register read replicas: %w", err)
	}

	log.Info("Read replicas configured", zap.Int("replica_count", len(replicas)))
	return nil
}

// NewGormLogger bridges GORM's logger onto zap
func NewGormLogger(log *zap.Logger, level string, slowThreshold time.Duration) logger.Interface {
	logLevel := logger.Silent
	switch level {
	case "debug", "info":
		logLevel = logger.Info
	case "warn":
		logLevel = logger.Warn
	case "error":
		logLevel = logger.Error
	}

	return logger.New(
		&gormLogWriter{logger: log},
		logger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// gormLogWriter implements GORM's Writer interface
type gormLogWriter struct {
	logger *zap.Logger
}

// Printf implements the Writer interface
func (w *gormLogWriter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	switch {
	case strings.Contains(msg, "SLOW SQL"):
		w.logger.Warn("GORM slow query", zap.String("message", msg))
	case strings.Contains(msg, "error"), strings.Contains(msg, "Error"):
		w.logger.Error("GORM error", zap.String("message", msg))
	default:
		w.logger.Debug("GORM query", zap.String("message", msg))
	}
}
