// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	"github.com/alchemorsel/catalog/internal/infrastructure/persistence/database"
)

// TestDatabase provides a PostgreSQL test database running in a container
type TestDatabase struct {
	Container testcontainers.Container
	GormDB    *gorm.DB
	PgxPool   *pgxpool.Pool
	Config    config.DatabaseConfig
	t         *testing.T
}

// DatabaseConfig holds test database configuration
type DatabaseConfig struct {
	Image    string
	Database string
	Username string
	Password string
	Port     string
}

// DefaultDatabaseConfig returns the default test database configuration
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Image:    "postgres:15-alpine",
		Database: "catalog_test",
		Username: "test_user",
		Password: "test_password",
		Port:     "5432",
	}
}

// SQLiteConfig returns a database config for a private in-memory SQLite
// database named after the test
func SQLiteConfig(t *testing.T) config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		Path:        fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		LogLevel:    "silent",
		AutoMigrate: true,
	}
}

// SetupSQLiteDatabase opens a migrated in-memory SQLite database
func SetupSQLiteDatabase(t *testing.T) *gorm.DB {
	db, err := database.Open(SQLiteConfig(t), zap.NewNop())
	require.NoError(t, err, "Failed to open sqlite database")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// SetupTestDatabase creates a new test database using testcontainers
func SetupTestDatabase(t *testing.T) *TestDatabase {
	return SetupTestDatabaseWithConfig(t, DefaultDatabaseConfig())
}

// SetupTestDatabaseWithConfig creates a migrated test database with custom configuration
func SetupTestDatabaseWithConfig(t *testing.T, cfg DatabaseConfig) *TestDatabase {
	ctx := context.Background()

	dsn := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.Username, cfg.Password, host, port.Port(), cfg.Database)
	}

	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        cfg.Image,
				ExposedPorts: []string{cfg.Port + "/tcp"},
				Env: map[string]string{
					"POSTGRES_DB":       cfg.Database,
					"POSTGRES_USER":     cfg.Username,
					"POSTGRES_PASSWORD": cfg.Password,
				},
				WaitingFor: wait.ForAll(
					wait.ForLog("database system is ready to accept connections").
						WithOccurrence(2).
						WithStartupTimeout(60*time.Second),
					wait.ForSQL(nat.Port(cfg.Port+"/tcp"), "postgres", dsn),
				),
				Tmpfs: map[string]string{
					"/var/lib/postgresql/data": "rw,noexec,nosuid,size=256m",
				},
			},
			Started: true,
		})
	require.NoError(t, err, "Failed to start postgres container")

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, nat.Port(cfg.Port))
	require.NoError(t, err)

	dbConfig := config.DatabaseConfig{
		Driver:          config.DriverPostgres,
		Host:            host,
		Port:            port.Int(),
		Database:        cfg.Database,
		Username:        cfg.Username,
		Password:        cfg.Password,
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		LogLevel:        "silent",
		AutoMigrate:     true,
	}

	testDB := &TestDatabase{
		Container: container,
		Config:    dbConfig,
		t:         t,
	}
	t.Cleanup(testDB.Cleanup)

	testDB.GormDB, err = database.Open(dbConfig, zap.NewNop())
	require.NoError(t, err, "Failed to open and migrate test database")

	pgxConfig, err := pgxpool.ParseConfig(dsn(host, port))
	require.NoError(t, err, "Failed to parse pgx config")
	pgxConfig.MaxConns = 4
	pgxConfig.MinConns = 1

	testDB.PgxPool, err = pgxpool.NewWithConfig(ctx, pgxConfig)
	require.NoError(t, err, "Failed to create pgx pool")

	return testDB
}

// TruncateAllTables removes all rows and resets identity sequences
func (td *TestDatabase) TruncateAllTables() error {
	_, err := td.PgxPool.Exec(context.Background(), "TRUNCATE TABLE recipes, users RESTART IDENTITY CASCADE")
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// CountRecords counts rows in a table
func (td *TestDatabase) CountRecords(table string) (int, error) {
	var count int
	err := td.PgxPool.QueryRow(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	return count, err
}

// Cleanup closes all connections and stops the container
func (td *TestDatabase) Cleanup() {
	if td.PgxPool != nil {
		td.PgxPool.Close()
	}

	if td.GormDB != nil {
		_ = database.Close(td.GormDB)
	}

	if td.Container != nil {
		if err := td.Container.Terminate(context.Background()); err != nil {
			td.t.Logf("Failed to terminate postgres container: %v", err)
		}
	}
}
