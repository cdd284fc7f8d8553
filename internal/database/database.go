// Package database implement the document store on top of postgres jsonb columns, plus an in-memory store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	// Register pgx as database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ismail-dev-code/career-linker-server/internal/config"
	"github.com/ismail-dev-code/career-linker-server/internal/model"
)

// PostgresStore holds the GORM DB instance backing both collections.
type PostgresStore struct {
	*gorm.DB
	logger zerolog.Logger
	// cached raw DB and mutex for lazy-init
	sqlDB *sql.DB
	mu    sync.RWMutex
}

var _ Store = (*PostgresStore)(nil)

// jsonb expression indexes backing the document filters
var documentIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_jobs_hr_email ON jobs ((doc->>'hr_email'))`,
	`CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications ((doc->>'jobId'))`,
	`CREATE INDEX IF NOT EXISTS idx_applications_applicant_email ON applications ((doc->>'applicantEmail'))`,
}

// NewPostgresStore opens a connection with the given configuration, then bootstraps the tables.
func NewPostgresStore(cfg config.DatabaseConfig, logger zerolog.Logger) (*PostgresStore, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	return openPostgres(dsn, logger)
}

func openPostgres(dsn string, logger zerolog.Logger) (*PostgresStore, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if gin.IsDebugging() {
		gdb = gdb.Debug()
	}

	store := &PostgresStore{
		DB:     gdb,
		logger: logger,
	}

	if err := store.installExtension(); err != nil {
		return nil, fmt.Errorf("install extension: %w", err)
	}
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return store, nil
}

// Raw returns the underlying *sql.DB, caching it after the first successful retrieval.
// It is safe for concurrent use.
func (d *PostgresStore) Raw() (*sql.DB, error) {
	if d == nil {
		return nil, fmt.Errorf("PostgresStore is nil")
	}

	d.mu.RLock()
	if d.sqlDB != nil {
		raw := d.sqlDB
		d.mu.RUnlock()
		return raw, nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sqlDB != nil {
		return d.sqlDB, nil
	}
	if d.DB == nil {
		return nil, fmt.Errorf("gorm DB is nil")
	}
	raw, err := d.DB.DB()
	if err != nil {
		return nil, err
	}
	d.sqlDB = raw
	return raw, nil
}

// Migrate creates the jobs and applications tables and their document indexes
func (d *PostgresStore) Migrate() error {
	if err := d.AutoMigrate(model.MigrateAble...); err != nil {
		return err
	}
	for _, stmt := range documentIndexes {
		if err := d.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Truncate removes every job and application document
func (d *PostgresStore) Truncate(ctx context.Context) error {
	return d.WithContext(ctx).Exec(`TRUNCATE TABLE applications, jobs`).Error
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (d *PostgresStore) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := make(map[string]string)

	oriDB, err := d.Raw()
	if err == nil {
		err = oriDB.PingContext(ctx)
	}
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		d.logger.Error().Err(err).Msg("db down")
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := oriDB.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	if dbStats.OpenConnections > 40 {
		stats["message"] = "The database is experiencing heavy load."
	}

	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

// Close closes the database connection.
func (d *PostgresStore) Close() error {
	oriDB, err := d.Raw()
	if err != nil {
		return err
	}
	d.logger.Info().Msg("disconnected from database")
	return oriDB.Close()
}

func (d *PostgresStore) installExtension() error {
	err := d.WithContext(context.Background()).Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error
	if err != nil {
		return err
	}
	d.logger.Debug().Msg("uuid-ossp extension installed or already exists")
	return nil
}
