package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ismail-dev-code/career-linker-server/internal/config"
)

// TruncatingStore is a Store that can drop every job and application
type TruncatingStore interface {
	Store
	Truncate(ctx context.Context) error
}

var (
	_ TruncatingStore = (*PostgresStore)(nil)
	_ TruncatingStore = (*MemoryStore)(nil)
)

// Open returns the store selected by cfg.Driver
func Open(cfg config.DatabaseConfig, logger zerolog.Logger) (TruncatingStore, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		return NewMemoryStore(), nil
	case config.DriverPostgres, "":
		store, err := NewPostgresStore(cfg, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
