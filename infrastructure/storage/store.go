// Package storage owns the relational schema and the transactional
// execution substrate. No business logic lives here; the unique
// constraints are enforcement backstops, not the sequencing mechanism.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store wraps the shared gorm pool. It is built once at startup, passed by
// reference to request handlers, and torn down explicitly on shutdown.
type Store struct {
	db         *gorm.DB
	log        *slog.Logger
	rowLocking bool
}

// OpenPostgres connects, verifies the connection, applies pool limits and
// runs the schema migration.
func OpenPostgres(dsn string, log *slog.Logger, pool PoolConfig) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing connection pool: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	s := &Store{db: db, log: log, rowLocking: true}
	if err = s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// OpenSQLite opens an embedded database, used for local development and
// tests. SQLite has no FOR UPDATE; its single-writer connection gives the
// same exclusion, so the locking clause is disabled for this dialect.
func OpenSQLite(path string, log *slog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing connection pool: %w", err)
	}
	// Single connection to prevent SQLITE_BUSY under concurrent writers.
	sqlDB.SetMaxOpenConns(1)

	s := &Store{db: db, log: log, rowLocking: false}
	if err = s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// TranslateError turns dialect-specific unique violations into
		// gorm.ErrDuplicatedKey so callers can classify them portably.
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

func (s *Store) migrate() error {
	if err := s.db.AutoMigrate(&Sender{}, &Message{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// WithTx runs fn inside one transaction bound to ctx. A nil return commits;
// any error (or a context cancellation surfacing through the driver) rolls
// the whole transaction back before the error is reported upward.
func (s *Store) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// RowLocking reports whether the dialect honors SELECT ... FOR UPDATE.
func (s *Store) RowLocking() bool { return s.rowLocking }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool. Lifecycle is the process
// lifetime; main defers this right after a successful Open.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.log.Info("Closing database pool...")
	return sqlDB.Close()
}
