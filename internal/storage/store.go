package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"scentra-be/internal/config"

	_ "github.com/lib/pq"
)

// Store owns the database handle. It is constructed once at process start,
// injected into the repositories, and closed at shutdown.
type Store struct {
	db *sql.DB
}

func Open(cfg *config.Config) (*Store, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an existing handle, used by tests with sqlmock.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Begin opens a unit of work. The caller is responsible for calling
// Commit or Rollback exactly once; Rollback after Commit is a no-op.
func (s *Store) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &unitOfWork{tx: tx}, nil
}
