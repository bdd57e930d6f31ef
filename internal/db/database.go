package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/expomadeinworld/directory-service/internal/config"
)

// Database holds the database connection pool
type Database struct {
	Pool *pgxpool.Pool
}

// Querier is the subset of pgx operations entity queries run on. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so the same query code serves
// request-transaction reads/writes and standalone validation checks.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// NewDatabase creates a new database connection with retry logic for serverless databases
func NewDatabase(cfg *config.Config) (*Database, error) {
	return NewDatabaseWithRetry(cfg, 5, time.Second)
}

// NewDatabaseWithRetry creates a new database connection with configurable retry logic
func NewDatabaseWithRetry(cfg *config.Config, maxRetries int, initialDelay time.Duration) (*Database, error) {
	// Prefer DATABASE_URL if provided (single DSN from the secret store)
	connStr := cfg.DB.URL
	if connStr == "" {
		connStr = cfg.DB.ConnString()
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Pool size is the configured upper bound; acquisition blocks when exhausted
	poolConfig.MaxConns = int32(cfg.DB.PoolSize)
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("[DIRECTORY-DB] Connection attempt %d/%d to database %s@%s",
			attempt, maxRetries, poolConfig.ConnConfig.User, poolConfig.ConnConfig.Host)

		pool, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err != nil {
			lastErr = fmt.Errorf("failed to create connection pool: %w", err)
			log.Printf("[DIRECTORY-DB] Failed to create pool (attempt %d): %v", attempt, err)
			if attempt < maxRetries {
				delay := time.Duration(attempt-1) * initialDelay
				log.Printf("[DIRECTORY-DB] Retrying in %v...", delay)
				time.Sleep(delay)
			}
			continue
		}

		// Test the connection with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pool.Ping(ctx)
		cancel()

		if err == nil {
			log.Printf("[DIRECTORY-DB] Successfully connected to database on attempt %d", attempt)
			break
		}

		lastErr = fmt.Errorf("failed to ping database: %w", err)
		log.Printf("[DIRECTORY-DB] Connection failed (attempt %d): %v", attempt, err)
		pool.Close()
		pool = nil

		if attempt < maxRetries {
			// Exponential backoff: 1s, 2s, 4s, 8s, 16s
			delay := initialDelay * time.Duration(1<<(attempt-1))
			log.Printf("[DIRECTORY-DB] Retrying in %v...", delay)
			time.Sleep(delay)
		}
	}

	if pool == nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, lastErr)
	}

	return &Database{Pool: pool}, nil
}

// Close closes the database connection pool
func (d *Database) Close() {
	if d.Pool != nil {
		d.Pool.Close()
		log.Println("Database connection pool closed")
	}
}

// Health checks if the database is healthy
func (d *Database) Health(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Session is the transactional scope handed to the request pipeline.
// Commit and Rollback are safe to call after the scope already ended.
type Session interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type txSession struct {
	tx pgx.Tx
}

func (s txSession) Commit(ctx context.Context) error {
	if err := s.tx.Commit(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s txSession) Rollback(ctx context.Context) error {
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

type ctxKey int

const txKey ctxKey = 0

// Begin opens a request-scoped transaction and attaches it to the returned
// context so subsequent entity operations run inside it.
func (d *Database) Begin(ctx context.Context) (context.Context, Session, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return context.WithValue(ctx, txKey, tx), txSession{tx: tx}, nil
}

// querier returns the transaction carried by ctx, or the pool when none is
func (d *Database) querier(ctx context.Context) Querier {
	if tx, ok := ctx.Value(txKey).(pgx.Tx); ok {
		return tx
	}
	return d.Pool
}
