// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/MKhiriev/tapcard/internal/config"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/migrations"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	// maxTxAttempts bounds how many times a transaction is replayed after a
	// retryable postgres failure.
	maxTxAttempts = 3

	txRetryBaseBackoff = 25 * time.Millisecond
	txRetryMaxBackoff  = 500 * time.Millisecond
)

// psql builds postgres-flavoured ($1, $2, ...) queries.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DB is the shared postgres handle of all repositories.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	// txBackoff returns the pause before replaying a transaction after the
	// given failed attempt. nil means [txRetryBackoff].
	txBackoff func(attempt int) time.Duration
}

// NewConnectPostgres opens and pings a pgx-backed *sql.DB.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}, nil
}

// Migrate applies the embedded goose migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// inTx runs fn inside a transaction and commits it. When the whole
// transaction fails with a retryable postgres error it is replayed up to
// [maxTxAttempts] times with a growing, jittered pause in between. A
// cancelled context stops the retries.
func (db *DB) inTx(ctx context.Context, funcName string, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.runTx(ctx, fn)
		if err == nil || !db.retryable(err) || attempt == maxTxAttempts {
			return err
		}

		backoff := db.backoff(attempt)
		log.Warn().
			Err(err).
			Str("func", funcName).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("retrying transaction after retryable postgres error")

		if waitErr := sleepCtx(ctx, backoff); waitErr != nil {
			return fmt.Errorf("%w: retry aborted: %w", err, waitErr)
		}
	}

	return err
}

func (db *DB) backoff(attempt int) time.Duration {
	if db.txBackoff != nil {
		return db.txBackoff(attempt)
	}
	return txRetryBackoff(attempt)
}

// txRetryBackoff doubles from txRetryBaseBackoff per attempt, capped at
// txRetryMaxBackoff, minus up to 20% jitter.
func txRetryBackoff(attempt int) time.Duration {
	backoff := txRetryMaxBackoff
	if attempt < 16 {
		backoff = min(txRetryBaseBackoff<<(attempt-1), txRetryMaxBackoff)
	}
	jitter := time.Duration(rand.Int64N(int64(backoff/5) + 1))
	return backoff - jitter
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (db *DB) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (db *DB) retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// constraintName returns the violated constraint of a postgres error.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}

	return ""
}
