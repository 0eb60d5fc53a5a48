package postgres

import (
	"context"
	"courtbook/config"
	"courtbook/shared/constant"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type txKey struct{}

// Transactor runs a unit of work inside one serializable transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	Savepoint(ctx context.Context, name string, fn func(ctx context.Context) error) error
}

type transactor struct {
	db       *Connection
	maxRetry int
}

func NewTransactor(db *Connection, cfg *config.Config) Transactor {
	return &transactor{
		db:       db,
		maxRetry: max(cfg.DB.Postgres.TxMaxRetry, 1),
	}
}

// WithTx stores tx in ctx so repositories pick it up.
func WithTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFrom returns the transaction carried by ctx, if any.
func TxFrom(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)

	return tx, ok && tx != nil
}

// WithinTx commits when fn returns nil and rolls back otherwise. Serialization
// failures re-run fn from the start. A call made inside a running transaction joins it.
func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := TxFrom(ctx); ok {
		return fn(ctx)
	}

	for attempt := 1; attempt <= t.maxRetry; attempt++ {
		err = t.run(ctx, fn)
		if !IsRetryable(err) {
			return err
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("transaction serialization failure, retrying")
	}

	return err
}

func (t *transactor) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := t.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}

			return
		}

		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("failed to commit transaction: %w", err)
		}
	}()

	return fn(WithTx(ctx, tx))
}

// Savepoint runs fn so that its failure leaves the surrounding transaction usable.
// Postgres aborts the whole transaction on any error otherwise. Outside a transaction
// fn simply runs. name must be a plain SQL identifier.
func (t *transactor) Savepoint(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	tx, ok := TxFrom(ctx)
	if !ok {
		return fn(ctx)
	}

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}

	if err := fn(ctx); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			log.Error().Err(rbErr).Str("savepoint", name).Msg("failed to rollback to savepoint")

			return fmt.Errorf("failed to rollback to savepoint: %w", rbErr)
		}

		return err
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}

	return nil
}

// IsErrorCode reports whether err wraps a postgres error with the given SQLSTATE.
func IsErrorCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}

	return false
}

// IsRetryable reports whether the transaction may succeed when run again.
func IsRetryable(err error) bool {
	return IsErrorCode(err, constant.PqErrorCodeSerializationFailure) ||
		IsErrorCode(err, constant.PqErrorCodeDeadlockDetected)
}
