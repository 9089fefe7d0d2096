package uow

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"staybook/internal/infra/repository"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxRetries  = 3
	baseBackoff = 10 * time.Millisecond

	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
}

func NewPostgresUnitOfWork(pool *pgxpool.Pool) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{pool: pool}
}

// Within runs fn inside a transaction and retries on serialization failures
// and deadlocks with jittered backoff. fn must be safe to re-run: repositories
// only touch the database, so a rolled-back attempt leaves no trace.
func (u *PostgresUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := baseBackoff * time.Duration(1<<(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff)))
			select {
			case <-time.After(backoff + jitter):
			case <-ctx.Done():
				return errs.Wrap(ctx.Err(), "transaction retry cancelled")
			}
		}

		lastErr = u.runOnce(ctx, fn)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
	}
	return errs.Wrap(lastErr, "transaction retries exhausted")
}

func (u *PostgresUnitOfWork) runOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.Begin(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		_ = pgxTx.Rollback(ctx)
	}()

	if err := fn(ctx, newTxRepos(pgxTx)); err != nil {
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// Idempotency returns a pool-backed repository for the retention purge, which
// deletes expired rows without a surrounding transaction.
func (u *PostgresUnitOfWork) Idempotency() shared.IdempotencyRepository {
	return repository.NewIdempotencyRepository(u.pool)
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}

// txRepos constructs repositories lazily against the open transaction.
type txRepos struct {
	tx pgx.Tx

	reservations *repository.ReservationRepository
	inventory    *repository.InventoryRepository
	idempotency  *repository.IdempotencyRepository
	transitions  *repository.TransitionRepository
}

func newTxRepos(tx pgx.Tx) *txRepos {
	return &txRepos{tx: tx}
}

func (t *txRepos) Reservations() shared.ReservationRepository {
	if t.reservations == nil {
		t.reservations = repository.NewReservationRepository(t.tx)
	}
	return t.reservations
}

func (t *txRepos) Inventory() shared.InventoryRepository {
	if t.inventory == nil {
		t.inventory = repository.NewInventoryRepository(t.tx)
	}
	return t.inventory
}

func (t *txRepos) Idempotency() shared.IdempotencyRepository {
	if t.idempotency == nil {
		t.idempotency = repository.NewIdempotencyRepository(t.tx)
	}
	return t.idempotency
}

func (t *txRepos) Transitions() shared.TransitionRepository {
	if t.transitions == nil {
		t.transitions = repository.NewTransitionRepository(t.tx)
	}
	return t.transitions
}
