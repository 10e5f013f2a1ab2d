package uow

import (
	"context"
	"errors"
	"log/slog"

	"table-reserve/internal/infra/db"
	"table-reserve/internal/infra/repository"
	"table-reserve/internal/pkg/errs"
	"table-reserve/internal/pkg/retry"
	"table-reserve/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

type PostgresUoW struct {
	pool     *pgxpool.Pool
	retryCfg retry.Config
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{
		pool:     pool,
		retryCfg: retry.DefaultConfig(),
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	op := func(ctx context.Context) error {
		return u.runOneTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
	}

	err := retry.Do(ctx, u.retryCfg, op, isRetryableError)
	if err != nil && isRetryableError(err) {
		slog.Error("transaction failed after max retries", "error", err.Error())
		return errs.Mark(err, errs.ErrStoreFailure)
	}
	return err
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

// One attempt: begin, run, commit; rollback on every other exit path.
func (u *PostgresUoW) runOneTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "error", rollbackErr.Error())
			}
		}
	}()

	tx := &pgTx{dbtx: pgxTx}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
			return true
		}
	}

	return pgconn.SafeToRetry(err)
}

type pgTx struct {
	dbtx pgx.Tx

	reservationRepo  *repository.ReservationRepository
	notificationRepo *repository.NotificationRepository
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository()
	}
	return t.reservationRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository()
	}
	return t.notificationRepo
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

// compile-time interface checks
var (
	_ shared.UnitOfWork = (*PostgresUoW)(nil)
	_ shared.Tx         = (*pgTx)(nil)
)
