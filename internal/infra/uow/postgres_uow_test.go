//go:build unit

package uow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serializable = pgx.TxOptions{IsoLevel: pgx.Serializable}

func newTestUoW(t *testing.T) (*PostgresUoW, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	u := NewPostgresUoW(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	u.base = time.Millisecond
	return u, mock
}

func TestWithin_CommitsOnSuccess(t *testing.T) {
	u, mock := newTestUoW(t)
	id := uuid.New()

	mock.ExpectBeginTx(serializable)
	mock.ExpectExec("DELETE FROM appointments").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Appointments().Delete(ctx, id)
	})
	require.NoError(t, err)
}

func TestWithin_RollsBackOnError(t *testing.T) {
	u, mock := newTestUoW(t)
	boom := errors.New("domain rejected")

	mock.ExpectBeginTx(serializable)
	mock.ExpectRollback()

	err := u.Within(context.Background(), func(context.Context, shared.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, errs.Is(err, errs.ErrTransactionFailed))
}

func TestWithin_BeginFailureIsTransactionFailure(t *testing.T) {
	u, mock := newTestUoW(t)
	mock.ExpectBeginTx(serializable).WillReturnError(errors.New("connection refused"))

	err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
		t.Fatal("fn must not run without a transaction")
		return nil
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errTransactionBegin))
	assert.True(t, errs.Is(err, errs.ErrTransactionFailed))
}

func TestWithin_RetriesSerializationFailures(t *testing.T) {
	u, mock := newTestUoW(t)
	id := uuid.New()
	serialization := &pgconn.PgError{Code: pgErrCodeSerializationFailure}

	mock.ExpectBeginTx(serializable)
	mock.ExpectExec("DELETE FROM appointments").WithArgs(id).WillReturnError(serialization)
	mock.ExpectRollback()
	mock.ExpectBeginTx(serializable)
	mock.ExpectExec("DELETE FROM appointments").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	calls := 0
	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		calls++
		return tx.Appointments().Delete(ctx, id)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithin_GivesUpAfterMaxRetries(t *testing.T) {
	u, mock := newTestUoW(t)
	u.maxRetries = 1
	deadlock := &pgconn.PgError{Code: pgErrCodeDeadlockDetected}

	for range 2 {
		mock.ExpectBeginTx(serializable)
		mock.ExpectRollback()
	}

	err := u.Within(context.Background(), func(context.Context, shared.Tx) error { return deadlock })
	require.Error(t, err)
	assert.True(t, errs.Is(err, errMaxRetriesExceeded))
	assert.True(t, errs.Is(err, errs.ErrTransactionFailed))
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"exclusion violation", &pgconn.PgError{Code: "23P01"}, false},
		{"plain error", errors.New("x"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := range 3 {
		got := calculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base
		assert.GreaterOrEqual(t, got, floor)
		assert.Less(t, got, floor+floor/5+time.Nanosecond)
	}
}
