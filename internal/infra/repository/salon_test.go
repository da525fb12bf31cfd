//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-scheduler/internal/domain/salon"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created         = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	salonRowColumns = []string{"id", "owner_id", "name", "timezone", "plan", "working_hours", "settings", "created_at", "updated_at"}
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestSalonRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success: decodes working hours and settings", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM salons WHERE id").
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(salonRowColumns).AddRow(
				id, uuid.New(), "Studio Bela", "America/Sao_Paulo", "pro",
				[]byte(`{"1":{"start":"09:00","end":"18:00"},"6":{"start":"09:00","end":"13:00"}}`),
				[]byte(`{"reminders":true}`), created, created,
			))

		s, err := repository.NewSalonRepository(mock).FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, s)

		assert.Equal(t, "Studio Bela", s.Name())
		assert.Equal(t, salon.PlanPro, s.Plan())
		monday, ok := s.WorkingHoursFor(time.Monday)
		require.True(t, ok)
		assert.Equal(t, "09:00", monday.Start.String())
		assert.Equal(t, "18:00", monday.End.String())
		_, ok = s.WorkingHoursFor(time.Sunday)
		assert.False(t, ok)
		assert.Equal(t, true, s.Settings()["reminders"])
	})

	t.Run("not found: returns nil without error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM salons WHERE id").WithArgs(id).WillReturnError(pgx.ErrNoRows)

		s, err := repository.NewSalonRepository(mock).FindByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("error: broken working hours document", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM salons WHERE id").
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(salonRowColumns).AddRow(
				id, uuid.New(), "Studio Bela", "America/Sao_Paulo", "free",
				[]byte(`{"9":{"start":"09:00","end":"18:00"}}`), nil, created, created,
			))

		_, err := repository.NewSalonRepository(mock).FindByID(ctx, id)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("error: connection failure is classified", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM salons WHERE id").WithArgs(id).WillReturnError(errors.New("connection refused"))

		_, err := repository.NewSalonRepository(mock).FindByID(ctx, id)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestSalonRepository_Save(t *testing.T) {
	wh, err := salon.NewWorkingHours("09:00", "18:00")
	require.NoError(t, err)
	s, err := salon.NewSalon(uuid.New(), "Studio Bela", "", map[time.Weekday]salon.WorkingHours{time.Tuesday: wh}, created)
	require.NoError(t, err)

	mock := newMock(t)
	mock.ExpectExec("INSERT INTO salons").
		WithArgs(
			s.ID(), s.OwnerID(), "Studio Bela", "America/Sao_Paulo", "free",
			[]byte(`{"2":{"start":"09:00","end":"18:00"}}`), []byte(`{}`), created, created,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repository.NewSalonRepository(mock).Save(context.Background(), s))
}
