//go:build unit

package professional_test

import (
	"testing"
	"time"

	"salon-scheduler/internal/domain/professional"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanPerformService(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	haircut, coloring := uuid.New(), uuid.New()

	p, err := professional.NewProfessional(uuid.New(), "Ana", []uuid.UUID{haircut}, nil, now)
	require.NoError(t, err)

	assert.True(t, p.CanPerformService(haircut))
	assert.False(t, p.CanPerformService(coloring))
	assert.False(t, p.HasExternalCalendar())

	t.Run("inactive professional cannot perform anything", func(t *testing.T) {
		inactive, err := p.Deactivate(now)
		require.NoError(t, err)

		assert.False(t, inactive.CanPerformService(haircut))
		assert.True(t, p.IsActive(), "original snapshot is untouched")

		_, err = inactive.Deactivate(now)
		require.ErrorIs(t, err, professional.ErrAlreadyInactive)
	})

	t.Run("service set replaced", func(t *testing.T) {
		updated := p.WithServices([]uuid.UUID{coloring}, now)
		assert.True(t, updated.CanPerformService(coloring))
		assert.False(t, updated.CanPerformService(haircut))
		assert.Len(t, updated.ServiceIDs(), 1)
	})
}

func TestNewProfessionalValidation(t *testing.T) {
	_, err := professional.NewProfessional(uuid.New(), "   ", nil, nil, time.Now())
	require.ErrorIs(t, err, professional.ErrEmptyName)
}

func TestExternalCalendar(t *testing.T) {
	cal := "ana@studio.example"
	p, err := professional.NewProfessional(uuid.New(), "Ana", nil, &cal, time.Now())
	require.NoError(t, err)
	assert.True(t, p.HasExternalCalendar())

	empty := ""
	assert.False(t, p.WithExternalCalendar(&empty, time.Now()).HasExternalCalendar())
}
