//go:build unit

package pgconv_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableRoundTrip(t *testing.T) {
	id := uuid.New()
	got := pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(&id))
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(nil)))

	s := "evt-1"
	assert.Equal(t, &s, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(&s)))
	assert.False(t, pgconv.StringPtrToPgtype(nil).Valid)
	assert.Nil(t, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(nil)))
}

func TestTimeIsUTC(t *testing.T) {
	local := time.Date(2026, 3, 10, 9, 0, 0, 0, time.FixedZone("-03", -3*60*60))
	stored := pgconv.TimeToPgtype(local)
	assert.Equal(t, time.UTC, stored.Time.Location())
	assert.True(t, pgconv.TimeFromPgtype(stored).Equal(local))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(fmt.Errorf("find appointment: %w", pgx.ErrNoRows)))
	assert.False(t, pgconv.IsNoRows(errors.New("boom")))
}
