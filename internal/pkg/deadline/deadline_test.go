//go:build unit

package deadline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-scheduler/internal/pkg/deadline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall(t *testing.T) {
	t.Run("returns the value of a fast call", func(t *testing.T) {
		v, err := deadline.Call(context.Background(), time.Second, func(context.Context) (int, error) {
			return 7, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("gives up on a call that ignores cancellation", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		started := time.Now()
		_, err := deadline.Call(context.Background(), 20*time.Millisecond, func(context.Context) (int, error) {
			<-release
			return 1, nil
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(started), time.Second)
	})

	t.Run("passes errors through", func(t *testing.T) {
		boom := errors.New("boom")
		err := deadline.Do(context.Background(), time.Second, func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("zero timeout calls directly", func(t *testing.T) {
		v, err := deadline.Call(context.Background(), 0, func(ctx context.Context) (bool, error) {
			_, has := ctx.Deadline()
			return has, nil
		})
		require.NoError(t, err)
		assert.False(t, v)
	})
}
