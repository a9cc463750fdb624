package refresh

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Success: duration in seconds", func(t *testing.T) {
		schedule, err := Parse("30s")
		require.NoError(t, err)
		assert.Equal(t, KindInterval, schedule.Kind())
		assert.Equal(t, 30*time.Second, schedule.Interval())
		assert.Equal(t, "30s", schedule.String())
	})

	t.Run("Success: duration in minutes", func(t *testing.T) {
		schedule, err := Parse("5m")
		require.NoError(t, err)
		assert.Equal(t, KindInterval, schedule.Kind())
		assert.Equal(t, 5*time.Minute, schedule.Interval())
	})

	t.Run("Success: cron expression", func(t *testing.T) {
		schedule, err := Parse("*/5 * * * *")
		require.NoError(t, err)
		assert.Equal(t, KindCron, schedule.Kind())
		assert.Zero(t, schedule.Interval())
	})

	t.Run("Success: surrounding whitespace is trimmed", func(t *testing.T) {
		schedule, err := Parse("  45s  ")
		require.NoError(t, err)
		assert.Equal(t, 45*time.Second, schedule.Interval())
	})

	t.Run("Failure: empty spec", func(t *testing.T) {
		_, err := Parse("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("Failure: sub-second interval", func(t *testing.T) {
		_, err := Parse("100ms")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least")
	})

	t.Run("Failure: garbage spec", func(t *testing.T) {
		_, err := Parse("whenever")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "neither a duration nor a cron expression")
	})

	t.Run("Failure: six-field cron is not standard", func(t *testing.T) {
		_, err := Parse("* * * * * *")
		require.Error(t, err)
	})
}

func TestNext(t *testing.T) {
	t.Run("interval schedules tick a fixed duration later", func(t *testing.T) {
		schedule, err := Parse("30s")
		require.NoError(t, err)

		from := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, from.Add(30*time.Second), schedule.Next(from))
	})

	t.Run("cron schedules tick on the expression boundary", func(t *testing.T) {
		schedule, err := Parse("0 * * * *")
		require.NoError(t, err)

		from := time.Date(2025, 6, 1, 12, 34, 56, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC), schedule.Next(from))
	})

	t.Run("five-minute cron from a boundary", func(t *testing.T) {
		schedule, err := Parse("*/5 * * * *")
		require.NoError(t, err)

		from := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 6, 1, 12, 10, 0, 0, time.UTC), schedule.Next(from))
	})
}

func TestWait(t *testing.T) {
	t.Run("Success: an instant already due returns immediately", func(t *testing.T) {
		schedule, err := Parse("1s")
		require.NoError(t, err)

		start := time.Now()
		err = schedule.Wait(context.Background(), start.Add(-2*time.Second))
		require.NoError(t, err)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("Failure: cancelled context stops the wait", func(t *testing.T) {
		schedule, err := Parse("1h")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = schedule.Wait(ctx, time.Now())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
