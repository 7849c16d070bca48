package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppRun(t *testing.T) {
	t.Run("returns the run error", func(t *testing.T) {
		app := New()

		err := app.Run(context.Background(), func(ctx context.Context) error {
			return errors.New("boom")
		})
		assert.EqualError(t, err, "boom")
	})

	t.Run("nil when run finishes cleanly", func(t *testing.T) {
		app := New()

		err := app.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("hooks run in reverse order on cancellation", func(t *testing.T) {
		app := New()

		var order []string
		app.AddShutdownHook(func(ctx context.Context) error {
			order = append(order, "first")
			return nil
		})
		app.AddShutdownHook(func(ctx context.Context) error {
			order = append(order, "second")
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			select {} // block until the shutdown path wins the select
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"second", "first"}, order)
	})

	t.Run("hook errors are joined", func(t *testing.T) {
		app := New()

		app.AddShutdownHook(func(ctx context.Context) error {
			return errors.New("close failed")
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := app.Run(ctx, func(ctx context.Context) error {
			select {}
		})
		assert.ErrorContains(t, err, "close failed")
	})
}
