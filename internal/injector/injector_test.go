package injector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/hoopbot/internal/config"
	"github.com/zeusync/hoopbot/internal/core/events/bus"
)

func TestInitializeApp(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "silent"
	cfg.Seed = 5
	cfg.Play.Shots = 1
	cfg.Play.TickRate = 10_000

	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, app.Logger)
	require.Len(t, app.Rules.Rules(), 11)
	require.NotNil(t, app.Hub)
	require.NotNil(t, app.Runner)

	settled := 0
	_, err = app.Events.Subscribe(bus.TypeShotSettled, func(bus.Event) error {
		settled++
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, app.Director.Run(ctx))
	require.Equal(t, 1, settled)

	m := app.Events.GetMetrics()
	require.Positive(t, m.Published)
	require.Zero(t, m.Errors)
	require.Equal(t, uint64(1), m.SubscribersActive)
}

func TestInitializeAppRejectsBadLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"
	_, _, err := InitializeApp(cfg)
	require.Error(t, err)
}
