package injector

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/collider/internal/core/events/bus"
	"github.com/zeusync/collider/internal/core/observability/log"
	"github.com/zeusync/collider/internal/core/systems/simulation"
	"github.com/zeusync/collider/internal/server"
)

const testScene = `
config:
  arena_extent: 100
  tick_interval: 2ms
bodies:
  - {x: 0, y: 0, fx: 10, fy: 0, mass: 1}
  - {x: 8, y: 0, fx: -5, fy: 0, mass: 2}
  - {x: 40, y: 40, fx: 0, fy: 3, mass: 1}
`

func newApp(t *testing.T) *App {
	t.Helper()
	scene, err := simulation.LoadYAML(strings.NewReader(testScene))
	require.NoError(t, err)

	hubConfig := server.DefaultConfig()
	hubConfig.ListenAddr = "127.0.0.1:0"

	app, err := InitializeApp(scene, hubConfig, log.LevelError)
	require.NoError(t, err)
	return app
}

func TestInitializeApp(t *testing.T) {
	app := newApp(t)

	require.Equal(t, 3, app.World.Len())
	registered := app.Manager.Systems()
	require.Len(t, registered, 1)
	require.Equal(t, app.World.Name(), registered[0].Name())
}

func TestInitializeApp_InvalidScene(t *testing.T) {
	scene, err := simulation.LoadYAML(strings.NewReader("config:\n  workers: 0\n"))
	require.NoError(t, err)

	_, err = InitializeApp(scene, server.DefaultConfig(), log.LevelError)
	require.ErrorIs(t, err, simulation.ErrInvalidConfig)
}

func TestApp_Run(t *testing.T) {
	app := newApp(t)

	contacts := 0
	_, err := app.Bus.Subscribe(simulation.EventContact, func(bus.Event) error {
		contacts++
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx, 200) }()

	require.Eventually(t, func() bool { return app.Hub.Addr() != nil }, time.Second, time.Millisecond)
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+app.Hub.Addr().String()+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	var snap simulation.Snapshot
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&snap))
	require.Len(t, snap.Bodies, 3)
	require.Equal(t, float32(100), snap.Extent)

	require.NoError(t, <-done)
	require.GreaterOrEqual(t, app.World.Tick(), uint64(200))
	require.Positive(t, contacts)
}
