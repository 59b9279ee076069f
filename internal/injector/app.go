package injector

import (
	"context"
	"errors"

	"github.com/zeusync/collider/internal/core/events/bus"
	"github.com/zeusync/collider/internal/core/observability/log"
	"github.com/zeusync/collider/internal/core/systems"
	"github.com/zeusync/collider/internal/core/systems/simulation"
	"github.com/zeusync/collider/internal/server"
)

// App bundles the host process: the world stepped by the manager with every
// snapshot streamed to the viewer hub.
type App struct {
	Logger  *log.Logger
	Bus     bus.EventBus
	World   *simulation.World
	Manager *systems.Manager
	Hub     *server.Hub
}

func NewApp(logger *log.Logger, eventBus bus.EventBus, world *simulation.World, manager *systems.Manager, hub *server.Hub) *App {
	return &App{
		Logger:  logger,
		Bus:     eventBus,
		World:   world,
		Manager: manager,
		Hub:     hub,
	}
}

// Run starts the hub and ticks until ctx is done or maxTicks ticks have run.
// A zero maxTicks runs until cancellation.
func (a *App) Run(ctx context.Context, maxTicks uint64) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Manager.InitializeAll(ctx); err != nil {
		return err
	}
	if err := a.Hub.Start(ctx); err != nil {
		return errors.Join(err, a.Manager.ShutdownAll(context.Background()))
	}

	a.Manager.OnTick(func(tick uint64, _ float64) {
		if err := a.Hub.Broadcast(a.World.Snapshot()); err != nil {
			a.Logger.Warn("broadcast failed", log.Error(err))
		}
		if maxTicks > 0 && tick >= maxTicks {
			cancel()
		}
	})

	runErr := a.Manager.Run(ctx)

	shutdownCtx := context.Background()
	err := errors.Join(
		runErr,
		a.Hub.Stop(shutdownCtx),
		a.Manager.ShutdownAll(shutdownCtx),
	)
	_ = a.Logger.Sync()
	return err
}
