package injector

import (
	"fmt"

	"github.com/google/wire"

	"github.com/zeusync/collider/internal/core/events/bus"
	"github.com/zeusync/collider/internal/core/observability/log"
	"github.com/zeusync/collider/internal/core/systems"
	"github.com/zeusync/collider/internal/core/systems/simulation"
	"github.com/zeusync/collider/internal/server"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideEventBus,
	ProvideWorld,
	ProvideManager,
	ProvideHub,
	NewApp,
)

func ProvideLogger(level log.Level) *log.Logger {
	return log.New(level)
}

func ProvideEventBus() bus.EventBus {
	return bus.New()
}

func ProvideWorld(scene *simulation.Scene, logger *log.Logger, eventBus bus.EventBus) (*simulation.World, error) {
	return scene.Build(
		simulation.WithLogger(logger),
		simulation.WithEventBus(eventBus),
	)
}

// ProvideManager creates the tick loop and registers the world as its physics system.
func ProvideManager(scene *simulation.Scene, logger *log.Logger, world *simulation.World) (*systems.Manager, error) {
	manager, err := systems.NewManager(scene.Config.TickInterval, logger)
	if err != nil {
		return nil, err
	}
	if err = manager.Register(world); err != nil {
		return nil, fmt.Errorf("register world: %w", err)
	}
	return manager, nil
}

func ProvideHub(config server.Config, logger *log.Logger) *server.Hub {
	return server.NewHub(config, logger)
}
