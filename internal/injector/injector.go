//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/collider/internal/core/observability/log"
	"github.com/zeusync/collider/internal/core/systems/simulation"
	"github.com/zeusync/collider/internal/server"
)

func InitializeApp(scene *simulation.Scene, hubConfig server.Config, level log.Level) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
