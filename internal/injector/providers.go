package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/softbody/internal/config"
	"github.com/zeusync/softbody/internal/core/events/bus"
	"github.com/zeusync/softbody/internal/core/observability/log"
	"github.com/zeusync/softbody/internal/core/systems/physics"
	"github.com/zeusync/softbody/internal/server"
)

// App is everything cmd/server needs to run.
type App struct {
	Config *config.Config
	Logger log.Log
	Bus    bus.EventBus
	Arena  *physics.Arena
	Runner *server.Runner
	Hub    *server.Hub
	Server *server.Server
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideBus,
	ProvideArena,
	ProvideHub,
	ProvideRunner,
	ProvideServer,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg *config.Config) *log.Logger {
	return log.NewWithConfig(log.Config{Level: cfg.LogLevel(), Encoding: cfg.Log.Encoding})
}

// ProvideBus creates the event bus with an observer that warns about slow
// handlers.
func ProvideBus(logger log.Log) bus.EventBus {
	b := bus.New()
	b.AddObserver(bus.NewLogObserver(logger.With(log.String("component", "bus")), bus.DefaultSlowDelivery))
	return b
}

// ProvideArena builds every configured body and seals the arena.
func ProvideArena(cfg *config.Config, logger log.Log, eventBus bus.EventBus) (*physics.Arena, error) {
	arena, err := physics.NewArena(cfg.ArenaConfig(),
		physics.WithLogger(logger.With(log.String("component", "arena"))),
		physics.WithBus(eventBus),
	)
	if err != nil {
		return nil, err
	}
	for _, bc := range cfg.Bodies {
		spec, err := bc.Spec()
		if err != nil {
			return nil, err
		}
		body, err := physics.NewRing(spec)
		if err != nil {
			return nil, err
		}
		if err = arena.AddBody(body); err != nil {
			return nil, err
		}
	}
	if err = arena.Seal(); err != nil {
		return nil, err
	}
	return arena, nil
}

func ProvideHub(cfg *config.Config, logger log.Log) *server.Hub {
	return server.NewHub(cfg.Server.SendBuffer, cfg.Server.WriteTimeout, logger)
}

func ProvideRunner(cfg *config.Config, arena *physics.Arena, hub *server.Hub, logger log.Log) (*server.Runner, error) {
	return server.NewRunner(arena, hub, logger, server.RunnerConfig{
		FrameDt:       cfg.FrameDt(),
		FrameInterval: cfg.FrameInterval(),
		QueueSize:     cfg.Server.CommandQueue,
	})
}

func ProvideServer(cfg *config.Config, runner *server.Runner, hub *server.Hub, logger log.Log) *server.Server {
	return server.NewServer(cfg.Server, runner, hub, logger)
}
