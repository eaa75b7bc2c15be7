package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/softbody/internal/config"
	"github.com/zeusync/softbody/internal/core/events/bus"
	"github.com/zeusync/softbody/internal/core/observability/log"
	"github.com/zeusync/softbody/internal/core/systems/physics"
	"github.com/zeusync/softbody/internal/injector"
)

func main() {
	configPath := flag.String("config", os.Getenv("SOFTBODY_CONFIG"), "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "softbody:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()

	_, err = app.Bus.Subscribe(physics.EventPointNonFinite, func(e bus.Event) error {
		data := e.Data().(physics.NonFiniteData)
		app.Logger.Warn("simulation diverged, stopping",
			log.String("body_id", data.BodyID),
			log.Int("point", data.Point),
		)
		return nil
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Logger.Info("starting softbody",
		log.String("addr", cfg.Server.Addr),
		log.Int("fps", cfg.Physics.FPS),
		log.Int("bodies", len(app.Arena.Bodies())),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.Runner.Run(gctx) })
	g.Go(func() error { return app.Server.Serve(gctx) })

	if err = g.Wait(); err != nil {
		app.Logger.Error("softbody stopped with error", log.Error(err))
		return err
	}
	app.Logger.Info("softbody stopped", log.Uint64("frames", app.Runner.Frames()))
	return nil
}
