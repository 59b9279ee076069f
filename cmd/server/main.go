package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/zeusync/collider/internal/core/observability/log"
	"github.com/zeusync/collider/internal/core/systems/simulation"
	"github.com/zeusync/collider/internal/injector"
	"github.com/zeusync/collider/internal/server"
)

func main() {
	scenePath := flag.String("scene", "", "Path to a YAML or JSON scene file")
	addr := flag.String("addr", server.DefaultConfig().ListenAddr, "Viewer websocket listen address")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	ticks := flag.Uint64("ticks", 0, "Stop after this many ticks, 0 runs until interrupted")
	workers := flag.Int("workers", 0, "Override the number of collision detection workers")
	flag.Parse()

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		fmt.Println("Error parsing log level:", err)
		os.Exit(2)
	}

	scene, err := loadScene(*scenePath)
	if err != nil {
		fmt.Println("Error loading scene:", err)
		os.Exit(1)
	}
	if *workers > 0 {
		scene.Config.Workers = *workers
	}

	hubConfig := server.DefaultConfig()
	hubConfig.ListenAddr = *addr

	app, err := injector.InitializeApp(scene, hubConfig, level)
	if err != nil {
		fmt.Println("Error creating app:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, *ticks); err != nil {
		app.Logger.Error("Run failed", log.Error(err))
		os.Exit(1)
	}
}

func loadScene(path string) (*simulation.Scene, error) {
	if path == "" {
		return &simulation.Scene{Config: simulation.DefaultConfig()}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return simulation.LoadJSON(f)
	}
	return simulation.LoadYAML(f)
}
