// Package main is the entry point for the wave surface viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/waveview/internal/config"
	"github.com/Faultbox/waveview/internal/logger"
)

// viewerApp is a host path: the ImGui overlay or a bare SDL2 window.
type viewerApp interface {
	Run()
	Close()
	WatchReloads(ch <-chan *config.Config)
}

func newViewerApp(cfg *config.Config) (viewerApp, error) {
	if cfg.Window.Backend == config.BackendSDL {
		return NewBareApp(cfg)
	}
	return NewApp(cfg)
}

func main() {
	runtime.LockOSThread()

	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, cfgPath, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== waveview ===", zap.String("config", cfgPath), zap.String("backend", cfg.Window.Backend))
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := newViewerApp(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if cfg.Debug.WatchConfig && cfgPath != "" {
		reloads, err := config.Watch(ctx, cfgPath, logger.Named("config"))
		if err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		} else {
			app.WatchReloads(reloads)
		}
	}

	app.Run()
	logger.Info("viewer closed normally")
}
