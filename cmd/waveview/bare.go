package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/waveview/internal/config"
	"github.com/Faultbox/waveview/internal/engine/debug"
	"github.com/Faultbox/waveview/internal/engine/input"
	"github.com/Faultbox/waveview/internal/engine/scene"
	"github.com/Faultbox/waveview/internal/engine/window"
	"github.com/Faultbox/waveview/internal/logger"
	"github.com/Faultbox/waveview/internal/viewer"
)

// BareApp runs the viewer in a plain SDL2 window without the control panel.
// Surface controls come from the config only.
type BareApp struct {
	window      *window.Window
	host        *scene.Host
	controller  *viewer.Controller
	screenshots *debug.Screenshots
	log         *zap.Logger

	events  []input.Event
	running bool
}

// NewBareApp opens the window and builds the scene.
func NewBareApp(cfg *config.Config) (*BareApp, error) {
	log := logger.Named("app")

	win, err := window.New(cfg.Window.Title, int32(cfg.Window.Width), int32(cfg.Window.Height), logger.Named("window"))
	if err != nil {
		return nil, err
	}
	log.Info("OpenGL ready", zap.String("version", scene.GLVersion()))

	w, h := win.Size()
	host, err := scene.NewHost(w, h)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	ctrl, err := viewer.New(cfg, host, &viewer.FixedOverlay{}, logger.Named("viewer"))
	if err != nil {
		host.Destroy()
		win.Close()
		return nil, err
	}

	return &BareApp{
		window:      win,
		host:        host,
		controller:  ctrl,
		screenshots: debug.NewScreenshots(cfg.Debug.ScreenshotDir, "waveview"),
		log:         log,
	}, nil
}

// WatchReloads applies configs received on ch at the start of each frame.
func (app *BareApp) WatchReloads(ch <-chan *config.Config) {
	app.controller.WatchReloads(ch)
}

// Run polls events and draws frames until the window closes.
func (app *BareApp) Run() {
	app.running = true
	for app.running {
		app.events = input.Poll(app.events[:0])
		for _, ev := range app.events {
			app.handleEvent(ev)
		}

		app.controller.Frame()

		w, h := app.window.Size()
		app.host.Target().BlitToScreen(w, h)
		app.window.SwapBuffers()
	}
}

func (app *BareApp) handleEvent(ev input.Event) {
	switch {
	case ev.Kind == input.EventResize:
		app.host.Resize(ev.Width, ev.Height)
	case ev.Kind == input.EventKey && ev.Key == input.KeyScreenshot:
		app.screenshot()
	}
	if app.controller.HandleEvent(ev) {
		app.running = false
	}
}

func (app *BareApp) screenshot() {
	w, h := app.host.Target().Size()
	path, err := app.screenshots.SavePixels(app.host.Target().ReadPixels(), int(w), int(h))
	if err != nil {
		app.log.Error("screenshot failed", zap.Error(err))
		return
	}
	app.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GL resources and the window.
func (app *BareApp) Close() {
	if app.host != nil {
		app.host.Destroy()
		app.host = nil
	}
	if app.window != nil {
		app.window.Close()
		app.window = nil
	}
}
