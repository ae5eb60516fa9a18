package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/waveview/internal/config"
	"github.com/Faultbox/waveview/internal/engine/debug"
	"github.com/Faultbox/waveview/internal/engine/input"
	"github.com/Faultbox/waveview/internal/engine/scene"
	"github.com/Faultbox/waveview/internal/engine/ui"
	"github.com/Faultbox/waveview/internal/logger"
	"github.com/Faultbox/waveview/internal/viewer"
)

const messageDuration = 3 * time.Second

// App wires the window, the GL host, the control panel and the controller.
type App struct {
	backend     *ui.Backend
	host        *scene.Host
	panel       *ui.Panel
	controller  *viewer.Controller
	screenshots *debug.Screenshots
	log         *zap.Logger

	cfg       *config.Config
	savePaths chan string

	lastPointer input.PointerEvent
	message     string
	messageTill time.Time
}

// NewApp opens the window and builds the scene.
func NewApp(cfg *config.Config) (*App, error) {
	w, h := int32(cfg.Window.Width), int32(cfg.Window.Height)

	b, err := ui.NewBackend(cfg.Window.Title, w, h)
	if err != nil {
		return nil, err
	}
	log := logger.Named("app")
	log.Info("OpenGL ready", zap.String("version", scene.GLVersion()))

	host, err := scene.NewHost(w, h)
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	panel := ui.NewPanel(cfg.Surface.Params())
	ctrl, err := viewer.New(cfg, host, panel, logger.Named("viewer"))
	if err != nil {
		host.Destroy()
		return nil, err
	}

	return &App{
		backend:     b,
		host:        host,
		panel:       panel,
		controller:  ctrl,
		screenshots: debug.NewScreenshots(cfg.Debug.ScreenshotDir, "waveview"),
		log:         log,
		cfg:         cfg,
		savePaths:   make(chan string, 1),
	}, nil
}

// Run blocks until the window closes.
func (app *App) Run() {
	app.backend.Run(app.frame)
}

// WatchReloads applies configs received on ch at the start of each frame.
func (app *App) WatchReloads(ch <-chan *config.Config) {
	app.controller.WatchReloads(ch)
}

// Close releases GL resources.
func (app *App) Close() {
	if app.host != nil {
		app.host.Destroy()
		app.host = nil
	}
}

func (app *App) frame() {
	_, size := ui.Viewport()
	app.host.Resize(int32(size.X), int32(size.Y))

	app.handlePointer()
	for _, k := range ui.PressedKeys() {
		if k == input.KeyScreenshot {
			if !app.panel.WantsKeyboard() {
				app.screenshot()
			}
			continue
		}
		if app.controller.HandleKey(k) {
			app.backend.Close()
		}
	}

	app.host.Surface().Wireframe = app.panel.Wireframe()
	app.controller.Frame()

	ui.SceneBackground(app.host.Target().Texture())

	picked, ok := app.controller.Picked()
	status := ui.Status{Time: app.controller.Time(), Picked: picked, PickedOK: ok}
	if time.Now().Before(app.messageTill) {
		status.Message = app.message
	}
	act := app.panel.Draw(status)
	if act.ResetTime {
		app.controller.ResetTime()
	}
	if act.SaveSettings {
		app.openSaveDialog()
	}

	select {
	case path := <-app.savePaths:
		app.saveSettings(path)
	default:
	}
}

// openSaveDialog asks for a settings file on a separate goroutine; the chosen
// path is picked up by frame on the main thread.
func (app *App) openSaveDialog() {
	go func() {
		path, err := dialog.File().
			Filter("YAML", "yaml", "yml").
			Filter("TOML", "toml").
			Title("Save viewer settings").
			Save()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				app.log.Warn("save dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case app.savePaths <- path:
		default:
		}
	}()
}

// saveSettings writes the loaded config with the current camera pose and
// surface controls.
func (app *App) saveSettings(path string) {
	cfg := *app.cfg
	cam := app.controller.Camera()
	cfg.Camera.Target = [3]float32{cam.Target.X, cam.Target.Y, cam.Target.Z}
	cfg.Camera.Longitude = cam.Longitude
	cfg.Camera.Latitude = cam.Latitude
	cfg.Camera.Distance = cam.Distance

	cfg.Surface.SetParams(app.panel.Params())
	cfg.Surface.Resolution = app.controller.Mesh().GridResolution()

	if err := cfg.SaveTo(path); err != nil {
		app.log.Error("saving settings failed", zap.String("path", path), zap.Error(err))
		app.showMessage("Saving settings failed")
		return
	}
	app.log.Info("settings saved", zap.String("path", path))
	app.showMessage("Saved " + path)
}

// handlePointer turns the polled pointer state into press and move events.
func (app *App) handlePointer() {
	ev := ui.Pointer()
	prev := app.lastPointer
	app.lastPointer = ev

	if ev.Buttons&^prev.Buttons != 0 {
		app.controller.HandlePress(ev)
		return
	}
	if ev.X != prev.X || ev.Y != prev.Y {
		app.controller.HandlePointer(ev)
	}
}

// screenshot saves the last rendered scene, without the overlay.
func (app *App) screenshot() {
	w, h := app.host.Target().Size()
	path, err := app.screenshots.SavePixels(app.host.Target().ReadPixels(), int(w), int(h))
	if err != nil {
		app.log.Error("screenshot failed", zap.Error(err))
		app.showMessage("Screenshot failed")
		return
	}
	app.log.Info("screenshot saved", zap.String("path", path))
	app.showMessage("Saved " + path)
}

func (app *App) showMessage(msg string) {
	app.message = msg
	app.messageTill = time.Now().Add(messageDuration)
}
