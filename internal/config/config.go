// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/waveview/internal/engine/water"
	"github.com/Faultbox/waveview/pkg/math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Input   InputConfig   `yaml:"input" toml:"input"`
	Surface SurfaceConfig `yaml:"surface" toml:"surface"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Debug   DebugConfig   `yaml:"debug" toml:"debug"`
}

// Host backends.
const (
	BackendImGui = "imgui"
	BackendSDL   = "sdl"
)

// WindowConfig holds display settings.
type WindowConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	// Backend selects the host: "imgui" for the GUI overlay, "sdl" for a
	// bare SDL2 window with keyboard and pointer only.
	Backend string `yaml:"backend" toml:"backend"`
}

// CameraConfig holds the initial orbit and projection.
type CameraConfig struct {
	Target      [3]float32 `yaml:"target" toml:"target"`
	Longitude   float32    `yaml:"longitude" toml:"longitude"` // radians
	Latitude    float32    `yaml:"latitude" toml:"latitude"`   // radians
	Distance    float32    `yaml:"distance" toml:"distance"`
	MinDistance float32    `yaml:"min_distance" toml:"min_distance"` // <= 0 disables the floor
	FOV         float32    `yaml:"fov" toml:"fov"`                   // vertical, degrees
	Near        float32    `yaml:"near" toml:"near"`
	Far         float32    `yaml:"far" toml:"far"`
}

// InputConfig holds pointer sensitivities.
type InputConfig struct {
	RotateSensitivity float32 `yaml:"rotate_sensitivity" toml:"rotate_sensitivity"`
	ZoomSensitivity   float32 `yaml:"zoom_sensitivity" toml:"zoom_sensitivity"`
	PanSensitivity    float32 `yaml:"pan_sensitivity" toml:"pan_sensitivity"`
}

// SurfaceConfig holds the grid resolution and initial simulation controls.
type SurfaceConfig struct {
	Resolution  int            `yaml:"resolution" toml:"resolution"`
	Amplitude   float32        `yaml:"amplitude" toml:"amplitude"`
	WaveVector  [2]float32     `yaml:"wave_vector" toml:"wave_vector"`
	PlaneSize   float32        `yaml:"plane_size" toml:"plane_size"`
	LogTimeStep float32        `yaml:"log_time_step" toml:"log_time_step"`
	WaveType    water.WaveType `yaml:"wave_type" toml:"wave_type"`
	Displace    bool           `yaml:"displace" toml:"displace"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`
	LogFile    string `yaml:"log_file" toml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool   `yaml:"compress" toml:"compress"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
	WatchConfig   bool   `yaml:"watch_config" toml:"watch_config"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	p := water.DefaultParams()
	return &Config{
		Window: WindowConfig{
			Title:   "waveview",
			Width:   1280,
			Height:  720,
			Backend: BackendImGui,
		},
		Camera: CameraConfig{
			Longitude:   math32.Pi / 4,
			Latitude:    math32.Pi / 4,
			Distance:    20,
			MinDistance: 0.1,
			FOV:         60,
			Near:        0.001,
			Far:         10000,
		},
		Input: InputConfig{
			RotateSensitivity: 3,
			ZoomSensitivity:   10,
			PanSensitivity:    4,
		},
		Surface: SurfaceConfig{
			Resolution:  water.DefaultResolution,
			Amplitude:   p.Amplitude,
			WaveVector:  [2]float32{p.WaveVector.X, p.WaveVector.Y},
			PlaneSize:   p.PlaneSize,
			LogTimeStep: p.LogTimeStep,
			WaveType:    p.WaveType,
			Displace:    p.Displace,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}

// Validate reports the first setting the viewer cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.Backend != BackendImGui && c.Window.Backend != BackendSDL:
		return fmt.Errorf("%w: backend %q", ErrInvalid, c.Window.Backend)
	case c.Surface.Resolution <= 0:
		return fmt.Errorf("%w: surface resolution %d", ErrInvalid, c.Surface.Resolution)
	case !(c.Surface.PlaneSize > 0):
		return fmt.Errorf("%w: plane size %g", ErrInvalid, c.Surface.PlaneSize)
	case c.Surface.WaveType != water.Stokes && c.Surface.WaveType != water.Gerstner:
		return fmt.Errorf("%w: wave type %d", ErrInvalid, int(c.Surface.WaveType))
	case !(c.Camera.FOV > 0 && c.Camera.FOV < 180):
		return fmt.Errorf("%w: fov %g", ErrInvalid, c.Camera.FOV)
	case !(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near):
		return fmt.Errorf("%w: clip planes near=%g far=%g", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// Params returns the initial simulation controls.
func (s SurfaceConfig) Params() water.Params {
	return water.Params{
		Amplitude:   s.Amplitude,
		WaveVector:  math.Vec2{X: s.WaveVector[0], Y: s.WaveVector[1]},
		PlaneSize:   s.PlaneSize,
		LogTimeStep: s.LogTimeStep,
		WaveType:    s.WaveType,
		Displace:    s.Displace,
	}
}

// SetParams stores p as the initial simulation controls.
func (s *SurfaceConfig) SetParams(p water.Params) {
	s.Amplitude = p.Amplitude
	s.WaveVector = [2]float32{p.WaveVector.X, p.WaveVector.Y}
	s.PlaneSize = p.PlaneSize
	s.LogTimeStep = p.LogTimeStep
	s.WaveType = p.WaveType
	s.Displace = p.Displace
}
