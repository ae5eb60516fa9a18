package config

import (
	"flag"

	"github.com/Faultbox/waveview/internal/engine/water"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagResolution = flag.Int("resolution", 0, "Surface grid cells per side")
	flagWave       = flag.String("wave", "", "Wave model: stokes or gerstner")
	flagDisplace   = flag.Bool("displace", false, "Apply wave displacement to the surface")
	flagBackend    = flag.String("backend", "", "Host backend: imgui or sdl")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.WatchConfig = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagBackend != "" {
		cfg.Window.Backend = *flagBackend
	}
	if *flagResolution > 0 {
		cfg.Surface.Resolution = *flagResolution
	}
	if *flagWave != "" {
		wt, err := water.ParseWaveType(*flagWave)
		if err != nil {
			return err
		}
		cfg.Surface.WaveType = wt
	}
	if *flagDisplace {
		cfg.Surface.Displace = true
	}
	return nil
}
