package water

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/waveview/pkg/math"
)

// WaveType selects the analytic wave model.
type WaveType int

const (
	Stokes WaveType = iota
	Gerstner
)

// String returns the lowercase model name.
func (w WaveType) String() string {
	switch w {
	case Stokes:
		return "stokes"
	case Gerstner:
		return "gerstner"
	default:
		return fmt.Sprintf("WaveType(%d)", int(w))
	}
}

// ParseWaveType parses a model name, case-insensitively.
func ParseWaveType(s string) (WaveType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stokes":
		return Stokes, nil
	case "gerstner":
		return Gerstner, nil
	default:
		return 0, fmt.Errorf("unknown wave type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (w WaveType) MarshalText() ([]byte, error) {
	if w != Stokes && w != Gerstner {
		return nil, fmt.Errorf("unknown wave type %d", int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *WaveType) UnmarshalText(text []byte) error {
	parsed, err := ParseWaveType(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Params is the per-frame snapshot of simulation controls. It is a plain
// value: the GUI builds a fresh one each frame and the pipeline only reads it.
type Params struct {
	Amplitude   float32
	WaveVector  math.Vec2
	PlaneSize   float32
	LogTimeStep float32
	WaveType    WaveType

	// Displace applies the wave model to vertex positions. When false only
	// the amplitude channels and the plane scaling are written.
	Displace bool
}

// DefaultParams returns the initial slider values.
func DefaultParams() Params {
	return Params{
		Amplitude:   0.5,
		WaveVector:  math.Vec2{X: 1, Y: 0},
		PlaneSize:   20,
		LogTimeStep: -1,
		WaveType:    Gerstner,
	}
}

// TimeStep returns the simulation time advanced per frame, 10^LogTimeStep.
func (p Params) TimeStep() float32 {
	return pow10(p.LogTimeStep)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (p Params) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddFloat32("amplitude", p.Amplitude)
	enc.AddFloat32("kx", p.WaveVector.X)
	enc.AddFloat32("ky", p.WaveVector.Y)
	enc.AddFloat32("plane_size", p.PlaneSize)
	enc.AddFloat32("log_dt", p.LogTimeStep)
	enc.AddString("wave", p.WaveType.String())
	enc.AddBool("displace", p.Displace)
	return nil
}
