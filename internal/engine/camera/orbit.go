// Package camera provides the orbit camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/waveview/pkg/math"
)

// MaxLatitude bounds the elevation angle in both directions.
const MaxLatitude = math32.Pi / 2

// Defaults for a fresh session.
const (
	DefaultLongitude   = math32.Pi / 4
	DefaultLatitude    = math32.Pi / 4
	DefaultDistance    = 20.0
	DefaultMinDistance = 0.1
)

// OrbitCamera orbits a target point. Its world transform is derived on demand
// from the four orbit parameters and never cached.
type OrbitCamera struct {
	Target    math.Vec3
	Longitude float32 // Azimuth around the vertical (Z) axis, radians
	Latitude  float32 // Elevation, radians, kept in [-MaxLatitude, MaxLatitude]
	Distance  float32 // Eye distance from Target along the view axis

	// MinDistance floors Distance after every mutation. Values <= 0 disable
	// the floor and let the eye pass through the target.
	MinDistance float32
}

// NewOrbitCamera creates a camera with the session defaults.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Longitude:   DefaultLongitude,
		Latitude:    DefaultLatitude,
		Distance:    DefaultDistance,
		MinDistance: DefaultMinDistance,
	}
}

// Transform returns the camera-to-world transform:
//
//	T(target) · Rz(longitude) · Rx(-latitude) · T(0, -distance, 0) · Rx(π/2)
//
// The trailing Rx(π/2) maps the camera's -Z (forward) onto the +Y axis the
// orbit is built around, so the eye always looks at Target.
func (c *OrbitCamera) Transform() math.Mat4 {
	return math.TranslateVec(c.Target).
		Mul(math.RotateZ(c.Longitude)).
		Mul(math.RotateX(-c.Latitude)).
		Mul(math.Translate(0, -c.Distance, 0)).
		Mul(math.RotateX(math32.Pi / 2))
}

// ViewMatrix returns the world-to-camera matrix for the render host.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	view, _ := c.Transform().Inverse()
	return view
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	return c.Transform().Translation()
}

// Forward returns the unit view direction in world space.
func (c *OrbitCamera) Forward() math.Vec3 {
	return c.Transform().TransformVector(math.Vec3{Z: -1}).Normalize()
}

// SetLongitude sets the azimuth.
func (c *OrbitCamera) SetLongitude(lon float32) {
	c.Longitude = lon
}

// SetLatitude sets the elevation, clamped to [-MaxLatitude, MaxLatitude].
func (c *OrbitCamera) SetLatitude(lat float32) {
	c.Latitude = ClampLatitude(lat)
}

// SetDistance sets the eye distance, honoring MinDistance.
func (c *OrbitCamera) SetDistance(d float32) {
	if c.MinDistance > 0 && d < c.MinDistance {
		d = c.MinDistance
	}
	c.Distance = d
}

// SetTarget moves the pivot.
func (c *OrbitCamera) SetTarget(target math.Vec3) {
	c.Target = target
}

// PanBy moves the pivot by a world-space offset.
func (c *OrbitCamera) PanBy(delta math.Vec3) {
	c.Target = c.Target.Add(delta)
}

// ResetTarget moves the pivot back to the world origin.
func (c *OrbitCamera) ResetTarget() {
	c.Target = math.Vec3{}
}

// ClampLatitude limits an elevation angle to the representable range.
// NaN collapses to zero so the camera can never lose its orientation.
func ClampLatitude(lat float32) float32 {
	switch {
	case math32.IsNaN(lat):
		return 0
	case lat < -MaxLatitude:
		return -MaxLatitude
	case lat > MaxLatitude:
		return MaxLatitude
	}
	return lat
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (c *OrbitCamera) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddFloat32("target_x", c.Target.X)
	enc.AddFloat32("target_y", c.Target.Y)
	enc.AddFloat32("target_z", c.Target.Z)
	enc.AddFloat32("longitude", c.Longitude)
	enc.AddFloat32("latitude", c.Latitude)
	enc.AddFloat32("distance", c.Distance)
	return nil
}
