// Package input turns pointer and keyboard state into orbit camera operations.
package input

import (
	"github.com/Faultbox/waveview/internal/engine/camera"
	"github.com/Faultbox/waveview/pkg/math"
)

// Button is a bitmask of held pointer buttons.
type Button uint8

const (
	ButtonPrimary Button = 1 << iota
	ButtonSecondary
	ButtonTertiary
)

// Modifier is a bitmask of held keyboard modifiers.
type Modifier uint8

const (
	ModAlt Modifier = 1 << iota
	ModCtrl
	ModShift
)

// Operation is a bitmask of camera operations applied by one pointer move.
type Operation uint8

const (
	OpNone   Operation = 0
	OpRotate Operation = 1 << (iota - 1)
	OpZoom
	OpPan
)

// Key identifies the keys the viewer reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyResetTarget
	KeyQuit
	KeyScreenshot
)

// PointerEvent is a pointer position in viewport pixels with the button and
// modifier state at that moment.
type PointerEvent struct {
	X, Y      float32
	Buttons   Button
	Modifiers Modifier
}

// Position returns the pointer position as a vector.
func (e PointerEvent) Position() math.Vec2 {
	return math.Vec2{X: e.X, Y: e.Y}
}

// Sensitivity scales the normalized pointer delta per operation.
type Sensitivity struct {
	Rotate float32
	Zoom   float32
	Pan    float32
}

// DefaultSensitivity returns the standard gains.
func DefaultSensitivity() Sensitivity {
	return Sensitivity{Rotate: 3, Zoom: 10, Pan: 4}
}

// Translator applies pointer drags to an orbit camera.
type Translator struct {
	camera *camera.OrbitCamera
	sens   Sensitivity
	prev   math.Vec2
}

// NewTranslator creates a translator driving cam.
func NewTranslator(cam *camera.OrbitCamera, sens Sensitivity) *Translator {
	return &Translator{camera: cam, sens: sens}
}

// SetSensitivity replaces the per-operation gains.
func (t *Translator) SetSensitivity(sens Sensitivity) {
	t.sens = sens
}

// Press records the drag origin.
func (t *Translator) Press(ev PointerEvent) {
	t.prev = ev.Position()
}

// Move applies the camera operations selected by ev's buttons and modifiers
// and returns them. Every matching operation runs, in the order rotate, zoom,
// pan. The drag origin always advances to ev.
func (t *Translator) Move(ev PointerEvent, viewport math.Vec2) Operation {
	cur := ev.Position()
	delta := Delta(t.prev, cur, viewport)
	t.prev = cur

	ops := Select(ev.Buttons, ev.Modifiers)
	if ops&OpRotate != 0 {
		t.Rotate(delta)
	}
	if ops&OpZoom != 0 {
		t.Zoom(delta)
	}
	if ops&OpPan != 0 {
		t.Pan(delta)
	}
	return ops
}

// Key applies keyboard commands that act on the camera.
func (t *Translator) Key(k Key) {
	if k == KeyResetTarget {
		t.camera.ResetTarget()
	}
}

// Rotate orbits the camera by a normalized delta.
func (t *Translator) Rotate(delta math.Vec2) {
	t.camera.SetLongitude(t.camera.Longitude - t.sens.Rotate*delta.X)
	t.camera.SetLatitude(t.camera.Latitude + t.sens.Rotate*delta.Y)
}

// Zoom moves the eye along the view axis by a normalized delta.
func (t *Translator) Zoom(delta math.Vec2) {
	t.camera.SetDistance(t.camera.Distance - t.sens.Zoom*delta.Y)
}

// Pan slides the target along the camera's own right and up axes.
func (t *Translator) Pan(delta math.Vec2) {
	local := math.Vec3{X: -t.sens.Pan * delta.X, Y: t.sens.Pan * delta.Y}
	t.camera.PanBy(t.camera.Transform().TransformVector(local))
}

// Select reports which operations a button/modifier combination triggers.
// Each operation requires Alt plus its own button; the checks are independent.
func Select(buttons Button, mods Modifier) Operation {
	if mods&ModAlt == 0 {
		return OpNone
	}
	ops := OpNone
	if buttons&ButtonPrimary != 0 {
		ops |= OpRotate
	}
	if buttons&ButtonSecondary != 0 {
		ops |= OpZoom
	}
	if buttons&ButtonTertiary != 0 {
		ops |= OpPan
	}
	return ops
}

// Delta returns (cur - prev) / viewport. A degenerate viewport yields zero.
func Delta(prev, cur, viewport math.Vec2) math.Vec2 {
	if viewport.X <= 0 || viewport.Y <= 0 {
		return math.Vec2{}
	}
	return cur.Sub(prev).Div(viewport)
}
