package input

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/waveview/internal/engine/camera"
	"github.com/Faultbox/waveview/pkg/math"
)

var viewport = math.Vec2{X: 800, Y: 600}

func newTranslator() (*camera.OrbitCamera, *Translator) {
	cam := camera.NewOrbitCamera()
	return cam, NewTranslator(cam, DefaultSensitivity())
}

func TestDelta(t *testing.T) {
	d := Delta(math.Vec2{X: 100, Y: 100}, math.Vec2{X: 180, Y: 130}, viewport)
	assert.InDelta(t, 0.1, d.X, 1e-6)
	assert.InDelta(t, 0.05, d.Y, 1e-6)

	assert.Equal(t, math.Vec2{}, Delta(math.Vec2{}, math.Vec2{X: 5, Y: 5}, math.Vec2{}))
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		buttons Button
		mods    Modifier
		want    Operation
	}{
		{"alt+primary", ButtonPrimary, ModAlt, OpRotate},
		{"alt+secondary", ButtonSecondary, ModAlt, OpZoom},
		{"alt+tertiary", ButtonTertiary, ModAlt, OpPan},
		{"alt+all", ButtonPrimary | ButtonSecondary | ButtonTertiary, ModAlt | ModShift, OpRotate | OpZoom | OpPan},
		{"primary without alt", ButtonPrimary, ModCtrl, OpNone},
		{"alt without buttons", 0, ModAlt, OpNone},
		{"nothing", 0, 0, OpNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.buttons, tt.mods))
		})
	}
}

func TestRotate(t *testing.T) {
	cam, tr := newTranslator()
	tr.Rotate(math.Vec2{X: 0.1})

	assert.InDelta(t, math32.Pi/4-0.3, cam.Longitude, 1e-6)
	assert.InDelta(t, math32.Pi/4, cam.Latitude, 1e-6)
}

func TestRotateClampsLatitude(t *testing.T) {
	cam, tr := newTranslator()
	for _, dy := range []float32{5, -0.3, 100, -100, 0.7, -2} {
		tr.Rotate(math.Vec2{Y: dy})
		assert.GreaterOrEqual(t, cam.Latitude, -camera.MaxLatitude)
		assert.LessOrEqual(t, cam.Latitude, camera.MaxLatitude)
	}
}

func TestZoom(t *testing.T) {
	cam, tr := newTranslator()
	tr.Zoom(math.Vec2{Y: 0.05})
	assert.InDelta(t, 19.5, cam.Distance, 1e-5)
}

func TestPanKeepsAltitudeForHorizontalDrag(t *testing.T) {
	cam, tr := newTranslator()
	tr.Pan(math.Vec2{X: 0.25})

	// A horizontal drag moves along the camera's right axis, which stays level.
	assert.InDelta(t, 0, cam.Target.Z, 1e-5)
	assert.InDelta(t, 1.0, cam.Target.XY().Length(), 1e-5)
}

func TestPanSpeedIndependentOfAzimuth(t *testing.T) {
	for _, lon := range []float32{0, 0.9, 2.5, -1.7} {
		cam, tr := newTranslator()
		cam.Longitude = lon
		tr.Pan(math.Vec2{X: 0.1, Y: 0.2})
		assert.InDelta(t, math.Vec2{X: 0.4, Y: 0.8}.Length(), cam.Target.Length(), 1e-5, "longitude %v", lon)
	}
}

func TestMoveDispatch(t *testing.T) {
	cam, tr := newTranslator()
	tr.Press(PointerEvent{X: 400, Y: 300})

	ops := tr.Move(PointerEvent{X: 480, Y: 300, Buttons: ButtonPrimary, Modifiers: ModAlt}, viewport)
	assert.Equal(t, OpRotate, ops)
	assert.InDelta(t, math32.Pi/4-0.3, cam.Longitude, 1e-6)

	ops = tr.Move(PointerEvent{X: 480, Y: 330, Buttons: ButtonSecondary, Modifiers: ModAlt}, viewport)
	assert.Equal(t, OpZoom, ops)
	assert.InDelta(t, 19.5, cam.Distance, 1e-5)
}

func TestMoveCombinedButtons(t *testing.T) {
	cam, tr := newTranslator()
	tr.Press(PointerEvent{})

	ops := tr.Move(PointerEvent{X: 0, Y: 30, Buttons: ButtonPrimary | ButtonSecondary, Modifiers: ModAlt}, viewport)
	assert.Equal(t, OpRotate|OpZoom, ops)
	assert.InDelta(t, math32.Pi/4+0.15, cam.Latitude, 1e-6)
	assert.InDelta(t, 19.5, cam.Distance, 1e-5)
}

func TestMovePartialPressIsNoop(t *testing.T) {
	cam, tr := newTranslator()
	before := *cam
	tr.Press(PointerEvent{X: 10, Y: 10})

	assert.Equal(t, OpNone, tr.Move(PointerEvent{X: 200, Y: 90, Buttons: ButtonPrimary}, viewport))
	assert.Equal(t, OpNone, tr.Move(PointerEvent{X: 300, Y: 50, Modifiers: ModAlt}, viewport))
	assert.Equal(t, before, *cam)
}

func TestMoveAdvancesDragOrigin(t *testing.T) {
	cam, tr := newTranslator()
	tr.Press(PointerEvent{X: 0, Y: 0})

	// Unmodified move still advances the origin, so the next rotate only sees its own delta.
	tr.Move(PointerEvent{X: 400, Y: 0}, viewport)
	tr.Move(PointerEvent{X: 480, Y: 0, Buttons: ButtonPrimary, Modifiers: ModAlt}, viewport)
	assert.InDelta(t, math32.Pi/4-0.3, cam.Longitude, 1e-6)
}

func TestKeyResetTarget(t *testing.T) {
	cam, tr := newTranslator()
	cam.SetTarget(math.Vec3{X: 3, Y: 4})
	tr.Key(KeyQuit)
	assert.Equal(t, math.Vec3{X: 3, Y: 4}, cam.Target)

	tr.Key(KeyResetTarget)
	assert.Equal(t, math.Vec3{}, cam.Target)
}
