package viewer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/waveview/internal/config"
	"github.com/Faultbox/waveview/internal/engine/input"
	"github.com/Faultbox/waveview/internal/engine/water"
	"github.com/Faultbox/waveview/pkg/math"
)

type fakeHost struct {
	viewport    math.Vec2
	projections []math.Mat4
	transforms  []math.Mat4
	drawn       []*water.Mesh
	presented   int
	calls       []string
}

func (h *fakeHost) ViewportSize() math.Vec2 { return h.viewport }

func (h *fakeHost) SetProjection(m math.Mat4) {
	h.projections = append(h.projections, m)
	h.calls = append(h.calls, "projection")
}

func (h *fakeHost) SubmitTransform(m math.Mat4) {
	h.transforms = append(h.transforms, m)
	h.calls = append(h.calls, "transform")
}

func (h *fakeHost) DrawScene(mesh *water.Mesh) {
	h.drawn = append(h.drawn, mesh)
	h.calls = append(h.calls, "draw")
}

func (h *fakeHost) PresentFrame() {
	h.presented++
	h.calls = append(h.calls, "present")
}

type fakeOverlay struct {
	params   water.Params
	claimed  bool
	keyboard bool
}

func (o *fakeOverlay) Params() water.Params     { return o.params }
func (o *fakeOverlay) SetParams(p water.Params) { o.params = p }
func (o *fakeOverlay) WantsPointer() bool       { return o.claimed }
func (o *fakeOverlay) WantsKeyboard() bool      { return o.keyboard }

func newController(t *testing.T) (*Controller, *fakeHost, *fakeOverlay) {
	t.Helper()
	cfg := config.Default()
	cfg.Surface.Resolution = 8
	host := &fakeHost{viewport: math.Vec2{X: 1000, Y: 500}}
	overlay := &fakeOverlay{}
	c, err := New(cfg, host, overlay, nil)
	require.NoError(t, err)
	return c, host, overlay
}

func TestNewAppliesConfig(t *testing.T) {
	c, _, overlay := newController(t)

	assert.Equal(t, water.DefaultParams(), overlay.params)
	assert.Equal(t, 8, c.Mesh().GridResolution())
	assert.InDelta(t, 20, c.Camera().Distance, 1e-6)
	assert.InDelta(t, math32.Pi/4, c.Camera().Longitude, 1e-6)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Surface.Resolution = 0
	_, err := New(cfg, &fakeHost{}, &fakeOverlay{}, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestFrameOrder(t *testing.T) {
	c, host, _ := newController(t)

	c.Frame()
	assert.Equal(t, []string{"projection", "transform", "draw", "present"}, host.calls)

	// Projection is only resubmitted when the viewport changes.
	host.calls = nil
	c.Frame()
	assert.Equal(t, []string{"transform", "draw", "present"}, host.calls)

	host.viewport = math.Vec2{X: 640, Y: 480}
	host.calls = nil
	c.Frame()
	assert.Equal(t, []string{"projection", "transform", "draw", "present"}, host.calls)

	assert.Equal(t, c.Camera().Transform(), host.transforms[len(host.transforms)-1])
	assert.Same(t, c.Mesh(), host.drawn[0])
}

func TestFrameAdvancesSimulation(t *testing.T) {
	c, _, overlay := newController(t)
	overlay.params.LogTimeStep = 0
	overlay.params.PlaneSize = 3

	c.Frame()
	c.Frame()

	assert.InDelta(t, 2, c.Time(), 1e-6)
	assert.Equal(t, overlay.params, c.Params())

	v := c.Mesh().Vertex(0)
	assert.Equal(t, v.Base.Scale(3), v.Position)
	assert.Equal(t, overlay.params.Amplitude, v.Amplitude[0])

	c.ResetTime()
	assert.Zero(t, c.Time())
}

func TestHandlePointerRotates(t *testing.T) {
	c, host, _ := newController(t)
	lon := c.Camera().Longitude

	c.HandlePress(input.PointerEvent{X: 100, Y: 100, Buttons: input.ButtonPrimary, Modifiers: input.ModAlt})
	ops := c.HandlePointer(input.PointerEvent{X: 200, Y: 100, Buttons: input.ButtonPrimary, Modifiers: input.ModAlt})

	assert.Equal(t, input.OpRotate, ops)
	// delta.x = 100/1000 = 0.1, gain 3.
	assert.InDelta(t, lon-0.3, c.Camera().Longitude, 1e-5)
	assert.Equal(t, math.Vec2{X: 1000, Y: 500}, host.viewport)
}

func TestHandlePointerOverlayClaims(t *testing.T) {
	c, _, overlay := newController(t)
	overlay.claimed = true
	before := *c.Camera()

	c.HandlePress(input.PointerEvent{X: 0, Y: 0, Buttons: input.ButtonPrimary, Modifiers: input.ModAlt})
	ops := c.HandlePointer(input.PointerEvent{X: 500, Y: 250, Buttons: input.ButtonPrimary | input.ButtonSecondary, Modifiers: input.ModAlt})

	assert.Equal(t, input.OpNone, ops)
	assert.Equal(t, before, *c.Camera())
}

func TestHandleKey(t *testing.T) {
	c, _, _ := newController(t)
	c.Camera().SetTarget(math.Vec3{X: 5, Y: -2, Z: 1})

	assert.False(t, c.HandleKey(input.KeyResetTarget))
	assert.Equal(t, math.Vec3{}, c.Camera().Target)

	assert.False(t, c.HandleKey(input.KeyScreenshot))
	assert.True(t, c.HandleKey(input.KeyQuit))
}

func TestHandleKeyOverlayClaims(t *testing.T) {
	c, _, overlay := newController(t)
	overlay.keyboard = true
	target := math.Vec3{X: 5, Y: -2, Z: 1}
	c.Camera().SetTarget(target)

	assert.False(t, c.HandleKey(input.KeyResetTarget))
	assert.Equal(t, target, c.Camera().Target)
	assert.False(t, c.HandleKey(input.KeyQuit))

	overlay.keyboard = false
	assert.True(t, c.HandleKey(input.KeyQuit))
}

func TestHandleEvent(t *testing.T) {
	c, _, _ := newController(t)
	lon := c.Camera().Longitude
	c.Camera().SetTarget(math.Vec3{X: 3})

	assert.False(t, c.HandleEvent(input.Event{Kind: input.EventPress,
		Pointer: input.PointerEvent{X: 100, Y: 100, Buttons: input.ButtonPrimary, Modifiers: input.ModAlt}}))
	assert.False(t, c.HandleEvent(input.Event{Kind: input.EventMove,
		Pointer: input.PointerEvent{X: 200, Y: 100, Buttons: input.ButtonPrimary, Modifiers: input.ModAlt}}))
	assert.InDelta(t, lon-0.3, c.Camera().Longitude, 1e-5)

	assert.False(t, c.HandleEvent(input.Event{Kind: input.EventRelease,
		Pointer: input.PointerEvent{X: 200, Y: 100}}))
	assert.InDelta(t, lon-0.3, c.Camera().Longitude, 1e-5)

	assert.False(t, c.HandleEvent(input.Event{Kind: input.EventResize, Width: 640, Height: 480}))
	assert.False(t, c.HandleEvent(input.Event{Kind: input.EventKey, Key: input.KeyResetTarget}))
	assert.Equal(t, math.Vec3{}, c.Camera().Target)

	assert.True(t, c.HandleEvent(input.Event{Kind: input.EventKey, Key: input.KeyQuit}))
	assert.True(t, c.HandleEvent(input.Event{Kind: input.EventQuit}))
}

func TestFixedOverlay(t *testing.T) {
	overlay := &FixedOverlay{}
	host := &fakeHost{viewport: math.Vec2{X: 1000, Y: 500}}
	cfg := config.Default()
	cfg.Surface.Resolution = 8
	cfg.Surface.Amplitude = 0.5

	c, err := New(cfg, host, overlay, nil)
	require.NoError(t, err)
	c.Frame()

	assert.Equal(t, float32(0.5), c.Params().Amplitude)
	assert.False(t, overlay.WantsPointer())
	assert.False(t, overlay.WantsKeyboard())
	assert.True(t, c.HandleKey(input.KeyQuit))
}

func TestPickCenterHitsTarget(t *testing.T) {
	c, _, _ := newController(t)
	c.Camera().SetTarget(math.Vec3{X: 2, Y: 1})

	// Cursor at the viewport center looks straight at the target.
	c.HandlePress(input.PointerEvent{X: 500, Y: 250})
	c.Frame()

	p, ok := c.Picked()
	require.True(t, ok)
	assert.InDelta(t, 2, p.X, 1e-3)
	assert.InDelta(t, 1, p.Y, 1e-3)
	assert.Zero(t, p.Z)
}

func TestPickDisplacedReportsRestPlane(t *testing.T) {
	c, _, overlay := newController(t)
	overlay.params.Displace = true
	overlay.params.Amplitude = 2
	c.Camera().SetTarget(math.Vec3{X: 2, Y: 1})

	c.HandlePress(input.PointerEvent{X: 500, Y: 250})
	c.Frame()

	lo, hi := c.Mesh().Bounds()
	require.Less(t, lo.Z, hi.Z)

	p, ok := c.Picked()
	require.True(t, ok)
	assert.Zero(t, p.Z)
	assert.InDelta(t, 2, p.X, 1e-3)
	assert.InDelta(t, 1, p.Y, 1e-3)
	assert.True(t, p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y)
}

func TestPickMissesOutsideSurface(t *testing.T) {
	c, _, overlay := newController(t)
	overlay.params.PlaneSize = 1
	c.Camera().SetTarget(math.Vec3{X: 50, Y: 50})

	c.HandlePress(input.PointerEvent{X: 500, Y: 250})
	c.Frame()

	_, ok := c.Picked()
	assert.False(t, ok)
}

func TestPickBeforeFirstFrame(t *testing.T) {
	c, _, _ := newController(t)
	_, ok := c.Pick(math.Vec2{X: 10, Y: 10})
	assert.False(t, ok)
}

func TestReloadAppliesConfig(t *testing.T) {
	c, host, overlay := newController(t)
	reloads := make(chan *config.Config, 1)
	c.WatchReloads(reloads)
	c.Frame()

	cfg := config.Default()
	cfg.Surface.Resolution = 4
	cfg.Surface.Amplitude = 1.5
	cfg.Camera.FOV = 45
	cfg.Input.RotateSensitivity = 1
	reloads <- cfg
	c.Frame()

	assert.Equal(t, 4, c.Mesh().GridResolution())
	assert.Equal(t, float32(1.5), overlay.params.Amplitude)
	assert.Len(t, host.projections, 2)
	assert.Same(t, c.Mesh(), host.drawn[len(host.drawn)-1])

	lon := c.Camera().Longitude
	c.HandlePress(input.PointerEvent{X: 0, Y: 0, Buttons: input.ButtonPrimary, Modifiers: input.ModAlt})
	c.HandlePointer(input.PointerEvent{X: 100, Y: 0, Buttons: input.ButtonPrimary, Modifiers: input.ModAlt})
	assert.InDelta(t, lon-0.1, c.Camera().Longitude, 1e-5)

	close(reloads)
	c.Frame()
	assert.Nil(t, c.reloads)
}
