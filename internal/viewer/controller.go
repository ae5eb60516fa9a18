// Package viewer ties camera input, the surface simulation and a render host
// together into one frame loop.
package viewer

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/waveview/internal/config"
	"github.com/Faultbox/waveview/internal/engine/camera"
	"github.com/Faultbox/waveview/internal/engine/input"
	"github.com/Faultbox/waveview/internal/engine/picking"
	"github.com/Faultbox/waveview/internal/engine/water"
	"github.com/Faultbox/waveview/pkg/math"
)

// Host is the rendering side of the viewer.
type Host interface {
	// ViewportSize returns the drawable size in pixels.
	ViewportSize() math.Vec2
	SetProjection(projection math.Mat4)
	// SubmitTransform hands over the camera-to-world transform for this frame.
	SubmitTransform(cameraTransform math.Mat4)
	DrawScene(mesh *water.Mesh)
	PresentFrame()
}

// Overlay is the GUI layered over the scene.
type Overlay interface {
	// Params returns this frame's simulation controls.
	Params() water.Params
	// SetParams replaces the controls, e.g. after a config reload.
	SetParams(p water.Params)
	// WantsPointer reports whether the overlay claims pointer events.
	WantsPointer() bool
	// WantsKeyboard reports whether the overlay claims key events.
	WantsKeyboard() bool
}

// FixedOverlay is an Overlay without a GUI: the controls stay as set and no
// input is ever claimed.
type FixedOverlay struct {
	params water.Params
}

func (o *FixedOverlay) Params() water.Params     { return o.params }
func (o *FixedOverlay) SetParams(p water.Params) { o.params = p }
func (o *FixedOverlay) WantsPointer() bool       { return false }
func (o *FixedOverlay) WantsKeyboard() bool      { return false }

// Projection holds the perspective parameters. FOV is vertical, in degrees.
type Projection struct {
	FOV  float32
	Near float32
	Far  float32
}

// Controller owns the camera, the surface mesh and the simulation clock and
// drives one frame at a time. It is not safe for concurrent use.
type Controller struct {
	camera  *camera.OrbitCamera
	input   *input.Translator
	mesh    *water.Mesh
	sim     water.Simulation
	host    Host
	overlay Overlay
	log     *zap.Logger

	proj       Projection
	projection math.Mat4
	viewport   math.Vec2
	params     water.Params

	cursor   math.Vec2
	picked   math.Vec3
	pickedOK bool

	reloads <-chan *config.Config
}

// New builds a controller from cfg. A nil logger discards output.
func New(cfg *config.Config, host Host, overlay Overlay, log *zap.Logger) (*Controller, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mesh, err := water.NewGridMesh(cfg.Surface.Resolution)
	if err != nil {
		return nil, fmt.Errorf("building surface: %w", err)
	}

	cam := cameraFromConfig(cfg.Camera)
	c := &Controller{
		camera:  cam,
		input:   input.NewTranslator(cam, sensitivityFromConfig(cfg.Input)),
		mesh:    mesh,
		host:    host,
		overlay: overlay,
		log:     log,
		proj:    Projection{FOV: cfg.Camera.FOV, Near: cfg.Camera.Near, Far: cfg.Camera.Far},
	}
	overlay.SetParams(cfg.Surface.Params())

	log.Info("viewer ready",
		zap.Int("resolution", mesh.GridResolution()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Object("camera", cam))
	return c, nil
}

// WatchReloads makes Frame apply configs received on ch.
func (c *Controller) WatchReloads(ch <-chan *config.Config) {
	c.reloads = ch
}

// HandlePress records a button press as the drag origin.
func (c *Controller) HandlePress(ev input.PointerEvent) {
	c.cursor = ev.Position()
	if c.overlay.WantsPointer() {
		return
	}
	c.input.Press(ev)
}

// HandlePointer applies a pointer move to the camera unless the overlay
// claims it, and returns the operations performed.
func (c *Controller) HandlePointer(ev input.PointerEvent) input.Operation {
	c.cursor = ev.Position()
	if c.overlay.WantsPointer() {
		return input.OpNone
	}
	ops := c.input.Move(ev, c.host.ViewportSize())
	if ops != input.OpNone {
		c.log.Debug("camera moved", zap.Uint8("ops", uint8(ops)), zap.Object("camera", c.camera))
	}
	return ops
}

// HandleKey applies a key command unless the overlay claims the keyboard. It
// returns true when the viewer should quit.
func (c *Controller) HandleKey(k input.Key) (quit bool) {
	if c.overlay.WantsKeyboard() {
		return false
	}
	switch k {
	case input.KeyQuit:
		return true
	case input.KeyResetTarget:
		c.input.Key(k)
		c.log.Debug("camera target reset")
	}
	return false
}

// HandleEvent dispatches a polled window event. Resizes are left to the host,
// which reports them through ViewportSize. It returns true when the viewer
// should quit.
func (c *Controller) HandleEvent(ev input.Event) (quit bool) {
	switch ev.Kind {
	case input.EventQuit:
		return true
	case input.EventPress:
		c.HandlePress(ev.Pointer)
	case input.EventMove, input.EventRelease:
		c.HandlePointer(ev.Pointer)
	case input.EventKey:
		return c.HandleKey(ev.Key)
	}
	return false
}

// Frame runs one frame: pending config reloads, projection, simulation step,
// camera submit, picking, draw and present.
func (c *Controller) Frame() {
	c.drainReloads()

	viewport := c.host.ViewportSize()
	if viewport != c.viewport {
		c.viewport = viewport
		c.updateProjection()
	}

	c.params = c.overlay.Params()
	c.sim.Step(c.mesh, c.params)

	c.host.SubmitTransform(c.camera.Transform())
	c.picked, c.pickedOK = c.Pick(c.cursor)

	c.host.DrawScene(c.mesh)
	c.host.PresentFrame()
}

// Pick returns the point under pixel on the rest plane Z=0, if the ray meets
// the surface's bounding box and the plane point lies within the surface
// footprint. Wave displacement is not followed.
func (c *Controller) Pick(pixel math.Vec2) (math.Vec3, bool) {
	if c.viewport.X <= 0 || c.viewport.Y <= 0 {
		return math.Vec3{}, false
	}
	ray, err := picking.CastRay(pixel, c.viewport, c.camera.Transform(), c.projection)
	if err != nil {
		return math.Vec3{}, false
	}
	lo, hi := c.mesh.Bounds()
	if _, hit := ray.IntersectAABB(picking.AABB{Min: lo, Max: hi}); !hit {
		return math.Vec3{}, false
	}
	p, ok := ray.IntersectPlaneZ(0)
	if !ok || p.X < lo.X || p.X > hi.X || p.Y < lo.Y || p.Y > hi.Y {
		return math.Vec3{}, false
	}
	return p, true
}

func (c *Controller) updateProjection() {
	if c.viewport.X <= 0 || c.viewport.Y <= 0 {
		return
	}
	fov := c.proj.FOV * math32.Pi / 180
	c.projection = math.Perspective(fov, c.viewport.X/c.viewport.Y, c.proj.Near, c.proj.Far)
	c.host.SetProjection(c.projection)
}

func (c *Controller) drainReloads() {
	if c.reloads == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-c.reloads:
			if !ok {
				c.reloads = nil
				return
			}
			c.applyConfig(cfg)
		default:
			return
		}
	}
}

// applyConfig takes over the settings that can change while running. The
// camera pose is left alone so a reload does not undo the user's navigation.
func (c *Controller) applyConfig(cfg *config.Config) {
	c.input.SetSensitivity(sensitivityFromConfig(cfg.Input))
	c.camera.MinDistance = cfg.Camera.MinDistance
	c.camera.SetDistance(c.camera.Distance)

	proj := Projection{FOV: cfg.Camera.FOV, Near: cfg.Camera.Near, Far: cfg.Camera.Far}
	if proj != c.proj {
		c.proj = proj
		c.updateProjection()
	}

	if cfg.Surface.Resolution != c.mesh.GridResolution() {
		mesh, err := water.NewGridMesh(cfg.Surface.Resolution)
		if err != nil {
			c.log.Warn("keeping surface", zap.Error(err))
		} else {
			c.mesh = mesh
		}
	}
	c.overlay.SetParams(cfg.Surface.Params())
	c.log.Info("config applied", zap.Object("params", cfg.Surface.Params()))
}

// Camera returns the orbit camera.
func (c *Controller) Camera() *camera.OrbitCamera { return c.camera }

// Mesh returns the current surface mesh.
func (c *Controller) Mesh() *water.Mesh { return c.mesh }

// Time returns the simulation time.
func (c *Controller) Time() float32 { return c.sim.Time() }

// Params returns the controls used by the last frame.
func (c *Controller) Params() water.Params { return c.params }

// Projection returns the current projection matrix.
func (c *Controller) Projection() math.Mat4 { return c.projection }

// Picked returns the surface point under the cursor from the last frame.
func (c *Controller) Picked() (math.Vec3, bool) { return c.picked, c.pickedOK }

// ResetTime rewinds the simulation clock.
func (c *Controller) ResetTime() { c.sim.Reset() }

func cameraFromConfig(cc config.CameraConfig) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.MinDistance = cc.MinDistance
	cam.SetTarget(math.Vec3{X: cc.Target[0], Y: cc.Target[1], Z: cc.Target[2]})
	cam.SetLongitude(cc.Longitude)
	cam.SetLatitude(cc.Latitude)
	cam.SetDistance(cc.Distance)
	return cam
}

func sensitivityFromConfig(ic config.InputConfig) input.Sensitivity {
	return input.Sensitivity{
		Rotate: ic.RotateSensitivity,
		Zoom:   ic.ZoomSensitivity,
		Pan:    ic.PanSensitivity,
	}
}
