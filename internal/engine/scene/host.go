package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/waveview/internal/engine/water"
	"github.com/Faultbox/waveview/pkg/math"
)

// Host renders frames into an offscreen target sized to the viewport. The
// window layer shows Target().Texture() and reports its size via Resize.
type Host struct {
	target  *Target
	surface *SurfaceRenderer

	viewport   math.Vec2
	projection math.Mat4
	view       math.Mat4

	ClearColor [4]float32
}

// NewHost allocates the target and the surface renderer.
func NewHost(width, height int32) (*Host, error) {
	target, err := NewTarget(width, height)
	if err != nil {
		return nil, err
	}
	surface, err := NewSurfaceRenderer()
	if err != nil {
		target.Destroy()
		return nil, err
	}
	return &Host{
		target:     target,
		surface:    surface,
		viewport:   math.Vec2{X: float32(width), Y: float32(height)},
		projection: math.Identity(),
		view:       math.Identity(),
		ClearColor: [4]float32{0.62, 0.7, 0.78, 1},
	}, nil
}

// Resize sets the viewport for the next frame.
func (h *Host) Resize(width, height int32) {
	h.viewport = math.Vec2{X: float32(max(width, 1)), Y: float32(max(height, 1))}
	h.target.Resize(width, height)
}

// ViewportSize returns the drawable size in pixels.
func (h *Host) ViewportSize() math.Vec2 { return h.viewport }

// SetProjection stores the projection for subsequent draws.
func (h *Host) SetProjection(projection math.Mat4) { h.projection = projection }

// SubmitTransform stores the view matrix derived from the camera transform.
func (h *Host) SubmitTransform(cameraTransform math.Mat4) {
	if view, ok := cameraTransform.Inverse(); ok {
		h.view = view
	}
}

// DrawScene uploads and draws mesh into the target.
func (h *Host) DrawScene(mesh *water.Mesh) {
	h.surface.Upload(mesh)

	h.target.Begin()
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(h.ClearColor[0], h.ClearColor[1], h.ClearColor[2], h.ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	h.surface.Render(h.projection.Mul(h.view))
}

// PresentFrame finishes the frame and restores the window framebuffer.
func (h *Host) PresentFrame() {
	gl.Disable(gl.DEPTH_TEST)
	h.target.End()
}

// Target returns the offscreen target.
func (h *Host) Target() *Target { return h.target }

// Surface returns the surface renderer.
func (h *Host) Surface() *SurfaceRenderer { return h.surface }

// Destroy releases all resources.
func (h *Host) Destroy() {
	h.surface.Destroy()
	h.target.Destroy()
}

// GLVersion reports the driver's GL version string.
func GLVersion() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}
