// Package picking casts world-space rays from screen pixels.
package picking

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/Faultbox/waveview/pkg/math"
)

// ErrSingularProjection is returned when the projection matrix cannot be inverted.
var ErrSingularProjection = errors.New("picking: projection matrix is singular")

// Ray is a half-line in world space. Direction is not normalized.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// CastRay converts a pixel into a world-space ray from the camera eye.
//
// The pixel is mapped to NDC with the vertical axis flipped. The NDC point
// (ndc.x, ndc.y, -1) is unprojected through projection⁻¹ with the perspective
// divide, which gives the view-space direction from the eye, and is then
// rotated into world space by cameraTransform. The origin is the camera
// transform's translation.
func CastRay(pixel, viewport math.Vec2, cameraTransform, projection math.Mat4) (Ray, error) {
	invProj, ok := projection.Inverse()
	if !ok {
		return Ray{}, ErrSingularProjection
	}

	ndc := pixel.Div(viewport).Sub(math.Vec2{X: 0.5, Y: 0.5}).Scale(2)
	ndc.Y = -ndc.Y

	// A 3x3-only transform would drop the w row of projection⁻¹ and collapse
	// the center ray to zero.
	view := invProj.TransformPoint(math.Vec3{X: ndc.X, Y: ndc.Y, Z: -1})
	return Ray{
		Origin:    cameraTransform.Translation(),
		Direction: cameraTransform.TransformVector(view),
	}, nil
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlaneZ intersects the ray with the horizontal plane Z = planeZ.
func (r Ray) IntersectPlaneZ(planeZ float32) (math.Vec3, bool) {
	l := r.Direction.Length()
	if l == 0 || math32.Abs(r.Direction.Z)/l < 1e-6 {
		return math.Vec3{}, false // parallel
	}

	t := (planeZ - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return math.Vec3{}, false // behind the origin
	}
	p := r.At(t)
	p.Z = planeZ
	return p, true
}

// IntersectAABB tests ray intersection with an axis-aligned box using the slab
// method. It returns the ray parameter of the entry point, or of the exit point
// when the origin is inside the box.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
