// Package scene renders the wave surface.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/waveview/internal/engine/shader"
	"github.com/Faultbox/waveview/internal/engine/water"
	"github.com/Faultbox/waveview/pkg/math"
)

const surfaceVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in float aAmplitude;

uniform mat4 uMVP;

out float vHeight;
out float vAmplitude;

void main() {
    vHeight = aPosition.z;
    vAmplitude = aAmplitude;
    gl_Position = uMVP * vec4(aPosition, 1.0);
}
`

const surfaceFragmentShader = `#version 410 core
in float vHeight;
in float vAmplitude;

uniform vec4 uDeepColor;
uniform vec4 uCrestColor;

out vec4 FragColor;

void main() {
    float h = vAmplitude > 0.0 ? clamp(0.5 + 0.5 * vHeight / vAmplitude, 0.0, 1.0) : 0.5;
    FragColor = mix(uDeepColor, uCrestColor, h);
}
`

// SurfaceRenderer draws a water.Mesh as an indexed triangle list, re-uploading
// vertex data only when the mesh changes.
type SurfaceRenderer struct {
	program *shader.Program

	locMVP   int32
	locDeep  int32
	locCrest int32

	vao uint32
	vbo uint32
	ebo uint32

	mesh        *water.Mesh
	version     uint64
	vertexCount int
	indexCount  int32
	scratch     []float32

	Wireframe bool
}

// NewSurfaceRenderer compiles the surface program and creates empty buffers.
func NewSurfaceRenderer() (*SurfaceRenderer, error) {
	prog, err := shader.Compile(surfaceVertexShader, surfaceFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("surface shader: %w", err)
	}

	sr := &SurfaceRenderer{
		program:  prog,
		locMVP:   prog.Uniform("uMVP"),
		locDeep:  prog.Uniform("uDeepColor"),
		locCrest: prog.Uniform("uCrestColor"),
	}

	gl.GenVertexArrays(1, &sr.vao)
	gl.BindVertexArray(sr.vao)

	gl.GenBuffers(1, &sr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, sr.vbo)
	gl.GenBuffers(1, &sr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, sr.ebo)

	stride := int32(water.VertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 1, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return sr, nil
}

// Upload copies mesh data to the GPU if the mesh or its contents changed.
func (sr *SurfaceRenderer) Upload(mesh *water.Mesh) {
	if mesh == sr.mesh && mesh.Version() == sr.version {
		return
	}
	sr.scratch = mesh.Interleave(sr.scratch)

	gl.BindVertexArray(sr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sr.vbo)
	if mesh.VertexCount() != sr.vertexCount || mesh != sr.mesh {
		gl.BufferData(gl.ARRAY_BUFFER, len(sr.scratch)*4, gl.Ptr(sr.scratch), gl.DYNAMIC_DRAW)

		indices := mesh.Indices()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, sr.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		sr.indexCount = int32(len(indices))
		sr.vertexCount = mesh.VertexCount()
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(sr.scratch)*4, gl.Ptr(sr.scratch))
	}
	gl.BindVertexArray(0)

	sr.mesh = mesh
	sr.version = mesh.Version()
}

// Render draws the last uploaded mesh with the given view-projection matrix.
func (sr *SurfaceRenderer) Render(viewProj math.Mat4) {
	if sr.indexCount == 0 {
		return
	}

	sr.program.Use()
	gl.UniformMatrix4fv(sr.locMVP, 1, false, viewProj.Ptr())
	gl.Uniform4f(sr.locDeep, 0.05, 0.18, 0.35, 1.0)
	gl.Uniform4f(sr.locCrest, 0.55, 0.8, 0.95, 1.0)

	if sr.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	gl.BindVertexArray(sr.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, sr.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (sr *SurfaceRenderer) Destroy() {
	if sr.vao != 0 {
		gl.DeleteVertexArrays(1, &sr.vao)
		sr.vao = 0
	}
	if sr.vbo != 0 {
		gl.DeleteBuffers(1, &sr.vbo)
		sr.vbo = 0
	}
	if sr.ebo != 0 {
		gl.DeleteBuffers(1, &sr.ebo)
		sr.ebo = 0
	}
	if sr.program != nil {
		sr.program.Destroy()
	}
}
