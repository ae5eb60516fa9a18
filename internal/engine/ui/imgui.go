// Package ui provides the ImGui window host and the viewer's control panel.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/waveview/internal/engine/input"
)

// Backend wraps the ImGui SDL backend and owns the window and GL context.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window and initializes OpenGL.
func NewBackend(title string, width, height int32) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// Run starts the main render loop. It returns when the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// Close asks the render loop to stop after the current frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// Viewport returns the main viewport work area.
func Viewport() (pos, size imgui.Vec2) {
	vp := imgui.MainViewport()
	return vp.WorkPos(), vp.WorkSize()
}

// SceneBackground shows textureID across the whole work area behind every
// other window. The V coordinate is flipped because GL textures start at the
// bottom row.
func SceneBackground(textureID uint32) {
	pos, size := Viewport()
	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##SceneBackground", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageV(*texRef, size, imgui.NewVec2(0, 1), imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}

// Pointer returns the pointer position relative to the work area with the
// current button and modifier state.
func Pointer() input.PointerEvent {
	pos, _ := Viewport()
	mouse := imgui.MousePos()

	var buttons input.Button
	if imgui.IsMouseDown(imgui.MouseButtonLeft) {
		buttons |= input.ButtonPrimary
	}
	if imgui.IsMouseDown(imgui.MouseButtonRight) {
		buttons |= input.ButtonSecondary
	}
	if imgui.IsMouseDown(imgui.MouseButtonMiddle) {
		buttons |= input.ButtonTertiary
	}

	var mods input.Modifier
	if imgui.IsKeyDown(imgui.KeyLeftAlt) || imgui.IsKeyDown(imgui.KeyRightAlt) {
		mods |= input.ModAlt
	}
	if imgui.IsKeyDown(imgui.KeyLeftCtrl) || imgui.IsKeyDown(imgui.KeyRightCtrl) {
		mods |= input.ModCtrl
	}
	if imgui.IsKeyDown(imgui.KeyLeftShift) || imgui.IsKeyDown(imgui.KeyRightShift) {
		mods |= input.ModShift
	}

	return input.PointerEvent{
		X:         mouse.X - pos.X,
		Y:         mouse.Y - pos.Y,
		Buttons:   buttons,
		Modifiers: mods,
	}
}

var keyBindings = []struct {
	key  imgui.Key
	bind input.Key
}{
	{imgui.KeyF, input.KeyResetTarget},
	{imgui.KeyEscape, input.KeyQuit},
	{imgui.KeyF12, input.KeyScreenshot},
}

// PressedKeys returns the viewer keys pressed this frame.
func PressedKeys() []input.Key {
	var keys []input.Key
	for _, kb := range keyBindings {
		if imgui.IsKeyChordPressed(imgui.KeyChord(kb.key)) {
			keys = append(keys, kb.bind)
		}
	}
	return keys
}
