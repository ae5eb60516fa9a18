package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/waveview/internal/engine/water"
	"github.com/Faultbox/waveview/pkg/math"
)

// Status is the read-only information shown under the controls.
type Status struct {
	Time     float32
	Picked   math.Vec3
	PickedOK bool
	Message  string
}

// Panel is the simulation control window. Edits take effect on the next
// call to Params.
type Panel struct {
	params    water.Params
	wireframe bool
}

// NewPanel creates a panel showing p.
func NewPanel(p water.Params) *Panel {
	return &Panel{params: p}
}

// Params returns the current controls.
func (p *Panel) Params() water.Params { return p.params }

// SetParams replaces the controls.
func (p *Panel) SetParams(params water.Params) { p.params = params }

// WantsPointer reports whether ImGui claims the mouse.
func (p *Panel) WantsPointer() bool {
	return imgui.CurrentIO().WantCaptureMouse()
}

// WantsKeyboard reports whether an ImGui widget has keyboard focus.
func (p *Panel) WantsKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}

// Wireframe reports whether the wireframe toggle is on.
func (p *Panel) Wireframe() bool { return p.wireframe }

// Actions reports the panel buttons clicked this frame.
type Actions struct {
	ResetTime    bool
	SaveSettings bool
}

// Draw renders the panel and returns the buttons clicked.
func (p *Panel) Draw(st Status) (act Actions) {
	imgui.SetNextWindowPos(imgui.NewVec2(10, 10))
	imgui.SetNextWindowBgAlpha(0.85)
	flags := imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoMove
	if imgui.BeginV("Surface", nil, flags) {
		imgui.SliderFloatV("Plane size", &p.params.PlaneSize, 1, 100, "%.1f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Amplitude", &p.params.Amplitude, 0, 2, "%.2f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("log10(dt)", &p.params.LogTimeStep, -3, 3, "%.2f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("k.x", &p.params.WaveVector.X, -3, 3, "%.2f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("k.y", &p.params.WaveVector.Y, -3, 3, "%.2f", imgui.SliderFlagsNone)

		imgui.Separator()
		if imgui.RadioButtonBool("Stokes", p.params.WaveType == water.Stokes) {
			p.params.WaveType = water.Stokes
		}
		imgui.SameLine()
		if imgui.RadioButtonBool("Gerstner", p.params.WaveType == water.Gerstner) {
			p.params.WaveType = water.Gerstner
		}
		imgui.Checkbox("Displace", &p.params.Displace)
		imgui.SameLine()
		imgui.Checkbox("Wireframe", &p.wireframe)

		imgui.Separator()
		imgui.Text(fmt.Sprintf("t = %.3f s", st.Time))
		imgui.SameLine()
		if imgui.ButtonV("Reset time", imgui.NewVec2(0, 0)) {
			act.ResetTime = true
		}
		if st.PickedOK {
			imgui.Text(fmt.Sprintf("cursor (rest plane): (%.2f, %.2f)", st.Picked.X, st.Picked.Y))
		} else {
			imgui.TextDisabled("cursor: off surface")
		}
		imgui.TextDisabled("Alt+LMB rotate  Alt+RMB zoom  Alt+MMB pan")
		imgui.TextDisabled("F reset target  F12 screenshot  Esc quit")
		if imgui.ButtonV("Save settings...", imgui.NewVec2(-1, 0)) {
			act.SaveSettings = true
		}
		if st.Message != "" {
			imgui.TextColored(imgui.NewVec4(0.2, 1.0, 0.2, 1.0), st.Message)
		}
	}
	imgui.End()
	return act
}
