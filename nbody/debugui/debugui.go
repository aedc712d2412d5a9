// Package debugui provides Dear ImGui windows for inspecting a running
// simulation: a body browser, a body inspector and performance statistics.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orrery/nbody"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input,
// so the host can ignore its own shortcuts while a widget is focused.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// UI groups the debug windows. Render must be called between the ImGui
// backend's BeginFrame and EndFrame.
type UI struct {
	Browser     *BodyBrowser
	Inspector   *BodyInspector
	Performance *PerformanceStats
	History     *EnergyHistory

	input InputState
	timer *FrameTimer
}

// New creates the debug windows. historyFrames sizes the frame-time and
// energy plots.
func New(historyFrames int) *UI {
	return &UI{
		Browser:     NewBodyBrowser(50),
		Inspector:   NewBodyInspector(),
		Performance: NewPerformanceStats(historyFrames),
		History:     NewEnergyHistory(historyFrames),
		timer:       NewFrameTimer(),
	}
}

// Render draws every window for the current state of stage.
func (ui *UI) Render(stage *nbody.Stage) {
	ui.input.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	ui.input.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	ui.Browser.Render(stage.Space())
	ui.Inspector.Render(stage.Space(), stage.View(), ui.Browser.Selected(), ui.Browser.Pinned())
	ui.Performance.Render(stage, ui.History, ui.timer.GetDeltaTime())
}

// Input returns the input capture state observed during the last Render.
func (ui *UI) Input() InputState {
	return ui.input
}
