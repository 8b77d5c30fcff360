// Package debugui provides a Dear ImGui inspector for a running game scheduler.
// It renders session state and scheduler statistics as an overlay.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
)

// System defers the inspector's render into each frame, so it draws the session after that
// frame's commands were applied. The scheduler must run between the backend's BeginFrame and
// EndFrame.
type System struct {
	Inspector *Inspector
}

func (s *System) Execute(frame *game.Frame) {
	scheduler := frame.Scheduler
	dt := float32(frame.DeltaTime)
	frame.Commands.Defer(func(session game.Session) {
		s.Inspector.Render(session, scheduler.GetStats(), dt)
	})
}

// WantsKeyboard reports whether ImGui is consuming keyboard input, in which case game key
// bindings should be ignored.
func WantsKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}
