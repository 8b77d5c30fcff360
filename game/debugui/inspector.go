package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
)

// Inspector is the "Session" debug window.
type Inspector struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// NewInspector creates an inspector keeping historyFrames frame-time samples.
func NewInspector(historyFrames int) *Inspector {
	return &Inspector{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Render draws the window. deltaTime is the frame time in seconds.
func (in *Inspector) Render(session game.Session, stats *game.SchedulerStats, deltaTime float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 360), imgui.CondOnce)

	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	in.frameHistory[in.frameIndex] = deltaTime * 1000.0
	in.frameIndex = (in.frameIndex + 1) % in.historyFrames

	grid := session.Grid()
	pos := session.Position()
	imgui.Text(fmt.Sprintf("ID: %s", session.ID()))
	imgui.Text(fmt.Sprintf("State: %s", session.State()))
	imgui.Text(fmt.Sprintf("Board: %dx%d", grid.Rows(), grid.Cols()))
	imgui.Text(fmt.Sprintf("Piece: %s at (%d, %d)", session.Shape().Kind(), pos.X, pos.Y))
	imgui.Text(fmt.Sprintf("Occupied: %d", grid.Occupied()))

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Commands: %d (%d rejected)", stats.Commands, stats.Rejected))
	imgui.Text(fmt.Sprintf("Landings: %d  Lines: %d", stats.Landings, stats.LinesCleared))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &in.frameHistory[0], int32(len(in.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
