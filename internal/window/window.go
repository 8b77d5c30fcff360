// Package window is the graphical front end: it reads arrow keys into game commands and paints
// the projected grid with Ebiten.
package window

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/game/debugui"
	debugui_ebiten "github.com/plus3/blockfall/game/debugui/ebiten"
)

const (
	// TPS is the update rate; each Update advances the scheduler by 1/TPS seconds.
	TPS     = 60
	margin  = 20
	sidebar = 160
)

var (
	background = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}
	border     = color.RGBA{R: 0x60, G: 0x60, B: 0x70, A: 0xff}
	emptyCell  = color.RGBA{R: 0x1c, G: 0x1c, B: 0x26, A: 0xff}
)

// palette colours occupied cells by tag; tags beyond the palette wrap around.
var palette = []color.RGBA{
	{R: 0x87, G: 0xce, B: 0xeb, A: 0xff},
	{R: 0xff, G: 0xcb, B: 0x00, A: 0xff},
	{R: 0xc8, G: 0x7a, B: 0xff, A: 0xff},
	{R: 0x00, G: 0x9e, B: 0x2f, A: 0xff},
	{R: 0xff, G: 0x6d, B: 0xc2, A: 0xff},
	{R: 0x00, G: 0x79, B: 0xf1, A: 0xff},
	{R: 0xff, G: 0xa1, B: 0x00, A: 0xff},
}

// Options configures a Game.
type Options struct {
	CellSize int
	// NewSession starts a fresh game; used when the player restarts after game over.
	NewSession func() game.Session
	Logger     *slog.Logger
	// Debug enables the ImGui inspector overlay.
	Debug bool
}

// Game implements ebiten.Game on top of a scheduler.
type Game struct {
	scheduler *game.Scheduler
	opts      Options
	imgui     *debugui_ebiten.ImguiBackend
}

// New creates the window game. The scheduler should already carry a gravity system; New
// registers the keyboard system and, when enabled, the debug overlay.
func New(scheduler *game.Scheduler, opts Options) *Game {
	g := &Game{scheduler: scheduler, opts: opts}

	keyboard := &KeyboardSystem{Pressed: inputPressed}
	if opts.Debug {
		keyboard.Blocked = debugui.WantsKeyboard
	}
	scheduler.Register(keyboard)

	return g
}

// Size returns the window size needed for a rows×cols board.
func (g *Game) Size() (int, int) {
	grid := g.scheduler.Session().Grid()
	w := grid.Cols()*g.opts.CellSize + 2*margin + sidebar
	h := grid.Rows()*g.opts.CellSize + 2*margin
	return w, h
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run(title string) error {
	w, h := g.Size()
	if g.opts.Debug {
		w += 340
		g.imgui = debugui_ebiten.NewImguiBackend(title, w, h)
		g.scheduler.Register(&debugui.System{Inspector: debugui.NewInspector(120)})
	} else {
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetTPS(TPS)

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.scheduler.Session().GameOver() && ebiten.IsKeyPressed(ebiten.KeyR) && g.opts.NewSession != nil {
		session := g.opts.NewSession()
		g.scheduler.Reset(session)
		if g.opts.Logger != nil {
			g.opts.Logger.Info("new game", "session", session.ID())
		}
	}

	if g.imgui != nil {
		g.imgui.Frame(func() { g.scheduler.Once(1.0 / TPS) })
		return nil
	}
	g.scheduler.Once(1.0 / TPS)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	session := g.scheduler.Session()
	drawGrid(screen, session.Snapshot(), g.opts.CellSize)

	grid := session.Grid()
	textX := margin + grid.Cols()*g.opts.CellSize + 20
	ebitenutil.DebugPrintAt(screen, "ARROWS  move/rotate", textX, margin)
	ebitenutil.DebugPrintAt(screen, "DOWN    drop", textX, margin+16)
	ebitenutil.DebugPrintAt(screen, "Q/ESC   quit", textX, margin+32)

	if session.GameOver() {
		y := margin + grid.Rows()*g.opts.CellSize/2
		ebitenutil.DebugPrintAt(screen, "GAME OVER", textX, y)
		ebitenutil.DebugPrintAt(screen, "R to restart", textX, y+16)
	}

	if g.imgui != nil {
		g.imgui.Overlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func drawGrid(screen *ebiten.Image, grid game.Grid, cellSize int) {
	size := float32(cellSize)
	w := float32(grid.Cols()) * size
	h := float32(grid.Rows()) * size
	vector.StrokeRect(screen, margin-2, margin-2, w+4, h+4, 2, border, false)

	for y := range grid.Rows() {
		for x := range grid.Cols() {
			px := float32(margin) + float32(x)*size
			py := float32(margin) + float32(y)*size
			vector.DrawFilledRect(screen, px+1, py+1, size-2, size-2, cellColor(grid.At(x, y)), false)
		}
	}
}

func cellColor(c game.Cell) color.RGBA {
	if c == game.Empty {
		return emptyCell
	}
	return palette[int(c-1)%len(palette)]
}
