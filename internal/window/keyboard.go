package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/game"
)

// Bindings maps the four directional keys to commands. Any other key is ignored.
var Bindings = map[ebiten.Key]game.Command{
	ebiten.KeyArrowLeft:  game.MoveLeft,
	ebiten.KeyArrowRight: game.MoveRight,
	ebiten.KeyArrowUp:    game.Rotate,
	ebiten.KeyArrowDown:  game.Descend,
}

// bindingOrder fixes the order commands are pushed when several keys go down in one frame.
var bindingOrder = []ebiten.Key{
	ebiten.KeyArrowLeft,
	ebiten.KeyArrowRight,
	ebiten.KeyArrowUp,
	ebiten.KeyArrowDown,
}

// KeyboardSystem is the input source: it turns key presses into commands. Nothing is delivered
// while the game is over or while Blocked reports true.
type KeyboardSystem struct {
	// Pressed returns the keys that went down since the previous frame.
	Pressed func() []ebiten.Key
	Blocked func() bool
}

func (k *KeyboardSystem) Execute(frame *game.Frame) {
	if frame.Session.GameOver() {
		return
	}
	if k.Blocked != nil && k.Blocked() {
		return
	}

	pressed := k.Pressed()
	for _, key := range bindingOrder {
		for _, p := range pressed {
			if p == key {
				frame.Commands.Push(Bindings[key])
			}
		}
	}
}

func inputPressed() []ebiten.Key {
	return inpututil.AppendJustPressedKeys(nil)
}
