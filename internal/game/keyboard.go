package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Ghost-Hunt/internal/input"
)

// Bindings maps each logical key to the physical keys that trigger it.
type Bindings map[input.Key][]ebiten.Key

// DefaultBindings: WASD or arrows to move, Shift to run, Enter or Space to
// mark, Enter to confirm and Escape to cancel.
func DefaultBindings() Bindings {
	return Bindings{
		input.KeyUp:      {ebiten.KeyW, ebiten.KeyArrowUp},
		input.KeyDown:    {ebiten.KeyS, ebiten.KeyArrowDown},
		input.KeyLeft:    {ebiten.KeyA, ebiten.KeyArrowLeft},
		input.KeyRight:   {ebiten.KeyD, ebiten.KeyArrowRight},
		input.KeyRun:     {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
		input.KeyMark:    {ebiten.KeyEnter, ebiten.KeySpace},
		input.KeyConfirm: {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
		input.KeyCancel:  {ebiten.KeyEscape},
	}
}

// Keyboard reads the live ebiten key state through a set of bindings.
type Keyboard struct {
	bindings Bindings
}

func NewKeyboard(b Bindings) *Keyboard {
	if b == nil {
		b = DefaultBindings()
	}
	return &Keyboard{bindings: b}
}

func (k *Keyboard) Held(key input.Key) bool {
	for _, ek := range k.bindings[key] {
		if ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	return false
}

func (k *Keyboard) Pressed(key input.Key) bool {
	for _, ek := range k.bindings[key] {
		if inpututil.IsKeyJustPressed(ek) {
			return true
		}
	}
	return false
}
