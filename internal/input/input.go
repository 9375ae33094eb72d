// Package input describes the only thing the simulation knows about input
// devices: which logical keys are held, and which went down this tick.
package input

// Key is a logical game key, independent of the physical binding.
type Key uint8

const (
	KeyUp      Key = iota // move up
	KeyDown               // move down
	KeyLeft               // move left
	KeyRight              // move right
	KeyRun                // run modifier
	KeyMark               // place the marker
	KeyConfirm            // continue on round-end screen
	KeyCancel             // leave to game over
	keyCount              // sentinel
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyRun:
		return "run"
	case KeyMark:
		return "mark"
	case KeyConfirm:
		return "confirm"
	case KeyCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Source is polled once per tick.
type Source interface {
	// Held reports whether k is down this tick.
	Held(k Key) bool
	// Pressed reports whether k went down on this tick.
	Pressed(k Key) bool
}

// AnyDirection reports whether any movement key is held.
func AnyDirection(s Source) bool {
	return s.Held(KeyUp) || s.Held(KeyDown) || s.Held(KeyLeft) || s.Held(KeyRight)
}

// None is a Source with nothing held.
type None struct{}

func (None) Held(Key) bool    { return false }
func (None) Pressed(Key) bool { return false }
