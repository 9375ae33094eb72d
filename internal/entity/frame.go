package entity

// Sprite sheet names referenced by Frame.Sheet.
const (
	SheetIdle   = "idle"
	SheetWalk   = "walk"
	SheetSign   = "sign"
	SheetDamage = "damage"
	SheetGhost  = "ghost"
	SheetMarker = "marker"
)

// Frame is the read-only view a renderer gets of an actor each tick.
type Frame struct {
	Sheet   string
	Index   int
	Opacity float64
	Visible bool
}

// animation loops over frames, advancing one every interval seconds.
type animation struct {
	frames   []int
	interval float64
	acc      float64
	idx      int
}

func newAnimation(interval float64, frames ...int) *animation {
	return &animation{frames: frames, interval: interval}
}

// frameRange returns n consecutive frame indexes starting at base.
func frameRange(base, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = base + i
	}
	return out
}

func (a *animation) reset() {
	a.acc = 0
	a.idx = 0
}

func (a *animation) update(dt float64) {
	if len(a.frames) < 2 || a.interval <= 0 {
		return
	}
	a.acc += dt
	for a.acc >= a.interval {
		a.acc -= a.interval
		a.idx = (a.idx + 1) % len(a.frames)
	}
}

func (a *animation) current() int {
	if len(a.frames) == 0 {
		return 0
	}
	return a.frames[a.idx]
}

// directional holds one animation per facing.
type directional [4]*animation

// walkSheet lays out six frames per direction: right, up, left, down.
func walkSheet(interval float64) directional {
	return directional{
		Down:  newAnimation(interval, frameRange(18, 6)...),
		Up:    newAnimation(interval, frameRange(6, 6)...),
		Left:  newAnimation(interval, frameRange(12, 6)...),
		Right: newAnimation(interval, frameRange(0, 6)...),
	}
}
