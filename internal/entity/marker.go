package entity

import "github.com/Garsondee/Ghost-Hunt/internal/world"

// Marker is the sign a player leaves behind. Its position is what the round
// is judged on.
type Marker struct {
	Pos     world.Vec
	Opacity float64
}

// Frame returns the render view of m.
func (m *Marker) Frame() Frame {
	return Frame{Sheet: SheetMarker, Opacity: m.Opacity, Visible: m.Opacity > 0}
}

// Fade raises opacity towards 1 at the rate of one full fade per duration.
func (m *Marker) Fade(dt, duration float64) {
	if duration <= 0 {
		m.Opacity = 1
		return
	}
	m.Opacity = min(1, m.Opacity+dt/duration)
}
