// Package entity holds the player and ghost actors. Each actor is a plain
// record plus an fsm.Machine of behaviour states; nothing here draws or
// plays audio directly.
package entity

// Direction is the way an actor faces. It persists while the actor stands
// still. The zero value is Down.
type Direction uint8

const (
	Down Direction = iota
	Up
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// clockwise is the rotation used by the signing animation.
var clockwise = [4]Direction{Right, Down, Left, Up}

// clockwiseFrom returns the four directions in clockwise order starting at d.
func clockwiseFrom(d Direction) [4]Direction {
	start := 0
	for i, c := range clockwise {
		if c == d {
			start = i
			break
		}
	}
	var out [4]Direction
	for i := range out {
		out[i] = clockwise[(start+i)%4]
	}
	return out
}
