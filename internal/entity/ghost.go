package entity

import (
	"math"

	"github.com/Garsondee/Ghost-Hunt/internal/fsm"
	"github.com/Garsondee/Ghost-Hunt/internal/sound"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

// GhostStateID names a ghost behaviour.
type GhostStateID string

const (
	GhostHidden        GhostStateID = "hidden"
	GhostMaterializing GhostStateID = "materializing"
	GhostAttacking     GhostStateID = "attacking"
)

// Ghost timings.
const (
	MaterializeDuration = 0.5 // seconds to fade in
	FloatSpeed          = 2.0 // radians/s of the bob
	FloatDistance       = 8.0 // px amplitude of the bob
)

// Ghost is the antagonist spawned around the player when a round fails.
type Ghost struct {
	Pos     world.Vec
	Opacity float64
	Visible bool

	sound   sound.Player
	machine *fsm.Machine[GhostStateID, *Frame]
}

// NewGhost returns a hidden ghost at pos.
func NewGhost(pos world.Vec, snd sound.Player) *Ghost {
	if snd == nil {
		snd = sound.Nop{}
	}
	g := &Ghost{Pos: pos, sound: snd, machine: fsm.New[GhostStateID, *Frame]()}
	g.machine.Add(GhostHidden, &ghostHidden{g: g})
	g.machine.Add(GhostMaterializing, &ghostMaterializing{g: g})
	g.machine.Add(GhostAttacking, &ghostAttacking{g: g})
	g.machine.MustChange(GhostHidden, nil)
	return g
}

// SpawnAround places three hidden ghosts around a player standing at pos:
// one above the head and one either side.
func SpawnAround(pos world.Vec, snd sound.Player) []*Ghost {
	headY := pos.Y - PlayerHeight/2
	return []*Ghost{
		NewGhost(world.Vec{X: pos.X, Y: headY - 40}, snd),
		NewGhost(world.Vec{X: pos.X - 32, Y: headY - 8}, snd),
		NewGhost(world.Vec{X: pos.X + 32, Y: headY - 8}, snd),
	}
}

// Materialize starts the fade-in; the ghost attacks once it completes.
func (g *Ghost) Materialize() { g.machine.MustChange(GhostMaterializing, nil) }

// Recycle hides the ghost again so it can be reused.
func (g *Ghost) Recycle() { g.machine.MustChange(GhostHidden, nil) }

// Update advances the ghost's behaviour.
func (g *Ghost) Update(dt float64) { g.machine.Update(dt) }

// State returns the current behaviour.
func (g *Ghost) State() GhostStateID {
	id, _ := g.machine.Current()
	return id
}

// Frame returns the render view for this tick.
func (g *Ghost) Frame() Frame {
	f := Frame{Sheet: SheetGhost}
	g.machine.Render(&f)
	return f
}

type ghostHidden struct{ g *Ghost }

func (s *ghostHidden) Enter(any)      { s.g.Visible = false }
func (s *ghostHidden) Exit()          {}
func (s *ghostHidden) Update(float64) {}
func (s *ghostHidden) Render(*Frame)  {}

type ghostMaterializing struct {
	g       *Ghost
	elapsed float64
}

func (s *ghostMaterializing) Enter(any) {
	s.g.Visible = true
	s.g.Opacity = 0
	s.elapsed = 0
}

func (s *ghostMaterializing) Exit() { s.elapsed = 0 }

func (s *ghostMaterializing) Update(dt float64) {
	s.elapsed += dt
	s.g.Opacity = min(1, s.elapsed/MaterializeDuration)
	if s.elapsed >= MaterializeDuration {
		s.g.machine.MustChange(GhostAttacking, nil)
	}
}

func (s *ghostMaterializing) Render(f *Frame) { ghostRender(s.g, f) }

type ghostAttacking struct {
	g     *Ghost
	baseY float64
	phase float64
}

func (s *ghostAttacking) Enter(any) {
	s.g.Visible = true
	s.g.Opacity = 1
	s.baseY = s.g.Pos.Y
	s.phase = 0
	s.g.sound.Play(sound.Laugh)
}

func (s *ghostAttacking) Exit() {
	s.g.Pos.Y = s.baseY
	s.g.sound.Stop(sound.Laugh)
}

func (s *ghostAttacking) Update(dt float64) {
	s.phase += dt * FloatSpeed
	s.g.Pos.Y = s.baseY + math.Sin(s.phase)*FloatDistance
}

func (s *ghostAttacking) Render(f *Frame) { ghostRender(s.g, f) }

func ghostRender(g *Ghost, f *Frame) {
	f.Visible = g.Visible
	f.Opacity = g.Opacity
}
