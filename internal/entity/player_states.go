package entity

import (
	"github.com/Garsondee/Ghost-Hunt/internal/input"
	"github.com/Garsondee/Ghost-Hunt/internal/sound"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

// Signing and damage animation constants.
const (
	signFrameInterval   = 0.3
	damageFrameInterval = 0.15
)

type playerIdle struct {
	p    *Player
	anim directional
}

func (s *playerIdle) Enter(any) {
	s.p.Vel = world.Vec{}
	s.anim[s.p.Dir].reset()
}

func (s *playerIdle) Exit() {}

func (s *playerIdle) Update(dt float64) {
	p := s.p
	if p.wantsToMark() {
		p.change(PlayerSigning)
		return
	}
	if p.wantsToRun() && input.AnyDirection(p.in) {
		p.change(PlayerRunning)
		return
	}
	switch {
	case p.in.Held(input.KeyDown):
		p.Dir = Down
	case p.in.Held(input.KeyRight):
		p.Dir = Right
	case p.in.Held(input.KeyUp):
		p.Dir = Up
	case p.in.Held(input.KeyLeft):
		p.Dir = Left
	default:
		s.anim[p.Dir].update(dt)
		return
	}
	p.change(PlayerWalking)
}

func (s *playerIdle) Render(f *Frame) {
	f.Sheet = SheetIdle
	f.Index = s.anim[s.p.Dir].current()
}

// playerMoving backs both walking and running; id selects the speed and
// the exits.
type playerMoving struct {
	p    *Player
	id   PlayerStateID
	anim directional
}

func (s *playerMoving) running() bool { return s.id == PlayerRunning }

func (s *playerMoving) Enter(any) {
	s.anim[s.p.Dir].reset()
	if s.running() {
		s.p.sound.Play(sound.Breathing)
	}
}

func (s *playerMoving) Exit() {
	if s.running() {
		s.p.sound.Stop(sound.Breathing)
	}
}

func (s *playerMoving) Update(dt float64) {
	p := s.p
	if s.running() {
		p.drainStamina(dt)
	}
	if s.changed() {
		return
	}
	if !input.AnyDirection(p.in) {
		p.change(PlayerIdle)
		return
	}

	speed := p.tuning.WalkSpeed
	if s.running() {
		speed = p.tuning.RunSpeed
	}
	var vel world.Vec
	if p.in.Held(input.KeyUp) {
		vel.Y = -speed
		p.Dir = Up
	}
	if p.in.Held(input.KeyDown) {
		vel.Y = speed
		p.Dir = Down
	}
	if p.in.Held(input.KeyLeft) {
		vel.X = -speed
		p.Dir = Left
	}
	if p.in.Held(input.KeyRight) {
		vel.X = speed
		p.Dir = Right
	}
	vel = world.NormalizeDiagonal(vel, speed)

	next := p.resolver.Resolve(p.Pos, vel, dt)
	if next.X == p.Pos.X {
		vel.X = 0
	}
	if next.Y == p.Pos.Y {
		vel.Y = 0
	}
	p.Pos, p.Vel = next, vel
	s.anim[p.Dir].update(dt)
}

// changed applies the state's exit rules and reports whether one fired.
func (s *playerMoving) changed() bool {
	p := s.p
	if p.wantsToMark() {
		p.change(PlayerSigning)
		return true
	}
	if !s.running() {
		if p.wantsToRun() {
			p.change(PlayerRunning)
			return true
		}
		return false
	}
	if p.Stamina <= 0 {
		p.change(PlayerWalking)
		return true
	}
	if !p.in.Held(input.KeyRun) {
		if input.AnyDirection(p.in) {
			p.change(PlayerWalking)
		} else {
			p.change(PlayerIdle)
		}
		return true
	}
	return false
}

func (s *playerMoving) Render(f *Frame) {
	f.Sheet = SheetWalk
	f.Index = s.anim[s.p.Dir].current()
}

// playerSigning plants a marker and spins through the sign animation.
type playerSigning struct {
	p         *Player
	anim      *animation
	remaining float64
}

// signSequence is frames 4..6 of each 12-frame direction block, clockwise
// from the facing direction.
func signSequence(d Direction) []int {
	base := [4]int{Right: 0, Up: 12, Left: 24, Down: 36}
	var seq []int
	for _, dir := range clockwiseFrom(d) {
		seq = append(seq, frameRange(base[dir]+4, 3)...)
	}
	return seq
}

func (s *playerSigning) Enter(any) {
	p := s.p
	p.sound.Play(sound.Sign)
	p.Vel = world.Vec{}
	s.anim = newAnimation(signFrameInterval, signSequence(p.Dir)...)
	s.remaining = p.tuning.SignDuration
	p.Marker = &Marker{Pos: p.Pos}
	p.markerPlaced = true
}

func (s *playerSigning) Exit() {
	s.p.sound.Stop(sound.Sign)
}

func (s *playerSigning) Update(dt float64) {
	p := s.p
	s.anim.update(dt)
	s.remaining -= dt
	if p.Marker != nil {
		p.Marker.Opacity = min(1, 1-s.remaining/p.tuning.SignDuration)
	}
	if s.remaining <= 0 {
		if p.Marker != nil {
			p.Marker.Opacity = 1
		}
		p.change(PlayerIdle)
	}
}

func (s *playerSigning) Render(f *Frame) {
	f.Sheet = SheetSign
	f.Index = s.anim.current()
}

// playerDamage loops the hurt animation until the orchestrator moves on.
type playerDamage struct {
	p    *Player
	anim *animation
}

func (s *playerDamage) Enter(any) {
	s.p.Vel = world.Vec{}
	base := [4]int{Right: 0, Up: 3, Left: 6, Down: 9}
	s.anim = newAnimation(damageFrameInterval, frameRange(base[s.p.Dir], 3)...)
}

func (s *playerDamage) Exit() {}

func (s *playerDamage) Update(dt float64) { s.anim.update(dt) }

func (s *playerDamage) Render(f *Frame) {
	f.Sheet = SheetDamage
	f.Index = s.anim.current()
}
