package entity

import (
	"github.com/Garsondee/Ghost-Hunt/internal/fsm"
	"github.com/Garsondee/Ghost-Hunt/internal/input"
	"github.com/Garsondee/Ghost-Hunt/internal/sound"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

// PlayerStateID names a player behaviour.
type PlayerStateID string

const (
	PlayerIdle    PlayerStateID = "idle"
	PlayerWalking PlayerStateID = "walking"
	PlayerRunning PlayerStateID = "running"
	PlayerSigning PlayerStateID = "signing"
	PlayerDamage  PlayerStateID = "damage"
)

// PlayerHeight is the sprite height in pixels.
const PlayerHeight = 64

// PlayerTuning holds the player's movement and stamina constants.
type PlayerTuning struct {
	WalkSpeed    float64 `yaml:"walk_speed"`    // px/s
	RunSpeed     float64 `yaml:"run_speed"`     // px/s
	MaxStamina   float64 `yaml:"max_stamina"`   // stamina units
	StaminaDrain float64 `yaml:"stamina_drain"` // units/s while running
	StaminaRegen float64 `yaml:"stamina_regen"` // units/s otherwise
	SignDuration float64 `yaml:"sign_duration"` // seconds
}

// DefaultPlayerTuning returns the stock player constants.
func DefaultPlayerTuning() PlayerTuning {
	return PlayerTuning{
		WalkSpeed:    50,
		RunSpeed:     80,
		MaxStamina:   100,
		StaminaDrain: 30,
		StaminaRegen: 20,
		SignDuration: 4,
	}
}

// Player is the character under keyboard control.
type Player struct {
	Pos     world.Vec
	Vel     world.Vec
	Dir     Direction
	Stamina float64
	Marker  *Marker // nil until a sign is placed this round

	tuning   PlayerTuning
	resolver *world.Resolver
	sound    sound.Player
	machine  *fsm.Machine[PlayerStateID, *Frame]

	// per-tick context, set by Update before the machine runs
	in      input.Source
	canMark bool

	markerPlaced bool
}

// NewPlayer builds a player at pos facing down, idle and entered.
// A nil resolver moves freely; a nil sound player is silent.
func NewPlayer(pos world.Vec, t PlayerTuning, r *world.Resolver, snd sound.Player) *Player {
	if r == nil {
		r = world.NewResolver(nil)
	}
	if snd == nil {
		snd = sound.Nop{}
	}
	p := &Player{
		Pos:      pos,
		Stamina:  t.MaxStamina,
		tuning:   t,
		resolver: r,
		sound:    snd,
		machine:  fsm.New[PlayerStateID, *Frame](),
		in:       input.None{},
	}
	p.machine.Add(PlayerIdle, &playerIdle{p: p, anim: walkSheet(0.2)})
	p.machine.Add(PlayerWalking, &playerMoving{p: p, id: PlayerWalking, anim: walkSheet(0.1)})
	p.machine.Add(PlayerRunning, &playerMoving{p: p, id: PlayerRunning, anim: walkSheet(0.05)})
	p.machine.Add(PlayerSigning, &playerSigning{p: p})
	p.machine.Add(PlayerDamage, &playerDamage{p: p})
	p.machine.MustChange(PlayerIdle, nil)
	return p
}

// Update runs one tick. canMark tells the player whether placing a sign is
// allowed this round.
func (p *Player) Update(dt float64, in input.Source, canMark bool) {
	if in == nil {
		in = input.None{}
	}
	p.in = in
	p.canMark = canMark
	p.machine.Update(dt)

	if !p.machine.Is(PlayerRunning) {
		p.Stamina = min(p.tuning.MaxStamina, p.Stamina+p.tuning.StaminaRegen*dt)
	}
}

// State returns the current behaviour.
func (p *Player) State() PlayerStateID {
	id, _ := p.machine.Current()
	return id
}

// Is reports whether the player is currently in id.
func (p *Player) Is(id PlayerStateID) bool { return p.machine.Is(id) }

// Tuning returns the player's constants.
func (p *Player) Tuning() PlayerTuning { return p.tuning }

// CanRun reports whether there is stamina left to run.
func (p *Player) CanRun() bool { return p.Stamina > 0 }

// SetStamina clamps s into [0, MaxStamina].
func (p *Player) SetStamina(s float64) {
	p.Stamina = max(0, min(p.tuning.MaxStamina, s))
}

// TakeMarkerPlaced reports, once, that a sign was started since the last call.
func (p *Player) TakeMarkerPlaced() bool {
	placed := p.markerPlaced
	p.markerPlaced = false
	return placed
}

// Damage switches to the damage behaviour. The orchestrator decides when it ends.
func (p *Player) Damage() { p.machine.MustChange(PlayerDamage, nil) }

// Reset puts the player back at pos, idle, facing down, with full stamina
// and no marker.
func (p *Player) Reset(pos world.Vec) {
	p.Pos = pos
	p.Vel = world.Vec{}
	p.Dir = Down
	p.Stamina = p.tuning.MaxStamina
	p.Marker = nil
	p.markerPlaced = false
	p.machine.MustChange(PlayerIdle, nil)
}

// Frame returns the render view for this tick.
func (p *Player) Frame() Frame {
	f := Frame{Opacity: 1, Visible: true}
	p.machine.Render(&f)
	return f
}

// Transitions counts behaviour changes; round spans report it.
func (p *Player) Transitions() int { return p.machine.Transitions() }

func (p *Player) change(id PlayerStateID) { p.machine.MustChange(id, nil) }

func (p *Player) drainStamina(dt float64) {
	p.Stamina = max(0, p.Stamina-p.tuning.StaminaDrain*dt)
}

func (p *Player) wantsToRun() bool {
	return p.in.Held(input.KeyRun) && p.CanRun()
}

func (p *Player) wantsToMark() bool {
	return p.canMark && p.in.Pressed(input.KeyMark)
}
