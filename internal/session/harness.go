package session

import (
	"context"
	"encoding/json"
	"math"
	"math/rand"
	"time"

	"github.com/Garsondee/Ghost-Hunt/internal/entity"
	"github.com/Garsondee/Ghost-Hunt/internal/input"
	"github.com/Garsondee/Ghost-Hunt/internal/round"
	"github.com/Garsondee/Ghost-Hunt/internal/save"
	"github.com/Garsondee/Ghost-Hunt/internal/sound"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

// Harness runs a Session headlessly with scripted input, a recording sound
// player and an in-memory store. Tests and the headless report use it.
type Harness struct {
	Session *Session
	Input   *input.Scripted
	Sound   *sound.Recorder
	Store   save.Store
	Dt      float64

	opts Options
	seed int64
}

// harnessOptionKind controls the pass in which an option is applied.
type harnessOptionKind int

const (
	harnessOptInfra   harnessOptionKind = iota // map, seed, store, tuning: applied first
	harnessOptSession                          // needs the store: applied second
)

// HarnessOption is a builder applied to a Harness during construction.
type HarnessOption struct {
	kind harnessOptionKind
	fn   func(*Harness)
}

// WithSeed seeds target selection.
func WithSeed(seed int64) HarnessOption {
	return HarnessOption{harnessOptInfra, func(h *Harness) { h.seed = seed }}
}

// WithMap replaces the demo map.
func WithMap(m *world.Map, spawn world.Vec) HarnessOption {
	return HarnessOption{harnessOptInfra, func(h *Harness) {
		h.opts.Map = m
		h.opts.Spawn = spawn
	}}
}

// WithDt sets the fixed step.
func WithDt(dt float64) HarnessOption {
	return HarnessOption{harnessOptInfra, func(h *Harness) { h.Dt = dt }}
}

// WithVerbose keeps verbose log entries.
func WithVerbose(v bool) HarnessOption {
	return HarnessOption{harnessOptInfra, func(h *Harness) { h.opts.Events = NewLog(v) }}
}

// WithStore swaps the in-memory store for s.
func WithStore(s save.Store) HarnessOption {
	return HarnessOption{harnessOptInfra, func(h *Harness) { h.Store = s }}
}

// WithRounds edits the round options.
func WithRounds(edit func(*round.Options)) HarnessOption {
	return HarnessOption{harnessOptInfra, func(h *Harness) { edit(&h.opts.Round) }}
}

// WithTuning replaces the player constants.
func WithTuning(t entity.PlayerTuning) HarnessOption {
	return HarnessOption{harnessOptInfra, func(h *Harness) { h.opts.Player = t }}
}

// WithHitbox replaces the player's collision box.
func WithHitbox(hb world.Hitbox) HarnessOption {
	return HarnessOption{harnessOptInfra, func(h *Harness) { h.opts.Hitbox = hb }}
}

// WithDamageHold sets how long the failure scene plays before round end.
func WithDamageHold(seconds float64) HarnessOption {
	return HarnessOption{harnessOptInfra, func(h *Harness) { h.opts.DamageHold = seconds }}
}

// WithAutoSaveInterval sets the auto-save period in seconds.
func WithAutoSaveInterval(seconds float64) HarnessOption {
	return HarnessOption{harnessOptInfra, func(h *Harness) { h.opts.AutoSaveInterval = seconds }}
}

// WithClock fixes the snapshot clock.
func WithClock(clock func() time.Time) HarnessOption {
	return HarnessOption{harnessOptInfra, func(h *Harness) { h.opts.Clock = clock }}
}

// WithSavedRecord stores rec before the session starts and resumes from it.
func WithSavedRecord(rec save.Record) HarnessOption {
	return HarnessOption{harnessOptSession, func(h *Harness) {
		data, err := json.Marshal(rec)
		if err != nil {
			panic(err)
		}
		if err := h.Store.Put(context.Background(), save.SaveKey, data); err != nil {
			panic(err)
		}
		h.opts.LoadSaved = true
	}}
}

// WithLoadSaved resumes from whatever the store already holds.
func WithLoadSaved() HarnessOption {
	return HarnessOption{harnessOptSession, func(h *Harness) { h.opts.LoadSaved = true }}
}

// NewHarness builds a harness in two ordered passes: infrastructure, then
// options that need the store, then the session itself.
func NewHarness(opts ...HarnessOption) *Harness {
	h := &Harness{
		Input: input.NewScripted(),
		Sound: sound.NewRecorder(),
		Store: save.NewMemoryStore(),
		Dt:    1.0 / 60,
		seed:  1,
		opts: Options{
			Map:   DemoMap(),
			Spawn: DemoSpawn,
			Round: round.DefaultOptions(),
			Clock: func() time.Time { return time.Unix(1_700_000_000, 0) },
		},
	}
	for _, o := range opts {
		if o.kind == harnessOptInfra {
			o.fn(h)
		}
	}
	for _, o := range opts {
		if o.kind == harnessOptSession {
			o.fn(h)
		}
	}
	h.opts.Round.Rand = rand.New(rand.NewSource(h.seed)) // #nosec G404 -- deterministic harness
	h.opts.Sound = h.Sound
	h.opts.Saves = save.NewManager(h.Store)
	h.Session = New(context.Background(), h.opts)
	return h
}

// Tick holds keys for one step.
func (h *Harness) Tick(keys ...input.Key) {
	h.Input.Set(keys...)
	h.Session.Step(h.Dt, h.Input)
}

// Run holds keys for n steps.
func (h *Harness) Run(n int, keys ...input.Key) {
	for i := 0; i < n; i++ {
		h.Tick(keys...)
	}
}

// RunFor holds keys for the given number of seconds.
func (h *Harness) RunFor(seconds float64, keys ...input.Key) {
	h.Run(int(math.Ceil(seconds/h.Dt-1e-9)), keys...)
}

// Press taps k: one step down, one step released.
func (h *Harness) Press(k input.Key) {
	h.Tick(k)
	h.Tick()
}

// Until steps with keys held until cond holds or maxTicks pass. It reports
// whether cond was met.
func (h *Harness) Until(cond func() bool, maxTicks int, keys ...input.Key) bool {
	for i := 0; i < maxTicks; i++ {
		if cond() {
			return true
		}
		h.Tick(keys...)
	}
	return cond()
}

// WalkTo steers the player toward target and reports whether it arrived
// within maxTicks.
func (h *Harness) WalkTo(target world.Vec, maxTicks int) bool {
	p := h.Session.Player()
	tol := p.Tuning().WalkSpeed * h.Dt
	for i := 0; i < maxTicks; i++ {
		dx, dy := target.X-p.Pos.X, target.Y-p.Pos.Y
		if math.Abs(dx) <= tol && math.Abs(dy) <= tol {
			h.Tick()
			return true
		}
		var keys []input.Key
		switch {
		case dx > tol:
			keys = append(keys, input.KeyRight)
		case dx < -tol:
			keys = append(keys, input.KeyLeft)
		}
		switch {
		case dy > tol:
			keys = append(keys, input.KeyDown)
		case dy < -tol:
			keys = append(keys, input.KeyUp)
		}
		h.Tick(keys...)
	}
	return false
}

// TargetCenter returns the centre of the current target region.
func (h *Harness) TargetCenter() (world.Vec, bool) {
	r, err := h.Session.Map().Regions.Region(h.Session.Rounds().Target())
	if err != nil {
		return world.Vec{}, false
	}
	return world.Vec{X: r.Bounds.CenterX, Y: r.Bounds.CenterY}, true
}

// DemoSpawn is the start point on DemoMap, inside the kitchen.
var DemoSpawn = world.Vec{X: 96, Y: 160}

// DemoMap is a 20x12 tile walled room split into a kitchen (west) and a
// hall (east).
func DemoMap() *world.Map {
	const cols, rows = 20, 12
	raw := make([]uint32, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if r == 0 || c == 0 || r == rows-1 || c == cols-1 {
				raw[r*cols+c] = 1
			}
		}
	}
	g, err := world.NewGrid(cols, rows, raw)
	if err != nil {
		panic(err)
	}
	rect := func(name string, x0, y0, x1, y1 float64) world.Region {
		return world.Region{Name: name, Points: []world.Vec{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}}
	}
	rs, err := world.NewRegionSet([]world.Region{
		rect("Kitchen", 32, 32, 320, 352),
		rect("Hall", 320, 32, 608, 352),
	})
	if err != nil {
		panic(err)
	}
	return &world.Map{Grid: g, Regions: rs}
}
