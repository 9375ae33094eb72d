package round

import (
	"fmt"
	"math/rand"
	"time"
)

// Phase is the round lifecycle state.
type Phase int

const (
	NotStarted Phase = iota
	Running
	RoundComplete
	GameOver
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case RoundComplete:
		return "round-complete"
	case GameOver:
		return "game-over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Outcome is how the last round ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "none"
	}
}

// Targets picks a target region name. world.RegionSet implements it.
type Targets interface {
	Pick(rng *rand.Rand, exclude ...string) string
}

// Options configures a Manager.
type Options struct {
	MaxRounds    int        `yaml:"max_rounds"`
	BaseTime     float64    `yaml:"base_time"`     // seconds per round
	AvoidRepeats bool       `yaml:"avoid_repeats"` // never reuse a target within one game while others remain
	Rand         *rand.Rand `yaml:"-"`
}

// DefaultOptions is five 20 second rounds with repeats allowed.
func DefaultOptions() Options {
	return Options{MaxRounds: 5, BaseTime: 20}
}

// Manager owns the round counter, target, timer and score.
type Manager struct {
	opts    Options
	targets Targets
	rng     *rand.Rand

	round   int
	target  string
	marked  bool
	phase   Phase
	outcome Outcome
	used    []string

	timer Timer
	score Score
}

// NewManager returns a manager at round 1, not started.
func NewManager(targets Targets, opts Options) *Manager {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultOptions().MaxRounds
	}
	if opts.BaseTime <= 0 {
		opts.BaseTime = DefaultOptions().BaseTime
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- gameplay randomness
	}
	return &Manager{opts: opts, targets: targets, rng: rng, round: 1}
}

// StartRound picks a target, clears the marked flag and starts the timer.
func (m *Manager) StartRound() {
	m.target = ""
	if m.targets != nil {
		var exclude []string
		if m.opts.AvoidRepeats {
			exclude = m.used
		}
		m.target = m.targets.Pick(m.rng, exclude...)
	}
	if m.target != "" {
		m.used = append(m.used, m.target)
	}
	m.marked = false
	m.outcome = OutcomeNone
	m.timer.Start(m.opts.BaseTime)
	m.phase = Running
}

// Update advances the timer. When it runs out during a running round the
// round ends as a failure and Update returns true, once.
func (m *Manager) Update(dt float64) bool {
	m.timer.Update(dt)
	if m.timer.JustExpired() && m.phase == Running {
		m.EndRound(false)
		return true
	}
	return false
}

// EndRound finishes the running round and returns the points awarded.
// It does nothing outside a running round.
func (m *Manager) EndRound(success bool) int {
	if m.phase != Running {
		return 0
	}
	m.timer.Pause()
	points := 0
	if success {
		points = Points(m.timer.Remaining())
		m.score.Add(points)
		m.outcome = OutcomeSuccess
	} else {
		m.outcome = OutcomeFailure
	}
	m.phase = RoundComplete
	return points
}

// CanMark reports whether a marker may still be placed this round.
func (m *Manager) CanMark() bool { return m.phase == Running && !m.marked }

// MarkPlaced uses up this round's marker.
func (m *Manager) MarkPlaced() { m.marked = true }

// NextRound advances the counter. On the last round it moves to GameOver
// and returns false.
func (m *Manager) NextRound() bool {
	if m.round < m.opts.MaxRounds {
		m.round++
		return true
	}
	m.phase = GameOver
	return false
}

// IsGameOver reports whether the last round has been reached.
func (m *Manager) IsGameOver() bool { return m.round >= m.opts.MaxRounds }

// Reset returns to round 1 with no target, a zero score and a stopped timer.
// The high score survives.
func (m *Manager) Reset() {
	m.round = 1
	m.target = ""
	m.marked = false
	m.phase = NotStarted
	m.outcome = OutcomeNone
	m.used = nil
	m.score.Reset()
	m.timer.Reset()
}

func (m *Manager) Round() int       { return m.round }
func (m *Manager) MaxRounds() int   { return m.opts.MaxRounds }
func (m *Manager) Target() string   { return m.target }
func (m *Manager) Marked() bool     { return m.marked }
func (m *Manager) Phase() Phase     { return m.phase }
func (m *Manager) Outcome() Outcome { return m.outcome }
func (m *Manager) Options() Options { return m.opts }
func (m *Manager) Timer() *Timer    { return &m.timer }
func (m *Manager) Score() *Score    { return &m.score }

// SetRound restores the round counter, clamped into [1, MaxRounds].
func (m *Manager) SetRound(n int) {
	m.round = max(1, min(m.opts.MaxRounds, n))
}

// SetTarget restores the target region.
func (m *Manager) SetTarget(name string) {
	m.target = name
	if name != "" {
		m.used = append(m.used, name)
	}
}

// SetMarked restores the marked flag.
func (m *Manager) SetMarked(v bool) { m.marked = v }

// SetPhase restores the lifecycle phase.
func (m *Manager) SetPhase(p Phase) { m.phase = p }

// SetOutcome restores how the last round ended.
func (m *Manager) SetOutcome(o Outcome) { m.outcome = o }
