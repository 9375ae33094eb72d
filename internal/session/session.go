// Package session is the play loop: it owns the player, the ghosts and the
// round manager, runs one tick at a time, and persists progress.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Garsondee/Ghost-Hunt/internal/entity"
	"github.com/Garsondee/Ghost-Hunt/internal/input"
	"github.com/Garsondee/Ghost-Hunt/internal/round"
	"github.com/Garsondee/Ghost-Hunt/internal/save"
	"github.com/Garsondee/Ghost-Hunt/internal/sound"
	"github.com/Garsondee/Ghost-Hunt/internal/telemetry"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

// Phase is the screen the session is on.
type Phase int

const (
	PhasePlay Phase = iota
	PhaseRoundEnd
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlay:
		return "play"
	case PhaseRoundEnd:
		return "round-end"
	case PhaseGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// halfwayWindow is how far past the halfway mark the warning may still fire.
const halfwayWindow = 0.5

// Options configures a Session. Zero values fall back to stock behaviour.
type Options struct {
	Map              *world.Map
	Player           entity.PlayerTuning
	Hitbox           world.Hitbox
	Round            round.Options
	Spawn            world.Vec
	DamageHold       float64 // seconds
	AutoSaveInterval float64 // seconds

	Saves  *save.Manager
	Sound  sound.Player
	Logger *log.Logger
	Tracer trace.Tracer
	Clock  func() time.Time
	Events *Log

	// LoadSaved resumes from the stored snapshot instead of starting fresh.
	LoadSaved bool
}

func (o *Options) fill() {
	if o.Map == nil {
		o.Map = &world.Map{}
	}
	if o.Map.Regions == nil {
		o.Map.Regions, _ = world.NewRegionSet(nil)
	}
	if o.Player == (entity.PlayerTuning{}) {
		o.Player = entity.DefaultPlayerTuning()
	}
	if o.Hitbox == (world.Hitbox{}) {
		o.Hitbox = world.DefaultHitbox
	}
	if o.DamageHold <= 0 {
		o.DamageHold = 5
	}
	if o.AutoSaveInterval <= 0 {
		o.AutoSaveInterval = 5
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	if o.Saves == nil {
		o.Saves = save.NewManager(save.NewMemoryStore(), save.WithLogger(o.Logger))
	}
	if o.Sound == nil {
		o.Sound = sound.Nop{}
	}
	if o.Tracer == nil {
		o.Tracer = telemetry.NoopTracer()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Events == nil {
		o.Events = NewLog(false)
	}
}

// Session is one game from round 1 to game over.
type Session struct {
	id   string
	opts Options
	ctx  context.Context

	player *entity.Player
	ghosts []*entity.Ghost
	rounds *round.Manager

	phase Phase
	tick  int

	hasCheckedMarker      bool
	hasHandledTimerExpiry bool
	halfwayShown          bool
	inDamage              bool
	damageTimer           float64
	saveTimer             float64

	region      string // region the player stands in, "" for none
	lastState   entity.PlayerStateID
	roundSpan   trace.Span
	resumedSave bool

	paused          bool
	timerWasRunning bool
}

// New starts a session: a fresh game, or the stored snapshot when
// opts.LoadSaved is set and one can be loaded.
func New(ctx context.Context, opts Options) *Session {
	opts.fill()
	s := &Session{
		id:        uuid.NewString(),
		opts:      opts,
		ctx:       ctx,
		roundSpan: noop.Span{},
	}
	res := world.NewResolver(opts.Map.Grid)
	res.Hitbox = opts.Hitbox
	s.player = entity.NewPlayer(opts.Spawn, opts.Player, res, opts.Sound)
	s.lastState = s.player.State()
	s.rounds = round.NewManager(opts.Map.Regions, opts.Round)
	s.rounds.Score().SetHigh(opts.Saves.LoadHighScore(ctx))

	if opts.LoadSaved && s.LoadSaved() {
		return s
	}
	s.NewGame()
	return s
}

// NewGame discards any snapshot and starts round 1.
func (s *Session) NewGame() {
	s.opts.Saves.Delete(s.ctx)
	s.clearGhosts()
	s.rounds.Reset()
	s.player.Reset(s.opts.Spawn)
	s.resumedSave = false
	s.event(CatRound, "new-game", s.id, 0)
	s.startRound()
}

// LoadSaved replaces the current game with the stored snapshot. It reports
// false, leaving the session untouched, when there is nothing to load.
func (s *Session) LoadSaved() bool {
	rec, ok := s.opts.Saves.Load(s.ctx)
	if !ok {
		return false
	}
	s.clearGhosts()
	s.rounds.Reset()
	s.player.Reset(s.opts.Spawn)
	s.lastState = s.player.State()
	s.resetRoundFlags()

	var f save.Flags
	save.Restore(rec, save.Targets{Player: s.player, Round: s.rounds, Flags: &f})
	s.resumedSave = true
	s.phase = PhasePlay

	if rec.ResumesAtRoundEnd() {
		// Taken on the round-end screen: play the next round from the spawn.
		s.startRound()
		s.player.Reset(s.opts.Spawn)
		s.event(CatSave, "load", fmt.Sprintf("resume at round %d", s.rounds.Round()), float64(s.rounds.Round()))
		return true
	}
	if rec.AtRoundEnd() {
		// The last round's result screen: the round was already judged.
		s.rounds.SetOutcome(s.savedOutcome(rec, f))
		s.rounds.SetPhase(round.RoundComplete)
		s.rounds.Timer().Pause()
		s.player.Reset(s.opts.Spawn)
		s.phase = PhaseRoundEnd
		s.event(CatSave, "load", fmt.Sprintf("round %d over, score %d", s.rounds.Round(), s.rounds.Score().Current()),
			float64(s.rounds.Score().Current()))
		return true
	}

	s.hasCheckedMarker = f.HasCheckedMarker
	s.hasHandledTimerExpiry = f.HasHandledTimerExpiry
	s.rounds.SetPhase(round.Running)
	s.halfwayShown = s.rounds.Timer().Remaining() <= s.rounds.Timer().Base()/2
	s.beginRoundSpan()
	s.event(CatSave, "load", fmt.Sprintf("mid-round %d, %.1fs left", s.rounds.Round(), s.rounds.Timer().Remaining()),
		s.rounds.Timer().Remaining())

	if s.hasHandledTimerExpiry || s.hasCheckedMarker || s.rounds.Timer().Expired() {
		// The round had already been lost when the snapshot was taken.
		s.rounds.EndRound(false)
		s.hasHandledTimerExpiry = true
		s.endSpan(0)
		s.failureSequence()
		return true
	}
	// A live round always has its clock running, even if saved while paused.
	s.rounds.Timer().Resume()
	return true
}

// savedOutcome re-judges a round-end snapshot from its marker and flags.
func (s *Session) savedOutcome(rec *save.Record, f save.Flags) round.Outcome {
	if f.HasHandledTimerExpiry || rec.MarkerPosition == nil {
		return round.OutcomeFailure
	}
	at, ok := s.opts.Map.Regions.RegionAt(*rec.MarkerPosition)
	if ok && at != "" && at == s.rounds.Target() {
		return round.OutcomeSuccess
	}
	return round.OutcomeFailure
}

// Step advances the session by dt seconds.
func (s *Session) Step(dt float64, in input.Source) {
	if in == nil {
		in = input.None{}
	}
	if s.paused {
		return
	}
	s.tick++
	switch s.phase {
	case PhasePlay:
		s.stepPlay(dt, in)
	case PhaseRoundEnd:
		switch {
		case in.Pressed(input.KeyConfirm):
			s.continueGame()
		case in.Pressed(input.KeyCancel):
			s.gameOver()
		}
	case PhaseGameOver:
		if in.Pressed(input.KeyConfirm) {
			s.NewGame()
		}
	}
}

func (s *Session) stepPlay(dt float64, in input.Source) {
	p := s.player
	p.Update(dt, in, s.rounds.CanMark())
	if p.TakeMarkerPlaced() {
		s.rounds.MarkPlaced()
		s.event(CatMarker, "placed", fmt.Sprintf("(%.1f, %.1f)", p.Marker.Pos.X, p.Marker.Pos.Y), 0)
	}
	if st := p.State(); st != s.lastState {
		s.event(CatState, "player", fmt.Sprintf("%s -> %s", s.lastState, st), 0)
		s.lastState = st
	}
	if s.opts.Events.Verbose() {
		s.opts.Events.AddVerbose(s.tick, CatTick, "player",
			fmt.Sprintf("%s at (%.1f, %.1f) stamina %.0f", p.State(), p.Pos.X, p.Pos.Y, p.Stamina), p.Stamina)
	}
	for _, g := range s.ghosts {
		g.Update(dt)
	}
	if m := p.Marker; m != nil && !p.Is(entity.PlayerSigning) {
		m.Fade(dt, p.Tuning().SignDuration)
	}

	if s.rounds.Update(dt) && !s.hasHandledTimerExpiry {
		s.hasHandledTimerExpiry = true
		s.event(CatRound, "expired", s.rounds.Target(), 0)
		s.endSpan(0)
		s.failureSequence()
	}

	s.checkHalfway()

	if s.inDamage {
		s.damageTimer -= dt
		if s.damageTimer <= 0 {
			s.toRoundEnd()
			return
		}
	}

	if p.Marker != nil && !s.hasCheckedMarker && !p.Is(entity.PlayerSigning) &&
		s.rounds.Phase() == round.Running {
		if s.checkMarker() {
			return
		}
	}

	s.trackRegion()
	s.autoSave(dt)
}

func (s *Session) checkHalfway() {
	if s.halfwayShown || s.rounds.Phase() != round.Running {
		return
	}
	t := s.rounds.Timer()
	half := t.Base() / 2
	if r := t.Remaining(); r <= half && r > half-halfwayWindow {
		s.halfwayShown = true
		s.opts.Sound.Play(sound.Warning)
		s.event(CatWarning, "halfway", fmt.Sprintf("%.1fs left", r), r)
	}
}

// checkMarker judges the placed marker and reports whether the session left
// the play phase.
func (s *Session) checkMarker() bool {
	s.hasCheckedMarker = true
	pos := s.player.Marker.Pos
	target := s.rounds.Target()
	at, ok := s.opts.Map.Regions.RegionAt(pos)
	if ok && target != "" && at == target {
		pts := s.rounds.EndRound(true)
		s.opts.Sound.Play(sound.Success)
		s.event(CatRound, "end", "success", float64(pts))
		s.endSpan(pts)
		s.toRoundEnd()
		return true
	}
	s.rounds.EndRound(false)
	s.event(CatRound, "end", fmt.Sprintf("failure: marked %q, wanted %q", at, target), 0)
	s.endSpan(0)
	s.failureSequence()
	return false
}

// failureSequence knocks the player down and raises three ghosts around them.
func (s *Session) failureSequence() {
	s.opts.Sound.Play(sound.Failure)
	s.player.Damage()
	s.lastState = s.player.State()
	s.inDamage = true
	s.damageTimer = s.opts.DamageHold
	s.clearGhosts()
	s.ghosts = entity.SpawnAround(s.player.Pos, s.opts.Sound)
	for _, g := range s.ghosts {
		g.Materialize()
	}
	s.event(CatState, "ghosts", fmt.Sprintf("%d spawned", len(s.ghosts)), float64(len(s.ghosts)))
}

// toRoundEnd saves a round-end snapshot and shows the round-end screen.
func (s *Session) toRoundEnd() {
	var next *int
	if r := s.rounds.Round(); r < s.rounds.MaxRounds() {
		n := r + 1
		next = &n
	}
	s.save(save.Flags{
		HasCheckedMarker:      s.hasCheckedMarker,
		HasHandledTimerExpiry: s.hasHandledTimerExpiry,
		NextRound:             next,
		GameStateName:         save.GameStateRoundEnd,
	}, "round-end")
	s.inDamage = false
	s.damageTimer = 0
	s.clearGhosts()
	s.phase = PhaseRoundEnd
	s.event(CatRound, "screen", fmt.Sprintf("round %d over, score %d", s.rounds.Round(), s.rounds.Score().Current()),
		float64(s.rounds.Score().Current()))
}

func (s *Session) continueGame() {
	if !s.rounds.NextRound() {
		s.gameOver()
		return
	}
	s.player.Reset(s.opts.Spawn)
	s.lastState = s.player.State()
	s.startRound()
	s.phase = PhasePlay
}

func (s *Session) gameOver() {
	score := s.rounds.Score()
	if score.Commit() {
		s.opts.Saves.SaveHighScore(s.ctx, score.High())
		s.event(CatRound, "high-score", fmt.Sprint(score.High()), float64(score.High()))
	}
	s.opts.Saves.Delete(s.ctx)
	s.clearGhosts()
	s.inDamage = false
	s.rounds.SetPhase(round.GameOver)
	s.phase = PhaseGameOver
	s.event(CatRound, "game-over", fmt.Sprintf("score %d", score.Current()), float64(score.Current()))
}

func (s *Session) startRound() {
	s.rounds.StartRound()
	s.resetRoundFlags()
	s.phase = PhasePlay
	s.beginRoundSpan()
	s.event(CatRound, "start", fmt.Sprintf("round %d: find %q", s.rounds.Round(), s.rounds.Target()),
		float64(s.rounds.Round()))
}

func (s *Session) resetRoundFlags() {
	s.hasCheckedMarker = false
	s.hasHandledTimerExpiry = false
	s.halfwayShown = false
	s.inDamage = false
	s.damageTimer = 0
	s.saveTimer = 0
	s.paused = false
}

func (s *Session) trackRegion() {
	at, _ := s.opts.Map.Regions.RegionAt(s.player.Pos)
	if at == s.region {
		return
	}
	s.region = at
	if at != "" {
		s.event(CatRegion, "enter", at, 0)
	}
}

func (s *Session) autoSave(dt float64) {
	s.saveTimer += dt
	if s.saveTimer < s.opts.AutoSaveInterval {
		return
	}
	s.saveTimer = 0
	s.save(s.flags(), "auto")
}

func (s *Session) flags() save.Flags {
	return save.Flags{
		HasCheckedMarker:      s.hasCheckedMarker,
		HasHandledTimerExpiry: s.hasHandledTimerExpiry,
	}
}

func (s *Session) save(f save.Flags, why string) bool {
	ok := s.opts.Saves.Save(s.ctx, save.Capture(s.player, s.rounds, f, s.opts.Clock()))
	result := "ok"
	if !ok {
		result = "failed"
	}
	s.event(CatSave, why, result, 0)
	return ok
}

// SaveNow writes a snapshot of the current play state.
func (s *Session) SaveNow() bool {
	if s.phase != PhasePlay {
		return false
	}
	return s.save(s.flags(), "manual")
}

// SetPaused freezes or resumes play. The round clock stops while paused.
// Only the play phase can be paused.
func (s *Session) SetPaused(paused bool) {
	if paused == s.paused || (paused && s.phase != PhasePlay) {
		return
	}
	s.paused = paused
	t := s.rounds.Timer()
	if paused {
		s.timerWasRunning = t.Running()
		t.Pause()
	} else if s.timerWasRunning {
		t.Resume()
	}
	s.event(CatRound, "pause", fmt.Sprint(paused), 0)
}

// Snapshot captures the current state without storing it.
func (s *Session) Snapshot() save.Record {
	return save.Capture(s.player, s.rounds, s.flags(), s.opts.Clock())
}

func (s *Session) clearGhosts() {
	for _, g := range s.ghosts {
		g.Recycle()
	}
	s.ghosts = nil
}

func (s *Session) beginRoundSpan() {
	s.roundSpan.End()
	_, s.roundSpan = s.opts.Tracer.Start(s.ctx, "round",
		trace.WithAttributes(
			attribute.String("session.id", s.id),
			attribute.Int("round.number", s.rounds.Round()),
			attribute.String("round.target", s.rounds.Target()),
			attribute.Bool("round.resumed", s.resumedSave),
		))
}

func (s *Session) endSpan(points int) {
	s.roundSpan.SetAttributes(
		attribute.String("round.outcome", s.rounds.Outcome().String()),
		attribute.Int("round.points", points),
		attribute.Float64("round.time_remaining", s.rounds.Timer().Remaining()),
		attribute.Int("player.transitions", s.player.Transitions()),
	)
	s.roundSpan.End()
	s.roundSpan = noop.Span{}
}

func (s *Session) event(category, key, value string, num float64) {
	s.opts.Events.Add(s.tick, category, key, value, num)
}

// Close ends any open trace span.
func (s *Session) Close() {
	s.roundSpan.End()
	s.roundSpan = noop.Span{}
}

func (s *Session) ID() string               { return s.id }
func (s *Session) Phase() Phase             { return s.phase }
func (s *Session) Tick() int                { return s.tick }
func (s *Session) Player() *entity.Player   { return s.player }
func (s *Session) Ghosts() []*entity.Ghost  { return s.ghosts }
func (s *Session) Rounds() *round.Manager   { return s.rounds }
func (s *Session) Map() *world.Map          { return s.opts.Map }
func (s *Session) Events() *Log             { return s.opts.Events }
func (s *Session) CurrentRegion() string    { return s.region }
func (s *Session) InDamage() bool           { return s.inDamage }
func (s *Session) Resumed() bool            { return s.resumedSave }
func (s *Session) Paused() bool             { return s.paused }
func (s *Session) DamageHold() float64      { return s.opts.DamageHold }
func (s *Session) Hitbox() world.Hitbox     { return s.opts.Hitbox }
func (s *Session) HasCheckedMarker() bool   { return s.hasCheckedMarker }
func (s *Session) TimerExpiryHandled() bool { return s.hasHandledTimerExpiry }

// InTarget reports whether the player stands in this round's target region.
func (s *Session) InTarget() bool {
	return s.region != "" && s.region == s.rounds.Target()
}
