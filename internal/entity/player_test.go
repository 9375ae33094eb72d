package entity

import (
	"math"
	"testing"

	"github.com/Garsondee/Ghost-Hunt/internal/input"
	"github.com/Garsondee/Ghost-Hunt/internal/sound"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

func newTestPlayer(t *testing.T) (*Player, *input.Scripted, *sound.Recorder) {
	t.Helper()
	rec := sound.NewRecorder()
	p := NewPlayer(world.Vec{X: 100, Y: 100}, DefaultPlayerTuning(), nil, rec)
	return p, input.NewScripted(), rec
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPlayer_StartsIdleFacingDown(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	if p.State() != PlayerIdle || p.Dir != Down {
		t.Fatalf("state=%s dir=%s", p.State(), p.Dir)
	}
	if p.Stamina != 100 {
		t.Fatalf("stamina=%v", p.Stamina)
	}
	if f := p.Frame(); f.Sheet != SheetIdle || f.Index != 18 || !f.Visible {
		t.Fatalf("frame=%+v", f)
	}
}

func TestPlayer_IdleDirectionPriority(t *testing.T) {
	cases := []struct {
		keys []input.Key
		want Direction
	}{
		{[]input.Key{input.KeyUp, input.KeyDown}, Down},
		{[]input.Key{input.KeyUp, input.KeyRight}, Right},
		{[]input.Key{input.KeyLeft, input.KeyUp}, Up},
		{[]input.Key{input.KeyLeft}, Left},
	}
	for _, tc := range cases {
		p, in, _ := newTestPlayer(t)
		in.Set(tc.keys...)
		p.Update(0.1, in, false)
		if p.State() != PlayerWalking {
			t.Fatalf("keys %v: state=%s", tc.keys, p.State())
		}
		if p.Dir != tc.want {
			t.Fatalf("keys %v: dir=%s want %s", tc.keys, p.Dir, tc.want)
		}
	}
}

func TestPlayer_WalkSpeed(t *testing.T) {
	p, in, _ := newTestPlayer(t)
	in.Set(input.KeyRight)
	p.Update(0.1, in, false) // idle -> walking
	for i := 0; i < 10; i++ {
		in.Set(input.KeyRight)
		p.Update(0.1, in, false)
	}
	if math.Abs(p.Pos.X-150) > 1e-6 || p.Pos.Y != 100 {
		t.Fatalf("pos=%+v want x=150", p.Pos)
	}
	if p.Vel.X != 50 {
		t.Fatalf("vel=%+v", p.Vel)
	}
}

func TestPlayer_DiagonalIsNormalised(t *testing.T) {
	p, in, _ := newTestPlayer(t)
	in.Set(input.KeyRight, input.KeyDown)
	p.Update(0.1, in, false)
	in.Set(input.KeyRight, input.KeyDown)
	p.Update(0.1, in, false)
	if !near(p.Vel.Len(), 50) {
		t.Fatalf("|vel|=%v want 50", p.Vel.Len())
	}
}

func TestPlayer_WallStopsMovement(t *testing.T) {
	raw := make([]uint32, 3*3)
	raw[5] = 1 // tile (2,1) east of the player
	g, err := world.NewGrid(3, 3, raw)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(world.Vec{X: 32, Y: 24}, DefaultPlayerTuning(), world.NewResolver(g), nil)
	in := input.NewScripted()
	for i := 0; i < 20; i++ {
		in.Set(input.KeyRight)
		p.Update(0.1, in, false)
	}
	// Hitbox right edge is x+4+24-1; tile 2 starts at 64.
	if p.Pos.X+4+24 > 64 {
		t.Fatalf("walked into the wall: %+v", p.Pos)
	}
	if p.Vel.X != 0 {
		t.Fatalf("blocked axis should report zero velocity, got %+v", p.Vel)
	}
}

func TestPlayer_RunningDrainsAndRegenerates(t *testing.T) {
	p, in, rec := newTestPlayer(t)
	in.Set(input.KeyRun, input.KeyRight)
	p.Update(0.1, in, false)
	if p.State() != PlayerRunning {
		t.Fatalf("state=%s want running", p.State())
	}
	if !rec.Playing(sound.Breathing) {
		t.Fatal("breathing should play while running")
	}
	in.Set(input.KeyRun, input.KeyRight)
	p.Update(0.1, in, false)
	if !near(p.Stamina, 97) {
		t.Fatalf("stamina=%v want 97", p.Stamina)
	}
	if !near(p.Pos.X, 108) {
		t.Fatalf("x=%v want 108 (80 px/s)", p.Pos.X)
	}

	in.Set(input.KeyRight) // shift released, still moving
	p.Update(0.1, in, false)
	if p.State() != PlayerWalking {
		t.Fatalf("state=%s want walking", p.State())
	}
	if rec.Playing(sound.Breathing) {
		t.Fatal("breathing should stop on leaving running")
	}
	// The leaving tick still drains (97-3) before regenerating (+2).
	if !near(p.Stamina, 96) {
		t.Fatalf("stamina=%v want 96", p.Stamina)
	}
}

func TestPlayer_RunReleaseWithoutDirectionIdles(t *testing.T) {
	p, in, _ := newTestPlayer(t)
	in.Set(input.KeyRun, input.KeyUp)
	p.Update(0.1, in, false)
	in.Release()
	p.Update(0.1, in, false)
	if p.State() != PlayerIdle {
		t.Fatalf("state=%s want idle", p.State())
	}
}

func TestPlayer_ExhaustedRunnerWalks(t *testing.T) {
	p, in, _ := newTestPlayer(t)
	in.Set(input.KeyRun, input.KeyLeft)
	p.Update(0.1, in, false)
	p.SetStamina(1)
	in.Set(input.KeyRun, input.KeyLeft)
	p.Update(0.1, in, false)
	if p.State() != PlayerWalking {
		t.Fatalf("state=%s want walking", p.State())
	}
	if p.Stamina < 0 || p.Stamina > p.Tuning().MaxStamina {
		t.Fatalf("stamina out of range: %v", p.Stamina)
	}
}

func TestPlayer_StaminaClamped(t *testing.T) {
	p, in, _ := newTestPlayer(t)
	for i := 0; i < 100; i++ {
		p.Update(0.5, in, false)
	}
	if p.Stamina != 100 {
		t.Fatalf("stamina=%v exceeded max", p.Stamina)
	}
	p.SetStamina(-20)
	if p.Stamina != 0 {
		t.Fatalf("SetStamina(-20)=%v", p.Stamina)
	}
}

func TestPlayer_MarkNeedsPermission(t *testing.T) {
	p, in, _ := newTestPlayer(t)
	in.Set(input.KeyMark)
	p.Update(0.1, in, false)
	if p.State() == PlayerSigning || p.Marker != nil {
		t.Fatal("marked without permission")
	}
	if p.TakeMarkerPlaced() {
		t.Fatal("no marker was placed")
	}
}

func TestPlayer_SigningPlacesAndFadesMarker(t *testing.T) {
	p, in, rec := newTestPlayer(t)
	in.Set(input.KeyMark)
	p.Update(0.5, in, true)
	if p.State() != PlayerSigning {
		t.Fatalf("state=%s want signing", p.State())
	}
	if p.Marker == nil || p.Marker.Pos != p.Pos || p.Marker.Opacity != 0 {
		t.Fatalf("marker=%+v", p.Marker)
	}
	if !p.TakeMarkerPlaced() || p.TakeMarkerPlaced() {
		t.Fatal("marker placement should be reported exactly once")
	}
	if !rec.Playing(sound.Sign) {
		t.Fatal("sign cue should play")
	}

	// Movement keys are ignored while signing.
	start := p.Pos
	for i := 0; i < 4; i++ {
		in.Set(input.KeyRight)
		p.Update(0.5, in, true)
	}
	if p.Pos != start {
		t.Fatalf("moved while signing: %+v", p.Pos)
	}
	if !near(p.Marker.Opacity, 0.5) {
		t.Fatalf("opacity=%v want 0.5 halfway", p.Marker.Opacity)
	}
	for i := 0; i < 4; i++ {
		in.Release()
		p.Update(0.5, in, true)
	}
	if p.State() != PlayerIdle {
		t.Fatalf("state=%s want idle after signing", p.State())
	}
	if p.Marker.Opacity != 1 {
		t.Fatalf("opacity=%v want 1", p.Marker.Opacity)
	}
	if rec.Playing(sound.Sign) {
		t.Fatal("sign cue should stop on exit")
	}
}

func TestSignSequenceIsClockwiseFromFacing(t *testing.T) {
	got := signSequence(Left)
	want := []int{28, 29, 30, 16, 17, 18, 4, 5, 6, 40, 41, 42}
	if len(got) != len(want) {
		t.Fatalf("len=%d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("seq=%v want %v", got, want)
		}
	}
}

func TestPlayer_SigningFramesAdvance(t *testing.T) {
	p, in, _ := newTestPlayer(t) // facing down: 40, 41, 42, 28 ...
	in.Set(input.KeyMark)
	p.Update(0.01, in, true)
	if f := p.Frame(); f.Sheet != SheetSign || f.Index != 40 {
		t.Fatalf("frame=%+v", f)
	}
	in.Release()
	p.Update(0.3, in, true)
	if f := p.Frame(); f.Index != 41 {
		t.Fatalf("frame=%+v want 41 after one interval", f)
	}
}

func TestPlayer_DamageHoldsAndLoops(t *testing.T) {
	p, in, _ := newTestPlayer(t)
	p.Damage()
	seen := map[int]bool{}
	for i := 0; i < 60; i++ {
		in.Set(input.KeyRight, input.KeyRun)
		p.Update(0.1, in, true)
		seen[p.Frame().Index] = true
	}
	if p.State() != PlayerDamage {
		t.Fatalf("state=%s, damage should hold", p.State())
	}
	if p.Pos != (world.Vec{X: 100, Y: 100}) {
		t.Fatalf("moved while damaged: %+v", p.Pos)
	}
	for _, idx := range []int{9, 10, 11} {
		if !seen[idx] {
			t.Fatalf("frame %d never shown: %v", idx, seen)
		}
	}
}

func TestPlayer_Reset(t *testing.T) {
	p, in, _ := newTestPlayer(t)
	in.Set(input.KeyMark)
	p.Update(0.1, in, true)
	p.Dir = Left
	p.SetStamina(3)
	p.Reset(world.Vec{X: 656, Y: 2028.8})
	if p.State() != PlayerIdle || p.Marker != nil || p.Stamina != 100 || p.Dir != Down {
		t.Fatalf("after reset: state=%s marker=%v stamina=%v dir=%s", p.State(), p.Marker, p.Stamina, p.Dir)
	}
	if p.TakeMarkerPlaced() {
		t.Fatal("reset should clear a pending marker report")
	}
}

func TestMarker_Fade(t *testing.T) {
	cases := []struct {
		name    string
		start   float64
		dt, dur float64
		want    float64
	}{
		{"quarter step", 0, 1, 4, 0.25},
		{"clamps at one", 0.9, 1, 4, 1},
		{"zero duration is instant", 0, 0.1, 0, 1},
	}
	for _, tc := range cases {
		m := &Marker{Opacity: tc.start}
		m.Fade(tc.dt, tc.dur)
		if m.Opacity != tc.want {
			t.Fatalf("%s: opacity=%v want %v", tc.name, m.Opacity, tc.want)
		}
	}
}
