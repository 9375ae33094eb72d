package world

import (
	"math"
	"math/rand"
	"testing"
)

var squareBox = Hitbox{OffsetX: 0, OffsetY: 0, Width: 16, Height: 16}

func roomGrid(t *testing.T) *Grid {
	return gridFromRows(t,
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)
}

func TestResolve_WallSlideAlongX(t *testing.T) {
	r := &Resolver{Grid: roomGrid(t), Hitbox: squareBox}
	// Pushing into the west wall while drifting south: X is dropped, Y applies.
	got := r.Resolve(Vec{40, 40}, Vec{-400, 100}, 0.025)
	if got.X != 40 || got.Y != 42.5 {
		t.Fatalf("got %+v, want {40 42.5}", got)
	}
}

func TestResolve_WallSlideAlongY(t *testing.T) {
	r := &Resolver{Grid: roomGrid(t), Hitbox: squareBox}
	got := r.Resolve(Vec{40, 40}, Vec{100, -400}, 0.025)
	if got.X != 42.5 || got.Y != 40 {
		t.Fatalf("got %+v, want {42.5 40}", got)
	}
}

func TestResolve_FreeMoveAppliesBothAxes(t *testing.T) {
	r := &Resolver{Grid: roomGrid(t), Hitbox: squareBox}
	got := r.Resolve(Vec{48, 48}, Vec{100, 100}, 0.1)
	if got.X != 58 || got.Y != 58 {
		t.Fatalf("got %+v, want {58 58}", got)
	}
}

func TestResolve_FailClosedAtEveryEdge(t *testing.T) {
	g := gridFromRows(t,
		"...",
		"...",
		"...",
	)
	r := &Resolver{Grid: g, Hitbox: squareBox}
	cases := []struct {
		name string
		pos  Vec
		vel  Vec
	}{
		{"west", Vec{0, 40}, Vec{-1, 0}},
		{"east", Vec{80, 40}, Vec{1, 0}},
		{"north", Vec{40, 0}, Vec{0, -1}},
		{"south", Vec{40, 80}, Vec{0, 1}},
	}
	for _, tc := range cases {
		if r.Collides(tc.pos.X, tc.pos.Y) {
			t.Fatalf("%s: start position should be free", tc.name)
		}
		got := r.Resolve(tc.pos, tc.vel, 1)
		if got != tc.pos {
			t.Fatalf("%s: moved to %+v past the grid edge", tc.name, got)
		}
	}
}

func TestResolve_NilGridIsFailOpen(t *testing.T) {
	r := &Resolver{Hitbox: squareBox}
	got := r.Resolve(Vec{-500, -500}, Vec{-10, -10}, 1)
	if got.X != -510 || got.Y != -510 {
		t.Fatalf("got %+v, nil grid should never block", got)
	}
}

// Every resolved step either keeps or fully applies each axis, and an axis
// is dropped only when moving along it alone would collide.
func TestResolve_WallSlideLawRandomised(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		raw := make([]uint32, 8*8)
		for i := range raw {
			if rng.Float64() < 0.3 {
				raw[i] = 1
			}
		}
		g, err := NewGrid(8, 8, raw)
		if err != nil {
			t.Fatal(err)
		}
		r := &Resolver{Grid: g, Hitbox: DefaultHitbox}

		pos := Vec{rng.Float64() * 200, rng.Float64() * 200}
		if r.Collides(pos.X, pos.Y) {
			continue
		}
		vel := Vec{(rng.Float64()*2 - 1) * 80, (rng.Float64()*2 - 1) * 80}
		dt := 1.0 / 60
		got := r.Resolve(pos, vel, dt)

		wantX := pos.X
		if !r.Collides(pos.X+vel.X*dt, pos.Y) {
			wantX = pos.X + vel.X*dt
		}
		if got.X != wantX {
			t.Fatalf("trial %d: x=%v want %v", trial, got.X, wantX)
		}
		wantY := pos.Y
		if !r.Collides(got.X, pos.Y+vel.Y*dt) {
			wantY = pos.Y + vel.Y*dt
		}
		if got.Y != wantY {
			t.Fatalf("trial %d: y=%v want %v", trial, got.Y, wantY)
		}
		if r.Collides(got.X, got.Y) {
			t.Fatalf("trial %d: resolved into a wall at %+v", trial, got)
		}
	}
}

func TestNormalizeDiagonal(t *testing.T) {
	v := NormalizeDiagonal(Vec{50, -50}, 50)
	if math.Abs(v.Len()-50) > 1e-9 {
		t.Fatalf("len=%v want 50", v.Len())
	}
	if v.X <= 0 || v.Y >= 0 {
		t.Fatalf("direction lost: %+v", v)
	}
	straight := NormalizeDiagonal(Vec{0, 80}, 80)
	if straight != (Vec{0, 80}) {
		t.Fatalf("single-axis vector changed: %+v", straight)
	}
}

func TestResolver_MaxSafeStep(t *testing.T) {
	r := NewResolver(nil)
	if r.MaxSafeStep() != 16 {
		t.Fatalf("MaxSafeStep=%v want 16", r.MaxSafeStep())
	}
}
