package game

import (
	"image/color"
	"strings"
	"testing"

	"github.com/Garsondee/Ghost-Hunt/internal/input"
	"github.com/Garsondee/Ghost-Hunt/internal/session"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

func TestFollow(t *testing.T) {
	cases := []struct {
		name  string
		focus world.Vec
		want  camera
	}{
		{"centred", world.Vec{X: 500, Y: 400}, camera{x: 300, y: 250}},
		{"clamped top-left", world.Vec{X: 10, Y: 10}, camera{x: 0, y: 0}},
		{"clamped bottom-right", world.Vec{X: 990, Y: 790}, camera{x: 600, y: 500}},
	}
	for _, tc := range cases {
		got := follow(tc.focus, 1000, 800, 400, 300)
		if got != tc.want {
			t.Fatalf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
	}
	small := follow(world.Vec{X: 50, Y: 50}, 200, 100, 400, 300)
	if small.x != -100 || small.y != -100 {
		t.Fatalf("small world should be centred, got %+v", small)
	}
}

func TestScaleAlpha(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if got := scaleAlpha(c, 1); got != c {
		t.Fatalf("full opacity changed colour: %+v", got)
	}
	if got := scaleAlpha(c, 0); got != (color.RGBA{}) {
		t.Fatalf("zero opacity should be transparent: %+v", got)
	}
	if got := scaleAlpha(c, 2); got != c {
		t.Fatalf("opacity should clamp to 1: %+v", got)
	}
}

func TestTail(t *testing.T) {
	entries := make([]session.Entry, 100)
	for i := range entries {
		entries[i].Tick = i
	}
	got := tail(entries, 24+10*panelLineHeight)
	if len(got) != 10 || got[0].Tick != 90 || got[9].Tick != 99 {
		t.Fatalf("tail kept %d entries starting at %d", len(got), got[0].Tick)
	}
	if tail(entries, 10) != nil {
		t.Fatal("panel too short for any line")
	}
	if len(tail(entries[:3], 600)) != 3 {
		t.Fatal("short log should be shown whole")
	}
}

func TestHUDLines(t *testing.T) {
	h := session.NewHarness()
	lines := hudLines(h.Session)
	if !strings.HasPrefix(lines[0], "Round 1/5") {
		t.Fatalf("lines=%q", lines)
	}
	if !strings.Contains(lines[1], h.Session.Rounds().Target()) {
		t.Fatalf("target missing: %q", lines[1])
	}
	h.Tick()
	if got := hudLines(h.Session); got[len(got)-1] != "In: Kitchen" {
		t.Fatalf("region line=%q", got[len(got)-1])
	}
}

func TestBanner(t *testing.T) {
	h := session.NewHarness()
	if title, _ := banner(h.Session); title != "" {
		t.Fatalf("unexpected banner %q at round start", title)
	}
	h.Session.SetPaused(true)
	if title, _ := banner(h.Session); title != "Paused" {
		t.Fatalf("paused banner=%q", title)
	}
	h.Session.SetPaused(false)
	h.RunFor(10.2)
	if title, _ := banner(h.Session); !strings.Contains(title, "Half") {
		t.Fatalf("halfway banner missing, got %q", title)
	}
	h.RunFor(15)
	title, sub := banner(h.Session)
	if title != "Round 1: failure" || len(sub) != 2 {
		t.Fatalf("round-end banner=%q %q", title, sub)
	}
	h.Press(input.KeyCancel)
	if title, _ := banner(h.Session); title != "Game over" {
		t.Fatalf("game-over banner=%q", title)
	}
}

func TestTargetLabel(t *testing.T) {
	if got := targetLabel("kitchen"); got != "Kitchen" {
		t.Fatalf("got %q", got)
	}
	if got := targetLabel(""); !strings.HasPrefix(got, "nothing") {
		t.Fatalf("got %q", got)
	}
}
