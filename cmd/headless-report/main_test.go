package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Ghost-Hunt/internal/session"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

func TestSummarize(t *testing.T) {
	entries := []session.Entry{
		{Tick: 1, Category: session.CatRound, Key: "start"},
		{Tick: 40, Category: session.CatRegion, Key: "enter", Value: "Hall"},
		{Tick: 50, Category: session.CatMarker, Key: "placed"},
		{Tick: 290, Category: session.CatRound, Key: "end", Value: "success", Num: 120},
		{Tick: 600, Category: session.CatRound, Key: "start"},
		{Tick: 1200, Category: session.CatWarning, Key: "halfway"},
		{Tick: 1500, Category: session.CatSave, Key: "auto"},
		{Tick: 1500, Category: session.CatSave, Key: "round-end"},
		{Tick: 1800, Category: session.CatRound, Key: "expired"},
		{Tick: 1900, Category: session.CatRegion, Key: "enter", Value: "Hall"},
	}
	rs := summarize(entries)
	if rs.rounds != 2 || rs.wins != 1 || rs.timeouts != 1 || rs.wrongMarks != 0 {
		t.Fatalf("rounds=%d wins=%d timeouts=%d wrong=%d", rs.rounds, rs.wins, rs.timeouts, rs.wrongMarks)
	}
	if rs.firstWinTick != 290 || rs.markers != 1 || rs.warnings != 1 || rs.autoSaves != 1 {
		t.Fatalf("stats=%+v", rs)
	}
	if rs.regionVisits["Hall"] != 2 {
		t.Fatalf("visits=%v", rs.regionVisits)
	}
}

func TestMedian(t *testing.T) {
	cases := []struct {
		in   []int
		want float64
	}{
		{nil, 0},
		{[]int{5}, 5},
		{[]int{1, 3}, 2},
		{[]int{1, 2, 9}, 2},
	}
	for _, tc := range cases {
		if got := median(tc.in); got != tc.want {
			t.Fatalf("median(%v)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestPlayRun_IdleLosesEveryRound(t *testing.T) {
	rs := playRun(1, 7, strategies["idle"])
	if rs.rounds != 5 || rs.timeouts != 5 || rs.wins != 0 || rs.finalScore != 0 {
		t.Fatalf("stats=%+v", rs)
	}
}

func TestPlayRun_SeekerWinsOnDemoRoom(t *testing.T) {
	rs := playRun(1, 3, strategies["seeker"])
	if rs.rounds != 5 || rs.wins != 5 {
		t.Fatalf("seeker on an open room should win every round: %+v", rs)
	}
	if rs.finalScore <= 0 {
		t.Fatalf("score=%d", rs.finalScore)
	}
}

func TestAggregateRuns(t *testing.T) {
	a := aggregateRuns([]runStats{
		{rounds: 5, wins: 2, finalScore: 300},
		{rounds: 5, wins: 5, finalScore: 900},
		{rounds: 5, wins: 0, finalScore: 0},
	})
	if a.rounds != 15 || a.wins != 7 || a.minScore != 0 || a.maxScore != 900 || a.median != 300 || a.meanScore != 400 {
		t.Fatalf("aggregate=%+v", a)
	}
}

func TestPlayRun_VerboseKeepsTickTrace(t *testing.T) {
	count := func(rs runStats) int {
		n := 0
		for _, e := range rs.log {
			if e.Category == session.CatTick {
				n++
			}
		}
		return n
	}
	quiet := playRun(1, 7, strategies["idle"])
	if n := count(quiet); n != 0 {
		t.Fatalf("quiet run kept %d tick entries", n)
	}
	loud := playRun(1, 7, strategies["idle"], session.WithVerbose(true))
	if n := count(loud); n < 5*20*60 {
		t.Fatalf("verbose run kept %d tick entries, want one per play tick", n)
	}
	if loud.rounds != quiet.rounds || loud.finalScore != quiet.finalScore {
		t.Fatalf("verbose changed the game: %+v vs %+v", loud, quiet)
	}
}

func TestConfigOptions_CarryHitboxAndDamageHold(t *testing.T) {
	mapPath, err := filepath.Abs(filepath.Join("..", "..", "assets", "map.json"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "map_path: " + mapPath + `
hitbox:
  offset_x: 6
  offset_y: 20
  width: 20
  height: 12
round:
  damage_hold: 2
save:
  autosave_interval: 3
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	opts, err := configOptions(path)
	if err != nil {
		t.Fatalf("configOptions: %v", err)
	}
	h := session.NewHarness(opts...)
	want := world.Hitbox{OffsetX: 6, OffsetY: 20, Width: 20, Height: 12}
	if got := h.Session.Hitbox(); got != want {
		t.Fatalf("hitbox=%+v want %+v", got, want)
	}
	if h.Session.DamageHold() != 2 {
		t.Fatalf("damage hold=%v want 2", h.Session.DamageHold())
	}
}
