package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/Garsondee/Ghost-Hunt/internal/config"
	"github.com/Garsondee/Ghost-Hunt/internal/input"
	"github.com/Garsondee/Ghost-Hunt/internal/round"
	"github.com/Garsondee/Ghost-Hunt/internal/session"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

type runStats struct {
	runIndex int
	seed     int64

	rounds     int
	wins       int
	timeouts   int
	wrongMarks int
	finalScore int

	firstWinTick int
	markers      int
	warnings     int
	autoSaves    int
	stateChanges int
	regionVisits map[string]int

	log []session.Entry
}

// strategy plays the Play phase of one round.
type strategy func(h *session.Harness, rng *rand.Rand)

var strategies = map[string]strategy{
	"seeker":   seek,
	"wanderer": wander,
	"idle":     func(*session.Harness, *rand.Rand) {},
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var strategyName string
	var configPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless games")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&strategyName, "strategy", "seeker", "player strategy: seeker, wanderer or idle")
	flag.StringVar(&configPath, "config", "", "YAML config whose map, spawn and tuning replace the demo room")
	flag.BoolVar(&verbose, "verbose", false, "print each run's full event log, including a per-tick player trace")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	strat, ok := strategies[strategyName]
	if !ok {
		fmt.Printf("error: unsupported strategy %q (supported: %s)\n", strategyName, strategyNames())
		return
	}
	var base []session.HarnessOption
	if configPath != "" {
		opts, err := configOptions(configPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		base = opts
	}
	if verbose {
		base = append(base, session.WithVerbose(true))
	}

	fmt.Printf("=== Headless Ghost Hunt Report ===\n")
	fmt.Printf("strategy=%s runs=%d seed_base=%d seed_step=%d\n\n", strategyName, runs, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := playRun(i+1, seed, strat, base...)
		all = append(all, rs)
		printRun(rs)
		if verbose {
			printLog(rs.log)
		}
	}
	printAggregate(all)
}

func strategyNames() string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func configOptions(path string) ([]session.HarnessOption, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	m, err := world.LoadTiledMapFile(cfg.MapPath)
	if err != nil {
		return nil, err
	}
	return []session.HarnessOption{
		session.WithMap(m, cfg.Spawn.Pos()),
		session.WithTuning(cfg.Player),
		session.WithDt(cfg.Dt()),
		session.WithRounds(func(o *round.Options) { *o = cfg.Round.Options }),
		session.WithHitbox(cfg.Hitbox),
		session.WithDamageHold(cfg.Round.DamageHold),
		session.WithAutoSaveInterval(cfg.Save.AutoSaveInterval),
	}, nil
}

// playRun plays one whole game and summarizes its event log.
func playRun(runIndex int, seed int64, strat strategy, opts ...session.HarnessOption) runStats {
	h := session.NewHarness(append(opts, session.WithSeed(seed))...)
	s := h.Session
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- reproducible runs

	// Each round ends within base time plus the damage hold.
	roundTicks := int((s.Rounds().Options().BaseTime+s.DamageHold()+5)/h.Dt) + 1
	for guard := 0; s.Phase() != session.PhaseGameOver && guard < s.Rounds().MaxRounds()+1; guard++ {
		strat(h, rng)
		h.Until(func() bool { return s.Phase() != session.PhasePlay }, roundTicks)
		if s.Phase() == session.PhaseRoundEnd {
			h.Press(input.KeyConfirm)
		}
	}

	rs := summarize(s.Events().Entries())
	rs.runIndex = runIndex
	rs.seed = seed
	rs.finalScore = s.Rounds().Score().Current()
	rs.log = s.Events().Entries()
	return rs
}

func printLog(entries []session.Entry) {
	for _, e := range entries {
		fmt.Println("  " + e.String())
	}
	fmt.Println()
}

// walkAndMark heads for dest until time runs short, then marks.
func walkAndMark(h *session.Harness, dest world.Vec) {
	t := h.Session.Rounds().Timer()
	h.WalkTo(dest, int(t.Remaining()/h.Dt))
	if h.Session.Phase() == session.PhasePlay {
		h.Press(input.KeyMark)
	}
}

func seek(h *session.Harness, _ *rand.Rand) {
	if dest, ok := h.TargetCenter(); ok {
		walkAndMark(h, dest)
	}
}

func wander(h *session.Harness, rng *rand.Rand) {
	rs := h.Session.Map().Regions
	names := rs.Names()
	if len(names) == 0 {
		return
	}
	r, err := rs.Region(names[rng.Intn(len(names))])
	if err != nil {
		return
	}
	walkAndMark(h, world.Vec{X: r.Bounds.CenterX, Y: r.Bounds.CenterY})
}

func summarize(entries []session.Entry) runStats {
	rs := runStats{firstWinTick: -1, regionVisits: map[string]int{}}
	for _, e := range entries {
		switch e.Category {
		case session.CatRound:
			switch e.Key {
			case "start":
				rs.rounds++
			case "expired":
				rs.timeouts++
			case "end":
				if e.Value == "success" {
					rs.wins++
					if rs.firstWinTick < 0 {
						rs.firstWinTick = e.Tick
					}
				} else {
					rs.wrongMarks++
				}
			}
		case session.CatMarker:
			rs.markers++
		case session.CatWarning:
			rs.warnings++
		case session.CatSave:
			if e.Key == "auto" {
				rs.autoSaves++
			}
		case session.CatState:
			if e.Key == "player" {
				rs.stateChanges++
			}
		case session.CatRegion:
			rs.regionVisits[e.Value]++
		}
	}
	return rs
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("rounds=%d wins=%d timeouts=%d wrong_marks=%d final_score=%d first_win_tick=%d\n",
		rs.rounds, rs.wins, rs.timeouts, rs.wrongMarks, rs.finalScore, rs.firstWinTick)
	fmt.Printf("event_totals: markers=%d warnings=%d auto_saves=%d state_changes=%d\n",
		rs.markers, rs.warnings, rs.autoSaves, rs.stateChanges)
	fmt.Printf("region_visits: %s\n\n", formatCounts(rs.regionVisits))
}

type aggregate struct {
	runs       int
	rounds     int
	wins       int
	timeouts   int
	wrongMarks int
	minScore   int
	maxScore   int
	meanScore  float64
	median     float64
}

func aggregateRuns(all []runStats) aggregate {
	a := aggregate{runs: len(all)}
	if len(all) == 0 {
		return a
	}
	scores := make([]int, 0, len(all))
	total := 0
	for _, rs := range all {
		a.rounds += rs.rounds
		a.wins += rs.wins
		a.timeouts += rs.timeouts
		a.wrongMarks += rs.wrongMarks
		scores = append(scores, rs.finalScore)
		total += rs.finalScore
	}
	sort.Ints(scores)
	a.minScore = scores[0]
	a.maxScore = scores[len(scores)-1]
	a.meanScore = float64(total) / float64(len(scores))
	a.median = median(scores)
	return a
}

// median of sorted values.
func median(sorted []int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

func printAggregate(all []runStats) {
	a := aggregateRuns(all)
	winRate := 0.0
	if a.rounds > 0 {
		winRate = float64(a.wins) / float64(a.rounds) * 100
	}
	fmt.Printf("=== Aggregate (%d runs) ===\n", a.runs)
	fmt.Printf("rounds=%d wins=%d (%.1f%%) timeouts=%d wrong_marks=%d\n",
		a.rounds, a.wins, winRate, a.timeouts, a.wrongMarks)
	fmt.Printf("score: min=%d median=%.1f mean=%.1f max=%d\n", a.minScore, a.median, a.meanScore, a.maxScore)
}

func formatCounts(m map[string]int) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}
