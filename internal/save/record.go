// Package save persists and restores game progress: a flat snapshot record,
// capture from and restore into live objects, and pluggable byte stores.
package save

import (
	"reflect"
	"time"

	"github.com/Garsondee/Ghost-Hunt/internal/entity"
	"github.com/Garsondee/Ghost-Hunt/internal/round"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

// GameStateRoundEnd marks a snapshot taken on the round-end screen.
const GameStateRoundEnd = "round-end"

// Record is one snapshot. Pointer fields distinguish a value that was never
// written from a zero value; Restore leaves targets untouched for nil fields.
type Record struct {
	PlayerPosition        *world.Vec `json:"playerPosition,omitempty"`
	PlayerStamina         *float64   `json:"playerStamina,omitempty"`
	CurrentRound          *int       `json:"currentRound,omitempty"`
	NextRound             *int       `json:"nextRound"`
	TargetRegionName      *string    `json:"targetRegionName,omitempty"`
	HasMarkedThisRound    *bool      `json:"hasMarkedThisRound,omitempty"`
	GameStateName         *string    `json:"gameStateName"`
	CurrentScore          *int       `json:"currentScore,omitempty"`
	TimerBaseTime         *float64   `json:"timerBaseTime,omitempty"`
	TimerRemaining        *float64   `json:"timerRemaining,omitempty"`
	TimerRunning          *bool      `json:"timerRunning,omitempty"`
	HasCheckedMarker      *bool      `json:"hasCheckedMarker,omitempty"`
	HasHandledTimerExpiry *bool      `json:"hasHandledTimerExpiry,omitempty"`
	MarkerPosition        *world.Vec `json:"markerPosition"`
	MarkerOpacity         *float64   `json:"markerOpacity,omitempty"`
	SaveTimestamp         int64      `json:"saveTimestamp"` // unix milliseconds
}

// Equivalent reports whether r and o describe the same state, ignoring
// when they were taken.
func (r *Record) Equivalent(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	a, b := *r, *o
	a.SaveTimestamp, b.SaveTimestamp = 0, 0
	return reflect.DeepEqual(a, b)
}

// Flags is the orchestration state that travels with a snapshot.
type Flags struct {
	HasCheckedMarker      bool
	HasHandledTimerExpiry bool
	NextRound             *int   // set only on the round-end screen
	GameStateName         string // empty outside the round-end screen
}

// Capture builds a record from live objects.
func Capture(p *entity.Player, m *round.Manager, f Flags, now time.Time) Record {
	rec := Record{
		PlayerPosition:        ptr(p.Pos),
		PlayerStamina:         ptr(p.Stamina),
		CurrentRound:          ptr(m.Round()),
		HasMarkedThisRound:    ptr(m.Marked()),
		CurrentScore:          ptr(m.Score().Current()),
		TimerBaseTime:         ptr(m.Timer().Base()),
		TimerRemaining:        ptr(m.Timer().Remaining()),
		TimerRunning:          ptr(m.Timer().Running()),
		HasCheckedMarker:      ptr(f.HasCheckedMarker),
		HasHandledTimerExpiry: ptr(f.HasHandledTimerExpiry),
		MarkerOpacity:         ptr(0.0),
		SaveTimestamp:         now.UnixMilli(),
	}
	if t := m.Target(); t != "" {
		rec.TargetRegionName = ptr(t)
	}
	if f.NextRound != nil {
		rec.NextRound = ptr(*f.NextRound)
	}
	if f.GameStateName != "" {
		rec.GameStateName = ptr(f.GameStateName)
	}
	if p.Marker != nil {
		rec.MarkerPosition = ptr(p.Marker.Pos)
		rec.MarkerOpacity = ptr(p.Marker.Opacity)
	}
	return rec
}

// Targets are the live objects a record is restored into. Nil members are
// skipped.
type Targets struct {
	Player *entity.Player
	Round  *round.Manager
	Flags  *Flags
}

// Restore writes rec back into t. Missing fields leave their target alone.
// A nextRound value takes precedence over currentRound.
func Restore(rec *Record, t Targets) {
	if rec == nil {
		return
	}
	if p := t.Player; p != nil {
		if rec.PlayerPosition != nil {
			p.Pos = *rec.PlayerPosition
		}
		if rec.PlayerStamina != nil {
			p.SetStamina(*rec.PlayerStamina)
		}
		if rec.MarkerPosition != nil {
			m := &entity.Marker{Pos: *rec.MarkerPosition}
			if rec.MarkerOpacity != nil {
				m.Opacity = max(0, min(1, *rec.MarkerOpacity))
			}
			p.Marker = m
		}
	}
	if m := t.Round; m != nil {
		switch {
		case rec.NextRound != nil:
			m.SetRound(*rec.NextRound)
		case rec.CurrentRound != nil:
			m.SetRound(*rec.CurrentRound)
		}
		if rec.TargetRegionName != nil && *rec.TargetRegionName != "" {
			m.SetTarget(*rec.TargetRegionName)
		}
		if rec.HasMarkedThisRound != nil {
			m.SetMarked(*rec.HasMarkedThisRound)
		}
		if rec.CurrentScore != nil {
			m.Score().SetCurrent(*rec.CurrentScore)
		}
		tm := m.Timer()
		base, remaining, running := tm.Base(), tm.Remaining(), tm.Running()
		if rec.TimerBaseTime != nil {
			base = *rec.TimerBaseTime
		}
		if rec.TimerRemaining != nil {
			remaining = *rec.TimerRemaining
		}
		if rec.TimerRunning != nil {
			running = *rec.TimerRunning
		}
		tm.Set(base, remaining, running)
	}
	if f := t.Flags; f != nil {
		if rec.HasCheckedMarker != nil {
			f.HasCheckedMarker = *rec.HasCheckedMarker
		}
		if rec.HasHandledTimerExpiry != nil {
			f.HasHandledTimerExpiry = *rec.HasHandledTimerExpiry
		}
		if rec.NextRound != nil {
			f.NextRound = ptr(*rec.NextRound)
		}
		if rec.GameStateName != nil {
			f.GameStateName = *rec.GameStateName
		}
	}
}

// AtRoundEnd reports whether rec was taken on the round-end screen.
func (r *Record) AtRoundEnd() bool {
	return r != nil && r.GameStateName != nil && *r.GameStateName == GameStateRoundEnd
}

// ResumesAtRoundEnd reports whether rec was taken on the round-end screen
// with another round to play.
func (r *Record) ResumesAtRoundEnd() bool {
	return r.AtRoundEnd() && r.NextRound != nil
}

func ptr[T any](v T) *T { return &v }
