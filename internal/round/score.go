package round

import "math"

// Points is the award for finishing a round with timeRemaining seconds left.
func Points(timeRemaining float64) int {
	if timeRemaining <= 0 {
		return 0
	}
	return int(math.Floor(timeRemaining * 10))
}

// Score tracks the running total and the best total seen.
type Score struct {
	current int
	high    int
}

// Add adds points to the current total. The total never drops below zero.
func (s *Score) Add(points int) { s.current = max(0, s.current+points) }

func (s *Score) Current() int { return s.current }
func (s *Score) High() int    { return s.high }

func (s *Score) SetCurrent(v int) { s.current = max(0, v) }
func (s *Score) SetHigh(v int)    { s.high = max(0, v) }

// Commit raises the high score to the current total if it was beaten and
// reports whether it changed.
func (s *Score) Commit() bool {
	if s.current <= s.high {
		return false
	}
	s.high = s.current
	return true
}

// Reset clears the current total. The high score is kept.
func (s *Score) Reset() { s.current = 0 }
