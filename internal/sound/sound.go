// Package sound is the fire-and-forget audio contract used by entity states.
// Playback itself lives in the front end.
package sound

// Cue names played by the simulation.
const (
	Sign      = "sign"
	Breathing = "breathing"
	Laugh     = "laugh"
	Warning   = "warning"
	Success   = "success"
	Failure   = "failure"
	Ambient   = "ambient"
)

// Player starts and stops named cues. Implementations never block.
type Player interface {
	Play(name string)
	Stop(name string)
}

// EndedNotifier delivers a one-shot callback when a cue finishes playing.
type EndedNotifier interface {
	OnEnded(name string, fn func())
}

// Nop discards every call.
type Nop struct{}

func (Nop) Play(string)            {}
func (Nop) Stop(string)            {}
func (Nop) OnEnded(string, func()) {}
