package input

// Scripted is a Source driven by code: tests and the headless harness set
// the held keys for each tick and Scripted derives the edge-triggered
// presses from the previous tick, the same way a keyboard poller does.
type Scripted struct {
	held     [keyCount]bool
	prevHeld [keyCount]bool
}

// NewScripted returns a Scripted source with nothing held.
func NewScripted() *Scripted { return &Scripted{} }

// Set replaces the held set for the coming tick.
func (s *Scripted) Set(keys ...Key) {
	s.prevHeld = s.held
	s.held = [keyCount]bool{}
	for _, k := range keys {
		if k < keyCount {
			s.held[k] = true
		}
	}
}

// Release clears every held key for the coming tick.
func (s *Scripted) Release() { s.Set() }

func (s *Scripted) Held(k Key) bool {
	return k < keyCount && s.held[k]
}

func (s *Scripted) Pressed(k Key) bool {
	return k < keyCount && s.held[k] && !s.prevHeld[k]
}
