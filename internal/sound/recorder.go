package sound

// Call is one recorded Play or Stop.
type Call struct {
	Op   string // "play" or "stop"
	Name string
}

// Recorder remembers every call and which cues are playing. It is used by
// tests and by the headless harness.
type Recorder struct {
	Calls   []Call
	playing map[string]bool
	ended   map[string][]func()
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{playing: map[string]bool{}, ended: map[string][]func(){}}
}

func (r *Recorder) Play(name string) {
	r.Calls = append(r.Calls, Call{"play", name})
	r.playing[name] = true
}

func (r *Recorder) Stop(name string) {
	r.Calls = append(r.Calls, Call{"stop", name})
	r.playing[name] = false
}

// OnEnded queues fn until Finish(name) is called.
func (r *Recorder) OnEnded(name string, fn func()) {
	r.ended[name] = append(r.ended[name], fn)
}

// Finish marks name as no longer playing and fires its pending callbacks once.
func (r *Recorder) Finish(name string) {
	r.playing[name] = false
	fns := r.ended[name]
	delete(r.ended, name)
	for _, fn := range fns {
		fn()
	}
}

// Playing reports whether name was played and not stopped since.
func (r *Recorder) Playing(name string) bool { return r.playing[name] }

// Count returns how many times op was called for name.
func (r *Recorder) Count(op, name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op && c.Name == name {
			n++
		}
	}
	return n
}
