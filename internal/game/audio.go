package game

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/Garsondee/Ghost-Hunt/internal/sound"
)

// SampleRate is the audio context rate. Clips are resampled to it on load.
const SampleRate = 44100

// looped cues restart when they run out until they are stopped.
var looped = map[string]bool{
	sound.Breathing: true,
	sound.Laugh:     true,
	sound.Ambient:   true,
}

// voice is the part of *audio.Player the mixer drives.
type voice interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	Close() error
}

// Mixer plays named cues from <dir>/<name>.wav. A cue whose file is missing
// or unreadable is logged once and then ignored. All methods must be called
// from the game goroutine.
type Mixer struct {
	load     func(name string) ([]byte, error)
	newVoice func(pcm []byte) voice
	log      *log.Logger

	clips   map[string][]byte
	broken  map[string]bool
	playing map[string]voice
	ended   map[string][]func()
}

// NewMixer plays through ctx.
func NewMixer(ctx *audio.Context, dir string, logger *log.Logger) *Mixer {
	return newMixer(
		func(name string) ([]byte, error) { return decodeWAV(filepath.Join(dir, name+".wav")) },
		func(pcm []byte) voice { return ctx.NewPlayerFromBytes(pcm) },
		logger,
	)
}

func newMixer(load func(string) ([]byte, error), newVoice func([]byte) voice, logger *log.Logger) *Mixer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Mixer{
		load:     load,
		newVoice: newVoice,
		log:      logger,
		clips:    map[string][]byte{},
		broken:   map[string]bool{},
		playing:  map[string]voice{},
		ended:    map[string][]func(){},
	}
}

func decodeWAV(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(s)
}

func (m *Mixer) clip(name string) ([]byte, bool) {
	if pcm, ok := m.clips[name]; ok {
		return pcm, true
	}
	if m.broken[name] {
		return nil, false
	}
	pcm, err := m.load(name)
	if err != nil {
		m.broken[name] = true
		m.log.Printf("audio: cue %q disabled: %v", name, err)
		return nil, false
	}
	m.clips[name] = pcm
	return pcm, true
}

// Play starts name from the beginning, replacing any instance still playing.
func (m *Mixer) Play(name string) {
	pcm, ok := m.clip(name)
	if !ok {
		return
	}
	if v, ok := m.playing[name]; ok {
		_ = v.Close()
	}
	v := m.newVoice(pcm)
	v.Play()
	m.playing[name] = v
}

// Stop silences name. Pending OnEnded callbacks are kept for the next run.
func (m *Mixer) Stop(name string) {
	v, ok := m.playing[name]
	if !ok {
		return
	}
	v.Pause()
	_ = v.Close()
	delete(m.playing, name)
}

// OnEnded queues fn to run once when name next finishes on its own.
func (m *Mixer) OnEnded(name string, fn func()) {
	m.ended[name] = append(m.ended[name], fn)
}

// Playing reports whether name is currently sounding.
func (m *Mixer) Playing(name string) bool {
	_, ok := m.playing[name]
	return ok
}

// Poll restarts looped cues and fires callbacks for cues that finished.
// Call it once per tick.
func (m *Mixer) Poll() {
	for name, v := range m.playing {
		if v.IsPlaying() {
			continue
		}
		if looped[name] {
			if err := v.Rewind(); err == nil {
				v.Play()
				continue
			}
		}
		_ = v.Close()
		delete(m.playing, name)
		fns := m.ended[name]
		delete(m.ended, name)
		for _, fn := range fns {
			fn()
		}
	}
}

// Close releases every voice.
func (m *Mixer) Close() {
	for name, v := range m.playing {
		_ = v.Close()
		delete(m.playing, name)
	}
}
