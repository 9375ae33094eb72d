// Package game is the ebiten front end: it feeds keyboard input to a
// session, plays its sounds and draws it.
package game

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Ghost-Hunt/internal/session"
	"github.com/Garsondee/Ghost-Hunt/internal/sound"
)

// statusTicks is how long an F-key status message stays on screen.
const statusTicks = 180

// Options configures a Game.
type Options struct {
	Width, Height int
	TickRate      int
	Mixer         *Mixer // nil runs silent
	Bindings      Bindings
	Logger        *log.Logger
}

// Game implements ebiten.Game around a Session.
type Game struct {
	sess  *session.Session
	kb    *Keyboard
	mixer *Mixer
	fonts fonts
	log   *log.Logger

	width, height int
	dt            float64

	status      string
	statusLeft  int
	showRegions bool
	showEvents  bool
}

// New wraps sess. The session should have been built with opts.Mixer as its
// sound player.
func New(sess *session.Session, opts Options) (*Game, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	f, err := loadFonts()
	if err != nil {
		return nil, err
	}
	ebiten.SetTPS(opts.TickRate)
	return &Game{
		sess:   sess,
		kb:     NewKeyboard(opts.Bindings),
		mixer:  opts.Mixer,
		fonts:  f,
		log:    opts.Logger,
		width:  opts.Width,
		height: opts.Height,
		dt:     1 / float64(opts.TickRate),
	}, nil
}

func (g *Game) Update() error {
	g.handleKeys()
	g.sess.Step(g.dt, g.kb)
	if g.mixer != nil {
		g.syncAmbient()
		g.mixer.Poll()
	}
	if g.statusLeft > 0 {
		g.statusLeft--
		if g.statusLeft == 0 {
			g.status = ""
		}
	}
	return nil
}

// handleKeys processes the debug and save keys (edge-triggered).
func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		g.showEvents = !g.showEvents
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		g.showRegions = !g.showRegions
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		if g.sess.SaveNow() {
			g.setStatus("Game saved")
		} else {
			g.setStatus("Nothing to save")
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF6):
		if g.sess.LoadSaved() {
			g.setStatus("Game loaded")
		} else {
			g.setStatus("No saved game")
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		g.copySnapshot()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.sess.SetPaused(!g.sess.Paused())
	}
}

func (g *Game) copySnapshot() {
	data, err := json.MarshalIndent(g.sess.Snapshot(), "", "  ")
	if err != nil {
		g.log.Printf("game: snapshot: %v", err)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		g.log.Printf("game: clipboard: %v", err)
		g.setStatus("Clipboard unavailable")
		return
	}
	g.setStatus(fmt.Sprintf("Snapshot copied (%d bytes)", len(data)))
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusLeft = statusTicks
}

// syncAmbient keeps the background loop running outside the game-over screen.
func (g *Game) syncAmbient() {
	want := g.sess.Phase() != session.PhaseGameOver
	if want != g.mixer.Playing(sound.Ambient) {
		if want {
			g.mixer.Play(sound.Ambient)
		} else {
			g.mixer.Stop(sound.Ambient)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 6, B: 10, A: 255})
	s := g.sess
	vw, vh := screen.Bounds().Dx(), screen.Bounds().Dy()

	var ww, wh float64
	if grid := s.Map().Grid; grid != nil {
		ww, wh = grid.PixelSize()
	} else {
		ww, wh = float64(vw), float64(vh)
	}
	cam := follow(s.Player().Pos, ww, wh, float64(vw), float64(vh))

	drawGrid(screen, s.Map().Grid, cam, vw, vh)
	if g.showRegions {
		drawRegions(screen, s.Map().Regions, s.Rounds().Target(), cam)
	}
	drawMarker(screen, s.Player().Marker, cam)
	drawPlayer(screen, s.Player(), cam)
	for _, gh := range s.Ghosts() {
		drawGhost(screen, gh, cam)
	}

	g.fonts.drawHUD(screen, s, g.status)
	if g.showEvents {
		drawEventPanel(screen, s.Events().Entries(), vw, vh)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Close releases audio and ends tracing for the session.
func (g *Game) Close() {
	g.sess.Close()
	if g.mixer != nil {
		g.mixer.Close()
	}
}
