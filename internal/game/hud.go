package game

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Garsondee/Ghost-Hunt/internal/session"
)

const (
	hudSize     = 18
	titleSize   = 36
	hudLineGap  = 24
	hudPad      = 10
	warningShow = 2.0 // seconds the halfway banner stays up
)

// fonts holds the HUD faces built from the embedded Go fonts.
type fonts struct {
	body  *text.GoTextFace
	title *text.GoTextFace
}

func loadFonts() (fonts, error) {
	reg, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fonts{}, fmt.Errorf("hud font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return fonts{}, fmt.Errorf("hud font: %w", err)
	}
	return fonts{
		body:  &text.GoTextFace{Source: reg, Size: hudSize},
		title: &text.GoTextFace{Source: bold, Size: titleSize},
	}, nil
}

// hudLines is the play-phase status block.
func hudLines(s *session.Session) []string {
	r := s.Rounds()
	lines := []string{
		fmt.Sprintf("Round %d/%d   Score %d   Best %d", r.Round(), r.MaxRounds(), r.Score().Current(), r.Score().High()),
		fmt.Sprintf("Find the %s", targetLabel(r.Target())),
		fmt.Sprintf("Time %4.1f", r.Timer().Remaining()),
	}
	if at := s.CurrentRegion(); at != "" {
		lines = append(lines, "In: "+at)
	}
	return lines
}

// banner returns the centred message for the current phase, if any.
func banner(s *session.Session) (title string, sub []string) {
	r := s.Rounds()
	switch s.Phase() {
	case session.PhaseRoundEnd:
		title = fmt.Sprintf("Round %d: %s", r.Round(), r.Outcome())
		sub = []string{fmt.Sprintf("Score %d", r.Score().Current())}
		if r.IsGameOver() {
			sub = append(sub, "Enter: final score")
		} else {
			sub = append(sub, "Enter: next round   Esc: give up")
		}
	case session.PhaseGameOver:
		title = "Game over"
		sub = []string{
			fmt.Sprintf("Final score %d   Best %d", r.Score().Current(), r.Score().High()),
			"Enter: new game",
		}
	case session.PhasePlay:
		if s.Paused() {
			return "Paused", []string{"P: resume"}
		}
		t := r.Timer()
		half := t.Base() / 2
		if !s.InDamage() && t.Remaining() <= half && t.Remaining() > half-warningShow {
			title = "Half your time is gone!"
		}
	}
	return title, sub
}

func targetLabel(name string) string {
	if name == "" {
		return "nothing (no rooms on this map)"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func (f fonts) drawText(screen *ebiten.Image, face *text.GoTextFace, str string, x, y float64, clr color.Color, centred bool) {
	op := &text.DrawOptions{}
	if centred {
		w, _ := text.Measure(str, face, 0)
		x -= w / 2
	}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

func (f fonts) drawHUD(screen *ebiten.Image, s *session.Session, status string) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if s.Phase() == session.PhasePlay {
		lines := hudLines(s)
		boxH := float32(len(lines)*hudLineGap + hudPad*2)
		vector.FillRect(screen, 6, 6, 320, boxH, color.RGBA{R: 6, G: 6, B: 12, A: 190}, false)
		vector.StrokeRect(screen, 6, 6, 320, boxH, 1, color.RGBA{R: 80, G: 80, B: 130, A: 180}, false)
		for i, l := range lines {
			f.drawText(screen, f.body, l, 6+hudPad, float64(6+hudPad+i*hudLineGap), color.White, false)
		}
	}

	title, sub := banner(s)
	if title != "" {
		cy := float64(h) / 3
		if len(sub) > 0 {
			vector.FillRect(screen, 0, float32(cy)-10, float32(w), float32(titleSize+len(sub)*hudLineGap+30),
				color.RGBA{A: 200}, false)
		}
		f.drawText(screen, f.title, title, float64(w)/2, cy, targetCol, true)
		for i, l := range sub {
			f.drawText(screen, f.body, l, float64(w)/2, cy+titleSize+10+float64(i*hudLineGap), color.White, true)
		}
	}

	if status != "" {
		f.drawText(screen, f.body, status, 16, float64(h-hudLineGap-6), color.RGBA{R: 180, G: 220, B: 180, A: 255}, false)
	}
}
