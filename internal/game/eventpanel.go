package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Ghost-Hunt/internal/session"
)

const (
	panelWidth      = 360
	panelLineHeight = 14
	panelRecent     = 3 // newest entries get a highlighted row
)

// categoryColors tints the dot in front of each event line.
var categoryColors = map[string]color.RGBA{
	session.CatRound:   {R: 230, G: 200, B: 90, A: 255},
	session.CatState:   {R: 120, G: 170, B: 230, A: 255},
	session.CatSave:    {R: 110, G: 200, B: 120, A: 255},
	session.CatWarning: {R: 230, G: 90, B: 70, A: 255},
	session.CatRegion:  {R: 180, G: 130, B: 220, A: 255},
	session.CatMarker:  {R: 240, G: 240, B: 240, A: 255},
}

// tail returns the newest entries that fit in a panel of height h, oldest first.
func tail(entries []session.Entry, h int) []session.Entry {
	maxVisible := (h - 24) / panelLineHeight
	if maxVisible <= 0 {
		return nil
	}
	if len(entries) > maxVisible {
		return entries[len(entries)-maxVisible:]
	}
	return entries
}

// drawEventPanel renders the session event log down the right-hand edge.
func drawEventPanel(screen *ebiten.Image, entries []session.Entry, w, h int) {
	x := float32(w - panelWidth)
	vector.FillRect(screen, x, 0, panelWidth, float32(h), color.RGBA{R: 8, G: 8, B: 14, A: 230}, false)
	vector.StrokeLine(screen, x, 0, x, float32(h), 1, color.RGBA{R: 60, G: 60, B: 90, A: 255}, false)
	vector.FillRect(screen, x, 0, panelWidth, 16, color.RGBA{R: 20, G: 20, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", int(x)+8, 0)

	visible := tail(entries, h)
	y := 20
	for i, e := range visible {
		if i >= len(visible)-panelRecent {
			vector.FillRect(screen, x+2, float32(y), panelWidth-4, panelLineHeight, color.RGBA{R: 30, G: 30, B: 50, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 150, G: 150, B: 150, A: 255}
		}
		vector.FillRect(screen, x+5, float32(y+4), 3, 5, dot, false)
		ebitenutil.DebugPrintAt(screen, e.String(), int(x)+12, y-2)
		y += panelLineHeight
	}
}
