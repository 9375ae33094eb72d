package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Ghost-Hunt/internal/entity"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

var (
	floorCol   = color.RGBA{R: 34, G: 30, B: 38, A: 255}
	wallCol    = color.RGBA{R: 70, G: 62, B: 78, A: 255}
	wallLight  = color.RGBA{R: 110, G: 100, B: 120, A: 200}
	regionCol  = color.RGBA{R: 120, G: 110, B: 200, A: 120}
	targetCol  = color.RGBA{R: 230, G: 200, B: 90, A: 200}
	playerCol  = color.RGBA{R: 210, G: 180, B: 140, A: 255}
	signCol    = color.RGBA{R: 240, G: 220, B: 120, A: 255}
	damageCol  = color.RGBA{R: 220, G: 70, B: 60, A: 255}
	ghostCol   = color.RGBA{R: 200, G: 230, B: 255, A: 255}
	markerCol  = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	staminaCol = color.RGBA{R: 90, G: 200, B: 110, A: 255}
)

// camera maps world pixels to screen pixels.
type camera struct {
	x, y float64 // world position of the screen's top-left corner
}

// follow centres the view on focus, clamped so the view never leaves a
// world of size ww x wh. A world smaller than the view is centred instead.
func follow(focus world.Vec, ww, wh, vw, vh float64) camera {
	axis := func(f, worldLen, viewLen float64) float64 {
		if worldLen <= viewLen {
			return -(viewLen - worldLen) / 2
		}
		return max(0, min(worldLen-viewLen, f-viewLen/2))
	}
	return camera{x: axis(focus.X, ww, vw), y: axis(focus.Y, wh, vh)}
}

func (c camera) at(p world.Vec) (float32, float32) {
	return float32(p.X - c.x), float32(p.Y - c.y)
}

// scaleAlpha returns col with its alpha multiplied by a in [0, 1].
func scaleAlpha(col color.RGBA, a float64) color.RGBA {
	a = max(0, min(1, a))
	return color.RGBA{
		R: uint8(float64(col.R) * a),
		G: uint8(float64(col.G) * a),
		B: uint8(float64(col.B) * a),
		A: uint8(float64(col.A) * a),
	}
}

func drawGrid(screen *ebiten.Image, g *world.Grid, cam camera, vw, vh int) {
	if g == nil {
		screen.Fill(floorCol)
		return
	}
	const ts = world.TileSize
	c0, r0 := max(0, int(cam.x)/ts), max(0, int(cam.y)/ts)
	c1, r1 := min(g.Cols-1, (int(cam.x)+vw)/ts), min(g.Rows-1, (int(cam.y)+vh)/ts)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			x, y := cam.at(world.TileVec(float64(col), float64(row)))
			if !g.Blocked(col, row) {
				vector.FillRect(screen, x, y, ts, ts, floorCol, false)
				continue
			}
			vector.FillRect(screen, x, y, ts, ts, wallCol, false)
			vector.StrokeLine(screen, x, y, x+ts, y, 1, wallLight, false)
		}
	}
}

func drawRegions(screen *ebiten.Image, rs *world.RegionSet, target string, cam camera) {
	for _, name := range rs.Names() {
		r, err := rs.Region(name)
		if err != nil {
			continue
		}
		col := regionCol
		if name == target {
			col = targetCol
		}
		n := len(r.Points)
		for i := 0; i < n; i++ {
			x0, y0 := cam.at(r.World(i))
			x1, y1 := cam.at(r.World((i + 1) % n))
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, col, false)
		}
	}
}

// Actor sprites are placeholder shapes: a 32x64 body whose feet sit on the
// bottom of the hitbox.
func drawPlayer(screen *ebiten.Image, p *entity.Player, cam camera) {
	f := p.Frame()
	if !f.Visible {
		return
	}
	col := playerCol
	switch f.Sheet {
	case entity.SheetSign:
		col = signCol
	case entity.SheetDamage:
		col = damageCol
	}
	x, y := cam.at(p.Pos)
	top := y - entity.PlayerHeight/2
	vector.FillRect(screen, x+4, top+8, 24, entity.PlayerHeight-8, scaleAlpha(col, f.Opacity), false)
	vector.FillCircle(screen, x+16, top+8, 8, scaleAlpha(col, f.Opacity), true)

	// Facing tick.
	fx, fy := x+16, top+8
	switch p.Dir {
	case entity.Up:
		fy -= 10
	case entity.Down:
		fy += 10
	case entity.Left:
		fx -= 10
	case entity.Right:
		fx += 10
	}
	vector.StrokeLine(screen, x+16, top+8, fx, fy, 2, color.Black, false)

	// Stamina bar.
	frac := float32(p.Stamina / p.Tuning().MaxStamina)
	vector.FillRect(screen, x, top-6, 32, 3, color.RGBA{R: 30, G: 30, B: 30, A: 200}, false)
	vector.FillRect(screen, x, top-6, 32*frac, 3, staminaCol, false)
}

func drawMarker(screen *ebiten.Image, m *entity.Marker, cam camera) {
	if m == nil {
		return
	}
	f := m.Frame()
	if !f.Visible {
		return
	}
	x, y := cam.at(m.Pos)
	col := scaleAlpha(markerCol, f.Opacity)
	vector.StrokeLine(screen, x+16, y-8, x+16, y+24, 3, col, false)
	vector.FillRect(screen, x+4, y-16, 24, 12, col, false)
}

func drawGhost(screen *ebiten.Image, g *entity.Ghost, cam camera) {
	f := g.Frame()
	if !f.Visible {
		return
	}
	x, y := cam.at(g.Pos)
	col := scaleAlpha(ghostCol, f.Opacity)
	vector.FillCircle(screen, x+16, y+12, 12, col, true)
	vector.FillRect(screen, x+4, y+12, 24, 14, col, false)
	eye := scaleAlpha(color.RGBA{A: 255}, f.Opacity)
	vector.FillCircle(screen, x+11, y+10, 2, eye, true)
	vector.FillCircle(screen, x+21, y+10, 2, eye, true)
}
