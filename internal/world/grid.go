package world

import "fmt"

// Tiled stores flip/rotation flags in the top bits of every gid.
const (
	FlagFlippedHorizontally uint32 = 0x80000000
	FlagFlippedVertically   uint32 = 0x40000000
	FlagFlippedDiagonally   uint32 = 0x20000000

	gidMask uint32 = 0x1fffffff
)

// TileID strips the flip flags from a raw gid.
func TileID(raw uint32) uint32 { return raw & gidMask }

// Grid is the collision layer: gid 0 is open floor, anything else blocks.
// It is immutable once built and safe to share between entities.
type Grid struct {
	Cols  int
	Rows  int
	tiles []uint32 // row-major: index = row*Cols + col
}

// NewGrid builds a grid from raw row-major gids.
func NewGrid(cols, rows int, raw []uint32) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("grid: invalid size %dx%d", cols, rows)
	}
	if len(raw) != cols*rows {
		return nil, fmt.Errorf("grid: %d tiles for %dx%d map", len(raw), cols, rows)
	}
	tiles := make([]uint32, len(raw))
	for i, gid := range raw {
		tiles[i] = TileID(gid)
	}
	return &Grid{Cols: cols, Rows: rows, tiles: tiles}, nil
}

// inBounds returns true if (col, row) is within the grid.
func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// Tile returns the masked gid at (col, row); ok is false out of bounds.
func (g *Grid) Tile(col, row int) (id uint32, ok bool) {
	if !g.inBounds(col, row) {
		return 0, false
	}
	return g.tiles[row*g.Cols+col], true
}

// Blocked reports whether (col, row) stops movement. Anything outside the
// grid is blocked.
func (g *Grid) Blocked(col, row int) bool {
	if !g.inBounds(col, row) {
		return true
	}
	return g.tiles[row*g.Cols+col] != 0
}

// PixelSize returns the grid extent in world pixels.
func (g *Grid) PixelSize() (w, h float64) {
	return float64(g.Cols * TileSize), float64(g.Rows * TileSize)
}
