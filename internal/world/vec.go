// Package world holds the static playfield: the collision grid, the movement
// resolver that walks entities through it, and the named regions rounds
// are scored against.
package world

import "math"

// TileSize is the edge length of one tile in world pixels.
const TileSize = 32

// Vec is a 2D point or displacement in world pixels.
type Vec struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Scale returns v*s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len returns the euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Tile returns the tile containing v. Tile coordinates are always derived,
// never stored.
func (v Vec) Tile() (col, row int) {
	return int(math.Floor(v.X / TileSize)), int(math.Floor(v.Y / TileSize))
}

// TileVec converts tile coordinates (possibly fractional) to world pixels.
func TileVec(col, row float64) Vec {
	return Vec{col * TileSize, row * TileSize}
}
