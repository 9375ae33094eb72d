package world

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Layer names looked up in Tiled maps. The collision layer is also accepted
// under its historical misspelling.
const (
	CollisionLayer    = "Collision"
	collisionLayerAlt = "Collison"
	RoomsLayer        = "Rooms"
)

// Map is everything the simulation needs from a Tiled map file.
type Map struct {
	Grid    *Grid // nil when the map has no collision layer
	Regions *RegionSet
}

type tiledMap struct {
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	TileWidth int          `json:"tilewidth"`
	Layers    []tiledLayer `json:"layers"`
}

type tiledLayer struct {
	Name    string        `json:"name"`
	Type    string        `json:"type"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Data    []uint32      `json:"data"`
	Objects []tiledObject `json:"objects"`
}

type tiledObject struct {
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Polygon []Vec   `json:"polygon"`
}

// LoadTiledMap parses a Tiled JSON map.
func LoadTiledMap(r io.Reader) (*Map, error) {
	var tm tiledMap
	if err := json.NewDecoder(r).Decode(&tm); err != nil {
		return nil, fmt.Errorf("tiled map: %w", err)
	}
	if tm.TileWidth != 0 && tm.TileWidth != TileSize {
		return nil, fmt.Errorf("tiled map: tile width %d, want %d", tm.TileWidth, TileSize)
	}

	out := &Map{}
	var regions []Region
	for _, l := range tm.Layers {
		switch {
		case l.Type == "tilelayer" && (l.Name == CollisionLayer || l.Name == collisionLayerAlt):
			w, h := l.Width, l.Height
			if w == 0 {
				w, h = tm.Width, tm.Height
			}
			g, err := NewGrid(w, h, l.Data)
			if err != nil {
				return nil, fmt.Errorf("tiled map layer %q: %w", l.Name, err)
			}
			out.Grid = g
		case l.Type == "objectgroup" && l.Name == RoomsLayer:
			for _, o := range l.Objects {
				if len(o.Polygon) == 0 {
					continue
				}
				regions = append(regions, Region{
					Name:   o.Name,
					Points: o.Polygon,
					Offset: Vec{o.X, o.Y},
				})
			}
		}
	}

	rs, err := NewRegionSet(regions)
	if err != nil {
		return nil, fmt.Errorf("tiled map: %w", err)
	}
	out.Regions = rs
	return out, nil
}

// LoadTiledMapFile opens and parses path.
func LoadTiledMapFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTiledMap(f)
}
