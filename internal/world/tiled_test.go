package world

import (
	"strings"
	"testing"
)

const sampleTiled = `{
  "width": 3, "height": 2, "tilewidth": 32,
  "layers": [
    {"name": "Bottom", "type": "tilelayer", "width": 3, "height": 2, "data": [5,5,5,5,5,5]},
    {"name": "Collison", "type": "tilelayer", "width": 3, "height": 2, "data": [0,2147483649,0,0,0,0]},
    {"name": "Rooms", "type": "objectgroup", "objects": [
      {"name": "Kitchen", "x": 0, "y": 0, "polygon": [{"x":0,"y":0},{"x":32,"y":0},{"x":32,"y":64},{"x":0,"y":64}]},
      {"name": "Spawn", "x": 64, "y": 0},
      {"name": "Pantry", "x": 64, "y": 0, "polygon": [{"x":0,"y":0},{"x":32,"y":0},{"x":32,"y":64},{"x":0,"y":64}]}
    ]}
  ]
}`

func TestLoadTiledMap(t *testing.T) {
	m, err := LoadTiledMap(strings.NewReader(sampleTiled))
	if err != nil {
		t.Fatalf("LoadTiledMap: %v", err)
	}
	if m.Grid == nil {
		t.Fatal("collision layer not loaded")
	}
	if !m.Grid.Blocked(1, 0) {
		t.Fatal("flipped gid 1 should block")
	}
	if m.Grid.Blocked(0, 0) {
		t.Fatal("gid 0 should be open")
	}
	if m.Regions.Len() != 2 {
		t.Fatalf("regions=%v, objects without polygons should be skipped", m.Regions.Names())
	}
	if name, ok := m.Regions.RegionAt(Vec{70, 10}); !ok || name != "Pantry" {
		t.Fatalf("RegionAt=%q ok=%v", name, ok)
	}
}

func TestLoadTiledMap_NoCollisionLayerIsAllowed(t *testing.T) {
	m, err := LoadTiledMap(strings.NewReader(`{"width":1,"height":1,"layers":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	if m.Grid != nil {
		t.Fatal("expected nil grid")
	}
	if m.Regions.Len() != 0 {
		t.Fatal("expected no regions")
	}
}

func TestLoadTiledMap_Errors(t *testing.T) {
	if _, err := LoadTiledMap(strings.NewReader(`{`)); err == nil {
		t.Fatal("expected JSON error")
	}
	if _, err := LoadTiledMap(strings.NewReader(`{"tilewidth":16,"layers":[]}`)); err == nil {
		t.Fatal("expected tile size error")
	}
	bad := `{"width":2,"height":2,"layers":[{"name":"Collision","type":"tilelayer","data":[0,0,0]}]}`
	if _, err := LoadTiledMap(strings.NewReader(bad)); err == nil {
		t.Fatal("expected short layer error")
	}
}
