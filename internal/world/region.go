package world

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrUnknownRegion is matched by UnknownRegionError via errors.Is.
var ErrUnknownRegion = errors.New("world: unknown region")

// UnknownRegionError reports a query against a region name that was never loaded.
type UnknownRegionError struct {
	Name string
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("world: unknown region %q", e.Name)
}

func (e *UnknownRegionError) Is(target error) bool { return target == ErrUnknownRegion }

// Bounds is the axis-aligned box around a translated polygon.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
	Width, Height          float64
	CenterX, CenterY       float64
}

// Region is a named polygon. Points are relative to Offset.
type Region struct {
	Name   string
	Points []Vec
	Offset Vec
	Bounds Bounds
}

// World returns the i-th point translated by the region offset.
func (r *Region) World(i int) Vec { return r.Points[i].Add(r.Offset) }

func (r *Region) computeBounds() {
	b := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for i := range r.Points {
		p := r.World(i)
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	b.Width = b.MaxX - b.MinX
	b.Height = b.MaxY - b.MinY
	b.CenterX = (b.MinX + b.MaxX) / 2
	b.CenterY = (b.MinY + b.MaxY) / 2
	r.Bounds = b
}

// contains is the even-odd ray cast: a horizontal ray from p toggles parity
// at each edge (i, j) with (yi > py) != (yj > py) whose crossing lies right
// of p. The strict comparisons make the test half-open: on an axis-aligned
// box, points on the min-x and min-y edges are inside, max edges outside.
func (r *Region) contains(p Vec) bool {
	b := r.Bounds
	if p.X < b.MinX || p.X > b.MaxX || p.Y < b.MinY || p.Y > b.MaxY {
		return false
	}
	inside := false
	n := len(r.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := r.World(i), r.World(j)
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// RegionSet is the immutable, name-keyed collection of regions.
type RegionSet struct {
	order  []string
	byName map[string]*Region
}

// NewRegionSet validates names and derives bounds. Load order is kept and
// decides which region wins when regions overlap.
func NewRegionSet(regions []Region) (*RegionSet, error) {
	rs := &RegionSet{byName: make(map[string]*Region, len(regions))}
	for i := range regions {
		r := regions[i]
		if r.Name == "" {
			return nil, fmt.Errorf("region %d: empty name", i)
		}
		if _, dup := rs.byName[r.Name]; dup {
			return nil, fmt.Errorf("region %q: duplicate name", r.Name)
		}
		if len(r.Points) < 3 {
			return nil, fmt.Errorf("region %q: need at least 3 points, got %d", r.Name, len(r.Points))
		}
		r.Points = append([]Vec(nil), r.Points...)
		r.computeBounds()
		rs.byName[r.Name] = &r
		rs.order = append(rs.order, r.Name)
	}
	return rs, nil
}

// Len returns the number of regions.
func (rs *RegionSet) Len() int { return len(rs.order) }

// Names returns region names in load order.
func (rs *RegionSet) Names() []string {
	return append([]string(nil), rs.order...)
}

// Region returns the named region.
func (rs *RegionSet) Region(name string) (*Region, error) {
	r, ok := rs.byName[name]
	if !ok {
		return nil, &UnknownRegionError{Name: name}
	}
	return r, nil
}

// Contains reports whether p lies inside the named region.
func (rs *RegionSet) Contains(p Vec, name string) (bool, error) {
	r, err := rs.Region(name)
	if err != nil {
		return false, err
	}
	return r.contains(p), nil
}

// RegionAt returns the first region, in load order, containing p.
func (rs *RegionSet) RegionAt(p Vec) (string, bool) {
	for _, name := range rs.order {
		if rs.byName[name].contains(p) {
			return name, true
		}
	}
	return "", false
}

// Pick returns a uniformly random region name, skipping names in exclude.
// When exclusion would leave nothing the full set is used again. An empty
// set returns "".
func (rs *RegionSet) Pick(rng *rand.Rand, exclude ...string) string {
	if len(rs.order) == 0 {
		return ""
	}
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	pool := make([]string, 0, len(rs.order))
	for _, name := range rs.order {
		if !skip[name] {
			pool = append(pool, name)
		}
	}
	if len(pool) == 0 {
		pool = rs.order
	}
	return pool[rng.Intn(len(pool))]
}
