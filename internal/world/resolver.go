package world

import "math"

// Hitbox is the collision rectangle relative to an entity's position. It is
// smaller than the sprite so entities can slide along walls.
type Hitbox struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

// DefaultHitbox fits a 32x64 character sprite: the lower-middle band of the body.
var DefaultHitbox = Hitbox{OffsetX: 4, OffsetY: 16, Width: 24, Height: 16}

// Resolver moves positions through a Grid one axis at a time.
//
// Collision is tested at the destination only, not swept. That is exact as
// long as a single tick's displacement stays below MaxSafeStep; callers bound
// speed and tick rate together (see config.Validate).
type Resolver struct {
	Grid   *Grid // nil: nothing collides
	Hitbox Hitbox
}

// NewResolver returns a resolver over g with the default hitbox.
func NewResolver(g *Grid) *Resolver {
	return &Resolver{Grid: g, Hitbox: DefaultHitbox}
}

// Resolve applies vel*dt to pos. X is tried first, then Y from wherever X
// ended up; an axis that would collide keeps its old coordinate.
func (r *Resolver) Resolve(pos, vel Vec, dt float64) Vec {
	out := pos
	if moveX := vel.X * dt; moveX != 0 {
		if !r.Collides(out.X+moveX, out.Y) {
			out.X += moveX
		}
	}
	if moveY := vel.Y * dt; moveY != 0 {
		if !r.Collides(out.X, out.Y+moveY) {
			out.Y += moveY
		}
	}
	return out
}

// Collides reports whether the hitbox anchored at (x, y) overlaps a blocked
// or out-of-bounds tile.
func (r *Resolver) Collides(x, y float64) bool {
	if r.Grid == nil {
		return false
	}
	hb := r.Hitbox
	left, top := Vec{x + hb.OffsetX, y + hb.OffsetY}.Tile()
	right, bottom := Vec{x + hb.OffsetX + hb.Width - 1, y + hb.OffsetY + hb.Height - 1}.Tile()

	return r.Grid.Blocked(left, top) ||
		r.Grid.Blocked(right, top) ||
		r.Grid.Blocked(left, bottom) ||
		r.Grid.Blocked(right, bottom)
}

// MaxSafeStep is the largest per-tick displacement that cannot skip over a
// one-tile wall.
func (r *Resolver) MaxSafeStep() float64 {
	return math.Min(r.Hitbox.Width, r.Hitbox.Height)
}

// NormalizeDiagonal rescales v to length speed when it moves on both axes,
// so diagonal movement is no faster than straight movement.
func NormalizeDiagonal(v Vec, speed float64) Vec {
	if v.X == 0 || v.Y == 0 {
		return v
	}
	l := v.Len()
	return Vec{v.X / l * speed, v.Y / l * speed}
}
