package geom

import (
	"math"
	"sort"
)

// AABB is an axis-aligned bounding box in drawing units.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

// AABBFromPoints returns the bounding box of a set of points. Panics if pts
// is empty; callers always pass the fixed-size corner sets the pipeline
// produces.
func AABBFromPoints(pts ...Point) AABB {
	b := AABB{MinX: pts[0].X, MaxX: pts[0].X, MinY: pts[0].Y, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}

// Width returns the AABB's x-extent.
func (b AABB) Width() float64 { return b.MaxX - b.MinX }

// Height returns the AABB's y-extent.
func (b AABB) Height() float64 { return b.MaxY - b.MinY }

// Area returns the AABB's area.
func (b AABB) Area() float64 { return b.Width() * b.Height() }

// Center returns the AABB's centroid.
func (b AABB) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Union returns the smallest AABB covering both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// DistanceToPoint returns the distance from p to the nearest point of b,
// or 0 if p is inside b.
func (b AABB) DistanceToPoint(p Point) float64 {
	dx := 0.0
	if p.X < b.MinX {
		dx = b.MinX - p.X
	} else if p.X > b.MaxX {
		dx = p.X - b.MaxX
	}
	dy := 0.0
	if p.Y < b.MinY {
		dy = b.MinY - p.Y
	} else if p.Y > b.MaxY {
		dy = p.Y - b.MaxY
	}
	return math.Hypot(dx, dy)
}

// Expand returns b grown by d on every side.
func (b AABB) Expand(d float64) AABB {
	return AABB{MinX: b.MinX - d, MinY: b.MinY - d, MaxX: b.MaxX + d, MaxY: b.MaxY + d}
}

// Intersects reports whether b and o overlap (edge-touching counts as
// overlap, matching the commutative AABB-overlap predicate spec.md §8
// requires for door assignment).
func (b AABB) Intersects(o AABB) bool {
	if b.MaxX < o.MinX || o.MaxX < b.MinX {
		return false
	}
	if b.MaxY < o.MinY || o.MaxY < b.MinY {
		return false
	}
	return true
}

// Covers reports whether b fully contains o, after inflating b by tol on
// every side. Used by Stage D's buffered containment test.
func (b AABB) Covers(o AABB, tol float64) bool {
	g := b.Expand(tol)
	return g.MinX <= o.MinX && g.MinY <= o.MinY && g.MaxX >= o.MaxX && g.MaxY >= o.MaxY
}

// OrderCorners sorts four points by angle around their centroid, producing
// a consistent winding order for polygon construction.
func OrderCorners(pts [4]Point) [4]Point {
	c := Point{}
	for _, p := range pts {
		c.X += p.X / 4
		c.Y += p.Y / 4
	}
	ordered := pts[:]
	sort.Slice(ordered, func(i, j int) bool {
		return angleFrom(c, ordered[i]) < angleFrom(c, ordered[j])
	})
	var out [4]Point
	copy(out[:], ordered)
	return out
}

func angleFrom(c, p Point) float64 {
	return math.Atan2(p.Y-c.Y, p.X-c.X)
}
