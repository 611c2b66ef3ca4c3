package geom

// Polygon is an ordered, closed, convex ring of points. Every polygon the
// pipeline constructs comes from four ordered band-quad corners (see
// OrderCorners), so these helpers assume convexity rather than handling
// the general case.
type Polygon []Point

// Centroid returns the arithmetic mean of the polygon's vertices. For the
// near-rectangular quads this package deals with that is a close enough
// approximation of the area centroid to drive inward/outward offset tests.
func (p Polygon) Centroid() Point {
	c := Point{}
	n := float64(len(p))
	for _, v := range p {
		c.X += v.X / n
		c.Y += v.Y / n
	}
	return c
}

// Area returns the polygon's unsigned area via the shoelace formula.
func (p Polygon) Area() float64 {
	n := len(p)
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// AABB returns the polygon's bounding box.
func (p Polygon) AABB() AABB {
	return AABBFromPoints(p...)
}

// Offset grows (dist > 0) or shrinks (dist < 0) a convex polygon by moving
// every edge along its outward normal and re-intersecting consecutive
// offset edges. A negative dist implements the "interior shrink" of ε used
// by Stage C; a positive dist implements the containment buffer of Stage D.
func (p Polygon) Offset(dist float64) Polygon {
	n := len(p)
	if n < 3 {
		return p
	}
	centroid := p.Centroid()

	type edgeLine struct {
		P Point
		D Vec
	}
	lines := make([]edgeLine, n)
	for i := 0; i < n; i++ {
		a, b := p[i], p[(i+1)%n]
		dir := Normalize(b.Sub(a))
		if dir == (Vec{}) {
			dir = Vec{X: 1}
		}
		outward := Normal(dir)
		mid := Midpoint(a, b)
		if Dot(outward, centroid.Sub(mid)) > 0 {
			outward = outward.Neg()
		}
		lines[i] = edgeLine{P: a.Add(outward.Scale(dist)), D: dir}
	}

	out := make(Polygon, n)
	for i := 0; i < n; i++ {
		prev := lines[(i-1+n)%n]
		cur := lines[i]
		pt, ok := LineIntersection(prev.P, prev.D, cur.P, cur.D)
		if !ok {
			pt = p[i]
		}
		out[i] = pt
	}
	return out
}

// ContainsPoint reports whether p lies inside (or on the boundary of) a
// convex polygon, using a consistent half-plane test per edge.
func (poly Polygon) ContainsPoint(p Point, tol float64) bool {
	n := len(poly)
	centroid := poly.Centroid()
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		dir := Normalize(b.Sub(a))
		if dir == (Vec{}) {
			continue
		}
		normal := Normal(dir)
		mid := Midpoint(a, b)
		if Dot(normal, centroid.Sub(mid)) < 0 {
			normal = normal.Neg()
		}
		if Dot(normal, p.Sub(a)) < -tol {
			return false
		}
	}
	return true
}

// Covers reports whether poly (already buffered by the caller) contains
// every vertex of other. Convexity makes vertex containment sufficient for
// full coverage of another convex polygon.
func (poly Polygon) Covers(other Polygon, tol float64) bool {
	for _, v := range other {
		if !poly.ContainsPoint(v, tol) {
			return false
		}
	}
	return true
}

// ClipSegment intersects a segment against a convex polygon using the
// Cyrus–Beck algorithm, returning the surviving parameter sub-interval
// [t0,t1] of seg (0 at P1, 1 at P2). ok is false when the segment misses
// the polygon entirely.
func (poly Polygon) ClipSegment(seg Segment) (t0, t1 float64, ok bool) {
	n := len(poly)
	centroid := poly.Centroid()
	t0, t1 = 0, 1

	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		edgeDir := Normalize(b.Sub(a))
		if edgeDir == (Vec{}) {
			continue
		}
		normal := Normal(edgeDir)
		mid := Midpoint(a, b)
		if Dot(normal, centroid.Sub(mid)) < 0 {
			normal = normal.Neg()
		}

		f0 := Dot(normal, seg.P1.Sub(a))
		f1 := Dot(normal, seg.P2.Sub(a))

		switch {
		case f0 < 0 && f1 < 0:
			return 0, 0, false
		case f0 >= 0 && f1 >= 0:
			continue
		default:
			tStar := f0 / (f0 - f1)
			if f0 < 0 {
				if tStar > t0 {
					t0 = tStar
				}
			} else {
				if tStar < t1 {
					t1 = tStar
				}
			}
		}
	}
	if t0 > t1 {
		return 0, 0, false
	}
	return t0, t1, true
}

// IntersectionLength returns the length of seg's intersection with the
// convex polygon, or 0 if they don't overlap.
func (poly Polygon) IntersectionLength(seg Segment) float64 {
	t0, t1, ok := poly.ClipSegment(seg)
	if !ok {
		return 0
	}
	return (t1 - t0) * seg.Length()
}
