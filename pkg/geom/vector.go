package geom

import "math"

// Point is a location in drawing space. Z is carried through verbatim and
// never participates in any predicate in this package.
type Point struct {
	X, Y, Z float64
}

// Vec is a free 2D vector (no Z component — geometry predicates are
// strictly planar).
type Vec struct {
	X, Y float64
}

// Sub returns the vector from b to a.
func (a Point) Sub(b Point) Vec {
	return Vec{X: a.X - b.X, Y: a.Y - b.Y}
}

// Add translates a point by a vector.
func (a Point) Add(v Vec) Point {
	return Point{X: a.X + v.X, Y: a.Y + v.Y, Z: a.Z}
}

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Add sums two vectors.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Neg negates a vector.
func (v Vec) Neg() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dot returns the 2D dot product.
func Dot(a, b Vec) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the scalar (z-component) of the 2D cross product.
func Cross(a, b Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Normalize returns v scaled to unit length. Returns the zero vector if v
// is shorter than EpsMM.
func Normalize(v Vec) Vec {
	l := v.Len()
	if l < EpsMM {
		return Vec{}
	}
	return v.Scale(1 / l)
}

// Normal returns u rotated by +90°: perpendicular to u and of the same
// length, so a unit u gives a unit normal.
func Normal(u Vec) Vec {
	return Vec{X: -u.Y, Y: u.X}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2}
}

// Distance returns the Euclidean distance between two points, ignoring Z.
func Distance(a, b Point) float64 {
	return a.Sub(b).Len()
}

// PointToSegmentDistance returns the distance from p to the closest point
// on segment [a,b].
func PointToSegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen2 := Dot(ab, ab)
	if abLen2 < EpsMM*EpsMM {
		return Distance(p, a)
	}
	t := Dot(p.Sub(a), ab) / abLen2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return Distance(p, closest)
}

// PointToLineDistance returns the distance from p to the infinite line
// through a with direction dir. dir need not be normalized.
func PointToLineDistance(p, a Point, dir Vec) float64 {
	u := Normalize(dir)
	if u == (Vec{}) {
		return Distance(p, a)
	}
	w := p.Sub(a)
	// Perpendicular component via cross product magnitude.
	return math.Abs(Cross(w, u))
}

// LineIntersection computes the intersection of two infinite lines, the
// first through p1 with direction d1, the second through p2 with direction
// d2. Returns ok=false when |determinant| < DeterminantEps (parallel or
// near-parallel lines).
func LineIntersection(p1 Point, d1 Vec, p2 Point, d2 Vec) (pt Point, ok bool) {
	det := Cross(d1, d2)
	if math.Abs(det) < DeterminantEps {
		return Point{}, false
	}
	w := p2.Sub(p1)
	t := Cross(w, d2) / det
	return p1.Add(d1.Scale(t)), true
}

// ProjectOntoAxis returns the scalar projection of (p - origin) onto unit
// axis u.
func ProjectOntoAxis(p, origin Point, u Vec) float64 {
	return Dot(p.Sub(origin), u)
}

// Round rounds v to the nearest multiple of quantum.
func Round(v, quantum float64) float64 {
	if quantum <= 0 {
		return v
	}
	return math.Round(v/quantum) * quantum
}
