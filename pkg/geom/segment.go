package geom

// Segment is a finite line segment with a stable, content-derived
// identifier. Length below EpsMM is degenerate.
type Segment struct {
	P1, P2 Point
	ID     string
}

// Direction returns the (unnormalized) vector from P1 to P2.
func (s Segment) Direction() Vec {
	return s.P2.Sub(s.P1)
}

// Length returns the segment's Euclidean length.
func (s Segment) Length() float64 {
	return s.Direction().Len()
}

// Degenerate reports whether the segment is shorter than EpsMM.
func (s Segment) Degenerate() bool {
	return s.Length() < EpsMM
}

// AABB returns the segment's bounding box.
func (s Segment) AABB() AABB {
	return AABBFromPoints(s.P1, s.P2)
}

// PointAt returns the point at parameter t along the segment (t=0 -> P1,
// t=1 -> P2). t is not clamped.
func (s Segment) PointAt(t float64) Point {
	return s.P1.Add(s.Direction().Scale(t))
}

// Param returns the parameter t such that PointAt(t) is the projection of
// p onto the segment's infinite line. Returns ok=false for a degenerate
// segment.
func (s Segment) Param(p Point) (t float64, ok bool) {
	d := s.Direction()
	len2 := Dot(d, d)
	if len2 < EpsMM*EpsMM {
		return 0, false
	}
	return Dot(p.Sub(s.P1), d) / len2, true
}

// OnSegmentLine reports whether p lies within tol of the infinite line
// carrying s, regardless of whether p falls within [P1,P2].
func (s Segment) OnSegmentLine(p Point, tol float64) bool {
	return PointToLineDistance(p, s.P1, s.Direction()) <= tol
}
