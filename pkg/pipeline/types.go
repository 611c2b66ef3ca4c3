package pipeline

import (
	"github.com/archtrace/wallinfer/pkg/geom"
	"github.com/archtrace/wallinfer/pkg/ingest"
)

// Orientation classifies a Stage-E-eligible rectangle by its long axis.
type Orientation string

const (
	OrientationH Orientation = "H"
	OrientationV Orientation = "V"
)

// BandQuad is the core geometric artifact threaded through Stage B–F: two
// trimmed, approximately parallel segments A and B, their four corners in
// order, and the axis-aligned bounding box maintained consistently with
// those corners (spec.md §3). Stage F may additionally tag it extended.
type BandQuad struct {
	PairID       string
	SourceLineA  string
	SourceLineB  string
	TrimmedA     geom.Segment
	TrimmedB     geom.Segment
	Corners      [4]geom.Point // p_A1, p_A2, p_B2, p_B1, in that order
	Bounds       geom.AABB
	Distance     float64 // perpendicular separation used to form the pair

	Extended      bool
	JunctionType  string // "L" once extended
	JunctionPoint geom.Point

	// Orientation is set by Stage E for eligible (axis-aligned,
	// thickness-window) rectangles; empty for rectangles passed through
	// unchanged because neither H nor V fit the thickness window.
	Orientation Orientation

	// MergedFromPairIDs lists the Stage-D pair_ids a Stage-E merged
	// rectangle absorbed; a single, un-merged rectangle lists just its own.
	MergedFromPairIDs []string
}

// corners returns the band quad as a geom.Polygon for kernel operations.
func (q BandQuad) polygon() geom.Polygon {
	return geom.Polygon{q.Corners[0], q.Corners[1], q.Corners[2], q.Corners[3]}
}

// recomputeBounds refreshes Bounds from Corners, keeping the invariant of
// spec.md §3 ("Every rectangle's bounding_rectangle matches the AABB of its
// four corners exactly").
func (q *BandQuad) recomputeBounds() {
	q.Bounds = geom.AABBFromPoints(q.Corners[0], q.Corners[1], q.Corners[2], q.Corners[3])
}

// Door is the pipeline's internal view of a door/window block placement,
// carrying its normalized rotation and computed world AABB.
type Door struct {
	ID          string
	Kind        ingest.WindowOrDoorKind
	Position    geom.Point
	LocalBox    geom.AABB
	RotationDeg float64 // already snapped to the nearest multiple of 90
	WorldAABB   geom.AABB
}

// DoorAssignment is the set of Stage-E rectangle indices whose AABB
// intersects a door's expanded world AABB.
type DoorAssignment struct {
	DoorID            string
	DoorType          ingest.WindowOrDoorKind
	RectangleIndices  []int
}

// DoorBridge is at most one bridge rectangle spanning the gap between two
// aligned Stage-E rectangles assigned to the same door.
type DoorBridge struct {
	DoorID             string
	Bridge             *geom.AABB
	Orientation        Orientation
	AlignmentToleranceUsed float64
}
