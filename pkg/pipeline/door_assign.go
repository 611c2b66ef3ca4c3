package pipeline

import (
	"math"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
	"github.com/archtrace/wallinfer/pkg/ingest"
)

// BuildDoor converts an external window/door block placement into the
// pipeline's internal Door, snapping its rotation and computing its world
// AABB (spec.md §3, §4.8).
func BuildDoor(id string, block ingest.WindowDoorBlock) Door {
	data := block.Data
	rot := ingest.NormalizeRotationWithUnit(data.Rotation, data.RotationUnit)

	var local geom.AABB
	if data.BoundingBox != nil {
		local = geom.AABBFromPoints(data.BoundingBox.MinPoint, data.BoundingBox.MaxPoint)
	}

	world := worldAABB(local, data.Position, rot)

	return Door{
		ID:          id,
		Kind:        block.WindowOrDoor,
		Position:    data.Position,
		LocalBox:    local,
		RotationDeg: rot,
		WorldAABB:   world,
	}
}

// worldAABB rotates the four corners of local around its own centroid by
// rotDeg (already snapped to a multiple of 90°) and translates the result so
// the centroid lands on position, per spec.md §3.
func worldAABB(local geom.AABB, position geom.Point, rotDeg float64) geom.AABB {
	centroid := local.Center()
	corners := [4]geom.Point{
		{X: local.MinX, Y: local.MinY},
		{X: local.MaxX, Y: local.MinY},
		{X: local.MaxX, Y: local.MaxY},
		{X: local.MinX, Y: local.MaxY},
	}

	rad := rotDeg * math.Pi / 180
	cosT, sinT := math.Cos(rad), math.Sin(rad)

	var rotated [4]geom.Point
	for i, c := range corners {
		dx := c.X - centroid.X
		dy := c.Y - centroid.Y
		rx := dx*cosT - dy*sinT
		ry := dx*sinT + dy*cosT
		rotated[i] = geom.Point{X: centroid.X + rx + (position.X - centroid.X), Y: centroid.Y + ry + (position.Y - centroid.Y)}
	}
	return geom.AABBFromPoints(rotated[0], rotated[1], rotated[2], rotated[3])
}

// AssignDoors intersects every door's expanded world AABB against every
// Stage-E rectangle, emitting one assignment record per door even when it
// picks up no rectangles (spec.md §4.8).
func AssignDoors(doors []Door, rects []BandQuad, cfg config.Config, log LogFunc) ([]DoorAssignment, DoorAssignCounters) {
	var counters DoorAssignCounters
	out := make([]DoorAssignment, len(doors))

	// Each door's intersection scan is independent of every other door's, so
	// it runs over a bounded worker pool; results land in pre-sized slots
	// keyed by door index, keeping the returned order identical to doors.
	parallelFor(len(doors), func(di int) {
		d := doors[di]
		expanded := d.WorldAABB.Expand(cfg.DoorAABBExpansionMM)
		var idxs []int
		for i, r := range rects {
			if expanded.Intersects(r.Bounds) {
				idxs = append(idxs, i)
			}
		}
		if traceEnabled(cfg.TracePairIDs, d.ID) {
			logf(log, "debug", "[DoorAssign] assigned", fieldString("door", d.ID), fieldString("count", len(idxs)))
		}
		out[di] = DoorAssignment{DoorID: d.ID, DoorType: d.Kind, RectangleIndices: idxs}
	})

	for _, a := range out {
		counters.DoorsProcessed++
		counters.TotalAssignments += len(a.RectangleIndices)
		if len(a.RectangleIndices) == 0 {
			counters.EmptyAssignments++
		}
	}

	return out, counters
}
