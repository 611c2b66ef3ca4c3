package artifact

import (
	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
	"github.com/archtrace/wallinfer/pkg/pipeline"
)

// Segment is a trimmed wall edge's two endpoints.
type Segment struct {
	P1 geom.Point `json:"p1"`
	P2 geom.Point `json:"p2"`
}

// BoundingRectangle is a quad's axis-aligned bounding box.
type BoundingRectangle struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Rectangle is the common quad schema shared by every wall-candidate
// artifact (spec.md §6): a pair of trimmed segments, their four ordered
// corners, and the bounding box. Stage F additionally populates Extended,
// JunctionType, and JunctionPoint.
type Rectangle struct {
	PairID            string       `json:"pair_id"`
	SourceLineIDA     string       `json:"sourceLineIdA"`
	SourceLineIDB     string       `json:"sourceLineIdB"`
	TrimmedSegmentA   Segment      `json:"trimmedSegmentA"`
	TrimmedSegmentB   Segment      `json:"trimmedSegmentB"`
	Distance          float64      `json:"distance"`
	DistanceCM        float64      `json:"distance_cm"`
	QuadCorners       [4]geom.Point `json:"quad_corners"`
	BoundingRectangle BoundingRectangle `json:"bounding_rectangle"`

	Extended      bool        `json:"extended,omitempty"`
	JunctionType  string      `json:"junction_type,omitempty"`
	JunctionPoint *[2]float64 `json:"junction_point,omitempty"`
}

// WallCandidatePairsB is the Stage-B output artifact.
type WallCandidatePairsB struct {
	Pairs          []Rectangle           `json:"pairs"`
	UnpairedIDs    []string              `json:"unpaired_entity_hashes,omitempty"`
	AlgorithmConfig config.Config        `json:"algorithm_config"`
	Totals         pipeline.StageBCounters `json:"totals"`
}

// LogicCPairs is the Stage-C output artifact: Stage-B pairs after the
// interior-blocking filter, same quad schema.
type LogicCPairs struct {
	Pairs          []Rectangle             `json:"pairs"`
	AlgorithmConfig config.Config          `json:"algorithm_config"`
	Totals         pipeline.StageCCounters `json:"totals"`
}

// LogicDRectangles is the Stage-D output artifact: survivors after
// containment pruning.
type LogicDRectangles struct {
	Rectangles     []Rectangle             `json:"rectangles"`
	AlgorithmConfig config.Config          `json:"algorithm_config"`
	Totals         pipeline.StageDCounters `json:"totals"`
}

// LogicERectangles is the Stage-E output artifact: axis-aligned merged
// rectangles plus ineligible pass-throughs.
type LogicERectangles struct {
	Rectangles     []Rectangle             `json:"rectangles"`
	AlgorithmConfig config.Config          `json:"algorithm_config"`
	Totals         pipeline.StageECounters `json:"totals"`
}

// LogicFRectangles is the Stage-F output artifact: Stage-E rectangles after
// L-junction extension.
type LogicFRectangles struct {
	Rectangles     []Rectangle             `json:"rectangles"`
	AlgorithmConfig config.Config          `json:"algorithm_config"`
	Totals         pipeline.StageFCounters `json:"totals"`
}

// DoorAssignmentRecord is one door's Stage-E rectangle membership.
type DoorAssignmentRecord struct {
	DoorID           string `json:"doorId"`
	DoorType         string `json:"doorType"`
	RectanglesCount  int    `json:"rectanglesCount"`
	RectangleIndices []int  `json:"rectangleIndices"`
}

// DoorAssignments is the door-rectangle assignment output artifact.
type DoorAssignments struct {
	Assignments     []DoorAssignmentRecord    `json:"assignments"`
	AlgorithmConfig config.Config             `json:"algorithm_config"`
	Totals          pipeline.DoorAssignCounters `json:"totals"`
}

// BridgeRectangle is a door bridge's axis-aligned span.
type BridgeRectangle struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// BridgeMeta carries the orientation and tolerance used to build a bridge.
type BridgeMeta struct {
	Orientation            string  `json:"orientation"`
	AlignmentToleranceUsed float64 `json:"alignmentToleranceUsed"`
}

// Bridge is one door's bridge rectangle (at most one per door).
type Bridge struct {
	BridgeRectangle BridgeRectangle `json:"bridgeRectangle"`
	Meta            BridgeMeta      `json:"meta"`
}

// DoorBridgeRecord is one door's bridge list (0 or 1 entries).
type DoorBridgeRecord struct {
	DoorID  string   `json:"doorId"`
	Bridges []Bridge `json:"bridges"`
}

// DoorBridges is the door-bridge output artifact.
type DoorBridges struct {
	Doors           []DoorBridgeRecord       `json:"doors"`
	AlgorithmConfig config.Config            `json:"algorithm_config"`
	Totals          pipeline.DoorBridgeCounters `json:"totals"`
	Meta            map[string]any           `json:"meta,omitempty"`
}

// FromBandQuad converts a pipeline.BandQuad into its JSON artifact
// projection; distance_cm is always Distance converted from mm to cm.
func FromBandQuad(q pipeline.BandQuad) Rectangle {
	r := Rectangle{
		PairID:          q.PairID,
		SourceLineIDA:   q.SourceLineA,
		SourceLineIDB:   q.SourceLineB,
		TrimmedSegmentA: Segment{P1: q.TrimmedA.P1, P2: q.TrimmedA.P2},
		TrimmedSegmentB: Segment{P1: q.TrimmedB.P1, P2: q.TrimmedB.P2},
		Distance:        q.Distance,
		DistanceCM:      q.Distance / 10.0,
		QuadCorners:     q.Corners,
		BoundingRectangle: BoundingRectangle{
			MinX: q.Bounds.MinX, MinY: q.Bounds.MinY, MaxX: q.Bounds.MaxX, MaxY: q.Bounds.MaxY,
		},
	}
	if q.Extended {
		r.Extended = true
		r.JunctionType = q.JunctionType
		jp := [2]float64{q.JunctionPoint.X, q.JunctionPoint.Y}
		r.JunctionPoint = &jp
	}
	return r
}

// BuildWallCandidatePairsB assembles the Stage-B artifact from a run result.
func BuildWallCandidatePairsB(res pipeline.Result, cfg config.Config) WallCandidatePairsB {
	pairs := make([]Rectangle, len(res.StageB))
	for i, q := range res.StageB {
		pairs[i] = FromBandQuad(q)
	}
	return WallCandidatePairsB{Pairs: pairs, UnpairedIDs: res.Totals.StageB.UnpairedIDs, AlgorithmConfig: cfg, Totals: res.Totals.StageB}
}

// BuildLogicCPairs assembles the Stage-C artifact.
func BuildLogicCPairs(res pipeline.Result, cfg config.Config) LogicCPairs {
	pairs := make([]Rectangle, len(res.StageC))
	for i, q := range res.StageC {
		pairs[i] = FromBandQuad(q)
	}
	return LogicCPairs{Pairs: pairs, AlgorithmConfig: cfg, Totals: res.Totals.StageC}
}

// BuildLogicDRectangles assembles the Stage-D artifact.
func BuildLogicDRectangles(res pipeline.Result, cfg config.Config) LogicDRectangles {
	rects := make([]Rectangle, len(res.StageD))
	for i, q := range res.StageD {
		rects[i] = FromBandQuad(q)
	}
	return LogicDRectangles{Rectangles: rects, AlgorithmConfig: cfg, Totals: res.Totals.StageD}
}

// BuildLogicERectangles assembles the Stage-E artifact.
func BuildLogicERectangles(res pipeline.Result, cfg config.Config) LogicERectangles {
	rects := make([]Rectangle, len(res.StageE))
	for i, q := range res.StageE {
		rects[i] = FromBandQuad(q)
	}
	return LogicERectangles{Rectangles: rects, AlgorithmConfig: cfg, Totals: res.Totals.StageE}
}

// BuildLogicFRectangles assembles the Stage-F artifact.
func BuildLogicFRectangles(res pipeline.Result, cfg config.Config) LogicFRectangles {
	rects := make([]Rectangle, len(res.StageF))
	for i, q := range res.StageF {
		rects[i] = FromBandQuad(q)
	}
	return LogicFRectangles{Rectangles: rects, AlgorithmConfig: cfg, Totals: res.Totals.StageF}
}

// BuildDoorAssignments assembles the door-assignment artifact.
func BuildDoorAssignments(res pipeline.Result, cfg config.Config) DoorAssignments {
	recs := make([]DoorAssignmentRecord, len(res.DoorAssignments))
	for i, a := range res.DoorAssignments {
		recs[i] = DoorAssignmentRecord{
			DoorID:           a.DoorID,
			DoorType:         string(a.DoorType),
			RectanglesCount:  len(a.RectangleIndices),
			RectangleIndices: a.RectangleIndices,
		}
	}
	return DoorAssignments{Assignments: recs, AlgorithmConfig: cfg, Totals: res.Totals.DoorAssign}
}

// BuildDoorBridges assembles the door-bridge artifact.
func BuildDoorBridges(res pipeline.Result, cfg config.Config) DoorBridges {
	recs := make([]DoorBridgeRecord, len(res.DoorBridges))
	for i, b := range res.DoorBridges {
		rec := DoorBridgeRecord{DoorID: b.DoorID}
		if b.Bridge != nil {
			rec.Bridges = []Bridge{{
				BridgeRectangle: BridgeRectangle{MinX: b.Bridge.MinX, MinY: b.Bridge.MinY, MaxX: b.Bridge.MaxX, MaxY: b.Bridge.MaxY},
				Meta:            BridgeMeta{Orientation: string(b.Orientation), AlignmentToleranceUsed: b.AlignmentToleranceUsed},
			}}
		}
		recs[i] = rec
	}
	return DoorBridges{Doors: recs, AlgorithmConfig: cfg, Totals: res.Totals.DoorBridge}
}
