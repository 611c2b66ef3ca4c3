package pipeline

import (
	"math"
	"sort"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
)

type bridgeCandidate struct {
	orientation   Orientation
	perpRounded   float64
	alignErr      float64
	distFromDoor  float64
	indexSum      int
	bridge        geom.AABB
}

// BuildDoorBridges synthesizes at most one gap-spanning rectangle per door
// from its assigned Stage-E rectangles (spec.md §4.9).
func BuildDoorBridges(doors []Door, assignments []DoorAssignment, rects []BandQuad, cfg config.Config, log LogFunc) ([]DoorBridge, DoorBridgeCounters) {
	var counters DoorBridgeCounters
	out := make([]DoorBridge, 0, len(doors))

	byDoor := make(map[string]Door, len(doors))
	for _, d := range doors {
		byDoor[d.ID] = d
	}

	for _, a := range assignments {
		if len(a.RectangleIndices) < 2 {
			out = append(out, DoorBridge{DoorID: a.DoorID})
			continue
		}
		counters.DoorsWithPairs++
		door := byDoor[a.DoorID]
		doorCenter := door.WorldAABB.Center()

		groups := make(map[bridgeGroupKey][]bridgeCandidate)

		idxs := a.RectangleIndices
		for x := 0; x < len(idxs); x++ {
			for y := x + 1; y < len(idxs); y++ {
				counters.PairsConsidered++
				ra, rb := rects[idxs[x]], rects[idxs[y]]
				cand, orient, ok := evaluateBridgePair(ra, rb, idxs[x], idxs[y], doorCenter, cfg)
				if !ok {
					if orient == "" {
						counters.PairsRejectedAlignment++
					} else {
						counters.PairsRejectedGap++
					}
					continue
				}
				key := bridgeGroupKey{orient, cand.perpRounded}
				groups[key] = append(groups[key], cand)
			}
		}

		keys := make([]bridgeGroupKey, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].orientation != keys[j].orientation {
				return keys[i].orientation < keys[j].orientation
			}
			return keys[i].perpRounded < keys[j].perpRounded
		})

		var best *geom.AABB
		bestArea := -1.0
		var bestOrient Orientation
		for _, key := range keys {
			group := groups[key]
			sort.Slice(group, func(i, j int) bool {
				if group[i].alignErr != group[j].alignErr {
					return group[i].alignErr < group[j].alignErr
				}
				if group[i].distFromDoor != group[j].distFromDoor {
					return group[i].distFromDoor < group[j].distFromDoor
				}
				return group[i].indexSum < group[j].indexSum
			})
			chosen := group[0].bridge
			area := chosen.Area()
			if area > bestArea {
				bestArea = area
				b := chosen
				best = &b
				bestOrient = key.orientation
			}
		}

		if best != nil {
			counters.BridgesEmitted++
			if traceEnabled(cfg.TracePairIDs, a.DoorID) {
				logf(log, "debug", "[DoorBridge] bridge emitted", fieldString("door", a.DoorID), fieldString("area", bestArea))
			}
			out = append(out, DoorBridge{DoorID: a.DoorID, Bridge: best, Orientation: bestOrient, AlignmentToleranceUsed: cfg.DoorBridgeAlignTolMM})
		} else {
			out = append(out, DoorBridge{DoorID: a.DoorID})
		}
	}

	return out, counters
}

type bridgeGroupKey struct {
	orientation Orientation
	perpRounded float64
}

// evaluateBridgePair decides orientation, rejects misaligned or out-of-range
// gaps, and builds the candidate bridge rectangle for one rectangle pair.
// ok=false with orient=="" signals an alignment rejection; ok=false with a
// non-empty orient signals a gap rejection.
func evaluateBridgePair(ra, rb BandQuad, ia, ib int, doorCenter geom.Point, cfg config.Config) (bridgeCandidate, Orientation, bool) {
	ca, cb := ra.Bounds.Center(), rb.Bounds.Center()
	dcy := math.Abs(ca.Y - cb.Y)
	dcx := math.Abs(ca.X - cb.X)
	tol := cfg.DoorBridgeAlignTolMM

	var orient Orientation
	switch {
	case dcy <= tol && dcx > tol:
		orient = OrientationH
	case dcx <= tol && dcy > tol:
		orient = OrientationV
	case dcy <= tol && dcx <= tol:
		if gapAlong(ra.Bounds, rb.Bounds, true) <= gapAlong(ra.Bounds, rb.Bounds, false) {
			orient = OrientationH
		} else {
			orient = OrientationV
		}
	default:
		return bridgeCandidate{}, "", false
	}

	left, right := ra.Bounds, rb.Bounds
	var gap float64
	var bridge geom.AABB
	var perp float64
	var alignErr float64

	if orient == OrientationH {
		if left.MinX > right.MinX {
			left, right = right, left
		}
		gap = right.MinX - left.MaxX
		lo, hi, ok := overlapOrSpan(left.MinY, left.MaxY, right.MinY, right.MaxY)
		if !ok {
			return bridgeCandidate{}, orient, false
		}
		perp = (lo + hi) / 2
		bridge = geom.AABB{MinX: left.MaxX, MaxX: right.MinX, MinY: lo, MaxY: hi}
		alignErr = dcy
	} else {
		if left.MinY > right.MinY {
			left, right = right, left
		}
		gap = right.MinY - left.MaxY
		lo, hi, ok := overlapOrSpan(left.MinX, left.MaxX, right.MinX, right.MaxX)
		if !ok {
			return bridgeCandidate{}, orient, false
		}
		perp = (lo + hi) / 2
		bridge = geom.AABB{MinX: lo, MaxX: hi, MinY: left.MaxY, MaxY: right.MinY}
		alignErr = dcx
	}

	if gap <= 0 || gap > cfg.DoorBridgeMaxGapMM {
		return bridgeCandidate{}, orient, false
	}

	center := bridge.Center()
	distFromDoor := geom.Distance(center, doorCenter)

	return bridgeCandidate{
		orientation:  orient,
		perpRounded:  geom.Round(perp, 50),
		alignErr:     alignErr,
		distFromDoor: distFromDoor,
		indexSum:     ia + ib,
		bridge:       bridge,
	}, orient, true
}

// gapAlong returns the would-be gap for a tentative H (x) or V (y) reading,
// used only to break the ambiguous "both within tolerance" case by smaller
// gap magnitude.
func gapAlong(a, b geom.AABB, horizontal bool) float64 {
	if horizontal {
		if a.MinX <= b.MinX {
			return math.Abs(b.MinX - a.MaxX)
		}
		return math.Abs(a.MinX - b.MaxX)
	}
	if a.MinY <= b.MinY {
		return math.Abs(b.MinY - a.MaxY)
	}
	return math.Abs(a.MinY - b.MaxY)
}

// overlapOrSpan returns the overlap of [lo1,hi1] and [lo2,hi2] when they
// intersect, else the spanning union.
func overlapOrSpan(lo1, hi1, lo2, hi2 float64) (lo, hi float64, ok bool) {
	oLo := math.Max(lo1, lo2)
	oHi := math.Min(hi1, hi2)
	if oLo <= oHi {
		return oLo, oHi, true
	}
	return math.Min(lo1, lo2), math.Max(hi1, hi2), true
}
