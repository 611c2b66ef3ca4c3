package pipeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
	"github.com/archtrace/wallinfer/pkg/ingest"
)

// StageB enumerates every unordered pair of approximately parallel
// line-likes, trims each to their mutual longitudinal overlap, and emits
// one wall-band quad per surviving pair (spec.md §4.3). It is the most
// expensive stage in the pipeline — O(n²) pairs — so an AABB pre-filter
// (each line-like's box expanded by the max parallel distance) skips pairs
// that cannot possibly satisfy the perpendicular-distance window before
// any trigonometry runs.
func StageB(lines []ingest.LineLike, cfg config.Config, log LogFunc) ([]BandQuad, StageBCounters) {
	var counters StageBCounters
	n := len(lines)
	if n < 2 {
		return nil, counters
	}
	counters.PairsChecked = n * (n - 1) / 2

	angleTolRad := cfg.AngleToleranceDeg * math.Pi / 180.0
	sinTol := math.Sin(angleTolRad)

	boxes := make([]geom.AABB, n)
	for i, l := range lines {
		boxes[i] = l.AABB().Expand(cfg.MaxParallelDistanceMM)
	}

	var quads []BandQuad
	seenKeys := make(map[string]struct{})
	pairedIDs := make(map[string]struct{})

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !boxes[i].Intersects(lines[j].AABB()) {
				continue
			}
			quad, reason, ok := stageBEvaluatePair(lines[i], lines[j], cfg, sinTol, seenKeys)
			trace := traceEnabled(cfg.TracePairIDs, lines[i].ID, lines[j].ID)
			if !ok {
				stageBCountRejection(&counters, reason)
				if trace {
					logf(log, "debug", "[StageB] pair rejected", fieldString("a", lines[i].ID), fieldString("b", lines[j].ID), fieldString("reason", reason))
				}
				continue
			}
			quads = append(quads, quad)
			pairedIDs[lines[i].ID] = struct{}{}
			pairedIDs[lines[j].ID] = struct{}{}
			if trace {
				logf(log, "debug", "[StageB] pair accepted", fieldString("pairID", quad.PairID))
			}
		}
	}

	counters.CandidatePairs = len(quads)
	for _, l := range lines {
		if _, ok := pairedIDs[l.ID]; !ok {
			counters.UnpairedCount++
			counters.UnpairedIDs = append(counters.UnpairedIDs, l.ID)
		}
	}
	sort.Strings(counters.UnpairedIDs)

	// Deterministic ordering: by pair_id.
	sort.Slice(quads, func(i, j int) bool { return quads[i].PairID < quads[j].PairID })

	return quads, counters
}

const (
	reasonDegenerate      = "degenerate"
	reasonNotParallel     = "not_parallel"
	reasonDistanceRange   = "distance_out_of_range"
	reasonOverlapEmpty    = "overlap_empty"
	reasonReconstruction  = "reconstruction_out_of_range"
	reasonDuplicate       = "duplicate"
	reasonOnSegmentBroken = "on_segment_invariant"
)

func stageBCountRejection(c *StageBCounters, reason string) {
	switch reason {
	case reasonDegenerate:
		c.RejectedDegenerate++
	case reasonNotParallel:
		c.RejectedNotParallel++
	case reasonDistanceRange:
		c.RejectedDistance++
	case reasonOverlapEmpty:
		c.RejectedOverlapEmpty++
	case reasonReconstruction:
		c.RejectedReconstruction++
	case reasonDuplicate:
		c.RejectedDuplicate++
	case reasonOnSegmentBroken:
		c.RejectedOnSegmentInvariant++
	}
}

func stageBEvaluatePair(l1, l2 ingest.LineLike, cfg config.Config, sinTol float64, seenKeys map[string]struct{}) (BandQuad, string, bool) {
	if l1.Degenerate() || l2.Degenerate() {
		return BandQuad{}, reasonDegenerate, false
	}

	d1 := l1.Direction()
	d2 := l2.Direction()
	u1 := geom.Normalize(d1)
	u2 := geom.Normalize(d2)

	u2Canon := u2
	if geom.Dot(u1, u2) < 0 {
		u2Canon = u2.Neg()
	}
	if math.Abs(geom.Cross(u1, u2Canon)) > sinTol {
		return BandQuad{}, reasonNotParallel, false
	}

	// Perpendicular separation using L2's original (non-canonicalized)
	// direction, per spec.md §4.3 step 3.
	s := math.Abs(geom.Cross(l1.P1.Sub(l2.P1), u2))
	if s < cfg.MinParallelDistanceMM || s > cfg.MaxParallelDistanceMM {
		return BandQuad{}, reasonDistanceRange, false
	}

	axis := geom.Normalize(u1.Add(u2Canon))
	if axis == (geom.Vec{}) {
		return BandQuad{}, reasonNotParallel, false
	}
	origin := l1.P1

	s1Lo := geom.ProjectOntoAxis(l1.P1, origin, axis)
	s1Hi := geom.ProjectOntoAxis(l1.P2, origin, axis)
	if s1Lo > s1Hi {
		s1Lo, s1Hi = s1Hi, s1Lo
	}
	s2Lo := geom.ProjectOntoAxis(l2.P1, origin, axis)
	s2Hi := geom.ProjectOntoAxis(l2.P2, origin, axis)
	if s2Lo > s2Hi {
		s2Lo, s2Hi = s2Hi, s2Lo
	}

	overlapLo := math.Max(s1Lo, s2Lo)
	overlapHi := math.Min(s1Hi, s2Hi)
	if overlapHi-overlapLo <= cfg.EpsOverlapMM {
		return BandQuad{}, reasonOverlapEmpty, false
	}

	trimmedA, okA := reconstructOnOwnLine(overlapLo, overlapHi, origin, axis, l1.Segment, cfg.EpsMM, cfg.EpsOverlapMM)
	if !okA {
		return BandQuad{}, reasonReconstruction, false
	}
	trimmedB, okB := reconstructOnOwnLine(overlapLo, overlapHi, origin, axis, l2.Segment, cfg.EpsMM, cfg.EpsOverlapMM)
	if !okB {
		return BandQuad{}, reasonReconstruction, false
	}

	idA, idB := l1.ID, l2.ID
	minID, maxID := idA, idB
	if maxID < minID {
		minID, maxID = maxID, minID
	}
	key := fmt.Sprintf("%s|%s|%.1f|%.1f", minID, maxID, geom.Round(overlapLo, cfg.DedupOverlapPrecisionMM), geom.Round(overlapHi, cfg.DedupOverlapPrecisionMM))
	if _, dup := seenKeys[key]; dup {
		return BandQuad{}, reasonDuplicate, false
	}

	if !onSegmentWithinEps(trimmedA.P1, l1.Segment, cfg.EpsMM) || !onSegmentWithinEps(trimmedA.P2, l1.Segment, cfg.EpsMM) ||
		!onSegmentWithinEps(trimmedB.P1, l2.Segment, cfg.EpsMM) || !onSegmentWithinEps(trimmedB.P2, l2.Segment, cfg.EpsMM) {
		return BandQuad{}, reasonOnSegmentBroken, false
	}

	seenKeys[key] = struct{}{}

	corners := [4]geom.Point{trimmedA.P1, trimmedA.P2, trimmedB.P2, trimmedB.P1}
	quad := BandQuad{
		PairID:      key,
		SourceLineA: idA,
		SourceLineB: idB,
		TrimmedA:    trimmedA,
		TrimmedB:    trimmedB,
		Corners:     corners,
		Distance:    s,
	}
	quad.recomputeBounds()
	return quad, "", true
}

// reconstructOnOwnLine maps shared-axis overlap bounds back onto a line's
// own parameterization by projecting the shared-axis points onto the
// line's own infinite line, then clamping to [0, length] with tolerance
// eps. This is the crucial per-line reconstruction spec.md §4.3 step 6
// demands: the trimmed endpoints of a line must lie on that line, each
// computed from its own origin and direction, never assumed to share a
// coordinate with the other line.
func reconstructOnOwnLine(overlapLo, overlapHi float64, origin geom.Point, axis geom.Vec, line geom.Segment, eps, epsOverlap float64) (geom.Segment, bool) {
	dir := line.Direction()
	length := dir.Len()
	if length < eps {
		return geom.Segment{}, false
	}
	u := geom.Normalize(dir)

	pLo := origin.Add(axis.Scale(overlapLo))
	pHi := origin.Add(axis.Scale(overlapHi))

	tLo := geom.Dot(pLo.Sub(line.P1), u)
	tHi := geom.Dot(pHi.Sub(line.P1), u)
	if tLo > tHi {
		tLo, tHi = tHi, tLo
	}

	if tHi < -eps || tLo > length+eps {
		return geom.Segment{}, false
	}
	if tLo < 0 {
		tLo = 0
	}
	if tHi > length {
		tHi = length
	}
	if tHi-tLo <= epsOverlap {
		return geom.Segment{}, false
	}

	return geom.Segment{P1: line.P1.Add(u.Scale(tLo)), P2: line.P1.Add(u.Scale(tHi))}, true
}

func onSegmentWithinEps(p geom.Point, line geom.Segment, eps float64) bool {
	return geom.PointToLineDistance(p, line.P1, line.Direction()) <= eps
}
