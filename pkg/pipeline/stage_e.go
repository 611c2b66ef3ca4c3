package pipeline

import (
	"sort"
	"strings"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
)

type bandKey struct {
	orientation Orientation
	qLo, qHi    float64
}

// StageE groups Stage-D survivors by quantized band signature and merges
// co-linear, near-touching runs along their run axis into strictly
// axis-aligned rectangles (spec.md §4.6). Rectangles whose AABB doesn't fit
// the thickness window in either orientation are ineligible and pass
// through unchanged.
func StageE(quads []BandQuad, cfg config.Config, log LogFunc) ([]BandQuad, StageECounters) {
	var counters StageECounters
	groups := make(map[bandKey][]int)
	var out []BandQuad

	for _, q := range quads {
		orient, ok := inferOrientation(q.Bounds, cfg)
		if !ok {
			counters.Ineligible++
			q.Orientation = ""
			if q.MergedFromPairIDs == nil {
				q.MergedFromPairIDs = []string{q.PairID}
			}
			out = append(out, q)
			continue
		}
		counters.Eligible++
		q.Orientation = orient
		key := bandKeyFor(q.Bounds, orient, cfg.StageELineQuantumMM)
		groups[key] = append(groups[key], len(out))
		out = append(out, q)
	}
	counters.BandGroups = len(groups)

	// Deterministic key iteration order.
	keys := make([]bandKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].orientation != keys[j].orientation {
			return keys[i].orientation < keys[j].orientation
		}
		if keys[i].qLo != keys[j].qLo {
			return keys[i].qLo < keys[j].qLo
		}
		return keys[i].qHi < keys[j].qHi
	})

	// Each band group's run-merge is independent of every other group's, so
	// the per-key work runs over a bounded worker pool; each worker writes
	// into its own pre-sized slot, keyed by position in `keys`, and the
	// results are concatenated back in that deterministic key order.
	groupMerged := make([][]BandQuad, len(keys))
	groupMergedIdxs := make([][]int, len(keys))
	groupRuns := make([]int, len(keys))

	parallelFor(len(keys), func(ki int) {
		key := keys[ki]
		idxs := append([]int(nil), groups[key]...)
		sort.Slice(idxs, func(a, b int) bool {
			return runStart(out[idxs[a]].Bounds, key.orientation) < runStart(out[idxs[b]].Bounds, key.orientation)
		})

		var runEndV float64
		var runItems []int
		var localMerged []BandQuad
		var localIdxs []int
		var localRuns int
		flush := func() {
			if len(runItems) == 0 {
				return
			}
			localMerged = append(localMerged, buildMergedRectangle(out, runItems, key.orientation))
			if len(runItems) > 1 {
				localRuns++
			}
			localIdxs = append(localIdxs, runItems...)
			runItems = nil
		}

		for _, idx := range idxs {
			lo := runStart(out[idx].Bounds, key.orientation)
			hi := runEnd(out[idx].Bounds, key.orientation)
			if len(runItems) == 0 {
				runEndV = hi
				runItems = []int{idx}
				continue
			}
			if lo <= runEndV+cfg.StageERunGapTolMM {
				if hi > runEndV {
					runEndV = hi
				}
				runItems = append(runItems, idx)
				continue
			}
			flush()
			runEndV = hi
			runItems = []int{idx}
		}
		flush()

		groupMerged[ki] = localMerged
		groupMergedIdxs[ki] = localIdxs
		groupRuns[ki] = localRuns
	})

	merged := make(map[int]bool) // index into `out` that got replaced
	var mergedResults []BandQuad
	for ki := range keys {
		counters.MergedRuns += groupRuns[ki]
		for _, idx := range groupMergedIdxs[ki] {
			merged[idx] = true
		}
		mergedResults = append(mergedResults, groupMerged[ki]...)
	}

	var final []BandQuad
	for i, q := range out {
		if merged[i] {
			continue
		}
		final = append(final, q)
	}
	final = append(final, mergedResults...)

	return final, counters
}

func inferOrientation(b geom.AABB, cfg config.Config) (Orientation, bool) {
	w, h := b.Width(), b.Height()
	hFits := h >= cfg.StageEThicknessMinMM && h <= cfg.StageEThicknessMaxMM && w >= h
	vFits := w >= cfg.StageEThicknessMinMM && w <= cfg.StageEThicknessMaxMM && h > w
	switch {
	case hFits && vFits:
		// Both fit: choose the orientation where the in-window dimension
		// is the smaller side.
		if h <= w {
			return OrientationH, true
		}
		return OrientationV, true
	case hFits:
		return OrientationH, true
	case vFits:
		return OrientationV, true
	default:
		return "", false
	}
}

func bandKeyFor(b geom.AABB, orient Orientation, quantum float64) bandKey {
	if orient == OrientationH {
		return bandKey{orientation: orient, qLo: geom.Round(b.MinY, quantum), qHi: geom.Round(b.MaxY, quantum)}
	}
	return bandKey{orientation: orient, qLo: geom.Round(b.MinX, quantum), qHi: geom.Round(b.MaxX, quantum)}
}

func runStart(b geom.AABB, orient Orientation) float64 {
	if orient == OrientationH {
		return b.MinX
	}
	return b.MinY
}

func runEnd(b geom.AABB, orient Orientation) float64 {
	if orient == OrientationH {
		return b.MaxX
	}
	return b.MaxY
}

// buildMergedRectangle unions the AABBs of every rectangle in a merged run
// into one axis-aligned Stage-E rectangle, re-deriving A/B edge segments so
// Stage F still has a center-line to extend.
func buildMergedRectangle(out []BandQuad, idxs []int, orient Orientation) BandQuad {
	bounds := out[idxs[0]].Bounds
	var pairIDs []string
	for _, idx := range idxs {
		bounds = bounds.Union(out[idx].Bounds)
		pairIDs = append(pairIDs, out[idx].MergedFromPairIDs...)
		if len(out[idx].MergedFromPairIDs) == 0 {
			pairIDs = append(pairIDs, out[idx].PairID)
		}
	}
	sort.Strings(pairIDs)

	var a, b geom.Segment
	var corners [4]geom.Point
	if orient == OrientationH {
		a = geom.Segment{P1: geom.Point{X: bounds.MinX, Y: bounds.MinY}, P2: geom.Point{X: bounds.MaxX, Y: bounds.MinY}}
		b = geom.Segment{P1: geom.Point{X: bounds.MinX, Y: bounds.MaxY}, P2: geom.Point{X: bounds.MaxX, Y: bounds.MaxY}}
		corners = [4]geom.Point{a.P1, a.P2, b.P2, b.P1}
	} else {
		a = geom.Segment{P1: geom.Point{X: bounds.MinX, Y: bounds.MinY}, P2: geom.Point{X: bounds.MinX, Y: bounds.MaxY}}
		b = geom.Segment{P1: geom.Point{X: bounds.MaxX, Y: bounds.MinY}, P2: geom.Point{X: bounds.MaxX, Y: bounds.MaxY}}
		corners = [4]geom.Point{a.P1, a.P2, b.P2, b.P1}
	}

	thickness := bounds.Height()
	if orient == OrientationV {
		thickness = bounds.Width()
	}

	q := BandQuad{
		PairID:            strings.Join(pairIDs, "+"),
		SourceLineA:       out[idxs[0]].SourceLineA,
		SourceLineB:       out[idxs[len(idxs)-1]].SourceLineB,
		TrimmedA:          a,
		TrimmedB:          b,
		Corners:           corners,
		Distance:          thickness,
		Orientation:       orient,
		MergedFromPairIDs: pairIDs,
	}
	q.recomputeBounds()
	return q
}
