package pipeline

import (
	"sort"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
)

// StageD removes any surviving band rectangle that is fully contained
// within another, keeping only the outer rectangle of each nested pair
// (spec.md §4.5). Candidate containment is found via a bulk-loaded R-tree
// over cleaned-polygon AABBs so the stage stays near O(n log n) rather than
// the O(n²) a naive all-pairs cover test would cost.
func StageD(quads []BandQuad, cfg config.Config, log LogFunc) ([]BandQuad, StageDCounters) {
	var counters StageDCounters
	n := len(quads)
	if n == 0 {
		return nil, counters
	}

	cleaned := make([]geom.Polygon, n)
	boxes := make([]geom.AABB, n)
	areas := make([]float64, n)
	valid := make([]bool, n)

	for i, q := range quads {
		counters.Checked++
		poly := q.polygon().Offset(0) // zero-buffer self-clean
		area := poly.Area()
		if area < cfg.StageDAreaEps {
			counters.PolygonRepairFailures++
			valid[i] = false
			continue
		}
		cleaned[i] = poly
		boxes[i] = poly.AABB()
		areas[i] = area
		valid[i] = true
	}

	var treeBoxes []geom.AABB
	var treeOrigIdx []int
	for i := 0; i < n; i++ {
		if valid[i] {
			treeBoxes = append(treeBoxes, boxes[i])
			treeOrigIdx = append(treeOrigIdx, i)
		}
	}
	tree := geom.BulkLoad(treeBoxes, 16)

	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if valid[i] {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(a, b int) bool { return areas[order[a]] < areas[order[b]] })

	contained := make([]bool, n)
	for _, bi := range order {
		candidates := tree.Query(boxes[bi])
		for _, ci := range candidates {
			ai := treeOrigIdx[ci]
			if ai == bi {
				continue
			}
			if areas[ai] <= areas[bi]+cfg.StageDAreaEps {
				continue
			}
			if !boxes[ai].Covers(boxes[bi], 0) {
				continue
			}
			buffered := cleaned[ai].Offset(cfg.StageDContainmentTolMM)
			if buffered.Covers(cleaned[bi], geom.EpsMM) {
				contained[bi] = true
				counters.Contained++
				if traceEnabled(cfg.TracePairIDs, quads[bi].SourceLineA, quads[bi].SourceLineB) {
					logf(log, "debug", "[StageD] rectangle contained", fieldString("inner", quads[bi].PairID), fieldString("outer", quads[ai].PairID))
				}
				break
			}
		}
	}

	var out []BandQuad
	for i, q := range quads {
		if valid[i] && !contained[i] {
			out = append(out, q)
			counters.Kept++
		}
	}
	return out, counters
}
