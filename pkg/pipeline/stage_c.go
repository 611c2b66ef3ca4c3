package pipeline

import (
	"math"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
	"github.com/archtrace/wallinfer/pkg/ingest"
)

// StageC discards any Stage-B band whose interior is crossed by a third
// line-like approximately parallel to the band's axis over more than
// StageCMinBlockLengthMM (spec.md §4.4). Only parallel candidates count as
// blocking; perpendiculars and diagonals represent legitimate wall
// joinery and are ignored even when they cross the strip.
func StageC(quads []BandQuad, lines []ingest.LineLike, cfg config.Config, log LogFunc) ([]BandQuad, StageCCounters) {
	var counters StageCCounters
	angleTolRad := cfg.AngleToleranceDeg * math.Pi / 180.0
	sinTol := math.Sin(angleTolRad)

	var survivors []BandQuad
	for _, q := range quads {
		counters.BandsChecked++
		interior := q.polygon().Offset(-cfg.EpsMM)
		axisDir := geom.Normalize(q.TrimmedA.Direction())

		blocked := false
		for _, cand := range lines {
			if cand.ID == q.SourceLineA || cand.ID == q.SourceLineB {
				continue
			}
			if !cand.AABB().Intersects(q.Bounds) {
				continue
			}
			candDir := geom.Normalize(cand.Direction())
			if candDir == (geom.Vec{}) {
				continue
			}
			if math.Abs(geom.Cross(axisDir, candDir)) > sinTol {
				continue // not parallel to the band axis: legitimate joinery
			}
			length := interior.IntersectionLength(cand.Segment)
			if length > cfg.StageCMinBlockLengthMM {
				blocked = true
				if traceEnabled(cfg.TracePairIDs, q.SourceLineA, q.SourceLineB, cand.ID) {
					logf(log, "debug", "[StageC] band blocked", fieldString("pairID", q.PairID), fieldString("blocker", cand.ID), fieldString("length", length))
				}
				break
			}
		}

		if blocked {
			counters.Blocked++
			continue
		}
		counters.Survived++
		survivors = append(survivors, q)
	}
	return survivors, counters
}
