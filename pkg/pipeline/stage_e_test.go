package pipeline

import (
	"testing"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
)

// horizontalQuad builds a Stage-D-shaped rectangle running along x in
// [x1,x2] with thickness y2-y1, the shape Stage E's orientation inference
// and run-merge operate on.
func horizontalQuad(pairID string, x1, x2, y1, y2 float64) BandQuad {
	a := geom.Segment{P1: geom.Point{X: x1, Y: y1}, P2: geom.Point{X: x2, Y: y1}}
	b := geom.Segment{P1: geom.Point{X: x1, Y: y2}, P2: geom.Point{X: x2, Y: y2}}
	q := BandQuad{
		PairID:   pairID,
		TrimmedA: a,
		TrimmedB: b,
		Corners:  [4]geom.Point{a.P1, a.P2, b.P2, b.P1},
	}
	q.recomputeBounds()
	return q
}

func TestStageEMergesAdjacentCollinearRuns(t *testing.T) {
	cfg := config.Default()
	quads := []BandQuad{
		horizontalQuad("p1", 0, 1000, 0, 100),
		horizontalQuad("p2", 1000.5, 2000, 0, 100),
	}
	out, counters := StageE(quads, cfg, nil)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 merged rectangle", len(out))
	}
	if counters.MergedRuns != 1 {
		t.Errorf("MergedRuns = %d, want 1", counters.MergedRuns)
	}
	if out[0].Bounds.MinX != 0 || out[0].Bounds.MaxX != 2000 {
		t.Errorf("merged bounds = %+v, want MinX=0 MaxX=2000", out[0].Bounds)
	}
	if out[0].Distance != 100 {
		t.Errorf("merged Distance = %v, want 100 (band thickness), got lossy zero value", out[0].Distance)
	}
}

func TestStageEDoesNotMergeAcrossGap(t *testing.T) {
	cfg := config.Default()
	quads := []BandQuad{
		horizontalQuad("p1", 0, 1000, 0, 100),
		horizontalQuad("p2", 1000+cfg.StageERunGapTolMM+50, 2000, 0, 100),
	}
	out, counters := StageE(quads, cfg, nil)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2 unmerged rectangles", len(out))
	}
	if counters.MergedRuns != 0 {
		t.Errorf("MergedRuns = %d, want 0", counters.MergedRuns)
	}
}

func TestStageEIneligiblePassesThroughUnchanged(t *testing.T) {
	cfg := config.Default()
	// Thickness of 1000 falls outside [StageEThicknessMinMM, StageEThicknessMaxMM]
	// in either orientation, so it must pass through as ineligible.
	q := horizontalQuad("p1", 0, 1000, 0, 1000)
	out, counters := StageE([]BandQuad{q}, cfg, nil)
	if counters.Ineligible != 1 {
		t.Errorf("Ineligible = %d, want 1", counters.Ineligible)
	}
	if len(out) != 1 || out[0].Orientation != "" {
		t.Errorf("ineligible rectangle should pass through with empty Orientation, got %+v", out)
	}
}

func TestStageEKeepsSeparateBandsUnmerged(t *testing.T) {
	cfg := config.Default()
	quads := []BandQuad{
		horizontalQuad("p1", 0, 1000, 0, 100),
		horizontalQuad("p2", 0, 1000, 500, 600),
	}
	out, _ := StageE(quads, cfg, nil)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2 (different bands never merge)", len(out))
	}
}
