package pipeline

import (
	"testing"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
	"github.com/archtrace/wallinfer/pkg/ingest"
)

func lineLike(id string, x1, y1, x2, y2 float64) ingest.LineLike {
	return ingest.LineLike{
		Segment: geom.Segment{ID: id, P1: geom.Point{X: x1, Y: y1}, P2: geom.Point{X: x2, Y: y2}},
	}
}

func TestStageBPairsParallelLines(t *testing.T) {
	cfg := config.Default()
	lines := []ingest.LineLike{
		lineLike("a", 0, 0, 1000, 0),
		lineLike("b", 0, 100, 1000, 100),
	}
	out, counters := StageB(lines, cfg, nil)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if counters.CandidatePairs != 1 {
		t.Errorf("CandidatePairs = %d, want 1", counters.CandidatePairs)
	}
	if out[0].Distance != 100 {
		t.Errorf("Distance = %v, want 100", out[0].Distance)
	}
}

func TestStageBRejectsTooClose(t *testing.T) {
	cfg := config.Default()
	lines := []ingest.LineLike{
		lineLike("a", 0, 0, 1000, 0),
		lineLike("b", 0, cfg.MinParallelDistanceMM-5, 1000, cfg.MinParallelDistanceMM-5),
	}
	out, counters := StageB(lines, cfg, nil)
	if len(out) != 0 {
		t.Fatalf("len(out) = %d, want 0", len(out))
	}
	if counters.RejectedDistance == 0 {
		t.Error("expected RejectedDistance to be incremented")
	}
}

func TestStageBRejectsNonParallelLines(t *testing.T) {
	cfg := config.Default()
	lines := []ingest.LineLike{
		lineLike("a", 0, 0, 1000, 0),
		lineLike("b", 0, 100, 0, 1100),
	}
	out, counters := StageB(lines, cfg, nil)
	if len(out) != 0 {
		t.Fatalf("len(out) = %d, want 0", len(out))
	}
	if counters.RejectedNotParallel == 0 {
		t.Error("expected RejectedNotParallel to be incremented")
	}
}

func TestStageBTracksUnpairedLines(t *testing.T) {
	cfg := config.Default()
	lines := []ingest.LineLike{
		lineLike("a", 0, 0, 1000, 0),
		lineLike("b", 0, 100, 1000, 100),
		lineLike("c", 5000, 5000, 6000, 5000),
	}
	_, counters := StageB(lines, cfg, nil)
	if counters.UnpairedCount != 1 {
		t.Fatalf("UnpairedCount = %d, want 1", counters.UnpairedCount)
	}
	if len(counters.UnpairedIDs) != 1 || counters.UnpairedIDs[0] != "c" {
		t.Errorf("UnpairedIDs = %v, want [c]", counters.UnpairedIDs)
	}
}

func TestStageBOutputIsSortedByPairID(t *testing.T) {
	cfg := config.Default()
	lines := []ingest.LineLike{
		lineLike("z", 0, 0, 1000, 0),
		lineLike("y", 0, 100, 1000, 100),
		lineLike("a", 2000, 0, 3000, 0),
		lineLike("b", 2000, 100, 3000, 100),
	}
	out, _ := StageB(lines, cfg, nil)
	for i := 1; i < len(out); i++ {
		if out[i-1].PairID > out[i].PairID {
			t.Fatalf("output not sorted by PairID: %q before %q", out[i-1].PairID, out[i].PairID)
		}
	}
}
