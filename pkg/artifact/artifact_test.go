package artifact

import (
	"testing"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
	"github.com/archtrace/wallinfer/pkg/pipeline"
)

func sampleQuad() pipeline.BandQuad {
	a := geom.Segment{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}}
	b := geom.Segment{P1: geom.Point{X: 0, Y: 10}, P2: geom.Point{X: 100, Y: 10}}
	q := pipeline.BandQuad{
		PairID:      "p1",
		SourceLineA: "a",
		SourceLineB: "b",
		TrimmedA:    a,
		TrimmedB:    b,
		Corners:     [4]geom.Point{a.P1, a.P2, b.P2, b.P1},
		Distance:    10,
	}
	return q
}

func TestFromBandQuadCopiesFields(t *testing.T) {
	q := sampleQuad()
	r := FromBandQuad(q)
	if r.PairID != "p1" || r.SourceLineIDA != "a" || r.SourceLineIDB != "b" {
		t.Errorf("FromBandQuad() ids = %+v", r)
	}
	if r.DistanceCM != 1.0 {
		t.Errorf("DistanceCM = %v, want 1.0", r.DistanceCM)
	}
	if r.Extended {
		t.Error("Extended = true for a non-extended quad, want false")
	}
	if r.JunctionPoint != nil {
		t.Error("JunctionPoint set for a non-extended quad, want nil")
	}
}

func TestFromBandQuadExtendedIncludesJunction(t *testing.T) {
	q := sampleQuad()
	q.Extended = true
	q.JunctionType = "L"
	q.JunctionPoint = geom.Point{X: 100, Y: 5}

	r := FromBandQuad(q)
	if !r.Extended || r.JunctionType != "L" {
		t.Fatalf("FromBandQuad() extended fields = %+v", r)
	}
	if r.JunctionPoint == nil || r.JunctionPoint[0] != 100 || r.JunctionPoint[1] != 5 {
		t.Errorf("JunctionPoint = %v, want [100 5]", r.JunctionPoint)
	}
}

func TestBuildWallCandidatePairsBCarriesUnpairedIDs(t *testing.T) {
	res := pipeline.Result{
		StageB: []pipeline.BandQuad{sampleQuad()},
		Totals: pipeline.Totals{
			StageB: pipeline.StageBCounters{UnpairedIDs: []string{"x", "y"}},
		},
	}
	out := BuildWallCandidatePairsB(res, config.Config{})
	if len(out.Pairs) != 1 {
		t.Fatalf("len(Pairs) = %d, want 1", len(out.Pairs))
	}
	if len(out.UnpairedIDs) != 2 {
		t.Errorf("UnpairedIDs = %v, want 2 entries", out.UnpairedIDs)
	}
}
