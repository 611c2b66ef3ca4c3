package pipeline

import (
	"testing"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
)

func TestBuildDoorBridgesSpansHorizontalGap(t *testing.T) {
	cfg := config.Default()
	rects := []BandQuad{
		horizontalQuad("r1", 0, 100, 0, 100),
		horizontalQuad("r2", 150, 250, 0, 100),
	}
	doors := []Door{{ID: "door_0", WorldAABB: geom.AABB{MinX: 100, MinY: 0, MaxX: 150, MaxY: 100}}}
	assignments := []DoorAssignment{{DoorID: "door_0", RectangleIndices: []int{0, 1}}}

	out, counters := BuildDoorBridges(doors, assignments, rects, cfg, nil)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Bridge == nil {
		t.Fatal("Bridge = nil, want a spanning rectangle")
	}
	if out[0].Orientation != OrientationH {
		t.Errorf("Orientation = %v, want H", out[0].Orientation)
	}
	if out[0].Bridge.MinX != 100 || out[0].Bridge.MaxX != 150 {
		t.Errorf("Bridge = %+v, want MinX=100 MaxX=150", out[0].Bridge)
	}
	if counters.BridgesEmitted != 1 {
		t.Errorf("BridgesEmitted = %d, want 1", counters.BridgesEmitted)
	}
}

func TestBuildDoorBridgesNoBridgeForFewerThanTwoRectangles(t *testing.T) {
	cfg := config.Default()
	rects := []BandQuad{horizontalQuad("r1", 0, 100, 0, 100)}
	doors := []Door{{ID: "door_0", WorldAABB: geom.AABB{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}}}
	assignments := []DoorAssignment{{DoorID: "door_0", RectangleIndices: []int{0}}}

	out, counters := BuildDoorBridges(doors, assignments, rects, cfg, nil)
	if len(out) != 1 || out[0].Bridge != nil {
		t.Errorf("out = %+v, want single entry with nil Bridge", out)
	}
	if counters.BridgesEmitted != 0 {
		t.Errorf("BridgesEmitted = %d, want 0", counters.BridgesEmitted)
	}
}

func TestBuildDoorBridgesRejectsGapTooLarge(t *testing.T) {
	cfg := config.Default()
	rects := []BandQuad{
		horizontalQuad("r1", 0, 100, 0, 100),
		horizontalQuad("r2", 100+cfg.DoorBridgeMaxGapMM+100, 100+cfg.DoorBridgeMaxGapMM+200, 0, 100),
	}
	doors := []Door{{ID: "door_0", WorldAABB: geom.AABB{MinX: 100, MinY: 0, MaxX: 200, MaxY: 100}}}
	assignments := []DoorAssignment{{DoorID: "door_0", RectangleIndices: []int{0, 1}}}

	out, counters := BuildDoorBridges(doors, assignments, rects, cfg, nil)
	if out[0].Bridge != nil {
		t.Errorf("Bridge = %+v, want nil for an out-of-range gap", out[0].Bridge)
	}
	if counters.PairsRejectedGap == 0 {
		t.Error("expected PairsRejectedGap to be incremented")
	}
}

func TestOverlapOrSpan(t *testing.T) {
	tests := []struct {
		name                   string
		lo1, hi1, lo2, hi2     float64
		wantLo, wantHi         float64
	}{
		{"overlapping", 0, 10, 5, 15, 5, 10},
		{"disjoint_spans_union", 0, 10, 20, 30, 0, 30},
		{"touching", 0, 10, 10, 20, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := overlapOrSpan(tt.lo1, tt.hi1, tt.lo2, tt.hi2)
			if !ok {
				t.Fatal("overlapOrSpan returned ok=false, want true")
			}
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("overlapOrSpan = (%v,%v), want (%v,%v)", lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}
