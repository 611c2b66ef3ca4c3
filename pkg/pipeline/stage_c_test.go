package pipeline

import (
	"testing"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/ingest"
)

func TestStageCDropsBandBlockedByParallelLine(t *testing.T) {
	cfg := config.Default()
	q := horizontalQuad("p1", 0, 1000, 0, 100)
	q.SourceLineA, q.SourceLineB = "a", "b"
	blocker := lineLike("blocker", 400, 50, 600, 50)

	out, counters := StageC([]BandQuad{q}, []ingest.LineLike{blocker}, cfg, nil)
	if len(out) != 0 {
		t.Fatalf("len(out) = %d, want 0 (blocked band)", len(out))
	}
	if counters.Blocked != 1 {
		t.Errorf("Blocked = %d, want 1", counters.Blocked)
	}
}

func TestStageCIgnoresPerpendicularCrossing(t *testing.T) {
	cfg := config.Default()
	q := horizontalQuad("p1", 0, 1000, 0, 100)
	q.SourceLineA, q.SourceLineB = "a", "b"
	crossing := lineLike("joinery", 500, -50, 500, 150)

	out, counters := StageC([]BandQuad{q}, []ingest.LineLike{crossing}, cfg, nil)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 (perpendicular joinery survives)", len(out))
	}
	if counters.Survived != 1 {
		t.Errorf("Survived = %d, want 1", counters.Survived)
	}
}

func TestStageCIgnoresOwnSourceLines(t *testing.T) {
	cfg := config.Default()
	q := horizontalQuad("p1", 0, 1000, 0, 100)
	q.SourceLineA, q.SourceLineB = "a", "b"
	own := lineLike("a", 400, 0, 600, 0)

	out, _ := StageC([]BandQuad{q}, []ingest.LineLike{own}, cfg, nil)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 (own source line must not self-block)", len(out))
	}
}
