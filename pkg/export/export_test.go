package export

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
	"github.com/archtrace/wallinfer/pkg/ingest"
	"github.com/archtrace/wallinfer/pkg/pipeline"
)

func sampleResult(t *testing.T) pipeline.Result {
	t.Helper()
	cfg := config.Default()
	req := pipeline.Request{
		Layers: []ingest.Layer{{
			LayerName: "WALLS",
			Lines: []ingest.LineEntity{
				{Start: geom.Point{X: 0, Y: 0}, End: geom.Point{X: 1000, Y: 0}},
				{Start: geom.Point{X: 0, Y: 100}, End: geom.Point{X: 1000, Y: 100}},
			},
		}},
	}
	res, err := pipeline.Run(context.Background(), req, cfg, nil)
	if err != nil {
		t.Fatalf("pipeline.Run() error = %v", err)
	}
	return res
}

func TestBuildBundleAndExportJSON(t *testing.T) {
	res := sampleResult(t)
	cfg := config.Default()
	bundle := BuildBundle(res, cfg)

	data, err := ExportJSON(bundle)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(data, &roundTrip); err != nil {
		t.Fatalf("ExportJSON() produced invalid JSON: %v", err)
	}
	for _, key := range []string{"wall_candidate_pairs_b", "logic_c_pairs", "logic_d_rectangles", "logic_e_rectangles", "logic_f_rectangles", "door_assignments", "door_bridges"} {
		if _, ok := roundTrip[key]; !ok {
			t.Errorf("ExportJSON() output missing key %q", key)
		}
	}
}

func TestExportJSONCompactIsSmallerThanIndented(t *testing.T) {
	res := sampleResult(t)
	bundle := BuildBundle(res, config.Default())

	indented, err := ExportJSON(bundle)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	compact, err := ExportJSONCompact(bundle)
	if err != nil {
		t.Fatalf("ExportJSONCompact() error = %v", err)
	}
	if len(compact) >= len(indented) {
		t.Errorf("compact output (%d bytes) not smaller than indented (%d bytes)", len(compact), len(indented))
	}
}

func TestExportSVGProducesValidDocument(t *testing.T) {
	res := sampleResult(t)
	data, err := ExportSVG(res, DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportSVG() error = %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("ExportSVG() output missing <svg> element")
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("ExportSVG() output missing closing </svg>")
	}
}

func TestExportSVGHandlesEmptyResult(t *testing.T) {
	data, err := ExportSVG(pipeline.Result{}, DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportSVG() error = %v", err)
	}
	if !bytes.Contains(data, []byte("no rectangles")) {
		t.Error("ExportSVG() on empty result should render a placeholder message")
	}
}
