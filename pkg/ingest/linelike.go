package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/archtrace/wallinfer/pkg/geom"
)

// LineLike is a native LINE entity or a single edge of a polyline, treated
// uniformly by every downstream stage. Identifier derivation is
// content-deterministic per spec.md §3/§9: a native line hashes its own
// content, a polyline edge inherits the polyline's hash with a `_seg_<i>`
// suffix.
type LineLike struct {
	geom.Segment
	Layer      string
	SourceKind SourceKind
}

// SourceKind distinguishes a native LINE from a polyline-derived edge.
type SourceKind string

const (
	SourceLine     SourceKind = "LINE"
	SourcePolyline SourceKind = "POLYLINE_EDGE"
)

// Counters tracks the pre-core's local failures: spec.md §7 classifies
// these as input-shape failures and degenerate geometry, neither of which
// aborts the stage.
type Counters struct {
	EntitiesSeen     int `json:"entities_seen"`
	SkippedZeroLen   int `json:"skipped_zero_length"`
	SkippedDuplicate int `json:"skipped_duplicate"`
}

// BuildLineLikes extracts the canonical line-like stream from the given
// layers: every LINE as-is, every polyline edge as a virtual LINE, both
// quantized to EpsMM and deduplicated by content hash with first-occurrence
// winning (spec.md §4.2).
func BuildLineLikes(layers []Layer) ([]LineLike, Counters) {
	var out []LineLike
	var counters Counters
	seen := make(map[string]struct{})

	for _, layer := range layers {
		for _, l := range layer.Lines {
			counters.EntitiesSeen++
			seg := geom.Segment{P1: quantizePoint(l.Start), P2: quantizePoint(l.End)}
			if seg.Degenerate() {
				counters.SkippedZeroLen++
				continue
			}
			hash := contentHash(layer.LayerName, "LINE", seg.P1, seg.P2)
			if _, dup := seen[hash]; dup {
				counters.SkippedDuplicate++
				continue
			}
			seen[hash] = struct{}{}
			seg.ID = hash
			out = append(out, LineLike{Segment: seg, Layer: layer.LayerName, SourceKind: SourceLine})
		}

		for _, pl := range layer.Polylines {
			counters.EntitiesSeen++
			if len(pl.Vertices) < 2 {
				continue
			}
			qv := make([]geom.Point, len(pl.Vertices))
			for i, v := range pl.Vertices {
				qv[i] = quantizePoint(v)
			}
			polyHash := contentHash(layer.LayerName, "POLYLINE", qv...)

			edgeCount := len(qv) - 1
			if pl.IsClosed {
				edgeCount = len(qv)
			}
			for i := 0; i < edgeCount; i++ {
				a := qv[i]
				b := qv[(i+1)%len(qv)]
				seg := geom.Segment{P1: a, P2: b}
				if seg.Degenerate() {
					counters.SkippedZeroLen++
					continue
				}
				id := fmt.Sprintf("%s_seg_%d", polyHash, i)
				dedupKey := contentHash(layer.LayerName, "POLYLINE_EDGE", a, b)
				if _, dup := seen[dedupKey]; dup {
					counters.SkippedDuplicate++
					continue
				}
				seen[dedupKey] = struct{}{}
				seg.ID = id
				out = append(out, LineLike{Segment: seg, Layer: layer.LayerName, SourceKind: SourcePolyline})
			}
		}
	}

	return out, counters
}

// quantizePoint rounds a point's coordinates to EpsMM, matching the
// q(v) = round(v/ε)·ε rule of spec.md §4.2. Z is quantized the same way
// for storage consistency but, per spec.md §1, never feeds a predicate.
func quantizePoint(p geom.Point) geom.Point {
	return geom.Point{
		X: quantize(p.X),
		Y: quantize(p.Y),
		Z: quantize(p.Z),
	}
}

func quantize(v float64) float64 {
	return math.Round(v/geom.EpsMM) * geom.EpsMM
}

// contentHash computes sha-256 over "<layer>|<kind>|<canonical coordinates>"
// as spec.md §4.2 specifies, returning the hex digest.
func contentHash(layer, kind string, pts ...geom.Point) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|", layer, kind)
	for i, p := range pts {
		if i > 0 {
			h.Write([]byte(";"))
		}
		fmt.Fprintf(h, "%.3f,%.3f,%.3f", p.X, p.Y, p.Z)
	}
	return hex.EncodeToString(h.Sum(nil))
}
