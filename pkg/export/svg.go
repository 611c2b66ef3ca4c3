package export

import (
	"bytes"
	"fmt"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/archtrace/wallinfer/pkg/geom"
	"github.com/archtrace/wallinfer/pkg/ingest"
	"github.com/archtrace/wallinfer/pkg/pipeline"
)

// SVGOptions configures the wall/door visualization export.
type SVGOptions struct {
	Width      int    // Canvas width in pixels
	Height     int    // Canvas height in pixels
	Margin     int    // Canvas margin in pixels (default: 40)
	ShowLegend bool   // Show legend explaining colors
	ShowStats  bool   // Show rectangle/door/bridge counts
	Title      string // Optional title for the visualization
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      1200,
		Height:     900,
		Margin:     40,
		ShowLegend: true,
		ShowStats:  true,
		Title:      "Inferred Walls",
	}
}

// ExportSVG renders a run's Stage-F rectangles, door world-AABB outlines,
// and door bridges into an SVG drawing scaled to fit the canvas.
func ExportSVG(res pipeline.Result, opts SVGOptions) ([]byte, error) {
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#101820")

	bounds, ok := overallBounds(res)
	if !ok {
		canvas.Text(opts.Width/2, opts.Height/2, "no rectangles", "text-anchor:middle;fill:#888;font-size:14px")
		canvas.End()
		return buf.Bytes(), nil
	}
	tx, ty, scale := fitTransform(bounds, opts)

	drawRectangles(canvas, res.StageF, tx, ty, scale)
	drawDoors(canvas, res.Doors, tx, ty, scale)
	drawBridges(canvas, res.DoorBridges, tx, ty, scale)

	if opts.Title != "" || opts.ShowStats {
		drawHeader(canvas, res, opts)
	}
	if opts.ShowLegend {
		drawLegend(canvas, opts)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile generates an SVG visualization and saves it to a file.
// The file is created with 0644 permissions (readable by all, writable by owner).
func SaveSVGToFile(res pipeline.Result, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(res, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

func overallBounds(res pipeline.Result) (geom.AABB, bool) {
	if len(res.StageF) == 0 {
		return geom.AABB{}, false
	}
	b := res.StageF[0].Bounds
	for _, r := range res.StageF[1:] {
		b = b.Union(r.Bounds)
	}
	for _, d := range res.Doors {
		b = b.Union(d.WorldAABB)
	}
	return b, true
}

// fitTransform returns the translate-then-scale transform mapping drawing
// coordinates into the canvas, preserving aspect ratio and leaving a margin.
func fitTransform(b geom.AABB, opts SVGOptions) (tx, ty, scale float64) {
	drawW := float64(opts.Width - 2*opts.Margin)
	drawH := float64(opts.Height - 2*opts.Margin - 60) // header space
	w, h := b.Width(), b.Height()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	scale = math.Min(drawW/w, drawH/h)
	tx = float64(opts.Margin) - b.MinX*scale
	ty = float64(opts.Margin+60) - b.MinY*scale
	return tx, ty, scale
}

func project(p geom.Point, tx, ty, scale float64) (int, int) {
	return int(p.X*scale + tx), int(p.Y*scale + ty)
}

func drawRectangles(canvas *svg.SVG, rects []pipeline.BandQuad, tx, ty, scale float64) {
	for _, r := range rects {
		xs := make([]int, 4)
		ys := make([]int, 4)
		for i, c := range r.Corners {
			xs[i], ys[i] = project(c, tx, ty, scale)
		}
		style := "fill:#3a4a5a;stroke:#8fa8c0;stroke-width:1;opacity:0.85"
		if r.Extended {
			style = "fill:#3a5a4a;stroke:#8fc0a8;stroke-width:1.5;opacity:0.9"
		}
		canvas.Polygon(xs, ys, style)
		if r.Extended {
			jx, jy := project(r.JunctionPoint, tx, ty, scale)
			canvas.Circle(jx, jy, 3, "fill:#ffd700")
		}
	}
}

func drawDoors(canvas *svg.SVG, doors []pipeline.Door, tx, ty, scale float64) {
	for _, d := range doors {
		x1, y1 := project(geom.Point{X: d.WorldAABB.MinX, Y: d.WorldAABB.MinY}, tx, ty, scale)
		x2, y2 := project(geom.Point{X: d.WorldAABB.MaxX, Y: d.WorldAABB.MaxY}, tx, ty, scale)
		color := "#e2b33c"
		if d.Kind == ingest.KindWindow {
			color = "#4aa8e0"
		}
		canvas.Rect(x1, y1, x2-x1, y2-y1, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", color))
	}
}

func drawBridges(canvas *svg.SVG, bridges []pipeline.DoorBridge, tx, ty, scale float64) {
	for _, b := range bridges {
		if b.Bridge == nil {
			continue
		}
		x1, y1 := project(geom.Point{X: b.Bridge.MinX, Y: b.Bridge.MinY}, tx, ty, scale)
		x2, y2 := project(geom.Point{X: b.Bridge.MaxX, Y: b.Bridge.MaxY}, tx, ty, scale)
		canvas.Rect(x1, y1, x2-x1, y2-y1, "fill:#c0604a;opacity:0.5;stroke:#ff8f6a;stroke-width:1")
	}
}

func drawHeader(canvas *svg.SVG, res pipeline.Result, opts SVGOptions) {
	headerY := 22
	if opts.Title != "" {
		canvas.Text(opts.Width/2, headerY, opts.Title,
			"text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
		headerY += 24
	}
	if opts.ShowStats {
		bridgeCount := 0
		for _, b := range res.DoorBridges {
			if b.Bridge != nil {
				bridgeCount++
			}
		}
		stats := fmt.Sprintf("Rectangles: %d | Doors: %d | Bridges: %d", len(res.StageF), len(res.Doors), bridgeCount)
		canvas.Text(opts.Width/2, headerY, stats,
			"text-anchor:middle;font-size:12px;fill:#a0aec0;font-family:monospace")
	}
}

func drawLegend(canvas *svg.SVG, opts SVGOptions) {
	lx := opts.Width - opts.Margin - 160
	ly := opts.Margin + 80

	canvas.Rect(lx-10, ly-20, 170, 110, "fill:#1a2430;stroke:#4a5568;stroke-width:1;opacity:0.95;rx:5")
	canvas.Text(lx, ly, "Legend", "font-size:13px;font-weight:bold;fill:#e2e8f0")
	ly += 20

	entries := []struct {
		label string
		style string
	}{
		{"Wall rectangle", "fill:#3a4a5a;stroke:#8fa8c0"},
		{"Extended (L-junction)", "fill:#3a5a4a;stroke:#8fc0a8"},
		{"Door", "fill:none;stroke:#e2b33c"},
		{"Door bridge", "fill:#c0604a;stroke:#ff8f6a"},
	}
	for _, e := range entries {
		canvas.Rect(lx, ly-10, 16, 12, e.style+";stroke-width:1.5")
		canvas.Text(lx+24, ly, e.label, "font-size:11px;fill:#cbd5e0")
		ly += 20
	}
}
