package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/export"
	"github.com/archtrace/wallinfer/pkg/ingest"
	"github.com/archtrace/wallinfer/pkg/pipeline"
)

const version = "1.0.0"

// CLI flags
var (
	drawingPath = flag.String("drawing", "", "Path to drawing JSON file (required)")
	doorsPath   = flag.String("doors", "", "Path to window/door block JSON array (optional)")
	layersFlag  = flag.String("layers", "", "Comma-separated selected layer names (required)")
	configPath  = flag.String("config", "", "Path to YAML configuration file (optional, defaults applied otherwise)")
	outputDir   = flag.String("output", ".", "Output directory for generated files")
	format      = flag.String("format", "json", "Export format: json, svg, or all")
	verbose     = flag.Bool("verbose", false, "Enable verbose output")
	versionF    = flag.Bool("version", false, "Print version and exit")
	help        = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("wallinfer version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}
	if *drawingPath == "" || *layersFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: -drawing and -layers flags are required")
		printUsage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, svg, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	runID := uuid.NewString()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	drawing, err := loadDrawing(*drawingPath)
	if err != nil {
		return fmt.Errorf("failed to load drawing: %w", err)
	}

	var blocks []ingest.WindowDoorBlock
	if *doorsPath != "" {
		blocks, err = loadDoorBlocks(*doorsPath)
		if err != nil {
			return fmt.Errorf("failed to load door blocks: %w", err)
		}
	}

	selected := make(map[string]struct{})
	for _, name := range strings.Split(*layersFlag, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			selected[name] = struct{}{}
		}
	}
	layers := ingest.SelectLayers(drawing, selected)

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	log := makeLogFunc(runID, *verbose)

	start := time.Now()
	if *verbose {
		fmt.Printf("[%s] running pipeline over %d layers, %d door/window blocks\n", runID, len(layers), len(blocks))
	}

	res, err := pipeline.Run(context.Background(), pipeline.Request{Layers: layers, WindowDoorBlocks: blocks}, cfg, log)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	elapsed := time.Since(start)

	if *verbose {
		printStats(res, elapsed)
	}

	baseName := fmt.Sprintf("wallinfer_%s", runID)

	if *format == "json" || *format == "all" {
		if err := exportJSON(res, cfg, baseName); err != nil {
			return err
		}
	}
	if *format == "svg" || *format == "all" {
		if err := exportSVG(res, runID, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully inferred walls (run=%s) in %v\n", runID, elapsed)
	return nil
}

func loadDrawing(path string) (ingest.Drawing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ingest.Drawing{}, err
	}
	var d ingest.Drawing
	if err := json.Unmarshal(data, &d); err != nil {
		return ingest.Drawing{}, fmt.Errorf("parsing drawing JSON: %w", err)
	}
	return d, nil
}

func loadDoorBlocks(path string) ([]ingest.WindowDoorBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var blocks []ingest.WindowDoorBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("parsing door blocks JSON: %w", err)
	}
	return blocks, nil
}

func makeLogFunc(runID string, verbose bool) pipeline.LogFunc {
	if !verbose {
		return pipeline.NopLog
	}
	return func(level, msg string, fields ...any) {
		fmt.Printf("[%s] %s %s %v\n", runID, level, msg, fields)
	}
}

func exportJSON(res pipeline.Result, cfg config.Config, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	if *verbose {
		fmt.Printf("Exporting JSON to %s\n", filename)
	}
	bundle := export.BuildBundle(res, cfg)
	if err := export.SaveJSONToFile(bundle, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func exportSVG(res pipeline.Result, runID, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("Exporting SVG to %s\n", filename)
	}
	opts := export.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("Inferred Walls (run=%s)", runID)
	if err := export.SaveSVGToFile(res, filename, opts); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func printStats(res pipeline.Result, elapsed time.Duration) {
	fmt.Println("\nPipeline Statistics:")
	fmt.Printf("  Line-likes: %d\n", len(res.LineLikes))
	fmt.Printf("  Stage B candidate pairs: %d\n", res.Totals.StageB.CandidatePairs)
	fmt.Printf("  Stage C survivors: %d\n", res.Totals.StageC.Survived)
	fmt.Printf("  Stage D kept: %d\n", res.Totals.StageD.Kept)
	fmt.Printf("  Stage E band groups: %d, merged runs: %d\n", res.Totals.StageE.BandGroups, res.Totals.StageE.MergedRuns)
	fmt.Printf("  Stage F accepted junctions: %d\n", res.Totals.StageF.Accepted)
	fmt.Printf("  Doors: %d, bridges emitted: %d\n", len(res.Doors), res.Totals.DoorBridge.BridgesEmitted)
	fmt.Printf("  Elapsed: %v\n", elapsed)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: wallinfer -drawing <drawing.json> -layers <name,name,...> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'wallinfer -help' for detailed help")
}

func printHelp() {
	fmt.Printf("wallinfer version %s\n\n", version)
	fmt.Println("Infers wall rectangles and door bridges from a 2D CAD drawing export.")
	fmt.Println("\nUsage:")
	fmt.Println("  wallinfer -drawing <drawing.json> -layers <name,name,...> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -drawing string")
	fmt.Println("        Path to drawing JSON file")
	fmt.Println("  -layers string")
	fmt.Println("        Comma-separated selected layer names")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -doors string")
	fmt.Println("        Path to window/door block JSON array")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML configuration file (defaults applied otherwise)")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated files (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: json, svg, or all (default: json)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  wallinfer -drawing floor1.json -layers WALLS,PARTITIONS")
	fmt.Println("  wallinfer -drawing floor1.json -layers WALLS -doors doors.json -format all -output ./out")
}
