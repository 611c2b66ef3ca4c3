package pipeline

import (
	"context"
	"fmt"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/ingest"
)

// Request is everything one pipeline run needs: the drawing's selected
// layers (already filtered by the caller's layer-classification rule) and
// the externally classified door/window block list (spec.md §4.2).
type Request struct {
	Layers           []ingest.Layer
	WindowDoorBlocks []ingest.WindowDoorBlock
}

// Result is the full output of one run: every stage's surviving artifact
// plus the aggregated counters, in the shape pkg/artifact serializes.
type Result struct {
	LineLikes       []ingest.LineLike
	StageB          []BandQuad
	StageC          []BandQuad
	StageD          []BandQuad
	StageE          []BandQuad
	StageF          []BandQuad
	Doors           []Door
	DoorAssignments []DoorAssignment
	DoorBridges     []DoorBridge
	Totals          Totals
}

// Run executes the fixed B → C → D → E → F → door-assignment → door-bridge
// sequence over one drawing (spec.md §2). Door assignment and door-bridge
// both read Stage E's rectangles, not Stage F's — Stage F only extends wall
// ends into L-junctions and plays no further part once doors are considered
// (spec.md §4.8, §4.9). Each stage is a pure function; Run itself does no
// geometry, only sequencing and counter aggregation. An error
// is returned only when the request's shape prevents the pipeline from
// starting at all, never for a per-pair or per-door rejection (those are
// tracked in Totals and reported through log). ctx is checked between
// stages only — the core has no internal suspension points to cancel
// mid-stage (spec.md §5).
func Run(ctx context.Context, req Request, cfg config.Config, log LogFunc) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid pipeline config: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	lines, ingestCounters := ingest.BuildLineLikes(req.Layers)
	logf(log, "info", "[Ingest] line-likes built",
		fieldString("entities_seen", ingestCounters.EntitiesSeen),
		fieldString("skipped_zero_length", ingestCounters.SkippedZeroLen),
		fieldString("skipped_duplicate", ingestCounters.SkippedDuplicate))

	stageB, bCounters := StageB(lines, cfg, log)
	logf(log, "info", "[StageB] complete", fieldString("candidate_pairs", bCounters.CandidatePairs))
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	stageC, cCounters := StageC(stageB, lines, cfg, log)
	logf(log, "info", "[StageC] complete", fieldString("survived", cCounters.Survived))
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	stageD, dCounters := StageD(stageC, cfg, log)
	logf(log, "info", "[StageD] complete", fieldString("kept", dCounters.Kept))
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	stageE, eCounters := StageE(stageD, cfg, log)
	logf(log, "info", "[StageE] complete", fieldString("band_groups", eCounters.BandGroups))
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	stageF, fCounters := StageF(stageE, cfg, log)
	logf(log, "info", "[StageF] complete", fieldString("accepted", fCounters.Accepted))

	doors := make([]Door, 0, len(req.WindowDoorBlocks))
	for i, block := range req.WindowDoorBlocks {
		doors = append(doors, BuildDoor(fmt.Sprintf("door_%d", i), block))
	}

	assignments, assignCounters := AssignDoors(doors, stageE, cfg, log)
	bridges, bridgeCounters := BuildDoorBridges(doors, assignments, stageE, cfg, log)

	return Result{
		LineLikes:       lines,
		StageB:          stageB,
		StageC:          stageC,
		StageD:          stageD,
		StageE:          stageE,
		StageF:          stageF,
		Doors:           doors,
		DoorAssignments: assignments,
		DoorBridges:     bridges,
		Totals: Totals{
			StageB:     bCounters,
			StageC:     cCounters,
			StageD:     dCounters,
			StageE:     eCounters,
			StageF:     fCounters,
			DoorAssign: assignCounters,
			DoorBridge: bridgeCounters,
		},
	}, nil
}
