package export

import (
	"encoding/json"
	"os"

	"github.com/archtrace/wallinfer/pkg/artifact"
	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/pipeline"
)

// Bundle groups every stage's output artifact for one run into a single
// JSON document, in addition to the per-stage files a caller may also want
// individually.
type Bundle struct {
	WallCandidatePairsB artifact.WallCandidatePairsB `json:"wall_candidate_pairs_b"`
	LogicCPairs         artifact.LogicCPairs         `json:"logic_c_pairs"`
	LogicDRectangles    artifact.LogicDRectangles    `json:"logic_d_rectangles"`
	LogicERectangles    artifact.LogicERectangles    `json:"logic_e_rectangles"`
	LogicFRectangles    artifact.LogicFRectangles    `json:"logic_f_rectangles"`
	DoorAssignments     artifact.DoorAssignments     `json:"door_assignments"`
	DoorBridges         artifact.DoorBridges         `json:"door_bridges"`
}

// BuildBundle assembles every stage artifact from one pipeline run.
func BuildBundle(res pipeline.Result, cfg config.Config) Bundle {
	return Bundle{
		WallCandidatePairsB: artifact.BuildWallCandidatePairsB(res, cfg),
		LogicCPairs:         artifact.BuildLogicCPairs(res, cfg),
		LogicDRectangles:    artifact.BuildLogicDRectangles(res, cfg),
		LogicERectangles:    artifact.BuildLogicERectangles(res, cfg),
		LogicFRectangles:    artifact.BuildLogicFRectangles(res, cfg),
		DoorAssignments:     artifact.BuildDoorAssignments(res, cfg),
		DoorBridges:         artifact.BuildDoorBridges(res, cfg),
	}
}

// ExportJSON serializes the complete bundle to JSON with indentation.
// Returns formatted JSON with 2-space indentation for readability.
func ExportJSON(b Bundle) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// ExportJSONCompact serializes the bundle to JSON without indentation.
// Returns compact JSON suitable for storage or transmission.
func ExportJSONCompact(b Bundle) ([]byte, error) {
	return json.Marshal(b)
}

// SaveJSONToFile exports the bundle to a JSON file with indentation.
// The file is created with 0644 permissions (readable by all, writable by owner).
func SaveJSONToFile(b Bundle, filepath string) error {
	data, err := ExportJSON(b)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// SaveJSONCompactToFile exports the bundle to a compact JSON file.
// The file is created with 0644 permissions (readable by all, writable by owner).
func SaveJSONCompactToFile(b Bundle, filepath string) error {
	data, err := ExportJSONCompact(b)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
