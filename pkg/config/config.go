package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/archtrace/wallinfer/pkg/geom"
)

// Config holds every numeric contract the pipeline runs under. Defaults
// match spec.md §4.1 exactly; fields are YAML- and JSON-tagged so the same
// struct loads from a deployment's config file and round-trips into a run's
// artifact metadata.
type Config struct {
	// EpsMM is the strict on-segment / degeneracy tolerance, in mm.
	EpsMM float64 `yaml:"epsMM" json:"epsMM"`

	// EpsOverlapMM is Stage B's interval-emptiness tolerance.
	EpsOverlapMM float64 `yaml:"epsOverlapMM" json:"epsOverlapMM"`

	// DedupOverlapPrecisionMM rounds Stage-B overlap bounds for dedup keys.
	DedupOverlapPrecisionMM float64 `yaml:"dedupOverlapPrecisionMM" json:"dedupOverlapPrecisionMM"`

	// AngleToleranceDeg is the 2° parallel-pair direction cone of Stage B
	// and Stage C.
	AngleToleranceDeg float64 `yaml:"angleToleranceDeg" json:"angleToleranceDeg"`

	// MinParallelDistanceMM / MaxParallelDistanceMM bound Stage B's
	// perpendicular separation test.
	MinParallelDistanceMM float64 `yaml:"minParallelDistanceMM" json:"minParallelDistanceMM"`
	MaxParallelDistanceMM float64 `yaml:"maxParallelDistanceMM" json:"maxParallelDistanceMM"`

	// StageCMinBlockLengthMM is Stage C's minimum blocking intrusion.
	StageCMinBlockLengthMM float64 `yaml:"stageCMinBlockLengthMM" json:"stageCMinBlockLengthMM"`

	// StageDContainmentTolMM / StageDAreaEps govern Stage D's cover test.
	StageDContainmentTolMM float64 `yaml:"stageDContainmentTolMM" json:"stageDContainmentTolMM"`
	StageDAreaEps          float64 `yaml:"stageDAreaEps" json:"stageDAreaEps"`

	// StageEThicknessMinMM / StageEThicknessMaxMM bound Stage E's
	// orientation-inference window.
	StageEThicknessMinMM float64 `yaml:"stageEThicknessMinMM" json:"stageEThicknessMinMM"`
	StageEThicknessMaxMM float64 `yaml:"stageEThicknessMaxMM" json:"stageEThicknessMaxMM"`

	// StageELineQuantumMM quantizes perpendicular band coordinates.
	StageELineQuantumMM float64 `yaml:"stageELineQuantumMM" json:"stageELineQuantumMM"`

	// StageERunGapTolMM is Stage E's run-merge gap tolerance.
	StageERunGapTolMM float64 `yaml:"stageERunGapTolMM" json:"stageERunGapTolMM"`

	// StageFAngularDotTol bounds |u_i . u_j| for an L-junction candidate.
	StageFAngularDotTol float64 `yaml:"stageFAngularDotTol" json:"stageFAngularDotTol"`

	// StageFMaxExtensionMM / StageFMaxJunctionDistMM bound Stage F
	// feasibility.
	StageFMaxExtensionMM    float64 `yaml:"stageFMaxExtensionMM" json:"stageFMaxExtensionMM"`
	StageFMaxJunctionDistMM float64 `yaml:"stageFMaxJunctionDistMM" json:"stageFMaxJunctionDistMM"`

	// DoorAABBExpansionMM expands a door's world AABB before intersecting
	// Stage-E rectangles.
	DoorAABBExpansionMM float64 `yaml:"doorAABBExpansionMM" json:"doorAABBExpansionMM"`

	// DoorBridgeAlignTolMM / DoorBridgeMaxGapMM govern door-bridge pairing.
	DoorBridgeAlignTolMM float64 `yaml:"doorBridgeAlignTolMM" json:"doorBridgeAlignTolMM"`
	DoorBridgeMaxGapMM   float64 `yaml:"doorBridgeMaxGapMM" json:"doorBridgeMaxGapMM"`

	// DeterminantEps is the minimum |determinant| for two infinite lines
	// to be considered non-parallel.
	DeterminantEps float64 `yaml:"determinantEps" json:"determinantEps"`

	// TracePairIDs, when non-empty, restricts the stages' debug logging to
	// items whose ID appears in this set: line-like IDs in Stages B–D,
	// pair IDs in Stage F, and door IDs in the door stages — avoids
	// flooding logs on large drawings while debugging one pair.
	TracePairIDs []string `yaml:"tracePairIDs,omitempty" json:"tracePairIDs,omitempty"`
}

// Default returns the spec.md §4.1 constant table as a Config.
func Default() Config {
	return Config{
		EpsMM:                   geom.EpsMM,
		EpsOverlapMM:            geom.EpsOverlapMM,
		DedupOverlapPrecisionMM: geom.DedupOverlapPrecisionMM,
		AngleToleranceDeg:       2.0,
		MinParallelDistanceMM:   geom.MinParallelDistanceMM,
		MaxParallelDistanceMM:   geom.MaxParallelDistanceMM,
		StageCMinBlockLengthMM:  geom.StageCMinBlockLengthMM,
		StageDContainmentTolMM:  geom.StageDContainmentTolMM,
		StageDAreaEps:           geom.StageDAreaEps,
		StageEThicknessMinMM:    geom.StageEThicknessMinMM,
		StageEThicknessMaxMM:    geom.StageEThicknessMaxMM,
		StageELineQuantumMM:     geom.StageELineQuantumMM,
		StageERunGapTolMM:       geom.StageERunGapTolMM,
		StageFAngularDotTol:     geom.StageFAngularDotTol,
		StageFMaxExtensionMM:    geom.StageFMaxExtensionMM,
		StageFMaxJunctionDistMM: geom.StageFMaxJunctionDistMM,
		DoorAABBExpansionMM:     geom.DoorAABBExpansionMM,
		DoorBridgeAlignTolMM:    geom.DoorBridgeAlignTolMM,
		DoorBridgeMaxGapMM:      geom.DoorBridgeMaxGapMM,
		DeterminantEps:          geom.DeterminantEps,
	}
}

// Load reads and validates a YAML configuration file, filling any zero
// field from Default() first so a partial override file is legal.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses YAML configuration from a byte slice, applying
// defaults for anything left unset.
func LoadFromBytes(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that the tolerances listed below are positive, that the
// parallel-distance and thickness windows are ordered (min < max), and that
// StageFAngularDotTol lies in (0, 1). DedupOverlapPrecisionMM,
// StageDAreaEps and the window minimums are not checked for positivity.
func (c Config) Validate() error {
	positive := map[string]float64{
		"epsMM":                   c.EpsMM,
		"epsOverlapMM":            c.EpsOverlapMM,
		"angleToleranceDeg":       c.AngleToleranceDeg,
		"stageCMinBlockLengthMM":  c.StageCMinBlockLengthMM,
		"stageDContainmentTolMM":  c.StageDContainmentTolMM,
		"stageELineQuantumMM":     c.StageELineQuantumMM,
		"stageERunGapTolMM":       c.StageERunGapTolMM,
		"stageFMaxExtensionMM":    c.StageFMaxExtensionMM,
		"stageFMaxJunctionDistMM": c.StageFMaxJunctionDistMM,
		"doorAABBExpansionMM":     c.DoorAABBExpansionMM,
		"doorBridgeAlignTolMM":    c.DoorBridgeAlignTolMM,
		"doorBridgeMaxGapMM":      c.DoorBridgeMaxGapMM,
		"determinantEps":          c.DeterminantEps,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %f", name, v)
		}
	}
	if c.MinParallelDistanceMM >= c.MaxParallelDistanceMM {
		return fmt.Errorf("minParallelDistanceMM (%f) must be less than maxParallelDistanceMM (%f)", c.MinParallelDistanceMM, c.MaxParallelDistanceMM)
	}
	if c.StageEThicknessMinMM >= c.StageEThicknessMaxMM {
		return fmt.Errorf("stageEThicknessMinMM (%f) must be less than stageEThicknessMaxMM (%f)", c.StageEThicknessMinMM, c.StageEThicknessMaxMM)
	}
	if c.StageFAngularDotTol <= 0 || c.StageFAngularDotTol >= 1 {
		return fmt.Errorf("stageFAngularDotTol must be in (0, 1), got %f", c.StageFAngularDotTol)
	}
	return nil
}
