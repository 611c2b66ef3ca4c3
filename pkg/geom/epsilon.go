package geom

// Numeric tolerances shared across every pipeline stage. All units are
// millimeters unless noted otherwise. Values are overridable per run via
// config.Config; these are the defaults the config layer seeds from.
const (
	// EpsMM is the strict on-segment / degeneracy tolerance.
	EpsMM = 0.001

	// EpsOverlapMM is the interval-emptiness tolerance used by Stage B's
	// longitudinal overlap test.
	EpsOverlapMM = 0.01

	// DedupOverlapPrecisionMM rounds Stage-B overlap bounds before hashing
	// the pair dedup key.
	DedupOverlapPrecisionMM = 0.1

	// StageCMinBlockLengthMM is the minimum intrusion length that makes a
	// crossing line-like block a Stage-B band in Stage C.
	StageCMinBlockLengthMM = 1.0

	// StageDContainmentTolMM is the buffer applied to the outer polygon in
	// Stage D's cover test.
	StageDContainmentTolMM = 0.1

	// StageDAreaEps is the minimum area difference for "A is strictly
	// bigger than B" in Stage D.
	StageDAreaEps = 1e-6

	// StageEThicknessMinMM / StageEThicknessMaxMM bound the orientation
	// inference window in Stage E.
	StageEThicknessMinMM = 20.0
	StageEThicknessMaxMM = 450.0

	// StageELineQuantumMM quantizes perpendicular band coordinates before
	// grouping in Stage E.
	StageELineQuantumMM = 0.5

	// StageERunGapTolMM is the maximum gap between two runs on the same
	// band that still merges them in Stage E.
	StageERunGapTolMM = 1.0

	// StageFAngularDotTol bounds |u_i . u_j| for a candidate L-junction.
	StageFAngularDotTol = 0.3

	// StageFMaxExtensionMM caps how far a rectangle's end may move to meet
	// a junction point.
	StageFMaxExtensionMM = 300.0

	// StageFMaxJunctionDistMM caps the distance from a junction point to
	// either participant's AABB.
	StageFMaxJunctionDistMM = 400.0

	// DoorAABBExpansionMM expands a door's world AABB before intersecting
	// it against Stage-E rectangles.
	DoorAABBExpansionMM = 200.0

	// DoorBridgeAlignTolMM is the alignment tolerance for deciding two
	// rectangles assigned to the same door sit on the same wall line.
	DoorBridgeAlignTolMM = 50.0

	// DoorBridgeMaxGapMM caps the gap a bridge rectangle may span.
	DoorBridgeMaxGapMM = 2000.0

	// MinParallelDistanceMM / MaxParallelDistanceMM bound Stage B's
	// perpendicular separation test.
	MinParallelDistanceMM = 10.0
	MaxParallelDistanceMM = 450.0

	// DeterminantEps is the minimum |determinant| for two infinite lines
	// to be considered non-parallel.
	DeterminantEps = 1e-12
)
