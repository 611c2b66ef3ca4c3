package pipeline

// StageBCounters mirrors the original wall_candidates_processor_b.py
// rejection_stats/detection_stats: not just how many pairs survived, but
// why the rest were dropped.
type StageBCounters struct {
	PairsChecked      int `json:"pairs_checked"`
	CandidatePairs    int `json:"candidate_pairs"`
	RejectedDegenerate int `json:"rejected_degenerate"`
	RejectedNotParallel int `json:"rejected_not_parallel"`
	RejectedDistance   int `json:"rejected_distance_out_of_range"`
	RejectedOverlapEmpty int `json:"rejected_overlap_empty"`
	RejectedReconstruction int `json:"rejected_reconstruction_out_of_range"`
	RejectedDuplicate  int `json:"rejected_duplicate"`
	RejectedOnSegmentInvariant int `json:"rejected_on_segment_invariant"`
	UnpairedCount      int `json:"unpaired_count"`
	UnpairedIDs        []string `json:"unpaired_entity_hashes,omitempty"`
}

// StageCCounters counts how many Stage-B bands survived the blocking
// filter and how many were rejected by an interior crossing.
type StageCCounters struct {
	BandsChecked int `json:"bands_checked"`
	Survived     int `json:"survived"`
	Blocked      int `json:"blocked"`
}

// StageDCounters counts containment pruning outcomes.
type StageDCounters struct {
	Checked    int `json:"checked"`
	Contained  int `json:"contained"`
	Kept       int `json:"kept"`
	PolygonRepairFailures int `json:"polygon_repair_failures"`
}

// StageECounters counts band-merge outcomes.
type StageECounters struct {
	Eligible    int `json:"eligible"`
	Ineligible  int `json:"ineligible"`
	BandGroups  int `json:"band_groups"`
	MergedRuns  int `json:"merged_runs"`
}

// StageFCounters counts L-junction extension outcomes.
type StageFCounters struct {
	CandidatesConsidered int `json:"candidates_considered"`
	RejectedOrientation  int `json:"rejected_orientation"`
	RejectedAngular      int `json:"rejected_angular"`
	RejectedNoIntersection int `json:"rejected_no_intersection"`
	RejectedFeasibility  int `json:"rejected_feasibility"`
	Accepted             int `json:"accepted"`
	LockedConflicts      int `json:"locked_conflicts"`
}

// DoorAssignCounters counts how many rectangles each door picked up.
type DoorAssignCounters struct {
	DoorsProcessed   int `json:"doors_processed"`
	TotalAssignments int `json:"total_assignments"`
	EmptyAssignments int `json:"empty_assignments"`
}

// DoorBridgeCounters counts bridge synthesis outcomes.
type DoorBridgeCounters struct {
	DoorsWithPairs   int `json:"doors_with_pairs"`
	PairsConsidered  int `json:"pairs_considered"`
	PairsRejectedAlignment int `json:"pairs_rejected_alignment"`
	PairsRejectedGap int `json:"pairs_rejected_gap"`
	BridgesEmitted   int `json:"bridges_emitted"`
}

// Totals aggregates every stage's counters into one structure for the
// final Result, matching spec.md §7's "Aggregate error counters are
// exposed in each stage's totals/metrics."
type Totals struct {
	StageB      StageBCounters      `json:"stage_b"`
	StageC      StageCCounters      `json:"stage_c"`
	StageD      StageDCounters      `json:"stage_d"`
	StageE      StageECounters      `json:"stage_e"`
	StageF      StageFCounters      `json:"stage_f"`
	DoorAssign  DoorAssignCounters  `json:"door_assign"`
	DoorBridge  DoorBridgeCounters  `json:"door_bridge"`
}
