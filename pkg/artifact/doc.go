// Package artifact defines the JSON-serializable output of each pipeline
// stage, matching the schemas a caller persists or diffs for reproducibility.
package artifact
