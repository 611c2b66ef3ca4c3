// Package config defines the tunable numeric contract the pipeline runs
// under: every epsilon, tolerance, and window named in spec.md §4.1,
// loadable from YAML so a deployment can retune thresholds without a
// rebuild.
package config
