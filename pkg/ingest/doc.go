// Package ingest turns a drawing export into the canonical, deduplicated
// stream of line-like segments the pipeline consumes: selecting entities by
// layer, expanding polylines into per-edge virtual lines, quantizing
// coordinates, and dropping content-duplicate entries by stable hash.
package ingest
