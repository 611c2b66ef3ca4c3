// Package export provides functionality for exporting pipeline artifacts
// to various formats such as JSON and SVG.
//
// The package offers both formatted (indented) and compact JSON export
// options to accommodate different use cases, from human-readable output to
// space-efficient storage, plus an SVG visualization of the inferred wall
// rectangles, doors, and bridges.
package export
