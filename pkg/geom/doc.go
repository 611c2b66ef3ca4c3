// Package geom provides the 2D geometry primitives shared by every stage of
// the wall/door inference pipeline: points and vectors, axis-aligned
// bounding boxes, segment and infinite-line predicates, and the numeric
// tolerance table the pipeline is contracted against.
package geom
