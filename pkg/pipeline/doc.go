// Package pipeline implements the geometric inference core: Stage B
// (parallel pair enumeration) through Stage F (L-junction extension),
// door-rectangle assignment, and door bridging. Every stage is a pure
// function from one artifact to the next; there is no shared mutable state
// between stages (spec.md §5). Stage E, Stage F and door assignment spread
// independent work over a bounded worker pool (parallelFor) and combine the
// results in a fixed order, so their output does not depend on scheduling.
package pipeline
