package pipeline

import (
	"math"
	"sort"

	"github.com/archtrace/wallinfer/pkg/config"
	"github.com/archtrace/wallinfer/pkg/geom"
)

// wallRep is a rectangle's center-line representation used by Stage F:
// axis-aligned thickness, unit axis and normal, and the two ends of its
// center-line (c1 corresponds to the rectangle's A.P1/B.P1 side, c2 to
// A.P2/B.P2, after the orientation swap below).
type wallRep struct {
	c1, c2 geom.Point
	u, n   geom.Vec
	w      float64
}

func buildWallRep(q BandQuad) (wallRep, geom.Segment, geom.Segment) {
	a, b := q.TrimmedA, q.TrimmedB
	if geom.Dot(a.Direction(), b.Direction()) < 0 {
		b = geom.Segment{P1: b.P2, P2: b.P1}
	}
	c1 := geom.Midpoint(a.P1, b.P1)
	c2 := geom.Midpoint(a.P2, b.P2)
	u := geom.Normalize(c2.Sub(c1))
	n := geom.Normal(u)
	w := (geom.PointToLineDistance(a.P1, b.P1, b.Direction()) + geom.PointToLineDistance(a.P2, b.P2, b.Direction())) / 2
	return wallRep{c1: c1, c2: c2, u: u, n: n, w: w}, a, b
}

type fCandidate struct {
	i, j        int
	x           geom.Point
	score       float64
	extI, extJ  float64
}

// StageF extends one end of each participant in every orthogonal H/V pair
// whose center-lines meet within feasibility bounds, resolving conflicts
// greedily by ascending candidate score (spec.md §4.7). Each rectangle
// participates in at most one junction.
func StageF(quads []BandQuad, cfg config.Config, log LogFunc) ([]BandQuad, StageFCounters) {
	var counters StageFCounters
	n := len(quads)
	reps := make([]wallRep, n)
	trimmedA := make([]geom.Segment, n)
	trimmedB := make([]geom.Segment, n)
	for i, q := range quads {
		reps[i], trimmedA[i], trimmedB[i] = buildWallRep(q)
	}

	// Per-i candidate scoring runs over a bounded worker pool; each worker
	// owns its own local counters and candidate slice so results are
	// combined deterministically by index afterward (spec.md §5's
	// per-candidate-pair-scoring parallelism, reordered back to a fixed
	// sequence before the greedy accept pass runs).
	perI := make([][]fCandidate, n)
	localCounters := make([]StageFCounters, n)
	parallelFor(n, func(i int) {
		var c StageFCounters
		var cands []fCandidate
		for j := i + 1; j < n; j++ {
			c.CandidatesConsidered++
			if quads[i].Orientation == "" || quads[j].Orientation == "" || quads[i].Orientation == quads[j].Orientation {
				c.RejectedOrientation++
				continue
			}
			dot := geom.Dot(reps[i].u, reps[j].u)
			if math.Abs(dot) > cfg.StageFAngularDotTol {
				c.RejectedAngular++
				continue
			}
			x, ok := geom.LineIntersection(reps[i].c1, reps[i].u, reps[j].c1, reps[j].u)
			if !ok {
				c.RejectedNoIntersection++
				continue
			}
			di := quads[i].Bounds.DistanceToPoint(x)
			dj := quads[j].Bounds.DistanceToPoint(x)
			if di > cfg.StageFMaxJunctionDistMM || dj > cfg.StageFMaxJunctionDistMM {
				c.RejectedFeasibility++
				continue
			}
			extI := extensionLength(reps[i], x)
			extJ := extensionLength(reps[j], x)
			if extI > cfg.StageFMaxExtensionMM || extJ > cfg.StageFMaxExtensionMM {
				c.RejectedFeasibility++
				continue
			}
			angErr := math.Abs(90 - math.Acos(clampUnit(math.Abs(dot)))*180/math.Pi)
			score := angErr + extI + extJ + di + dj
			cands = append(cands, fCandidate{i: i, j: j, x: x, score: score, extI: extI, extJ: extJ})
		}
		localCounters[i] = c
		perI[i] = cands
	})

	var candidates []fCandidate
	for i := 0; i < n; i++ {
		counters.CandidatesConsidered += localCounters[i].CandidatesConsidered
		counters.RejectedOrientation += localCounters[i].RejectedOrientation
		counters.RejectedAngular += localCounters[i].RejectedAngular
		counters.RejectedNoIntersection += localCounters[i].RejectedNoIntersection
		counters.RejectedFeasibility += localCounters[i].RejectedFeasibility
		candidates = append(candidates, perI[i]...)
	}

	sort.SliceStable(candidates, func(a, b int) bool { return candidates[a].score < candidates[b].score })

	locked := make([]bool, n)
	out := make([]BandQuad, n)
	copy(out, quads)

	for _, c := range candidates {
		if locked[c.i] || locked[c.j] {
			counters.LockedConflicts++
			continue
		}
		extendRectangle(&out[c.i], reps[c.i], trimmedA[c.i], trimmedB[c.i], c.x)
		extendRectangle(&out[c.j], reps[c.j], trimmedA[c.j], trimmedB[c.j], c.x)
		locked[c.i] = true
		locked[c.j] = true
		counters.Accepted++
		if traceEnabled(cfg.TracePairIDs, quads[c.i].PairID, quads[c.j].PairID) {
			logf(log, "debug", "[StageF] junction accepted", fieldString("a", quads[c.i].PairID), fieldString("b", quads[c.j].PairID), fieldString("score", c.score))
		}
	}

	return out, counters
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// extensionLength returns the smaller of the distances from X (projected
// along u) to either end of the center-line.
func extensionLength(r wallRep, x geom.Point) float64 {
	t1 := geom.ProjectOntoAxis(x, r.c1, r.u)
	t2 := geom.ProjectOntoAxis(x, r.c2, r.u)
	if math.Abs(t1) < math.Abs(t2) {
		return math.Abs(t1)
	}
	return math.Abs(t2)
}

// extendRectangle moves the closer end of q's A/B edges to the junction
// point (projected back onto q's own center-line to guarantee the
// extension remains axis-aligned under floating-point noise), tags it
// extended, and recomputes its bounds.
func extendRectangle(q *BandQuad, r wallRep, a, b geom.Segment, x geom.Point) {
	t1 := geom.ProjectOntoAxis(x, r.c1, r.u)
	t2 := geom.ProjectOntoAxis(x, r.c2, r.u)
	extendStart := math.Abs(t1) < math.Abs(t2)

	var xPrime geom.Point
	if extendStart {
		xPrime = r.c1.Add(r.u.Scale(t1))
	} else {
		xPrime = r.c2.Add(r.u.Scale(t2))
	}

	half := r.n.Scale(r.w / 2)
	// Preserve which side of the centerline A originally sat on.
	aSide := geom.Dot(r.n, a.P1.Sub(r.c1))
	var newA, newB geom.Point
	if aSide >= 0 {
		newA = xPrime.Add(half)
		newB = xPrime.Add(half.Neg())
	} else {
		newA = xPrime.Add(half.Neg())
		newB = xPrime.Add(half)
	}

	if extendStart {
		a.P1 = newA
		b.P1 = newB
	} else {
		a.P2 = newA
		b.P2 = newB
	}

	q.TrimmedA = a
	q.TrimmedB = b
	q.Corners = [4]geom.Point{a.P1, a.P2, b.P2, b.P1}
	q.recomputeBounds()
	q.Extended = true
	q.JunctionType = "L"
	q.JunctionPoint = xPrime
}
