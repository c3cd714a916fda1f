// Package plan orders vector paths for drawing: endpoint merging to cut
// pen lifts, then a greedy travel-minimizing visitation order.
package plan

import "github.com/PhysCorp/MarbleMachine/internal/domain"

// Result carries the ordered paths plus planning diagnostics.
type Result struct {
	Paths  []domain.PlannedPath
	Merged int // splices performed by the endpoint-merge pass
}

// Plan runs the merge pass and the ordering pass. Both passes are
// deterministic: scan order is the input insertion order and all ties
// keep the earlier candidate.
func Plan(paths []domain.VectorPath, snap float64) Result {
	merged, splices := Merge(paths, snap)
	return Result{
		Paths:  Order(merged, snap),
		Merged: splices,
	}
}

// Merge splices paths whose endpoints lie within the snap distance of
// each other, reversing one side when needed for continuity, until no
// pair is close enough. Each splice reduces the path count by one, which
// bounds the loop.
func Merge(paths []domain.VectorPath, snap float64) ([]domain.VectorPath, int) {
	work := make([]domain.VectorPath, len(paths))
	copy(work, paths)

	splices := 0
	for {
		i, j, flipA, flipB := findSnap(work, snap)
		if i < 0 {
			return work, splices
		}

		a := work[i]
		if flipA {
			a = a.Reversed()
		}
		b := work[j]
		if flipB {
			b = b.Reversed()
		}

		work[i] = splice(a, b)
		work = append(work[:j], work[j+1:]...)
		splices++
	}
}

// findSnap locates the first path pair (insertion order) with endpoints
// within snap, and how each side must be oriented so a's end meets b's
// start.
func findSnap(paths []domain.VectorPath, snap float64) (i, j int, flipA, flipB bool) {
	limit := snap * snap
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			a, b := paths[i], paths[j]

			best := -1.0
			var fa, fb bool
			consider := func(d float64, flipSelf, flipOther bool) {
				if d <= limit && (best < 0 || d < best) {
					best = d
					fa, fb = flipSelf, flipOther
				}
			}
			consider(a.End().DistSq(b.Start()), false, false)
			consider(a.End().DistSq(b.End()), false, true)
			consider(a.Start().DistSq(b.Start()), true, false)
			consider(a.Start().DistSq(b.End()), true, true)

			if best >= 0 {
				return i, j, fa, fb
			}
		}
	}
	return -1, -1, false, false
}

// splice joins b onto a. A junction point shared exactly by both sides
// is kept once so consecutive points stay distinct.
func splice(a, b domain.VectorPath) domain.VectorPath {
	pts := make([]domain.Point, 0, len(a.Points)+len(b.Points))
	pts = append(pts, a.Points...)

	bp := b.Points
	if len(bp) > 0 && bp[0] == a.End() {
		bp = bp[1:]
	}
	pts = append(pts, bp...)

	tol := a.Tolerance
	if b.Tolerance > tol {
		tol = b.Tolerance
	}
	return domain.VectorPath{Points: pts, Tolerance: tol}
}

// Order assigns a drawing order with the greedy nearest-endpoint
// heuristic: starting with the pen at the vector-space origin, always
// pick the unvisited path whose nearer endpoint is closest, orient it
// so that endpoint comes first, and advance the pen to its far end.
// Exact travel minimization is intractable at realistic path counts;
// this heuristic is fixed so output is reproducible.
func Order(paths []domain.VectorPath, snap float64) []domain.PlannedPath {
	out := make([]domain.PlannedPath, 0, len(paths))
	used := make([]bool, len(paths))
	pen := domain.Point{}

	for len(out) < len(paths) {
		bestIdx := -1
		bestDist := 0.0
		bestFlip := false

		for i, p := range paths {
			if used[i] {
				continue
			}

			df := pen.DistSq(p.Start())
			dr := pen.DistSq(p.End())

			d, flip := df, false
			if dr < df {
				d, flip = dr, true
			}
			if bestIdx < 0 || d < bestDist {
				bestIdx = i
				bestDist = d
				bestFlip = flip
			}
		}

		p := paths[bestIdx]
		if bestFlip {
			p = p.Reversed()
		}
		used[bestIdx] = true

		out = append(out, domain.PlannedPath{
			VectorPath: p,
			Closed:     p.Start().Dist(p.End()) <= snap,
			Order:      len(out),
		})
		pen = p.End()
	}

	return out
}
