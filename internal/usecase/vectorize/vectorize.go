// Package vectorize simplifies traced pixel curves into tolerance-bounded
// polylines.
package vectorize

import (
	"math"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
)

// Simplify reduces a pixel curve to a vector path whose polyline stays
// within tolerance of every source point (Ramer-Douglas-Peucker). The
// result keeps at least the two endpoints; a curve with fewer than two
// points cannot form a path and yields ok=false for the caller to count
// as a discarded degenerate.
func Simplify(curve domain.PixelCurve, tolerance float64) (domain.VectorPath, bool) {
	if curve.Len() < 2 {
		return domain.VectorPath{}, false
	}
	if tolerance < 0 {
		tolerance = 0
	}

	pts := make([]domain.Point, curve.Len())
	for i, px := range curve.Points {
		pts[i] = px.Point()
	}

	keep := make([]bool, len(pts))
	keep[0] = true
	keep[len(pts)-1] = true
	mark(pts, 0, len(pts)-1, tolerance, keep)

	out := make([]domain.Point, 0, len(pts))
	for i, p := range pts {
		if !keep[i] {
			continue
		}
		// the closing point of a cycle walk equals its start and may
		// survive; interior duplicates cannot
		if len(out) > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}

	if len(out) < 2 {
		// fully collinear-collapsed closed walks keep their far extreme
		return domain.VectorPath{}, false
	}

	return domain.VectorPath{Points: out, Tolerance: tolerance}, true
}

// SimplifyAll maps Simplify over a curve set, preserving order. The
// second return counts degenerate curves that were dropped.
func SimplifyAll(curves []domain.PixelCurve, tolerance float64) ([]domain.VectorPath, int) {
	paths := make([]domain.VectorPath, 0, len(curves))
	dropped := 0
	for _, c := range curves {
		p, ok := Simplify(c, tolerance)
		if !ok {
			dropped++
			continue
		}
		paths = append(paths, p)
	}
	return paths, dropped
}

// mark keeps the interior point of maximum chord deviation on [lo,hi]
// and recurses on both halves while the deviation exceeds the tolerance.
func mark(pts []domain.Point, lo, hi int, tolerance float64, keep []bool) {
	if hi-lo < 2 {
		return
	}

	maxDist := -1.0
	maxIdx := -1
	for i := lo + 1; i < hi; i++ {
		d := perpDist(pts[i], pts[lo], pts[hi])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= tolerance {
		return
	}

	keep[maxIdx] = true
	mark(pts, lo, maxIdx, tolerance, keep)
	mark(pts, maxIdx, hi, tolerance, keep)
}

// perpDist is the perpendicular distance from p to the chord a-b, or the
// distance to a when the chord is a single point (closed-walk chords).
func perpDist(p, a, b domain.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y

	length := math.Hypot(dx, dy)
	if length == 0 {
		return p.Dist(a)
	}
	return math.Abs(dx*(a.Y-p.Y)-dy*(a.X-p.X)) / length
}
