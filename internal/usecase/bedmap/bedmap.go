// Package bedmap converts planned paths from canonical vector space into
// physical bed coordinates.
package bedmap

import (
	"fmt"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
)

// Map scales the drawing uniformly so its bounding box fits the bed
// inside the configured margin, offsets it to the margin corner, and
// flips the vertical axis when the bed origin is bottom-left (vector
// space is top-left, y-down). Every output coordinate lands inside
// [0, Width] x [0, Height] by construction.
func Map(paths []domain.PlannedPath, bed domain.BedConfig) ([]domain.PlannedPath, error) {
	usableW := bed.Width - 2*bed.Margin
	usableH := bed.Height - 2*bed.Margin
	if usableW <= 0 || usableH <= 0 {
		return nil, &domain.OpError{
			Op:   "bedmap",
			Kind: domain.KindOutOfBounds,
			Err: fmt.Errorf("bed %gx%g with margin %g leaves no drawable area",
				bed.Width, bed.Height, bed.Margin),
		}
	}

	if len(paths) == 0 {
		return []domain.PlannedPath{}, nil
	}

	box, ok := domain.BoundsOf(paths)
	if !ok {
		return []domain.PlannedPath{}, nil
	}

	// uniform aspect-preserving scale; a degenerate axis (straight
	// horizontal or vertical drawing) defers to the other one
	scale := fitScale(box.Width(), box.Height(), usableW, usableH)

	out := make([]domain.PlannedPath, len(paths))
	for i, pp := range paths {
		pts := make([]domain.Point, len(pp.Points))
		for j, p := range pp.Points {
			x := (p.X-box.MinX)*scale + bed.Margin
			y := (p.Y-box.MinY)*scale + bed.Margin
			if bed.Origin == domain.OriginBottomLeft {
				y = bed.Height - y
			}
			pts[j] = domain.Point{X: x, Y: y}
		}
		out[i] = domain.PlannedPath{
			VectorPath: domain.VectorPath{Points: pts, Tolerance: pp.Tolerance * scale},
			Closed:     pp.Closed,
			Order:      pp.Order,
		}
	}
	return out, nil
}

func fitScale(w, h, usableW, usableH float64) float64 {
	sx := 0.0
	if w > 0 {
		sx = usableW / w
	}
	sy := 0.0
	if h > 0 {
		sy = usableH / h
	}

	switch {
	case sx == 0 && sy == 0:
		return 1 // single-point bounding box, position only
	case sx == 0:
		return sy
	case sy == 0:
		return sx
	case sx < sy:
		return sx
	default:
		return sy
	}
}
