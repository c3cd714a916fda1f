package domain

// PixelCurve is an ordered 8-connected pixel walk traced from a stroke
// skeleton. Consecutive points are distinct and adjacent (including
// diagonals).
type PixelCurve struct {
	Points []Pixel
}

func (c PixelCurve) Len() int { return len(c.Points) }

// VectorPath is a simplified polyline with the tolerance that produced
// it: no point of the source curve lies farther than Tolerance from the
// polyline.
type VectorPath struct {
	Points    []Point
	Tolerance float64
}

func (p VectorPath) Start() Point { return p.Points[0] }
func (p VectorPath) End() Point   { return p.Points[len(p.Points)-1] }

// Reversed returns a new path with the point order flipped.
func (p VectorPath) Reversed() VectorPath {
	rev := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		rev[len(p.Points)-1-i] = pt
	}
	return VectorPath{Points: rev, Tolerance: p.Tolerance}
}

// PlannedPath is a VectorPath with its assigned visit order and whether
// its endpoints meet within the snap distance.
type PlannedPath struct {
	VectorPath

	Closed bool
	Order  int
}
