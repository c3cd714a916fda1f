package domain

import "math"

// Point is a real-valued 2D coordinate.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance to q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// DistSq avoids the square root for comparisons.
func (p Point) DistSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Cross returns the z component of (q-p) x (r-p), twice the signed area
// of the triangle p,q,r.
func Cross(p, q, r Point) float64 {
	return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
}

// Pixel is an integer raster coordinate, x right, y down.
type Pixel struct {
	X int
	Y int
}

func (px Pixel) Point() Point {
	return Point{X: float64(px.X), Y: float64(px.Y)}
}

// Bounds is an axis-aligned bounding box. Valid only if Min <= Max on
// both axes.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

func (b Bounds) Extend(p Point) Bounds {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
	return b
}

// BoundsOf computes the bounding box of all points in the given paths.
// The second return is false when there are no points at all.
func BoundsOf(paths []PlannedPath) (Bounds, bool) {
	found := false
	var b Bounds
	for _, pp := range paths {
		for _, p := range pp.Points {
			if !found {
				b = Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
				found = true
				continue
			}
			b = b.Extend(p)
		}
	}
	return b, found
}
