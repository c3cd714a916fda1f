package rectify

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
)

// background fills canonical pixels whose inverse mapping lands outside
// the source raster. The rig draws dark ink on a light surface.
const background uint8 = 0xff

// minQuadArea rejects quads too small to carry a drawing (in source
// pixel units, shoelace area).
const minQuadArea = 1.0

// Rectify produces the canonical top-down size x size raster for one
// capture. With a calibration quad it estimates the square-to-quad
// homography and resamples the source through it with bilinear
// interpolation; with quad == nil the source is treated as already flat
// and is only rescaled to the canonical square.
func Rectify(src domain.Raster, quad *domain.Quad, size int) (domain.Raster, error) {
	if src.Empty() {
		return domain.Raster{}, &domain.OpError{
			Op:   "rectify",
			Kind: domain.KindInput,
			Err:  fmt.Errorf("source raster is empty (%dx%d)", src.Width, src.Height),
		}
	}
	if size < 2 {
		return domain.Raster{}, &domain.OpError{
			Op:   "rectify",
			Kind: domain.KindInput,
			Err:  fmt.Errorf("canvas size %d is too small", size),
		}
	}

	if quad == nil {
		return passthrough(src, size), nil
	}

	if err := validateQuad(*quad); err != nil {
		return domain.Raster{}, &domain.OpError{
			Op:   "rectify.calibrate",
			Kind: domain.KindCalibration,
			Err:  err,
		}
	}

	h, err := solveSquareToQuad(*quad)
	if err != nil {
		return domain.Raster{}, &domain.OpError{
			Op:   "rectify.calibrate",
			Kind: domain.KindCalibration,
			Err:  err,
		}
	}

	return warp(src, h, size), nil
}

// passthrough rescales an already-flat raster to the canonical square.
func passthrough(src domain.Raster, size int) domain.Raster {
	if src.Width == size && src.Height == size {
		out := domain.NewRaster(size, size)
		copy(out.Pix, src.Pix[:size*size])
		return out
	}

	in := &image.Gray{
		Pix:    src.Pix,
		Stride: src.Width,
		Rect:   image.Rect(0, 0, src.Width, src.Height),
	}
	scaled := image.NewGray(image.Rect(0, 0, size, size))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), in, in.Bounds(), xdraw.Src, nil)

	return domain.Raster{Width: size, Height: size, Pix: scaled.Pix}
}

// homography maps unit-square coordinates (u,v) into source pixel space:
// [x', y', w'] = H [u, v, 1], src = (x'/w', y'/w').
type homography struct {
	a, b, c float64
	d, e, f float64
	g, h    float64
}

func (m homography) apply(u, v float64) (float64, float64) {
	w := m.g*u + m.h*v + 1
	return (m.a*u + m.b*v + m.c) / w, (m.d*u + m.e*v + m.f) / w
}

// solveSquareToQuad is the closed-form four-point projective solve
// (Heckbert's square-to-quad construction). Quad corners are clockwise
// from top-left: (0,0)→q0, (1,0)→q1, (1,1)→q2, (0,1)→q3.
func solveSquareToQuad(q domain.Quad) (homography, error) {
	sx := q[0].X - q[1].X + q[2].X - q[3].X
	sy := q[0].Y - q[1].Y + q[2].Y - q[3].Y

	if sx == 0 && sy == 0 {
		// parallelogram: affine case
		return homography{
			a: q[1].X - q[0].X, b: q[3].X - q[0].X, c: q[0].X,
			d: q[1].Y - q[0].Y, e: q[3].Y - q[0].Y, f: q[0].Y,
		}, nil
	}

	dx1 := q[1].X - q[2].X
	dy1 := q[1].Y - q[2].Y
	dx2 := q[3].X - q[2].X
	dy2 := q[3].Y - q[2].Y

	den := dx1*dy2 - dy1*dx2
	if den == 0 {
		return homography{}, fmt.Errorf("calibration quad is degenerate")
	}

	g := (sx*dy2 - sy*dx2) / den
	h := (dx1*sy - dy1*sx) / den

	return homography{
		a: q[1].X - q[0].X + g*q[1].X,
		b: q[3].X - q[0].X + h*q[3].X,
		c: q[0].X,
		d: q[1].Y - q[0].Y + g*q[1].Y,
		e: q[3].Y - q[0].Y + h*q[3].Y,
		f: q[0].Y,
		g: g,
		h: h,
	}, nil
}

// validateQuad rejects degenerate and self-intersecting quads. A valid
// camera view of a rectangular surface is strictly convex with the
// declared winding, so every corner turn must have the same positive
// orientation.
func validateQuad(q domain.Quad) error {
	for i := range q {
		cross := domain.Cross(q[i], q[(i+1)%4], q[(i+2)%4])
		if cross <= 0 {
			return fmt.Errorf("calibration quad is not convex clockwise from top-left (corner %d)", (i+1)%4)
		}
	}

	// shoelace, positive for the declared winding in y-down coordinates
	area := 0.0
	for i := range q {
		j := (i + 1) % 4
		area += q[i].X*q[j].Y - q[j].X*q[i].Y
	}
	area /= 2
	if area < minQuadArea {
		return fmt.Errorf("calibration quad area %.3f is below minimum %.1f", area, minQuadArea)
	}
	return nil
}

// warp resamples src through the homography into the canonical square.
func warp(src domain.Raster, h homography, size int) domain.Raster {
	out := domain.NewRaster(size, size)
	den := float64(size - 1)

	for oy := 0; oy < size; oy++ {
		v := float64(oy) / den
		for ox := 0; ox < size; ox++ {
			u := float64(ox) / den
			sx, sy := h.apply(u, v)
			out.Pix[oy*size+ox] = sample(src, sx, sy)
		}
	}
	return out
}

// sample bilinearly interpolates src at (x,y); coordinates outside the
// raster read as background.
func sample(src domain.Raster, x, y float64) uint8 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	p00 := texel(src, x0, y0)
	p10 := texel(src, x0+1, y0)
	p01 := texel(src, x0, y0+1)
	p11 := texel(src, x0+1, y0+1)

	top := p00*(1-fx) + p10*fx
	bot := p01*(1-fx) + p11*fx
	val := top*(1-fy) + bot*fy

	return uint8(math.Round(val))
}

func texel(src domain.Raster, x, y int) float64 {
	if x < 0 || y < 0 || x >= src.Width || y >= src.Height {
		return float64(background)
	}
	return float64(src.At(x, y))
}
