// Package extract turns a canonical raster into pixel curves: binarize,
// thin to a one-pixel skeleton, then trace the skeleton into ordered
// 8-connected walks.
package extract

import "github.com/PhysCorp/MarbleMachine/internal/domain"

// Strokes runs the full feature extraction for one canonical raster.
// Curves shorter than minStroke pixels are discarded as noise specks;
// the second return is how many were dropped. A raster with no ink at
// all yields an empty curve set, which is a valid (blank) drawing, not
// an error.
func Strokes(r domain.Raster, thr domain.ThresholdOptions, minStroke int) ([]domain.PixelCurve, int) {
	mask := Binarize(r, thr)
	skeleton := Thin(mask)
	traced := Trace(skeleton)

	curves := make([]domain.PixelCurve, 0, len(traced))
	specks := 0
	for _, c := range traced {
		if c.Len() < minStroke {
			specks++
			continue
		}
		curves = append(curves, c)
	}
	return curves, specks
}

// Binarize separates ink from background. Ink is dark: a pixel is ink
// when its intensity falls at or below the cutoff.
func Binarize(r domain.Raster, opts domain.ThresholdOptions) domain.Mask {
	if opts.Mode == domain.ThresholdAdaptive {
		return binarizeAdaptive(r, opts.Window, opts.Bias)
	}
	return binarizeGlobal(r, opts.Value)
}

func binarizeGlobal(r domain.Raster, cutoff uint8) domain.Mask {
	m := domain.NewMask(r.Width, r.Height)
	for i, v := range r.Pix {
		m.Bits[i] = v <= cutoff
	}
	return m
}

// binarizeAdaptive thresholds each pixel against the mean of its local
// window minus a bias, which tolerates the uneven lighting of camera
// captures. Uses a summed-area table so the window size does not affect
// cost.
func binarizeAdaptive(r domain.Raster, window, bias int) domain.Mask {
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	half := window / 2

	w, h := r.Width, r.Height

	// integral[y][x] = sum of pixels in [0,x) x [0,y)
	integral := make([]int64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var row int64
		for x := 0; x < w; x++ {
			row += int64(r.At(x, y))
			integral[(y+1)*(w+1)+x+1] = integral[y*(w+1)+x+1] + row
		}
	}

	sum := func(x0, y0, x1, y1 int) int64 { // half-open box
		return integral[y1*(w+1)+x1] - integral[y0*(w+1)+x1] -
			integral[y1*(w+1)+x0] + integral[y0*(w+1)+x0]
	}

	m := domain.NewMask(w, h)
	for y := 0; y < h; y++ {
		y0 := max(0, y-half)
		y1 := min(h, y+half+1)
		for x := 0; x < w; x++ {
			x0 := max(0, x-half)
			x1 := min(w, x+half+1)

			area := int64((x1 - x0) * (y1 - y0))
			mean := sum(x0, y0, x1, y1) / area
			m.Set(x, y, int64(r.At(x, y)) <= mean-int64(bias))
		}
	}
	return m
}

// Thin reduces filled strokes to a one-pixel-wide skeleton using the
// Zhang-Suen iterative thinning scheme, so thick marker lines are traced
// once instead of along both contour sides.
func Thin(m domain.Mask) domain.Mask {
	cur := domain.NewMask(m.Width, m.Height)
	copy(cur.Bits, m.Bits)

	var doomed []domain.Pixel
	for {
		changed := false
		for pass := 0; pass < 2; pass++ {
			doomed = doomed[:0]
			for y := 0; y < cur.Height; y++ {
				for x := 0; x < cur.Width; x++ {
					if cur.At(x, y) && removable(cur, x, y, pass) {
						doomed = append(doomed, domain.Pixel{X: x, Y: y})
					}
				}
			}
			for _, p := range doomed {
				cur.Set(p.X, p.Y, false)
			}
			if len(doomed) > 0 {
				changed = true
			}
		}
		if !changed {
			return cur
		}
	}
}

// removable implements one Zhang-Suen sub-iteration condition for the
// pixel at (x,y). Neighbours P2..P9 run clockwise from north.
func removable(m domain.Mask, x, y, pass int) bool {
	p := [8]bool{
		m.At(x, y-1),   // P2 N
		m.At(x+1, y-1), // P3 NE
		m.At(x+1, y),   // P4 E
		m.At(x+1, y+1), // P5 SE
		m.At(x, y+1),   // P6 S
		m.At(x-1, y+1), // P7 SW
		m.At(x-1, y),   // P8 W
		m.At(x-1, y-1), // P9 NW
	}

	count := 0
	for _, v := range p {
		if v {
			count++
		}
	}
	if count < 2 || count > 6 {
		return false
	}

	transitions := 0
	for i := range p {
		if !p[i] && p[(i+1)%8] {
			transitions++
		}
	}
	if transitions != 1 {
		return false
	}

	n, e, s, w := p[0], p[2], p[4], p[6]
	if pass == 0 {
		return (!n || !e || !s) && (!e || !s || !w)
	}
	return (!n || !e || !w) && (!n || !s || !w)
}

// neighbours8 is the fixed clockwise-from-north scan order used by the
// tracer; changing it changes which of several equivalent walks is
// produced, so it must stay stable.
var neighbours8 = [8]domain.Pixel{
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
}

func degree(m domain.Mask, x, y int) int {
	n := 0
	for _, d := range neighbours8 {
		if m.At(x+d.X, y+d.Y) {
			n++
		}
	}
	return n
}

// Trace walks a skeleton mask into ordered pixel curves. Pixels with
// more than two neighbours are branch points: every curve terminates
// there, and the branch pixel itself is included at the end of each
// incident curve so meeting strokes stay connected. Pure cycles (no
// endpoint, no branch) are emitted as closed walks with the start pixel
// repeated at the end.
func Trace(m domain.Mask) []domain.PixelCurve {
	w, h := m.Width, m.Height
	visited := make([]bool, w*h)

	terminal := func(x, y int) bool {
		d := degree(m, x, y)
		return d != 2
	}

	var curves []domain.PixelCurve

	// Length-2 curves between two adjacent terminals would otherwise be
	// walked once from each side.
	seenPair := make(map[[2]int]bool)
	pairKey := func(a, b domain.Pixel) [2]int {
		ai := a.Y*w + a.X
		bi := b.Y*w + b.X
		if ai > bi {
			ai, bi = bi, ai
		}
		return [2]int{ai, bi}
	}

	// endpoints and branch points first
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !m.At(x, y) || !terminal(x, y) {
				continue
			}
			start := domain.Pixel{X: x, Y: y}

			if degree(m, x, y) == 0 {
				// isolated speck, a one-point curve for the caller to filter
				curves = append(curves, domain.PixelCurve{Points: []domain.Pixel{start}})
				continue
			}

			for _, d := range neighbours8 {
				next := domain.Pixel{X: x + d.X, Y: y + d.Y}
				if !m.At(next.X, next.Y) {
					continue
				}
				if terminal(next.X, next.Y) {
					key := pairKey(start, next)
					if !seenPair[key] {
						seenPair[key] = true
						curves = append(curves, domain.PixelCurve{Points: []domain.Pixel{start, next}})
					}
					continue
				}
				if visited[next.Y*w+next.X] {
					continue // traced from the far end already
				}
				curves = append(curves, walk(m, visited, start, next))
			}
		}
	}

	// leftover unvisited degree-2 pixels are pure cycles
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !m.At(x, y) || visited[y*w+x] || terminal(x, y) {
				continue
			}
			curves = append(curves, walkCycle(m, visited, domain.Pixel{X: x, Y: y}))
		}
	}

	return curves
}

// walk follows regular (two-neighbour) pixels from a terminal until the
// next terminal, consuming interior pixels.
func walk(m domain.Mask, visited []bool, start, first domain.Pixel) domain.PixelCurve {
	pts := []domain.Pixel{start}
	prev := start
	cur := first

	for {
		pts = append(pts, cur)
		if degree(m, cur.X, cur.Y) != 2 {
			return domain.PixelCurve{Points: pts}
		}
		visited[cur.Y*m.Width+cur.X] = true

		advanced := false
		for _, d := range neighbours8 {
			n := domain.Pixel{X: cur.X + d.X, Y: cur.Y + d.Y}
			if n == prev || !m.At(n.X, n.Y) {
				continue
			}
			prev, cur = cur, n
			advanced = true
			break
		}
		if !advanced {
			// dead end that still counted two neighbours cannot occur on a
			// consistent mask; stop rather than loop
			return domain.PixelCurve{Points: pts}
		}
	}
}

// walkCycle follows a closed loop of regular pixels back to its start
// and repeats the start pixel to close the walk.
func walkCycle(m domain.Mask, visited []bool, start domain.Pixel) domain.PixelCurve {
	pts := []domain.Pixel{start}
	visited[start.Y*m.Width+start.X] = true

	prev := start
	cur := start
	for _, d := range neighbours8 {
		n := domain.Pixel{X: start.X + d.X, Y: start.Y + d.Y}
		if m.At(n.X, n.Y) {
			cur = n
			break
		}
	}

	for cur != start {
		pts = append(pts, cur)
		visited[cur.Y*m.Width+cur.X] = true

		moved := false
		for _, d := range neighbours8 {
			n := domain.Pixel{X: cur.X + d.X, Y: cur.Y + d.Y}
			if n == prev || !m.At(n.X, n.Y) {
				continue
			}
			if !visited[n.Y*m.Width+n.X] || n == start {
				prev, cur = cur, n
				moved = true
				break
			}
		}
		if !moved {
			break
		}
	}

	pts = append(pts, start)
	return domain.PixelCurve{Points: pts}
}
