package domain

// Raster is a single-channel intensity grid, row-major, x right, y down.
// A stage never mutates a Raster it received; "modifying" stages build a
// new one.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8 // len == Width*Height
}

func NewRaster(w, h int) Raster {
	return Raster{Width: w, Height: h, Pix: make([]uint8, w*h)}
}

func (r Raster) At(x, y int) uint8 {
	return r.Pix[y*r.Width+x]
}

// Empty reports whether the raster has zero area or no pixel data.
func (r Raster) Empty() bool {
	return r.Width <= 0 || r.Height <= 0 || len(r.Pix) < r.Width*r.Height
}

// Mask is a binary ink/background grid with the same layout as its
// source Raster. true = ink.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

func NewMask(w, h int) Mask {
	return Mask{Width: w, Height: h, Bits: make([]bool, w*h)}
}

// At reads a mask cell; coordinates outside the grid read as background,
// which keeps neighbourhood scans free of border special cases.
func (m Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x]
}

func (m Mask) Set(x, y int, v bool) {
	m.Bits[y*m.Width+x] = v
}

// Quad holds the four image-space corners of the physical drawing
// surface as seen by the camera, clockwise from top-left.
type Quad [4]Point
