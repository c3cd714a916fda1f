// Package imagefile decodes source images from the filesystem into
// single-channel rasters.
package imagefile

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	// registered decoders: the rig accepts PNG, JPEG, GIF and BMP
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
	"github.com/PhysCorp/MarbleMachine/internal/ports"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.ImageSource = (*Loader)(nil)

// Load decodes the image at path and converts it to a luminance raster.
func (l *Loader) Load(path string) (domain.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Raster{}, &domain.OpError{
			Op:   "imagefile.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return domain.Raster{}, &domain.OpError{
			Op:   "imagefile.load",
			Kind: domain.KindInput,
			Path: path,
			Err:  fmt.Errorf("decode: %w", err),
		}
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return domain.Raster{}, &domain.OpError{
			Op:   "imagefile.load",
			Kind: domain.KindInput,
			Path: path,
			Err:  fmt.Errorf("%s image has zero area", format),
		}
	}

	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)

	return domain.Raster{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    gray.Pix,
	}, nil
}
