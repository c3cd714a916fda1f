package ports

import "github.com/PhysCorp/MarbleMachine/internal/domain"

// ImageSource decodes a source image into a single-channel raster
// (e.g., from the filesystem).
type ImageSource interface {
	Load(path string) (domain.Raster, error)
}
