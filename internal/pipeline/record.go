package pipeline

import "image"

// ImageRecord is one collected source image.
type ImageRecord struct {
	// Path is where the source was read from; Name is its final component.
	Path string
	Name string
	// Image is replaced by Resize.
	Image image.Image

	SourceWidth  int
	SourceHeight int
}

// Size returns the current raster dimensions.
func (r *ImageRecord) Size() (int, int) {
	if r.Image == nil {
		return 0, 0
	}
	b := r.Image.Bounds()
	return b.Dx(), b.Dy()
}
