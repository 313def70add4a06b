package imagecodec

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Codec is the image library contract the pipeline depends on.
type Codec interface {
	Decode(r io.Reader) (image.Image, error)
	Resize(img image.Image, width, height int) (image.Image, error)
	Encode(w io.Writer, img image.Image) error
}

// Filter names a resampling kernel.
type Filter string

const (
	FilterNearest        Filter = "nearest"
	FilterApproxBiLinear Filter = "approx-bilinear"
	FilterBiLinear       Filter = "bilinear"
	FilterCatmullRom     Filter = "catmullrom"
	FilterLanczos        Filter = "lanczos"
)

// Compression names a PNG compression level.
type Compression string

const (
	CompressionDefault Compression = "default"
	CompressionNone    Compression = "none"
	CompressionSpeed   Compression = "speed"
	CompressionBest    Compression = "best"
)

// Filters lists every accepted filter name in display order.
func Filters() []Filter {
	return []Filter{FilterNearest, FilterApproxBiLinear, FilterBiLinear, FilterCatmullRom, FilterLanczos}
}

// Compressions lists every accepted compression name in display order.
func Compressions() []Compression {
	return []Compression{CompressionDefault, CompressionNone, CompressionSpeed, CompressionBest}
}

// ParseFilter resolves a filter name case-insensitively.
func ParseFilter(name string) (Filter, error) {
	candidate := Filter(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range Filters() {
		if f == candidate {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown resize filter %q", name)
}

// ParseCompression resolves a compression name case-insensitively.
func ParseCompression(name string) (Compression, error) {
	candidate := Compression(strings.ToLower(strings.TrimSpace(name)))
	for _, c := range Compressions() {
		if c == candidate {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown png compression %q", name)
}

// PNG is the production Codec.
type PNG struct {
	Filter      Filter
	Compression Compression
}

var _ Codec = PNG{}

// New returns a PNG codec after validating both names.
func New(filter, compression string) (PNG, error) {
	f, err := ParseFilter(filter)
	if err != nil {
		return PNG{}, err
	}
	c, err := ParseCompression(compression)
	if err != nil {
		return PNG{}, err
	}
	return PNG{Filter: f, Compression: c}, nil
}

func (c PNG) Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}

func (c PNG) Resize(img image.Image, width, height int) (image.Image, error) {
	if img == nil {
		return nil, errors.New("resize: nil raster")
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("resize: negative target %dx%d", width, height)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 || img.Bounds().Empty() {
		return dst, nil
	}
	if c.Filter == FilterLanczos {
		return imaging.Resize(img, width, height, imaging.Lanczos), nil
	}
	c.interpolator().Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

func (c PNG) interpolator() draw.Interpolator {
	switch c.Filter {
	case FilterNearest:
		return draw.NearestNeighbor
	case FilterApproxBiLinear:
		return draw.ApproxBiLinear
	case FilterBiLinear:
		return draw.BiLinear
	default:
		return draw.CatmullRom
	}
}

func (c PNG) Encode(w io.Writer, img image.Image) error {
	if img == nil {
		return errors.New("encode png: nil raster")
	}
	b := img.Bounds()
	if b.Empty() {
		return writeEmptyPNG(w, b.Dx(), b.Dy())
	}
	if err := imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(c.level())); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (c PNG) level() png.CompressionLevel {
	switch c.Compression {
	case CompressionNone:
		return png.NoCompression
	case CompressionSpeed:
		return png.BestSpeed
	case CompressionBest:
		return png.BestCompression
	default:
		return png.DefaultCompression
	}
}
