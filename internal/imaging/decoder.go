package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

var (
	// ErrInvalidImage means the bytes do not hold a decodable raster image.
	ErrInvalidImage = errors.New("not a valid image file")

	// ErrProcessing means decoding failed for a reason other than the content
	// not being an image.
	ErrProcessing = errors.New("image processing failed")
)

// DefaultMaxPixels caps width*height of a decoded image at 64 MiP. A decoded
// image costs 4 bytes per pixel, so the cap bounds one raster at 256 MiB
// however well the download compressed.
const DefaultMaxPixels = 64 << 20

// Decoder converts downloaded bytes into a 3-channel Raster.
//
// Decoder holds no mutable state and is safe for concurrent use.
type Decoder struct {
	background color.NRGBA
	maxPixels  int
}

// NewDecoder creates a decoder that composites transparent pixels over the
// given background, written as "#rrggbb". A non-positive maxPixels selects
// DefaultMaxPixels.
func NewDecoder(background string, maxPixels int) (*Decoder, error) {
	c, err := colorful.Hex(background)
	if err != nil {
		return nil, fmt.Errorf("invalid background colour %q: %w", background, err)
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	r, g, b := c.RGB255()
	return &Decoder{
		background: color.NRGBA{R: r, G: g, B: b, A: 255},
		maxPixels:  maxPixels,
	}, nil
}

// Decode parses data as PNG, JPEG, GIF, BMP, TIFF or WebP, applies the EXIF
// orientation tag, and flattens any alpha channel.
//
// # Errors
//
//   - ErrInvalidImage: unknown format, corrupt or truncated data, zero size
//   - ErrProcessing: empty input, oversized image, or a codec panic
func (d *Decoder) Decode(data []byte) (raster *Raster, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrProcessing)
	}

	defer func() {
		if r := recover(); r != nil {
			raster = nil
			err = fmt.Errorf("%w: %v", ErrProcessing, r)
		}
	}()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidImage)
	}
	if cfg.Width*cfg.Height > d.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds the %d pixel limit",
			ErrProcessing, cfg.Width, cfg.Height, d.maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	raster = NewRaster(img, d.background)
	raster.format = format
	return raster, nil
}
