package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Raster is a decoded, fully opaque image. Pixel data is stored as NRGBA with
// alpha fixed at 255, so it carries three colour channels of information.
//
// A Raster is never modified after Decode returns it.
type Raster struct {
	img    *image.NRGBA
	format string
}

// NewRaster flattens img over background and wraps the result. Decode builds
// every Raster through it; callers that already hold a decoded image can too.
func NewRaster(img image.Image, background color.Color) *Raster {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), background)
	return &Raster{
		img:    imaging.Overlay(bg, img, image.Pt(0, 0), 1.0),
		format: "memory",
	}
}

// Image returns the underlying image. Callers must not modify it.
func (r *Raster) Image() image.Image { return r.img }

// Width is the image width in pixels.
func (r *Raster) Width() int { return r.img.Bounds().Dx() }

// Height is the image height in pixels.
func (r *Raster) Height() int { return r.img.Bounds().Dy() }

// Channels is always 3.
func (r *Raster) Channels() int { return 3 }

// Format is the name of the codec that decoded the image ("png", "jpeg", ...).
func (r *Raster) Format() string { return r.format }
