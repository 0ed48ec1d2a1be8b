package ocr

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
)

// contrastBoost is the relative contrast change applied after grayscale
// conversion.
const contrastBoost = 0.3

// enhance converts img to grayscale and raises its contrast. The output has
// the same bounds as the input.
func enhance(img image.Image) image.Image {
	return adjust.Contrast(effect.Grayscale(img), contrastBoost)
}
