package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes img losslessly for engines that take encoded bytes
// rather than pixels.
func EncodePNG(img image.Image) ([]byte, error) {
	return Encode(img, imaging.PNG)
}

// Encode encodes img in the given format.
func Encode(img image.Image, format imaging.Format, opts ...imaging.EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
