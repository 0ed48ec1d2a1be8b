//go:build !cgo

package tesseract

import (
	"context"
	"fmt"
	"image"

	"github.com/ironsheep/duplik8/internal/ocr"
)

// Engine is a placeholder; Tesseract needs cgo.
type Engine struct{}

// New always fails in builds without cgo.
func New(cfg Config) (*Engine, error) {
	return nil, fmt.Errorf("%w: tesseract requires a cgo build", ocr.ErrUnavailable)
}

func (e *Engine) Recognize(context.Context, image.Image, ocr.Options) ([]ocr.Page, error) {
	return nil, ocr.ErrUnavailable
}

func (e *Engine) Info() ocr.Info { return ocr.Info{Backend: "tesseract (unavailable)"} }

func (e *Engine) Close() error { return nil }
