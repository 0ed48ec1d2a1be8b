package ocr

import (
	"context"
	"errors"
	"image"
)

var (
	// ErrEngine wraps any failure reported by an engine during recognition.
	ErrEngine = errors.New("ocr engine failed")

	// ErrUnavailable is returned by engine constructors when the backend
	// cannot be used in this build or environment.
	ErrUnavailable = errors.New("ocr engine unavailable")
)

// Point is an (x, y) coordinate in image pixels.
type Point [2]float64

// Quad is a quadrilateral given as four corners in the order top-left,
// top-right, bottom-right, bottom-left.
type Quad [4]Point

// RectQuad expands an axis-aligned rectangle into a Quad.
func RectQuad(r image.Rectangle) Quad {
	x0, y0 := float64(r.Min.X), float64(r.Min.Y)
	x1, y1 := float64(r.Max.X), float64(r.Max.Y)
	return Quad{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// Line is one recognised text line as an engine reports it.
type Line struct {
	Quad       Quad
	Text       string
	Confidence float64 // 0.0 to 1.0, unrounded
}

// Page groups the lines found in one input image. Engines return one Page
// per image passed in.
type Page []Line

// Options controls a single recognition call.
type Options struct {
	// AngleCls enables text orientation detection before recognition.
	AngleCls bool
}

// Info describes an engine for diagnostics.
type Info struct {
	Backend string `json:"backend"`
	Version string `json:"version,omitempty"`
}

// Engine is an OCR backend. A nil or empty result means no text was found.
//
// An Engine value is not required to be safe for concurrent use; Recognizer
// hands each one to a single caller at a time.
type Engine interface {
	Recognize(ctx context.Context, img image.Image, opts Options) ([]Page, error)
	Info() Info
	Close() error
}
