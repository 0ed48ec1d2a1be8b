package ocr

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/duplik8/internal/imaging"
)

// Detection is one recognised text line in the service's output shape.
type Detection struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Box        Quad    `json:"box"`
}

// RecognizerConfig holds settings applied to every call.
type RecognizerConfig struct {
	// AngleCls is passed to the engine on each call.
	AngleCls bool

	// Grayscale converts the image to boosted-contrast grayscale before
	// recognition. Dimensions are preserved, so boxes stay valid.
	Grayscale bool
}

// Recognizer is the single shared entry point to OCR. It owns a fixed pool of
// engine handles created at startup; each call borrows one handle
// exclusively, so engines that are not thread-safe are never used
// concurrently. The pool size bounds the number of recognitions in flight.
type Recognizer struct {
	engines []Engine
	pool    chan Engine
	cfg     RecognizerConfig
}

// NewRecognizer builds a recognizer over the given engine handles. All
// handles must use the same backend. The recognizer takes ownership and
// closes them in Close.
func NewRecognizer(engines []Engine, cfg RecognizerConfig) (*Recognizer, error) {
	if len(engines) == 0 {
		return nil, errors.New("at least one engine is required")
	}
	pool := make(chan Engine, len(engines))
	for _, e := range engines {
		pool <- e
	}
	return &Recognizer{
		engines: engines,
		pool:    pool,
		cfg:     cfg,
	}, nil
}

// Workers is the number of engine handles in the pool.
func (r *Recognizer) Workers() int { return len(r.engines) }

// Info describes the backend.
func (r *Recognizer) Info() Info { return r.engines[0].Info() }

// Recognize runs OCR once on raster and returns one Detection per text line,
// in the engine's order. No text yields an empty, non-nil slice.
//
// The call blocks until a handle is free and the engine returns. ctx only
// aborts the wait for a handle; a started recognition runs to completion.
func (r *Recognizer) Recognize(ctx context.Context, raster *imaging.Raster) ([]Detection, error) {
	img := raster.Image()
	if r.cfg.Grayscale {
		img = enhance(img)
	}

	var engine Engine
	select {
	case engine = <-r.pool:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for ocr engine: %w", ctx.Err())
	}
	defer func() { r.pool <- engine }()

	pages, err := engine.Recognize(ctx, img, Options{AngleCls: r.cfg.AngleCls})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	return toDetections(pages), nil
}

// Close releases every engine handle.
func (r *Recognizer) Close() error {
	var errs []error
	for _, e := range r.engines {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// toDetections flattens the first page. Only one image is ever submitted per
// call, so further pages are not expected.
func toDetections(pages []Page) []Detection {
	out := make([]Detection, 0)
	if len(pages) == 0 {
		return out
	}
	for _, line := range pages[0] {
		out = append(out, Detection{
			Text:       line.Text,
			Confidence: roundConfidence(line.Confidence),
			Box:        line.Quad,
		})
	}
	return out
}

// roundConfidence clamps c to [0, 1] and rounds it to 4 decimal places.
func roundConfidence(c float64) float64 {
	switch {
	case math.IsNaN(c), c < 0:
		return 0
	case c > 1:
		return 1
	}
	return math.Round(c*1e4) / 1e4
}
