//go:build cgo

package tesseract

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/duplik8/internal/ocr"
)

// Engine is one Tesseract handle. It is not safe for concurrent use.
type Engine struct {
	client  *gosseract.Client
	version string
}

// New creates a handle, loads the models and runs a warm-up recognition so
// that model loading happens at startup rather than on the first request.
func New(cfg Config) (*Engine, error) {
	prefix, err := resolveTessdata(cfg.TessdataPrefix, cfg.Language, cfg.AngleCls)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ocr.ErrUnavailable, err)
	}

	client := gosseract.NewClient()
	if prefix != "" {
		if err := client.SetTessdataPrefix(prefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("%w: failed to set tessdata path: %v", ocr.ErrUnavailable, err)
		}
	}
	if err := client.SetLanguage(strings.Split(cfg.Language, "+")...); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to set language: %v", ocr.ErrUnavailable, err)
	}

	e := &Engine{client: client, version: client.Version()}

	blank := imaging.New(32, 32, image.White.C)
	if _, err := e.Recognize(context.Background(), blank, ocr.Options{AngleCls: cfg.AngleCls}); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: warm-up failed: %v", ocr.ErrUnavailable, err)
	}
	return e, nil
}

// Recognize runs Tesseract on img at text-line granularity. With AngleCls the
// page is segmented with orientation and script detection.
func (e *Engine) Recognize(_ context.Context, img image.Image, opts ocr.Options) ([]ocr.Page, error) {
	data, err := ocr.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	mode := gosseract.PSM_AUTO
	if opts.AngleCls {
		mode = gosseract.PSM_AUTO_OSD
	}
	if err := e.client.SetPageSegMode(mode); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	if err := e.client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("failed to get text lines: %w", err)
	}

	return []ocr.Page{toPage(boxes)}, nil
}

func toPage(boxes []gosseract.BoundingBox) ocr.Page {
	page := make(ocr.Page, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		page = append(page, ocr.Line{
			Quad:       ocr.RectQuad(box.Box),
			Text:       text,
			Confidence: box.Confidence / 100.0,
		})
	}
	return page
}

// Info reports the backend and linked Tesseract version.
func (e *Engine) Info() ocr.Info {
	return ocr.Info{Backend: "tesseract (gosseract)", Version: e.version}
}

// Close releases the native handle.
func (e *Engine) Close() error {
	return e.client.Close()
}
