// Package tesseract provides an ocr.Engine backed by Tesseract through
// gosseract/v2.
//
// # Prerequisites
//
// The engine needs a cgo build and the Tesseract and Leptonica libraries:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Orientation detection (angle classification) additionally needs
// osd.traineddata (tesseract-ocr-osd on Debian).
//
// # Model Location
//
// Config.TessdataPrefix points at a directory of *.traineddata files. When it
// is set, New verifies that every requested language model is present before
// touching the library. When it is empty, Tesseract's compiled-in search path
// (or the TESSDATA_PREFIX environment variable) applies.
//
// # Granularity
//
// Results are reported per text line (RIL_TEXTLINE). Tesseract produces
// axis-aligned rectangles; they are returned as quadrilaterals with corners
// ordered top-left, top-right, bottom-right, bottom-left.
package tesseract

// Config configures one engine handle.
type Config struct {
	Language       string
	TessdataPrefix string
	AngleCls       bool
}
