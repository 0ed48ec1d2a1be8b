// Package ocr is the boundary between the service and its OCR backends.
//
// Backends implement Engine and report results in a backend-neutral shape:
// one Page per input image, each holding Lines with a quadrilateral, the text
// and a confidence between 0 and 1. Recognizer maps that shape onto the
// Detection type the service returns, so nothing outside this package depends
// on a particular backend's representation.
//
// # Backends
//
//   - tesseract: local Tesseract through gosseract/v2 (cgo)
//   - rekognition: Amazon Rekognition DetectText
//
// # Concurrency
//
// Engine handles are not assumed to be thread-safe. Recognizer owns a fixed
// pool of handles created at startup and lends each to one request at a
// time; requests beyond the pool size wait for a free handle. The pool is
// never resized and handles are never recreated.
//
// # Result Normalisation
//
//   - An engine returning nil, no pages, or an empty page yields zero
//     detections, not an error
//   - Only the first page is read; exactly one image is sent per call
//   - Confidence is clamped to [0, 1] and rounded to 4 decimal places
//   - Boxes are passed through as produced by the engine
//
// # Error Handling
//
// Engine failures are wrapped in ErrEngine. Constructors that cannot set up a
// backend return ErrUnavailable.
package ocr
