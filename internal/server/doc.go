// Package server implements the HTTP surface of the OCR service.
//
// # Endpoints
//
//   - GET /: liveness and readiness probe, never authenticated
//   - POST /analyze: download an image by URL and return its text lines
//
// # Request Flow
//
// POST /analyze runs, in order and stopping at the first failure:
//
//  1. Credential gate (route middleware; only active when a secret is set)
//  2. Body binding and URL validation
//  3. Download (fetch.Fetcher)
//  4. Decode (imaging.Decoder)
//  5. Recognition (ocr.Recognizer)
//
// A request either succeeds as a whole, possibly with zero detections, or
// fails as a whole; detections are never returned alongside an error.
//
// # Error Responses
//
// Every failure body is {"detail": "<message>"}. Component errors are
// translated to statuses in one place (classify):
//
//   - 400: download failed, or the content is not an image
//   - 401: credentials missing or wrong, with a WWW-Authenticate: Basic challenge
//   - 422: invalid request body, or an unexpected decode-stage fault
//   - 500: OCR engine failure or a recovered panic; no internals are exposed
//
// # Shared State
//
// The server holds only collaborators built at startup: the gate, the
// fetcher, the decoder and the recognizer. Requests share nothing else.
package server
