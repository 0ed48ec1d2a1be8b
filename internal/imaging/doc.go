// Package imaging turns downloaded bytes into pixel data the OCR engines can
// consume.
//
// Decoding is delegated to github.com/disintegration/imaging, which handles
// EXIF orientation, with the standard library codecs plus BMP, TIFF and WebP
// from golang.org/x/image registered.
//
// # Output Shape
//
// Every decoded image is flattened over a configurable background colour, so
// a Raster always has three meaningful colour channels regardless of the
// source format. RGB exposes the pixels as a Height x Width x 3 buffer.
//
// # Error Handling
//
// Decode distinguishes two failure classes:
//   - ErrInvalidImage: the bytes are not a raster image this package can read
//     (unknown format, corrupt or truncated data, zero dimensions)
//   - ErrProcessing: decoding could not proceed for another reason (empty
//     buffer, image beyond the pixel limit, a panic inside a codec)
//
// Callers translate these into client-facing statuses; this package has no
// knowledge of HTTP.
//
// # Thread Safety
//
// Decoder and Raster are immutable after construction and safe for
// concurrent use.
package imaging
