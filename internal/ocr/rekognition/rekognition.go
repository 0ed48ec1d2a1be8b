// Package rekognition provides an ocr.Engine backed by Amazon Rekognition's
// DetectText API.
//
// Rekognition reports polygon coordinates as ratios of the image size; they
// are scaled back to pixels here. It always corrects text orientation
// itself, so the AngleCls option has no effect.
package rekognition

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/duplik8/internal/ocr"
)

// maxImageBytes is the DetectText limit for inline image bytes.
const maxImageBytes = 5 << 20

// DetectTextAPI is the subset of *rekognition.Client the engine uses.
type DetectTextAPI interface {
	DetectText(ctx context.Context, params *rekognition.DetectTextInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error)
}

// Engine calls DetectText once per recognition. The underlying client is
// safe for concurrent use.
type Engine struct {
	api    DetectTextAPI
	region string
}

// New wraps an existing client.
func New(api DetectTextAPI, region string) *Engine {
	return &Engine{api: api, region: region}
}

// NewFromRegion loads the default AWS credential chain for region.
func NewFromRegion(ctx context.Context, region string) (*Engine, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load AWS config: %v", ocr.ErrUnavailable, err)
	}
	return New(rekognition.NewFromConfig(cfg), region), nil
}

// Recognize submits img and returns its LINE detections.
func (e *Engine) Recognize(ctx context.Context, img image.Image, _ ocr.Options) ([]ocr.Page, error) {
	data, err := encode(img)
	if err != nil {
		return nil, err
	}

	out, err := e.api.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: data},
	})
	if err != nil {
		return nil, fmt.Errorf("rekognition DetectText: %w", err)
	}

	b := img.Bounds()
	return []ocr.Page{toPage(out.TextDetections, float64(b.Dx()), float64(b.Dy()))}, nil
}

// encode prefers lossless PNG and falls back to JPEG when PNG exceeds the
// API limit.
func encode(img image.Image) ([]byte, error) {
	data, err := ocr.EncodePNG(img)
	if err != nil {
		return nil, err
	}
	if len(data) <= maxImageBytes {
		return data, nil
	}

	data, err = ocr.Encode(img, imaging.JPEG, imaging.JPEGQuality(90))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, errors.New("image too large for rekognition after JPEG compression")
	}
	return data, nil
}

func toPage(detections []types.TextDetection, width, height float64) ocr.Page {
	page := make(ocr.Page, 0, len(detections))
	for _, d := range detections {
		if d.Type != types.TextTypesLine {
			continue
		}
		text := aws.ToString(d.DetectedText)
		if text == "" {
			continue
		}
		page = append(page, ocr.Line{
			Quad:       quad(d.Geometry, width, height),
			Text:       text,
			Confidence: float64(aws.ToFloat32(d.Confidence)) / 100.0,
		})
	}
	return page
}

// quad uses the polygon when it has exactly four points, otherwise the
// bounding box.
func quad(g *types.Geometry, width, height float64) ocr.Quad {
	var q ocr.Quad
	if g == nil {
		return q
	}
	if len(g.Polygon) == 4 {
		for i, p := range g.Polygon {
			q[i] = ocr.Point{
				float64(aws.ToFloat32(p.X)) * width,
				float64(aws.ToFloat32(p.Y)) * height,
			}
		}
		return q
	}
	if bb := g.BoundingBox; bb != nil {
		x0 := float64(aws.ToFloat32(bb.Left)) * width
		y0 := float64(aws.ToFloat32(bb.Top)) * height
		x1 := x0 + float64(aws.ToFloat32(bb.Width))*width
		y1 := y0 + float64(aws.ToFloat32(bb.Height))*height
		q = ocr.Quad{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	}
	return q
}

// Info reports the backend and region.
func (e *Engine) Info() ocr.Info {
	return ocr.Info{Backend: "aws rekognition", Version: e.region}
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (e *Engine) Close() error { return nil }
