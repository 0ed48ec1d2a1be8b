//go:build cgo

package tesseract

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/duplik8/internal/ocr"
)

// renderText draws text in basicfont and scales it up so Tesseract can read it.
func renderText(text string, scale int) *image.RGBA {
	small := image.NewRGBA(image.Rect(0, 0, len(text)*7+40, 40))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(20), Y: fixed.I(25)},
	}
	d.DrawString(text)

	b := small.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			img.Set(x, y, small.At(x/scale, y/scale))
		}
	}
	return img
}

func newEngine(t *testing.T, angleCls bool) *Engine {
	t.Helper()
	e, err := New(Config{Language: "eng", AngleCls: angleCls})
	if err != nil {
		if errors.Is(err, ocr.ErrUnavailable) {
			t.Skipf("Tesseract not available: %v", err)
		}
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func TestEngine_Info(t *testing.T) {
	e := newEngine(t, false)
	info := e.Info()
	if info.Backend == "" {
		t.Error("Info.Backend should not be empty")
	}
	t.Logf("Tesseract version: %s", info.Version)
}

func TestEngine_BlankImage(t *testing.T) {
	e := newEngine(t, false)

	blank := image.NewRGBA(image.Rect(0, 0, 200, 100))
	draw.Draw(blank, blank.Bounds(), image.White, image.Point{}, draw.Src)

	pages, err := e.Recognize(context.Background(), blank, ocr.Options{})
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("pages: got %d, want 1", len(pages))
	}
	if len(pages[0]) != 0 {
		t.Errorf("blank image produced %d lines", len(pages[0]))
	}
}

func TestEngine_RenderedText(t *testing.T) {
	for _, angleCls := range []bool{false, true} {
		e := newEngine(t, angleCls)

		img := renderText("HELLO WORLD", 4)
		pages, err := e.Recognize(context.Background(), img, ocr.Options{AngleCls: angleCls})
		if err != nil {
			t.Fatalf("Recognize failed: %v", err)
		}
		if len(pages) != 1 {
			t.Fatalf("pages: got %d, want 1", len(pages))
		}

		for i, line := range pages[0] {
			t.Logf("line %d: %q (confidence %.4f) box %v", i, line.Text, line.Confidence, line.Quad)
			if line.Confidence < 0 || line.Confidence > 1 {
				t.Errorf("confidence %f out of range", line.Confidence)
			}
			q := line.Quad
			if q[0][0] > q[1][0] || q[0][1] > q[3][1] {
				t.Errorf("quad corners out of order: %v", q)
			}
			if strings.TrimSpace(line.Text) != line.Text {
				t.Errorf("text not trimmed: %q", line.Text)
			}
		}
	}
}
