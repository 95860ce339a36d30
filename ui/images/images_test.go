package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestScaleToFit_KeepsSmallImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	if got := ScaleToFit(src, 400, 400); got != image.Image(src) {
		t.Fatalf("expected original image to be returned")
	}
}

func TestScaleToFit_PreservesAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1600, 900))
	got := ScaleToFit(src, 400, 400)
	b := got.Bounds()
	if b.Dx() != 400 || b.Dy() != 225 {
		t.Fatalf("expected 400x225, got %dx%d", b.Dx(), b.Dy())
	}
	tall := ScaleToFit(image.NewRGBA(image.Rect(0, 0, 300, 1200)), 400, 400)
	if tall.Bounds().Dy() != 400 || tall.Bounds().Dx() != 100 {
		t.Fatalf("expected 100x400, got %v", tall.Bounds())
	}
}

func TestEncodePNG_Decodes(t *testing.T) {
	data := EncodePNG(Placeholder(12, 7))
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 7 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image must encode to nil")
	}
}

func TestOutlineRect_DrawsBorderOnly(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 20))
	red := color.RGBA{R: 255, A: 255}
	out := OutlineRect(src, image.Rect(5, 5, 15, 15), red, 1)

	if out.RGBAAt(5, 5) != red || out.RGBAAt(14, 14) != red || out.RGBAAt(10, 5) != red {
		t.Fatalf("border pixels not drawn")
	}
	if out.RGBAAt(10, 10) != (color.RGBA{}) {
		t.Fatalf("interior must stay untouched, got %v", out.RGBAAt(10, 10))
	}
	if out.RGBAAt(4, 4) != (color.RGBA{}) || out.RGBAAt(15, 15) != (color.RGBA{}) {
		t.Fatalf("outside pixels must stay untouched")
	}
	if src.RGBAAt(5, 5) != (color.RGBA{}) {
		t.Fatalf("source must not be modified")
	}
}

func TestOutlineRect_ClipsToImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	out := OutlineRect(src, image.Rect(-5, -5, 50, 50), color.White, 2)
	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	if out.RGBAAt(0, 0) != (color.RGBA{255, 255, 255, 255}) || out.RGBAAt(9, 9) != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("clipped border not drawn at the image edge")
	}
	if out.RGBAAt(5, 5) != (color.RGBA{}) {
		t.Fatalf("interior must stay untouched")
	}
	if OutlineRect(nil, image.Rect(0, 0, 1, 1), color.White, 1) != nil {
		t.Fatalf("nil source must give nil")
	}
}
