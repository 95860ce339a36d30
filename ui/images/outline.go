package images

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// OutlineColor marks the selected region on previews.
	OutlineColor = colorful.Color{R: 0.90, G: 0.22, B: 0.21}
	// PlaceholderColor fills empty previews.
	PlaceholderColor = colorful.Color{R: 0.82, G: 0.84, B: 0.87}
)

// OutlineRect returns a copy of src with a border of the given thickness drawn
// along r. r is in src coordinates and is clipped to the image.
func OutlineRect(src image.Image, r image.Rectangle, c color.Color, thickness int) *image.RGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	r = r.Canon().Intersect(b)
	if r.Empty() {
		return dst
	}
	if thickness < 1 {
		thickness = 1
	}
	fill := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness),
		image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y),
		image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), fill, image.Point{}, draw.Over)
	}
	return dst
}
