package region

import (
	"image"
	"math"
)

// PreviewScale returns the downscale factor fitting a w x h image into maxW x maxH.
// It never upscales.
func PreviewScale(w, h, maxW, maxH int) float64 {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 1.0
	}
	return math.Min(math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h)), 1.0)
}

// PreviewSize returns the dimensions of a w x h image drawn at scale (at least 1x1).
func PreviewSize(w, h int, scale float64) (int, int) {
	pw := int(math.Round(float64(w) * scale))
	ph := int(math.Round(float64(h) * scale))
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	return pw, ph
}

// ToOriginal maps a rectangle drawn on a preview at scale back to original coordinates.
func ToOriginal(r image.Rectangle, scale float64) ROI {
	r = r.Canon()
	if scale <= 0 {
		scale = 1.0
	}
	back := func(v int) int { return int(math.Round(float64(v) / scale)) }
	return ROI{
		X:      back(r.Min.X),
		Y:      back(r.Min.Y),
		Width:  back(r.Dx()),
		Height: back(r.Dy()),
	}
}

// ToPreview maps an original-space ROI onto a preview drawn at scale.
func ToPreview(r ROI, scale float64) image.Rectangle {
	fwd := func(v int) int { return int(math.Round(float64(v) * scale)) }
	x, y := fwd(r.X), fwd(r.Y)
	return image.Rect(x, y, x+fwd(r.Width), y+fwd(r.Height))
}
