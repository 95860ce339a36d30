package extract

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	"github.com/soocke/roi-ocr-go/config"
)

// Preprocess applies the configured pixel adjustments to a crop. With the
// zero config the input is returned unchanged.
func Preprocess(img image.Image, cfg config.PreprocessConfig) image.Image {
	out := img
	if cfg.Upscale > 1 {
		b := out.Bounds()
		w := int(math.Round(float64(b.Dx()) * cfg.Upscale))
		h := int(math.Round(float64(b.Dy()) * cfg.Upscale))
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}
	if cfg.Grayscale {
		out = effect.Grayscale(out)
	}
	if cfg.Contrast != 0 {
		out = adjust.Contrast(out, cfg.Contrast)
	}
	return out
}
