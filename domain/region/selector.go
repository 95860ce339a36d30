package region

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
)

// Drawer lets the user draw a rectangle over a preview image. It blocks until the
// user confirms or cancels; ok is false on cancel.
type Drawer interface {
	Draw(preview image.Image, title string) (r image.Rectangle, ok bool)
}

// LoaderFunc loads an image from disk.
type LoaderFunc func(path string) (image.Image, error)

// Selector turns an interactive preview selection into an original-space ROI.
type Selector struct {
	Load      LoaderFunc
	Drawer    Drawer
	MaxWidth  int
	MaxHeight int
	logger    *slog.Logger
}

// NewSelector constructs a Selector with preview bounds maxW x maxH.
func NewSelector(load LoaderFunc, drawer Drawer, maxW, maxH int, logger *slog.Logger) *Selector {
	return &Selector{Load: load, Drawer: drawer, MaxWidth: maxW, MaxHeight: maxH, logger: logger}
}

// Select uses the configured preview bounds.
func (s *Selector) Select(path string) (ROI, bool, error) {
	return s.SelectWithin(path, s.MaxWidth, s.MaxHeight)
}

// SelectWithin loads path, shows a preview no larger than maxW x maxH and maps the
// drawn rectangle back to original pixels. A cancelled or zero-area selection returns ok=false.
func (s *Selector) SelectWithin(path string, maxW, maxH int) (ROI, bool, error) {
	if s == nil || s.Load == nil || s.Drawer == nil {
		return ROI{}, false, fmt.Errorf("selector not configured")
	}
	img, err := s.Load(path)
	if err != nil {
		return ROI{}, false, fmt.Errorf("load %s: %w", path, err)
	}
	b := img.Bounds()
	scale := PreviewScale(b.Dx(), b.Dy(), maxW, maxH)
	preview := img
	if scale < 1.0 {
		pw, ph := PreviewSize(b.Dx(), b.Dy(), scale)
		preview = imaging.Resize(img, pw, ph, imaging.Lanczos)
	}
	drawn, ok := s.Drawer.Draw(preview, path)
	if !ok || drawn.Empty() {
		return ROI{}, false, nil
	}
	roi := ToOriginal(drawn, scale)
	// Rounding can push the far edge one pixel past the image.
	roi, ok = roi.Clamp(image.Rect(0, 0, b.Dx(), b.Dy()))
	if !ok || !roi.Valid() {
		return ROI{}, false, nil
	}
	if s.logger != nil {
		s.logger.Debug("region selected", "path", path, "scale", scale, "preview", drawn.String(), "roi", roi.String())
	}
	return roi, true, nil
}
