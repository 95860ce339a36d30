// Package extract crops a region out of a screenshot and turns it into text.
package extract

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/soocke/roi-ocr-go/config"
	"github.com/soocke/roi-ocr-go/domain/ocr"
	"github.com/soocke/roi-ocr-go/domain/region"
)

// Extractor runs OCR on one region of an image file.
type Extractor struct {
	engine  ocr.Engine
	load    func(string) (image.Image, error)
	cfg     *config.Config
	tempDir string
	logger  *slog.Logger
}

// NewExtractor binds an OCR engine to cfg. The recognition and preprocessing
// settings are read on every call, so edits to cfg apply to the next image.
func NewExtractor(engine ocr.Engine, cfg *config.Config, logger *slog.Logger) *Extractor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Extractor{
		engine: engine,
		load:   LoadImage,
		cfg:    cfg,
		logger: logger,
	}
}

// Extract returns the recognized text inside roi, lines joined with "\n" in
// engine order and trimmed. Every failure degrades to "" and is logged.
func (e *Extractor) Extract(ctx context.Context, path string, roi region.ROI) string {
	if e == nil || e.engine == nil {
		return ""
	}
	img, err := e.load(path)
	if err != nil {
		e.warn("image not loaded", "path", path, "error", err)
		return ""
	}
	crop, ok := CropROI(img, roi)
	if !ok {
		e.warn("region outside image", "path", path, "roi", roi.String(), "bounds", img.Bounds().String())
		return ""
	}
	crop = Preprocess(crop, e.cfg.Preprocess)

	tmpPath, err := e.writeTemp(crop)
	if err != nil {
		e.warn("temp crop not written", "path", path, "error", err)
		return ""
	}
	defer os.Remove(tmpPath)

	lines, err := e.engine.Recognize(ctx, tmpPath, ocr.Options{Classify: e.cfg.OCR.Classify})
	if err != nil {
		e.warn("recognition failed", "path", path, "error", err)
		return ""
	}
	texts := make([]string, 0, len(lines))
	dropped := 0
	for _, l := range lines {
		if l.Confidence < e.cfg.OCR.MinConfidence {
			dropped++
			continue
		}
		texts = append(texts, l.Text)
	}
	text := strings.TrimSpace(strings.Join(texts, "\n"))
	if e.logger != nil {
		e.logger.Debug("region recognized", "path", path, "roi", roi.String(), "lines", len(texts), "dropped", dropped)
	}
	return text
}

// CropROI cuts roi out of img. The ROI is relative to the image origin and is
// clamped to its bounds; ok is false when nothing remains.
func CropROI(img image.Image, roi region.ROI) (image.Image, bool) {
	if img == nil || !roi.Valid() {
		return nil, false
	}
	b := img.Bounds()
	r := roi.Rect().Add(b.Min).Intersect(b)
	if r.Empty() {
		return nil, false
	}
	return imaging.Crop(img, r), true
}

func (e *Extractor) writeTemp(img image.Image) (string, error) {
	f, err := os.CreateTemp(e.tempDir, "roi-crop-*.png")
	if err != nil {
		return "", err
	}
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("encode crop: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (e *Extractor) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}
