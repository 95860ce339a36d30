package ocr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soocke/roi-ocr-go/config"
)

// Line is one recognized text line as returned by an engine.
type Line struct {
	Text       string
	Confidence float64 // 0..1
}

// Options tunes a single recognition call.
type Options struct {
	// Classify enables orientation detection before recognition.
	Classify bool
}

// Engine recognizes text lines in an image file. Lines are returned in the
// engine's reading order.
type Engine interface {
	Recognize(ctx context.Context, imagePath string, opts Options) ([]Line, error)
	Close() error
}

// New constructs the engine named by cfg.Engine.
func New(cfg config.OCRConfig, logger *slog.Logger) (Engine, error) {
	switch cfg.Engine {
	case "tesseract", "":
		return NewTesseract(cfg.Languages, cfg.TessdataPrefix, logger), nil
	default:
		return nil, fmt.Errorf("unknown ocr engine %q", cfg.Engine)
	}
}
