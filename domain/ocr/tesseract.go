package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes text with a reused gosseract client.
type Tesseract struct {
	languages      []string
	tessdataPrefix string
	logger         *slog.Logger

	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseract returns an engine for the given Tesseract language codes
// (for example "chi_sim"). The native client is created on first use.
func NewTesseract(languages []string, tessdataPrefix string, logger *slog.Logger) *Tesseract {
	if len(languages) == 0 {
		languages = []string{"chi_sim"}
	}
	return &Tesseract{languages: languages, tessdataPrefix: tessdataPrefix, logger: logger}
}

func (t *Tesseract) ensureClient() (*gosseract.Client, error) {
	if t.client != nil {
		return t.client, nil
	}
	c := gosseract.NewClient()
	if t.tessdataPrefix != "" {
		if err := c.SetTessdataPrefix(t.tessdataPrefix); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := c.SetLanguage(t.languages...); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	t.client = c
	if t.logger != nil {
		t.logger.Info("tesseract ready", "version", c.Version(), "languages", strings.Join(t.languages, "+"))
	}
	return c, nil
}

// Recognize runs OCR on imagePath and returns its text lines.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string, opts Options) ([]Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	c, err := t.ensureClient()
	if err != nil {
		return nil, err
	}
	mode := gosseract.PSM_AUTO
	if opts.Classify {
		mode = gosseract.PSM_AUTO_OSD
	}
	if err := c.SetPageSegMode(mode); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation: %w", err)
	}
	if err := c.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	lines := make([]Line, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimRight(box.Word, "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, Line{Text: text, Confidence: box.Confidence / 100.0})
	}
	return lines, nil
}

// Close releases the native client.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}
