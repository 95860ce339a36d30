package ocr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/roi-ocr-go/config"
)

func TestNew_SelectsTesseract(t *testing.T) {
	cfg := config.DefaultConfig().OCR
	e, err := New(cfg, nil)
	require.NoError(t, err)
	tess, ok := e.(*Tesseract)
	require.True(t, ok)
	assert.Equal(t, []string{"chi_sim"}, tess.languages)
	// Closing before first use must not touch the native library.
	assert.NoError(t, e.Close())
}

func TestNew_UnknownEngine(t *testing.T) {
	cfg := config.DefaultConfig().OCR
	cfg.Engine = "abbyy"
	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestNewTesseract_DefaultLanguage(t *testing.T) {
	tess := NewTesseract(nil, "", nil)
	assert.Equal(t, []string{"chi_sim"}, tess.languages)
}

func TestRecognize_CancelledContext(t *testing.T) {
	tess := NewTesseract([]string{"eng"}, "", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tess.Recognize(ctx, "missing.png", Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, tess.client)
}
