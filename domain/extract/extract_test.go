package extract

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/roi-ocr-go/config"
	"github.com/soocke/roi-ocr-go/domain/ocr"
	"github.com/soocke/roi-ocr-go/domain/region"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type fakeEngine struct {
	lines    []ocr.Line
	err      error
	calls    int
	lastOpts ocr.Options
	cropSize image.Point
	tmpPath  string
}

func (f *fakeEngine) Recognize(_ context.Context, path string, opts ocr.Options) ([]ocr.Line, error) {
	f.calls++
	f.lastOpts = opts
	f.tmpPath = path
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	f.cropSize = img.Bounds().Size()
	return f.lines, f.err
}

func (f *fakeEngine) Close() error { return nil }

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestExtractor(t *testing.T, eng ocr.Engine, mutate func(*config.Config)) *Extractor {
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	e := NewExtractor(eng, cfg, discardLogger)
	e.tempDir = t.TempDir()
	return e
}

func TestLoadImage_NonASCIIPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "截图 一.png")
	writePNG(t, path, 20, 10)
	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(20, 10), img.Bounds().Size())
}

func TestLoadImage_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.JPG")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, image.NewGray(image.Rect(0, 0, 8, 6)), nil))
	require.NoError(t, f.Close())

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}

func TestLoadImage_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err := LoadImage(path)
	assert.True(t, errors.Is(err, ErrDecode))

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrDecode))
}

func TestIsImageFile(t *testing.T) {
	for _, n := range []string{"a.png", "b.JPG", "c.Jpeg", "路径/图.PNG"} {
		assert.True(t, IsImageFile(n), n)
	}
	for _, n := range []string{"a.gif", "b.txt", "png", "c.png.bak"} {
		assert.False(t, IsImageFile(n), n)
	}
}

func TestCropROI(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 110, 60))
	crop, ok := CropROI(img, region.ROI{X: 0, Y: 0, Width: 20, Height: 5})
	require.True(t, ok)
	assert.Equal(t, image.Pt(20, 5), crop.Bounds().Size())

	crop, ok = CropROI(img, region.ROI{X: 90, Y: 40, Width: 50, Height: 50})
	require.True(t, ok)
	assert.Equal(t, image.Pt(10, 10), crop.Bounds().Size())

	_, ok = CropROI(img, region.ROI{X: 500, Y: 0, Width: 5, Height: 5})
	assert.False(t, ok)
	_, ok = CropROI(img, region.ROI{})
	assert.False(t, ok)
}

func TestExtract_JoinsLinesInOrderAndTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "页面.png")
	writePNG(t, path, 60, 40)
	eng := &fakeEngine{lines: []ocr.Line{
		{Text: "  第一行", Confidence: 0.9},
		{Text: "第二行", Confidence: 0.8},
		{Text: "第三行  ", Confidence: 0.95},
	}}
	e := newTestExtractor(t, eng, nil)

	got := e.Extract(context.Background(), path, region.ROI{X: 5, Y: 5, Width: 30, Height: 20})
	assert.Equal(t, "第一行\n第二行\n第三行", got)
	assert.Equal(t, 1, eng.calls)
	assert.True(t, eng.lastOpts.Classify)
	assert.Equal(t, image.Pt(30, 20), eng.cropSize)

	_, err := os.Stat(eng.tmpPath)
	assert.True(t, os.IsNotExist(err), "temporary crop must be removed")
}

func TestExtract_MinConfidence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 20, 20)
	eng := &fakeEngine{lines: []ocr.Line{{Text: "keep", Confidence: 0.7}, {Text: "noise", Confidence: 0.2}}}
	e := newTestExtractor(t, eng, func(c *config.Config) { c.OCR.MinConfidence = 0.5 })
	assert.Equal(t, "keep", e.Extract(context.Background(), path, region.ROI{X: 0, Y: 0, Width: 10, Height: 10}))
}

func TestExtract_Preprocess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 20, 20)
	eng := &fakeEngine{lines: []ocr.Line{{Text: "x", Confidence: 1}}}
	e := newTestExtractor(t, eng, func(c *config.Config) {
		c.Preprocess.Upscale = 2
		c.Preprocess.Grayscale = true
		c.Preprocess.Contrast = 0.3
	})
	e.Extract(context.Background(), path, region.ROI{X: 0, Y: 0, Width: 10, Height: 5})
	assert.Equal(t, image.Pt(20, 10), eng.cropSize)
}

func TestExtract_FailuresYieldEmpty(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))
	good := filepath.Join(dir, "good.png")
	writePNG(t, good, 10, 10)

	eng := &fakeEngine{lines: []ocr.Line{{Text: "x", Confidence: 1}}}
	e := newTestExtractor(t, eng, nil)
	roi := region.ROI{X: 0, Y: 0, Width: 5, Height: 5}

	assert.Empty(t, e.Extract(context.Background(), bad, roi))
	assert.Empty(t, e.Extract(context.Background(), good, region.ROI{X: 50, Y: 50, Width: 5, Height: 5}))
	assert.Zero(t, eng.calls)

	eng.err = errors.New("engine down")
	assert.Empty(t, e.Extract(context.Background(), good, roi))

	var nilExtractor *Extractor
	assert.Empty(t, nilExtractor.Extract(context.Background(), good, roi))
}
