package capture

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func fakeService(frame *image.RGBA, err error) *Service {
	fixed := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	return &Service{
		grab:   func() (*image.RGBA, error) { return frame, err },
		now:    func() time.Time { return fixed },
		logger: discardLogger,
	}
}

func TestCaptureTo_WritesTimestampedPNG(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 32, 16))
	frame.Set(3, 4, color.RGBA{R: 200, A: 255})
	s := fakeService(frame, nil)
	dir := filepath.Join(t.TempDir(), "shots")

	path, err := s.CaptureTo(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "screenshot-20240309-140507.png"), path)

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(32, 16), img.Bounds().Size())
	r, _, _, _ := img.At(3, 4).RGBA()
	assert.Equal(t, uint32(200), r>>8)

	st := s.Stats()
	assert.Equal(t, uint64(1), st.Captures)
	assert.Equal(t, path, st.LastPath)
}

func TestCaptureTo_SameSecondGetsSuffix(t *testing.T) {
	s := fakeService(image.NewRGBA(image.Rect(0, 0, 4, 4)), nil)
	dir := t.TempDir()
	first, err := s.CaptureTo(dir)
	require.NoError(t, err)
	second, err := s.CaptureTo(dir)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, "screenshot-20240309-140507-1.png", filepath.Base(second))
}

func TestCaptureTo_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := fakeService(nil, errors.New("no display")).CaptureTo(dir)
	assert.Error(t, err)

	_, err = fakeService(image.NewRGBA(image.Rectangle{}), nil).CaptureTo(dir)
	assert.Error(t, err)

	_, err = fakeService(image.NewRGBA(image.Rect(0, 0, 2, 2)), nil).CaptureTo("")
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
