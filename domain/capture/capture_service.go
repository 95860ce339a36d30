package capture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

const fileTimeLayout = "20060102-150405"

// Service saves screenshots into a folder so they can join the image set.
// Use NewService to construct an instance.
type Service struct {
	grab   func() (*image.RGBA, error)
	now    func() time.Time
	logger *slog.Logger

	mu           sync.Mutex
	captures     uint64
	captureTotal time.Duration
	lastPath     string
	lastAt       time.Time
}

// NewService returns a service capturing the primary screen.
func NewService(logger *slog.Logger) *Service {
	return &Service{grab: Grab, now: time.Now, logger: logger}
}

// CaptureTo grabs the screen and writes it to dir as a PNG named after the
// capture time. It returns the written path.
func (s *Service) CaptureTo(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("capture folder not set")
	}
	start := s.now()
	img, err := s.grab()
	if err != nil {
		if s.logger != nil {
			s.logger.Error("capture full", "error", err)
		}
		return "", fmt.Errorf("capture screen: %w", err)
	}
	if img == nil || img.Bounds().Empty() {
		return "", errors.New("capture screen: empty frame")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create capture folder: %w", err)
	}
	f, path, err := createUnique(dir, "screenshot-"+start.Format(fileTimeLayout))
	if err != nil {
		return "", err
	}
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close screenshot: %w", err)
	}

	elapsed := s.now().Sub(start)
	s.mu.Lock()
	s.captures++
	s.captureTotal += elapsed
	s.lastPath = path
	s.lastAt = start
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("screen captured", "path", path, "size", img.Bounds().Size().String(), "elapsed", elapsed)
	}
	return path, nil
}

// createUnique opens base.png in dir, adding -1, -2, ... when the name is taken.
func createUnique(dir, base string) (*os.File, string, error) {
	for i := 0; i < 100; i++ {
		name := base + ".png"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.png", base, i)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create screenshot: %w", err)
		}
	}
	return nil, "", fmt.Errorf("create screenshot: too many captures named %s", base)
}

// Stats returns capture counters.
func (s *Service) Stats() CaptureStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	var avg time.Duration
	if s.captures > 0 {
		avg = s.captureTotal / time.Duration(s.captures)
	}
	return CaptureStats{
		Captures:    s.captures,
		AvgCapture:  avg,
		LastPath:    s.lastPath,
		LastCapture: s.lastAt,
	}
}
