package extract

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrDecode reports bytes that are not a supported image.
var ErrDecode = errors.New("image decode failed")

// LoadImage reads path into memory and decodes it from the byte buffer.
// Decoding from bytes keeps paths with non-ASCII characters working on every
// platform. EXIF orientation is applied.
func LoadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, filepath.Base(path), err)
	}
	return img, nil
}

// IsImageFile reports whether name has one of the accepted image extensions.
func IsImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
