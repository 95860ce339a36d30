package region

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
)

// recordSize is one flag byte followed by four little-endian int32 values.
const recordSize = 1 + 4*4

// ErrCorrupt reports a region blob that cannot be decoded.
var ErrCorrupt = errors.New("region file corrupt")

// ErrOutOfRange reports a region whose edges do not fit the int32 record fields.
var ErrOutOfRange = errors.New("region out of storable range")

// Store persists the two regions as a fixed-size binary blob.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore returns a store backed by path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the persisted regions. A missing or unreadable file yields both unset.
func (s *Store) Load() Regions {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) && s.logger != nil {
			s.logger.Warn("region file unreadable", "path", s.path, "error", err)
		}
		return Regions{}
	}
	regions, err := Decode(data)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("region file ignored", "path", s.path, "error", err)
		}
		return Regions{}
	}
	return regions
}

// Save overwrites the file with both regions. The write goes through a
// temporary file in the same directory and a rename.
func (s *Store) Save(c Regions) error {
	for _, slot := range []Slot{Slot1, Slot2} {
		if r, ok := c.Get(slot); ok && !storable(r) {
			return fmt.Errorf("%w: %s %s", ErrOutOfRange, slot, r)
		}
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".roi-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp region file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(Encode(c)); err != nil {
		tmp.Close()
		return fmt.Errorf("write region file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close region file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace region file: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("regions saved", "path", s.path, "roi1", c.ROI1.String(), "roi2", c.ROI2.String())
	}
	return nil
}

// storable reports whether every edge of r survives the int32 round trip.
func storable(r ROI) bool {
	const limit = int64(math.MaxInt32)
	return int64(r.X)+int64(r.Width) <= limit && int64(r.Y)+int64(r.Height) <= limit
}

// Encode serializes both regions. Unset regions are written as a zero flag and zero values.
func Encode(c Regions) []byte {
	var buf bytes.Buffer
	for _, r := range []ROI{c.ROI1, c.ROI2} {
		var flag byte
		if r.Valid() {
			flag = 1
		} else {
			r = ROI{}
		}
		buf.WriteByte(flag)
		for _, v := range []int32{int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height)} {
			_ = binary.Write(&buf, binary.LittleEndian, v)
		}
	}
	return buf.Bytes()
}

// Decode parses a blob produced by Encode.
func Decode(data []byte) (Regions, error) {
	if len(data) != 2*recordSize {
		return Regions{}, fmt.Errorf("%w: size %d", ErrCorrupt, len(data))
	}
	var out [2]ROI
	for i := range out {
		rec := data[i*recordSize : (i+1)*recordSize]
		switch rec[0] {
		case 0:
			continue
		case 1:
		default:
			return Regions{}, fmt.Errorf("%w: flag %d", ErrCorrupt, rec[0])
		}
		var vals [4]int32
		if err := binary.Read(bytes.NewReader(rec[1:]), binary.LittleEndian, &vals); err != nil {
			return Regions{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		r := ROI{X: int(vals[0]), Y: int(vals[1]), Width: int(vals[2]), Height: int(vals[3])}
		if !r.Valid() {
			return Regions{}, fmt.Errorf("%w: invalid rectangle %v", ErrCorrupt, vals)
		}
		out[i] = r
	}
	return Regions{ROI1: out[0], ROI2: out[1]}, nil
}
