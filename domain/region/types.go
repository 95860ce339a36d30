package region

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ROI is a rectangle in original-image pixel coordinates.
// The zero value means "no selection".
type ROI struct {
	X, Y          int
	Width, Height int
}

// FromRect converts an image rectangle into an ROI.
func FromRect(r image.Rectangle) ROI {
	r = r.Canon()
	return ROI{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Valid reports whether the ROI has a non-negative origin and a positive area.
func (r ROI) Valid() bool {
	return r.X >= 0 && r.Y >= 0 && r.Width > 0 && r.Height > 0
}

// IsZero reports whether r is the "no selection" rectangle.
func (r ROI) IsZero() bool { return r == ROI{} }

// Rect returns the ROI as an image rectangle.
func (r ROI) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Clamp intersects r with bounds. ok is false when nothing of r lies inside bounds.
func (r ROI) Clamp(bounds image.Rectangle) (ROI, bool) {
	in := r.Rect().Intersect(bounds)
	if in.Empty() {
		return ROI{}, false
	}
	return FromRect(in), true
}

// DragRect returns the rectangle spanned by a drag from a to b, clipped to
// bounds. The drag may run in any direction.
func DragRect(a, b image.Point, bounds image.Rectangle) image.Rectangle {
	return image.Rectangle{Min: a, Max: b}.Canon().Intersect(bounds)
}

func (r ROI) String() string {
	if !r.Valid() {
		return "<unset>"
	}
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Slot names one of the two persisted regions.
type Slot int

const (
	Slot1 Slot = iota + 1
	Slot2
)

func (s Slot) String() string {
	switch s {
	case Slot1:
		return "ROI1"
	case Slot2:
		return "ROI2"
	default:
		return "unknown"
	}
}

// Regions is the ordered pair (ROI1, ROI2); either may be unset.
type Regions struct {
	ROI1 ROI
	ROI2 ROI
}

// Get returns the ROI stored in slot and whether it is set.
func (c Regions) Get(s Slot) (ROI, bool) {
	var r ROI
	switch s {
	case Slot1:
		r = c.ROI1
	case Slot2:
		r = c.ROI2
	}
	return r, r.Valid()
}

// With returns a copy of c with slot replaced by r.
func (c Regions) With(s Slot, r ROI) Regions {
	switch s {
	case Slot1:
		c.ROI1 = r
	case Slot2:
		c.ROI2 = r
	}
	return c
}

// ParseROI parses the four text fields of a region form. Surrounding
// whitespace is ignored.
func ParseROI(x, y, w, h string) (ROI, error) {
	var vals [4]int
	for i, s := range [4]string{x, y, w, h} {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return ROI{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		vals[i] = v
	}
	r := ROI{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
	if !r.Valid() {
		return ROI{}, fmt.Errorf("invalid region %dx%d at %d,%d", r.Width, r.Height, r.X, r.Y)
	}
	return r, nil
}
