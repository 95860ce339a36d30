package batch

import "errors"

// State is the position of the controller in its image sequence.
type State int

const (
	// StateEmpty means no images are loaded.
	StateEmpty State = iota
	// StateActive means the cursor points at an image awaiting a decision.
	StateActive
	// StateComplete means the cursor moved past the last image.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateActive:
		return "Active"
	case StateComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

var (
	ErrRegionNotSet = errors.New("region not set")
	ErrNotActive    = errors.New("no image to process")
	ErrAtLastImage  = errors.New("already at last image")
	ErrAtFirstImage = errors.New("already at first image")
	ErrNoTarget     = errors.New("no transcript file selected")
	ErrNotImage     = errors.New("not a supported image file")
	ErrNoPicker     = errors.New("picker not configured")
)
