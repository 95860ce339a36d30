package capture

import "time"

// CaptureStats summarises the screenshots taken so far.
type CaptureStats struct {
	Captures    uint64
	AvgCapture  time.Duration
	LastPath    string
	LastCapture time.Time
}
