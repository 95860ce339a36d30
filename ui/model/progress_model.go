package model

import (
	"time"
)

// ProgressModel counts what happened to the images of the current batch and
// how long the batch has been worked on. The zero value is ready to use and
// all methods are nil-safe.
type ProgressModel struct {
	processed int
	skipped   int
	started   time.Time
	finished  time.Time
}

// NewProgressModel returns a pointer to a ready-to-use ProgressModel.
func NewProgressModel() *ProgressModel { return &ProgressModel{} }

// Reset starts a new batch at now.
func (m *ProgressModel) Reset(now time.Time) {
	if m == nil {
		return
	}
	*m = ProgressModel{started: now}
}

// OnApplied records a processed image. completed marks the end of the batch.
func (m *ProgressModel) OnApplied(now time.Time, completed bool) {
	if m == nil {
		return
	}
	if m.started.IsZero() {
		m.started = now
	}
	m.processed++
	if completed {
		m.finished = now
	} else {
		m.finished = time.Time{}
	}
}

// OnSkipped records a skipped image.
func (m *ProgressModel) OnSkipped() {
	if m == nil {
		return
	}
	m.skipped++
}

// OnBack reopens a finished batch.
func (m *ProgressModel) OnBack() {
	if m == nil {
		return
	}
	m.finished = time.Time{}
}

// Values returns the counters and the time spent. Elapsed stops growing once
// the batch is complete.
func (m *ProgressModel) Values(now time.Time) (processed, skipped int, elapsed time.Duration) {
	if m == nil {
		return 0, 0, 0
	}
	if !m.started.IsZero() {
		end := now
		if !m.finished.IsZero() {
			end = m.finished
		}
		elapsed = end.Sub(m.started)
	}
	return m.processed, m.skipped, elapsed
}
