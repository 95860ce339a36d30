package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// ProgressStats shows how many images were processed and skipped and the
// time spent on the batch.
type ProgressStats interface {
	Set(processed, skipped int, elapsed time.Duration)
}

type progressStats struct {
	processedLbl *LabelWidget
	skippedLbl   *LabelWidget
	elapsedLbl   *LabelWidget
}

// NewProgressStats creates three labels in parent starting at (row, startCol).
func NewProgressStats(parent *FrameWidget, row, startCol int) ProgressStats {
	s := &progressStats{
		processedLbl: Label(Width(14), Anchor("w")),
		skippedLbl:   Label(Width(12), Anchor("w")),
		elapsedLbl:   Label(Width(12), Anchor("w")),
	}
	for i, l := range []*LabelWidget{s.processedLbl, s.skippedLbl, s.elapsedLbl} {
		Grid(l, In(parent), Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
	}
	s.Set(0, 0, 0)
	return s
}

func (s *progressStats) Set(processed, skipped int, elapsed time.Duration) {
	if s == nil || s.processedLbl == nil {
		return
	}
	seconds := int(elapsed.Seconds())
	mins, secs := seconds/60, seconds%60
	s.processedLbl.Configure(Txt(fmt.Sprintf("Processed: %d", processed)))
	s.skippedLbl.Configure(Txt(fmt.Sprintf("Skipped: %d", skipped)))
	s.elapsedLbl.Configure(Txt(fmt.Sprintf("Time: %02d:%02d", mins, secs)))
}
