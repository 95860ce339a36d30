package presenter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/soocke/roi-ocr-go/domain/batch"
	"github.com/soocke/roi-ocr-go/domain/region"
	"github.com/soocke/roi-ocr-go/ui/model"
)

// Controller is the subset of the batch controller the presenter drives.
type Controller interface {
	State() batch.State
	Cursor() int
	Len() int
	Current() (string, bool)
	Regions() region.Regions
	Transcript() string
	Target() string
	Dirty() bool

	SelectFolder() (int, bool, error)
	SelectFile() (int, bool, error)
	DefineRegion(slot region.Slot) (region.ROI, bool, error)
	Apply(ctx context.Context, slot region.Slot) (batch.ApplyResult, error)
	Skip() error
	Back() error
	AddImage(path string) error

	OpenTranscript(path string) error
	SetTranscriptTarget(path string)
	SyncTranscript(text string)
	SaveTranscript() error
	ClearTranscript()
	Close() error
}

// Capturer saves a screenshot into a folder.
type Capturer interface {
	CaptureTo(dir string) (string, error)
}

// TranscriptPicker asks for transcript files. ok is false on cancel.
type TranscriptPicker interface {
	PickTranscript() (path string, ok bool)
	PickTranscriptTarget() (path string, ok bool)
}

// Actions lists which commands are currently available.
type Actions struct {
	Apply bool // both Apply buttons
	Skip  bool
	Back  bool
	Save  bool
}

// BatchView renders the batch state and reports messages to the user.
type BatchView interface {
	ShowImage(path string) // "" clears the preview
	SetStatus(text string)
	SetProgress(processed, skipped int, elapsed time.Duration)
	SetRegions(roi1, roi2 string)
	SetTranscript(text string)
	TranscriptText() string
	SetActions(a Actions)
	Info(title, msg string)
	Warn(title, msg string)
	Error(title, msg string)
	// Confirm asks a yes/no question and reports whether the user agreed.
	Confirm(title, msg string) bool
}

// BatchPresenter translates button presses into controller commands and
// renders the resulting state.
type BatchPresenter struct {
	ctrl       Controller
	view       BatchView
	files      TranscriptPicker
	capture    Capturer
	progress   *model.ProgressModel
	captureDir string
	logger     *slog.Logger
	now        func() time.Time
}

// NewBatchPresenter wires a presenter. captureDir may be empty, in which case
// screenshots go next to the current images.
func NewBatchPresenter(ctrl Controller, view BatchView, files TranscriptPicker, capture Capturer, progress *model.ProgressModel, captureDir string, logger *slog.Logger) *BatchPresenter {
	return &BatchPresenter{
		ctrl:       ctrl,
		view:       view,
		files:      files,
		capture:    capture,
		progress:   progress,
		captureDir: captureDir,
		logger:     logger,
		now:        time.Now,
	}
}

func (p *BatchPresenter) ready() bool {
	return p != nil && p.ctrl != nil && p.view != nil
}

// pullEdits copies the user's edits into the controller before a command
// that reads or extends the transcript.
func (p *BatchPresenter) pullEdits() {
	p.ctrl.SyncTranscript(p.view.TranscriptText())
}

// Render pushes the full controller state to the view.
func (p *BatchPresenter) Render() {
	if !p.ready() {
		return
	}
	state := p.ctrl.State()
	n, cursor := p.ctrl.Len(), p.ctrl.Cursor()

	path, ok := p.ctrl.Current()
	if !ok {
		path = ""
	}
	p.view.ShowImage(path)

	regions := p.ctrl.Regions()
	p.view.SetRegions(regions.ROI1.String(), regions.ROI2.String())
	p.view.SetTranscript(p.ctrl.Transcript())
	p.view.SetActions(Actions{
		Apply: state == batch.StateActive,
		Skip:  state == batch.StateActive && cursor < n-1,
		Back:  cursor > 0,
		Save:  p.ctrl.Target() != "",
	})

	var status string
	switch state {
	case batch.StateEmpty:
		status = "No images loaded"
	case batch.StateActive:
		status = fmt.Sprintf("Image %d/%d: %s", cursor+1, n, filepath.Base(path))
	case batch.StateComplete:
		status = fmt.Sprintf("All %d images done", n)
	}
	if t := p.ctrl.Target(); t != "" {
		status += " | " + filepath.Base(t)
	}
	p.view.SetStatus(status)
	p.view.SetProgress(p.progress.Values(p.now()))
}

// Tick refreshes the elapsed time between commands.
func (p *BatchPresenter) Tick() {
	if !p.ready() {
		return
	}
	p.view.SetProgress(p.progress.Values(p.now()))
}

// SelectFolder loads a user-chosen folder.
func (p *BatchPresenter) SelectFolder() {
	if !p.ready() {
		return
	}
	p.pullEdits()
	n, ok, err := p.ctrl.SelectFolder()
	if err != nil {
		p.view.Error("Folder", err.Error())
		return
	}
	if !ok {
		return
	}
	p.progress.Reset(p.now())
	if n == 0 {
		p.view.Warn("Folder", "The folder contains no PNG or JPEG images.")
	}
	p.Render()
}

// SelectFile loads a single user-chosen image.
func (p *BatchPresenter) SelectFile() {
	if !p.ready() {
		return
	}
	p.pullEdits()
	n, ok, err := p.ctrl.SelectFile()
	if err != nil {
		p.view.Error("Image", err.Error())
		return
	}
	if !ok {
		return
	}
	p.progress.Reset(p.now())
	if n == 0 {
		p.view.Warn("Image", "Only PNG and JPEG images are supported.")
	}
	p.Render()
}

// DefineRegion lets the user draw the region for slot.
func (p *BatchPresenter) DefineRegion(slot region.Slot) {
	if !p.ready() {
		return
	}
	p.pullEdits()
	_, ok, err := p.ctrl.DefineRegion(slot)
	switch {
	case err != nil && ok:
		// Region is usable but not persisted.
		p.view.Warn(slot.String(), fmt.Sprintf("%s set but not saved: %v", slot, err))
	case err != nil:
		p.view.Error(slot.String(), err.Error())
		return
	case !ok:
		return
	default:
		p.view.Info(slot.String(), fmt.Sprintf("%s saved.", slot))
	}
	p.Render()
}

// Apply recognizes the current image with slot and moves on.
func (p *BatchPresenter) Apply(slot region.Slot) {
	if !p.ready() {
		return
	}
	p.pullEdits()
	res, err := p.ctrl.Apply(context.Background(), slot)
	if err != nil {
		switch {
		case errors.Is(err, batch.ErrRegionNotSet):
			p.view.Warn("Region", fmt.Sprintf("Define %s first.", slot))
		case errors.Is(err, batch.ErrNotActive):
			p.view.Info("Batch", "No image to process.")
		default:
			p.view.Error("Batch", err.Error())
		}
		return
	}
	p.progress.OnApplied(p.now(), res.Completed)
	p.Render()
	if res.Completed {
		p.view.Info("Batch", "All images processed.")
	}
}

// Skip moves past the current image without recognizing it.
func (p *BatchPresenter) Skip() {
	if !p.ready() {
		return
	}
	p.pullEdits()
	if err := p.ctrl.Skip(); err != nil {
		if errors.Is(err, batch.ErrAtLastImage) {
			p.view.Info("Batch", "Already at the last image.")
		}
		return
	}
	p.progress.OnSkipped()
	p.Render()
}

// Back returns to the previous image.
func (p *BatchPresenter) Back() {
	if !p.ready() {
		return
	}
	p.pullEdits()
	if err := p.ctrl.Back(); err != nil {
		return
	}
	p.progress.OnBack()
	p.Render()
}

// Capture takes a screenshot and queues it.
func (p *BatchPresenter) Capture() {
	if !p.ready() || p.capture == nil {
		return
	}
	p.pullEdits()
	dir := p.captureFolder()
	path, err := p.capture.CaptureTo(dir)
	if err != nil {
		p.view.Error("Capture", err.Error())
		return
	}
	if err := p.ctrl.AddImage(path); err != nil {
		p.view.Error("Capture", err.Error())
		return
	}
	p.Render()
}

func (p *BatchPresenter) captureFolder() string {
	if p.captureDir != "" {
		return p.captureDir
	}
	if cur, ok := p.ctrl.Current(); ok {
		return filepath.Dir(cur)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// OpenTranscript loads an existing transcript file and makes it the save target.
// Unsaved buffer content is replaced.
func (p *BatchPresenter) OpenTranscript() {
	if !p.ready() || p.files == nil {
		return
	}
	p.pullEdits()
	if p.ctrl.Dirty() && !p.view.Confirm("Transcript", "Discard unsaved transcript changes?") {
		return
	}
	path, ok := p.files.PickTranscript()
	if !ok || path == "" {
		return
	}
	if err := p.ctrl.OpenTranscript(path); err != nil {
		p.view.Error("Transcript", err.Error())
		return
	}
	p.Render()
}

// SaveAs picks a new target and saves to it.
func (p *BatchPresenter) SaveAs() {
	if !p.ready() || p.files == nil {
		return
	}
	path, ok := p.files.PickTranscriptTarget()
	if !ok || path == "" {
		return
	}
	p.ctrl.SetTranscriptTarget(path)
	p.Save()
}

// Save writes the transcript to its target.
func (p *BatchPresenter) Save() {
	if !p.ready() {
		return
	}
	p.pullEdits()
	if err := p.ctrl.SaveTranscript(); err != nil {
		if errors.Is(err, batch.ErrNoTarget) {
			p.view.Warn("Transcript", "Open or create a transcript file first.")
			return
		}
		p.view.Error("Transcript", err.Error())
		return
	}
	p.Render()
	p.view.Info("Transcript", "Transcript saved to "+p.ctrl.Target())
}

// Clear empties the transcript buffer.
func (p *BatchPresenter) Clear() {
	if !p.ready() {
		return
	}
	p.ctrl.ClearTranscript()
	p.Render()
}

// Close flushes pending edits and auto-saves. It is called once on exit.
func (p *BatchPresenter) Close() error {
	if !p.ready() {
		return nil
	}
	p.pullEdits()
	if err := p.ctrl.Close(); err != nil {
		if p.logger != nil {
			p.logger.Error("transcript auto-save failed", "error", err)
		}
		return err
	}
	return nil
}
