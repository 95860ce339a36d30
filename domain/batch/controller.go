// Package batch implements the screenshot batch workflow: an ordered image
// set walked by a cursor, two reusable regions and the growing transcript.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/soocke/roi-ocr-go/domain/correct"
	"github.com/soocke/roi-ocr-go/domain/extract"
	"github.com/soocke/roi-ocr-go/domain/region"
	"github.com/soocke/roi-ocr-go/domain/transcript"
)

// RoiPicker lets the user draw a region on an image. It blocks until the user
// confirms or cancels.
type RoiPicker interface {
	Select(path string) (region.ROI, bool, error)
}

// FilePicker asks the user for a folder or an image file. ok is false on cancel.
type FilePicker interface {
	PickFolder() (dir string, ok bool)
	PickImage(title string) (path string, ok bool)
}

// TextExtractor turns a region of an image into text. Failures yield "".
type TextExtractor interface {
	Extract(ctx context.Context, path string, roi region.ROI) string
}

// RegionStore persists the region pair.
type RegionStore interface {
	Load() region.Regions
	Save(region.Regions) error
}

// Deps are the collaborators of a Controller. Correct defaults to correct.Correct.
type Deps struct {
	Store     RegionStore
	Extractor TextExtractor
	Roi       RoiPicker
	Files     FilePicker
	Correct   func(string) string
	Logger    *slog.Logger
}

// ApplyResult describes one processed image.
type ApplyResult struct {
	Image     string
	Text      string
	Completed bool
}

// Controller owns the image sequence, cursor, regions and transcript. All
// methods are serialized by one mutex; the pickers are called with it held,
// so they must not call back into the controller.
type Controller struct {
	mu sync.Mutex

	images  []string
	cursor  int
	regions region.Regions
	buf     *transcript.Buffer
	target  string
	saved   string // buffer content last read from or written to target

	store     RegionStore
	extractor TextExtractor
	roi       RoiPicker
	files     FilePicker
	correct   func(string) string
	logger    *slog.Logger
}

// New constructs a controller and loads the persisted regions.
func New(d Deps) *Controller {
	c := &Controller{
		buf:       transcript.NewBuffer(),
		store:     d.Store,
		extractor: d.Extractor,
		roi:       d.Roi,
		files:     d.Files,
		correct:   d.Correct,
		logger:    d.Logger,
	}
	if c.correct == nil {
		c.correct = correct.Correct
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if c.store != nil {
		c.regions = c.store.Load()
	}
	c.logger.Info("batch controller ready", "roi1", c.regions.ROI1.String(), "roi2", c.regions.ROI2.String())
	return c
}

func (c *Controller) stateLocked() State {
	switch {
	case len(c.images) == 0:
		return StateEmpty
	case c.cursor >= len(c.images):
		return StateComplete
	default:
		return StateActive
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Cursor returns the index of the current image; it equals Len() when complete.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Len returns the number of images in the set.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}

// Current returns the image under the cursor.
func (c *Controller) Current() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stateLocked() != StateActive {
		return "", false
	}
	return c.images[c.cursor], true
}

// Images returns a copy of the image set.
func (c *Controller) Images() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.images...)
}

// Regions returns the region pair.
func (c *Controller) Regions() region.Regions {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regions
}

// LoadFolder replaces the image set with the image files directly inside dir,
// sorted by name. The transcript is kept.
func (c *Controller) LoadFolder(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read folder: %w", err)
	}
	var images []string
	for _, e := range entries {
		if e.IsDir() || !extract.IsImageFile(e.Name()) {
			continue
		}
		images = append(images, filepath.Join(dir, e.Name()))
	}
	sort.Strings(images)

	c.mu.Lock()
	c.images = images
	c.cursor = 0
	c.mu.Unlock()
	c.logger.Info("folder loaded", "dir", dir, "images", len(images))
	return len(images), nil
}

// LoadFile replaces the image set with a single file. A file without an
// image extension leaves the set empty.
func (c *Controller) LoadFile(path string) (int, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("open image: %w", err)
	}
	var images []string
	if extract.IsImageFile(path) {
		images = []string{path}
	}
	c.mu.Lock()
	c.images = images
	c.cursor = 0
	c.mu.Unlock()
	c.logger.Info("file loaded", "path", path, "images", len(images))
	return len(images), nil
}

// AddImage appends path to the set. When the set was empty or complete the
// cursor lands on the new image.
func (c *Controller) AddImage(path string) error {
	if !extract.IsImageFile(path) {
		return fmt.Errorf("%w: %s", ErrNotImage, filepath.Base(path))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = append(c.images, path)
	c.logger.Debug("image added", "path", path, "cursor", c.cursor, "images", len(c.images))
	return nil
}

// SelectFolder asks for a folder and loads it. ok is false on cancel.
func (c *Controller) SelectFolder() (n int, ok bool, err error) {
	if c.files == nil {
		return 0, false, ErrNoPicker
	}
	dir, ok := c.files.PickFolder()
	if !ok || dir == "" {
		return 0, false, nil
	}
	n, err = c.LoadFolder(dir)
	return n, err == nil, err
}

// SelectFile asks for a single image and loads it. ok is false on cancel.
func (c *Controller) SelectFile() (n int, ok bool, err error) {
	if c.files == nil {
		return 0, false, ErrNoPicker
	}
	path, ok := c.files.PickImage("Select image")
	if !ok || path == "" {
		return 0, false, nil
	}
	n, err = c.LoadFile(path)
	return n, err == nil, err
}

// DefineRegion asks for an image, lets the user draw on it and stores the
// result into slot. The whole pair is persisted. ok is false on cancel.
func (c *Controller) DefineRegion(slot region.Slot) (region.ROI, bool, error) {
	if c.files == nil || c.roi == nil {
		return region.ROI{}, false, ErrNoPicker
	}
	path, ok := c.files.PickImage(fmt.Sprintf("Select image for %s", slot))
	if !ok || path == "" {
		return region.ROI{}, false, nil
	}
	roi, ok, err := c.roi.Select(path)
	if err != nil {
		return region.ROI{}, false, err
	}
	if !ok || !roi.Valid() {
		return region.ROI{}, false, nil
	}

	c.mu.Lock()
	c.regions = c.regions.With(slot, roi)
	regions := c.regions
	c.mu.Unlock()

	c.logger.Info("region defined", "slot", slot.String(), "roi", roi.String(), "image", path)
	if c.store != nil {
		if err := c.store.Save(regions); err != nil {
			return roi, true, fmt.Errorf("persist regions: %w", err)
		}
	}
	return roi, true, nil
}

// Apply recognizes the region in slot on the current image, appends a
// transcript block and advances. The cursor moves even when recognition
// produced no text.
func (c *Controller) Apply(ctx context.Context, slot region.Slot) (ApplyResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stateLocked() != StateActive {
		return ApplyResult{}, ErrNotActive
	}
	roi, ok := c.regions.Get(slot)
	if !ok {
		return ApplyResult{}, fmt.Errorf("%w: %s", ErrRegionNotSet, slot)
	}
	path := c.images[c.cursor]
	var raw string
	if c.extractor != nil {
		raw = c.extractor.Extract(ctx, path, roi)
	}
	text := c.correct(raw)
	if raw == "" {
		c.logger.Warn("no text recognized", "image", path, "slot", slot.String())
	}
	c.buf.Append(filepath.Base(path), text)
	c.cursor++

	res := ApplyResult{Image: path, Text: text, Completed: c.cursor == len(c.images)}
	c.logger.Info("image processed", "image", filepath.Base(path), "slot", slot.String(),
		"cursor", c.cursor, "images", len(c.images), "completed", res.Completed)
	return res, nil
}

// Skip advances without recognizing. It refuses to step past the last image.
func (c *Controller) Skip() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stateLocked() != StateActive {
		return ErrNotActive
	}
	if c.cursor >= len(c.images)-1 {
		return ErrAtLastImage
	}
	c.cursor++
	c.logger.Debug("image skipped", "cursor", c.cursor)
	return nil
}

// Back steps the cursor back by one. From Complete it returns to the last
// image. Transcript blocks are never retracted.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor <= 0 {
		return ErrAtFirstImage
	}
	c.cursor--
	c.logger.Debug("moved back", "cursor", c.cursor)
	return nil
}

// Transcript returns the buffer content.
func (c *Controller) Transcript() string {
	return c.buf.String()
}

// Blocks returns the number of blocks appended since the buffer was last replaced.
func (c *Controller) Blocks() int {
	return c.buf.Blocks()
}

// Target returns the associated transcript file, or "".
func (c *Controller) Target() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// SyncTranscript replaces the buffer with the user's edited text.
func (c *Controller) SyncTranscript(text string) {
	c.buf.Set(text)
}

// Dirty reports whether the buffer holds text that was neither loaded from
// nor saved to the target.
func (c *Controller) Dirty() bool {
	text := c.buf.String()
	c.mu.Lock()
	defer c.mu.Unlock()
	return text != "" && text != c.saved
}

// ClearTranscript empties the buffer. The target stays associated.
func (c *Controller) ClearTranscript() {
	c.buf.Clear()
	c.logger.Info("transcript cleared")
}

// OpenTranscript loads path into the buffer and makes it the save target.
func (c *Controller) OpenTranscript(path string) error {
	text, err := transcript.ReadFile(path)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.target = path
	c.saved = text
	c.mu.Unlock()
	c.buf.Set(text)
	c.logger.Info("transcript opened", "path", path, "bytes", len(text))
	return nil
}

// SetTranscriptTarget associates path without reading it. The file is
// created by the next save.
func (c *Controller) SetTranscriptTarget(path string) {
	c.mu.Lock()
	c.target = path
	c.mu.Unlock()
	c.logger.Info("transcript target set", "path", path)
}

// SaveTranscript overwrites the target with the whole buffer.
func (c *Controller) SaveTranscript() error {
	target := c.Target()
	if target == "" {
		return ErrNoTarget
	}
	text := c.buf.String()
	if err := transcript.WriteFile(target, text); err != nil {
		return err
	}
	c.mu.Lock()
	c.saved = text
	c.mu.Unlock()
	c.logger.Info("transcript saved", "path", target, "bytes", len(text))
	return nil
}

// Close saves the transcript when a target is associated.
func (c *Controller) Close() error {
	if c.Target() == "" {
		return nil
	}
	return c.SaveTranscript()
}
