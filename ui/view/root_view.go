package view

import (
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/roi-ocr-go/config"
	"github.com/soocke/roi-ocr-go/ui/presenter"
	"github.com/soocke/roi-ocr-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the callbacks bound to the buttons of the main window.
type Handlers struct {
	SelectFolder   func()
	SelectFile     func()
	DefineROI1     func()
	DefineROI2     func()
	ApplyROI1      func()
	ApplyROI2      func()
	Skip           func()
	Back           func()
	Capture        func()
	OpenTranscript func()
	SaveAs         func()
	Save           func()
	Clear          func()
	Exit           func()
}

// RootView composes the main window and implements presenter.BatchView.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	load    func(path string) (image.Image, error)
	dialogs *Dialogs

	// Subviews
	Preview     ImagePreview
	Progress    ProgressStats
	ConfigPanel ConfigPanel

	// Widgets
	statusLbl  *TLabelWidget
	roi1Lbl    *TLabelWidget
	roi2Lbl    *TLabelWidget
	transcript *TextWidget
	applyBtns  [2]*TButtonWidget
	skipBtn    *ButtonWidget
	backBtn    *ButtonWidget
	saveBtn    *ButtonWidget

	shownImage string
}

var _ presenter.BatchView = (*RootView)(nil)

// NewRootView returns an unbuilt view. load decodes images for the preview.
func NewRootView(cfg *config.Config, cfgPath string, dialogs *Dialogs, load func(string) (image.Image, error), logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, dialogs: dialogs, load: load, logger: logger}
}

// Build constructs the layout and binds h to the controls.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	GridColumnConfigure(App, 1, Weight(1))
	GridRowConfigure(App, 2, Weight(1))

	// Row 0: toolbar
	bar := Frame()
	Grid(bar, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	add := func(w Widget) {
		Grid(w, In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		col++
	}
	add(Button(Txt("Select Folder"), Command(h.SelectFolder)))
	add(Button(Txt("Select File"), Command(h.SelectFile)))
	add(Button(Txt("Define ROI1"), Command(h.DefineROI1)))
	add(Button(Txt("Define ROI2"), Command(h.DefineROI2)))
	rv.applyBtns[0] = TButton(Txt("Apply ROI1 [F1]"), Style(theme.StylePrimaryButton), Command(h.ApplyROI1))
	add(rv.applyBtns[0])
	rv.applyBtns[1] = TButton(Txt("Apply ROI2 [F2]"), Style(theme.StylePrimaryButton), Command(h.ApplyROI2))
	add(rv.applyBtns[1])
	rv.skipBtn = Button(Txt("Skip [F3]"), Command(h.Skip))
	add(rv.skipBtn)
	rv.backBtn = Button(Txt("Back [F4]"), Command(h.Back))
	add(rv.backBtn)
	add(Button(Txt("Capture"), Command(h.Capture)))

	// Row 1: status and regions
	rv.statusLbl = TLabel(Txt("No images loaded"), Style(theme.StyleStatusLabel))
	Grid(rv.statusLbl, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Row 2 left: preview, regions, progress, settings
	left := Frame()
	Grid(left, Row(2), Column(0), Sticky("nw"), Padx("0.3m"))
	rv.Preview = NewImagePreview(left, 0, 0, rv.cfg.DisplayMaxWidth, rv.cfg.DisplayMaxHeight)
	regions := Frame()
	Grid(regions, In(left), Row(1), Column(0), Sticky("we"))
	rv.roi1Lbl = TLabel(Txt("ROI1: <unset>"), Style(theme.StyleRegionLabel))
	Grid(rv.roi1Lbl, In(regions), Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	rv.roi2Lbl = TLabel(Txt("ROI2: <unset>"), Style(theme.StyleRegionLabel))
	Grid(rv.roi2Lbl, In(regions), Row(0), Column(1), Sticky("w"), Padx("0.2m"))
	stats := Frame()
	Grid(stats, In(left), Row(2), Column(0), Sticky("we"))
	rv.Progress = NewProgressStats(stats, 0, 0)
	settings := Frame(Borderwidth(1), Relief("groove"))
	Grid(settings, In(left), Row(3), Column(0), Sticky("we"), Pady("0.4m"))
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	rv.ConfigPanel.Build(settings, 0)

	// Row 2 right: transcript editor
	right := Frame()
	Grid(right, Row(2), Column(1), Sticky("nsew"), Padx("0.3m"))
	GridRowConfigure(right, 0, Weight(1))
	GridColumnConfigure(right, 0, Weight(1))
	var scroll *TScrollbarWidget
	rv.transcript = Text(Height(24), Width(60), Wrap("word"),
		Yscrollcommand(func(e *Event) { e.ScrollSet(scroll) }))
	scroll = TScrollbar(Command(func(e *Event) { e.Yview(rv.transcript) }))
	Grid(rv.transcript, In(right), Row(0), Column(0), Sticky("nsew"))
	Grid(scroll, In(right), Row(0), Column(1), Sticky("ns"))

	files := Frame()
	Grid(files, In(right), Row(1), Column(0), Columnspan(2), Sticky("we"), Pady("0.3m"))
	fcol := 0
	addFile := func(w Widget) {
		Grid(w, In(files), Row(0), Column(fcol), Sticky("we"), Padx("0.2m"))
		fcol++
	}
	addFile(Button(Txt("Open Transcript"), Command(h.OpenTranscript)))
	addFile(Button(Txt("Save As"), Command(h.SaveAs)))
	rv.saveBtn = Button(Txt("Save"), Command(h.Save))
	addFile(rv.saveBtn)
	addFile(Button(Txt("Clear"), Command(h.Clear)))
	addFile(Button(Txt("Dark Mode"), Command(func() { theme.SetDark(!theme.IsDark()) })))
	addFile(TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(h.Exit)))

	for key, fn := range map[string]func(){
		"<F1>":        h.ApplyROI1,
		"<F2>":        h.ApplyROI2,
		"<F3>":        h.Skip,
		"<F4>":        h.Back,
		"<Control-s>": h.Save,
	} {
		Bind(App, key, Command(fn))
	}
}

// guard swallows Tk errors from widgets destroyed during shutdown.
func guard(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// ShowImage loads path into the preview. An empty path clears it.
func (rv *RootView) ShowImage(path string) {
	if rv == nil || rv.Preview == nil || path == rv.shownImage {
		return
	}
	rv.shownImage = path
	if path == "" || rv.load == nil {
		guard(rv.Preview.Reset)
		return
	}
	img, err := rv.load(path)
	if err != nil {
		if rv.logger != nil {
			rv.logger.Warn("preview load failed", "path", path, "error", err)
		}
		guard(rv.Preview.Reset)
		return
	}
	guard(func() { rv.Preview.Show(img) })
}

// SetStatus updates the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.statusLbl != nil {
		guard(func() { rv.statusLbl.Configure(Txt(text)) })
	}
}

// SetProgress updates the batch counters.
func (rv *RootView) SetProgress(processed, skipped int, elapsed time.Duration) {
	if rv != nil && rv.Progress != nil {
		guard(func() { rv.Progress.Set(processed, skipped, elapsed) })
	}
}

// SetRegions shows the stored regions.
func (rv *RootView) SetRegions(roi1, roi2 string) {
	if rv == nil || rv.roi1Lbl == nil {
		return
	}
	guard(func() {
		rv.roi1Lbl.Configure(Txt("ROI1: " + roi1))
		rv.roi2Lbl.Configure(Txt("ROI2: " + roi2))
	})
}

// SetTranscript replaces the editor content unless it already matches, so
// the cursor position survives renders that change nothing.
func (rv *RootView) SetTranscript(text string) {
	if rv == nil || rv.transcript == nil || rv.TranscriptText() == text {
		return
	}
	guard(func() {
		rv.transcript.Delete("1.0", END)
		rv.transcript.Insert(END, text)
	})
}

// TranscriptText returns the editor content without the newline Tk appends.
func (rv *RootView) TranscriptText() string {
	if rv == nil || rv.transcript == nil {
		return ""
	}
	var s string
	guard(func() { s = strings.Join(rv.transcript.Get("1.0", END), "") })
	return strings.TrimSuffix(s, "\n")
}

// SetActions enables or disables the batch buttons.
func (rv *RootView) SetActions(a presenter.Actions) {
	if rv == nil || rv.skipBtn == nil {
		return
	}
	guard(func() {
		for _, b := range rv.applyBtns {
			b.Configure(State(stateOf(a.Apply)))
		}
		rv.skipBtn.Configure(State(stateOf(a.Skip)))
		rv.backBtn.Configure(State(stateOf(a.Back)))
		rv.saveBtn.Configure(State(stateOf(a.Save)))
	})
}

func stateOf(enabled bool) string {
	if enabled {
		return "normal"
	}
	return "disabled"
}

func (rv *RootView) Info(title, msg string)         { rv.dialogs.message("info", title, msg) }
func (rv *RootView) Warn(title, msg string)         { rv.dialogs.message("warning", title, msg) }
func (rv *RootView) Error(title, msg string)        { rv.dialogs.message("error", title, msg) }
func (rv *RootView) Confirm(title, msg string) bool { return rv.dialogs.confirm(title, msg) }
