package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/soocke/roi-ocr-go/domain/region"
	"github.com/soocke/roi-ocr-go/ui/theme"
	"github.com/soocke/roi-ocr-go/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const tick = time.Second

type app struct {
	c        *AppContainer
	width    int
	height   int
	afterID  string
	exitOnce sync.Once
}

// NewApp prepares the main window. Start blocks until it is closed.
func NewApp(title string, c *AppContainer) *app {
	a := &app{c: c, width: c.Config.WindowWidth, height: c.Config.WindowHeight}

	enableDPIAwareness(c.Logger)
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", a.width, a.height))
	return a
}

func (a *app) Start() {
	theme.InitStyles()
	p := a.c.Presenter
	a.c.RootView.Build(view.Handlers{
		SelectFolder:   p.SelectFolder,
		SelectFile:     p.SelectFile,
		DefineROI1:     func() { p.DefineRegion(region.Slot1) },
		DefineROI2:     func() { p.DefineRegion(region.Slot2) },
		ApplyROI1:      func() { p.Apply(region.Slot1) },
		ApplyROI2:      func() { p.Apply(region.Slot2) },
		Skip:           p.Skip,
		Back:           p.Back,
		Capture:        p.Capture,
		OpenTranscript: p.OpenTranscript,
		SaveAs:         p.SaveAs,
		Save:           p.Save,
		Clear:          p.Clear,
		Exit:           a.exitHandler,
	})
	p.Render()

	a.scheduleUpdate()
	App.Wait()
}

func (a *app) update() {
	func() {
		defer func() { _ = recover() }()
		a.c.Presenter.Tick()
	}()
	a.scheduleUpdate()
}

// scheduleUpdate uses TclAfter to stay on Tk's event loop thread.
func (a *app) scheduleUpdate() {
	a.afterID = TclAfter(tick, func() { a.update() })
}

func (a *app) exitHandler() {
	a.exitOnce.Do(func() {
		if a.afterID != "" {
			TclAfterCancel(a.afterID)
		}
		logger := a.c.Logger
		if err := a.c.Presenter.Close(); err != nil {
			logger.Error("transcript not saved on exit", "error", err)
		}
		if err := a.c.Engine.Close(); err != nil {
			logger.Warn("ocr engine close failed", "error", err)
		}
		st := a.c.CaptureSvc.Stats()
		logger.Info("session closed", "captures", st.Captures, "avg_capture", st.AvgCapture, "images", a.c.Controller.Len())
		Destroy(App)
	})
}
