package app

import (
	"log/slog"

	"github.com/soocke/roi-ocr-go/config"
	"github.com/soocke/roi-ocr-go/domain/batch"
	"github.com/soocke/roi-ocr-go/domain/capture"
	"github.com/soocke/roi-ocr-go/domain/extract"
	"github.com/soocke/roi-ocr-go/domain/ocr"
	"github.com/soocke/roi-ocr-go/domain/region"
	"github.com/soocke/roi-ocr-go/ui/model"
	"github.com/soocke/roi-ocr-go/ui/presenter"
	"github.com/soocke/roi-ocr-go/ui/view"
)

// AppContainer assembles services, models, the presenter and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Engine     ocr.Engine
	Regions    *region.Store
	Controller *batch.Controller
	CaptureSvc *capture.Service
	Progress   *model.ProgressModel

	Dialogs   *view.Dialogs
	RootView  *view.RootView
	Presenter *presenter.BatchPresenter
}

// BuildContainer constructs all components. No widgets are created here;
// the root view is built by the app once Tk styles are applied.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	engine, err := ocr.New(cfg.OCR, logger)
	if err != nil {
		return nil, err
	}
	c.Engine = engine
	c.Regions = region.NewStore(cfg.RegionFile, logger)
	c.Dialogs = view.NewDialogs(logger)

	selector := region.NewSelector(extract.LoadImage, view.NewRegionDialog(logger),
		cfg.PreviewMaxWidth, cfg.PreviewMaxHeight, logger)
	c.Controller = batch.New(batch.Deps{
		Store:     c.Regions,
		Extractor: extract.NewExtractor(engine, cfg, logger),
		Roi:       selector,
		Files:     c.Dialogs,
		Logger:    logger,
	})
	c.CaptureSvc = capture.NewService(logger)
	c.Progress = model.NewProgressModel()

	c.RootView = view.NewRootView(cfg, cfgPath, c.Dialogs, extract.LoadImage, logger)
	c.Presenter = presenter.NewBatchPresenter(c.Controller, c.RootView, c.Dialogs,
		c.CaptureSvc, c.Progress, cfg.CaptureDir, logger)
	return c, nil
}
