package view

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/soocke/roi-ocr-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is the settings form for recognition and preprocessing.
// It writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	ApplyChanges() error                                  // parses widget text into the config and persists it
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(18))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("languages", "Languages (restart)", strings.Join(c.OCR.Languages, ","))
	makeRow("classify", "Detect orientation", fmt.Sprintf("%t", c.OCR.Classify))
	makeRow("minConfidence", "Min confidence (0-1)", fmt.Sprintf("%.2f", c.OCR.MinConfidence))
	makeRow("grayscale", "Grayscale", fmt.Sprintf("%t", c.Preprocess.Grayscale))
	makeRow("contrast", "Contrast (-1..1)", fmt.Sprintf("%.2f", c.Preprocess.Contrast))
	makeRow("upscale", "Upscale (1-4)", fmt.Sprintf("%.1f", c.Preprocess.Upscale))
	makeRow("captureDir", "Capture folder", c.CaptureDir)
	v.applyBtn = Button(Txt("Apply Settings"), Command(func() { _ = v.ApplyChanges() }))
	Grid(v.applyBtn, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *configPanel) ApplyChanges() error {
	if v.cfg == nil {
		return nil
	}
	cfg := *v.cfg // copy
	cfg.OCR.Languages = slices.Clone(v.cfg.OCR.Languages)
	assignFloat := func(id string, dst *float64) {
		if s, ok := v.text(id); ok {
			if f, ok := parseFloatField(s); ok {
				*dst = f
			}
		}
	}
	assignBool := func(id string, dst *bool) {
		if s, ok := v.text(id); ok {
			if b, ok := parseBoolLoose(s); ok {
				*dst = b
			}
		}
	}
	if s, ok := v.text("languages"); ok && s != "" {
		cfg.OCR.Languages = parseList(s)
	}
	assignBool("classify", &cfg.OCR.Classify)
	assignFloat("minConfidence", &cfg.OCR.MinConfidence)
	assignBool("grayscale", &cfg.Preprocess.Grayscale)
	assignFloat("contrast", &cfg.Preprocess.Contrast)
	assignFloat("upscale", &cfg.Preprocess.Upscale)
	if s, ok := v.text("captureDir"); ok {
		cfg.CaptureDir = s
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		return err
	}
	if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	return nil
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}

// parseList splits on commas, plus signs and whitespace so both "chi_sim,eng"
// and the tesseract form "chi_sim+eng" are accepted.
func parseList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '+' || r == ' ' || r == '\t'
	})
}
