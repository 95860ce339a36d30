package config

import (
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the config file looked up when no -config flag is given.
const DefaultPath = "roi-ocr.json"

// OCRConfig selects and tunes the recognition engine.
type OCRConfig struct {
	Engine         string   `json:"engine"`
	Languages      []string `json:"languages"`
	TessdataPrefix string   `json:"tessdata_prefix"`
	// Classify requests orientation detection before recognition.
	Classify      bool    `json:"classify"`
	MinConfidence float64 `json:"min_confidence"`
}

// PreprocessConfig controls optional pixel adjustments applied to a crop before OCR.
type PreprocessConfig struct {
	Grayscale bool    `json:"grayscale"`
	Contrast  float64 `json:"contrast"` // -1..1, 0 disables
	Upscale   float64 `json:"upscale"`  // 1 disables
}

// Config holds runtime configuration for the transcriber.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Persisted regions (binary blob, see domain/region).
	RegionFile string `json:"region_file"`

	// Bounds of the preview used while drawing a region.
	PreviewMaxWidth  int `json:"preview_max_width"`
	PreviewMaxHeight int `json:"preview_max_height"`
	// Bounds of the thumbnail in the main window.
	DisplayMaxWidth  int `json:"display_max_width"`
	DisplayMaxHeight int `json:"display_max_height"`

	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`

	// Folder receiving screen captures; empty means the current image folder.
	CaptureDir string `json:"capture_dir"`

	OCR        OCRConfig        `json:"ocr"`
	Preprocess PreprocessConfig `json:"preprocess"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		RegionFile:       "roi_config.bin",
		PreviewMaxWidth:  1200,
		PreviewMaxHeight: 800,
		DisplayMaxWidth:  400,
		DisplayMaxHeight: 400,
		WindowWidth:      960,
		WindowHeight:     720,
		OCR: OCRConfig{
			Engine:    "tesseract",
			Languages: []string{"chi_sim"},
			Classify:  true,
		},
		Preprocess: PreprocessConfig{
			Upscale: 1,
		},
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if strings.TrimSpace(c.RegionFile) == "" {
		c.RegionFile = def.RegionFile
	}
	if c.PreviewMaxWidth <= 0 {
		c.PreviewMaxWidth = def.PreviewMaxWidth
	}
	if c.PreviewMaxHeight <= 0 {
		c.PreviewMaxHeight = def.PreviewMaxHeight
	}
	if c.DisplayMaxWidth <= 0 {
		c.DisplayMaxWidth = def.DisplayMaxWidth
	}
	if c.DisplayMaxHeight <= 0 {
		c.DisplayMaxHeight = def.DisplayMaxHeight
	}
	if c.WindowWidth < 320 {
		c.WindowWidth = def.WindowWidth
	}
	if c.WindowHeight < 240 {
		c.WindowHeight = def.WindowHeight
	}
	c.OCR.Engine = strings.ToLower(strings.TrimSpace(c.OCR.Engine))
	if c.OCR.Engine == "" {
		c.OCR.Engine = def.OCR.Engine
	}
	langs := c.OCR.Languages[:0]
	for _, l := range c.OCR.Languages {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	c.OCR.Languages = langs
	if len(c.OCR.Languages) == 0 {
		c.OCR.Languages = def.OCR.Languages
	}
	if c.OCR.MinConfidence < 0 || c.OCR.MinConfidence > 1 {
		c.OCR.MinConfidence = 0
	}
	if c.Preprocess.Contrast < -1 || c.Preprocess.Contrast > 1 {
		c.Preprocess.Contrast = 0
	}
	if c.Preprocess.Upscale < 1 || c.Preprocess.Upscale > 4 {
		c.Preprocess.Upscale = 1
	}
	return nil
}

// Update is called by cleanenv after the file has been parsed.
func (c *Config) Update() error { return c.Validate() }

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On parse error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Flags are the command-line options of the transcriber.
type Flags struct {
	Path  string
	Debug bool
}

// ParseFlags parses args (without the program name).
func ParseFlags(args []string) (Flags, error) {
	var f Flags
	fs := flag.NewFlagSet("roi-ocr", flag.ContinueOnError)
	fs.StringVar(&f.Path, "config", DefaultPath, "path to the JSON config file")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return Flags{Path: DefaultPath}, err
	}
	return f, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
