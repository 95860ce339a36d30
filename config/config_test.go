package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RegionFile != "roi_config.bin" || cfg.OCR.Engine != "tesseract" || !cfg.OCR.Classify {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.PreviewMaxWidth = 640
	cfg.OCR.Languages = []string{"chi_sim", "eng"}
	cfg.Preprocess.Grayscale = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Debug || got.PreviewMaxWidth != 640 || len(got.OCR.Languages) != 2 || !got.Preprocess.Grayscale {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoad_ValidatesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	body := `{"preview_max_width": -5, "ocr": {"engine": " Tesseract ", "languages": [], "min_confidence": 3}, "preprocess": {"upscale": 12, "contrast": 4}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PreviewMaxWidth != 1200 {
		t.Fatalf("expected preview width reset, got %d", cfg.PreviewMaxWidth)
	}
	if cfg.OCR.Engine != "tesseract" {
		t.Fatalf("expected normalized engine, got %q", cfg.OCR.Engine)
	}
	if len(cfg.OCR.Languages) != 1 || cfg.OCR.Languages[0] != "chi_sim" {
		t.Fatalf("expected default languages, got %v", cfg.OCR.Languages)
	}
	if cfg.OCR.MinConfidence != 0 || cfg.Preprocess.Upscale != 1 || cfg.Preprocess.Contrast != 0 {
		t.Fatalf("expected clamped values: %+v", cfg)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg == nil || cfg.RegionFile == "" {
		t.Fatalf("expected defaults alongside error")
	}
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Path != DefaultPath || f.Debug {
		t.Fatalf("unexpected defaults: %+v", f)
	}

	f, err = ParseFlags([]string{"-config", "other.json", "-debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Path != "other.json" || !f.Debug {
		t.Fatalf("flags not applied: %+v", f)
	}

	if _, err := ParseFlags([]string{"-bogus"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}
