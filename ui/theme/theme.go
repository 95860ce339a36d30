package theme

// Colors and ttk styles for the transcriber window. Derived surface
// shades are mixed from the base palette in Lab space.

import (
	"github.com/lucasb-eyer/go-colorful"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Colors defines the semantic colors used across widgets.
type Colors struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	light = Colors{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		Border:    "#d0d7de",
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#10b981",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	dark = Colors{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Border:    "#334155",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#10b981",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStatusLabel   = "status.TLabel"
	StyleRegionLabel   = "region.TLabel"
)

var darkMode bool

// Current returns the palette of the active mode.
func Current() Colors {
	if darkMode {
		return dark
	}
	return light
}

// Shade mixes hex towards black (t<0) or white (t>0) by |t| in Lab space.
// Invalid input is returned unchanged.
func Shade(hex string, t float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	target := colorful.Color{R: 1, G: 1, B: 1}
	if t < 0 {
		target = colorful.Color{}
		t = -t
	}
	if t > 1 {
		t = 1
	}
	return c.BlendLab(target, t).Clamped().Hex()
}

// OutlineColor returns the color used to draw region rectangles.
func OutlineColor() colorful.Color {
	c, err := colorful.Hex(Current().Danger)
	if err != nil {
		return colorful.Color{R: 1}
	}
	return c
}

// InitStyles (re)applies styles for the current mode.
func InitStyles() { applyStyles(Current()) }

// SetDark switches the mode and reapplies styles.
func SetDark(on bool) {
	darkMode = on
	applyStyles(Current())
}

// IsDark reports the current mode.
func IsDark() bool { return darkMode }

func applyStyles(p Colors) {
	_ = ActivateTheme("azure light")
	App.Configure(Background(p.AppBg))

	for name, base := range map[string]string{
		StylePrimaryButton: p.Primary,
		StyleDangerButton:  p.Danger,
	} {
		StyleConfigure(name,
			Background(base),
			Foreground("white"),
			Padding("4p 3p"),
			Borderwidth(1),
			Relief("ridge"),
		)
	}
	StyleConfigure(StyleStatusLabel,
		Foreground(p.Text),
		Background(Shade(p.Surface, -0.04)),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleRegionLabel,
		Foreground(p.TextMuted),
		Background(p.Surface),
		Padding("2p 1p"),
	)
}
