package theme

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestShade(t *testing.T) {
	if got := Shade("not-a-color", 0.5); got != "not-a-color" {
		t.Fatalf("invalid input should pass through, got %q", got)
	}
	if got := Shade("#2563eb", 1); got != "#ffffff" {
		t.Fatalf("full lighten: got %q, want #ffffff", got)
	}
	if got := Shade("#2563eb", -1); got != "#000000" {
		t.Fatalf("full darken: got %q, want #000000", got)
	}
	if got := Shade("#2563eb", 5); got != "#ffffff" {
		t.Fatalf("t above 1 should clamp, got %q", got)
	}
}

func TestCurrentFollowsMode(t *testing.T) {
	defer func() { darkMode = false }()

	darkMode = false
	if Current() != light {
		t.Fatalf("expected light colors")
	}
	darkMode = true
	if Current() != dark || !IsDark() {
		t.Fatalf("expected dark colors")
	}
}

func TestOutlineColorMatchesDanger(t *testing.T) {
	defer func() { darkMode = false }()

	for _, mode := range []bool{false, true} {
		darkMode = mode
		want, err := colorful.Hex(Current().Danger)
		if err != nil {
			t.Fatalf("danger color %q: %v", Current().Danger, err)
		}
		if got := OutlineColor(); got.Hex() != want.Hex() {
			t.Fatalf("dark=%v: outline %s, want %s", mode, got.Hex(), want.Hex())
		}
	}
}
