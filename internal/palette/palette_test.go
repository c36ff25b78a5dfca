package palette

import (
	"regexp"
	"testing"

	"github.com/colorhymn/colorhymn/internal/config"
	"github.com/colorhymn/colorhymn/internal/token"
)

var hexRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func TestByName(t *testing.T) {
	if ByName("light").Name() != "light" {
		t.Error("light theme not selected")
	}
	if ByName("LIGHT").Name() != "light" {
		t.Error("theme lookup should be case-insensitive")
	}
	if ByName("dark").Name() != "dark" {
		t.Error("dark theme not selected")
	}
	if ByName("no-such-theme").Name() != "dark" {
		t.Error("unknown names should fall back to dark")
	}
	if Default().Name() != "dark" {
		t.Error("default theme should be dark")
	}
}

func TestTokenColor_EveryKind(t *testing.T) {
	for _, theme := range []*Theme{dark, light} {
		for k := token.Text; k <= token.Identifier; k++ {
			c := theme.TokenColor(k)
			if !hexRegex.MatchString(c) {
				t.Errorf("%s theme: %v color = %q, not a hex color", theme.Name(), k, c)
			}
		}
	}
}

func TestSeverityColor(t *testing.T) {
	theme := Default()
	for sev := config.SeverityTrace; sev <= config.SeverityUnknown; sev++ {
		if c := theme.SeverityColor(sev); !hexRegex.MatchString(c) {
			t.Errorf("%v color = %q, not a hex color", sev, c)
		}
	}
	if theme.SeverityColor(config.SeverityError) == theme.SeverityColor(config.SeverityDebug) {
		t.Error("error and debug should not share a color")
	}
}

func TestBlend(t *testing.T) {
	if got := Blend("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("Blend(..., 0) = %q, want the first color", got)
	}
	if got := Blend("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Errorf("Blend(..., 1) = %q, want the second color", got)
	}

	mid := Blend("#000000", "#ffffff", 0.5)
	if !hexRegex.MatchString(mid) {
		t.Errorf("midpoint = %q, not a hex color", mid)
	}
	if mid == "#000000" || mid == "#ffffff" {
		t.Errorf("midpoint = %q, should sit between the endpoints", mid)
	}
}

func TestBlend_BadInput(t *testing.T) {
	if got := Blend("nope", "#ffffff", 0.5); got != "nope" {
		t.Errorf("bad first color: got %q, want it returned unchanged", got)
	}
	if got := Blend("#000000", "nope", 0.5); got != "#000000" {
		t.Errorf("bad second color: got %q, want the first returned", got)
	}
}

func TestMessageColor(t *testing.T) {
	theme := Default()

	if got := theme.MessageColor(0); got != theme.base {
		t.Errorf("MessageColor(0) = %q, want the base color %q", got, theme.base)
	}
	for _, score := range []float64{-1, 0, 0.15, 0.5, 0.9, 1, 2} {
		if c := theme.MessageColor(score); !hexRegex.MatchString(c) {
			t.Errorf("MessageColor(%v) = %q, not a hex color", score, c)
		}
	}
	if theme.MessageColor(1) == theme.base {
		t.Error("a maximally hot score should tint away from the base color")
	}
}
