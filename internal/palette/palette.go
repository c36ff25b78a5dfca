// Package palette maps token kinds and severities to display colors.
//
// Colors are hex "#rrggbb" strings throughout; blending happens in LAB
// space so temperature tinting stays perceptually even.
package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/colorhymn/colorhymn/internal/config"
	"github.com/colorhymn/colorhymn/internal/token"
)

// Theme is an immutable named color assignment.
type Theme struct {
	name     string
	base     string
	heat     string
	tokens   map[token.Kind]string
	severity map[config.Severity]string
}

// Name returns the theme name.
func (t *Theme) Name() string {
	return t.name
}

var dark = &Theme{
	name: "dark",
	base: "#abb2bf",
	heat: "#e06c75",
	tokens: map[token.Kind]string{
		token.Timestamp:   "#5c6370",
		token.UUID:        "#56b6c2",
		token.URL:         "#61afef",
		token.Email:       "#56b6c2",
		token.MACAddress:  "#d19a66",
		token.IPv6Address: "#d19a66",
		token.IPAddress:   "#d19a66",
		token.CIDR:        "#d19a66",
		token.Path:        "#98c379",
		token.Domain:      "#61afef",
		token.Port:        "#d19a66",
		token.Protocol:    "#c678dd",
		token.Interface:   "#c678dd",
		token.HTTPMethod:  "#61afef",
		token.HTTPStatus:  "#d19a66",
		token.HexNumber:   "#d19a66",
		token.String:      "#98c379",
		token.Key:         "#e5c07b",
		token.VPNKeyword:  "#c678dd",
		token.EventID:     "#56b6c2",
		token.SPI:         "#56b6c2",
		token.SID:         "#56b6c2",
		token.RegistryKey: "#98c379",
		token.HResult:     "#e06c75",
		token.Keyword:     "#c678dd",
		token.Number:      "#d19a66",
		token.Bracket:     "#5c6370",
		token.Operator:    "#5c6370",
		token.Identifier:  "#abb2bf",
		token.Text:        "#abb2bf",
	},
	severity: map[config.Severity]string{
		config.SeverityFatal:    "#e06c75",
		config.SeverityCritical: "#e06c75",
		config.SeverityError:    "#e06c75",
		config.SeverityWarn:     "#e5c07b",
		config.SeverityInfo:     "#61afef",
		config.SeverityDebug:    "#5c6370",
		config.SeverityTrace:    "#5c6370",
		config.SeverityUnknown:  "#abb2bf",
	},
}

var light = &Theme{
	name: "light",
	base: "#383a42",
	heat: "#ca1243",
	tokens: map[token.Kind]string{
		token.Timestamp:   "#a0a1a7",
		token.UUID:        "#0184bc",
		token.URL:         "#4078f2",
		token.Email:       "#0184bc",
		token.MACAddress:  "#986801",
		token.IPv6Address: "#986801",
		token.IPAddress:   "#986801",
		token.CIDR:        "#986801",
		token.Path:        "#50a14f",
		token.Domain:      "#4078f2",
		token.Port:        "#986801",
		token.Protocol:    "#a626a4",
		token.Interface:   "#a626a4",
		token.HTTPMethod:  "#4078f2",
		token.HTTPStatus:  "#986801",
		token.HexNumber:   "#986801",
		token.String:      "#50a14f",
		token.Key:         "#c18401",
		token.VPNKeyword:  "#a626a4",
		token.EventID:     "#0184bc",
		token.SPI:         "#0184bc",
		token.SID:         "#0184bc",
		token.RegistryKey: "#50a14f",
		token.HResult:     "#ca1243",
		token.Keyword:     "#a626a4",
		token.Number:      "#986801",
		token.Bracket:     "#a0a1a7",
		token.Operator:    "#a0a1a7",
		token.Identifier:  "#383a42",
		token.Text:        "#383a42",
	},
	severity: map[config.Severity]string{
		config.SeverityFatal:    "#ca1243",
		config.SeverityCritical: "#ca1243",
		config.SeverityError:    "#ca1243",
		config.SeverityWarn:     "#c18401",
		config.SeverityInfo:     "#4078f2",
		config.SeverityDebug:    "#a0a1a7",
		config.SeverityTrace:    "#a0a1a7",
		config.SeverityUnknown:  "#383a42",
	},
}

// Default returns the default dark theme.
func Default() *Theme {
	return dark
}

// ByName returns the named theme, falling back to the default.
func ByName(name string) *Theme {
	switch strings.ToLower(name) {
	case "light":
		return light
	default:
		return dark
	}
}

// TokenColor returns the hex color for a token kind.
func (t *Theme) TokenColor(kind token.Kind) string {
	if c, ok := t.tokens[kind]; ok {
		return c
	}
	return t.base
}

// SeverityColor returns the hex color for a normalized severity.
func (t *Theme) SeverityColor(sev config.Severity) string {
	if c, ok := t.severity[sev]; ok {
		return c
	}
	return t.base
}

// MessageColor tints the base text color toward the theme's heat color
// according to a temperature score in [0, 1].
func (t *Theme) MessageColor(score float64) string {
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	return Blend(t.base, t.heat, score*0.6)
}

// Blend mixes two hex colors in LAB space. amount 0 yields a, 1 yields b.
// Unparseable inputs return a unchanged.
func Blend(a, b string, amount float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, amount).Clamped().Hex()
}
