package state

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#00ff00",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
	"gray":   "#808080",
}

// ParseColor resolves a color name or #rrggbb value. Unknown values are black.
func ParseColor(s string) color.NRGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// ColorName returns the palette name for c, or its #rrggbb form.
func ColorName(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "black"
	}
	hex := cf.Hex()
	for name, h := range namedColors {
		if h == hex {
			return name
		}
	}
	return hex
}
