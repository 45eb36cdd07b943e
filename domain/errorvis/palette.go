package errorvis

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteNames lists the highlight colours in display order.
var PaletteNames = []string{"yellow", "red", "blue", "green", "white", "black"}

var paletteHex = map[string]string{
	"yellow": "#ffff00",
	"red":    "#ff0000",
	"blue":   "#0000ff",
	"green":  "#00ff00",
	"white":  "#ffffff",
	"black":  "#000000",
}

// PaletteColor resolves a palette name to an opaque colour.
func PaletteColor(name string) (color.RGBA, bool) {
	hex, ok := paletteHex[name]
	if !ok {
		return color.RGBA{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
}
