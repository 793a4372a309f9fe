package render

import (
	"image/color"

	"golang.org/x/image/colornames"

	"lantern/pkg/css"
)

var (
	Background = colornames.White
	Foreground = colornames.Black
)

// Resolve converts a computed color value, using fallback for values that
// do not parse.
func Resolve(value string, fallback color.RGBA) color.RGBA {
	if c, ok := css.ParseColor(value); ok {
		return c
	}
	return fallback
}
