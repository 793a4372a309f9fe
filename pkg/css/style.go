package css

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"lantern/pkg/html"
)

// Value returns the computed value of property on node, or fallback when the
// node has not been styled.
func Value(node *html.Node, property, fallback string) string {
	if node == nil || node.Style == nil {
		return fallback
	}
	if v, ok := node.Style[property]; ok {
		return v
	}
	return fallback
}

// ParseLength parses a pixel length such as "100px" or "100".
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	return parseNumber(strings.TrimSuffix(val, "px"))
}

// parseNumber accepts finite decimal numbers only; NaN and Inf are rejected.
func parseNumber(s string) (float64, bool) {
	num, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, false
	}
	return num, true
}

// FormatPx renders a pixel length the way computed styles store it. Whole
// numbers keep one decimal place, so 8 becomes "8.0px".
func FormatPx(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + "px"
}

// ParseColor parses a named color or a #rgb / #rrggbb / #rrggbbaa hex value.
// The keyword "transparent" parses to a fully transparent color.
func ParseColor(value string) (color.RGBA, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "transparent" {
		return color.RGBA{}, true
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value[1:])
	}
	c, ok := colornames.Map[value]
	return c, ok
}

func parseHexColor(hex string) (color.RGBA, bool) {
	switch len(hex) {
	case 3, 4:
		expanded := make([]byte, 0, len(hex)*2)
		for i := 0; i < len(hex); i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return color.RGBA{}, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, true
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, true
}
