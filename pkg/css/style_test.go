package css

import (
	"image/color"
	"testing"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"16px", 16, true},
		{"8.0px", 8, true},
		{" 12 ", 12, true},
		{"auto", 0, false},
		{"50%", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Infinitypx", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLength(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseLength(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatPx(t *testing.T) {
	tests := map[float64]string{
		8:    "8.0px",
		14.4: "14.4px",
		0:    "0.0px",
		0.5:  "0.5px",
	}
	for input, want := range tests {
		if got := FormatPx(input); got != want {
			t.Errorf("FormatPx(%v) = %q, want %q", input, got, want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.RGBA
		ok    bool
	}{
		{"red", color.RGBA{R: 255, A: 255}, true},
		{"Blue", color.RGBA{B: 255, A: 255}, true},
		{"gray", color.RGBA{R: 128, G: 128, B: 128, A: 255}, true},
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"#00ff00", color.RGBA{G: 255, A: 255}, true},
		{"#ff000080", color.RGBA{R: 255, A: 128}, true},
		{"transparent", color.RGBA{}, true},
		{"#12", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
		{"notacolor", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
