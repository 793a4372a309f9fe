// Package rendertest compares rendered frames pixel by pixel.
package rendertest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Result summarises a comparison.
type Result struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference seen, 0-255
}

// Options configures a comparison.
type Options struct {
	// Tolerance is the largest per-channel difference (0-255) that still
	// counts as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within the radius.
	// Glyph edges shift by a pixel between font rasterisers.
	FuzzyRadius int

	// DiffPath, when set, receives a PNG highlighting mismatches in red.
	DiffPath string
}

// DefaultOptions allows small antialiasing differences.
func DefaultOptions() Options {
	return Options{Tolerance: 2}
}

// Compare checks actual against expected. Differing bounds are an error.
func Compare(actual, expected image.Image, opts Options) (*Result, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &Result{}, fmt.Errorf("image bounds differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}

	result := &Result{Match: true, TotalPixels: bounds.Dx() * bounds.Dy()}
	var diff *image.RGBA
	if opts.DiffPath != "" {
		diff = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := channels(actual.At(x, y))
			d := distance(a, channels(expected.At(x, y)))
			if d > result.MaxDifference {
				result.MaxDifference = d
			}

			if d <= opts.Tolerance || (opts.FuzzyRadius > 0 && near(a, expected, x, y, opts)) {
				if diff != nil {
					diff.Set(x, y, color.Gray{Y: uint8(a[0])})
				}
				continue
			}
			result.Match = false
			result.DifferentPixels++
			if diff != nil {
				diff.Set(x, y, color.RGBA{R: 255, A: 255})
			}
		}
	}

	if diff != nil && !result.Match {
		if err := SavePNG(diff, opts.DiffPath); err != nil {
			return result, fmt.Errorf("saving diff image: %w", err)
		}
	}
	return result, nil
}

// near reports whether any expected pixel within the fuzzy radius of
// (x, y) is within tolerance of a.
func near(a [4]int, expected image.Image, x, y int, opts Options) bool {
	bounds := expected.Bounds()
	for dy := -opts.FuzzyRadius; dy <= opts.FuzzyRadius; dy++ {
		for dx := -opts.FuzzyRadius; dx <= opts.FuzzyRadius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if distance(a, channels(expected.At(p.X, p.Y))) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

func channels(c color.Color) [4]int {
	r, g, b, a := c.RGBA()
	return [4]int{int(r >> 8), int(g >> 8), int(b >> 8), int(a >> 8)}
}

func distance(a, b [4]int) int {
	d := 0
	for i := range a {
		v := a[i] - b[i]
		if v < 0 {
			v = -v
		}
		d = max(d, v)
	}
	return d
}

// LoadPNG decodes the PNG at path.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// SavePNG writes img to path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
