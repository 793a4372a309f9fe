package text

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Descriptor identifies a font: family name, size in points, weight and
// style ("roman" or "italic").
type Descriptor struct {
	Family string
	Size   float64
	Weight string
	Style  string
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s %gpt %s %s", d.Family, d.Size, d.Weight, d.Style)
}

// Bold reports whether the weight selects a bold face.
func (d Descriptor) Bold() bool {
	switch d.Weight {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(d.Weight)
	return err == nil && n >= 600
}

// Italic reports whether the style selects an italic face.
func (d Descriptor) Italic() bool {
	return d.Style == "italic" || d.Style == "oblique"
}

// Monospace reports whether the family asks for a fixed-pitch face.
func (d Descriptor) Monospace() bool {
	family := strings.ToLower(d.Family)
	return strings.Contains(family, "mono") || strings.Contains(family, "courier")
}

// Metrics are a font's vertical measurements in pixels.
type Metrics struct {
	Ascent    float64
	Descent   float64
	Linespace float64
}

// Font measures text set in one face.
type Font interface {
	// Measure returns the advance width of s in pixels.
	Measure(s string) float64
	Metrics() Metrics
}

// Measurer hands out fonts by descriptor. Implementations must return
// identical measurements for identical descriptors.
type Measurer interface {
	Font(d Descriptor) Font
}

// FaceFont is a Font backed by a font.Face.
type FaceFont struct {
	face    font.Face
	metrics Metrics
}

func newFaceFont(face font.Face) *FaceFont {
	m := face.Metrics()
	return &FaceFont{
		face: face,
		metrics: Metrics{
			Ascent:    fixedToFloat(m.Ascent),
			Descent:   fixedToFloat(m.Descent),
			Linespace: fixedToFloat(m.Height),
		},
	}
}

func (f *FaceFont) Measure(s string) float64 {
	return fixedToFloat(font.MeasureString(f.face, s))
}

func (f *FaceFont) Metrics() Metrics {
	return f.metrics
}

// Face exposes the underlying face for drawing.
func (f *FaceFont) Face() font.Face {
	return f.face
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
