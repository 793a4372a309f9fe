// Package texttest provides a deterministic Measurer for layout tests.
package texttest

import (
	"unicode/utf8"

	"lantern/pkg/text"
)

// Measurer gives every rune the same advance and every font the same
// metrics, regardless of descriptor.
type Measurer struct {
	CharWidth float64
	Ascent    float64
	Descent   float64

	// Requests records every descriptor asked for, in order.
	Requests []text.Descriptor
}

// New returns a Measurer with the given per-rune width and 8/2 metrics.
func New(charWidth float64) *Measurer {
	return &Measurer{CharWidth: charWidth, Ascent: 8, Descent: 2}
}

func (m *Measurer) Font(d text.Descriptor) text.Font {
	m.Requests = append(m.Requests, d)
	return font{m: m}
}

type font struct {
	m *Measurer
}

func (f font) Measure(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * f.m.CharWidth
}

func (f font) Metrics() text.Metrics {
	return text.Metrics{
		Ascent:    f.m.Ascent,
		Descent:   f.m.Descent,
		Linespace: f.m.Ascent + f.m.Descent,
	}
}
