package text

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DPI is the device resolution fonts are rasterised at. At 96 DPI a face
// of s points is s*4/3 pixels tall, so CSS pixels scaled by 0.75 come
// back out at their original pixel size.
const DPI = 96

type faceKey struct {
	bold, italic, mono bool
}

var faceData = map[faceKey][]byte{
	{}:                                     goregular.TTF,
	{bold: true}:                           gobold.TTF,
	{italic: true}:                         goitalic.TTF,
	{bold: true, italic: true}:             gobolditalic.TTF,
	{mono: true}:                           gomono.TTF,
	{mono: true, bold: true}:               gomonobold.TTF,
	{mono: true, italic: true}:             gomonoitalic.TTF,
	{mono: true, bold: true, italic: true}: gomonobolditalic.TTF,
}

// FontCache is a Measurer over the bundled Go fonts. Faces are created on
// first use and kept for the life of the cache; one cache serves a whole
// browsing session.
type FontCache struct {
	mu     sync.Mutex
	parsed map[faceKey]*opentype.Font
	fonts  map[Descriptor]*FaceFont
}

func NewFontCache() *FontCache {
	return &FontCache{
		parsed: make(map[faceKey]*opentype.Font),
		fonts:  make(map[Descriptor]*FaceFont),
	}
}

// Font returns the font for d, creating it on first request.
func (c *FontCache) Font(d Descriptor) Font {
	return c.faceFont(d)
}

// Face returns the drawable face for d.
func (c *FontCache) Face(d Descriptor) font.Face {
	return c.faceFont(d).Face()
}

// Len reports how many distinct fonts have been created.
func (c *FontCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fonts)
}

func (c *FontCache) faceFont(d Descriptor) *FaceFont {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.fonts[d]; ok {
		return f
	}
	f := newFaceFont(c.newFace(d))
	c.fonts[d] = f
	return f
}

// newFace falls back to a fixed bitmap face if the outline font cannot be
// loaded or the size is unusable.
func (c *FontCache) newFace(d Descriptor) font.Face {
	if d.Size <= 0 {
		return basicfont.Face7x13
	}
	key := faceKey{bold: d.Bold(), italic: d.Italic(), mono: d.Monospace()}
	parsed, ok := c.parsed[key]
	if !ok {
		var err error
		parsed, err = opentype.Parse(faceData[key])
		if err != nil {
			return basicfont.Face7x13
		}
		c.parsed[key] = parsed
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    d.Size,
		DPI:     DPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
