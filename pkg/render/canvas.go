package render

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"lantern/pkg/layout"
	"lantern/pkg/text"
)

// Canvas paints command lists into an in-memory RGBA image.
type Canvas struct {
	context *gg.Context
	fonts   *text.FontCache
	width   int
	height  int
}

// NewCanvas creates a width×height canvas drawing text with faces from
// fonts. fonts should be the cache layout measured with so glyphs land
// where layout put them.
func NewCanvas(width, height int, fonts *text.FontCache) *Canvas {
	return &Canvas{
		context: gg.NewContext(width, height),
		fonts:   fonts,
		width:   width,
		height:  height,
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Paint clears the canvas and draws the commands visible at scroll, in
// list order.
func (c *Canvas) Paint(scroll float64, cmds []layout.Command) error {
	c.context.SetColor(Background)
	c.context.Clear()

	for _, cmd := range layout.Visible(cmds, scroll, float64(c.height)) {
		switch cmd := cmd.(type) {
		case *layout.DrawRect:
			c.drawRect(cmd, scroll)
		case *layout.DrawText:
			c.drawText(cmd, scroll)
		default:
			return fmt.Errorf("unsupported paint command %T", cmd)
		}
	}
	return nil
}

func (c *Canvas) drawRect(cmd *layout.DrawRect, scroll float64) {
	c.context.SetColor(Resolve(cmd.Color, Background))
	c.context.DrawRectangle(cmd.Left, cmd.Top-scroll, cmd.Right-cmd.Left, cmd.Bottom-cmd.Top)
	c.context.Fill()
}

// drawText positions by the run's top edge; gg draws on the baseline.
func (c *Canvas) drawText(cmd *layout.DrawText, scroll float64) {
	f := c.fonts.Font(cmd.Font)
	c.context.SetFontFace(c.fonts.Face(cmd.Font))
	c.context.SetColor(Resolve(cmd.Color, Foreground))
	c.context.DrawString(cmd.Text, cmd.Left, cmd.Top-scroll+f.Metrics().Ascent)
}

// Image returns the current canvas contents.
func (c *Canvas) Image() image.Image {
	return c.context.Image()
}

func (c *Canvas) SavePNG(path string) error {
	return c.context.SavePNG(path)
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.context.EncodePNG(w)
}
