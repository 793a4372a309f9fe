package layout

import (
	"fmt"
	"math"

	"lantern/pkg/css"
	"lantern/pkg/text"
)

// Command is one paint instruction: *DrawText or *DrawRect. Commands are
// listed back to front.
type Command interface {
	// Extent is the command's vertical span in document coordinates.
	Extent() (top, bottom float64)

	command()
}

// DrawText draws Text with its top-left corner at (Left, Top).
type DrawText struct {
	Left   float64
	Top    float64
	Bottom float64
	Text   string
	Font   text.Descriptor
	Color  string
}

func (c *DrawText) Extent() (float64, float64) { return c.Top, c.Bottom }

func (c *DrawText) String() string {
	return fmt.Sprintf("DrawText(left=%g, top=%g, text=%q, font=%s, color=%s)", c.Left, c.Top, c.Text, c.Font, c.Color)
}

func (*DrawText) command() {}

// DrawRect fills a rectangle.
type DrawRect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
	Color  string
}

func (c *DrawRect) Extent() (float64, float64) { return c.Top, c.Bottom }

func (c *DrawRect) String() string {
	return fmt.Sprintf("DrawRect(left=%g, top=%g, right=%g, bottom=%g, color=%s)", c.Left, c.Top, c.Right, c.Bottom, c.Color)
}

func (*DrawRect) command() {}

// Paint flattens the box tree into commands. A block's background comes
// before anything inside it.
func Paint(root *Box) []Command {
	cmds := make([]Command, 0)
	root.Walk(func(b *Box) {
		cmds = append(cmds, b.paint()...)
	})
	return cmds
}

func (b *Box) paint() []Command {
	switch b.Kind {
	case BlockBox:
		bg := css.Value(b.Node, "background-color", "transparent")
		if bg == "transparent" {
			return nil
		}
		return []Command{&DrawRect{
			Left:   b.X,
			Top:    b.Y,
			Right:  b.X + b.Width,
			Bottom: b.Y + b.Height,
			Color:  bg,
		}}
	case TextRunBox:
		return []Command{&DrawText{
			Left:   b.X,
			Top:    b.Y,
			Bottom: b.Y + b.font.Metrics().Linespace,
			Text:   b.Word,
			Font:   b.Font,
			Color:  css.Value(b.Node, "color", "black"),
		}}
	}
	return nil
}

// Visible returns the commands that intersect the window starting at
// scroll and extending height pixels down.
func Visible(cmds []Command, scroll, height float64) []Command {
	visible := make([]Command, 0, len(cmds))
	for _, cmd := range cmds {
		top, bottom := cmd.Extent()
		if top > scroll+height || bottom < scroll {
			continue
		}
		visible = append(visible, cmd)
	}
	return visible
}

// MaxScroll is the furthest a viewport of the given height can scroll
// down the document.
func MaxScroll(doc *Box, height float64) float64 {
	return math.Max(0, doc.Height-height)
}
