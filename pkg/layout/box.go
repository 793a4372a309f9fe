package layout

import (
	"fmt"
	"strings"

	"lantern/pkg/html"
	"lantern/pkg/text"
)

// Kind is the closed set of box variants.
type Kind int

const (
	DocumentBox Kind = iota
	BlockBox
	LineBox
	TextRunBox
)

func (k Kind) String() string {
	switch k {
	case DocumentBox:
		return "Document"
	case BlockBox:
		return "Block"
	case LineBox:
		return "Line"
	case TextRunBox:
		return "TextRun"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Box is one node of the layout tree. Node is nil for line boxes. Parent
// and Previous are back references; a box owns only its Children.
// Geometry is valid once the box has been laid out.
type Box struct {
	Kind     Kind
	Node     *html.Node
	Parent   *Box
	Previous *Box
	Children []*Box

	X      float64
	Y      float64
	Width  float64
	Height float64

	// Word and Font are set on text runs only.
	Word string
	Font text.Descriptor

	font text.Font
}

func (b *Box) String() string {
	geometry := fmt.Sprintf("(x=%g, y=%g, width=%g, height=%g)", b.X, b.Y, b.Width, b.Height)
	switch b.Kind {
	case BlockBox:
		return fmt.Sprintf("Block %s %s", b.Node, geometry)
	case TextRunBox:
		return fmt.Sprintf("TextRun %q %s", b.Word, geometry)
	}
	return b.Kind.String() + " " + geometry
}

// Dump renders the subtree rooted at b, one box per line.
func (b *Box) Dump() string {
	var sb strings.Builder
	dumpBox(&sb, b, 0)
	return sb.String()
}

func dumpBox(sb *strings.Builder, b *Box, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(b.String())
	sb.WriteByte('\n')
	for _, child := range b.Children {
		dumpBox(sb, child, depth+1)
	}
}

// Walk calls fn for b and every descendant in pre-order.
func (b *Box) Walk(fn func(*Box)) {
	fn(b)
	for _, child := range b.Children {
		child.Walk(fn)
	}
}

func (b *Box) lastChild() *Box {
	if len(b.Children) == 0 {
		return nil
	}
	return b.Children[len(b.Children)-1]
}

// stackBelow places b under its previous sibling, or at the top of its
// parent, and takes the parent's horizontal extent.
func (b *Box) stackBelow() {
	b.X = b.Parent.X
	b.Width = b.Parent.Width
	if b.Previous != nil {
		b.Y = b.Previous.Y + b.Previous.Height
	} else {
		b.Y = b.Parent.Y
	}
}
