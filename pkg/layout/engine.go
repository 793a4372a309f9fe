package layout

import (
	"lantern/pkg/css"
	"lantern/pkg/html"
	"lantern/pkg/text"
)

const (
	// HStep and VStep are the page margins around the document.
	HStep = 13.0
	VStep = 18.0

	// LineSpacing scales font metrics into line height.
	LineSpacing = 1.25

	// PointsPerPixel converts CSS pixels into font points.
	PointsPerPixel = 0.75
)

var blockElements = map[string]bool{
	"html": true, "body": true, "article": true, "section": true, "nav": true,
	"aside": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "hgroup": true, "header": true, "footer": true, "address": true,
	"p": true, "hr": true, "pre": true, "blockquote": true, "ol": true, "ul": true,
	"menu": true, "li": true, "dl": true, "dt": true, "dd": true, "figure": true,
	"figcaption": true, "main": true, "div": true, "table": true, "form": true,
	"fieldset": true, "legend": true, "details": true, "summary": true,
}

// IsBlockElement reports whether tag starts a block in its parent.
func IsBlockElement(tag string) bool {
	return blockElements[tag]
}

type mode int

const (
	blockMode mode = iota
	inlineMode
)

// layoutMode picks how a block lays out its node. Text is inline; an
// element with any block-level child lays its children out as blocks; any
// other element with children is inline; a childless element is an empty
// block.
func layoutMode(node *html.Node) mode {
	if node.Type == html.TextNode {
		return inlineMode
	}
	hasChildren := false
	for _, child := range node.Children {
		if hidden(child) {
			continue
		}
		hasChildren = true
		if child.Type == html.ElementNode && IsBlockElement(child.TagName) {
			return blockMode
		}
	}
	if hasChildren {
		return inlineMode
	}
	return blockMode
}

func hidden(node *html.Node) bool {
	return css.Value(node, "display", "") == "none"
}

// Engine lays out styled trees for one viewport.
type Engine struct {
	width    float64
	height   float64
	measurer text.Measurer
}

func NewEngine(width, height float64, measurer text.Measurer) *Engine {
	return &Engine{width: width, height: height, measurer: measurer}
}

func (e *Engine) Width() float64  { return e.width }
func (e *Engine) Height() float64 { return e.height }

// Layout builds and positions the box tree for root, which must already
// have been through the cascade.
func (e *Engine) Layout(root *html.Node) *Box {
	doc := &Box{Kind: DocumentBox, Node: root}
	doc.X = HStep
	doc.Y = VStep
	doc.Width = e.width - 2*HStep

	child := &Box{Kind: BlockBox, Node: root, Parent: doc}
	doc.Children = append(doc.Children, child)
	e.layoutBlock(child)

	doc.Height = child.Height + 2*VStep
	return doc
}

func (e *Engine) layoutBlock(b *Box) {
	b.stackBelow()

	if layoutMode(b.Node) == blockMode {
		var previous *Box
		for _, child := range b.Node.Children {
			if hidden(child) {
				continue
			}
			next := &Box{Kind: BlockBox, Node: child, Parent: b, Previous: previous}
			b.Children = append(b.Children, next)
			previous = next
		}
	} else {
		newInlineLayout(e, b).run()
	}

	b.Height = 0
	for _, child := range b.Children {
		switch child.Kind {
		case BlockBox:
			e.layoutBlock(child)
		case LineBox:
			e.layoutLine(child)
		}
		b.Height += child.Height
	}
}
