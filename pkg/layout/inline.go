package layout

import (
	"math"
	"strings"

	"lantern/pkg/css"
	"lantern/pkg/html"
	"lantern/pkg/text"
)

// inlineLayout breaks a block's inline content into line boxes holding
// text runs. Positions are assigned later by layoutLine.
type inlineLayout struct {
	engine  *Engine
	block   *Box
	cursorX float64
}

func newInlineLayout(e *Engine, block *Box) *inlineLayout {
	return &inlineLayout{engine: e, block: block}
}

func (il *inlineLayout) run() {
	il.newLine()
	il.recurse(il.block.Node)
}

func (il *inlineLayout) recurse(node *html.Node) {
	if node.Type == html.TextNode {
		if css.Value(node, "white-space", "normal") == "pre" {
			il.preformatted(node)
			return
		}
		for _, word := range strings.Fields(node.Text) {
			il.word(node, word)
		}
		return
	}
	if node.TagName == "br" {
		il.newLine()
		return
	}
	for _, child := range node.Children {
		if hidden(child) {
			continue
		}
		il.recurse(child)
	}
}

// preformatted keeps source line breaks and never wraps.
func (il *inlineLayout) preformatted(node *html.Node) {
	for i, line := range strings.Split(node.Text, "\n") {
		if i > 0 {
			il.newLine()
		}
		line = strings.ReplaceAll(line, "\t", "    ")
		if strings.TrimSpace(line) == "" {
			continue
		}
		il.place(node, line, il.engine.measurer.Font(fontFor(node)))
	}
}

func (il *inlineLayout) word(node *html.Node, word string) {
	f := il.engine.measurer.Font(fontFor(node))
	w := f.Measure(word)
	if il.cursorX+w > il.block.Width && len(il.block.lastChild().Children) > 0 {
		il.newLine()
	}
	il.place(node, word, f)
}

func (il *inlineLayout) place(node *html.Node, word string, f text.Font) {
	line := il.block.lastChild()
	run := &Box{
		Kind:     TextRunBox,
		Node:     node,
		Parent:   line,
		Previous: line.lastChild(),
		Word:     word,
		Font:     fontFor(node),
		font:     f,
	}
	line.Children = append(line.Children, run)
	il.cursorX += f.Measure(word) + f.Measure(" ")
}

func (il *inlineLayout) newLine() {
	il.cursorX = 0
	line := &Box{Kind: LineBox, Parent: il.block, Previous: il.block.lastChild()}
	il.block.Children = append(il.block.Children, line)
}

// layoutLine positions a line's runs on a shared baseline.
func (e *Engine) layoutLine(line *Box) {
	line.stackBelow()
	if len(line.Children) == 0 {
		line.Height = 0
		return
	}

	var maxAscent, maxDescent float64
	for _, run := range line.Children {
		layoutRun(run)
		m := run.font.Metrics()
		maxAscent = math.Max(maxAscent, m.Ascent)
		maxDescent = math.Max(maxDescent, m.Descent)
	}

	baseline := line.Y + LineSpacing*maxAscent
	for _, run := range line.Children {
		run.Y = baseline - run.font.Metrics().Ascent
	}
	line.Height = LineSpacing * (maxAscent + maxDescent)
}

func layoutRun(run *Box) {
	run.Width = run.font.Measure(run.Word)
	run.Height = run.font.Metrics().Linespace
	if prev := run.Previous; prev != nil {
		run.X = prev.X + prev.Width + prev.font.Measure(" ")
	} else {
		run.X = run.Parent.X
	}
}

// fontFor builds the font descriptor for node's computed style. Sizes are
// converted from CSS pixels to points.
func fontFor(node *html.Node) text.Descriptor {
	px, ok := css.ParseLength(css.Value(node, "font-size", css.InheritedProperties["font-size"]))
	if !ok {
		px, _ = css.ParseLength(css.InheritedProperties["font-size"])
	}
	style := css.Value(node, "font-style", "normal")
	if style == "normal" {
		style = "roman"
	}
	return text.Descriptor{
		Family: css.Value(node, "font-family", css.InheritedProperties["font-family"]),
		Size:   px * PointsPerPixel,
		Weight: css.Value(node, "font-weight", "normal"),
		Style:  style,
	}
}
