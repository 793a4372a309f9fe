package html

import (
	gohtml "html"
	"strings"
	"unicode"
)

// selfClosingTags are appended to the current element and never become
// unfinished, so they cannot have children.
var selfClosingTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// IsSelfClosing reports whether tag is a void element.
func IsSelfClosing(tag string) bool {
	return selfClosingTags[tag]
}

// Parser turns markup into a tree. It keeps a stack of unfinished elements;
// an element is attached to its parent only when it is closed.
type Parser struct {
	body       string
	unfinished []*Node
}

func NewParser(body string) *Parser {
	return &Parser{body: body}
}

// Parse never fails: malformed markup is repaired rather than rejected.
func Parse(body string) *Node {
	return NewParser(body).Parse()
}

func (p *Parser) Parse() *Node {
	var buf strings.Builder
	inTag := false
	for _, c := range p.body {
		switch {
		case c == '<' && !inTag:
			inTag = true
			if buf.Len() > 0 {
				p.addText(buf.String())
				buf.Reset()
			}
		case c == '>' && inTag:
			// A comment runs until "-->", not the first '>'.
			raw := buf.String()
			if strings.HasPrefix(raw, "!--") && (len(raw) < 5 || !strings.HasSuffix(raw, "--")) {
				buf.WriteRune(c)
				continue
			}
			inTag = false
			p.addTag(raw)
			buf.Reset()
		default:
			buf.WriteRune(c)
		}
	}
	if !inTag && buf.Len() > 0 {
		p.addText(buf.String())
	}
	return p.finish()
}

func (p *Parser) addText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	p.implicitTags("")
	parent := p.unfinished[len(p.unfinished)-1]
	parent.Children = append(parent.Children, NewText(gohtml.UnescapeString(text), parent))
}

func (p *Parser) addTag(raw string) {
	tag, attributes := splitTag(raw)
	if tag == "" || strings.HasPrefix(tag, "!") {
		return
	}
	p.implicitTags(tag)
	p.handleTag(tag, attributes)
}

// handleTag applies one tag to the stack without any implicit repair.
func (p *Parser) handleTag(tag string, attributes map[string]string) {
	switch {
	case strings.HasPrefix(tag, "/"):
		// A stray end tag cannot close the last open element.
		if len(p.unfinished) == 1 {
			return
		}
		p.closeElement()
	case selfClosingTags[tag]:
		parent := p.unfinished[len(p.unfinished)-1]
		parent.Children = append(parent.Children, NewElement(tag, attributes, parent))
	default:
		var parent *Node
		if len(p.unfinished) > 0 {
			parent = p.unfinished[len(p.unfinished)-1]
		}
		p.unfinished = append(p.unfinished, NewElement(tag, attributes, parent))
	}
}

// closeElement pops the top element and appends it to the new top.
func (p *Parser) closeElement() {
	node := p.unfinished[len(p.unfinished)-1]
	p.unfinished = p.unfinished[:len(p.unfinished)-1]
	parent := p.unfinished[len(p.unfinished)-1]
	parent.Children = append(parent.Children, node)
}

// implicitTags synthesizes html/head/body until tag can be applied as is.
func (p *Parser) implicitTags(tag string) {
	for {
		synthetic, ok := nextImplicitTag(p.openTags(), tag)
		if !ok {
			return
		}
		p.handleTag(synthetic, nil)
	}
}

func (p *Parser) openTags() []string {
	tags := make([]string, len(p.unfinished))
	for i, node := range p.unfinished {
		tags[i] = node.TagName
	}
	return tags
}

func (p *Parser) finish() *Node {
	if len(p.unfinished) == 0 {
		p.handleTag("html", nil)
	}
	for len(p.unfinished) > 1 {
		p.closeElement()
	}
	root := p.unfinished[0]
	p.unfinished = nil
	return root
}

// splitTag splits the inside of a tag into its lower-cased name and
// attributes. Whitespace inside quotes does not separate attributes.
func splitTag(raw string) (string, map[string]string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "!") {
		raw = trimSelfClosingSlash(raw)
	}
	parts := splitAttributes(raw)
	if len(parts) == 0 {
		return "", nil
	}
	tag := strings.ToLower(parts[0])
	attributes := make(map[string]string)
	for _, part := range parts[1:] {
		key, value, found := strings.Cut(part, "=")
		key = strings.ToLower(key)
		if !found {
			attributes[key] = ""
			continue
		}
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		attributes[key] = value
	}
	return tag, attributes
}

// trimSelfClosingSlash drops the "/" of "<br/>" or "<img src=a />". A slash
// that ends an unquoted attribute value, as in "<a href=/x/>", is kept.
func trimSelfClosingSlash(raw string) string {
	rest, ok := strings.CutSuffix(raw, "/")
	if !ok {
		return raw
	}
	last := strings.LastIndexFunc(rest, unicode.IsSpace)
	if last < 0 || last == len(rest)-1 || strings.HasSuffix(rest, `"`) || strings.HasSuffix(rest, "'") {
		return strings.TrimSpace(rest)
	}
	if !strings.Contains(rest[last+1:], "=") {
		return strings.TrimSpace(rest)
	}
	return raw
}

func splitAttributes(s string) []string {
	var parts []string
	var current strings.Builder
	var quote rune
	for _, c := range s {
		switch {
		case quote != 0:
			current.WriteRune(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			current.WriteRune(c)
		case unicode.IsSpace(c):
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(c)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
