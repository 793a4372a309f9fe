package html

import (
	"sort"
	"strings"
)

// Node is an element or a text node of the markup tree.
// Children are owned by the node; Parent is a back reference only.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node

	// Style holds the computed style once the cascade has run.
	Style map[string]string
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// NewElement creates an element node with the given parent. The node is not
// added to the parent's children; the parser does that when it closes it.
func NewElement(tag string, attributes map[string]string, parent *Node) *Node {
	if attributes == nil {
		attributes = make(map[string]string)
	}
	return &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: attributes,
		Children:   make([]*Node, 0),
		Parent:     parent,
		Style:      make(map[string]string),
	}
}

// NewText creates a text node with the given parent.
func NewText(text string, parent *Node) *Node {
	return &Node{
		Type:     TextNode,
		Text:     text,
		Children: make([]*Node, 0),
		Parent:   parent,
		Style:    make(map[string]string),
	}
}

func (n *Node) IsElement() bool { return n.Type == ElementNode }

func (n *Node) IsText() bool { return n.Type == TextNode }

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk visits n and every descendant in document order (pre-order).
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// TreeToList flattens the tree rooted at n in pre-order.
func TreeToList(n *Node) []*Node {
	list := make([]*Node, 0)
	n.Walk(func(node *Node) {
		list = append(list, node)
	})
	return list
}

// FindAll returns every element under n (inclusive) with the given tag.
func (n *Node) FindAll(tag string) []*Node {
	var found []*Node
	n.Walk(func(node *Node) {
		if node.Type == ElementNode && node.TagName == tag {
			found = append(found, node)
		}
	})
	return found
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(node *Node) {
		if node.Type == TextNode {
			sb.WriteString(node.Text)
		}
	})
	return sb.String()
}

func (n *Node) String() string {
	if n.Type == TextNode {
		return quote(n.Text)
	}
	return "<" + n.TagName + ">"
}

// Dump renders the tree as an indented outline, one node per line.
// Attributes are sorted so the output is stable.
func (n *Node) Dump() string {
	var sb strings.Builder
	dumpNode(&sb, n, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n *Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if n.Type == TextNode {
		sb.WriteString(quote(n.Text))
	} else {
		sb.WriteByte('<')
		sb.WriteString(n.TagName)
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			if v := n.Attributes[k]; v != "" {
				sb.WriteString(`="`)
				sb.WriteString(v)
				sb.WriteByte('"')
			}
		}
		sb.WriteByte('>')
	}
	sb.WriteByte('\n')
	for _, child := range n.Children {
		dumpNode(sb, child, depth+1)
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
