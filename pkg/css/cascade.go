package css

import (
	"strings"

	"lantern/pkg/html"
)

// InheritedProperties lists the properties a node takes from its parent,
// with the value used at the root.
var InheritedProperties = map[string]string{
	"font-family": "Times New Roman",
	"font-size":   "16px",
	"font-style":  "normal",
	"font-weight": "normal",
	"color":       "black",
	"white-space": "normal",
}

// Cascade computes Style for node and all its descendants. rules must
// already be in cascade order (see SortRules): each matching rule
// overwrites the ones before it, and the element's style attribute is
// applied after every rule.
//
// Each node gets a fresh Style map, so re-running the cascade on a tree
// replaces earlier results.
func Cascade(node *html.Node, rules []Rule) {
	node.Style = make(map[string]string)

	for property, initial := range InheritedProperties {
		node.Style[property] = inheritedValue(node, property, initial)
	}

	for _, rule := range rules {
		if !rule.Selector.Matches(node) {
			continue
		}
		for property, value := range rule.Body {
			node.Style[property] = value
		}
	}

	if node.Type == html.ElementNode {
		if attr, ok := node.Attributes["style"]; ok {
			for property, value := range ParseInlineStyle(attr) {
				node.Style[property] = value
			}
		}
	}

	for property, value := range node.Style {
		if value == "inherit" {
			node.Style[property] = inheritedValue(node, property, InheritedProperties[property])
		}
	}
	node.Style["font-size"] = resolveFontSize(node.Style["font-size"], parentFontSize(node))

	for _, child := range node.Children {
		Cascade(child, rules)
	}
}

func inheritedValue(node *html.Node, property, initial string) string {
	if node.Parent != nil && node.Parent.Style != nil {
		if v, ok := node.Parent.Style[property]; ok {
			return v
		}
	}
	return initial
}

func parentFontSize(node *html.Node) float64 {
	size, _ := ParseLength(InheritedProperties["font-size"])
	if node.Parent != nil {
		if px, ok := ParseLength(Value(node.Parent, "font-size", "")); ok {
			size = px
		}
	}
	return size
}

// resolveFontSize turns percentage and em sizes into absolute pixels
// relative to the parent. Values that do not parse fall back to the
// parent's size.
func resolveFontSize(value string, parentPx float64) string {
	var factor float64
	switch {
	case strings.HasSuffix(value, "%"):
		pct, ok := parseNumber(strings.TrimSuffix(value, "%"))
		if !ok {
			return FormatPx(parentPx)
		}
		factor = pct / 100
	case strings.HasSuffix(value, "em") && !strings.HasSuffix(value, "rem"):
		em, ok := parseNumber(strings.TrimSuffix(value, "em"))
		if !ok {
			return FormatPx(parentPx)
		}
		factor = em
	default:
		if _, ok := ParseLength(value); !ok {
			return FormatPx(parentPx)
		}
		return value
	}
	return FormatPx(factor * parentPx)
}
