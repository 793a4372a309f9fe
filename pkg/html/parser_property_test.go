package html

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// markupFragment produces short pieces of plausible and broken markup.
func markupFragment() gopter.Gen {
	return gen.OneConstOf(
		"<p>", "</p>", "<div>", "</div>", "<b>", "</b>", "<br>", "<img src=x>",
		"<html>", "</html>", "<head>", "</head>", "<body>", "</body>",
		"<title>", "</title>", "<!-- c -->", "<!doctype html>", "text", " ",
		"<", ">", "</", "<a href='x'>", "&amp;", "\n",
	)
}

func TestParserProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("parse always returns a single html-rooted tree", prop.ForAll(
		func(fragments []string) bool {
			root := Parse(strings.Join(fragments, ""))
			return root != nil && root.Parent == nil && root.Type == ElementNode
		},
		gen.SliceOf(markupFragment()),
	))

	properties.Property("every child points back at its parent", prop.ForAll(
		func(fragments []string) bool {
			root := Parse(strings.Join(fragments, ""))
			seen := make(map[*Node]bool)
			ok := true
			root.Walk(func(n *Node) {
				if seen[n] {
					ok = false
				}
				seen[n] = true
				for _, child := range n.Children {
					if child.Parent != n {
						ok = false
					}
				}
			})
			return ok
		},
		gen.SliceOf(markupFragment()),
	))

	properties.Property("self-closing elements never have children", prop.ForAll(
		func(fragments []string) bool {
			root := Parse(strings.Join(fragments, ""))
			ok := true
			root.Walk(func(n *Node) {
				if n.Type == ElementNode && IsSelfClosing(n.TagName) && len(n.Children) > 0 {
					ok = false
				}
			})
			return ok
		},
		gen.SliceOf(markupFragment()),
	))

	properties.Property("arbitrary strings never panic", prop.ForAll(
		func(s string) bool {
			return Parse(s) != nil
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
