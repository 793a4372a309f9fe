package css

import (
	"testing"

	"lantern/pkg/html"
)

func styled(markup, stylesheet string) *html.Node {
	root := html.Parse(markup)
	Cascade(root, SortRules(ParseStylesheet(stylesheet)))
	return root
}

func first(t *testing.T, root *html.Node, tag string) *html.Node {
	t.Helper()
	nodes := root.FindAll(tag)
	if len(nodes) == 0 {
		t.Fatalf("no <%s> in tree", tag)
	}
	return nodes[0]
}

func TestCascade_InheritsFromInlineStyle(t *testing.T) {
	root := styled(`<div style="color: blue"><p>x</p></div>`, "")
	p := first(t, root, "p")

	if got := p.Style["color"]; got != "blue" {
		t.Errorf("expected inherited color blue, got %q", got)
	}
	if got := p.Style["font-family"]; got != "Times New Roman" {
		t.Errorf("expected default font-family, got %q", got)
	}
	text := p.Children[0]
	if got := text.Style["color"]; got != "blue" {
		t.Errorf("expected text to inherit blue, got %q", got)
	}
}

func TestCascade_PercentageFontSize(t *testing.T) {
	root := styled(`<div><p>x</p></div>`, "div { font-size: 16px; } p { font-size: 50%; }")
	p := first(t, root, "p")
	if got := p.Style["font-size"]; got != "8.0px" {
		t.Errorf("expected 8.0px, got %q", got)
	}
}

func TestCascade_FontSizeResolution(t *testing.T) {
	tests := []struct {
		name   string
		parent string
		child  string
		want   string
	}{
		{"percentage", "20px", "150%", "30.0px"},
		{"fractional percentage", "16px", "90%", "14.4px"},
		{"em", "10px", "2em", "20.0px"},
		{"absolute", "10px", "12px", "12px"},
		{"malformed percentage", "10px", "abc%", "10.0px"},
		{"malformed length", "10px", "big", "10.0px"},
		{"nan length", "10px", "NaN", "10.0px"},
		{"infinite percentage", "10px", "Infinity%", "10.0px"},
		{"nan em", "10px", "NaNem", "10.0px"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := styled(
				`<div><p>x</p></div>`,
				"div { font-size: "+tt.parent+"; } p { font-size: "+tt.child+"; }",
			)
			if got := first(t, root, "p").Style["font-size"]; got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCascade_RootDefaults(t *testing.T) {
	root := styled("<p>x</p>", "")
	want := map[string]string{
		"font-family": "Times New Roman",
		"font-size":   "16px",
		"font-style":  "normal",
		"font-weight": "normal",
		"color":       "black",
		"white-space": "normal",
	}
	for property, value := range want {
		if got := root.Style[property]; got != value {
			t.Errorf("%s: expected %q, got %q", property, value, got)
		}
	}
}

func TestCascade_Priority(t *testing.T) {
	tests := []struct {
		name       string
		markup     string
		stylesheet string
		want       string
	}{
		{"later rule wins on tie", "<p>x</p>", "p { color: red; } p { color: green; }", "green"},
		{"descendant beats tag regardless of order", "<div><p>x</p></div>", "div p { color: red; } p { color: green; }", "red"},
		{"inline beats every rule", `<div><p style="color: purple">x</p></div>`, "div p { color: red; }", "purple"},
		{"rule beats inherited value", `<div style="color: blue"><p>x</p></div>`, "p { color: red; }", "red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := styled(tt.markup, tt.stylesheet)
			if got := first(t, root, "p").Style["color"]; got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCascade_NonInheritedPropertiesStayPut(t *testing.T) {
	root := styled("<div><p>x</p></div>", "div { background-color: red; }")
	if got := first(t, root, "div").Style["background-color"]; got != "red" {
		t.Errorf("expected div background red, got %q", got)
	}
	if _, ok := first(t, root, "p").Style["background-color"]; ok {
		t.Error("background-color must not be inherited")
	}
}

func TestCascade_InheritKeyword(t *testing.T) {
	root := styled("<div><p>x</p></div>", "div { color: red; } p { color: inherit; }")
	if got := first(t, root, "p").Style["color"]; got != "red" {
		t.Errorf("expected inherit to resolve to red, got %q", got)
	}
}

func TestCascade_Idempotent(t *testing.T) {
	rules := SortRules(ParseStylesheet("p { font-size: 50%; }"))
	root := html.Parse("<p>x</p>")
	Cascade(root, rules)
	Cascade(root, rules)
	if got := first(t, root, "p").Style["font-size"]; got != "8.0px" {
		t.Errorf("expected 8.0px after a second run, got %q", got)
	}
}

func TestCascade_UserAgentSheet(t *testing.T) {
	root := html.Parse("<title>t</title><pre>code</pre><b>bold</b><small>s</small>")
	Cascade(root, SortRules(DefaultStylesheet()))

	if got := first(t, root, "head").Style["display"]; got != "none" {
		t.Errorf("expected head hidden, got %q", got)
	}
	if got := first(t, root, "pre").Style["white-space"]; got != "pre" {
		t.Errorf("expected pre white-space, got %q", got)
	}
	if got := first(t, root, "b").Children[0].Style["font-weight"]; got != "bold" {
		t.Errorf("expected bold text, got %q", got)
	}
	if got := first(t, root, "small").Style["font-size"]; got != "14.4px" {
		t.Errorf("expected 14.4px, got %q", got)
	}
}
