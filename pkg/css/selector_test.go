package css

import (
	"testing"

	"lantern/pkg/html"
)

func TestSelector_Priority(t *testing.T) {
	p := NewTagSelector("p")
	if p.Priority() != 1 {
		t.Errorf("expected tag priority 1, got %d", p.Priority())
	}
	desc := NewDescendantSelector(NewTagSelector("div"), NewTagSelector("p"))
	if desc.Priority() != 2 {
		t.Errorf("expected descendant priority 2, got %d", desc.Priority())
	}
}

func TestTagSelector_Matches(t *testing.T) {
	sel := NewTagSelector("P")
	if sel.Tag != "p" {
		t.Errorf("expected tag to be lower-cased, got %q", sel.Tag)
	}
	if !sel.Matches(element("p")) {
		t.Error("expected match on <p>")
	}
	if sel.Matches(html.NewText("p", nil)) {
		t.Error("text nodes never match a tag selector")
	}
	if sel.Matches(nil) {
		t.Error("nil never matches")
	}
}

func TestDescendantSelector_Matches(t *testing.T) {
	root := html.Parse("<div><section><p>a</p></section></div><p>b</p><span>c</span>")
	ps := root.FindAll("p")
	if len(ps) != 2 {
		t.Fatalf("expected 2 p elements, got %d", len(ps))
	}
	inside, outside := ps[0], ps[1]

	tests := []struct {
		name string
		sel  Selector
		node *html.Node
		want bool
	}{
		{"direct ancestor chain", NewDescendantSelector(NewTagSelector("section"), NewTagSelector("p")), inside, true},
		{"distant ancestor", NewDescendantSelector(NewTagSelector("div"), NewTagSelector("p")), inside, true},
		{"no matching ancestor", NewDescendantSelector(NewTagSelector("div"), NewTagSelector("p")), outside, false},
		{"descendant mismatch", NewDescendantSelector(NewTagSelector("div"), NewTagSelector("span")), inside, false},
		{"self is not an ancestor", NewDescendantSelector(NewTagSelector("p"), NewTagSelector("p")), inside, false},
		{"three levels",
			NewDescendantSelector(NewDescendantSelector(NewTagSelector("div"), NewTagSelector("section")), NewTagSelector("p")),
			inside, true},
		{"root has no ancestors", NewDescendantSelector(NewTagSelector("body"), NewTagSelector("html")), root, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Matches(tt.node); got != tt.want {
				t.Errorf("%s matches %s = %v, want %v", tt.sel, tt.node, got, tt.want)
			}
		})
	}
}

func TestSortRules_StableByPriority(t *testing.T) {
	rules := ParseStylesheet(`
		div p { color: red; }
		p { color: green; }
		a { color: blue; }
		body div p { color: black; }
	`)
	sorted := SortRules(rules)
	want := []string{"p", "a", "div p", "body div p"}
	if len(sorted) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(sorted))
	}
	for i, rule := range sorted {
		if rule.Selector.String() != want[i] {
			t.Errorf("rule %d: got %s, want %s", i, rule.Selector, want[i])
		}
	}
	if rules[0].Selector.String() != "div p" {
		t.Error("SortRules must not reorder its input")
	}
}
