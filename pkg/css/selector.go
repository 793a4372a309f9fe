package css

import (
	"sort"
	"strings"

	"lantern/pkg/html"
)

// Selector is the closed set of selectors the parser produces:
// *TagSelector and *DescendantSelector.
type Selector interface {
	// Matches reports whether node satisfies the selector.
	Matches(node *html.Node) bool
	// Priority is the cascade weight; higher wins.
	Priority() int
	String() string

	selector()
}

// TagSelector matches elements by tag name.
type TagSelector struct {
	Tag string
}

func NewTagSelector(tag string) *TagSelector {
	return &TagSelector{Tag: strings.ToLower(tag)}
}

func (s *TagSelector) Matches(node *html.Node) bool {
	return node != nil && node.Type == html.ElementNode && node.TagName == s.Tag
}

func (s *TagSelector) Priority() int { return 1 }

func (s *TagSelector) String() string { return s.Tag }

func (*TagSelector) selector() {}

// DescendantSelector matches a node matching Descendant that has some strict
// ancestor matching Ancestor.
type DescendantSelector struct {
	Ancestor   Selector
	Descendant Selector
	priority   int
}

func NewDescendantSelector(ancestor, descendant Selector) *DescendantSelector {
	return &DescendantSelector{
		Ancestor:   ancestor,
		Descendant: descendant,
		priority:   ancestor.Priority() + descendant.Priority(),
	}
}

func (s *DescendantSelector) Matches(node *html.Node) bool {
	if !s.Descendant.Matches(node) {
		return false
	}
	for ancestor := node.Parent; ancestor != nil; ancestor = ancestor.Parent {
		if s.Ancestor.Matches(ancestor) {
			return true
		}
	}
	return false
}

func (s *DescendantSelector) Priority() int { return s.priority }

func (s *DescendantSelector) String() string {
	return s.Ancestor.String() + " " + s.Descendant.String()
}

func (*DescendantSelector) selector() {}

// Rule pairs a selector with its declarations.
type Rule struct {
	Selector Selector
	Body     map[string]string
}

// CascadePriority is the sort key used to order rules before the cascade.
func CascadePriority(rule Rule) int {
	return rule.Selector.Priority()
}

// SortRules returns a copy of rules ordered by ascending priority. Rules
// of equal priority keep their source order.
func SortRules(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return CascadePriority(sorted[i]) < CascadePriority(sorted[j])
	})
	return sorted
}
