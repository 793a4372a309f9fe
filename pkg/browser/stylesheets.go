package browser

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"lantern/pkg/css"
	"lantern/pkg/html"
	"lantern/pkg/resource"
)

// collectRules gathers the user agent rules followed by the page's
// stylesheets in document order. A linked sheet that cannot be resolved or
// fetched contributes nothing.
func (b *Browser) collectRules(ctx context.Context, base resource.URL, document *html.Node) []css.Rule {
	rules := make([]css.Rule, 0, len(b.uaRules))
	rules = append(rules, b.uaRules...)

	for _, node := range html.TreeToList(document) {
		if !node.IsElement() {
			continue
		}
		switch node.TagName {
		case "link":
			if !isStylesheetLink(node) {
				continue
			}
			href, _ := node.GetAttribute("href")
			rules = append(rules, b.fetchStylesheet(ctx, base, href)...)
		case "style":
			rules = append(rules, css.ParseStylesheet(node.TextContent())...)
		}
	}
	return rules
}

func isStylesheetLink(node *html.Node) bool {
	rel, _ := node.GetAttribute("rel")
	href, _ := node.GetAttribute("href")
	if href == "" {
		return false
	}
	for _, kind := range strings.Fields(rel) {
		if strings.EqualFold(kind, "stylesheet") {
			return true
		}
	}
	return false
}

func (b *Browser) fetchStylesheet(ctx context.Context, base resource.URL, href string) []css.Rule {
	target, err := base.Resolve(href)
	if err != nil {
		b.logger.Warn("skipping stylesheet", zap.String("href", href), zap.Error(err))
		return nil
	}
	resp, err := b.fetcher.Fetch(ctx, target)
	if err != nil {
		b.logger.Warn("skipping stylesheet", zap.Stringer("url", target), zap.Error(err))
		return nil
	}
	return css.ParseStylesheet(resp.Body)
}
