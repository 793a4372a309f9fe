package html

// headTags may only appear inside <head>.
var headTags = map[string]bool{
	"base": true, "basefont": true, "bgsound": true, "noscript": true,
	"link": true, "meta": true, "title": true, "style": true, "script": true,
}

// nextImplicitTag returns the single tag that has to be synthesized before
// tag can be applied to a stack of open elements, if any. Text is checked
// with tag "".
func nextImplicitTag(open []string, tag string) (string, bool) {
	switch {
	case len(open) == 0 && tag != "html":
		return "html", true
	case len(open) == 1 && open[0] == "html" &&
		tag != "head" && tag != "body" && tag != "/html":
		if headTags[tag] {
			return "head", true
		}
		return "body", true
	case len(open) == 2 && open[0] == "html" && open[1] == "head" &&
		tag != "/head" && !headTags[tag]:
		return "/head", true
	}
	return "", false
}

// ImplicitTags runs the repair to a fixed point on a copy of open and
// returns every synthesized tag in order.
func ImplicitTags(open []string, tag string) []string {
	stack := append([]string(nil), open...)
	var synthesized []string
	for {
		next, ok := nextImplicitTag(stack, tag)
		if !ok {
			return synthesized
		}
		synthesized = append(synthesized, next)
		if next[0] == '/' {
			stack = stack[:len(stack)-1]
		} else {
			stack = append(stack, next)
		}
	}
}
