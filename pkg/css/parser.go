package css

import (
	"strings"
	"unicode"
)

// Parser is a recursive descent parser over stylesheet text. Every
// production reports success with a bool and leaves resynchronisation to its
// caller, so malformed input never aborts the whole parse.
type Parser struct {
	s string
	i int
}

func NewParser(s string) *Parser {
	return &Parser{s: s}
}

// ParseStylesheet parses a whole stylesheet.
func ParseStylesheet(s string) []Rule {
	return NewParser(s).Parse()
}

// ParseInlineStyle parses the contents of a style="" attribute.
func ParseInlineStyle(s string) map[string]string {
	return NewParser(s).ParseBody()
}

// Parse returns the rules in source order. Rules that end up with no
// declarations are dropped.
func (p *Parser) Parse() []Rule {
	return p.rules(false)
}

// ParseBody parses a declaration list with no selector or braces.
func (p *Parser) ParseBody() map[string]string {
	p.whitespace()
	return p.body()
}

func (p *Parser) rules(nested bool) []Rule {
	rules := make([]Rule, 0)
	for {
		p.whitespace()
		if p.eof() {
			return rules
		}
		switch p.s[p.i] {
		case '}':
			if nested {
				return rules
			}
			p.i++
			continue
		case '@':
			p.atRule()
			continue
		}
		rule, ok := p.rule()
		if ok {
			if len(rule.Body) > 0 {
				rules = append(rules, rule)
			}
			continue
		}
		if !p.recover() {
			return rules
		}
	}
}

func (p *Parser) rule() (Rule, bool) {
	selector, ok := p.selector()
	if !ok || !p.literal('{') {
		return Rule{}, false
	}
	p.whitespace()
	body := p.body()
	if !p.literal('}') {
		return Rule{}, false
	}
	return Rule{Selector: selector, Body: body}, true
}

// recover skips past a rule whose selector could not be parsed. A block
// opened after the bad selector is skipped whole; a '}' is left for the
// rule loop. It returns false at end of input.
func (p *Parser) recover() bool {
	why, ok := p.ignoreUntil("{}")
	if !ok {
		return false
	}
	if why == '{' {
		p.skipBlock()
	}
	return true
}

// atRule consumes an at-rule. Its block, if any, is parsed as a nested rule
// list and thrown away.
func (p *Parser) atRule() {
	p.i++
	p.word()
	why, ok := p.ignoreUntil("{;}")
	if !ok {
		return
	}
	switch why {
	case ';':
		p.i++
	case '{':
		p.i++
		p.rules(true)
		p.literal('}')
	}
}

func (p *Parser) selector() (Selector, bool) {
	tag, ok := p.word()
	if !ok {
		return nil, false
	}
	var out Selector = NewTagSelector(tag)
	p.whitespace()
	for !p.eof() && p.s[p.i] != '{' {
		tag, ok := p.word()
		if !ok {
			return nil, false
		}
		out = NewDescendantSelector(out, NewTagSelector(tag))
		p.whitespace()
	}
	return out, true
}

// body reads "prop: value;" pairs until '}' or end of input. A declaration
// that does not parse is skipped up to the next ';'; reaching '}' first
// ends the body.
func (p *Parser) body() map[string]string {
	pairs := make(map[string]string)
	for !p.eof() && p.s[p.i] != '}' {
		prop, val, ok := p.pair()
		if ok {
			pairs[prop] = val
			p.whitespace()
			if p.literal(';') {
				p.whitespace()
				continue
			}
		}
		why, found := p.ignoreUntil(";}")
		if !found || why == '}' {
			break
		}
		p.i++
		p.whitespace()
	}
	return pairs
}

func (p *Parser) pair() (string, string, bool) {
	prop, ok := p.word()
	if !ok {
		return "", "", false
	}
	p.whitespace()
	if !p.literal(':') {
		return "", "", false
	}
	p.whitespace()
	val, ok := p.word()
	if !ok {
		return "", "", false
	}
	return strings.ToLower(prop), val, true
}

// word reads a quoted string or a run of word characters.
func (p *Parser) word() (string, bool) {
	if !p.eof() && (p.s[p.i] == '\'' || p.s[p.i] == '"') {
		return p.quoted(), true
	}
	start := p.i
	for !p.eof() && isWordChar(p.s[p.i]) {
		p.i++
	}
	if p.i == start {
		return "", false
	}
	return p.s[start:p.i], true
}

// quoted reads a string up to its closing quote, a ';' or a newline.
func (p *Parser) quoted() string {
	quote := p.s[p.i]
	p.i++
	start := p.i
	for !p.eof() && p.s[p.i] != quote && p.s[p.i] != ';' && p.s[p.i] != '\n' {
		p.i++
	}
	value := p.s[start:p.i]
	if !p.eof() && p.s[p.i] == quote {
		p.i++
	}
	return value
}

func (p *Parser) literal(c byte) bool {
	if p.eof() || p.s[p.i] != c {
		return false
	}
	p.i++
	return true
}

// whitespace skips spaces and /* comments */.
func (p *Parser) whitespace() {
	for !p.eof() {
		if unicode.IsSpace(rune(p.s[p.i])) {
			p.i++
			continue
		}
		if strings.HasPrefix(p.s[p.i:], "/*") {
			end := strings.Index(p.s[p.i+2:], "*/")
			if end < 0 {
				p.i = len(p.s)
			} else {
				p.i += end + 4
			}
			continue
		}
		return
	}
}

// ignoreUntil advances to the next byte contained in chars without
// consuming it.
func (p *Parser) ignoreUntil(chars string) (byte, bool) {
	for !p.eof() {
		if strings.IndexByte(chars, p.s[p.i]) >= 0 {
			return p.s[p.i], true
		}
		p.i++
	}
	return 0, false
}

// skipBlock consumes a balanced {...} block starting at '{'.
func (p *Parser) skipBlock() {
	depth := 0
	for !p.eof() {
		switch p.s[p.i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.i++
				return
			}
		}
		p.i++
	}
}

func (p *Parser) eof() bool {
	return p.i >= len(p.s)
}

func isWordChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '#', c == '-', c == '.', c == '%':
		return true
	}
	// Bytes of multi-byte UTF-8 sequences.
	return c >= 0x80
}
