package css

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed browser.css
var browserCSS string

// DefaultStylesheet returns the built-in user agent rules.
func DefaultStylesheet() []Rule {
	return ParseStylesheet(browserCSS)
}

// LoadStylesheet returns the user agent rules from path, or the built-in
// sheet when path is empty.
func LoadStylesheet(path string) ([]Rule, error) {
	if path == "" {
		return DefaultStylesheet(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read user agent stylesheet: %w", err)
	}
	return ParseStylesheet(string(data)), nil
}
