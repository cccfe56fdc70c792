package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

// cssUnsafe lists the characters that would let a value escape a single CSS
// declaration or the attribute holding it.
const cssUnsafe = ";{}<>\"'\\"

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("cssvalue") {
		_ = pongo2.RegisterFilter("cssvalue", filterCSSValue)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterCSSValue strips declaration and markup delimiters from a CSS value.
func filterCSSValue(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(cssUnsafe, r) || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, in.String())
	return pongo2.AsValue(strings.TrimSpace(cleaned)), nil
}
