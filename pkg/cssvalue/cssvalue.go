// Package cssvalue checks user supplied CSS values before they are
// interpolated into generated declarations and inline styles.
//
// Values are tokenised with the tdewolff CSS lexer, so anything able to close
// a declaration, a block or an attribute (semicolons, braces, strings, urls)
// is rejected by construction instead of by pattern matching.
package cssvalue

import (
	"io"
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type token struct {
	kind css.TokenType
	data string
}

// lex returns the non-whitespace tokens of value, or false when the lexer
// reports an error before the end of input.
func lex(value string) ([]token, bool) {
	lexer := css.NewLexer(parse.NewInputString(value))
	var out []token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			return out, lexer.Err() == io.EOF
		}
		if tt == css.WhitespaceToken {
			continue
		}
		out = append(out, token{kind: tt, data: string(data)})
	}
}

var colorFunctions = map[string]struct{}{
	"rgb(": {}, "rgba(": {}, "hsl(": {}, "hsla(": {}, "hwb(": {},
	"lab(": {}, "lch(": {}, "oklab(": {}, "oklch(": {},
}

// IsColor reports whether value is a single CSS color: a hex color, a named
// color, or one of the color functions with numeric arguments.
func IsColor(value string) bool {
	tokens, ok := lex(strings.TrimSpace(value))
	if !ok || len(tokens) == 0 {
		return false
	}

	first := tokens[0]
	switch first.kind {
	case css.HashToken:
		if len(tokens) != 1 {
			return false
		}
		return isHexColor(strings.TrimPrefix(first.data, "#"))
	case css.IdentToken:
		if len(tokens) != 1 {
			return false
		}
		_, known := namedColors[strings.ToLower(first.data)]
		return known
	case css.FunctionToken:
		if _, known := colorFunctions[strings.ToLower(first.data)]; !known {
			return false
		}
		last := tokens[len(tokens)-1]
		if last.kind != css.RightParenthesisToken {
			return false
		}
		for _, tok := range tokens[1 : len(tokens)-1] {
			switch tok.kind {
			case css.NumberToken, css.PercentageToken, css.DimensionToken, css.CommaToken:
			case css.DelimToken:
				if tok.data != "/" {
					return false
				}
			case css.IdentToken:
				if strings.ToLower(tok.data) != "none" {
					return false
				}
			default:
				return false
			}
		}
		return true
	}
	return false
}

func isHexColor(hex string) bool {
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range hex {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return false
		}
	}
	return true
}

var lengthUnits = map[string]struct{}{
	"px": {}, "rem": {}, "em": {}, "ex": {}, "ch": {},
	"vh": {}, "vw": {}, "vmin": {}, "vmax": {},
	"pt": {}, "pc": {}, "cm": {}, "mm": {}, "in": {}, "q": {},
}

// IsLength reports whether value is "0" or a padding-like shorthand of one to
// four lengths or percentages.
func IsLength(value string) bool {
	tokens, ok := lex(strings.TrimSpace(value))
	if !ok || len(tokens) == 0 || len(tokens) > 4 {
		return false
	}
	for _, tok := range tokens {
		switch tok.kind {
		case css.PercentageToken:
			if strings.HasPrefix(tok.data, "-") {
				return false
			}
		case css.NumberToken:
			if !isZero(tok.data) {
				return false
			}
		case css.DimensionToken:
			number, unit := splitDimension(tok.data)
			if strings.HasPrefix(number, "-") {
				return false
			}
			if _, known := lengthUnits[strings.ToLower(unit)]; !known {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// IsZero reports whether value is the bare number zero, which the tube
// generator treats as "no padding".
func IsZero(value string) bool {
	return strings.TrimSpace(value) == "0"
}

func isZero(number string) bool {
	trimmed := strings.TrimLeft(number, "+-")
	trimmed = strings.Trim(trimmed, "0.")
	return trimmed == ""
}

func splitDimension(data string) (string, string) {
	idx := strings.IndexFunc(data, unicode.IsLetter)
	if idx < 0 {
		return data, ""
	}
	return data[:idx], data[idx:]
}
