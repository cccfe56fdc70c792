// Package chrome resolves the page theme: the colours and spacing the
// generator pages are drawn with, expressed as go-theme manifests.
package chrome

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Default theme and variant names.
const (
	DefaultTheme   = "bordertube"
	VariantLight   = "light"
	VariantDark    = "dark"
	DefaultVariant = VariantLight
)

// ErrUnknownTheme is returned when a selection names an unregistered theme.
var ErrUnknownTheme = errors.New("chrome: unknown theme")

// DefaultManifest returns the built-in theme with its dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"surface":      "#ffffff",
			"surface-alt":  "#f4f5f7",
			"text":         "#1d2330",
			"muted":        "#5b6475",
			"accent":       "#2f6fed",
			"accent-text":  "#ffffff",
			"border":       "#d5d9e0",
			"radius":       "6px",
			"font":         "system-ui, -apple-system, sans-serif",
			"font-mono":    "ui-monospace, SFMono-Regular, Menlo, monospace",
			"toast":        "#1d2330",
			"toast-text":   "#ffffff",
			"preview-grid": "#eef0f3",
		},
		Variants: map[string]theme.Variant{
			VariantDark: {
				Tokens: map[string]string{
					"surface":      "#161a22",
					"surface-alt":  "#1f2430",
					"text":         "#e6e9ef",
					"muted":        "#9aa3b5",
					"accent":       "#6d9bff",
					"accent-text":  "#0b0e14",
					"border":       "#2e3545",
					"toast":        "#e6e9ef",
					"toast-text":   "#161a22",
					"preview-grid": "#222835",
				},
			},
		},
	}
}

// Selector resolves theme selections from a fixed set of manifests.
type Selector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests; without any the built-in one is used.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, m := range manifests {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("chrome: manifest name required")
		}
		if _, exists := s.manifests[m.Name]; exists {
			return nil, fmt.Errorf("chrome: manifest %q already registered", m.Name)
		}
		s.manifests[m.Name] = m
	}
	if s.defaultTheme == "" {
		s.defaultTheme = manifests[0].Name
	}
	if _, ok := s.manifests[s.defaultTheme]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, s.defaultTheme)
	}
	if s.defaultVariant == "" {
		s.defaultVariant = DefaultVariant
	}
	return s, nil
}

// Select picks a manifest and variant, falling back to the defaults for empty
// names. An unknown variant resolves to the base tokens.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}
	if _, ok := manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Variants lists the variant names of a theme, the base first.
func (s *Selector) Variants(name string) []string {
	manifest, ok := s.manifests[name]
	if !ok {
		return nil
	}
	out := []string{VariantLight}
	names := make([]string, 0, len(manifest.Variants))
	for v := range manifest.Variants {
		if v != VariantLight {
			names = append(names, v)
		}
	}
	sort.Strings(names)
	return append(out, names...)
}

// Config flattens a selection into renderer configuration: variant tokens
// override base tokens and every token becomes a --name CSS variable.
func Config(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(sel.Manifest.Tokens))
	for k, v := range sel.Manifest.Tokens {
		tokens[k] = v
	}
	if variant, ok := sel.Manifest.Variants[sel.Variant]; ok {
		for k, v := range variant.Tokens {
			tokens[k] = v
		}
	}
	vars := make(map[string]string, len(tokens))
	for k, v := range tokens {
		vars["--"+k] = v
	}
	return &theme.RendererConfig{
		Theme:   sel.Theme,
		Variant: sel.Variant,
		Tokens:  tokens,
		CSSVars: vars,
	}
}

// CSSVarsStyle renders CSS variables as a sorted :root rule.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// Resolve selects a theme and returns its :root style block.
func Resolve(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, string, error) {
	if selector == nil {
		return nil, "", errors.New("chrome: selector required")
	}
	sel, err := selector.Select(name, variant)
	if err != nil {
		return nil, "", err
	}
	cfg := Config(sel)
	if cfg == nil {
		return nil, "", fmt.Errorf("chrome: empty selection for %q", name)
	}
	return cfg, CSSVarsStyle(cfg.CSSVars), nil
}
