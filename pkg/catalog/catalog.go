package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var dataFS embed.FS

const defaultCatalogPath = "data/catalog.yaml"

// ErrInvalidCatalog wraps every structural problem reported by Validate.
var ErrInvalidCatalog = errors.New("catalog: invalid catalog")

// Option is a selectable value paired with its display name.
type Option struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// WidthRange bounds the border width input. The range is advisory in the
// browser and enforced by the strict decoding policy.
type WidthRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// BorderDefaults holds the fallback values of the border generator.
type BorderDefaults struct {
	Color   string `yaml:"color" json:"color"`
	Style   string `yaml:"style" json:"style"`
	Width   string `yaml:"width" json:"width"`
	Content string `yaml:"content" json:"content"`
}

// TubeDefaults holds the fallback values of the tube generator.
type TubeDefaults struct {
	Tube         string `yaml:"tube" json:"tube"`
	Content      string `yaml:"content" json:"content"`
	BgColor      string `yaml:"bg_color" json:"bgColor"`
	PaddingStyle string `yaml:"padding_style" json:"paddingStyle"`
}

// Catalog enumerates the closed option sets and the defaults both generators
// fall back to.
type Catalog struct {
	StylesheetBase string         `yaml:"stylesheet_base" json:"stylesheetBase"`
	Colors         []Option       `yaml:"colors" json:"colors"`
	Styles         []Option       `yaml:"styles" json:"styles"`
	Tubes          []Option       `yaml:"tubes" json:"tubes"`
	Width          WidthRange     `yaml:"width" json:"width"`
	Border         BorderDefaults `yaml:"border" json:"border"`
	Tube           TubeDefaults   `yaml:"tube" json:"tube"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns a copy of the embedded catalog.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		data, err := dataFS.ReadFile(defaultCatalogPath)
		if err != nil {
			defaultErr = err
			return
		}
		cat := &Catalog{}
		if err := yaml.Unmarshal(data, cat); err != nil {
			defaultErr = fmt.Errorf("catalog: decode embedded catalog: %w", err)
			return
		}
		if err := cat.Validate(); err != nil {
			defaultErr = err
			return
		}
		defaultCatalog = cat
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultCatalog.Clone(), nil
}

// MustDefault is Default for init-time wiring and tests.
func MustDefault() *Catalog {
	cat, err := Default()
	if err != nil {
		panic(err)
	}
	return cat
}

// Load decodes a YAML catalog on top of the embedded default. Sections the
// document omits keep their default values; lists are replaced as a whole.
func Load(r io.Reader) (*Catalog, error) {
	if r == nil {
		return nil, fmt.Errorf("catalog: missing reader")
	}
	cat, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, cat); err != nil {
			return nil, fmt.Errorf("catalog: decode: %w", err)
		}
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadFile reads a catalog from path. An empty path yields the default catalog.
func LoadFile(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Validate checks that every option list is populated, values are unique and
// each default is a member of its list.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: catalog is nil", ErrInvalidCatalog)
	}
	lists := []struct {
		name    string
		options []Option
	}{
		{"colors", c.Colors},
		{"styles", c.Styles},
		{"tubes", c.Tubes},
	}
	for _, list := range lists {
		if len(list.options) == 0 {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidCatalog, list.name)
		}
		seen := make(map[string]struct{}, len(list.options))
		for _, opt := range list.options {
			if strings.TrimSpace(opt.Value) == "" {
				return fmt.Errorf("%w: %s contains an empty value", ErrInvalidCatalog, list.name)
			}
			if _, dup := seen[opt.Value]; dup {
				return fmt.Errorf("%w: %s contains duplicate value %q", ErrInvalidCatalog, list.name, opt.Value)
			}
			seen[opt.Value] = struct{}{}
		}
	}

	if c.Width.Min < 0 || c.Width.Max < c.Width.Min {
		return fmt.Errorf("%w: width range %d..%d", ErrInvalidCatalog, c.Width.Min, c.Width.Max)
	}
	if strings.TrimSpace(c.StylesheetBase) == "" {
		return fmt.Errorf("%w: stylesheet_base is required", ErrInvalidCatalog)
	}

	if !Contains(c.Colors, c.Border.Color) {
		return fmt.Errorf("%w: default color %q is not a listed color", ErrInvalidCatalog, c.Border.Color)
	}
	if !Contains(c.Styles, c.Border.Style) {
		return fmt.Errorf("%w: default style %q is not a listed style", ErrInvalidCatalog, c.Border.Style)
	}
	if !c.WidthAllowed(c.Border.Width) {
		return fmt.Errorf("%w: default width %q is outside %d..%d", ErrInvalidCatalog, c.Border.Width, c.Width.Min, c.Width.Max)
	}
	if !Contains(c.Tubes, c.Tube.Tube) {
		return fmt.Errorf("%w: default tube %q is not a listed tube", ErrInvalidCatalog, c.Tube.Tube)
	}
	return nil
}

// WidthAllowed reports whether raw is an integer inside the width range.
func (c *Catalog) WidthAllowed(raw string) bool {
	if c == nil {
		return false
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return value >= c.Width.Min && value <= c.Width.Max
}

// Clone returns a deep copy so callers can mutate lists freely.
func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return nil
	}
	out := *c
	out.Colors = append([]Option(nil), c.Colors...)
	out.Styles = append([]Option(nil), c.Styles...)
	out.Tubes = append([]Option(nil), c.Tubes...)
	return &out
}

// Encode writes the catalog as YAML.
func (c *Catalog) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("catalog: encode: %w", err)
	}
	return enc.Close()
}

// Contains reports whether value is one of the option values.
func Contains(options []Option, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Values lists the option values in catalog order.
func Values(options []Option) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.Value)
	}
	return out
}
