// Package widget exposes the border and tube generators behind one Variant
// interface, so pages, the JSON API and the CLI drive them the same way.
package widget

import (
	"errors"
	"fmt"
	"html/template"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/preview"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/snippet"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/urlsync"
)

// ErrUnknownVariant is returned when a registry lookup misses.
var ErrUnknownVariant = errors.New("widget: unknown variant")

// Snippet is one block of generated code.
type Snippet struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Result is everything a view needs for one form state.
type Result struct {
	Variant     string            `json:"variant"`
	Query       url.Values        `json:"-"`
	QueryString string            `json:"query"`
	Canonical   bool              `json:"-"`
	Values      map[string]string `json:"values"`
	Fallbacks   []string          `json:"fallbacks,omitempty"`
	Snippets    []Snippet         `json:"snippets"`
	Preview     template.HTML     `json:"preview"`
	Stylesheets []string          `json:"stylesheets,omitempty"`
}

// Snippet returns the named snippet.
func (r Result) Snippet(name string) (Snippet, bool) {
	for _, s := range r.Snippets {
		if s.Name == name {
			return s, true
		}
	}
	return Snippet{}, false
}

// Variant is one generator.
type Variant interface {
	Name() string
	Title() string
	Description() string
	Fields() []formstate.Field
	// Resolve decodes q under the variant's policy and renders the result.
	Resolve(q url.Values) (Result, error)
	// Edit is Resolve for a query written from a live form: parameters that
	// are present but empty stay empty.
	Edit(q url.Values) (Result, error)
	// Open starts an interactive session whose writes are mirrored to loc.
	Open(loc urlsync.Location) (Session, error)
}

// Session is a live form: each Set updates the store, which rewrites the
// location.
type Session interface {
	Set(param, value string) error
	Values() map[string]string
	Result() (Result, error)
	Close()
}

// Deps are shared by every variant.
type Deps struct {
	Catalog  *catalog.Catalog
	Policy   formstate.Policy
	Snippets *snippet.Generator
	Preview  *preview.Renderer
	Logger   zerolog.Logger
}

// NewDeps fills in the snippet generator and preview renderer for cat.
func NewDeps(cat *catalog.Catalog, policy formstate.Policy, options ...snippet.Option) (Deps, error) {
	if cat == nil {
		return Deps{}, fmt.Errorf("widget: missing catalog")
	}
	snippets, err := snippet.New(append([]snippet.Option{snippet.WithCatalog(cat)}, options...)...)
	if err != nil {
		return Deps{}, err
	}
	previews, err := preview.New(snippets)
	if err != nil {
		return Deps{}, err
	}
	return Deps{
		Catalog:  cat,
		Policy:   policy,
		Snippets: snippets,
		Preview:  previews,
		Logger:   zerolog.Nop(),
	}, nil
}

func (d Deps) validate() error {
	if d.Catalog == nil || d.Snippets == nil || d.Preview == nil {
		return fmt.Errorf("widget: incomplete dependencies")
	}
	return nil
}

// NewRegistryFromDeps registers both generators.
func NewRegistryFromDeps(deps Deps) (*Registry, error) {
	b, err := NewBorder(deps)
	if err != nil {
		return nil, err
	}
	t, err := NewTube(deps)
	if err != nil {
		return nil, err
	}
	return NewRegistry(b, t)
}

// stateValues flattens a record through its getter in params order.
func stateValues(params []string, get func(string) (string, bool)) map[string]string {
	out := make(map[string]string, len(params))
	for _, p := range params {
		if v, ok := get(p); ok {
			out[p] = v
		}
	}
	return out
}

func logFallbacks(logger zerolog.Logger, variant string, q url.Values, rejected []string) {
	if len(rejected) == 0 {
		return
	}
	ev := logger.Debug().Str("variant", variant)
	for _, param := range rejected {
		ev = ev.Str(param, q.Get(param))
	}
	ev.Strs("fallbacks", rejected).Msg("rejected query values replaced by defaults")
}
