// Package border holds the form state of the border generator: the record,
// its query codec, its field schema and a store with per-field setters.
package border

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/rules"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/urlsync"
)

// Query parameter names.
const (
	ParamColor   = "color"
	ParamStyle   = "style"
	ParamWidth   = "width"
	ParamContent = "content"
)

// Params lists the query parameters in form order.
var Params = []string{ParamColor, ParamStyle, ParamWidth, ParamContent}

// State is the border generator's form state.
type State struct {
	Color   string `json:"color" validate:"border_color"`
	Style   string `json:"style" validate:"border_style"`
	Width   string `json:"width" validate:"border_width"`
	Content string `json:"content"`
}

// Defaults returns the catalog's fallback record.
func Defaults(cat *catalog.Catalog) State {
	return State{
		Color:   cat.Border.Color,
		Style:   cat.Border.Style,
		Width:   cat.Border.Width,
		Content: cat.Border.Content,
	}
}

// Get reads one field by query parameter name.
func (s State) Get(param string) (string, bool) {
	switch param {
	case ParamColor:
		return s.Color, true
	case ParamStyle:
		return s.Style, true
	case ParamWidth:
		return s.Width, true
	case ParamContent:
		return s.Content, true
	}
	return "", false
}

// With returns a copy of s with one field replaced.
func (s State) With(param, value string) (State, error) {
	switch param {
	case ParamColor:
		s.Color = value
	case ParamStyle:
		s.Style = value
	case ParamWidth:
		s.Width = value
	case ParamContent:
		s.Content = value
	default:
		return s, fmt.Errorf("border: unknown field %q", param)
	}
	return s, nil
}

// Codec maps State to and from query parameters.
type Codec struct {
	catalog  *catalog.Catalog
	defaults State
	policy   formstate.Policy
	validate *validator.Validate
}

var _ urlsync.Codec[State] = (*Codec)(nil)

// NewCodec builds a codec over the catalog's defaults and option sets.
func NewCodec(cat *catalog.Catalog, policy formstate.Policy) (*Codec, error) {
	if cat == nil {
		return nil, fmt.Errorf("border: missing catalog")
	}
	v, err := rules.New(cat)
	if err != nil {
		return nil, err
	}
	return &Codec{catalog: cat, defaults: Defaults(cat), policy: policy, validate: v}, nil
}

// Encode writes every field, so the result overwrites any prior parameters.
func (c *Codec) Encode(s State) url.Values {
	q := url.Values{}
	q.Set(ParamColor, s.Color)
	q.Set(ParamStyle, s.Style)
	q.Set(ParamWidth, s.Width)
	q.Set(ParamContent, s.Content)
	return q
}

// Decode seeds State from q; see Resolve.
func (c *Codec) Decode(q url.Values) State {
	s, _ := c.Resolve(q)
	return s
}

// Resolve seeds each field from its parameter, falling back to the default
// when the parameter is absent or empty. Under the strict policy values that
// fail their rule are replaced by the default as well. The second result
// names the parameters that were present but rejected.
func (c *Codec) Resolve(q url.Values) (State, []string) {
	return c.resolve(q, false)
}

// Edit decodes a query written from a live form. A parameter that is present
// but empty stays empty instead of falling back; absent parameters and values
// the strict policy rejects still take the default.
func (c *Codec) Edit(q url.Values) (State, []string) {
	return c.resolve(q, true)
}

func (c *Codec) resolve(q url.Values, keepEmpty bool) (State, []string) {
	s := c.defaults
	for _, param := range Params {
		if _, present := q[param]; !present {
			continue
		}
		if raw := q.Get(param); raw != "" || keepEmpty {
			s, _ = s.With(param, raw)
		}
	}
	if c.policy == formstate.PolicyLenient {
		return s, nil
	}

	rejected := rules.Failed(c.validate.Struct(s))
	for _, param := range rejected {
		fallback, _ := c.defaults.Get(param)
		s, _ = s.With(param, fallback)
	}
	return s, rejected
}

// Policy reports the decoding policy.
func (c *Codec) Policy() formstate.Policy {
	return c.policy
}

// Fields describes the border form. Checks are attached under the strict
// policy only.
func (c *Codec) Fields() []formstate.Field {
	cat := c.catalog
	fields := []formstate.Field{
		{Name: "borderColor", Param: ParamColor, Label: "Border Color", Kind: formstate.KindEnum, Default: c.defaults.Color, Options: append([]catalog.Option(nil), cat.Colors...), Placeholder: "Select color"},
		{Name: "borderStyle", Param: ParamStyle, Label: "Border Style", Kind: formstate.KindEnum, Default: c.defaults.Style, Options: append([]catalog.Option(nil), cat.Styles...), Placeholder: "Select style"},
		{Name: "borderWidth", Param: ParamWidth, Label: "Border Width (px)", Kind: formstate.KindNumber, Default: c.defaults.Width, Min: cat.Width.Min, Max: cat.Width.Max},
		{Name: "content", Param: ParamContent, Label: "Content", Kind: formstate.KindText, Default: c.defaults.Content, Placeholder: "Enter content text"},
	}
	if c.policy == formstate.PolicyLenient {
		return fields
	}
	tags := map[string]string{
		ParamColor: rules.TagBorderColor,
		ParamStyle: rules.TagBorderStyle,
		ParamWidth: rules.TagBorderWidth,
	}
	for i := range fields {
		tag, ok := tags[fields[i].Param]
		if !ok {
			continue
		}
		label := fields[i].Label
		fields[i].Check = func(value string) error {
			return rules.Check(c.validate, value, tag, label)
		}
	}
	return fields
}

// Store is a form state store with one setter per border field.
type Store struct {
	*formstate.Store[State]
}

// NewStore seeds a store with initial.
func NewStore(initial State) *Store {
	return &Store{Store: formstate.NewStore(initial)}
}

func (s *Store) SetColor(v string)   { s.Set(func(st *State) { st.Color = v }) }
func (s *Store) SetStyle(v string)   { s.Set(func(st *State) { st.Style = v }) }
func (s *Store) SetWidth(v string)   { s.Set(func(st *State) { st.Width = v }) }
func (s *Store) SetContent(v string) { s.Set(func(st *State) { st.Content = v }) }

// SetField dispatches to the setter for param.
func (s *Store) SetField(param, value string) error {
	switch param {
	case ParamColor:
		s.SetColor(value)
	case ParamStyle:
		s.SetStyle(value)
	case ParamWidth:
		s.SetWidth(value)
	case ParamContent:
		s.SetContent(value)
	default:
		return fmt.Errorf("border: unknown field %q", param)
	}
	return nil
}
