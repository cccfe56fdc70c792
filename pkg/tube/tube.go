// Package tube holds the form state of the tube generator.
package tube

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
	ParamTube         = "tube"
	ParamContent      = "content"
	ParamBgColor      = "bgColor"
	ParamPaddingStyle = "paddingStyle"
)

// Params lists the query parameters in form order.
var Params = []string{ParamTube, ParamContent, ParamBgColor, ParamPaddingStyle}

// NoPadding is the padding value that drops the padding declaration.
const NoPadding = "0"

// State is the tube generator's form state.
type State struct {
	Tube         string `json:"tube" validate:"tube_id"`
	Content      string `json:"content"`
	BgColor      string `json:"bgColor" validate:"css_color"`
	PaddingStyle string `json:"paddingStyle" validate:"css_length"`
}

// HasPadding reports whether the padding declaration is emitted.
func (s State) HasPadding() bool {
	return s.PaddingStyle != NoPadding
}

// Defaults returns the catalog's fallback record.
func Defaults(cat *catalog.Catalog) State {
	return State{
		Tube:         cat.Tube.Tube,
		Content:      cat.Tube.Content,
		BgColor:      cat.Tube.BgColor,
		PaddingStyle: cat.Tube.PaddingStyle,
	}
}

// Get reads one field by query parameter name.
func (s State) Get(param string) (string, bool) {
	switch param {
	case ParamTube:
		return s.Tube, true
	case ParamContent:
		return s.Content, true
	case ParamBgColor:
		return s.BgColor, true
	case ParamPaddingStyle:
		return s.PaddingStyle, true
	}
	return "", false
}

// With returns a copy of s with one field replaced.
func (s State) With(param, value string) (State, error) {
	switch param {
	case ParamTube:
		s.Tube = value
	case ParamContent:
		s.Content = value
	case ParamBgColor:
		s.BgColor = value
	case ParamPaddingStyle:
		s.PaddingStyle = value
	default:
		return s, fmt.Errorf("tube: unknown field %q", param)
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

// NewCodec builds a codec over the catalog's defaults and tube list.
func NewCodec(cat *catalog.Catalog, policy formstate.Policy) (*Codec, error) {
	if cat == nil {
		return nil, fmt.Errorf("tube: missing catalog")
	}
	v, err := rules.New(cat)
	if err != nil {
		return nil, err
	}
	return &Codec{catalog: cat, defaults: Defaults(cat), policy: policy, validate: v}, nil
}

// Encode writes every field.
func (c *Codec) Encode(s State) url.Values {
	q := url.Values{}
	q.Set(ParamTube, s.Tube)
	q.Set(ParamContent, s.Content)
	q.Set(ParamBgColor, s.BgColor)
	q.Set(ParamPaddingStyle, s.PaddingStyle)
	return q
}

// Decode seeds State from q; see Resolve.
func (c *Codec) Decode(q url.Values) State {
	s, _ := c.Resolve(q)
	return s
}

// Resolve seeds each field from its parameter or the default, then applies
// the policy. The second result names rejected parameters.
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

// Fields describes the tube form.
func (c *Codec) Fields() []formstate.Field {
	fields := []formstate.Field{
		{Name: "tube", Param: ParamTube, Label: "Tube", Kind: formstate.KindEnum, Default: c.defaults.Tube, Options: append([]catalog.Option(nil), c.catalog.Tubes...), Placeholder: "Select tube"},
		{Name: "content", Param: ParamContent, Label: "Content (HTML)", Kind: formstate.KindText, Default: c.defaults.Content, Placeholder: "Enter content markup"},
		{Name: "bgColor", Param: ParamBgColor, Label: "Background Color", Kind: formstate.KindColor, Default: c.defaults.BgColor, Placeholder: "#ffffff"},
		{Name: "paddingStyle", Param: ParamPaddingStyle, Label: "Padding", Kind: formstate.KindLength, Default: c.defaults.PaddingStyle, Placeholder: "1rem or 0"},
	}
	if c.policy == formstate.PolicyLenient {
		return fields
	}
	tags := map[string]string{
		ParamTube:         rules.TagTube,
		ParamBgColor:      rules.TagCSSColor,
		ParamPaddingStyle: rules.TagCSSLength,
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

// Store is a form state store with one setter per tube field.
type Store struct {
	*formstate.Store[State]
}

// NewStore seeds a store with initial.
func NewStore(initial State) *Store {
	return &Store{Store: formstate.NewStore(initial)}
}

func (s *Store) SetTube(v string)         { s.Set(func(st *State) { st.Tube = v }) }
func (s *Store) SetContent(v string)      { s.Set(func(st *State) { st.Content = v }) }
func (s *Store) SetBgColor(v string)      { s.Set(func(st *State) { st.BgColor = v }) }
func (s *Store) SetPaddingStyle(v string) { s.Set(func(st *State) { st.PaddingStyle = v }) }

// SetField dispatches to the setter for param.
func (s *Store) SetField(param, value string) error {
	switch param {
	case ParamTube:
		s.SetTube(value)
	case ParamContent:
		s.SetContent(value)
	case ParamBgColor:
		s.SetBgColor(value)
	case ParamPaddingStyle:
		s.SetPaddingStyle(value)
	default:
		return fmt.Errorf("tube: unknown field %q", param)
	}
	return nil
}
