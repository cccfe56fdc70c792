package formstate

import "github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"

// Kind classifies how a field is edited and validated.
type Kind string

const (
	KindEnum   Kind = "enum"
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindColor  Kind = "color"
	KindLength Kind = "length"
)

// Policy selects how decoded values are checked before use.
type Policy string

const (
	// PolicyStrict replaces any value failing its field rule with the default.
	PolicyStrict Policy = "strict"
	// PolicyLenient accepts every non-empty value as-is. Output is still escaped.
	PolicyLenient Policy = "lenient"
)

// ParsePolicy maps a config value onto a Policy, defaulting to strict.
func ParsePolicy(raw string) Policy {
	if Policy(raw) == PolicyLenient {
		return PolicyLenient
	}
	return PolicyStrict
}

// Field describes one entry of a form state record: its query parameter, the
// widget used to edit it and the value it falls back to.
type Field struct {
	Name        string           `json:"name"`
	Param       string           `json:"param"`
	Label       string           `json:"label"`
	Kind        Kind             `json:"kind"`
	Default     string           `json:"default"`
	Placeholder string           `json:"placeholder,omitempty"`
	Options     []catalog.Option `json:"options,omitempty"`
	Min         int              `json:"min,omitempty"`
	Max         int              `json:"max,omitempty"`

	// Check validates a candidate value under the active policy. It is nil
	// when every value is accepted.
	Check func(string) error `json:"-"`
}

// Allows reports whether value passes the field check.
func (f Field) Allows(value string) bool {
	if f.Check == nil {
		return true
	}
	return f.Check(value) == nil
}
