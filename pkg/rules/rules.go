// Package rules builds the validator used by the strict decoding policy. The
// enum rules are bound to a catalog, so every catalog gets its own instance.
package rules

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/cssvalue"
)

// Tag names understood by the validator returned from New.
const (
	TagBorderColor = "border_color"
	TagBorderStyle = "border_style"
	TagBorderWidth = "border_width"
	TagTube        = "tube_id"
	TagCSSColor    = "css_color"
	TagCSSLength   = "css_length"
)

// New returns a validator aware of the catalog's option sets. Field errors are
// reported under their json names, which are also the query parameter names.
func New(cat *catalog.Catalog) (*validator.Validate, error) {
	if cat == nil {
		return nil, fmt.Errorf("rules: missing catalog")
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registrations := map[string]func(string) bool{
		TagBorderColor: func(s string) bool { return catalog.Contains(cat.Colors, s) },
		TagBorderStyle: func(s string) bool { return catalog.Contains(cat.Styles, s) },
		TagBorderWidth: cat.WidthAllowed,
		TagTube:        func(s string) bool { return catalog.Contains(cat.Tubes, s) },
		TagCSSColor:    cssvalue.IsColor,
		TagCSSLength:   cssvalue.IsLength,
	}
	for tag, check := range registrations {
		check := check
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		})
		if err != nil {
			return nil, fmt.Errorf("rules: register %s: %w", tag, err)
		}
	}
	return v, nil
}

// Failed lists the field names reported by a validation error, in the order
// the validator produced them. Non-validation errors yield nil.
func Failed(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fe.Field())
	}
	return out
}

// Check validates a single value against one tag, returning a readable error.
func Check(v *validator.Validate, value, tag, label string) error {
	if v == nil {
		return nil
	}
	if err := v.Var(value, tag); err != nil {
		return fmt.Errorf("%s: %q is not allowed", label, value)
	}
	return nil
}
