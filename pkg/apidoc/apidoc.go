// Package apidoc describes the JSON API of the generator pages as an OpenAPI 3
// document.
package apidoc

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/widget"
)

// OpenAPIVersion is the document format version.
const OpenAPIVersion = "3.0.3"

// Schema component names.
const (
	SchemaResult  = "Result"
	SchemaSnippet = "Snippet"
	SchemaError   = "Error"
)

// EditHeader marks a request written from a live form. With any non-empty
// value, parameters that are present but empty stay empty instead of taking
// their default.
const EditHeader = "X-Bordertube-Edit"

// Info carries the document metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// DefaultInfo is used when Build receives a zero Info.
var DefaultInfo = Info{
	Title:       "Border & Tube Code Generator API",
	Version:     "1.0.0",
	Description: "Resolves generator form state into code snippets and a preview.",
}

// APIPath is the route serving one variant's JSON under basePath.
func APIPath(basePath, variant string) string {
	return path.Join("/", basePath, "api", variant)
}

// Build describes GET {base}/api/{variant} for every variant. Each query
// parameter carries its enum and default.
func Build(basePath string, info Info, variants []widget.Variant) (*openapi3.T, error) {
	if info.Title == "" {
		info = DefaultInfo
	}
	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				SchemaSnippet: openapi3.NewSchemaRef("", snippetSchema()),
				SchemaError:   openapi3.NewSchemaRef("", errorSchema()),
			},
		},
	}
	doc.Components.Schemas[SchemaResult] = openapi3.NewSchemaRef("", resultSchema())

	for _, v := range variants {
		if v == nil {
			continue
		}
		doc.AddOperation(APIPath(basePath, v.Name()), http.MethodGet, operation(v))
	}
	if doc.Paths.Len() == 0 {
		return nil, fmt.Errorf("apidoc: no variants to describe")
	}
	return doc, nil
}

// BuildValidated builds the document and validates it.
func BuildValidated(ctx context.Context, basePath string, info Info, variants []widget.Variant) (*openapi3.T, error) {
	doc, err := Build(basePath, info, variants)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apidoc: validate: %w", err)
	}
	return doc, nil
}

func operation(v widget.Variant) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "resolve" + strings.ToUpper(v.Name()[:1]) + v.Name()[1:]
	op.Summary = v.Title()
	op.Description = v.Description() + " Missing or rejected parameters fall back to their defaults."
	op.Tags = []string{v.Name()}

	for _, field := range v.Fields() {
		op.AddParameter(parameter(field))
	}
	op.AddParameter(openapi3.NewHeaderParameter(EditHeader).
		WithDescription("Keep parameters that are present but empty, as a live form does").
		WithSchema(openapi3.NewStringSchema().WithEnum("1")))

	op.AddResponse(http.StatusOK, openapi3.NewResponse().
		WithDescription("Resolved form state with generated snippets").
		WithJSONSchemaRef(componentRef(SchemaResult)))
	op.AddResponse(http.StatusNotFound, openapi3.NewResponse().
		WithDescription("Unknown variant").
		WithJSONSchemaRef(componentRef(SchemaError)))
	return op
}

func parameter(field formstate.Field) *openapi3.Parameter {
	schema := openapi3.NewStringSchema().WithDefault(field.Default)
	if len(field.Options) > 0 {
		values := make([]any, 0, len(field.Options))
		for _, opt := range field.Options {
			values = append(values, opt.Value)
		}
		schema = schema.WithEnum(values...)
	}
	if field.Kind == formstate.KindNumber {
		schema = schema.WithPattern(`^[0-9]+$`)
	}

	description := field.Label
	switch {
	case field.Kind == formstate.KindNumber && field.Max > 0:
		description = fmt.Sprintf("%s, %d to %d", field.Label, field.Min, field.Max)
	case field.Kind == formstate.KindColor:
		description = field.Label + ", any CSS color"
	case field.Kind == formstate.KindLength:
		description = field.Label + `, CSS lengths or "0" for none`
	}

	return openapi3.NewQueryParameter(field.Param).
		WithDescription(description).
		WithSchema(schema)
}

func componentRef(name string) *openapi3.SchemaRef {
	var value *openapi3.Schema
	switch name {
	case SchemaResult:
		value = resultSchema()
	case SchemaSnippet:
		value = snippetSchema()
	default:
		value = errorSchema()
	}
	return openapi3.NewSchemaRef("#/components/schemas/"+name, value)
}

func snippetSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("language", openapi3.NewStringSchema().WithEnum("css", "html")).
		WithProperty("code", openapi3.NewStringSchema())
}

func resultSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("variant", openapi3.NewStringSchema()).
		WithProperty("query", openapi3.NewStringSchema()).
		WithProperty("values", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())).
		WithProperty("fallbacks", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithProperty("snippets", openapi3.NewArraySchema().WithItems(snippetSchema())).
		WithProperty("preview", openapi3.NewStringSchema()).
		WithProperty("stylesheets", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
	s.Required = []string{"variant", "query", "values", "snippets", "preview"}
	return s
}

func errorSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("status", openapi3.NewIntegerSchema())
	s.Required = []string{"error"}
	return s
}
