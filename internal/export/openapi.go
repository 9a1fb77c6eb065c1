// Package export converts effective schemas to and from OpenAPI 3
// component schemas.
package export

import (
	"context"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// openAPIVersion is the document version Document emits.
const openAPIVersion = "3.0.3"

// Schema renders s as an OpenAPI object schema. Declared fields become
// untyped properties, readonly fields set readOnly, and additionalProperties
// mirrors whether s is open.
func Schema(s types.Schema) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.Title = s.Name
	for _, f := range s.Fields {
		prop := openapi3.NewSchema()
		prop.ReadOnly = f.Readonly
		out.Properties[f.Name] = openapi3.NewSchemaRef("", prop)
	}
	if req := s.Required(); len(req) > 0 {
		out.Required = req
	}
	out.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(s.Open)}
	return out
}

// Document wraps schemas in an OpenAPI document under components.schemas.
func Document(title, version string, schemas ...types.Schema) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info:    &openapi3.Info{Title: title, Version: version},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
	}
	for _, s := range schemas {
		doc.Components.Schemas[s.Name] = openapi3.NewSchemaRef("", Schema(s))
	}
	return doc
}

// Contribution reads an OpenAPI object schema back as a contribution.
// Properties are taken in name order since OpenAPI does not keep one.
func Contribution(site string, s *openapi3.Schema) types.Contribution {
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	c := types.Contribution{Site: site, Fields: []types.FieldSpec{}}
	for _, name := range names {
		f := types.FieldSpec{Name: name, Required: required[name]}
		if ref := s.Properties[name]; ref != nil && ref.Value != nil {
			f.Readonly = ref.Value.ReadOnly
		}
		c.Fields = append(c.Fields, f)
	}
	// A missing additionalProperties keyword allows extra fields.
	ap := s.AdditionalProperties
	c.Open = ap.Has == nil || *ap.Has || ap.Schema != nil
	return c
}

// Load parses an OpenAPI document and returns one contribution per
// component schema, keyed by schema name.
func Load(ctx context.Context, data []byte, site string) (map[string]types.Contribution, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	out := make(map[string]types.Contribution)
	if doc.Components == nil {
		return out, nil
	}
	for name, ref := range doc.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		out[name] = Contribution(site, ref.Value)
	}
	return out, nil
}
