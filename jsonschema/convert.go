// Package jsonschema exports parsed record schemas as minimal JSON Schema
// documents, one object schema per record schema.
package jsonschema

import (
	mdd "github.com/mdd-lang/go-mdd"
)

// FromSchema converts a parsed record schema to a JSON Schema object. Field
// order is not representable in JSON Schema properties; callers needing order
// keep the mdd.Schema at hand.
func FromSchema(s *mdd.Schema) *Schema {
	out := &Schema{
		Type:       "object",
		Title:      s.Name,
		Properties: map[string]*Schema{},
	}
	for i := range s.Fields {
		f := &s.Fields[i]
		out.Properties[f.Name] = fromField(f)
		if f.IsRequired() {
			out.Required = append(out.Required, f.Name)
		}
	}
	return out
}

func fromField(f *mdd.FieldDefinition) *Schema {
	p := &Schema{Title: f.Label}
	switch f.Type {
	case mdd.TypeNumber:
		p.Type = "number"
	case mdd.TypeBoolean:
		p.Type = "boolean"
	case mdd.TypeDate:
		p.Type = "string"
		p.Format = "date"
	case mdd.TypeTime:
		p.Type = "string"
		p.Format = "time"
	default:
		p.Type = "string"
	}
	if r := f.Rules; r != nil {
		p.Minimum = r.Min
		p.Maximum = r.Max
		p.Pattern = r.Pattern
		if r.Email {
			p.Format = "email"
		}
		if r.URL {
			p.Format = "uri"
		}
		if len(r.Options) > 0 {
			p.Enum = append([]string(nil), r.Options...)
		}
	}
	return p
}
