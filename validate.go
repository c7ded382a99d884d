package mdd

import (
	"github.com/mdd-lang/go-mdd/internal/scan"
	"github.com/mdd-lang/go-mdd/internal/typefmt"
)

// validateBlock cross-checks a data block against its resolved schema and
// fills in typed values. It runs only after schema resolution, since a data
// block may precede its schema's datadef block in document order.
//
// Tabular blocks are checked at the header: unknown or grammar-breaking
// header cells and required fields absent from the header are reported once
// per block, not once per row. Free-form blocks are checked entry by entry.
func (p *parser) validateBlock(db *dataBlock, s *Schema) {
	switch db.layout {
	case LayoutTabular:
		seen := map[string]bool{}
		for _, name := range db.header {
			seen[name] = true
			if !scan.IsIdentifier(name) {
				p.res.reportErr(p.opt, Diagnostic{
					Kind:    KindInvalidFieldName,
					Message: "header cell " + name + " does not match identifier grammar",
					Line:    db.headerLine,
					Schema:  s.Name,
					Field:   name,
				})
				continue
			}
			if s.Field(name) == nil {
				p.res.reportErr(p.opt, Diagnostic{
					Kind:    KindInvalidFieldName,
					Message: "header names unknown field " + name,
					Line:    db.headerLine,
					Schema:  s.Name,
					Field:   name,
				})
			}
		}
		for _, req := range s.RequiredFields() {
			if !seen[req] {
				p.res.reportErr(p.opt, Diagnostic{
					Kind:    KindMissingRequiredField,
					Message: "required field " + req + " missing from header",
					Line:    db.headerLine,
					Schema:  s.Name,
					Field:   req,
				})
			}
		}

	case LayoutFreeform:
		for i := range db.entries {
			e := &db.entries[i]
			for _, fv := range e.Fields {
				if s.Field(fv.Name) == nil {
					p.res.reportErr(p.opt, Diagnostic{
						Kind:    KindInvalidFieldName,
						Message: "entry sets unknown field " + fv.Name,
						Line:    e.Line,
						Schema:  s.Name,
						Field:   fv.Name,
					})
				}
			}
			for _, req := range s.RequiredFields() {
				if !e.Fields.Has(req) {
					p.res.reportErr(p.opt, Diagnostic{
						Kind:    KindMissingRequiredField,
						Message: "required field " + req + " missing from entry",
						Line:    e.Line,
						Schema:  s.Name,
						Field:   req,
					})
				}
			}
		}
	}

	for i := range db.entries {
		e := &db.entries[i]
		for j := range e.Fields {
			fv := &e.Fields[j]
			def := s.Field(fv.Name)
			if def == nil {
				continue
			}
			fv.Value = p.typeValue(def, fv.Value.Raw, e.Line, s.Name)
		}
	}
}

// typeValue applies the type/format engine to one raw token. A structural
// failure downgrades the value to its raw form with a type_mismatch error; a
// value that is structurally valid but does not match the declared input
// format keeps its typed form and draws a validation_failed warning.
func (p *parser) typeValue(def *FieldDefinition, raw string, line int, schema string) Value {
	pattern := ""
	if def.Format != nil {
		pattern = def.Format.Input
	}

	mismatch := func() Value {
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindTypeMismatch,
			Message: raw + " is not a valid " + def.Type.String() + " value",
			Line:    line,
			Schema:  schema,
			Field:   def.Name,
		})
		return rawValue(raw)
	}
	formatWarn := func() {
		p.res.reportWarn(p.opt, Diagnostic{
			Kind:    KindValidationFailed,
			Message: raw + " does not match format " + pattern,
			Line:    line,
			Schema:  schema,
			Field:   def.Name,
		})
	}

	switch def.Type {
	case TypeText:
		// Pattern and case-transform semantics are advisory, left to the
		// consumer.
		return textValue(raw)

	case TypeNumber:
		n, ok := typefmt.Number(raw)
		if !ok {
			return mismatch()
		}
		if def.Format != nil && !typefmt.NumberCompatible(raw, pattern) {
			formatWarn()
		}
		return numberValue(raw, n)

	case TypeDate:
		if t, ok := typefmt.ParseDate(raw, pattern); ok {
			return dateValue(raw, t)
		}
		if t, ok := typefmt.Date(raw); ok {
			formatWarn()
			return dateValue(raw, t)
		}
		return mismatch()

	case TypeTime:
		if t, ok := typefmt.ParseTime(raw, pattern); ok {
			return timeValue(raw, t)
		}
		if t, ok := typefmt.Time(raw); ok {
			formatWarn()
			return timeValue(raw, t)
		}
		return mismatch()

	case TypeBoolean:
		b, ok := typefmt.Bool(raw)
		if !ok {
			return mismatch()
		}
		return boolValue(raw, b)
	}
	return textValue(raw)
}
