package mdd

import (
	"strconv"
	"strings"

	"github.com/mdd-lang/go-mdd/internal/attr"
	"github.com/mdd-lang/go-mdd/internal/scan"
)

// parseSchemaBlock consumes a datadef block's lines and registers the
// resulting Schema. Lines are classified independently; unrecognized lines
// inside the block are comments and never abort parsing.
func (p *parser) parseSchemaBlock(b scan.Block) {
	s := &Schema{Name: b.Name}
	for _, ln := range b.Lines {
		t := strings.TrimSpace(ln.Text)
		// Attribute columns are relative to the fragment after the marker;
		// offset by the marker's position in the raw line to report document
		// columns.
		indent := strings.Index(ln.Text, t)
		switch {
		case strings.HasPrefix(t, "!fname:"):
			p.parseFieldDecl(s, strings.TrimPrefix(t, "!fname:"), ln.Number, indent+len("!fname:"))
		case strings.HasPrefix(t, "!index:"):
			p.parseIndexDecl(s, strings.TrimPrefix(t, "!index:"), ln.Number)
		case strings.HasPrefix(t, "!fname"):
			p.res.reportErr(p.opt, Diagnostic{
				Kind:    KindMalformedFieldAttribute,
				Message: "field declaration missing colon after !fname",
				Line:    ln.Number,
				Column:  indent + 1,
				Schema:  s.Name,
			})
		}
	}
	p.res.Schemas[s.Name] = s
	p.res.touchSchema(s.Name)
}

// parseFieldDecl parses one !fname: declaration. The field name must come
// first, bare or as a name:/fname: pair; the remaining attributes may appear
// in any order and unknown keys are ignored. base is the byte offset of rest
// within the document line, used to place attribute diagnostics by column.
func (p *parser) parseFieldDecl(s *Schema, rest string, line, base int) {
	items, closed := attr.SplitList(rest)
	if !closed {
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindUnclosedLiteral,
			Message: "unclosed quote or bracket in field declaration",
			Line:    line,
			Schema:  s.Name,
		})
	}
	if len(items) == 0 {
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindMissingFieldAttribute,
			Message: "field declaration has no field name",
			Line:    line,
			Schema:  s.Name,
		})
		return
	}

	first := items[0]
	var name string
	switch first.Key {
	case "", "name", "fname":
		name = attr.Unquote(first.Value)
	default:
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindMissingFieldAttribute,
			Message: "field name must be the first attribute",
			Line:    line,
			Column:  base + first.Col,
			Schema:  s.Name,
		})
		return
	}
	if !scan.IsIdentifier(name) {
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindInvalidFieldName,
			Message: "field name " + name + " does not match identifier grammar",
			Line:    line,
			Column:  base + first.Col,
			Schema:  s.Name,
		})
		return
	}
	if s.Field(name) != nil {
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindDuplicateField,
			Message: "field " + name + " already declared; later declaration discarded",
			Line:    line,
			Column:  base + first.Col,
			Schema:  s.Name,
			Field:   name,
		})
		return
	}

	fd := FieldDefinition{Name: name, Type: TypeText}
	for _, it := range items[1:] {
		switch it.Key {
		case "type":
			fd.Type = FieldTypeOf(it.Value)
		case "label":
			fd.Label = attr.Unquote(it.Value)
		case "format":
			fd.Format = p.parseFormat(s.Name, name, it.Value, line, base+it.Col)
		case "valid":
			fd.Rules = p.parseRules(s.Name, name, it.Value, line, base+it.Col)
		case "required":
			if v, ok := boolToken(it.Value); ok {
				fd.Required = &v
			} else {
				p.res.reportErr(p.opt, Diagnostic{
					Kind:    KindMalformedFieldAttribute,
					Message: "required expects a boolean, got " + it.Value,
					Line:    line,
					Column:  base + it.Col,
					Schema:  s.Name,
					Field:   name,
				})
			}
		default:
			// Unknown attribute keys are ignored by policy.
		}
	}

	if fd.Required != nil && fd.Rules != nil && fd.Rules.Required != nil &&
		*fd.Required != *fd.Rules.Required {
		p.res.reportWarn(p.opt, Diagnostic{
			Kind:    KindMalformedValidationRule,
			Message: "required declared twice with conflicting values; field-level wins",
			Line:    line,
			Schema:  s.Name,
			Field:   name,
		})
	}
	s.Fields = append(s.Fields, fd)
}

// parseFormat distinguishes a plain format string from a dual literal.
// A malformed dual literal yields malformed_dual_format and no format.
func (p *parser) parseFormat(schema, field, v string, line, col int) *Format {
	if attr.IsDualCandidate(v) {
		in, out, ok := attr.ParseDual(v)
		if !ok {
			p.res.reportErr(p.opt, Diagnostic{
				Kind:    KindMalformedDualFormat,
				Message: "expected {\"input\",\"display\"} dual format literal",
				Line:    line,
				Column:  col,
				Schema:  schema,
				Field:   field,
			})
			return nil
		}
		return &Format{Input: in, Display: out, Dual: true}
	}
	f := attr.Unquote(v)
	return &Format{Input: f, Display: f}
}

// parseRules parses a valid: {...} literal into the fixed-shape rule record.
// Unknown rule keys are ignored, malformed values are flagged and skipped.
func (p *parser) parseRules(schema, field, v string, line, col int) *ValidationRules {
	pairs, ok := attr.ParseRules(v)
	if !ok && pairs == nil {
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindMalformedValidationRule,
			Message: "expected {key: value, ...} validation rule literal",
			Line:    line,
			Column:  col,
			Schema:  schema,
			Field:   field,
		})
		return nil
	}
	if !ok {
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindMalformedValidationRule,
			Message: "validation rule entry without a key",
			Line:    line,
			Column:  col,
			Schema:  schema,
			Field:   field,
		})
	}

	rules := &ValidationRules{}
	badValue := func(key, val string) {
		p.res.reportWarn(p.opt, Diagnostic{
			Kind:    KindMalformedValidationRule,
			Message: "invalid value for rule " + key + ": " + val,
			Line:    line,
			Column:  col,
			Schema:  schema,
			Field:   field,
		})
	}
	for _, pr := range pairs {
		switch pr.Key {
		case "required":
			if b, ok := boolToken(pr.Value); ok {
				rules.Required = &b
			} else {
				badValue(pr.Key, pr.Value)
			}
		case "min":
			if f, err := strconv.ParseFloat(pr.Value, 64); err == nil {
				rules.Min = &f
			} else {
				badValue(pr.Key, pr.Value)
			}
		case "max":
			if f, err := strconv.ParseFloat(pr.Value, 64); err == nil {
				rules.Max = &f
			} else {
				badValue(pr.Key, pr.Value)
			}
		case "pattern":
			rules.Pattern = attr.Unquote(pr.Value)
		case "email":
			if b, ok := boolToken(pr.Value); ok {
				rules.Email = b
			} else {
				badValue(pr.Key, pr.Value)
			}
		case "url":
			if b, ok := boolToken(pr.Value); ok {
				rules.URL = b
			} else {
				badValue(pr.Key, pr.Value)
			}
		case "options":
			if elems, ok := attr.ParseBracketList(pr.Value); ok {
				rules.Options = elems
			} else {
				badValue(pr.Key, pr.Value)
			}
		default:
			// Unknown rule keys are ignored by policy.
		}
	}
	return rules
}

// parseIndexDecl parses one !index: declaration. References to fields that
// are not yet declared are flagged but the index entry is kept.
func (p *parser) parseIndexDecl(s *Schema, rest string, line int) {
	names := attr.ParseIndex(rest)
	if len(names) == 0 {
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindInvalidIndexReference,
			Message: "index declaration has no field names",
			Line:    line,
			Schema:  s.Name,
		})
		return
	}
	for _, n := range names {
		if s.Field(n) == nil {
			p.res.reportErr(p.opt, Diagnostic{
				Kind:    KindInvalidIndexReference,
				Message: "index references undeclared field " + n,
				Line:    line,
				Schema:  s.Name,
				Field:   n,
			})
		}
	}
	s.Indexes = append(s.Indexes, Index{Fields: names, Line: line})
}

// boolToken accepts the declaration-level boolean spellings.
func boolToken(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}
