package mdd

// Schema is a named collection of field and index definitions describing the
// shape of a data block. Schemas are immutable once their datadef block closes.
type Schema struct {
	Name string `json:"name"`
	// Fields in declaration order; names are unique within the schema.
	Fields []FieldDefinition `json:"fields"`
	// Indexes in declaration order. Entries flagged with
	// invalid_index_reference are kept here regardless.
	Indexes []Index `json:"indexes,omitempty"`
	// SourcePath is set when the schema was resolved from an external
	// reference rather than defined inline.
	SourcePath string `json:"sourcePath,omitempty"`
}

// Field returns the definition with the given name, or nil.
func (s *Schema) Field(name string) *FieldDefinition {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// RequiredFields returns the names of fields that are effectively required,
// in declaration order.
func (s *Schema) RequiredFields() []string {
	var out []string
	for i := range s.Fields {
		if s.Fields[i].IsRequired() {
			out = append(out, s.Fields[i].Name)
		}
	}
	return out
}

// FieldDefinition describes one named, typed column/attribute of a schema.
type FieldDefinition struct {
	Name  string    `json:"name"`
	Type  FieldType `json:"type"`
	Label string    `json:"label,omitempty"`
	// Format is nil when the declaration carried none.
	Format *Format `json:"format,omitempty"`
	// Rules is nil when the declaration carried no valid: attribute.
	Rules *ValidationRules `json:"rules,omitempty"`
	// Required reflects the field-level required: attribute; nil when the
	// attribute was absent. See IsRequired for the effective value.
	Required *bool `json:"required,omitempty"`
}

// IsRequired reports whether the field is effectively required. The
// field-level flag is authoritative; the rules-level flag applies only when
// the field-level one was not declared.
func (f *FieldDefinition) IsRequired() bool {
	if f.Required != nil {
		return *f.Required
	}
	if f.Rules != nil && f.Rules.Required != nil {
		return *f.Rules.Required
	}
	return false
}

// Format carries the format specification of a field. A single-format
// declaration sets Input and Display to the same string with Dual false; a
// dual literal {"in","out"} sets them independently. Input parsing always
// consults Input, never Display.
type Format struct {
	Input   string `json:"input"`
	Display string `json:"display"`
	Dual    bool   `json:"dual,omitempty"`
}

// ValidationRules is the fixed-shape record parsed from a valid: {...}
// attribute. The core parses these structurally; semantic enforcement of
// min/max/pattern/email/url/options is left to the caller.
type ValidationRules struct {
	Required *bool    `json:"required,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
	Email    bool     `json:"email,omitempty"`
	URL      bool     `json:"url,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// Index is one composite index declaration: an ordered, non-empty list of
// field names.
type Index struct {
	Fields []string `json:"fields"`
	Line   int      `json:"-"`
}
