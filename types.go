package mdd

// Severity expresses the severity level for diagnostics.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// FieldType enumerates the value types a field declaration may carry.
type FieldType int

const (
	TypeText FieldType = iota
	TypeNumber
	TypeDate
	TypeTime
	TypeBoolean
)

// String returns the type keyword as written in a declaration.
func (t FieldType) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeDate:
		return "date"
	case TypeTime:
		return "time"
	case TypeBoolean:
		return "boolean"
	default:
		return "text"
	}
}

// MarshalJSON emits the type keyword rather than the enum ordinal.
func (t FieldType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// FieldTypeOf maps a declaration token to a FieldType. Unrecognized tokens
// fall back to text; the grammar treats that as lenient, not as an error.
func FieldTypeOf(tok string) FieldType {
	switch tok {
	case "number":
		return TypeNumber
	case "date":
		return TypeDate
	case "time":
		return TypeTime
	case "boolean", "bool":
		return TypeBoolean
	default:
		return TypeText
	}
}

// Layout identifies the physical layout of a data block.
type Layout int

const (
	LayoutUnknown Layout = iota
	LayoutTabular
	LayoutFreeform
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutTabular:
		return "tabular"
	case LayoutFreeform:
		return "freeform"
	default:
		return "unknown"
	}
}

// ParseOpt bundles parsing options. When several are passed the last one wins,
// matching the entry-point convention of the rest of the API.
type ParseOpt struct {
	// Loader resolves external schema references on cache miss. Nil means
	// every external reference fails with external_reference_failed.
	Loader Loader
	// Cache holds externally loaded schemas for this run. A nil Cache gets a
	// fresh one; supply your own to share loads across documents.
	Cache *Cache
	// SourceName is attached to entries as their source file label.
	SourceName string
	// MaxErrors caps the number of error-severity diagnostics collected;
	// 0 means unlimited. Warnings are never capped.
	MaxErrors int
	// FailFast stops appending error-severity diagnostics after the first
	// one. Parsing still runs to completion, so the result carries that
	// single error alongside the structured content and any warnings.
	FailFast bool
}
