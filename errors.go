package mdd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mdd-lang/go-mdd/internal/diag"
)

// Diagnostic kinds (exported consts for IDE completion and type safety by
// convention). The set is closed; tags are stable across releases.
const (
	KindSyntaxError             = diag.SyntaxError
	KindSchemaNotFound          = diag.SchemaNotFound
	KindInvalidFieldName        = diag.InvalidFieldName
	KindTypeMismatch            = diag.TypeMismatch
	KindValidationFailed        = diag.ValidationFailed
	KindExternalReferenceFailed = diag.ExternalReferenceFailed
	KindBlockNotClosed          = diag.BlockNotClosed
	KindInvalidBlockType        = diag.InvalidBlockType
	KindDuplicateField          = diag.DuplicateField
	KindMissingRequiredField    = diag.MissingRequiredField
	KindMissingBlockStart       = diag.MissingBlockStart
	KindInvalidBlockSyntax      = diag.InvalidBlockSyntax
	KindNestedBlocks            = diag.NestedBlocks
	KindEmptyBlock              = diag.EmptyBlock
	KindInvalidSchemaName       = diag.InvalidSchemaName
	KindMissingFieldAttribute   = diag.MissingFieldAttribute
	KindInvalidDataType         = diag.InvalidDataType
	KindMalformedFieldAttribute = diag.MalformedFieldAttribute
	KindInvalidIndexReference   = diag.InvalidIndexReference
	KindMixedDataFormat         = diag.MixedDataFormat
	KindInvalidTableSyntax      = diag.InvalidTableSyntax
	KindInvalidFreeformSyntax   = diag.InvalidFreeformSyntax
	KindUnclosedLiteral         = diag.UnclosedLiteral
	KindInvalidCharacter        = diag.InvalidCharacter
	KindMalformedDualFormat     = diag.MalformedDualFormat
	KindMalformedValidationRule = diag.MalformedValidationRule
	KindMalformedExternalRef    = diag.MalformedExternalRef
)

// Diagnostic represents a single parser finding. It is data, never control
// flow: the parser accumulates diagnostics and keeps going.
type Diagnostic struct {
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"`   // 1-based; 0 when unknown
	Column   int      `json:"column,omitempty"` // 1-based; 0 when unknown
	Schema   string   `json:"schema,omitempty"` // schema name, when attributable
	Field    string   `json:"field,omitempty"`  // field name, when attributable
	Severity Severity `json:"-"`
}

// Diagnostics is a collection of findings that implements error.
type Diagnostics []Diagnostic

// Error summarizes the first few diagnostics.
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ds)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		d := ds[i]
		if d.Line > 0 {
			fmt.Fprintf(b, "%s at line %d", d.Kind, d.Line)
		} else {
			b.WriteString(d.Kind)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendDiagnostics appends diagnostics to the destination, initializing the
// slice when needed.
func AppendDiagnostics(dst Diagnostics, more ...Diagnostic) Diagnostics {
	if dst == nil {
		dst = Diagnostics{}
	}
	dst = append(dst, more...)
	return dst
}

// AsDiagnostics extracts Diagnostics from an error using errors.As internally.
func AsDiagnostics(err error) (Diagnostics, bool) {
	if err == nil {
		return nil, false
	}
	var ds Diagnostics
	if errors.As(err, &ds) {
		return ds, true
	}
	return nil, false
}

// fromNote converts an internal-stage note into a public Diagnostic.
func fromNote(n diag.Note) Diagnostic {
	sev := SeverityError
	if n.Warn {
		sev = SeverityWarning
	}
	return Diagnostic{
		Kind:     n.Kind,
		Message:  n.Message,
		Line:     n.Line,
		Severity: sev,
	}
}
