// Package diag holds the canonical diagnostic kind tags and the lightweight
// note record used by the internal parsing stages. The root package re-exports
// the tags and converts notes into public Diagnostic values.
package diag

// Kind tags. The set is closed; each tag is stable and appears verbatim in
// serialized output.
const (
	SyntaxError             = "syntax_error"
	SchemaNotFound          = "schema_not_found"
	InvalidFieldName        = "invalid_field_name"
	TypeMismatch            = "type_mismatch"
	ValidationFailed        = "validation_failed"
	ExternalReferenceFailed = "external_reference_failed"
	BlockNotClosed          = "block_not_closed"
	InvalidBlockType        = "invalid_block_type"
	DuplicateField          = "duplicate_field"
	MissingRequiredField    = "missing_required_field"
	MissingBlockStart       = "missing_block_start"
	InvalidBlockSyntax      = "invalid_block_syntax"
	NestedBlocks            = "nested_blocks"
	EmptyBlock              = "empty_block"
	InvalidSchemaName       = "invalid_schema_name"
	MissingFieldAttribute   = "missing_field_attribute"
	InvalidDataType         = "invalid_data_type"
	MalformedFieldAttribute = "malformed_field_attribute"
	InvalidIndexReference   = "invalid_index_reference"
	MixedDataFormat         = "mixed_data_format"
	InvalidTableSyntax      = "invalid_table_syntax"
	InvalidFreeformSyntax   = "invalid_freeform_syntax"
	UnclosedLiteral         = "unclosed_literal"
	InvalidCharacter        = "invalid_character"
	MalformedDualFormat     = "malformed_dual_format"
	MalformedValidationRule = "malformed_validation_rules"
	MalformedExternalRef    = "malformed_external_reference"
)

// Note is a line-tagged finding produced by the scanner. Warn marks warning
// severity; everything else is an error.
type Note struct {
	Kind    string
	Message string
	Line    int // 1-based; 0 when unknown
	Warn    bool
}
