package mdd

// Entry is one parsed record from a data block. SchemaName is a reference,
// not ownership: it is resolved against the schema collection at validation
// time, which is what permits forward references within one document.
type Entry struct {
	SchemaName string `json:"schema"`
	Fields     Fields `json:"fields"`
	// Line is the 1-based line the entry starts on.
	Line int `json:"line,omitempty"`
	// SourceFile is set when the entry originated from a named source.
	SourceFile string `json:"sourceFile,omitempty"`
	// RecordIndex is the entry's 0-based position within its data block.
	RecordIndex int `json:"recordIndex"`
}
