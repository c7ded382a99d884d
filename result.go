package mdd

// ParseResult is the complete outcome of one parse run: best-effort structured
// content plus every diagnostic collected along the way. Even a badly
// malformed document yields a usable ParseResult; the diagnostics are the sole
// channel for understanding what was skipped or defaulted.
//
// Invariant: every Entry in Data[k] has SchemaName == k. Schemas and Data
// keys need not coincide: a schema may have zero entries, and entries may
// reference a schema that failed to resolve (they are surfaced anyway, with
// an attached error).
type ParseResult struct {
	Schemas map[string]*Schema `json:"-"`
	Data    map[string][]Entry `json:"-"`
	// SchemaOrder records first-appearance document order of schema names
	// (definitions and references alike) for deterministic export.
	SchemaOrder []string    `json:"-"`
	Errors      Diagnostics `json:"errors"`
	Warnings    Diagnostics `json:"warnings"`
}

func newParseResult() *ParseResult {
	return &ParseResult{
		Schemas:  map[string]*Schema{},
		Data:     map[string][]Entry{},
		Errors:   Diagnostics{},
		Warnings: Diagnostics{},
	}
}

// HasErrors reports whether any error-severity diagnostic was collected.
func (r *ParseResult) HasErrors() bool { return len(r.Errors) > 0 }

// Entries returns the entries for a schema name in document order.
func (r *ParseResult) Entries(schema string) []Entry { return r.Data[schema] }

// touchSchema records first appearance of a schema name.
func (r *ParseResult) touchSchema(name string) {
	for _, n := range r.SchemaOrder {
		if n == name {
			return
		}
	}
	r.SchemaOrder = append(r.SchemaOrder, name)
}

// report files a diagnostic under the matching severity list. Errors honor
// the MaxErrors cap, and under FailFast only the first error is kept;
// warnings are never suppressed.
func (r *ParseResult) report(opt ParseOpt, d Diagnostic) {
	if d.Severity == SeverityWarning {
		r.Warnings = AppendDiagnostics(r.Warnings, d)
		return
	}
	if opt.FailFast && len(r.Errors) > 0 {
		return
	}
	if opt.MaxErrors > 0 && len(r.Errors) >= opt.MaxErrors {
		return
	}
	r.Errors = AppendDiagnostics(r.Errors, d)
}

func (r *ParseResult) reportErr(opt ParseOpt, d Diagnostic) {
	d.Severity = SeverityError
	r.report(opt, d)
}

func (r *ParseResult) reportWarn(opt ParseOpt, d Diagnostic) {
	d.Severity = SeverityWarning
	r.report(opt, d)
}
