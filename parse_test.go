package mdd_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	mdd "github.com/mdd-lang/go-mdd"
)

func parse(t *testing.T, text string, opts ...mdd.ParseOpt) *mdd.ParseResult {
	t.Helper()
	return mdd.Parse(context.Background(), text, opts...)
}

func countKind(ds mdd.Diagnostics, kind string) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func TestParse_WellFormedSchemas(t *testing.T) {
	doc := strings.Join([]string{
		"# Employees",
		"",
		"!? datadef employees",
		"!fname: id, type: number, required: true",
		"!fname: name, type: text, label: \"Full Name\"",
		"!fname: hired, type: date, format: YYYY-MM-DD",
		"!index: id",
		"!index: name+hired",
		"!#",
		"",
		"!? datadef rooms",
		"!fname: number, type: number",
		"!#",
	}, "\n")
	res := parse(t, doc)

	if len(res.Schemas) != 2 {
		t.Fatalf("expected 2 schemas, got %d", len(res.Schemas))
	}
	if countKind(res.Errors, mdd.KindInvalidSchemaName) != 0 ||
		countKind(res.Errors, mdd.KindMalformedFieldAttribute) != 0 {
		t.Fatalf("well-formed document produced diagnostics: %v", res.Errors)
	}
	s := res.Schemas["employees"]
	if len(s.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(s.Fields))
	}
	if s.Fields[0].Type != mdd.TypeNumber || !s.Fields[0].IsRequired() {
		t.Fatalf("id field mismatch: %+v", s.Fields[0])
	}
	if s.Fields[1].Label != "Full Name" {
		t.Fatalf("label mismatch: %q", s.Fields[1].Label)
	}
	if f := s.Fields[2].Format; f == nil || f.Input != "YYYY-MM-DD" || f.Dual {
		t.Fatalf("single format mismatch: %+v", f)
	}
	if len(s.Indexes) != 2 || !reflect.DeepEqual(s.Indexes[1].Fields, []string{"name", "hired"}) {
		t.Fatalf("indexes mismatch: %+v", s.Indexes)
	}
	if !reflect.DeepEqual(res.SchemaOrder, []string{"employees", "rooms"}) {
		t.Fatalf("schema order mismatch: %v", res.SchemaOrder)
	}
}

func TestParse_DualFormat(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef t",
		`!fname: when, type: date, format: {"DD/MM/YYYY","MMM D, YYYY"}`,
		"!#",
	}, "\n"))
	f := res.Schemas["t"].Fields[0].Format
	if f == nil || !f.Dual || f.Input != "DD/MM/YYYY" || f.Display != "MMM D, YYYY" {
		t.Fatalf("dual format mismatch: %+v", f)
	}

	res = parse(t, strings.Join([]string{
		"!? datadef t",
		`!fname: when, type: date, format: {"DD/MM/YYYY"}`,
		"!#",
	}, "\n"))
	if countKind(res.Errors, mdd.KindMalformedDualFormat) != 1 {
		t.Fatalf("expected one malformed_dual_format, got %v", res.Errors)
	}
	if res.Schemas["t"].Fields[0].Format != nil {
		t.Fatalf("no format should be attached after a malformed dual literal")
	}
}

func TestParse_TabularRoundTrip(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef nums",
		"!fname: id, type: number, required: true",
		"!#",
		"!? data nums",
		"| !id |",
		"| --- |",
		"| 7 |",
		"!#",
	}, "\n"))
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	es := res.Entries("nums")
	if len(es) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(es))
	}
	v, ok := es[0].Fields.Get("id")
	if !ok || v.Kind != mdd.ValueNumber || v.Raw != "7" || v.Number() != 7 {
		t.Fatalf("value mismatch: %+v", v)
	}
	if es[0].RecordIndex != 0 {
		t.Fatalf("record index mismatch: %d", es[0].RecordIndex)
	}
}

func TestParse_MissingRequiredInHeader(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef people",
		"!fname: id, type: number, required: true",
		"!fname: email, type: text, valid: {required: true, email: true}",
		"!fname: note, type: text",
		"!#",
		"!? data people",
		"| !note |",
		"| hi |",
		"| there |",
		"!#",
	}, "\n"))
	// Exactly one diagnostic per missing required field, not one per row.
	if got := countKind(res.Errors, mdd.KindMissingRequiredField); got != 2 {
		t.Fatalf("expected 2 missing_required_field, got %d: %v", got, res.Errors)
	}
	if len(res.Entries("people")) != 2 {
		t.Fatalf("entries for present fields should still be produced")
	}
}

func TestParse_ForwardReference(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? data employees",
		"!id 1",
		"!-",
		"!id 2",
		"!#",
		"!? datadef employees",
		"!fname: id, type: number, required: true",
		"!#",
	}, "\n"))
	if got := countKind(res.Errors, mdd.KindSchemaNotFound); got != 0 {
		t.Fatalf("forward reference should resolve, got %d schema_not_found", got)
	}
	es := res.Entries("employees")
	if len(es) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(es))
	}
	if v, _ := es[1].Fields.Get("id"); v.Kind != mdd.ValueNumber || v.Number() != 2 {
		t.Fatalf("typed value mismatch: %+v", v)
	}
}

func TestParse_NestedBlocks(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef a",
		"!fname: id, type: number",
		"!? datadef b",
		"!#",
	}, "\n"))
	if countKind(res.Errors, mdd.KindNestedBlocks) != 1 {
		t.Fatalf("expected nested_blocks, got %v", res.Errors)
	}
	if res.Schemas["a"] == nil || len(res.Schemas["a"].Fields) != 1 {
		t.Fatalf("schema a should still be produced: %+v", res.Schemas["a"])
	}
}

func TestParse_MixedLayout(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef people",
		"!fname: name, type: text",
		"!#",
		"!? data people",
		"| !name |",
		"| alice |",
		"!name bob",
		"| carol |",
		"!#",
	}, "\n"))
	if got := countKind(res.Errors, mdd.KindMixedDataFormat); got != 1 {
		t.Fatalf("expected exactly one mixed_data_format, got %d: %v", got, res.Errors)
	}
	es := res.Entries("people")
	if len(es) != 2 {
		t.Fatalf("rows before and after the offending line should survive, got %d", len(es))
	}
	if v, _ := es[0].Fields.Get("name"); v.Raw != "alice" {
		t.Fatalf("first entry mismatch: %+v", es[0])
	}
	if v, _ := es[1].Fields.Get("name"); v.Raw != "carol" {
		t.Fatalf("second entry mismatch: %+v", es[1])
	}
}

func TestParse_Idempotent(t *testing.T) {
	doc := strings.Join([]string{
		"!? datadef t",
		"!fname: id, type: number, required: true",
		"!fname: ok, type: boolean",
		"!#",
		"!? data t",
		"| !id | !ok | !bogus |",
		"| 1 | yes | x |",
		"| oops | no | y |",
		"!#",
	}, "\n")
	a := parse(t, doc)
	b := parse(t, doc)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("re-parsing the same document should be byte-identical")
	}
}

func TestParse_TypeAndFormatChecks(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef m",
		"!fname: price, type: number, format: \"$#,##0.00\"",
		"!fname: active, type: boolean",
		"!#",
		"!? data m",
		"!price $12.345",
		"!active maybe",
		"!#",
	}, "\n"))
	if countKind(res.Errors, mdd.KindTypeMismatch) != 1 {
		t.Fatalf("expected one type_mismatch for the boolean, got %v", res.Errors)
	}
	if countKind(res.Warnings, mdd.KindValidationFailed) != 1 {
		t.Fatalf("expected one format warning for the price, got %v", res.Warnings)
	}
	es := res.Entries("m")
	if len(es) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(es))
	}
	if v, _ := es[0].Fields.Get("price"); v.Kind != mdd.ValueNumber {
		t.Fatalf("structurally valid price should stay typed: %+v", v)
	}
	if v, _ := es[0].Fields.Get("active"); v.Kind != mdd.ValueRaw || v.Raw != "maybe" {
		t.Fatalf("mismatched boolean should stay raw: %+v", v)
	}
}

func TestParse_FreeformEntries(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef c",
		"!fname: name, type: text, required: true",
		"!fname: city, type: text",
		"!#",
		"!? data c",
		"!name alice",
		"!city berlin",
		"!-",
		"!city paris",
		"!-",
		"!#",
	}, "\n"))
	es := res.Entries("c")
	if len(es) != 2 {
		t.Fatalf("expected 2 entries (trailing separator opens nothing), got %d", len(es))
	}
	if !reflect.DeepEqual(es[0].Fields.Names(), []string{"name", "city"}) {
		t.Fatalf("field order should be source order: %v", es[0].Fields.Names())
	}
	// The second entry is missing its required name.
	if countKind(res.Errors, mdd.KindMissingRequiredField) != 1 {
		t.Fatalf("expected one missing_required_field, got %v", res.Errors)
	}
}

func TestParse_InvalidBlockType(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef t",
		"!fname: id, type: number",
		"!#",
		"!? data t",
		"|broken",
		"| !id |",
		"| 1 |",
		"!#",
	}, "\n"))
	if countKind(res.Errors, mdd.KindInvalidBlockType) != 1 {
		t.Fatalf("expected invalid_block_type, got %v", res.Errors)
	}
	if len(res.Entries("t")) != 0 {
		t.Fatalf("an invalid block produces zero entries")
	}
}

func TestParse_DuplicateFieldAndIndexRef(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef t",
		"!fname: id, type: number",
		"!fname: id, type: text",
		"!index: id+ghost",
		"!#",
	}, "\n"))
	if countKind(res.Errors, mdd.KindDuplicateField) != 1 {
		t.Fatalf("expected duplicate_field, got %v", res.Errors)
	}
	s := res.Schemas["t"]
	if len(s.Fields) != 1 || s.Fields[0].Type != mdd.TypeNumber {
		t.Fatalf("later duplicate declaration should be discarded: %+v", s.Fields)
	}
	if countKind(res.Errors, mdd.KindInvalidIndexReference) != 1 {
		t.Fatalf("expected invalid_index_reference, got %v", res.Errors)
	}
	if len(s.Indexes) != 1 || !reflect.DeepEqual(s.Indexes[0].Fields, []string{"id", "ghost"}) {
		t.Fatalf("flagged index should still be kept: %+v", s.Indexes)
	}
}

func TestParse_RequiredConflictWarning(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef t",
		"!fname: id, type: number, required: false, valid: {required: true}",
		"!#",
	}, "\n"))
	if len(res.Warnings) == 0 {
		t.Fatalf("conflicting required declarations should warn")
	}
	if res.Schemas["t"].Fields[0].IsRequired() {
		t.Fatalf("field-level required is authoritative")
	}
}

func TestParse_UnknownAttributesIgnored(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef t",
		"!fname: id, type: number, color: blue, valid: {required: true, fuzz: 3}",
		"!#",
	}, "\n"))
	if res.HasErrors() {
		t.Fatalf("unknown attribute keys are forward-compatible: %v", res.Errors)
	}
	if !res.Schemas["t"].Fields[0].IsRequired() {
		t.Fatalf("known rules should still apply")
	}
}

func TestParse_UnknownTypeDefaultsToText(t *testing.T) {
	res := parse(t, "!? datadef t\n!fname: id, type: uuid\n!#\n")
	if res.HasErrors() {
		t.Fatalf("unrecognized type token is lenient, got %v", res.Errors)
	}
	if res.Schemas["t"].Fields[0].Type != mdd.TypeText {
		t.Fatalf("unrecognized type should default to text")
	}
}

func TestParse_MaxErrors(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef t",
		"!fname: a, type: number",
		"!#",
		"!? data t",
		"| !a |",
		"| x |",
		"| y |",
		"| z |",
		"!#",
	}, "\n"), mdd.ParseOpt{MaxErrors: 2})
	if len(res.Errors) != 2 {
		t.Fatalf("expected MaxErrors to cap at 2, got %d", len(res.Errors))
	}
}

func TestParse_FailFast(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef t",
		"!fname: a, type: number",
		"!#",
		"!? data t",
		"| !a |",
		"| x |",
		"| y |",
		"| z |",
		"!#",
	}, "\n"), mdd.ParseOpt{FailFast: true})
	if len(res.Errors) != 1 || res.Errors[0].Kind != mdd.KindTypeMismatch {
		t.Fatalf("expected a single error, got %v", res.Errors)
	}
	// Collection stops; parsing does not. The schema and all rows are still
	// in the result.
	if res.Schemas["t"] == nil || len(res.Entries("t")) != 3 {
		t.Fatalf("fail-fast must still return the full result")
	}
}

func TestParse_DiagnosticColumns(t *testing.T) {
	res := parse(t, strings.Join([]string{
		"!? datadef t",
		"!fname: id, type: number, required: maybe",
		"!#",
	}, "\n"))
	if len(res.Errors) != 1 || res.Errors[0].Kind != mdd.KindMalformedFieldAttribute {
		t.Fatalf("expected malformed_field_attribute, got %v", res.Errors)
	}
	// The column points at the offending attribute, not the line start.
	if got := res.Errors[0].Column; got != 27 {
		t.Fatalf("expected column 27, got %d", got)
	}
	if res.Errors[0].Line != 2 {
		t.Fatalf("expected line 2, got %d", res.Errors[0].Line)
	}
}
