package i18n

import "testing"

func TestMessage_Defaults(t *testing.T) {
	SetLanguage("en")
	if got := T("schema_not_found", nil); got != "schema not found" {
		t.Fatalf("got %q", got)
	}
	// Unknown kinds fall back to the tag itself.
	if got := T("no_such_kind", nil); got != "no_such_kind" {
		t.Fatalf("got %q", got)
	}
}

func TestMessage_Japanese(t *testing.T) {
	SetLanguage("ja")
	defer SetLanguage("en")
	if got := T("type_mismatch", nil); got == "type_mismatch" || got == "type mismatch" {
		t.Fatalf("expected a translated message, got %q", got)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(kind string, _ map[string]string) string { return "K:" + kind }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upperTranslator{})
	defer SetTranslator(nil)
	if got := T("empty_block", nil); got != "K:empty_block" {
		t.Fatalf("got %q", got)
	}
}
