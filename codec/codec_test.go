package codec_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	mdd "github.com/mdd-lang/go-mdd"
	"github.com/mdd-lang/go-mdd/codec"
)

const doc = `Intro prose.

!? datadef people
!fname: id, type: number, required: true
!fname: name, type: text, label: "Full Name"
!index: id
!#

!? data people
| !id | !name |
| --- | --- |
| 1 | alice |
| 2 | bob |
!#
`

func parseDoc(t *testing.T) *mdd.ParseResult {
	t.Helper()
	res := mdd.Parse(context.Background(), doc)
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	return res
}

func TestResultJSON_OrderAndShape(t *testing.T) {
	out, err := codec.ResultJSON(parseDoc(t))
	if err != nil {
		t.Fatalf("ResultJSON: %v", err)
	}
	s := string(out)
	// Entry fields keep source order and typed emission.
	if !strings.Contains(s, `"id": 1`) || !strings.Contains(s, `"name": "alice"`) {
		t.Fatalf("typed ordered fields missing:\n%s", s)
	}
	if !strings.Contains(s, `"type": "number"`) {
		t.Fatalf("field type should emit its keyword:\n%s", s)
	}
	if strings.Index(s, `"schemas"`) > strings.Index(s, `"data"`) {
		t.Fatalf("schemas should precede data:\n%s", s)
	}
}

func TestResultJSON_Deterministic(t *testing.T) {
	a, err := codec.ResultJSON(parseDoc(t))
	if err != nil {
		t.Fatalf("ResultJSON: %v", err)
	}
	b, err := codec.ResultJSON(parseDoc(t))
	if err != nil {
		t.Fatalf("ResultJSON: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("same document must serialize byte-identically")
	}
}

func TestResultYAML(t *testing.T) {
	out, err := codec.ResultYAML(parseDoc(t))
	if err != nil {
		t.Fatalf("ResultYAML: %v", err)
	}
	s := string(out)
	for _, want := range []string{"schemas:", "name: people", "data:", "id: 1", "name: alice", "recordIndex: 0"} {
		if !strings.Contains(s, want) {
			t.Fatalf("missing %q in:\n%s", want, s)
		}
	}
	// Field member order is source order.
	if strings.Index(s, "id: 1") > strings.Index(s, "name: alice") {
		t.Fatalf("entry field order lost:\n%s", s)
	}
}

func TestSchemaJSON(t *testing.T) {
	res := parseDoc(t)
	out, err := codec.SchemaJSON(res.Schemas["people"])
	if err != nil {
		t.Fatalf("SchemaJSON: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `"name": "people"`) || !strings.Contains(s, `"label": "Full Name"`) {
		t.Fatalf("unexpected schema JSON:\n%s", s)
	}
}
