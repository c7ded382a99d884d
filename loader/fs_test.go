package loader_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	mdd "github.com/mdd-lang/go-mdd"
	"github.com/mdd-lang/go-mdd/loader"
)

func TestFS_LoadsReferencedSchema(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/team.md": &fstest.MapFile{Data: []byte(strings.Join([]string{
			"External schema document.",
			"!? datadef team",
			"!fname: member, type: text, required: true",
			"!#",
		}, "\n"))},
	}
	doc := "!? data [team](./schemas/team.md)\n!member alice\n!#\n"
	res := mdd.Parse(context.Background(), doc, mdd.ParseOpt{Loader: loader.FS(fsys, nil)})
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	s := res.Schemas["team"]
	if s == nil || s.SourcePath != "schemas/team.md" {
		t.Fatalf("schema not registered from file: %+v", s)
	}
	if len(res.Entries("team")) != 1 {
		t.Fatalf("expected 1 entry")
	}
}

func TestFS_MissingFile(t *testing.T) {
	res := mdd.Parse(context.Background(),
		"!? data [team](missing.md)\n!member alice\n!#\n",
		mdd.ParseOpt{Loader: loader.FS(fstest.MapFS{}, nil)})
	if len(res.Errors) != 1 || res.Errors[0].Kind != mdd.KindExternalReferenceFailed {
		t.Fatalf("expected external_reference_failed, got %v", res.Errors)
	}
	if len(res.Entries("team")) != 1 {
		t.Fatalf("entries must be preserved when the file is missing")
	}
}

func TestFS_DocumentWithoutSchema(t *testing.T) {
	fsys := fstest.MapFS{
		"empty.md": &fstest.MapFile{Data: []byte("just prose\n")},
	}
	res := mdd.Parse(context.Background(),
		"!? data [team](empty.md)\n!member alice\n!#\n",
		mdd.ParseOpt{Loader: loader.FS(fsys, nil)})
	if len(res.Errors) != 1 || res.Errors[0].Kind != mdd.KindExternalReferenceFailed {
		t.Fatalf("expected external_reference_failed, got %v", res.Errors)
	}
}

func TestFS_MutualReferences(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md": &fstest.MapFile{Data: []byte(strings.Join([]string{
			"!? datadef a",
			"!fname: v, type: text",
			"!#",
			"!? data [b](b.md)",
			"!v from-a",
			"!#",
		}, "\n"))},
		"b.md": &fstest.MapFile{Data: []byte(strings.Join([]string{
			"!? datadef b",
			"!fname: v, type: text",
			"!#",
			"!? data [a](a.md)",
			"!v from-b",
			"!#",
		}, "\n"))},
	}
	cache := mdd.NewCache()
	res := mdd.Parse(context.Background(),
		"!? data [a](a.md)\n!v top\n!#\n",
		mdd.ParseOpt{Loader: loader.FS(fsys, cache), Cache: cache})
	if res.HasErrors() {
		t.Fatalf("mutually referencing documents must still parse: %v", res.Errors)
	}
	if res.Schemas["a"] == nil {
		t.Fatalf("schema a not resolved")
	}
	if len(res.Entries("a")) != 1 {
		t.Fatalf("expected 1 entry")
	}
	// b.md was resolved during a.md's nested parse through the shared cache.
	if _, ok := cache.Get("b.md"); !ok {
		t.Fatalf("nested loads must land in the shared cache")
	}
}

func TestFS_SelfReferenceFailsToLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md": &fstest.MapFile{Data: []byte("!? data [a](a.md)\n!v 1\n!#\n")},
	}
	res := mdd.Parse(context.Background(),
		"!? data [a](a.md)\n!v top\n!#\n",
		mdd.ParseOpt{Loader: loader.FS(fsys, nil)})
	if len(res.Errors) != 1 || res.Errors[0].Kind != mdd.KindExternalReferenceFailed {
		t.Fatalf("expected external_reference_failed, got %v", res.Errors)
	}
	if len(res.Entries("a")) != 1 {
		t.Fatalf("entries must be preserved on a cyclic reference")
	}
}
