// Package codec serializes parse results and schemas for external consumers.
// The in-memory ordered containers are emitted as explicit ordered structures
// (arrays of schemas, arrays of entries, objects with source-ordered members)
// so no serializer has to guess at map semantics.
package codec

import (
	json "github.com/goccy/go-json"

	mdd "github.com/mdd-lang/go-mdd"
)

// document is the export shape of a ParseResult. Schemas and data groups
// appear in first-appearance document order.
type document struct {
	Schemas  []*mdd.Schema   `json:"schemas"`
	Data     []dataGroup     `json:"data"`
	Errors   mdd.Diagnostics `json:"errors"`
	Warnings mdd.Diagnostics `json:"warnings"`
}

type dataGroup struct {
	Schema  string      `json:"schema"`
	Entries []mdd.Entry `json:"entries"`
}

func buildDocument(r *mdd.ParseResult) document {
	doc := document{
		Schemas:  []*mdd.Schema{},
		Data:     []dataGroup{},
		Errors:   r.Errors,
		Warnings: r.Warnings,
	}
	for _, name := range r.SchemaOrder {
		if s, ok := r.Schemas[name]; ok {
			doc.Schemas = append(doc.Schemas, s)
		}
		if es, ok := r.Data[name]; ok {
			doc.Data = append(doc.Data, dataGroup{Schema: name, Entries: es})
		}
	}
	return doc
}

// ResultJSON renders a ParseResult as indented JSON with deterministic,
// source-preserving order.
func ResultJSON(r *mdd.ParseResult) ([]byte, error) {
	return json.MarshalIndent(buildDocument(r), "", "  ")
}

// SchemaJSON renders one schema as indented JSON.
func SchemaJSON(s *mdd.Schema) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
