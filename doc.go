package mdd

// Package mdd parses the Markdown Data Extension: documents that embed named
// record schemas (datadef blocks) and data entries (data blocks, tabular or
// free-form) inside ordinary prose.
//
// It provides:
//
// - A resilient line-oriented parser (Parse) that never aborts on malformed
//   input and returns partial results plus typed diagnostics
// - A stable diagnostic model via Diagnostics (kind tag, message, position)
// - Schema resolution for external references through an injected Loader,
//   cached per parse run
// - Order-preserving result structures suitable for deterministic export
//
// Design policy:
// - Keep only public APIs in the root package; put the scanner and the
//   attribute/type micro-grammars under internal/.
// - Place export adapters under codec/ and jsonschema/, the message catalog
//   under i18n/, the filesystem collaborator under loader/, and the CLI under
//   cmd/mdd.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	res := mdd.Parse(ctx, text)
//	if res.HasErrors() { ... inspect res.Errors ... }
//	for _, name := range res.SchemaOrder { ... res.Schemas[name] ... }
