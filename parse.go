package mdd

import (
	"context"

	"github.com/mdd-lang/go-mdd/internal/scan"
)

// parser carries the accumulating state of one parse run.
type parser struct {
	opt ParseOpt
	res *ParseResult
}

// Parse is the primary entry point. It scans the document into blocks, parses
// schemas and data entries, resolves schema references (external ones through
// the injected Loader), cross-validates entries against resolved schemas and
// returns the aggregate.
//
// Parse never fails as a Go call: every error condition becomes a Diagnostic
// in the result and parsing resumes at the next recognizable boundary. The
// context is consulted only by the Loader; the core itself has no suspension
// points besides external resolution.
func Parse(ctx context.Context, text string, opts ...ParseOpt) *ParseResult {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Cache == nil {
		opt.Cache = NewCache()
	}
	p := &parser{opt: opt, res: newParseResult()}

	// Stage 1: block scanning.
	sc := scan.Document(text)
	for _, n := range sc.Notes {
		p.res.report(opt, fromNote(n))
	}

	// Stage 2: per-block parsing, strictly in document order.
	var blocks []*dataBlock
	for _, b := range sc.Blocks {
		switch b.Kind {
		case scan.KindSchema:
			p.parseSchemaBlock(b)
		case scan.KindData:
			p.res.touchSchema(b.Name)
			blocks = append(blocks, p.parseDataBlock(b))
		}
	}

	// Stage 3: resolution and consistency validation. Runs after all blocks
	// are parsed so that forward references within the document resolve.
	for _, db := range blocks {
		s := p.resolveBlockSchema(ctx, db)
		if s != nil {
			p.validateBlock(db, s)
		}
	}
	p.flush(blocks)
	return p.res
}

// resolveBlockSchema finds the schema a data block references: inline lookup
// for plain names, loader-backed resolution for [name](path) references.
// Failures surface as diagnostics; the block's entries are kept either way.
func (p *parser) resolveBlockSchema(ctx context.Context, db *dataBlock) *Schema {
	if db.path != "" {
		s, d := p.resolveExternal(ctx, db.name, db.path, db.line)
		if d != nil {
			p.res.reportErr(p.opt, *d)
			return nil
		}
		// An external load overwrites a forward-declared placeholder.
		p.res.Schemas[db.name] = s
		return s
	}
	s := p.res.Schemas[db.name]
	if s == nil {
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindSchemaNotFound,
			Message: "no schema named " + db.name + " in this document",
			Line:    db.line,
			Schema:  db.name,
		})
	}
	return s
}

// flush appends the parsed entries to the result, labeling entries from
// externally-referenced blocks with their source path when no explicit source
// name was given.
func (p *parser) flush(blocks []*dataBlock) {
	for _, db := range blocks {
		for i := range db.entries {
			if db.path != "" && db.entries[i].SourceFile == "" {
				db.entries[i].SourceFile = normalizePath(db.path)
			}
		}
		p.res.Data[db.name] = append(p.res.Data[db.name], db.entries...)
	}
}
