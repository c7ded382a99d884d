// Package scan implements the line-oriented block scanner: it recognizes
// block open/close markers, rejects nesting, and hands raw line ranges to the
// schema and data parsers. Recovery is explicit: after a malformed construct
// the scanner moves to a named recovery state and resynchronizes at the next
// block boundary.
package scan

import (
	"strings"

	"github.com/mdd-lang/go-mdd/internal/diag"
)

// Kind tags a raw block.
type Kind int

const (
	KindSchema Kind = iota // !? datadef <name>
	KindData               // !? data <name> | !? data [<name>](<path>)
)

// Line is one raw content line with its 1-based document line number.
type Line struct {
	Number int
	Text   string
}

// Block is one raw scanned block. Lines hold the content between the open and
// close markers, untrimmed.
type Block struct {
	Kind Kind
	Name string
	// Path is the external reference target for data blocks declared with
	// [name](path); empty otherwise.
	Path string
	// Line is the 1-based line number of the opening marker.
	Line  int
	Lines []Line
	// Closed is false when the block was terminated by end of document or by
	// resynchronization rather than by an explicit !# marker.
	Closed bool
}

// Result is the scanner output: blocks in document order plus scanner-level
// notes.
type Result struct {
	Blocks []Block
	Notes  []diag.Note
}

// Scanner states.
const (
	stateProse   = iota // outside any block
	stateBlock          // inside an open block, collecting lines
	stateRecover        // seeking next block boundary after nested open
)

// Document scans the full document text into raw blocks.
func Document(text string) Result {
	var res Result
	var cur Block
	state := stateProse
	seenBlock := false

	emit := func(closed bool) {
		cur.Closed = closed
		if len(cur.Lines) == 0 {
			res.Notes = append(res.Notes, diag.Note{
				Kind:    diag.EmptyBlock,
				Message: "block " + cur.Name + " has no content lines",
				Line:    cur.Line,
				Warn:    true,
			})
		}
		res.Blocks = append(res.Blocks, cur)
		cur = Block{}
	}

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		n := i + 1
		raw = strings.TrimSuffix(raw, "\r")
		trimmed := strings.TrimSpace(raw)

		switch state {
		case stateProse:
			switch {
			case trimmed == "!#":
				// Stray close marker outside a block; surrounding prose.
			case strings.HasPrefix(trimmed, "!?"):
				b, notes, ok := parseOpen(trimmed, n)
				res.Notes = append(res.Notes, notes...)
				if ok {
					cur = b
					state = stateBlock
					seenBlock = true
				}
			case !seenBlock && looksLikeContent(trimmed):
				res.Notes = append(res.Notes, diag.Note{
					Kind:    diag.MissingBlockStart,
					Message: "content line before any block open marker",
					Line:    n,
					Warn:    true,
				})
			}

		case stateBlock:
			switch {
			case trimmed == "!#":
				emit(true)
				state = stateProse
			case strings.HasPrefix(trimmed, "!?"):
				res.Notes = append(res.Notes, diag.Note{
					Kind:    diag.NestedBlocks,
					Message: "block opened before " + cur.Name + " was closed",
					Line:    n,
				})
				state = stateRecover
			default:
				cur.Lines = append(cur.Lines, Line{Number: n, Text: raw})
			}

		case stateRecover:
			switch {
			case trimmed == "!#":
				emit(true)
				state = stateProse
			case strings.HasPrefix(trimmed, "!?"):
				b, notes, ok := parseOpen(trimmed, n)
				res.Notes = append(res.Notes, notes...)
				if ok {
					emit(false)
					cur = b
					state = stateBlock
				}
			}
		}
	}

	if state != stateProse {
		res.Notes = append(res.Notes, diag.Note{
			Kind:    diag.BlockNotClosed,
			Message: "block " + cur.Name + " not closed before end of document",
			Line:    cur.Line,
		})
		emit(false)
	}
	return res
}

// looksLikeContent reports whether a prose-position line looks like block
// content that lost its open marker. Only !-prefixed markers count; a bare
// markdown table in surrounding prose stays legal.
func looksLikeContent(trimmed string) bool {
	if len(trimmed) < 2 || trimmed[0] != '!' {
		return false
	}
	c := trimmed[1]
	return c == '-' || c == '_' || isAlpha(c)
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// parseOpen parses a block-open line. ok is false when the line cannot open a
// block at all; notes may be returned even for ok lines (e.g. a schema name
// that breaks the identifier grammar).
func parseOpen(trimmed string, line int) (Block, []diag.Note, bool) {
	parts := strings.Fields(trimmed[2:])
	var kw, ref string
	if len(parts) > 0 {
		kw = parts[0]
		ref = strings.Join(parts[1:], " ")
	}

	var kind Kind
	switch kw {
	case "datadef":
		kind = KindSchema
	case "data":
		kind = KindData
	default:
		return Block{}, []diag.Note{{
			Kind:    diag.InvalidBlockSyntax,
			Message: "expected datadef or data after !?",
			Line:    line,
		}}, false
	}
	if ref == "" {
		return Block{}, []diag.Note{{
			Kind:    diag.InvalidBlockSyntax,
			Message: "missing schema name in block open",
			Line:    line,
		}}, false
	}

	b := Block{Kind: kind, Line: line}
	var notes []diag.Note

	if strings.HasPrefix(ref, "[") {
		if kind != KindData {
			return Block{}, []diag.Note{{
				Kind:    diag.InvalidBlockSyntax,
				Message: "external reference is only valid on data blocks",
				Line:    line,
			}}, false
		}
		name, path, ok := splitExternalRef(ref)
		if !ok {
			notes = append(notes, diag.Note{
				Kind:    diag.MalformedExternalRef,
				Message: "expected [name](path) external reference",
				Line:    line,
			})
			// Salvage the name when the bracket part is intact so the
			// block's entries still surface.
			if name == "" {
				return Block{}, notes, false
			}
		}
		b.Name, b.Path = name, path
	} else {
		b.Name = ref
	}

	if !IsIdentifier(b.Name) {
		notes = append(notes, diag.Note{
			Kind:    diag.InvalidSchemaName,
			Message: "schema name " + b.Name + " does not match identifier grammar",
			Line:    line,
		})
	}
	return b, notes, true
}

// splitExternalRef splits a [name](path) reference. When the closing bracket
// exists but the path part is malformed or empty, the name is still returned
// with ok false.
func splitExternalRef(ref string) (name, path string, ok bool) {
	end := strings.IndexByte(ref, ']')
	if end < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(ref[1:end])
	rest := strings.TrimSpace(ref[end+1:])
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return name, "", false
	}
	path = strings.TrimSpace(rest[1 : len(rest)-1])
	if name == "" || path == "" {
		return name, path, false
	}
	return name, path, true
}

// IsIdentifier reports whether s matches ^[A-Za-z][A-Za-z0-9_]*$.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isAlpha(c) && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
