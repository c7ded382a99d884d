package mdd

import (
	"strings"

	"github.com/mdd-lang/go-mdd/internal/scan"
)

// dataBlock is the per-block working record handed from the data parser to
// the consistency validator once schema resolution has finished.
type dataBlock struct {
	name       string
	path       string // external reference target, when declared
	line       int    // opening marker line
	layout     Layout
	header     []string // tabular header field names, prefix stripped
	headerLine int
	entries    []Entry
}

// parseDataBlock consumes a data block's lines. Layout is auto-detected from
// the first content line and mixing layouts within one block is rejected
// line-by-line. Values are typed later, by the validator, once the schema is
// resolved; until then every token is held as text.
func (p *parser) parseDataBlock(b scan.Block) *dataBlock {
	db := &dataBlock{name: b.Name, path: b.Path, line: b.Line}

	var cur Fields
	curLine := 0
	closeEntry := func() {
		if len(cur) == 0 {
			return
		}
		db.entries = append(db.entries, Entry{
			SchemaName:  db.name,
			Fields:      cur,
			Line:        curLine,
			SourceFile:  p.opt.SourceName,
			RecordIndex: len(db.entries),
		})
		cur = nil
		curLine = 0
	}

	for _, ln := range b.Lines {
		t := strings.TrimSpace(ln.Text)
		if t == "" {
			continue
		}
		tabularLine := strings.HasPrefix(t, "|")
		markerLine := strings.HasPrefix(t, "!")
		if !tabularLine && !markerLine {
			continue // surrounding prose inside the block
		}

		if db.layout == LayoutUnknown {
			switch {
			case tabularLine && strings.HasSuffix(t, "|") && len(t) > 1:
				db.layout = LayoutTabular
				db.header = p.parseHeaderRow(db, t, ln.Number)
				db.headerLine = ln.Number
				continue
			case t == "!-" || isFreeformLine(t):
				db.layout = LayoutFreeform
			default:
				p.res.reportErr(p.opt, Diagnostic{
					Kind:    KindInvalidBlockType,
					Message: "first content line is neither a table row nor a free-form field line",
					Line:    ln.Number,
					Schema:  db.name,
				})
				return db
			}
		}

		switch db.layout {
		case LayoutTabular:
			if markerLine {
				p.res.reportErr(p.opt, Diagnostic{
					Kind:    KindMixedDataFormat,
					Message: "free-form line inside a tabular block",
					Line:    ln.Number,
					Schema:  db.name,
				})
				continue
			}
			p.parseTableRow(db, t, ln.Number)

		case LayoutFreeform:
			if tabularLine {
				p.res.reportErr(p.opt, Diagnostic{
					Kind:    KindMixedDataFormat,
					Message: "table row inside a free-form block",
					Line:    ln.Number,
					Schema:  db.name,
				})
				continue
			}
			if t == "!-" {
				closeEntry()
				continue
			}
			name, value, ok := splitFreeform(t)
			if !ok {
				p.res.reportErr(p.opt, Diagnostic{
					Kind:    KindInvalidFreeformSyntax,
					Message: "expected !field_name value",
					Line:    ln.Number,
					Schema:  db.name,
				})
				continue
			}
			if len(cur) == 0 {
				curLine = ln.Number
			}
			cur = cur.set(name, textValue(value))
		}
	}
	closeEntry()
	return db
}

// parseHeaderRow parses the tabular header. Cells carrying the ! prefix name
// schema fields; bare cells are accepted with a naming warning.
func (p *parser) parseHeaderRow(db *dataBlock, t string, line int) []string {
	cells := splitRow(t)
	names := make([]string, 0, len(cells))
	for _, c := range cells {
		if strings.HasPrefix(c, "!") {
			names = append(names, strings.TrimSpace(c[1:]))
			continue
		}
		p.res.reportWarn(p.opt, Diagnostic{
			Kind:    KindInvalidFieldName,
			Message: "header cell " + c + " missing ! prefix",
			Line:    line,
			Schema:  db.name,
			Field:   c,
		})
		names = append(names, c)
	}
	return names
}

// parseTableRow parses one data row, zipping cells with the header in order.
// A cell-count mismatch skips that row only.
func (p *parser) parseTableRow(db *dataBlock, t string, line int) {
	if !strings.HasSuffix(t, "|") || len(t) < 2 {
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindInvalidTableSyntax,
			Message: "table row must start and end with |",
			Line:    line,
			Schema:  db.name,
		})
		return
	}
	cells := splitRow(t)
	if isSeparatorRow(cells) {
		return
	}
	if len(cells) != len(db.header) {
		p.res.reportErr(p.opt, Diagnostic{
			Kind:    KindInvalidTableSyntax,
			Message: "row has a different cell count than the header; row skipped",
			Line:    line,
			Schema:  db.name,
		})
		return
	}
	var fs Fields
	for i, c := range cells {
		fs = fs.set(db.header[i], textValue(c))
	}
	db.entries = append(db.entries, Entry{
		SchemaName:  db.name,
		Fields:      fs,
		Line:        line,
		SourceFile:  p.opt.SourceName,
		RecordIndex: len(db.entries),
	})
}

// splitRow splits a |-delimited row into trimmed cells, dropping the empty
// leading and trailing segments.
func splitRow(t string) []string {
	parts := strings.Split(t, "|")
	if len(parts) < 3 {
		return nil
	}
	parts = parts[1 : len(parts)-1]
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// isSeparatorRow recognizes a markdown table separator (cells of dashes with
// optional alignment colons).
func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		c = strings.TrimPrefix(c, ":")
		c = strings.TrimSuffix(c, ":")
		if c == "" || strings.Trim(c, "-") != "" {
			return false
		}
	}
	return true
}

// isFreeformLine reports whether t is !identifier optionally followed by
// whitespace and a value.
func isFreeformLine(t string) bool {
	name, _, _ := splitFreeform(t)
	return name != ""
}

// splitFreeform splits !field_name value. ok is false when the marker does
// not carry a valid identifier.
func splitFreeform(t string) (name, value string, ok bool) {
	body := t[1:]
	name, value, _ = strings.Cut(body, " ")
	if !scan.IsIdentifier(name) {
		return "", "", false
	}
	return name, strings.TrimSpace(value), true
}
