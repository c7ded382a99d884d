package codec

import (
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	mdd "github.com/mdd-lang/go-mdd"
)

// ResultYAML renders a ParseResult as YAML. The tree is built from yaml.Node
// values directly so member order survives: struct-based marshaling would
// cover the fixed shapes, but entry fields are ordered pairs and must not go
// through a Go map.
func ResultYAML(r *mdd.ParseResult) ([]byte, error) {
	doc := buildDocument(r)

	schemas := seqNode()
	for _, s := range doc.Schemas {
		schemas.Content = append(schemas.Content, schemaNode(s))
	}
	data := seqNode()
	for _, g := range doc.Data {
		entries := seqNode()
		for i := range g.Entries {
			entries.Content = append(entries.Content, entryNode(&g.Entries[i]))
		}
		data.Content = append(data.Content, mapNode(
			strNode("schema"), strNode(g.Schema),
			strNode("entries"), entries,
		))
	}

	root := mapNode(
		strNode("schemas"), schemas,
		strNode("data"), data,
		strNode("errors"), diagsNode(doc.Errors),
		strNode("warnings"), diagsNode(doc.Warnings),
	)
	return yaml.Marshal(root)
}

func schemaNode(s *mdd.Schema) *yaml.Node {
	fields := seqNode()
	for i := range s.Fields {
		fields.Content = append(fields.Content, fieldNode(&s.Fields[i]))
	}
	n := mapNode(
		strNode("name"), strNode(s.Name),
		strNode("fields"), fields,
	)
	if len(s.Indexes) > 0 {
		idx := seqNode()
		for _, ix := range s.Indexes {
			names := seqNode()
			for _, f := range ix.Fields {
				names.Content = append(names.Content, strNode(f))
			}
			idx.Content = append(idx.Content, names)
		}
		appendPair(n, strNode("indexes"), idx)
	}
	if s.SourcePath != "" {
		appendPair(n, strNode("sourcePath"), strNode(s.SourcePath))
	}
	return n
}

func fieldNode(f *mdd.FieldDefinition) *yaml.Node {
	n := mapNode(
		strNode("name"), strNode(f.Name),
		strNode("type"), strNode(f.Type.String()),
	)
	if f.Label != "" {
		appendPair(n, strNode("label"), strNode(f.Label))
	}
	if f.Format != nil {
		fm := mapNode(
			strNode("input"), strNode(f.Format.Input),
			strNode("display"), strNode(f.Format.Display),
		)
		appendPair(n, strNode("format"), fm)
	}
	if f.IsRequired() {
		appendPair(n, strNode("required"), boolNode(true))
	}
	if rules := rulesNode(f.Rules); rules != nil {
		appendPair(n, strNode("rules"), rules)
	}
	return n
}

func rulesNode(r *mdd.ValidationRules) *yaml.Node {
	if r == nil {
		return nil
	}
	n := mapNode()
	if r.Required != nil {
		appendPair(n, strNode("required"), boolNode(*r.Required))
	}
	if r.Min != nil {
		appendPair(n, strNode("min"), numNode(*r.Min))
	}
	if r.Max != nil {
		appendPair(n, strNode("max"), numNode(*r.Max))
	}
	if r.Pattern != "" {
		appendPair(n, strNode("pattern"), strNode(r.Pattern))
	}
	if r.Email {
		appendPair(n, strNode("email"), boolNode(true))
	}
	if r.URL {
		appendPair(n, strNode("url"), boolNode(true))
	}
	if len(r.Options) > 0 {
		opts := seqNode()
		for _, o := range r.Options {
			opts.Content = append(opts.Content, strNode(o))
		}
		appendPair(n, strNode("options"), opts)
	}
	if len(n.Content) == 0 {
		return nil
	}
	return n
}

func entryNode(e *mdd.Entry) *yaml.Node {
	fields := mapNode()
	for _, fv := range e.Fields {
		appendPair(fields, strNode(fv.Name), valueNode(fv.Value))
	}
	n := mapNode(
		strNode("line"), intNode(e.Line),
		strNode("recordIndex"), intNode(e.RecordIndex),
		strNode("fields"), fields,
	)
	if e.SourceFile != "" {
		appendPair(n, strNode("sourceFile"), strNode(e.SourceFile))
	}
	return n
}

func valueNode(v mdd.Value) *yaml.Node {
	switch v.Kind {
	case mdd.ValueNumber:
		return numNode(v.Number())
	case mdd.ValueBool:
		return boolNode(v.Bool())
	default:
		return strNode(v.Raw)
	}
}

func diagsNode(ds mdd.Diagnostics) *yaml.Node {
	out := seqNode()
	for _, d := range ds {
		n := mapNode(
			strNode("kind"), strNode(d.Kind),
			strNode("message"), strNode(d.Message),
		)
		if d.Line > 0 {
			appendPair(n, strNode("line"), intNode(d.Line))
		}
		if d.Schema != "" {
			appendPair(n, strNode("schema"), strNode(d.Schema))
		}
		if d.Field != "" {
			appendPair(n, strNode("field"), strNode(d.Field))
		}
		out.Content = append(out.Content, n)
	}
	return out
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func intNode(i int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)}
}

func numNode(f float64) *yaml.Node {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(f), 10)}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(f, 'g', -1, 64)}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func mapNode(kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: kv}
}

func seqNode(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

func appendPair(m *yaml.Node, k, v *yaml.Node) {
	m.Content = append(m.Content, k, v)
}
