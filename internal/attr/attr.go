// Package attr implements the single-line attribute micro-grammar shared by
// field and index declarations: comma-separated key: value lists, quoted
// literals, dual-format literals {"in","out"}, rule literals {k: v, ...},
// bracketed lists and composite index expressions. Everything here is a pure
// function over one line fragment.
package attr

import "strings"

// Item is one element of an attribute list. Bare values (no colon at depth 0)
// carry an empty Key.
type Item struct {
	Key   string
	Value string
	Col   int // 1-based column of the item start within the input fragment
}

// SplitList splits a comma-separated attribute list, honoring quotes, braces
// and brackets. ok is false when a quote or bracket literal is left unclosed;
// the items parsed up to that point are still returned.
func SplitList(s string) (items []Item, ok bool) {
	ok = true
	depth := 0
	inQuote := false
	start := 0
	flush := func(end int) {
		part := s[start:end]
		trimmedLeft := strings.TrimLeft(part, " \t")
		col := start + (len(part) - len(trimmedLeft)) + 1
		part = strings.TrimSpace(part)
		if part == "" {
			return
		}
		k, v := cutKey(part)
		items = append(items, Item{Key: k, Value: v, Col: col})
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			flush(i)
			start = i + 1
		}
	}
	flush(len(s))
	if inQuote || depth != 0 {
		ok = false
	}
	return items, ok
}

// cutKey splits "key: value" at the first depth-0 colon. A fragment without
// one is a bare value.
func cutKey(s string) (key, value string) {
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			depth--
		case c == ':' && depth == 0:
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
		}
	}
	return "", strings.TrimSpace(s)
}

// Unquote strips one matching pair of double quotes. Unquoted input is
// returned as-is.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseDual parses a dual-format literal {"in","out"} (quotes optional).
// ok is false unless the literal is brace-delimited with exactly two parts.
func ParseDual(s string) (input, display string, ok bool) {
	inner, braced := stripBraces(s)
	if !braced {
		return "", "", false
	}
	items, closed := SplitList(inner)
	if !closed || len(items) != 2 {
		return "", "", false
	}
	for _, it := range items {
		if it.Key != "" {
			return "", "", false
		}
	}
	return Unquote(items[0].Value), Unquote(items[1].Value), true
}

// IsDualCandidate reports whether a format value even attempts the dual
// literal syntax, so callers can distinguish a plain format string from a
// malformed dual literal.
func IsDualCandidate(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "{")
}

// Pair is one key/value of a rule literal.
type Pair struct {
	Key   string
	Value string
}

// ParseRules parses a validation-rule literal {key: value, ...}. ok is false
// on malformed bracing or on a pair without a key. Well-formed pairs before
// the malformed one are still returned.
func ParseRules(s string) (pairs []Pair, ok bool) {
	inner, braced := stripBraces(s)
	if !braced {
		return nil, false
	}
	items, closed := SplitList(inner)
	if !closed {
		return nil, false
	}
	ok = true
	for _, it := range items {
		if it.Key == "" {
			ok = false
			continue
		}
		pairs = append(pairs, Pair{Key: it.Key, Value: it.Value})
	}
	return pairs, ok
}

// ParseBracketList parses [a, b, "c d"] into its elements. ok is false on
// malformed bracketing.
func ParseBracketList(s string) (elems []string, ok bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}
	items, closed := SplitList(s[1 : len(s)-1])
	if !closed {
		return nil, false
	}
	for _, it := range items {
		v := it.Value
		if it.Key != "" {
			v = it.Key + ":" + it.Value
		}
		elems = append(elems, Unquote(v))
	}
	return elems, true
}

// ParseIndex parses a composite index expression field1+field2+... into its
// field names. Empty segments are dropped.
func ParseIndex(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func stripBraces(s string) (inner string, ok bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return "", false
	}
	return s[1 : len(s)-1], true
}
