package mdd

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// FieldValue is one (name, value) pair of an entry.
type FieldValue struct {
	Name  string
	Value Value
}

// Fields is the ordered field container of an Entry. Order is source order,
// not schema order. Fields is also the serialization surface: it marshals as
// a JSON object whose member order matches the pair order, and Pairs exposes
// the raw sequence for callers bringing their own serializer.
type Fields []FieldValue

// Get returns the value for name and whether it is present.
func (fs Fields) Get(name string) (Value, bool) {
	for i := range fs {
		if fs[i].Name == name {
			return fs[i].Value, true
		}
	}
	return Value{}, false
}

// Has reports whether name is present.
func (fs Fields) Has(name string) bool {
	_, ok := fs.Get(name)
	return ok
}

// Names returns the field names in pair order.
func (fs Fields) Names() []string {
	out := make([]string, len(fs))
	for i := range fs {
		out[i] = fs[i].Name
	}
	return out
}

// set adds or overwrites a pair, preserving the position of an existing name.
func (fs Fields) set(name string, v Value) Fields {
	for i := range fs {
		if fs[i].Name == name {
			fs[i].Value = v
			return fs
		}
	}
	return append(fs, FieldValue{Name: name, Value: v})
}

// Pairs returns the pairs as (name, raw-token) tuples in order. This is the
// explicit ordered sequence callers should serialize when their encoder does
// not honor Fields' own MarshalJSON.
func (fs Fields) Pairs() [][2]string {
	out := make([][2]string, len(fs))
	for i := range fs {
		out[i] = [2]string{fs[i].Name, fs[i].Value.Raw}
	}
	return out
}

// MarshalJSON emits an object with members in pair order. Typed values are
// emitted in their typed form (numbers as numbers, booleans as booleans);
// everything else falls back to the raw token string.
func (fs Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(fs[i].Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := fs[i].Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON emits the typed view when one exists, the raw token otherwise.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNumber:
		return json.Marshal(v.num)
	case ValueBool:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.Raw)
	}
}
