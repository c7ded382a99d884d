package mdd

import "time"

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// ValueRaw means the token did not pass structural validation for its
	// declared type; only Raw is meaningful.
	ValueRaw ValueKind = iota
	ValueText
	ValueNumber
	ValueDate
	ValueTime
	ValueBool
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueText:
		return "text"
	case ValueNumber:
		return "number"
	case ValueDate:
		return "date"
	case ValueTime:
		return "time"
	case ValueBool:
		return "boolean"
	default:
		return "raw"
	}
}

// Value is one parsed field value: the original source token plus, when the
// token is structurally valid under the field's declared type, a typed view.
// Consumers branch on Kind.
type Value struct {
	Kind ValueKind
	// Raw is the source token exactly as written, always set.
	Raw string

	num float64
	b   bool
	t   time.Time
}

// textValue builds a text-kind value.
func textValue(raw string) Value { return Value{Kind: ValueText, Raw: raw} }

// rawValue builds an untyped value for tokens that failed type validation.
func rawValue(raw string) Value { return Value{Kind: ValueRaw, Raw: raw} }

func numberValue(raw string, n float64) Value {
	return Value{Kind: ValueNumber, Raw: raw, num: n}
}

func boolValue(raw string, b bool) Value {
	return Value{Kind: ValueBool, Raw: raw, b: b}
}

func dateValue(raw string, t time.Time) Value {
	return Value{Kind: ValueDate, Raw: raw, t: t}
}

func timeValue(raw string, t time.Time) Value {
	return Value{Kind: ValueTime, Raw: raw, t: t}
}

// Number returns the numeric view. Valid only when Kind is ValueNumber.
func (v Value) Number() float64 { return v.num }

// Bool returns the boolean view. Valid only when Kind is ValueBool.
func (v Value) Bool() bool { return v.b }

// Time returns the temporal view. Valid only when Kind is ValueDate or
// ValueTime.
func (v Value) Time() time.Time { return v.t }
