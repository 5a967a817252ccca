package graph

import (
	"fmt"
	"strconv"
	"time"

	"github.com/c360/semkg/errors"
	"github.com/c360/semkg/vocabulary"
)

// ValueKind identifies the scalar kind stored in a Value.
type ValueKind int

const (
	// KindString is a UTF-8 string literal.
	KindString ValueKind = iota
	// KindFloat is an IEEE-754 double literal.
	KindFloat
	// KindBool is a boolean literal.
	KindBool
	// KindTimestamp is a point-in-time literal, exported as ISO-8601.
	KindTimestamp
)

// String returns the string representation of ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Value is a closed scalar variant for statement literals. Only four kinds
// exist at the boundary: string, float, bool and timestamp. Anything else
// must be coerced by the caller before insertion; FromAny rejects it.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	ts   time.Time
}

// String constructs a string literal.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Float constructs a float literal.
func Float(f float64) Value {
	return Value{kind: KindFloat, num: f}
}

// Bool constructs a boolean literal.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Timestamp constructs a timestamp literal. The time is stored in UTC so
// lexical forms are stable across machines.
func Timestamp(t time.Time) Value {
	return Value{kind: KindTimestamp, ts: t.UTC()}
}

// FromAny converts a dynamically typed value into a Value. Supported inputs
// are string, bool, time.Time and the numeric kinds (coerced to float64).
// Everything else returns a classified invalid error; there is no silent
// stringification.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case time.Time:
		return Timestamp(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Float(float64(x)), nil
	case int32:
		return Float(float64(x)), nil
	case int64:
		return Float(float64(x)), nil
	case Value:
		return x, nil
	default:
		return Value{}, errors.WrapInvalid(errors.ErrUnsupportedValue,
			"Value", "FromAny", fmt.Sprintf("converting %T", v))
	}
}

// Kind returns the scalar kind of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Text returns the value's text content. Only meaningful for KindString.
func (v Value) Text() string {
	return v.str
}

// Number returns the numeric content and whether the value is a float.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindFloat
}

// Truth returns the boolean content and whether the value is a bool.
func (v Value) Truth() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Time returns the timestamp content and whether the value is a timestamp.
func (v Value) Time() (time.Time, bool) {
	return v.ts, v.kind == KindTimestamp
}

// Lexical returns the canonical lexical form of the value: the form used in
// query bindings and serialization. Floats use the shortest representation
// that round-trips, timestamps use RFC 3339 with nanoseconds.
func (v Value) Lexical() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTimestamp:
		return v.ts.Format(time.RFC3339Nano)
	default:
		return v.str
	}
}

// Datatype returns the XSD datatype tag for the value, used in RDF export.
func (v Value) Datatype() string {
	switch v.kind {
	case KindFloat:
		return vocabulary.XSDDouble
	case KindBool:
		return vocabulary.XSDBoolean
	case KindTimestamp:
		return vocabulary.XSDDateTime
	default:
		return vocabulary.XSDString
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindFloat:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindTimestamp:
		return v.ts.Equal(other.ts)
	default:
		return v.str == other.str
	}
}

// parseLexical reconstructs a Value from its lexical form and datatype tag.
// Used when loading serialized statements.
func parseLexical(lexical, datatype string) (Value, error) {
	switch datatype {
	case vocabulary.XSDDouble:
		f, err := strconv.ParseFloat(lexical, 64)
		if err != nil {
			return Value{}, errors.WrapInvalid(err, "Value", "parseLexical", "parsing float literal")
		}
		return Float(f), nil
	case vocabulary.XSDBoolean:
		b, err := strconv.ParseBool(lexical)
		if err != nil {
			return Value{}, errors.WrapInvalid(err, "Value", "parseLexical", "parsing bool literal")
		}
		return Bool(b), nil
	case vocabulary.XSDDateTime:
		t, err := time.Parse(time.RFC3339Nano, lexical)
		if err != nil {
			return Value{}, errors.WrapInvalid(err, "Value", "parseLexical", "parsing timestamp literal")
		}
		return Timestamp(t), nil
	case vocabulary.XSDString, "":
		return String(lexical), nil
	default:
		return Value{}, errors.WrapInvalid(errors.ErrUnsupportedValue,
			"Value", "parseLexical", fmt.Sprintf("unknown datatype %q", datatype))
	}
}
