package introspect

import (
	"fmt"
	"strconv"
	"time"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

// TimeLayout is used to print date/time columns.
const TimeLayout = "2006-01-02 15:04:05"

// Value is a raw database cell reduced to one of null, string, number or
// boolean. Numbers keep their canonical decimal text.
type Value struct {
	kind Kind
	text string
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a number value.
func Int(n int64) Value { return number(strconv.FormatInt(n, 10)) }

// Uint returns a number value.
func Uint(n uint64) Value { return number(strconv.FormatUint(n, 10)) }

// Float returns a number value in its shortest decimal form.
func Float(f float64) Value { return number(strconv.FormatFloat(f, 'f', -1, 64)) }

func number(s string) Value { return Value{kind: KindNumber, text: s} }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// NewValue classifies a value returned by a database/sql driver.
func NewValue(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Null()
	case string:
		return String(v)
	case []byte:
		if v == nil {
			return Null()
		}
		return String(string(v))
	case bool:
		return Bool(v)
	case int64:
		return Int(v)
	case int:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case uint64:
		return Uint(v)
	case uint32:
		return Uint(uint64(v))
	case uint:
		return Uint(uint64(v))
	case float64:
		return Float(v)
	case float32:
		return number(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case time.Time:
		return String(v.Format(TimeLayout))
	case fmt.Stringer:
		return String(v.String())
	default:
		return String(fmt.Sprint(v))
	}
}

// String renders the value for display. Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.text
	}
}
