package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the scalar type of a Value.
type Kind int

const (
	// KindNull is the SQL NULL marker. It equals only itself.
	KindNull Kind = iota

	// KindInt is a 64-bit integer (SQLite INTEGER affinity).
	KindInt

	// KindFloat is a 64-bit float (SQLite REAL affinity).
	KindFloat

	// KindText is a string (SQLite TEXT affinity, including scanned blobs).
	KindText
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single scalar cell of a result row.
// The zero Value is NULL.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Null returns the NULL marker value.
func Null() Value {
	return Value{kind: KindNull}
}

// Int returns an integer value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float returns a float value.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// Text returns a text value.
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// Kind reports the scalar type of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is the NULL marker.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Int64 returns the integer payload. Valid only for KindInt.
func (v Value) Int64() int64 {
	return v.i
}

// Float64 returns the float payload. Valid only for KindFloat.
func (v Value) Float64() float64 {
	return v.f
}

// Text returns the text payload. Valid only for KindText.
func (v Value) Text() string {
	return v.s
}

// String renders the value the way it should appear in a result table.
// NULL renders as the literal word NULL so it is visually distinct from
// an empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// FromDriver canonicalizes a value scanned from database/sql into a Value.
// Byte slices become text, booleans become 0/1 integers, and times render
// as RFC 3339 text (go-sqlite3 materializes declared datetime columns as
// time.Time).
func FromDriver(raw any) Value {
	switch val := raw.(type) {
	case nil:
		return Null()
	case int64:
		return Int(val)
	case int:
		return Int(int64(val))
	case float64:
		return Float(val)
	case bool:
		if val {
			return Int(1)
		}
		return Int(0)
	case []byte:
		return Text(string(val))
	case string:
		return Text(val)
	case time.Time:
		return Text(val.Format(time.RFC3339))
	default:
		return Text(fmt.Sprintf("%v", val))
	}
}

// numeric reports whether the value carries a number, and its float view.
func (v Value) numeric() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// typeRank orders kinds for the total order: null < number < text.
func (v Value) typeRank() int {
	switch v.kind {
	case KindNull:
		return 0
	case KindInt, KindFloat:
		return 1
	default:
		return 2
	}
}

// Equal reports value equality. NULL equals only NULL; integers and floats
// compare numerically across kinds; text compares byte-exact. Callers that
// want trimming or unicode normalization apply a Normalizer first.
func Equal(a, b Value) bool {
	if a.kind == KindNull || b.kind == KindNull {
		return a.kind == b.kind
	}
	if af, aok := a.numeric(); aok {
		bf, bok := b.numeric()
		if !bok {
			return false
		}
		if a.kind == KindInt && b.kind == KindInt {
			return a.i == b.i
		}
		return af == bf
	}
	if b.kind != KindText {
		return false
	}
	return a.s == b.s
}

// Compare is the total order over values: null-low, then type rank, then
// native comparison within the rank. Cross-kind numbers compare as float64,
// with an exact path for int-int. Returns -1, 0, or +1.
func Compare(a, b Value) int {
	if ar, br := a.typeRank(), b.typeRank(); ar != br {
		if ar < br {
			return -1
		}
		return 1
	}
	switch a.typeRank() {
	case 0:
		return 0
	case 1:
		if a.kind == KindInt && b.kind == KindInt {
			switch {
			case a.i < b.i:
				return -1
			case a.i > b.i:
				return 1
			default:
				return 0
			}
		}
		af, _ := a.numeric()
		bf, _ := b.numeric()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	default:
		return strings.Compare(a.s, b.s)
	}
}

// CompareRows orders rows lexicographically by their values in column
// order. A strict prefix sorts before the longer row, which keeps the
// order total even over malformed row shapes.
func CompareRows(a, b []Value) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
