package plist

import (
	"encoding/base64"
	"fmt"
	"time"
)

// Kind identifies which variant an Object holds. There is no "null"
// kind: every Object is exactly one of the variants below.
type Kind uint

const (
	InvalidKind Kind = iota
	StringKind
	IntegerKind
	RealKind
	BooleanKind
	DataKind
	DateKind
	ArrayKind
	DictionaryKind
)

var kindNames = map[Kind]string{
	InvalidKind:    "invalid",
	StringKind:     "string",
	IntegerKind:    "integer",
	RealKind:       "real",
	BooleanKind:    "boolean",
	DataKind:       "data",
	DateKind:       "date",
	ArrayKind:      "array",
	DictionaryKind: "dictionary",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "invalid"
}

// Object is the closed sum of ASCII plist value variants: String,
// Integer, Real, Boolean, Data, Date, Array and Dictionary.
type Object interface {
	// Kind reports which variant this Object holds.
	Kind() Kind
	// Equal reports whether other is structurally equal: same kind
	// and equal payload. Dictionary equality ignores insertion
	// order; Array equality does not.
	Equal(other Object) bool
	// Copy returns a deep clone. Data's bytes are copied; a cloned
	// Dictionary preserves the original's insertion order.
	Copy() Object
}

// String is a UTF-8 text value.
type String string

func (String) Kind() Kind { return StringKind }

func (s String) Equal(other Object) bool {
	o, ok := other.(String)
	return ok && s == o
}

func (s String) Copy() Object { return s }

// Integer is a signed 64-bit value, written in base 10 or base 16.
type Integer int64

func (Integer) Kind() Kind { return IntegerKind }

func (i Integer) Equal(other Object) bool {
	o, ok := other.(Integer)
	return ok && i == o
}

func (i Integer) Copy() Object { return i }

// Real is an IEEE-754 double.
type Real float64

func (Real) Kind() Kind { return RealKind }

func (r Real) Equal(other Object) bool {
	o, ok := other.(Real)
	return ok && r == o
}

func (r Real) Copy() Object { return r }

// Boolean is YES/true or NO/false.
type Boolean bool

func (Boolean) Kind() Kind { return BooleanKind }

func (b Boolean) Equal(other Object) bool {
	o, ok := other.(Boolean)
	return ok && b == o
}

func (b Boolean) Copy() Object { return b }

// Data is an opaque byte sequence, written as hex between angle
// brackets in either dialect. DataFromBase64 and Coerce build one from
// base64 text; the parser itself never decodes base64.
type Data []byte

func (Data) Kind() Kind { return DataKind }

func (d Data) Equal(other Object) bool {
	o, ok := other.(Data)
	if !ok || len(d) != len(o) {
		return false
	}
	for i := range d {
		if d[i] != o[i] {
			return false
		}
	}
	return true
}

func (d Data) Copy() Object {
	c := make(Data, len(d))
	copy(c, d)
	return c
}

// Base64 encodes the data's bytes as standard base64.
func (d Data) Base64() string {
	return base64.StdEncoding.EncodeToString(d)
}

// DataFromBase64 decodes a base64 string into a Data value.
func DataFromBase64(s string) (Data, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("plist: invalid base64 data: %w", err)
	}
	return Data(b), nil
}

// Date is a GNUStep-dialect typed literal (<*D...>). The ASCII-only
// dialect never produces one.
type Date time.Time

func (Date) Kind() Kind { return DateKind }

func (d Date) Equal(other Object) bool {
	o, ok := other.(Date)
	return ok && time.Time(d).Equal(time.Time(o))
}

func (d Date) Copy() Object { return d }

// Coerce attempts to view src as the variant kind, returning src
// unchanged if it already is, a best-effort converted copy for
// trivially compatible variants, or an error. The only standing
// compatible conversion is String -> Data when the string is valid
// base64, since the grammar offers no other variant pairs that are
// safe to convert without information loss.
func Coerce(src Object, kind Kind) (Object, error) {
	if src.Kind() == kind {
		return src, nil
	}
	if s, ok := src.(String); ok && kind == DataKind {
		return DataFromBase64(string(s))
	}
	return nil, fmt.Errorf("plist: cannot coerce %s to %s", src.Kind(), kind)
}
