package records

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	Null Kind = iota
	Bool
	Number
	String
	SequenceKind // JSON array; Sequence is the record list type
	Mapping
)

var kindNames = [...]string{
	Null:         "null",
	Bool:         "bool",
	Number:       "number",
	String:       "string",
	SequenceKind: "sequence",
	Mapping:      "mapping",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a dynamically shaped JSON value: a scalar, a sequence of
// Values or a mapping from string keys to Values. The zero Value is null.
//
// Numbers keep their literal text so that large integers survive intact.
type Value struct {
	kind Kind
	b    bool
	s    string
	seq  []Value
	m    map[string]Value
}

// NullValue returns the null Value.
func NullValue() Value { return Value{} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NumberValue returns a numeric Value holding the literal n.
func NumberValue(n json.Number) Value { return Value{kind: Number, s: string(n)} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// SequenceValue returns a sequence Value holding vs.
func SequenceValue(vs ...Value) Value {
	return Value{kind: SequenceKind, seq: append([]Value{}, vs...)}
}

// MappingValue returns a mapping Value holding a copy of m.
func MappingValue(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: Mapping, m: cp}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsScalar reports whether v is null, a bool, a number or a string.
func (v Value) IsScalar() bool { return v.kind < SequenceKind }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == Bool }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == String }

// AsNumber returns the literal text of the number held by v.
func (v Value) AsNumber() (json.Number, bool) { return json.Number(v.s), v.kind == Number }

// AsFloat returns the number held by v as a float64.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	return f, err == nil
}

// AsInt returns the number held by v as an int64 if it is integral.
func (v Value) AsInt() (int64, bool) {
	if v.kind != Number {
		return 0, false
	}
	n, err := strconv.ParseInt(v.s, 10, 64)
	return n, err == nil
}

// Len returns the number of elements of a sequence or entries of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case SequenceKind:
		return len(v.seq)
	case Mapping:
		return len(v.m)
	}
	return 0
}

// Index returns element i of a sequence.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != SequenceKind || i < 0 || i >= len(v.seq) {
		return Value{}, false
	}
	return v.seq[i], true
}

// Get returns the value stored under key in a mapping.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Mapping {
		return Value{}, false
	}
	x, ok := v.m[key]
	return x, ok
}

// Keys returns the keys of a mapping in sorted order.
func (v Value) Keys() []string {
	if v.kind != Mapping {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Scalar returns the text form of a scalar Value: strings as-is, numbers as
// their literal, booleans as true/false and null as "null".
func (v Value) Scalar() (string, bool) {
	switch v.kind {
	case Null:
		return "null", true
	case Bool:
		return strconv.FormatBool(v.b), true
	case Number, String:
		return v.s, true
	}
	return "", false
}

// Equal reports whether v and o hold the same variant and contents.
// Numbers compare by literal text.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == o.b
	case Number, String:
		return v.s == o.s
	case SequenceKind:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case Mapping:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, x := range v.m {
			y, ok := o.m[k]
			if !ok || !x.Equal(y) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v to plain Go values: nil, bool, json.Number, string,
// []interface{} and map[string]interface{}.
func (v Value) Interface() interface{} {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return json.Number(v.s)
	case String:
		return v.s
	case SequenceKind:
		res := make([]interface{}, len(v.seq))
		for i, x := range v.seq {
			res[i] = x.Interface()
		}
		return res
	case Mapping:
		res := make(map[string]interface{}, len(v.m))
		for k, x := range v.m {
			res[k] = x.Interface()
		}
		return res
	}
	return nil
}

// MarshalJSON encodes v as JSON. Mapping keys are written in sorted order.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes any JSON value into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	x, err := decodeValue(data)
	if err != nil {
		return err
	}
	*v = x
	return nil
}

func (v Value) String() string {
	if s, ok := v.Scalar(); ok {
		if v.kind == String {
			return strconv.Quote(s)
		}
		return s
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s>", v.kind)
	}
	return string(b)
}

// fromInterface converts the output of a json.Decoder using UseNumber.
func fromInterface(x interface{}) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case string:
		return StringValue(t), nil
	case []interface{}:
		seq := make([]Value, len(t))
		for i, e := range t {
			v, err := fromInterface(e)
			if err != nil {
				return Value{}, err
			}
			seq[i] = v
		}
		return Value{kind: SequenceKind, seq: seq}, nil
	case map[string]interface{}:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := fromInterface(e)
			if err != nil {
				return Value{}, err
			}
			m[k] = v
		}
		return Value{kind: Mapping, m: m}, nil
	}
	return Value{}, fmt.Errorf("unexpected JSON type %T", x)
}
