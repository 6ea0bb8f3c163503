// Package dynamic provides a dynamically typed JSON value and a codec for it.
//
// A Value is a tagged union over the JSON kinds. Values are built either by
// ParseJSON or by the constructors in this package, and are treated as
// immutable afterwards: accessors hand out copies of containers.
package dynamic

import (
	"fmt"
	"maps"
	"slices"
)

// Kind is the variant a Value currently holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is one JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array returns an array holding a copy of elems.
// Array() is the empty array, which is not null.
func Array(elems ...Value) Value {
	arr := make([]Value, len(elems))
	copy(arr, elems)

	return Value{kind: KindArray, arr: arr}
}

// Object returns an object holding a copy of fields.
// Object(nil) is the empty object, which is not null.
func Object(fields map[string]Value) Value {
	obj := make(map[string]Value, len(fields))
	maps.Copy(obj, fields)

	return Value{kind: KindObject, obj: obj}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// Elems returns a copy of the array elements, or nil if v is not an array.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}

	return slices.Clone(v.arr)
}

// Fields returns a copy of the object fields, or nil if v is not an object.
func (v Value) Fields() map[string]Value {
	if v.kind != KindObject {
		return nil
	}

	return maps.Clone(v.obj)
}

// Keys returns the object keys in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}

	return slices.Sorted(maps.Keys(v.obj))
}

// Len returns the number of elements of an array or fields of an object, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Index returns the i-th array element. ok is false when v is not an array
// or i is out of range.
func (v Value) Index(i int) (elem Value, ok bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}

	return v.arr[i], true
}

// Get returns the field stored under key. ok is false when v is not an
// object or has no such field.
func (v Value) Get(key string) (field Value, ok bool) {
	if v.kind != KindObject {
		return Value{}, false
	}

	field, ok = v.obj[key]
	return field, ok
}

// Equal reports whether v and other are structurally equal.
// Kinds must match exactly, so Int(1) and Float(1) differ. NaN is never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		return slices.EqualFunc(v.arr, other.arr, Value.Equal)
	case KindObject:
		return maps.EqualFunc(v.obj, other.obj, Value.Equal)
	default:
		return false
	}
}

// String renders v for debugging. Use ToJSONString or AppendJSON for JSON output.
func (v Value) String() string {
	buf, err := AppendJSON(nil, v)
	if err != nil {
		return fmt.Sprintf("<%s: %v>", v.kind, err)
	}

	return string(buf)
}
