package dynamic

import (
	"fmt"
	"math"
)

// numberLiteral matches json.Number and the number types of other JSON
// libraries.
type numberLiteral interface {
	String() string
	Int64() (int64, error)
	Float64() (float64, error)
}

// FromAny builds a Value from plain Go data, such as what generated SDK code
// keeps in map[string]interface{} fields.
func FromAny(x any) (Value, error) {
	return fromAny(x, "$")
}

func fromAny(x any, path string) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return *t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return fromUint(uint64(t), path)
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return fromUint(t, path)
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case []byte:
		return String(string(t)), nil
	case []Value:
		return Array(t...), nil
	case []any:
		arr := make([]Value, 0, len(t))
		for i, elem := range t {
			v, err := fromAny(elem, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, v)
		}
		return Value{kind: KindArray, arr: arr}, nil
	case map[string]Value:
		return Object(t), nil
	case map[string]string:
		obj := make(map[string]Value, len(t))
		for key, s := range t {
			obj[key] = String(s)
		}
		return Value{kind: KindObject, obj: obj}, nil
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for key, field := range t {
			v, err := fromAny(field, path+"."+key)
			if err != nil {
				return Value{}, err
			}
			obj[key] = v
		}
		return Value{kind: KindObject, obj: obj}, nil
	case numberLiteral:
		v, err := parseNumber(t.String())
		if err != nil {
			return Value{}, &EncodeError{Path: path, Err: err}
		}
		return v, nil
	default:
		return Value{}, &EncodeError{Path: path, Err: fmt.Errorf("%w: %T", ErrUnsupportedType, x)}
	}
}

func fromUint(u uint64, path string) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, &EncodeError{Path: path, Err: fmt.Errorf("%w: %d overflows int64", ErrUnsupportedNumber, u)}
	}

	return Int(int64(u)), nil
}

// ToAny converts v into plain Go data: nil, bool, int64, float64, string,
// []any or map[string]any.
func (v Value) ToAny() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		arr := make([]any, 0, len(v.arr))
		for _, elem := range v.arr {
			arr = append(arr, elem.ToAny())
		}
		return arr
	case KindObject:
		obj := make(map[string]any, len(v.obj))
		for key, field := range v.obj {
			obj[key] = field.ToAny()
		}
		return obj
	default:
		return nil
	}
}
