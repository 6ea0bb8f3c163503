package dynamic

import (
	"fmt"
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"
)

// maxSafeInteger is the largest integer a float64 holds without rounding.
const maxSafeInteger = 1 << 53

// ToProto converts v into a google.protobuf.Value.
// Protobuf numbers are doubles, so Int values beyond ±2^53 are rejected
// rather than silently rounded.
func (v Value) ToProto() (*structpb.Value, error) {
	return toProto(v, "$")
}

func toProto(v Value, path string) (*structpb.Value, error) {
	switch v.kind {
	case KindNull:
		return structpb.NewNullValue(), nil
	case KindBool:
		return structpb.NewBoolValue(v.b), nil
	case KindInt:
		if v.i > maxSafeInteger || v.i < -maxSafeInteger {
			return nil, &EncodeError{Path: path, Err: fmt.Errorf("%w: %d is not representable as a double", ErrUnsupportedNumber, v.i)}
		}
		return structpb.NewNumberValue(float64(v.i)), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, &EncodeError{Path: path, Err: ErrUnsupportedNumber}
		}
		return structpb.NewNumberValue(v.f), nil
	case KindString:
		return structpb.NewStringValue(v.s), nil
	case KindArray:
		list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(v.arr))}
		for i, elem := range v.arr {
			pv, err := toProto(elem, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			list.Values = append(list.Values, pv)
		}
		return structpb.NewListValue(list), nil
	case KindObject:
		st := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(v.obj))}
		for key, field := range v.obj {
			pv, err := toProto(field, path+"."+key)
			if err != nil {
				return nil, err
			}
			st.Fields[key] = pv
		}
		return structpb.NewStructValue(st), nil
	default:
		return nil, &EncodeError{Path: path, Err: ErrInvalidKind}
	}
}

// FromProto converts a google.protobuf.Value into a Value.
// Integral numbers within ±2^53 become Int, other numbers Float.
// A nil message or one with no kind set is null.
func FromProto(pv *structpb.Value) Value {
	switch k := pv.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return Bool(k.BoolValue)
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if f == math.Trunc(f) && math.Abs(f) <= maxSafeInteger {
			return Int(int64(f))
		}
		return Float(f)
	case *structpb.Value_StringValue:
		return String(k.StringValue)
	case *structpb.Value_ListValue:
		elems := k.ListValue.GetValues()
		arr := make([]Value, 0, len(elems))
		for _, elem := range elems {
			arr = append(arr, FromProto(elem))
		}
		return Value{kind: KindArray, arr: arr}
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		obj := make(map[string]Value, len(fields))
		for key, field := range fields {
			obj[key] = FromProto(field)
		}
		return Value{kind: KindObject, obj: obj}
	default:
		return Null()
	}
}
