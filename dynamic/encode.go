package dynamic

import (
	"math"
	"slices"
	"strconv"
	"unicode/utf8"
)

// ToJSONString encodes an object-rooted Value as compact JSON.
// A root of any other kind fails with ErrRootNotObject.
func ToJSONString(v Value) (string, error) {
	if v.kind != KindObject {
		return "", &EncodeError{Path: "$", Err: ErrRootNotObject}
	}

	buf, err := AppendJSON(nil, v)
	if err != nil {
		return "", err
	}

	return string(buf), nil
}

// AppendJSON appends the compact JSON encoding of v to dst.
// Unlike ToJSONString it accepts any root kind. Object keys are written in
// sorted order so equal values always encode to the same bytes.
func AppendJSON(dst []byte, v Value) ([]byte, error) {
	return appendValue(dst, v, "$")
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return AppendJSON(nil, v)
}

func appendValue(dst []byte, v Value, path string) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...), nil
	case KindBool:
		return strconv.AppendBool(dst, v.b), nil
	case KindInt:
		return strconv.AppendInt(dst, v.i, 10), nil
	case KindFloat:
		buf, ok := appendFloat(dst, v.f)
		if !ok {
			return nil, &EncodeError{Path: path, Err: ErrUnsupportedNumber}
		}
		return buf, nil
	case KindString:
		return appendString(dst, v.s), nil
	case KindArray:
		dst = append(dst, '[')
		for i, elem := range v.arr {
			if i != 0 {
				dst = append(dst, ',')
			}

			var err error
			dst, err = appendValue(dst, elem, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case KindObject:
		keys := make([]string, 0, len(v.obj))
		for key := range v.obj {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		dst = append(dst, '{')
		for i, key := range keys {
			if i != 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, key)
			dst = append(dst, ':')

			var err error
			dst, err = appendValue(dst, v.obj[key], path+"."+key)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	default:
		return nil, &EncodeError{Path: path, Err: ErrInvalidKind}
	}
}

// appendFloat writes the shortest representation that parses back to f.
// Plain decimal notation is used for 1e-6 <= |f| < 1e21, exponent notation
// otherwise. Integral values get a trailing ".0" so they stay floats.
func appendFloat(dst []byte, f float64) ([]byte, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return dst, false
	}

	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if format == 'e' {
		// 1e-07 -> 1e-7
		n := len(dst)
		if n-start >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
		return dst, true
	}

	if !slices.Contains(dst[start:], '.') {
		dst = append(dst, '.', '0')
	}

	return dst, true
}

const hex = "0123456789abcdef"

// appendString writes s as a quoted JSON string.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"':
				dst = append(dst, '\\', '"')
			case c == '\\':
				dst = append(dst, '\\', '\\')
			case c == '\b':
				dst = append(dst, '\\', 'b')
			case c == '\f':
				dst = append(dst, '\\', 'f')
			case c == '\n':
				dst = append(dst, '\\', 'n')
			case c == '\r':
				dst = append(dst, '\\', 'r')
			case c == '\t':
				dst = append(dst, '\\', 't')
			case c < 0x20:
				dst = append(dst, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xF])
			default:
				dst = append(dst, c)
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			dst = append(dst, `\ufffd`...)
		case r == '\u2028' || r == '\u2029':
			dst = append(dst, '\\', 'u', '2', '0', '2', hex[r&0xF])
		default:
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}

	return append(dst, '"')
}
