package dynamic

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mazrean/teautil/internal/pkg/json"
)

// ParseJSON parses a single JSON document into a Value.
// Any top-level kind is accepted. Empty input and malformed input both
// fail with a *ParseError.
func ParseJSON(text string) (Value, error) {
	return ParseJSONBytes([]byte(text))
}

// ParseJSONBytes is ParseJSON over a byte slice.
func ParseJSONBytes(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, &ParseError{Err: ErrEmptyInput}
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return Value{}, &ParseError{Err: err}
	}

	v, err := fromTree(tree)
	if err != nil {
		return Value{}, &ParseError{Err: err}
	}

	return v, nil
}

// fromTree converts the generic tree produced by the JSON library.
func fromTree(node any) (Value, error) {
	switch n := node.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(n), nil
	case string:
		return String(n), nil
	case numberLiteral:
		return parseNumber(n.String())
	case float64:
		return Float(n), nil
	case []any:
		arr := make([]Value, 0, len(n))
		for _, elem := range n {
			v, err := fromTree(elem)
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, v)
		}
		return Value{kind: KindArray, arr: arr}, nil
	case map[string]any:
		obj := make(map[string]Value, len(n))
		for key, field := range n {
			v, err := fromTree(field)
			if err != nil {
				return Value{}, err
			}
			obj[key] = v
		}
		return Value{kind: KindObject, obj: obj}, nil
	default:
		return Value{}, fmt.Errorf("unexpected decoded type %T", node)
	}
}

// parseNumber keeps integers as Int and falls back to Float for fractions,
// exponents and integers outside the int64 range.
func parseNumber(text string) (Value, error) {
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(i), nil
		}
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, fmt.Errorf("number %q: %w", text, ErrUnsupportedNumber)
	}

	return Float(f), nil
}

// UnmarshalJSON implements json.Unmarshaler so a Value can be embedded in
// other decoded structures.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSONBytes(data)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}
