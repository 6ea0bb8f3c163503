package dynamic

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToJSONString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		v        Value
		expected string
	}{
		{name: "empty object", v: Object(nil), expected: `{}`},
		{
			name: "keys are sorted",
			v: Object(map[string]Value{
				"b": Int(2),
				"a": Int(1),
				"c": Int(3),
			}),
			expected: `{"a":1,"b":2,"c":3}`,
		},
		{
			name: "every kind",
			v: Object(map[string]Value{
				"arr":   Array(Int(1), String("two"), Array()),
				"bool":  Bool(true),
				"float": Float(1.5),
				"int":   Int(-7),
				"null":  Null(),
				"obj":   Object(map[string]Value{"k": Bool(false)}),
				"str":   String("x"),
			}),
			expected: `{"arr":[1,"two",[]],"bool":true,"float":1.5,"int":-7,"null":null,"obj":{"k":false},"str":"x"}`,
		},
		{
			name:     "keys are escaped",
			v:        Object(map[string]Value{`say "hi"`: Null()}),
			expected: `{"say \"hi\"":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ToJSONString(tt.v)
			if err != nil {
				t.Fatalf("ToJSONString() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("ToJSONString() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestToJSONString_rootMustBeObject(t *testing.T) {
	t.Parallel()

	roots := []Value{Null(), Int(5), String("s"), Array(Object(nil)), Bool(true), Float(1)}
	for _, root := range roots {
		_, err := ToJSONString(root)

		var encodeErr *EncodeError
		if !errors.As(err, &encodeErr) {
			t.Fatalf("ToJSONString(%s) error = %v, want *EncodeError", root.Kind(), err)
		}
		if !errors.Is(err, ErrRootNotObject) {
			t.Errorf("ToJSONString(%s) error = %v, want %v", root.Kind(), err, ErrRootNotObject)
		}
		if encodeErr.Path != "$" {
			t.Errorf("Path = %q, want $", encodeErr.Path)
		}
	}
}

func TestAppendJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		v        Value
		expected string
	}{
		{name: "bare integer", v: Int(5), expected: `5`},
		{name: "null", v: Null(), expected: `null`},
		{name: "array root", v: Array(Null(), Bool(false)), expected: `[null,false]`},
		{name: "min int64", v: Int(math.MinInt64), expected: `-9223372036854775808`},
		{name: "fraction", v: Float(0.1), expected: `0.1`},
		{name: "integral float", v: Float(2), expected: `2.0`},
		{name: "zero float", v: Float(0), expected: `0.0`},
		{name: "negative float", v: Float(-0.25), expected: `-0.25`},
		{name: "large integral float", v: Float(1e20), expected: `100000000000000000000.0`},
		{name: "exponent above 1e21", v: Float(1e21), expected: `1e+21`},
		{name: "small float", v: Float(0.000001), expected: `0.000001`},
		{name: "exponent below 1e-6", v: Float(1e-7), expected: `1e-7`},
		{name: "exponent with fraction", v: Float(1.5e-10), expected: `1.5e-10`},
		{name: "plain string", v: String("tea"), expected: `"tea"`},
		{name: "quotes and backslashes", v: String(`a"b\c`), expected: `"a\"b\\c"`},
		{name: "short escapes", v: String("\b\f\n\r\t"), expected: `"\b\f\n\r\t"`},
		{name: "other control characters", v: String("\x00\x1f"), expected: `"\u0000\u001f"`},
		{name: "non-ascii is kept", v: String("日本"), expected: `"日本"`},
		{name: "invalid utf-8 is replaced", v: String("a\xffb"), expected: `"a\ufffdb"`},
		{name: "line separators", v: String("\xe2\x80\xa8\xe2\x80\xa9"), expected: `"\u2028\u2029"`},
		{name: "html is not escaped", v: String("<a&b>"), expected: `"<a&b>"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := AppendJSON(nil, tt.v)
			if err != nil {
				t.Fatalf("AppendJSON() error = %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("AppendJSON() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestAppendJSON_appendsToDst(t *testing.T) {
	t.Parallel()

	got, err := AppendJSON([]byte("prefix:"), Array(Int(1)))
	if err != nil {
		t.Fatalf("AppendJSON() error = %v", err)
	}
	if string(got) != "prefix:[1]" {
		t.Errorf("AppendJSON() = %s", got)
	}
}

func TestAppendJSON_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		v        Value
		wantErr  error
		wantPath string
	}{
		{
			name:     "nan in array",
			v:        Object(map[string]Value{"a": Array(Int(0), Float(math.NaN()))}),
			wantErr:  ErrUnsupportedNumber,
			wantPath: "$.a[1]",
		},
		{
			name:     "infinity",
			v:        Float(math.Inf(-1)),
			wantErr:  ErrUnsupportedNumber,
			wantPath: "$",
		},
		{
			name:     "unknown kind",
			v:        Object(map[string]Value{"x": {kind: Kind(99)}}),
			wantErr:  ErrInvalidKind,
			wantPath: "$.x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := AppendJSON(nil, tt.v)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AppendJSON() error = %v, want %v", err, tt.wantErr)
			}

			var encodeErr *EncodeError
			if !errors.As(err, &encodeErr) {
				t.Fatalf("AppendJSON() error = %T, want *EncodeError", err)
			}
			if encodeErr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", encodeErr.Path, tt.wantPath)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	original := Object(map[string]Value{
		"name":    String("line1\nline2 \"quoted\" \\ back"),
		"count":   Int(42),
		"neg":     Int(-9007199254740993),
		"ratio":   Float(0.125),
		"whole":   Float(3),
		"tiny":    Float(2.5e-9),
		"huge":    Float(6.02e23),
		"enabled": Bool(true),
		"missing": Null(),
		"items": Array(
			Int(1),
			String(""),
			Object(map[string]Value{"deep": Array(Array(), Object(nil), Null())}),
		),
		"empty": Object(nil),
		"ctrl":  String("\x01\x7f"),
	})

	encoded, err := ToJSONString(original)
	if err != nil {
		t.Fatalf("ToJSONString() error = %v", err)
	}

	decoded, err := ParseJSON(encoded)
	if err != nil {
		t.Fatalf("ParseJSON(%s) error = %v", encoded, err)
	}

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	reencoded, err := ToJSONString(decoded)
	if err != nil {
		t.Fatalf("ToJSONString() error = %v", err)
	}
	if reencoded != encoded {
		t.Errorf("encoding is not stable:\n%s\n%s", encoded, reencoded)
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	t.Parallel()

	got, err := Array(String("x")).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(got) != `["x"]` {
		t.Errorf("MarshalJSON() = %s", got)
	}

	if s := Object(map[string]Value{"a": Int(1)}).String(); s != `{"a":1}` {
		t.Errorf("String() = %s", s)
	}
}
