package dynamic

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Value
	}{
		{name: "empty object", input: `{}`, expected: Object(nil)},
		{name: "empty array", input: `[]`, expected: Array()},
		{name: "null", input: `null`, expected: Null()},
		{name: "true", input: `true`, expected: Bool(true)},
		{name: "string", input: `"hello"`, expected: String("hello")},
		{name: "escaped string", input: `"a\"b\\c\ndA"`, expected: String("a\"b\\c\ndA")},
		{name: "integer", input: `-42`, expected: Int(-42)},
		{name: "float", input: `3.25`, expected: Float(3.25)},
		{name: "integral float keeps kind", input: `2.0`, expected: Float(2)},
		{name: "exponent is float", input: `1e3`, expected: Float(1000)},
		{name: "int64 max", input: `9223372036854775807`, expected: Int(9223372036854775807)},
		{name: "beyond int64 is float", input: `9223372036854775808`, expected: Float(9223372036854775808)},
		{name: "surrounding whitespace", input: " \n\t{} \n", expected: Object(nil)},
		{
			name:  "nested document",
			input: `{"name":"tea","tags":["a","b"],"count":3,"ratio":0.5,"ok":false,"none":null,"meta":{"inner":[{}]}}`,
			expected: Object(map[string]Value{
				"name":  String("tea"),
				"tags":  Array(String("a"), String("b")),
				"count": Int(3),
				"ratio": Float(0.5),
				"ok":    Bool(false),
				"none":  Null(),
				"meta": Object(map[string]Value{
					"inner": Array(Object(nil)),
				}),
			}),
		},
		{
			name:     "duplicate keys keep the last value",
			input:    `{"k":1,"k":2}`,
			expected: Object(map[string]Value{"k": Int(2)}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseJSON(tt.input)
			if err != nil {
				t.Fatalf("ParseJSON(%q) error = %v", tt.input, err)
			}

			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ParseJSON(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseJSON_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: "", wantErr: ErrEmptyInput},
		{name: "whitespace", input: " \n\t ", wantErr: ErrEmptyInput},
		{name: "not json", input: "not json"},
		{name: "unterminated object", input: `{"a":1`},
		{name: "unterminated string", input: `"abc`},
		{name: "invalid escape", input: `"\q"`},
		{name: "trailing comma", input: `[1,]`},
		{name: "trailing garbage", input: `{} x`},
		{name: "two documents", input: `{} {}`},
		{name: "leading zero", input: `01`},
		{name: "trailing nul", input: "{\"a\":1}\x00"},
		{name: "value after array", input: `[1] 2`},
		{name: "single quotes", input: `{'a':1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseJSON(tt.input)
			if err == nil {
				t.Fatalf("ParseJSON(%q) succeeded, want error", tt.input)
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("ParseJSON(%q) error = %T %v, want *ParseError", tt.input, err, err)
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseJSON(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValue_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var v Value
	if err := v.UnmarshalJSON([]byte(`{"a":[1,2.5]}`)); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}

	expected := Object(map[string]Value{"a": Array(Int(1), Float(2.5))})
	if diff := cmp.Diff(expected, v); diff != "" {
		t.Errorf("UnmarshalJSON() mismatch (-want +got):\n%s", diff)
	}

	if err := v.UnmarshalJSON([]byte(`{`)); err == nil {
		t.Error("UnmarshalJSON() of malformed input succeeded")
	}
}
