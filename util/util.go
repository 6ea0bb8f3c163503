// Package util is the helper surface generated SDK clients call into:
// JSON parsing and serialization over dynamic values, byte/string
// conversion, URL and form encoding, and whole-stream readers.
//
// Optional arguments are pointers or nil-able slices and maps, matching how
// generated code passes them; an absent argument yields an empty result.
package util

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/mazrean/teautil/dynamic"
	myio "github.com/mazrean/teautil/internal/pkg/io"
)

// ToBytes returns the UTF-8 bytes of s, or an empty slice when s is nil.
func ToBytes(s *string) []byte {
	if s == nil {
		return []byte{}
	}

	return []byte(*s)
}

// ToString returns b as a string, or "" when b is nil.
// Invalid UTF-8 is kept byte for byte.
func ToString(b []byte) string {
	return string(b)
}

// ParseJSON parses the JSON document in s. A nil s is empty input and fails
// like any other empty document.
func ParseJSON(s *string) (dynamic.Value, error) {
	if s == nil {
		return dynamic.ParseJSON("")
	}

	return dynamic.ParseJSON(*s)
}

// ToJSONString encodes an object-rooted value. A nil v encodes as "{}".
func ToJSONString(v *dynamic.Value) (string, error) {
	if v == nil {
		return "{}", nil
	}

	return dynamic.ToJSONString(*v)
}

const upperHex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// URLEncode percent-encodes every byte of s outside the RFC 3986 unreserved
// set, using uppercase hex digits.
func URLEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperHex[c>>4])
		sb.WriteByte(upperHex[c&0xF])
	}

	return sb.String()
}

// ToFormString serializes fields as key=value pairs joined with '&', in key
// order. Values are URL-encoded, keys are written as given. Strings contribute
// their raw text, other scalars their JSON text, arrays and objects their
// compact JSON. Null fields are left out.
func ToFormString(fields map[string]dynamic.Value) string {
	if len(fields) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(fields))
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		field := fields[key]
		if field.IsNull() {
			continue
		}

		pairs = append(pairs, key+"="+URLEncode(formText(field)))
	}

	return strings.Join(pairs, "&")
}

func formText(v dynamic.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}

	buf, err := dynamic.AppendJSON(nil, v)
	if err != nil {
		// NaN and infinities have no JSON text
		if f, ok := v.AsFloat(); ok {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return ""
	}

	return string(buf)
}

// AnyifyMapValue wraps every value of m as a dynamic string. The result is
// never nil.
func AnyifyMapValue(m map[string]string) map[string]dynamic.Value {
	data := make(map[string]dynamic.Value, len(m))
	for key, s := range m {
		data[key] = dynamic.String(s)
	}

	return data
}

// ToArray wraps an object into a one-element slice. Null yields an empty
// slice; any other kind is an error.
func ToArray(v dynamic.Value) ([]map[string]dynamic.Value, error) {
	switch v.Kind() {
	case dynamic.KindNull:
		return []map[string]dynamic.Value{}, nil
	case dynamic.KindObject:
		return []map[string]dynamic.Value{v.Fields()}, nil
	default:
		return nil, fmt.Errorf("to array: %s: %w", v.Kind(), dynamic.ErrNotObject)
	}
}

// ReadAsBytes reads r from its start to EOF. A nil r reads as empty.
func ReadAsBytes(r io.Reader) ([]byte, error) {
	return myio.ReadAll(r)
}

// ReadAsString reads r to EOF and returns the content as a string.
func ReadAsString(r io.Reader) (string, error) {
	b, err := ReadAsBytes(r)
	if err != nil {
		return "", err
	}

	return ToString(b), nil
}

// ReadAsJSON reads r to EOF and parses the content as one JSON document.
func ReadAsJSON(r io.Reader) (dynamic.Value, error) {
	b, err := ReadAsBytes(r)
	if err != nil {
		return dynamic.Value{}, err
	}

	return dynamic.ParseJSONBytes(b)
}
