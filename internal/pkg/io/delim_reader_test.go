package io

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func readSegments(t *testing.T, dr *DelimReader) []string {
	t.Helper()

	var segments []string
	for {
		err := dr.Next()
		if errors.Is(err, io.EOF) {
			return segments
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}

		b, err := io.ReadAll(dr)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		segments = append(segments, string(b))
	}
}

func TestDelimReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		oneByte  bool
		expected []string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "single line without delimiter",
			input:    `{"ID":1}`,
			expected: []string{`{"ID":1}`},
		},
		{
			name:     "lines",
			input:    "a\nbb\nccc\n",
			expected: []string{"a", "bb", "ccc"},
		},
		{
			name:     "blank lines are skipped",
			input:    "\n\na\n\n\nb\n\n",
			expected: []string{"a", "b"},
		},
		{
			name:     "only delimiters",
			input:    "\n\n\n",
			expected: nil,
		},
		{
			name:     "one byte reads",
			input:    "first\n\nsecond\nthird",
			oneByte:  true,
			expected: []string{"first", "second", "third"},
		},
		{
			name:     "segment longer than the internal chunk",
			input:    strings.Repeat("x", 3000) + "\n" + "y",
			expected: []string{strings.Repeat("x", 3000), "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var r io.Reader = strings.NewReader(tt.input)
			if tt.oneByte {
				r = iotest.OneByteReader(r)
			}

			got := readSegments(t, NewDelimReader(r, '\n'))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDelimReader_NextDiscardsRest(t *testing.T) {
	t.Parallel()

	dr := NewDelimReader(bytes.NewBufferString("abcdef\nghi\n"), '\n')
	if err := dr.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	buf := make([]byte, 2)
	n, err := dr.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(buf[:n]) != "ab" {
		t.Fatalf("Read() = %q, want %q", buf[:n], "ab")
	}

	if err := dr.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	rest, err := io.ReadAll(dr)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(rest) != "ghi" {
		t.Errorf("second segment = %q, want %q", rest, "ghi")
	}
}

func TestDelimReader_ReadError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("broken pipe")
	dr := NewDelimReader(iotest.ErrReader(wantErr), '\n')

	if err := dr.Next(); !errors.Is(err, wantErr) {
		t.Errorf("Next() error = %v, want %v", err, wantErr)
	}
}
