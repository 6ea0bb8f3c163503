//go:build !amd64 && !arm64

// This file is used when building for non-AMD64 architectures, utilizing the go-json library for JSON operations

package json // Package json provides a unified interface for JSON encoding and decoding operations

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

const Library = "github.com/goccy/go-json"

// Number is the literal form numbers are decoded into when number preservation is on.
type Number = json.Number

// Unmarshal decodes a single JSON document from data into v.
// Numbers inside interface values are decoded as Number.
// Trailing non-whitespace data is an error.
func Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return err
	}

	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid character after top-level value")
	}

	return nil
}

// Encoder represents a JSON encoder that uses go-json library for non-AMD64 architectures
type Encoder struct {
	writer io.Writer
}

// NewEncoder creates a new JSON encoder that wraps the provided io.Writer
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		writer: w,
	}
}

// Encode writes v as one line of JSON.
// The whole line is written with a single Write call.
func (e *Encoder) Encode(v interface{}) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = e.writer.Write(append(buf, '\n'))
	return err
}
