//go:build amd64 || arm64

package json // Package json provides a unified interface for JSON encoding and decoding operations

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/encoder"
)

const Library = "github.com/bytedance/sonic"

// Number is the literal form numbers are decoded into when number preservation is on.
// sonic produces encoding/json numbers.
type Number = stdjson.Number

// numberAPI keeps number literals intact so integers and floats can be told apart.
var numberAPI = sonic.Config{UseNumber: true}.Froze()

// Unmarshal decodes a single JSON document from data into v.
// Numbers inside interface values are decoded as Number.
// Trailing non-whitespace data is an error, whether sonic runs natively or
// falls back to encoding/json on newer toolchains.
func Unmarshal(data []byte, v any) error {
	dec := numberAPI.NewDecoder(bytes.NewReader(data))

	if err := dec.Decode(v); err != nil {
		return err
	}

	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid character after top-level value")
	}

	return nil
}

// Encoder represents a JSON encoder that utilizes the high-performance Sonic encoder for AMD64 architecture
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
	buf, err := encoder.Encode(v, 0)
	if err != nil {
		return err
	}

	_, err = e.writer.Write(append(buf, '\n'))
	return err
}
