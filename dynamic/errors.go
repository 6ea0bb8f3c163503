package dynamic

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there is no JSON document to parse.
	ErrEmptyInput = errors.New("empty input")
	// ErrRootNotObject is returned when ToJSONString is given a non-object root.
	ErrRootNotObject = errors.New("root value must be an object")
	// ErrNotObject is returned when an object is required but another kind is given.
	ErrNotObject = errors.New("value is not an object")
	// ErrUnsupportedNumber is returned for numbers JSON cannot represent (NaN, ±Inf)
	// or that do not fit the target representation.
	ErrUnsupportedNumber = errors.New("unsupported number")
	// ErrInvalidKind is returned when a Value carries an unknown kind.
	ErrInvalidKind = errors.New("invalid value kind")
	// ErrUnsupportedType is returned by FromAny for Go types with no JSON counterpart.
	ErrUnsupportedType = errors.New("unsupported type")
)

// ParseError reports malformed JSON input.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse json: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EncodeError reports a value that could not be encoded.
// Path locates the offending value, "$" being the root.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode json at %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
