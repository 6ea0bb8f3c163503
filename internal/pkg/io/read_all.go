package io

import (
	"bytes"
	"fmt"
	"io"
)

// ReadAll reads r from its start to EOF.
// A nil reader reads as empty. Seekable readers are rewound first, so a
// stream that was partially consumed is still read whole. Pipes and other
// files that cannot report their offset are read from where they are.
func ReadAll(r io.Reader) ([]byte, error) {
	if r == nil {
		r = EmptyReader
	}

	if s, ok := r.(io.Seeker); ok {
		if offset, err := s.Seek(0, io.SeekCurrent); err == nil && offset != 0 {
			if _, err := s.Seek(0, io.SeekStart); err != nil {
				return nil, fmt.Errorf("rewind stream: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if sized, ok := r.(interface{ Len() int }); ok {
		buf.Grow(sized.Len())
	}

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}

	if buf.Len() == 0 {
		return []byte{}, nil
	}

	return buf.Bytes(), nil
}
