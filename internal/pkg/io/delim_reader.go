package io

import (
	"bytes"
	"errors"
	"io"
)

// DelimReader splits a stream into delimiter-terminated segments.
// Each segment reads until io.EOF; Next moves on to the following one.
// Empty segments are skipped, so runs of delimiters act as one.
type DelimReader struct {
	r     io.Reader
	delim byte
	chunk []byte
	// pending holds bytes read from r but not yet handed out. It aliases chunk.
	pending []byte
	started bool
	ended   bool
	eof     bool
}

func NewDelimReader(r io.Reader, delim byte) *DelimReader {
	return &DelimReader{r: r, delim: delim, chunk: make([]byte, 1024)}
}

func (d *DelimReader) fill() error {
	if len(d.pending) > 0 || d.eof {
		return nil
	}

	n, err := d.r.Read(d.chunk)
	d.pending = d.chunk[:n]
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return err
		}
		d.eof = true
	}

	return nil
}

func (d *DelimReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for !d.ended {
		if err := d.fill(); err != nil {
			return 0, err
		}
		if len(d.pending) == 0 {
			if d.eof {
				d.ended = true
			}
			continue
		}

		idx := bytes.IndexByte(d.pending, d.delim)
		if idx == 0 {
			d.pending = d.pending[1:]
			if d.started {
				d.ended = true
			}
			continue
		}

		segment := d.pending
		if idx > 0 {
			segment = d.pending[:idx]
		}
		n := copy(p, segment)
		d.pending = d.pending[n:]
		d.started = true

		return n, nil
	}

	return 0, io.EOF
}

// Next prepares the reader for the next segment. The rest of a partially
// read segment is discarded. It returns io.EOF once only delimiters remain.
func (d *DelimReader) Next() error {
	if d.started && !d.ended {
		if _, err := io.Copy(io.Discard, d); err != nil {
			return err
		}
	}

	d.started = false
	d.ended = false

	for {
		if err := d.fill(); err != nil {
			return err
		}
		if len(d.pending) == 0 {
			if d.eof {
				return io.EOF
			}
			continue
		}
		if d.pending[0] != d.delim {
			return nil
		}
		d.pending = d.pending[1:]
	}
}
