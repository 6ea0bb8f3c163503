package io

import "io"

// EmptyReader stands in for an absent stream: reads hit EOF immediately and
// seeks always land on offset 0.
var EmptyReader io.ReadSeeker = emptyReader{}

type emptyReader struct{}

func (emptyReader) Read([]byte) (n int, err error) {
	return 0, io.EOF
}

func (emptyReader) Seek(int64, int) (int64, error) {
	return 0, nil
}
