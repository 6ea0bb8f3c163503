package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/mazrean/teautil/dynamic"
	"github.com/mazrean/teautil/internal/config"
	"github.com/mazrean/teautil/internal/metrics"
	"github.com/mazrean/teautil/util"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/types/known/structpb"
)

const stdinName = "-"

var formatGauge = metrics.NewGauge("format_duration")

// runFormat re-encodes every input and writes the results in input order.
// Proto documents are size-delimited structpb.Value messages.
func runFormat(ctx context.Context, cmd *config.FormatCmd, stdin io.Reader, stdout io.Writer) error {
	names := cmd.Files
	if len(names) == 0 {
		names = []string{stdinName}
	}

	// stdin is read once and shared by every "-" argument
	var stdinData []byte
	if slices.Contains(names, stdinName) {
		data, err := util.ReadAsBytes(stdin)
		if err != nil {
			return fmt.Errorf("format %s: %w", stdinName, err)
		}
		stdinData = data
	}

	outputs := make([][]byte, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	if cmd.Concurrency > 0 {
		eg.SetLimit(cmd.Concurrency)
	}
	for i, name := range names {
		eg.Go(func() (err error) {
			if err := ctx.Err(); err != nil {
				return err
			}

			formatGauge.Stopwatch(func() {
				outputs[i], err = formatSource(name, cmd, stdinData)
			}, name)
			if err != nil {
				return fmt.Errorf("format %s: %w", name, err)
			}

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, output := range outputs {
		if _, err := stdout.Write(output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return nil
}

func formatSource(name string, cmd *config.FormatCmd, stdin []byte) ([]byte, error) {
	data, err := readSource(name, stdin)
	if err != nil {
		return nil, err
	}

	v, err := decodeDocument(data, cmd.Input)
	if err != nil {
		return nil, err
	}

	return encodeDocument(v, cmd.Output)
}

func readSource(name string, stdin []byte) (data []byte, err error) {
	if name == stdinName {
		return stdin, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(name, ".zst") {
		zr := zstd.NewReader(f)
		defer func() {
			if closeErr := zr.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close zstd reader: %w", closeErr)
			}
		}()
		r = zr
	}

	return util.ReadAsBytes(r)
}

func decodeDocument(data []byte, encoding string) (dynamic.Value, error) {
	switch encoding {
	case "proto":
		var pv structpb.Value
		if err := protodelim.UnmarshalFrom(bytes.NewReader(data), &pv); err != nil {
			return dynamic.Value{}, fmt.Errorf("unmarshal proto: %w", err)
		}
		return dynamic.FromProto(&pv), nil
	default:
		return dynamic.ParseJSONBytes(data)
	}
}

func encodeDocument(v dynamic.Value, encoding string) ([]byte, error) {
	switch encoding {
	case "proto":
		pv, err := v.ToProto()
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if _, err := protodelim.MarshalTo(&buf, pv); err != nil {
			return nil, fmt.Errorf("marshal proto: %w", err)
		}
		return buf.Bytes(), nil
	default:
		out, err := dynamic.AppendJSON(nil, v)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}
}
