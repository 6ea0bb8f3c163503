//go:build dev

// Package metrics records per-command samples in dev builds and dumps them as
// CSV when the process exits.
package metrics

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"sync"
	"time"
)

var (
	startTime = time.Now()
	registry  struct {
		sync.Mutex
		gauges []*Gauge
	}
)

// NewGauge registers a gauge. Its samples appear in WriteMetrics output.
func NewGauge(name string) *Gauge {
	gauge := &Gauge{name: name}

	registry.Lock()
	defer registry.Unlock()
	registry.gauges = append(registry.gauges, gauge)

	return gauge
}

// WriteMetrics writes one row per sample: gauge, label, value and the
// elapsed time since startup in nanoseconds. Rows are grouped by gauge name,
// and samples keep their recording order.
func WriteMetrics(w io.Writer) error {
	registry.Lock()
	gauges := slices.Clone(registry.gauges)
	registry.Unlock()

	slices.SortStableFunc(gauges, func(a, b *Gauge) int {
		return cmp.Compare(a.name, b.name)
	})

	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write([]string{"gauge", "label", "value", "elapsed_ns"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, gauge := range gauges {
		for _, s := range gauge.snapshot() {
			err := csvWriter.Write([]string{
				gauge.name,
				s.label,
				strconv.FormatFloat(s.value, 'f', -1, 64),
				strconv.FormatInt(s.elapsed.Nanoseconds(), 10),
			})
			if err != nil {
				return fmt.Errorf("write %s sample: %w", gauge.name, err)
			}
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush samples: %w", err)
	}

	return nil
}

type sample struct {
	label   string
	value   float64
	elapsed time.Duration
}

// Gauge collects labelled samples, such as a command name and its latency.
type Gauge struct {
	name    string
	mu      sync.Mutex
	samples []sample
}

func (g *Gauge) Set(value float64, label string) {
	elapsed := time.Since(startTime)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.samples = append(g.samples, sample{label: label, value: value, elapsed: elapsed})
}

func (g *Gauge) snapshot() []sample {
	g.mu.Lock()
	defer g.mu.Unlock()

	return slices.Clone(g.samples)
}

// Stopwatch runs f and records its duration in nanoseconds under label.
func (g *Gauge) Stopwatch(f func(), label string) {
	start := time.Now()
	f()
	g.Set(float64(time.Since(start).Nanoseconds()), label)
}
