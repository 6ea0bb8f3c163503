//go:build dev

package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/felixge/fgprof"
	"github.com/mazrean/teautil/internal/metrics"
)

type DevFlag struct {
	CPUProf     string       `kong:"optional,help='CPU profile output file',type='path'"`
	cpuProfFile *os.File     `kong:"-"`
	MemProf     string       `kong:"optional,help='Memory profile output file',type='path'"`
	Metrics     string       `kong:"optional,help='Metrics CSV output file',type='path'"`
	FgProf      string       `kong:"optional,help='fgprof output file',type='path'"`
	fgprofFile  *os.File     `kong:"-"`
	fgprofStop  func() error `kong:"-"`
}

func (d *DevFlag) StartProfiling() error {
	if d.CPUProf != "" {
		f, err := os.Create(d.CPUProf)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile file: %w", err)
		}
		d.cpuProfFile = f

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("failed to start CPU profiling: %w", err)
		}
	}

	if d.FgProf != "" {
		f, err := os.Create(d.FgProf)
		if err != nil {
			return fmt.Errorf("failed to create fgprof file: %w", err)
		}
		d.fgprofFile = f

		d.fgprofStop = fgprof.Start(f, fgprof.FormatPprof)
	}

	if d.Metrics != "" {
		if err := metrics.InitProcStat(); err != nil {
			return fmt.Errorf("failed to initialize proc stat: %w", err)
		}
	}

	return nil
}

func (d *DevFlag) StopProfiling() error {
	var errs []error

	if d.cpuProfFile != nil {
		pprof.StopCPUProfile()
		errs = append(errs, d.cpuProfFile.Close())
	}

	if d.fgprofStop != nil {
		if err := d.fgprofStop(); err != nil {
			errs = append(errs, fmt.Errorf("stop fgprof: %w", err))
		}
		errs = append(errs, d.fgprofFile.Close())
	}

	if d.MemProf != "" {
		runtime.GC()
		errs = append(errs, writeFile(d.MemProf, func(f *os.File) error {
			return pprof.WriteHeapProfile(f)
		}))
	}

	if d.Metrics != "" {
		errs = append(errs, writeFile(d.Metrics, func(f *os.File) error {
			return metrics.WriteMetrics(f)
		}))
	}

	return errors.Join(errs...)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		return errors.Join(fmt.Errorf("write %s: %w", path, err), f.Close())
	}

	return f.Close()
}
