//go:build dev

package metrics

import (
	"fmt"
	"log"
	"time"

	"github.com/prometheus/procfs"
)

var (
	cpuAllGauge  = NewGauge("cpu_all")
	cpuSelfGauge = NewGauge("cpu_self")
	memAllGauge  = NewGauge("mem_all")
	memSelfGauge = NewGauge("mem_self")
)

// InitProcStat samples host and process CPU and memory usage every 100ms
// until the process exits.
func InitProcStat() error {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return fmt.Errorf("create procfs: %w", err)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	go func() {
		for range ticker.C {
			for _, sample := range []func(procfs.FS) error{getCPUAllStat, getMemAllStat, getSelfStat} {
				if err := sample(fs); err != nil {
					log.Printf("failed to get stat: %v", err)
				}
			}
		}
	}()

	return nil
}

func getCPUAllStat(fs procfs.FS) error {
	stat, err := fs.Stat()
	if err != nil {
		return fmt.Errorf("get stat: %w", err)
	}

	total := stat.CPUTotal
	for label, value := range map[string]float64{
		"user":    total.User,
		"system":  total.System,
		"idle":    total.Idle,
		"iowait":  total.Iowait,
		"nice":    total.Nice,
		"irq":     total.IRQ,
		"softirq": total.SoftIRQ,
		"steal":   total.Steal,
	} {
		cpuAllGauge.Set(value, label)
	}

	return nil
}

func getMemAllStat(fs procfs.FS) error {
	mem, err := fs.Meminfo()
	if err != nil {
		return fmt.Errorf("get meminfo: %w", err)
	}

	for label, value := range map[string]*uint64{
		"total":   mem.MemTotal,
		"free":    mem.MemFree,
		"buffers": mem.Buffers,
		"cached":  mem.Cached,
		"slab":    mem.Slab,
	} {
		if value != nil {
			memAllGauge.Set(float64(*value), label)
		}
	}

	return nil
}

func getSelfStat(fs procfs.FS) error {
	proc, err := fs.Self()
	if err != nil {
		return fmt.Errorf("get stat: %w", err)
	}

	stat, err := proc.Stat()
	if err != nil {
		return fmt.Errorf("get stat: %w", err)
	}

	cpuSelfGauge.Set(float64(stat.CPUTime()), "total")
	memSelfGauge.Set(float64(stat.ResidentMemory()), "resident")
	memSelfGauge.Set(float64(stat.VirtualMemory()), "virtual")

	return nil
}
