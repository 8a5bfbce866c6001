// Package sysinfo describes the machine a benchmark ran on, so exported results can
// be compared with some idea of the hardware behind them.
package sysinfo

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Host is embedded in JSON and YAML exports. Fields the platform can't report are
// left empty.
type Host struct {
	OS              string `json:"os" yaml:"os"`
	Arch            string `json:"arch" yaml:"arch"`
	Platform        string `json:"platform,omitempty" yaml:"platform,omitempty"`
	PlatformVersion string `json:"platform_version,omitempty" yaml:"platform_version,omitempty"`
	KernelVersion   string `json:"kernel_version,omitempty" yaml:"kernel_version,omitempty"`
	Hostname        string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	// Virtualization is e.g. docker or kvm when running as a guest.
	Virtualization string `json:"virtualization,omitempty" yaml:"virtualization,omitempty"`

	CPUModel   string `json:"cpu_model,omitempty" yaml:"cpu_model,omitempty"`
	CPUCores   int    `json:"cpu_cores,omitempty" yaml:"cpu_cores,omitempty"`
	CPUThreads int    `json:"cpu_threads,omitempty" yaml:"cpu_threads,omitempty"`
	// MemoryTotal is in bytes.
	MemoryTotal uint64 `json:"memory_total,omitempty" yaml:"memory_total,omitempty"`
	// Load1 is the one minute load average when collected. A busy
	// machine makes for noisy results.
	Load1 float64 `json:"load1,omitempty" yaml:"load1,omitempty"`
}

// Collect gathers the host description. Individual probes failing is not an error,
// only a cancelled ctx is.
func Collect(ctx context.Context) (*Host, error) {
	info := &Host{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if hostInfo, err := host.InfoWithContext(ctx); err == nil {
		info.Platform = hostInfo.Platform
		info.PlatformVersion = hostInfo.PlatformVersion
		info.KernelVersion = hostInfo.KernelVersion
		info.Hostname = hostInfo.Hostname
		if hostInfo.VirtualizationRole == "guest" {
			info.Virtualization = hostInfo.VirtualizationSystem
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cpuInfo, err := cpu.InfoWithContext(ctx); err == nil && len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
	}
	if cores, err := cpu.CountsWithContext(ctx, false); err == nil {
		info.CPUCores = cores
	}
	if threads, err := cpu.CountsWithContext(ctx, true); err == nil {
		info.CPUThreads = threads
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if memInfo, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryTotal = memInfo.Total
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		info.Load1 = avg.Load1
	}

	return info, nil
}
