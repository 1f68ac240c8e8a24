// Package sysinfo reports a small host snapshot for the health endpoint.
// It uses gopsutil for cross-platform system telemetry.
package sysinfo

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Snapshot is what /api/health reports about the machine serving the page.
type Snapshot struct {
	Hostname      string  `json:"hostname"`
	OS            string  `json:"os"`
	GoVersion     string  `json:"go_version"`
	HostUptime    uint64  `json:"host_uptime_seconds"`
	// MemUsage is host memory in use, percent 0-100.
	MemUsage      float64 `json:"mem_usage"`
	ProcessRSS    uint64  `json:"process_rss_bytes"`
	ProcessUptime float64 `json:"process_uptime_seconds"`
}

var started = time.Now()

// Collect gathers the current snapshot. Individual probe failures leave the
// corresponding field zero.
func Collect() Snapshot {
	snap := Snapshot{
		OS:            detailedOS(),
		GoVersion:     runtime.Version(),
		ProcessUptime: time.Since(started).Seconds(),
	}

	if h, err := os.Hostname(); err == nil {
		snap.Hostname = h
	}
	if up, err := host.Uptime(); err == nil {
		snap.HostUptime = up
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemUsage = vm.UsedPercent
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			snap.ProcessRSS = mi.RSS
		}
	}
	return snap
}

// detailedOS returns a descriptive OS version string, or runtime.GOOS as fallback.
func detailedOS() string {
	info, err := host.Info()
	if err == nil && info.Platform != "" {
		if info.PlatformVersion != "" {
			return fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
		}
		return info.Platform
	}
	return runtime.GOOS
}
