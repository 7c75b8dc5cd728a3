// Package sysinfo reports facts about the running process and host, and
// parses browser User-Agent strings for the system-info widget.
package sysinfo

import (
	"os"
	"runtime"
	"runtime/debug"
	"time"
)

// Report is a point-in-time description of the process and host.
type Report struct {
	OS          string    `json:"os"`
	Arch        string    `json:"arch"`
	CPUs        int       `json:"cpus"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname,omitempty"`
	Goroutines  int       `json:"goroutines"`
	Module      string    `json:"module,omitempty"`
	Version     string    `json:"version,omitempty"`
	Memory      Memory    `json:"memory"`
	Uptime      string    `json:"uptime"`
	CollectedAt time.Time `json:"collected_at"`
}

// Memory holds the runtime memory statistics shown by the widget, in bytes.
type Memory struct {
	HeapAlloc  uint64 `json:"heap_alloc"`
	HeapSys    uint64 `json:"heap_sys"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
}

var processStart = time.Now()

// Collect gathers a Report. Hostname is left empty when the OS refuses it.
func Collect() Report {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	host, _ := os.Hostname()
	now := time.Now()

	r := Report{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		CPUs:       runtime.NumCPU(),
		GoVersion:  runtime.Version(),
		Hostname:   host,
		Goroutines: runtime.NumGoroutine(),
		Memory: Memory{
			HeapAlloc:  ms.HeapAlloc,
			HeapSys:    ms.HeapSys,
			TotalAlloc: ms.TotalAlloc,
			Sys:        ms.Sys,
			NumGC:      ms.NumGC,
		},
		Uptime:      now.Sub(processStart).Round(time.Second).String(),
		CollectedAt: now.UTC(),
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		r.Module = info.Main.Path
		r.Version = info.Main.Version
	}
	return r
}
