package api

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/annel0/dungeon-gen/internal/world"
)

// ServerInfo ответ /api/server: процесс и загруженные миры
type ServerInfo struct {
	Uptime        string              `json:"uptime"`
	UptimeSeconds int64               `json:"uptime_seconds"`
	MaxLevel      int                 `json:"max_level"`
	Worlds        world.RegistryStats `json:"worlds"`
	HeapMB        float64             `json:"heap_mb"`
	RSSMB         float64             `json:"rss_mb,omitempty"`
	CPUPercent    float64             `json:"cpu_percent"`
	Goroutines    int                 `json:"goroutines"`
}

// ServerMetrics собирает ServerInfo. Процесс открывается один раз, CPU считается между вызовами.
type ServerMetrics struct {
	startTime time.Time
	proc      *process.Process // nil, если gopsutil не видит процесс
}

func NewServerMetrics() *ServerMetrics {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
	}
	return &ServerMetrics{startTime: time.Now(), proc: proc}
}

// Collect снимает показатели процесса и реестра миров
func (sm *ServerMetrics) Collect(reg *world.Registry) (ServerInfo, error) {
	uptime := time.Since(sm.startTime)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	info := ServerInfo{
		Uptime:        formatUptime(uptime),
		UptimeSeconds: int64(uptime.Seconds()),
		MaxLevel:      reg.MaxLevel(),
		Worlds:        reg.Stats(),
		HeapMB:        float64(mem.HeapAlloc) / 1024 / 1024,
		Goroutines:    runtime.NumGoroutine(),
	}

	if sm.proc == nil {
		return info, fmt.Errorf("process stats unavailable")
	}
	if rss, err := sm.proc.MemoryInfo(); err == nil {
		info.RSSMB = float64(rss.RSS) / 1024 / 1024
	}
	cpuPercent, err := sm.proc.CPUPercent()
	if err != nil {
		return info, err
	}
	info.CPUPercent = cpuPercent
	return info, nil
}

func formatUptime(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}
