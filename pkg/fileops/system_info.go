package fileops

import (
	"os"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/filemanager-agent/filemanager-go/internal/models"
)

// GetServerInfo returns startup and last-execution bookkeeping.
func (e *Executor) GetServerInfo() models.ServerInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return models.ServerInfo{
		StartTime:    e.startTime,
		LastExecTime: e.lastExecTime,
		BasePath:     e.guard.Base(),
	}
}

// GetSystemStats returns process and disk statistics using gopsutil. Any
// probe failure degrades to zero values rather than an error.
func (e *Executor) GetSystemStats() models.SystemResources {
	var stats models.SystemResources

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		e.logger.Warnf("Failed to get process info: %v", err)
		return stats
	}

	if cpuPercent, err := proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpuPercent
	} else {
		e.logger.Warnf("Failed to get CPU percent: %v", err)
	}

	if memInfo, err := proc.MemoryInfo(); err == nil {
		stats.MemoryRSS = memInfo.RSS
	} else {
		e.logger.Warnf("Failed to get memory info: %v", err)
	}

	if memPercent, err := proc.MemoryPercent(); err == nil {
		stats.MemoryPercent = memPercent
	} else {
		e.logger.Warnf("Failed to get memory percent: %v", err)
	}

	if diskUsage, err := disk.Usage(e.guard.Base()); err == nil {
		stats.DiskTotal = diskUsage.Total
		stats.DiskUsed = diskUsage.Used
		stats.DiskFree = diskUsage.Free
		stats.DiskPercent = diskUsage.UsedPercent
	} else {
		e.logger.Warnf("Failed to get disk usage: %v", err)
	}

	return stats
}
