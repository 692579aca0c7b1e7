//go:build windows

package hardware

import (
	"context"
	"strconv"

	"github.com/yusufpapurcu/wmi"
)

type win32Processor struct {
	CurrentClockSpeed uint32
	MaxClockSpeed     uint32
	L2CacheSize       uint32
	L3CacheSize       uint32
}

type win32CacheMemory struct {
	Level         uint16
	InstalledSize uint32
}

// platformCPU queries Win32_Processor for live clock speeds and
// Win32_CacheMemory for the primary cache size.
func platformCPU(_ context.Context) (cpuPlatform, error) {
	var procs []win32Processor
	q := "SELECT CurrentClockSpeed, MaxClockSpeed, L2CacheSize, L3CacheSize FROM Win32_Processor"
	if err := wmi.Query(q, &procs); err != nil {
		return cpuPlatform{}, err
	}

	var plat cpuPlatform
	if len(procs) > 0 {
		plat.CurrentMHz = float64(procs[0].CurrentClockSpeed)
		plat.CacheL2 = formatCacheKB(procs[0].L2CacheSize)
		plat.CacheL3 = formatCacheKB(procs[0].L3CacheSize)
	}

	// CIM level 3 marks the primary (L1) cache.
	var caches []win32CacheMemory
	if err := wmi.Query("SELECT Level, InstalledSize FROM Win32_CacheMemory", &caches); err == nil {
		for _, cm := range caches {
			if cm.Level == 3 && plat.CacheL1 == "" {
				plat.CacheL1 = formatCacheKB(cm.InstalledSize)
			}
		}
	}

	return plat, nil
}

func formatCacheKB(kb uint32) string {
	if kb == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(kb), 10) + " KB"
}
