package hardware

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"go.uber.org/zap"
)

type cpuInfo struct {
	Name         string
	VendorID     string
	Architecture string
	Bits         int
	Cores        int
	Threads      int
	CurrentMHz   float64
	CacheL1      string
	CacheL2      string
	CacheL3      string
	Flags        []string
}

// cpuPlatform holds fields only an OS-specific probe can supply.
type cpuPlatform struct {
	CurrentMHz float64
	CacheL1    string
	CacheL2    string
	CacheL3    string
}

type cpuCollector struct {
	log *zap.Logger
}

func newCPUCollector(log *zap.Logger) *cpuCollector {
	return &cpuCollector{log: log.Named("cpu")}
}

func (c *cpuCollector) Domain() Domain { return DomainCPU }

func (c *cpuCollector) Summary(ctx context.Context) (string, error) {
	info, err := c.probe(ctx)
	if err != nil {
		return "", err
	}
	return renderCPUSummary(info), nil
}

func (c *cpuCollector) Details(ctx context.Context) (string, error) {
	info, err := c.probe(ctx)
	if err != nil {
		return "", err
	}
	return renderCPUDetails(info), nil
}

func (c *cpuCollector) probe(ctx context.Context) (cpuInfo, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return cpuInfo{}, classify(DomainCPU, fmt.Errorf("cpu info: %w", err))
	}
	if len(infos) == 0 {
		return cpuInfo{}, classify(DomainCPU, fmt.Errorf("no processors reported"))
	}

	info := cpuInfo{
		Name:       strings.TrimSpace(infos[0].ModelName),
		VendorID:   infos[0].VendorID,
		Bits:       strconv.IntSize,
		CurrentMHz: infos[0].Mhz,
		Flags:      infos[0].Flags,
	}

	if hi, err := host.InfoWithContext(ctx); err == nil && hi.KernelArch != "" {
		info.Architecture = hi.KernelArch
	} else {
		info.Architecture = runtime.GOARCH
	}

	if n, err := cpu.CountsWithContext(ctx, false); err == nil && n > 0 {
		info.Cores = n
	} else if err != nil {
		c.log.Warn("physical core count unavailable", zap.Error(err))
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		info.Threads = n
	} else if err != nil {
		c.log.Warn("logical core count unavailable", zap.Error(err))
	}

	plat, err := platformCPU(ctx)
	if err != nil {
		c.log.Debug("platform cpu probe unavailable", zap.Error(err))
	} else {
		if plat.CurrentMHz > 0 {
			info.CurrentMHz = plat.CurrentMHz
		}
		info.CacheL1 = plat.CacheL1
		info.CacheL2 = plat.CacheL2
		info.CacheL3 = plat.CacheL3
	}

	return info, nil
}

func renderCPUSummary(info cpuInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Name:** %s\n", orUnknown(info.Name))
	fmt.Fprintf(&b, "**Cores:** %d\n", info.Cores)
	fmt.Fprintf(&b, "**Threads:** %d\n", info.Threads)
	fmt.Fprintf(&b, "**Architecture:** %s\n", orUnknown(info.Architecture))
	return b.String()
}

func renderCPUDetails(info cpuInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Name:** %s\n", orUnknown(info.Name))
	fmt.Fprintf(&b, "**Vendor ID:** %s\n", orUnknown(info.VendorID))
	fmt.Fprintf(&b, "**Architecture:** %s\n", orUnknown(info.Architecture))
	fmt.Fprintf(&b, "**Bits:** %d\n", info.Bits)
	fmt.Fprintf(&b, "**Cores:** %d\n", info.Cores)
	fmt.Fprintf(&b, "**Threads:** %d\n", info.Threads)
	fmt.Fprintf(&b, "**Frequency:** %s MHz\n", formatMHz(info.CurrentMHz))
	// The brand string advertises the rated clock ("@ 3.60GHz"); the
	// measured value is emphasized when the two disagree.
	fmt.Fprintf(&b, "**Configured Frequency:** %s GHz\n", FormatMeasured(info.Name, info.CurrentMHz/1000))
	fmt.Fprintf(&b, "**Cache Sizes:** L1 Cache: %s, L2 Cache: %s, L3 Cache: %s\n",
		orUnknown(info.CacheL1), orUnknown(info.CacheL2), orUnknown(info.CacheL3))
	fmt.Fprintf(&b, "**Flags:** %s\n", renderFlags(info.Flags))
	return b.String()
}

func renderFlags(flags []string) string {
	if len(flags) == 0 {
		return "None reported"
	}
	return strings.Join(flags, ", ")
}
