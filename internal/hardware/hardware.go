package hardware

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Domain identifies one hardware category covered by a collector.
type Domain string

const (
	DomainSystem      Domain = "system"
	DomainCPU         Domain = "cpu"
	DomainGPU         Domain = "gpu"
	DomainRAM         Domain = "ram"
	DomainDisk        Domain = "disk"
	DomainNetwork     Domain = "network"
	DomainMotherboard Domain = "motherboard"
	DomainBIOS        Domain = "bios"
)

// reportOrder is the fixed order domains appear in a report.
var reportOrder = []Domain{
	DomainSystem,
	DomainCPU,
	DomainGPU,
	DomainRAM,
	DomainDisk,
	DomainNetwork,
	DomainMotherboard,
	DomainBIOS,
}

var displayNames = map[Domain]string{
	DomainSystem:      "System",
	DomainCPU:         "CPU",
	DomainGPU:         "GPU",
	DomainRAM:         "RAM",
	DomainDisk:        "Disk",
	DomainNetwork:     "Network",
	DomainMotherboard: "Motherboard",
	DomainBIOS:        "BIOS",
}

// Domains returns all domains in report order. The returned slice is a copy.
func Domains() []Domain {
	out := make([]Domain, len(reportOrder))
	copy(out, reportOrder)
	return out
}

// DisplayName returns the human-readable name used in report headers.
func (d Domain) DisplayName() string {
	if name, ok := displayNames[d]; ok {
		return name
	}
	return string(d)
}

// ParseDomain resolves a case-insensitive domain name.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := displayNames[d]; !ok {
		return "", fmt.Errorf("unknown hardware domain %q", s)
	}
	return d, nil
}

// Collector produces the two report views of one hardware domain.
// Both methods return Markdown text that is never empty. Errors are
// classified *ProbeError values describing a total domain failure;
// partial source failures degrade inside the collector.
type Collector interface {
	Domain() Domain
	Summary(ctx context.Context) (string, error)
	Details(ctx context.Context) (string, error)
}

// NewCollectors constructs all eight collectors in report order. Each
// collector owns its probe handles; none share mutable state.
func NewCollectors(log *zap.Logger) []Collector {
	return []Collector{
		newSystemCollector(log),
		newCPUCollector(log),
		newGPUCollector(log),
		newRAMCollector(log),
		newDiskCollector(log),
		newNetworkCollector(log),
		newMotherboardCollector(log),
		newBIOSCollector(log),
	}
}
