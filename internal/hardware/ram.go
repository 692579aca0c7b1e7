package hardware

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"
)

type ramInfo struct {
	TotalBytes  uint64
	UsedBytes   uint64
	UsedPercent float64
	Modules     []ramModule
}

// ramModule describes one physical memory device. Form factor and
// memory type arrive already resolved to strings; the Windows probe
// maps WMI codes through the tables below, the Linux probe reads the
// firmware's own enumerations.
type ramModule struct {
	CapacityBytes       uint64
	SpeedMHz            uint32
	ConfiguredMHz       uint32
	Manufacturer        string
	SerialNumber        string
	PartNumber          string
	FormFactor          string
	MemoryType          string
	BankLabel           string
	DataWidthBits       uint16
	TotalWidthBits      uint16
	MinVoltageMV        uint32
	ConfiguredVoltageMV uint32
}

var ramFormFactors = map[uint16]string{
	0:  "Unknown",
	1:  "Other",
	2:  "SIP",
	3:  "DIP",
	4:  "ZIP",
	5:  "SOJ",
	6:  "Proprietary",
	7:  "SIMM",
	8:  "DIMM",
	9:  "TSOP",
	10: "PGA",
	11: "RIMM",
	12: "SODIMM",
	13: "SRIMM",
	14: "FB-DIMM",
}

var ramMemoryTypes = map[uint16]string{
	0:  "Unknown",
	1:  "Other",
	2:  "DRAM",
	3:  "Synchronous DRAM",
	4:  "Cache DRAM",
	5:  "EDO",
	6:  "EDRAM",
	7:  "VRAM",
	8:  "SRAM",
	9:  "RAM",
	10: "ROM",
	11: "Flash",
	12: "EEPROM",
	13: "FEPROM",
	14: "EPROM",
	15: "CDRAM",
	16: "3DRAM",
	17: "SDRAM",
	18: "SGRAM",
	19: "RDRAM",
	20: "DDR",
	21: "DDR2",
	22: "DDR2 FB-DIMM",
	24: "DDR3",
	25: "FBD2",
}

func formFactorString(code uint16) string {
	if s, ok := ramFormFactors[code]; ok {
		return s
	}
	return "Unknown"
}

func memoryTypeString(code uint16) string {
	if s, ok := ramMemoryTypes[code]; ok {
		return s
	}
	return "Unknown"
}

type ramCollector struct {
	log *zap.Logger
}

func newRAMCollector(log *zap.Logger) *ramCollector {
	return &ramCollector{log: log.Named("ram")}
}

func (c *ramCollector) Domain() Domain { return DomainRAM }

func (c *ramCollector) Summary(ctx context.Context) (string, error) {
	info, err := c.probe(ctx)
	if err != nil {
		return "", err
	}
	return renderRAMSummary(info), nil
}

func (c *ramCollector) Details(ctx context.Context) (string, error) {
	info, err := c.probe(ctx)
	if err != nil {
		return "", err
	}
	return renderRAMDetails(info), nil
}

func (c *ramCollector) probe(ctx context.Context) (ramInfo, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return ramInfo{}, classify(DomainRAM, fmt.Errorf("virtual memory: %w", err))
	}

	info := ramInfo{
		TotalBytes:  vm.Total,
		UsedBytes:   vm.Used,
		UsedPercent: vm.UsedPercent,
	}

	// Module enumeration is best effort; totals alone still make a report.
	modules, err := platformMemoryModules(ctx)
	if err != nil {
		c.log.Warn("memory module probe unavailable", zap.Error(err))
	}
	info.Modules = modules

	return info, nil
}

func renderRAMSummary(info ramInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Total:** %s GB\n", formatGB(BytesToGB(info.TotalBytes)))
	b.WriteString("**Module:**\n")
	if len(info.Modules) == 0 {
		b.WriteString("No module information available\n")
		return b.String()
	}
	for i, m := range info.Modules {
		fmt.Fprintf(&b, "- **Module %d:** %s GB, %d MHz, Configured Speed: %s MHz\n",
			i+1, formatGB(BytesToGB(m.CapacityBytes)), m.SpeedMHz, formatSpeed(m.SpeedMHz, m.ConfiguredMHz))
	}
	return b.String()
}

func renderRAMDetails(info ramInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Total:** %s GB\n", formatGB(BytesToGB(info.TotalBytes)))
	fmt.Fprintf(&b, "**Used:** %s GB\n", formatGB(BytesToGB(info.UsedBytes)))
	fmt.Fprintf(&b, "**Percentage:** %s%%\n", strconv.FormatFloat(info.UsedPercent, 'f', 1, 64))
	b.WriteString("**Physical RAM Modules:**\n")
	if len(info.Modules) == 0 {
		b.WriteString("No module information available\n")
		return b.String()
	}
	for i, m := range info.Modules {
		fmt.Fprintf(&b, "- **Module %d:**\n", i+1)
		fmt.Fprintf(&b, "  - **Capacity:** %s GB\n", formatGB(BytesToGB(m.CapacityBytes)))
		fmt.Fprintf(&b, "  - **Speed:** %d MHz\n", m.SpeedMHz)
		fmt.Fprintf(&b, "  - **Configured Speed:** %s MHz\n", formatSpeed(m.SpeedMHz, m.ConfiguredMHz))
		fmt.Fprintf(&b, "  - **Manufacturer:** %s\n", orUnknown(m.Manufacturer))
		fmt.Fprintf(&b, "  - **Serial Number:** %s\n", orUnknown(m.SerialNumber))
		fmt.Fprintf(&b, "  - **Part Number:** %s\n", orUnknown(m.PartNumber))
		fmt.Fprintf(&b, "  - **Form Factor:** %s\n", orUnknown(m.FormFactor))
		fmt.Fprintf(&b, "  - **Memory Type:** %s\n", orUnknown(m.MemoryType))
		fmt.Fprintf(&b, "  - **Bank Label:** %s\n", orUnknown(m.BankLabel))
		fmt.Fprintf(&b, "  - **Data Width:** %d bits\n", m.DataWidthBits)
		fmt.Fprintf(&b, "  - **Total Width:** %d bits\n", m.TotalWidthBits)
		fmt.Fprintf(&b, "  - **Voltage:** %s V\n", formatVoltage(m.MinVoltageMV))
		fmt.Fprintf(&b, "  - **Configured Voltage:** %s V\n", formatVoltage(m.ConfiguredVoltageMV))
	}
	return b.String()
}
