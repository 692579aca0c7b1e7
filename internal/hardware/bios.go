package hardware

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type biosInfo struct {
	Manufacturer string
	Version      string
	ReleaseDate  string // raw firmware form, formatted at render time
	SMBIOSMajor  int
	SMBIOSMinor  int
	// nil means the platform probe has no characteristics source.
	Characteristics []uint16
	Language        string
	Primary         string // Yes, No or empty when unknown
}

// biosCharacteristics maps the SMBIOS BIOS characteristics bit
// positions to their documented meanings.
var biosCharacteristics = map[uint16]string{
	0:  "Reserved",
	1:  "BIOS Characteristics Not Supported",
	2:  "ISA is supported",
	3:  "MCA is supported",
	4:  "EISA is supported",
	5:  "PCI is supported",
	6:  "PC Card (PCMCIA) is supported",
	7:  "Plug and Play is supported",
	8:  "APM is supported",
	9:  "BIOS is upgradeable",
	10: "BIOS shadowing is allowed",
	11: "VLB is supported",
	12: "ESCD support is available",
	13: "Boot from CD is supported",
	14: "Selectable Boot is supported",
	15: "BIOS ROM is socketed",
	16: "Boot from PCMCIA is supported",
	17: "EDD is supported",
	18: "Print screen service is supported",
	19: "8042 keyboard services are supported",
	20: "Serial services are supported",
	21: "Printer services are supported",
	22: "CGA/Mono video services are supported",
	23: "NEC PC-98",
	24: "ACPI is supported",
	25: "USB legacy is supported",
	26: "AGP is supported",
	27: "I2O boot is supported",
	28: "LS-120 boot is supported",
	29: "ATAPI ZIP drive boot is supported",
	30: "1394 boot is supported",
	31: "Smart battery is supported",
	32: "BIOS Boot Specification is supported",
	33: "Function key-initiated network boot is supported",
	34: "Targeted content distribution is supported",
	35: "UEFI is supported",
}

// formatBIOSCharacteristics joins the mapped codes; an undefined code
// renders as Unknown.
func formatBIOSCharacteristics(codes []uint16) string {
	if len(codes) == 0 {
		return "None reported"
	}
	parts := make([]string, len(codes))
	for i, code := range codes {
		s, ok := biosCharacteristics[code]
		if !ok {
			s = "Unknown"
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

// formatBIOSDate renders the yyyymmdd prefix of a WMI datetime (or an
// already-dashed firmware date) as yyyy-mm-dd.
func formatBIOSDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Unknown"
	}
	if strings.ContainsAny(raw, "-/") {
		return raw
	}
	if len(raw) < 8 {
		return raw
	}
	return raw[:4] + "-" + raw[4:6] + "-" + raw[6:8]
}

type biosCollector struct {
	log *zap.Logger
}

func newBIOSCollector(log *zap.Logger) *biosCollector {
	return &biosCollector{log: log.Named("bios")}
}

func (c *biosCollector) Domain() Domain { return DomainBIOS }

func (c *biosCollector) Summary(ctx context.Context) (string, error) {
	info, err := platformBIOS(ctx)
	if err != nil {
		return "", classify(DomainBIOS, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Manufacturer:** %s\n", orUnknown(info.Manufacturer))
	fmt.Fprintf(&b, "**Version:** %s\n", orUnknown(info.Version))
	return b.String(), nil
}

func (c *biosCollector) Details(ctx context.Context) (string, error) {
	info, err := platformBIOS(ctx)
	if err != nil {
		return "", classify(DomainBIOS, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Manufacturer:** %s\n", orUnknown(info.Manufacturer))
	fmt.Fprintf(&b, "**Version:** %s\n", orUnknown(info.Version))
	fmt.Fprintf(&b, "**Release Date:** %s\n", formatBIOSDate(info.ReleaseDate))
	fmt.Fprintf(&b, "**SMBIOS Version:** %d.%d\n", info.SMBIOSMajor, info.SMBIOSMinor)
	if info.Characteristics != nil {
		fmt.Fprintf(&b, "**BIOS Characteristics:** %s\n", formatBIOSCharacteristics(info.Characteristics))
	}
	fmt.Fprintf(&b, "**BIOS Language:** %s\n", orUnknown(info.Language))
	if info.Primary != "" {
		fmt.Fprintf(&b, "**Primary BIOS:** %s\n", info.Primary)
	}
	return b.String(), nil
}
