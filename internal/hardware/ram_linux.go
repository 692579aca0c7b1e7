//go:build linux

package hardware

import (
	"context"
	"strings"

	"github.com/siderolabs/go-smbios/smbios"
)

// platformMemoryModules reads per-DIMM details from the SMBIOS memory
// device structures. Empty sockets report a zero size and are skipped.
func platformMemoryModules(_ context.Context) ([]ramModule, error) {
	s, err := smbios.New()
	if err != nil {
		return nil, err
	}

	var modules []ramModule
	for _, d := range s.MemoryDevices {
		capacity := memoryDeviceBytes(uint16(d.Size), uint32(d.ExtendedSize))
		if capacity == 0 {
			continue
		}
		modules = append(modules, ramModule{
			CapacityBytes:       capacity,
			SpeedMHz:            uint32(d.Speed),
			ConfiguredMHz:       uint32(d.ConfiguredMemorySpeed),
			Manufacturer:        strings.TrimSpace(d.Manufacturer),
			SerialNumber:        strings.TrimSpace(d.SerialNumber),
			PartNumber:          strings.TrimSpace(d.PartNumber),
			FormFactor:          d.FormFactor.String(),
			MemoryType:          d.MemoryType.String(),
			BankLabel:           d.BankLocator,
			DataWidthBits:       uint16(d.DataWidth),
			TotalWidthBits:      uint16(d.TotalWidth),
			MinVoltageMV:        uint32(d.MinimumVoltage),
			ConfiguredVoltageMV: uint32(d.ConfiguredVoltage),
		})
	}
	return modules, nil
}

// memoryDeviceBytes decodes the SMBIOS size field: 0xFFFF means unknown,
// 0x7FFF defers to the extended size in MB, bit 15 switches units to KB.
func memoryDeviceBytes(size uint16, extended uint32) uint64 {
	switch {
	case size == 0 || size == 0xFFFF:
		return 0
	case size == 0x7FFF:
		return uint64(extended) << 20
	case size&0x8000 != 0:
		return uint64(size&0x7FFF) << 10
	default:
		return uint64(size) << 20
	}
}
