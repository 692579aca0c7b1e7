//go:build windows

package hardware

import (
	"context"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

type win32PhysicalMemory struct {
	Capacity             uint64
	Speed                uint32
	ConfiguredClockSpeed uint32
	Manufacturer         string
	SerialNumber         string
	PartNumber           string
	FormFactor           uint16
	MemoryType           uint16
	BankLabel            string
	DataWidth            uint16
	TotalWidth           uint16
	MinVoltage           uint32
	ConfiguredVoltage    uint32
}

// platformMemoryModules queries Win32_PhysicalMemory for per-DIMM details.
// Form-factor and memory-type codes are resolved through the lookup tables.
func platformMemoryModules(_ context.Context) ([]ramModule, error) {
	var pm []win32PhysicalMemory
	q := "SELECT Capacity, Speed, ConfiguredClockSpeed, Manufacturer, SerialNumber, PartNumber, " +
		"FormFactor, MemoryType, BankLabel, DataWidth, TotalWidth, MinVoltage, ConfiguredVoltage " +
		"FROM Win32_PhysicalMemory"
	if err := wmi.Query(q, &pm); err != nil {
		return nil, err
	}

	modules := make([]ramModule, len(pm))
	for i, m := range pm {
		modules[i] = ramModule{
			CapacityBytes:       m.Capacity,
			SpeedMHz:            m.Speed,
			ConfiguredMHz:       m.ConfiguredClockSpeed,
			Manufacturer:        strings.TrimSpace(m.Manufacturer),
			SerialNumber:        strings.TrimSpace(m.SerialNumber),
			PartNumber:          strings.TrimSpace(m.PartNumber),
			FormFactor:          formFactorString(m.FormFactor),
			MemoryType:          memoryTypeString(m.MemoryType),
			BankLabel:           m.BankLabel,
			DataWidthBits:       m.DataWidth,
			TotalWidthBits:      m.TotalWidth,
			MinVoltageMV:        m.MinVoltage,
			ConfiguredVoltageMV: m.ConfiguredVoltage,
		}
	}
	return modules, nil
}
