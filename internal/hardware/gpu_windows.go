//go:build windows

package hardware

import (
	"context"

	"github.com/yusufpapurcu/wmi"
)

type win32VideoController struct {
	Name                 string
	AdapterCompatibility string
	AdapterRAM           uint32
	DriverVersion        string
	PNPDeviceID          string
	DriverDate           string
}

// platformGPUAdapters queries Win32_VideoController for the installed
// display adapters.
func platformGPUAdapters(_ context.Context) ([]gpuAdapter, error) {
	var vcs []win32VideoController
	q := "SELECT Name, AdapterCompatibility, AdapterRAM, DriverVersion, PNPDeviceID, DriverDate " +
		"FROM Win32_VideoController"
	if err := wmi.Query(q, &vcs); err != nil {
		return nil, err
	}

	adapters := make([]gpuAdapter, len(vcs))
	for i, vc := range vcs {
		adapters[i] = gpuAdapter{
			Name:          vc.Name,
			Manufacturer:  vc.AdapterCompatibility,
			VRAMBytes:     uint64(vc.AdapterRAM),
			DriverVersion: vc.DriverVersion,
			PNPDeviceID:   vc.PNPDeviceID,
			DriverDate:    vc.DriverDate,
		}
	}
	return adapters, nil
}
