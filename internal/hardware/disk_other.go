//go:build !windows

package hardware

import (
	"context"

	"github.com/jaypipes/ghw"
)

// platformDisks enumerates physical block devices through the PCI/sysfs
// layer.
func platformDisks(_ context.Context) ([]physicalDrive, error) {
	block, err := ghw.Block()
	if err != nil {
		return nil, err
	}

	var drives []physicalDrive
	for _, d := range block.Disks {
		drives = append(drives, physicalDrive{
			DeviceID:     "/dev/" + d.Name,
			Model:        d.Model,
			SerialNumber: d.SerialNumber,
			SizeBytes:    d.SizeBytes,
		})
	}
	return drives, nil
}
