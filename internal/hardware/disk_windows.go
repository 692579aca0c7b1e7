//go:build windows

package hardware

import (
	"context"

	"github.com/yusufpapurcu/wmi"
)

type win32DiskDrive struct {
	DeviceID     string
	Model        string
	SerialNumber string
	Size         uint64
}

// platformDisks queries Win32_DiskDrive for the physical drives.
func platformDisks(_ context.Context) ([]physicalDrive, error) {
	var dds []win32DiskDrive
	if err := wmi.Query("SELECT DeviceID, Model, SerialNumber, Size FROM Win32_DiskDrive", &dds); err != nil {
		return nil, err
	}

	drives := make([]physicalDrive, len(dds))
	for i, d := range dds {
		drives[i] = physicalDrive{
			DeviceID:     d.DeviceID,
			Model:        d.Model,
			SerialNumber: d.SerialNumber,
			SizeBytes:    d.Size,
		}
	}
	return drives, nil
}
