//go:build windows

package hardware

import (
	"context"

	"github.com/yusufpapurcu/wmi"
)

type win32BIOS struct {
	Manufacturer        string
	SMBIOSBIOSVersion   string
	ReleaseDate         string
	SMBIOSMajorVersion  uint16
	SMBIOSMinorVersion  uint16
	BIOSCharacteristics []uint16
	CurrentLanguage     string
	PrimaryBIOS         bool
}

func platformBIOS(_ context.Context) (biosInfo, error) {
	var entries []win32BIOS
	q := "SELECT Manufacturer, SMBIOSBIOSVersion, ReleaseDate, SMBIOSMajorVersion, SMBIOSMinorVersion, " +
		"BIOSCharacteristics, CurrentLanguage, PrimaryBIOS FROM Win32_BIOS"
	if err := wmi.Query(q, &entries); err != nil {
		return biosInfo{}, err
	}
	if len(entries) == 0 {
		return biosInfo{}, nil
	}

	e := entries[0]
	primary := "No"
	if e.PrimaryBIOS {
		primary = "Yes"
	}
	info := biosInfo{
		Manufacturer:    e.Manufacturer,
		Version:         e.SMBIOSBIOSVersion,
		ReleaseDate:     e.ReleaseDate,
		SMBIOSMajor:     int(e.SMBIOSMajorVersion),
		SMBIOSMinor:     int(e.SMBIOSMinorVersion),
		Characteristics: e.BIOSCharacteristics,
		Language:        e.CurrentLanguage,
		Primary:         primary,
	}
	if info.Characteristics == nil {
		info.Characteristics = []uint16{}
	}
	return info, nil
}
