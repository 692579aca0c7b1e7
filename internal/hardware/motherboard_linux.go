//go:build linux

package hardware

import (
	"context"
	"strings"

	"github.com/siderolabs/go-smbios/smbios"
)

// platformMotherboard reads the SMBIOS baseboard and BIOS structures.
// Slot and USB controller lists have no source here and stay empty.
func platformMotherboard(_ context.Context) (motherboardInfo, error) {
	s, err := smbios.New()
	if err != nil {
		return motherboardInfo{}, err
	}

	return motherboardInfo{
		Manufacturer: strings.TrimSpace(s.BaseboardInformation.Manufacturer),
		Product:      strings.TrimSpace(s.BaseboardInformation.Product),
		SerialNumber: strings.TrimSpace(s.BaseboardInformation.SerialNumber),
		Version:      strings.TrimSpace(s.BaseboardInformation.Version),
		BIOSVersion:  strings.TrimSpace(s.BIOSInformation.Version),
	}, nil
}
