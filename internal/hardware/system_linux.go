//go:build linux

package hardware

import (
	"context"
	"strings"

	"github.com/siderolabs/go-smbios/smbios"
)

// platformSystem reads the machine identity from the SMBIOS system
// information structure. USB and display enumeration have no probe
// source here and stay empty.
func platformSystem(_ context.Context) (systemPlatform, error) {
	s, err := smbios.New()
	if err != nil {
		return systemPlatform{}, err
	}
	return systemPlatform{
		Manufacturer: strings.TrimSpace(s.SystemInformation.Manufacturer),
		Model:        strings.TrimSpace(s.SystemInformation.ProductName),
	}, nil
}
