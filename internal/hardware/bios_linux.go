//go:build linux

package hardware

import (
	"context"
	"strings"

	"github.com/siderolabs/go-smbios/smbios"
)

// platformBIOS reads the SMBIOS BIOS information structure. The
// characteristics bitmask and language are not decoded here, so those
// report lines are omitted.
func platformBIOS(_ context.Context) (biosInfo, error) {
	s, err := smbios.New()
	if err != nil {
		return biosInfo{}, err
	}

	return biosInfo{
		Manufacturer: strings.TrimSpace(s.BIOSInformation.Vendor),
		Version:      strings.TrimSpace(s.BIOSInformation.Version),
		ReleaseDate:  strings.TrimSpace(s.BIOSInformation.ReleaseDate),
		SMBIOSMajor:  s.Version.Major,
		SMBIOSMinor:  s.Version.Minor,
	}, nil
}
