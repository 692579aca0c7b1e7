package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBIOSCharacteristics(t *testing.T) {
	got := formatBIOSCharacteristics([]uint16{5, 7, 35})
	assert.Equal(t, "PCI is supported, Plug and Play is supported, UEFI is supported", got)
}

func TestFormatBIOSCharacteristicsUnknownCode(t *testing.T) {
	assert.Equal(t, "ACPI is supported, Unknown", formatBIOSCharacteristics([]uint16{24, 99}))
	assert.Equal(t, "None reported", formatBIOSCharacteristics(nil))
}

func TestFormatBIOSDate(t *testing.T) {
	// WMI datetime prefix.
	assert.Equal(t, "2023-01-15", formatBIOSDate("20230115000000.000000+000"))
	// Firmware dates that already carry separators pass through.
	assert.Equal(t, "01/15/2023", formatBIOSDate("01/15/2023"))
	assert.Equal(t, "Unknown", formatBIOSDate(""))
	assert.Equal(t, "2023", formatBIOSDate("2023"))
}
