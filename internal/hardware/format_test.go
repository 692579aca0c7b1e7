package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesToGB(t *testing.T) {
	assert.Equal(t, 1.0, BytesToGB(1073741824))
	assert.Equal(t, 0.0, BytesToGB(0))
	assert.Equal(t, 16.0, BytesToGB(16*1073741824))
	// 500107862016 bytes is the usual "500 GB" drive.
	assert.Equal(t, 465.76, BytesToGB(500107862016))
}

func TestFormatMeasured(t *testing.T) {
	// Matching expected and actual renders plain.
	assert.Equal(t, "3.6", FormatMeasured("Intel(R) Core(TM) i7 @ 3.60GHz", 3.6))
	// A mismatch is emphasized.
	assert.Equal(t, "**3.4**", FormatMeasured("Intel(R) Core(TM) i7 @ 3.60GHz", 3.4))
	// An unparsable expected value fails safe to emphasized.
	assert.Equal(t, "**3.6**", FormatMeasured("Unknown", 3.6))
	assert.Equal(t, "**3.6**", FormatMeasured("", 3.6))
}

func TestFormatSpeed(t *testing.T) {
	assert.Equal(t, "3200", formatSpeed(3200, 3200))
	assert.Equal(t, "**2933**", formatSpeed(3200, 2933))
}

func TestFormatVoltage(t *testing.T) {
	assert.Equal(t, "1.20", formatVoltage(1200))
	assert.Equal(t, "1.35", formatVoltage(1350))
	assert.Equal(t, "N/A", formatVoltage(0))
}

func TestOrUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", orUnknown(""))
	assert.Equal(t, "Unknown", orUnknown("   "))
	assert.Equal(t, "value", orUnknown("value"))
}
