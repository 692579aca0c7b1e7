package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCPUDetails(t *testing.T) {
	info := cpuInfo{
		Name:         "Intel(R) Core(TM) i7-9700K CPU @ 3.60GHz",
		VendorID:     "GenuineIntel",
		Architecture: "x86_64",
		Bits:         64,
		Cores:        8,
		Threads:      8,
		CurrentMHz:   3600.0,
		CacheL1:      "256 KB",
		CacheL2:      "2048 KB",
		CacheL3:      "12288 KB",
		Flags:        []string{"sse4_2", "avx2"},
	}

	got := renderCPUDetails(info)
	assert.Contains(t, got, "**Frequency:** 3600.0 MHz\n")
	// Advertised 3.60GHz matches the measured clock, so no emphasis.
	assert.Contains(t, got, "**Configured Frequency:** 3.6 GHz\n")
	assert.Contains(t, got, "**Cache Sizes:** L1 Cache: 256 KB, L2 Cache: 2048 KB, L3 Cache: 12288 KB\n")
	assert.Contains(t, got, "**Flags:** sse4_2, avx2\n")
}

func TestRenderCPUDetailsThrottled(t *testing.T) {
	info := cpuInfo{
		Name:       "Intel(R) Core(TM) i7-9700K CPU @ 3.60GHz",
		CurrentMHz: 2200.0,
	}
	// Measured 2.2 GHz against an advertised 3.60GHz is flagged.
	assert.Contains(t, renderCPUDetails(info), "**Configured Frequency:** **2.2** GHz\n")
}

func TestRenderFlags(t *testing.T) {
	assert.Equal(t, "None reported", renderFlags(nil))
	assert.Equal(t, "a, b", renderFlags([]string{"a", "b"}))
}
