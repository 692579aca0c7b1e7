package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDomainsOrder(t *testing.T) {
	want := []Domain{
		DomainSystem, DomainCPU, DomainGPU, DomainRAM,
		DomainDisk, DomainNetwork, DomainMotherboard, DomainBIOS,
	}
	assert.Equal(t, want, Domains())
}

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain("CPU")
	require.NoError(t, err)
	assert.Equal(t, DomainCPU, d)

	d, err = ParseDomain("  Motherboard ")
	require.NoError(t, err)
	assert.Equal(t, DomainMotherboard, d)

	_, err = ParseDomain("chipset")
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "BIOS", DomainBIOS.DisplayName())
	assert.Equal(t, "Motherboard", DomainMotherboard.DisplayName())
}

func TestNewCollectorsMatchesReportOrder(t *testing.T) {
	collectors := NewCollectors(zap.NewNop())
	require.Len(t, collectors, len(Domains()))
	for i, d := range Domains() {
		assert.Equal(t, d, collectors[i].Domain())
	}
}
