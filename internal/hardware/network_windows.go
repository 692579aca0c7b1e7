//go:build windows

package hardware

import (
	"context"
	"os/exec"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

type win32NetworkAdapterConfiguration struct {
	Description          string
	MACAddress           string
	DHCPEnabled          bool
	DHCPServer           string
	DNSServerSearchOrder []string
	IPAddress            []string
}

type win32NetworkAdapter struct {
	NetConnectionID string
	MACAddress      string
	Speed           uint64
}

// platformAdapterConfigs queries the IP-enabled adapter configurations
// and joins in the link speed from Win32_NetworkAdapter by MAC.
func platformAdapterConfigs(_ context.Context) ([]adapterConfig, error) {
	var nacs []win32NetworkAdapterConfiguration
	q := "SELECT Description, MACAddress, DHCPEnabled, DHCPServer, DNSServerSearchOrder, IPAddress " +
		"FROM Win32_NetworkAdapterConfiguration WHERE IPEnabled = TRUE"
	if err := wmi.Query(q, &nacs); err != nil {
		return nil, err
	}

	speeds := make(map[string]uint64)
	connections := make(map[string]string)
	var nas []win32NetworkAdapter
	if err := wmi.Query("SELECT NetConnectionID, MACAddress, Speed FROM Win32_NetworkAdapter", &nas); err == nil {
		for _, na := range nas {
			mac := strings.ToLower(na.MACAddress)
			if mac == "" {
				continue
			}
			speeds[mac] = na.Speed
			connections[mac] = na.NetConnectionID
		}
	}

	configs := make([]adapterConfig, len(nacs))
	for i, nac := range nacs {
		mac := strings.ToLower(nac.MACAddress)
		configs[i] = adapterConfig{
			ConnectionID: connections[mac],
			Description:  nac.Description,
			MAC:          nac.MACAddress,
			SpeedBps:     speeds[mac],
			DHCPEnabled:  nac.DHCPEnabled,
			DHCPServer:   nac.DHCPServer,
			DNSServers:   nac.DNSServerSearchOrder,
			IPAddresses:  nac.IPAddress,
		}
	}
	return configs, nil
}

// platformNetworkDrives parses `net use` output into mapped drives.
func platformNetworkDrives(ctx context.Context) ([]networkDrive, error) {
	out, err := exec.CommandContext(ctx, "net", "use").Output()
	if err != nil {
		return nil, err
	}
	return parseNetUse(string(out)), nil
}
