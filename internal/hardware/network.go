package hardware

import (
	"context"
	"fmt"
	"net"
	"slices"
	"strings"

	gopsnet "github.com/shirou/gopsutil/v4/net"
	"go.uber.org/zap"
)

type netAddr struct {
	Kind  string // IPv4, IPv6 or Other
	Value string
}

type netInterface struct {
	Name  string
	MAC   string
	Up    bool
	MTU   int
	Addrs []netAddr
}

// adapterConfig is the extra per-adapter view the Windows probe supplies.
type adapterConfig struct {
	ConnectionID string
	Description  string
	MAC          string
	SpeedBps     uint64
	DHCPEnabled  bool
	DHCPServer   string
	DNSServers   []string
	IPAddresses  []string
}

type networkDrive struct {
	Local    string
	Remote   string
	Provider string
}

// reverseLookup resolves an IP address to hostnames. Injectable so the
// rendering logic is testable without touching the resolver.
type reverseLookup func(ctx context.Context, addr string) ([]string, error)

type networkCollector struct {
	log    *zap.Logger
	lookup reverseLookup
}

func newNetworkCollector(log *zap.Logger) *networkCollector {
	return &networkCollector{
		log:    log.Named("network"),
		lookup: net.DefaultResolver.LookupAddr,
	}
}

func (c *networkCollector) Domain() Domain { return DomainNetwork }

func (c *networkCollector) Summary(ctx context.Context) (string, error) {
	ifaces, err := c.probe(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, iface := range ifaces {
		fmt.Fprintf(&b, "**Interface:** %s\n", iface.Name)
		c.renderAddrs(ctx, &b, iface)
		b.WriteString("\n")
	}
	c.renderNetworkDrives(ctx, &b)
	return b.String(), nil
}

func (c *networkCollector) Details(ctx context.Context) (string, error) {
	ifaces, err := c.probe(ctx)
	if err != nil {
		return "", err
	}

	configs, err := platformAdapterConfigs(ctx)
	if err != nil {
		c.log.Debug("adapter configuration probe unavailable", zap.Error(err))
	}

	var b strings.Builder
	for _, iface := range ifaces {
		fmt.Fprintf(&b, "**Interface:** %s\n", iface.Name)
		status := "Down"
		if iface.Up {
			status = "Up"
		}
		fmt.Fprintf(&b, "- **Status:** %s\n", status)
		fmt.Fprintf(&b, "- **MTU:** %d\n", iface.MTU)
		c.renderAddrs(ctx, &b, iface)
		if cfg := matchAdapterConfig(configs, iface); cfg != nil {
			renderAdapterConfig(&b, cfg)
		}
		b.WriteString("\n")
	}
	c.renderNetworkDrives(ctx, &b)
	return b.String(), nil
}

func (c *networkCollector) probe(ctx context.Context) ([]netInterface, error) {
	stats, err := gopsnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, classify(DomainNetwork, fmt.Errorf("network interfaces: %w", err))
	}

	ifaces := make([]netInterface, 0, len(stats))
	for _, st := range stats {
		iface := netInterface{
			Name: st.Name,
			MAC:  st.HardwareAddr,
			Up:   slices.Contains(st.Flags, "up"),
			MTU:  st.MTU,
		}
		for _, a := range st.Addrs {
			iface.Addrs = append(iface.Addrs, classifyAddr(a.Addr))
		}
		ifaces = append(ifaces, iface)
	}
	return ifaces, nil
}

// classifyAddr strips a CIDR suffix and tags the address family.
func classifyAddr(addr string) netAddr {
	value := addr
	if i := strings.IndexByte(value, '/'); i >= 0 {
		value = value[:i]
	}
	ip := net.ParseIP(value)
	switch {
	case ip == nil:
		return netAddr{Kind: "Other", Value: addr}
	case ip.To4() != nil:
		return netAddr{Kind: "IPv4", Value: value}
	default:
		return netAddr{Kind: "IPv6", Value: value}
	}
}

// renderAddrs writes one line per address. IP addresses get a reverse
// lookup; a failed lookup leaves the bare address, and a hostname that
// already appeared on this interface is not repeated. One slow or
// broken lookup never blocks the others.
func (c *networkCollector) renderAddrs(ctx context.Context, b *strings.Builder, iface netInterface) {
	seen := make(map[string]bool)
	for _, a := range iface.Addrs {
		if a.Kind != "IPv4" && a.Kind != "IPv6" {
			fmt.Fprintf(b, "- **%s:** %s\n", a.Kind, a.Value)
			continue
		}
		hostname := ""
		if names, err := c.lookup(ctx, a.Value); err == nil && len(names) > 0 {
			hostname = strings.TrimSuffix(names[0], ".")
		}
		if hostname != "" && !seen[hostname] {
			seen[hostname] = true
			fmt.Fprintf(b, "- **%s:** %s (%s)\n", a.Kind, a.Value, hostname)
		} else {
			fmt.Fprintf(b, "- **%s:** %s\n", a.Kind, a.Value)
		}
	}
	if iface.MAC != "" {
		fmt.Fprintf(b, "- **MAC:** %s\n", iface.MAC)
	}
}

func matchAdapterConfig(configs []adapterConfig, iface netInterface) *adapterConfig {
	for i := range configs {
		cfg := &configs[i]
		if cfg.ConnectionID == iface.Name || cfg.Description == iface.Name {
			return cfg
		}
		if cfg.MAC != "" && strings.EqualFold(cfg.MAC, iface.MAC) {
			return cfg
		}
	}
	return nil
}

func renderAdapterConfig(b *strings.Builder, cfg *adapterConfig) {
	fmt.Fprintf(b, "- **Description:** %s\n", cfg.Description)
	fmt.Fprintf(b, "- **MAC Address:** %s\n", cfg.MAC)
	fmt.Fprintf(b, "- **DHCP Enabled:** %t\n", cfg.DHCPEnabled)
	if cfg.DHCPServer != "" {
		fmt.Fprintf(b, "- **DHCP Server:** %s\n", cfg.DHCPServer)
	}
	fmt.Fprintf(b, "- **DNS Servers:** %s\n", strings.Join(cfg.DNSServers, ", "))
	fmt.Fprintf(b, "- **IP Address:** %s\n", strings.Join(cfg.IPAddresses, ", "))
	if cfg.SpeedBps > 0 {
		fmt.Fprintf(b, "- **Max Speed:** %d Mbps\n", cfg.SpeedBps/1_000_000)
	}
}

// parseNetUse extracts the drive rows from `net use` output. A row has
// the shape "<status> <letter>: \\server\share <provider...>"; header
// and separator lines carry no UNC path and are skipped.
func parseNetUse(out string) []networkDrive {
	var drives []networkDrive
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, `\\`) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 || !strings.HasSuffix(fields[1], ":") || !strings.HasPrefix(fields[2], `\\`) {
			continue
		}
		provider := ""
		if len(fields) > 3 {
			provider = strings.Join(fields[3:], " ")
		}
		drives = append(drives, networkDrive{
			Local:    fields[1],
			Remote:   fields[2],
			Provider: provider,
		})
	}
	return drives
}

func (c *networkCollector) renderNetworkDrives(ctx context.Context, b *strings.Builder) {
	drives, err := platformNetworkDrives(ctx)
	if err != nil {
		c.log.Debug("network drive probe unavailable", zap.Error(err))
		return
	}
	if len(drives) == 0 {
		return
	}
	b.WriteString("**Network Drives:**\n")
	for _, d := range drives {
		fmt.Fprintf(b, "- **Drive Letter:** %s, **Remote Path:** %s (%s)\n",
			d.Local, d.Remote, orUnknown(d.Provider))
	}
}
