package hardware

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestClassifyAddr(t *testing.T) {
	assert.Equal(t, netAddr{Kind: "IPv4", Value: "192.168.1.5"}, classifyAddr("192.168.1.5/24"))
	assert.Equal(t, netAddr{Kind: "IPv4", Value: "10.0.0.1"}, classifyAddr("10.0.0.1"))
	assert.Equal(t, netAddr{Kind: "IPv6", Value: "fe80::1"}, classifyAddr("fe80::1/64"))
	assert.Equal(t, netAddr{Kind: "Other", Value: "not-an-ip"}, classifyAddr("not-an-ip"))
}

func TestRenderAddrsDeduplicatesHostnames(t *testing.T) {
	c := &networkCollector{
		log: zap.NewNop(),
		lookup: func(_ context.Context, addr string) ([]string, error) {
			return []string{"host.local."}, nil
		},
	}
	iface := netInterface{
		Name: "eth0",
		Addrs: []netAddr{
			{Kind: "IPv4", Value: "192.168.1.5"},
			{Kind: "IPv6", Value: "fe80::1"},
		},
	}

	var b strings.Builder
	c.renderAddrs(context.Background(), &b, iface)

	got := b.String()
	assert.Contains(t, got, "- **IPv4:** 192.168.1.5 (host.local)\n")
	// The hostname already appeared on this interface; only the bare
	// address is printed the second time.
	assert.Contains(t, got, "- **IPv6:** fe80::1\n")
	assert.Equal(t, 1, strings.Count(got, "host.local"))
}

func TestRenderAddrsLookupFailureLeavesBareAddress(t *testing.T) {
	calls := 0
	c := &networkCollector{
		log: zap.NewNop(),
		lookup: func(_ context.Context, addr string) ([]string, error) {
			calls++
			if addr == "192.168.1.5" {
				return nil, errors.New("nxdomain")
			}
			return []string{"other.local"}, nil
		},
	}
	iface := netInterface{
		Name: "eth0",
		MAC:  "aa:bb:cc:dd:ee:ff",
		Addrs: []netAddr{
			{Kind: "IPv4", Value: "192.168.1.5"},
			{Kind: "IPv4", Value: "192.168.1.6"},
		},
	}

	var b strings.Builder
	c.renderAddrs(context.Background(), &b, iface)

	got := b.String()
	// One failed lookup does not block the next address.
	assert.Equal(t, 2, calls)
	assert.Contains(t, got, "- **IPv4:** 192.168.1.5\n")
	assert.Contains(t, got, "- **IPv4:** 192.168.1.6 (other.local)\n")
	assert.Contains(t, got, "- **MAC:** aa:bb:cc:dd:ee:ff\n")
}

func TestParseNetUse(t *testing.T) {
	out := "New connections will be remembered.\r\n" +
		"\r\n" +
		"Status       Local     Remote                    Network\r\n" +
		"-------------------------------------------------------------------------------\r\n" +
		"OK           Z:        \\\\fileserver\\share      Microsoft Windows Network\r\n" +
		"Disconnected Y:        \\\\nas\\backup\r\n" +
		"The command completed successfully.\r\n"

	drives := parseNetUse(out)
	assert.Len(t, drives, 2)
	assert.Equal(t, networkDrive{Local: "Z:", Remote: `\\fileserver\share`, Provider: "Microsoft Windows Network"}, drives[0])
	assert.Equal(t, networkDrive{Local: "Y:", Remote: `\\nas\backup`, Provider: ""}, drives[1])
}

func TestParseNetUseIgnoresNoise(t *testing.T) {
	assert.Empty(t, parseNetUse("There are no entries in the list.\r\n"))
	assert.Empty(t, parseNetUse(""))
}
