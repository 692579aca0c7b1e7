package hardware

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
	"go.uber.org/zap"
)

type systemInfo struct {
	Hostname     string
	OSName       string
	OSVersion    string
	KernelBuild  string
	Architecture string
	Manufacturer string
	Model        string
	USBDevices   []usbDevice
	Monitors     []monitorInfo
}

type usbDevice struct {
	Name         string
	Manufacturer string
	DeviceID     string
}

type monitorInfo struct {
	Name      string
	DeviceID  string
	DeviceKey string
	Width     uint32
	Height    uint32
	RefreshHz uint32
	Active    bool
}

// systemPlatform holds the fields only an OS-specific probe can supply.
// Probes leave whatever they cannot answer zeroed; rendering omits it.
type systemPlatform struct {
	Manufacturer string
	Model        string
	USBDevices   []usbDevice
	Monitors     []monitorInfo
}

type systemCollector struct {
	log *zap.Logger
}

func newSystemCollector(log *zap.Logger) *systemCollector {
	return &systemCollector{log: log.Named("system")}
}

func (c *systemCollector) Domain() Domain { return DomainSystem }

func (c *systemCollector) Summary(ctx context.Context) (string, error) {
	info, err := c.probe(ctx)
	if err != nil {
		return "", err
	}
	return renderSystemSummary(info), nil
}

func (c *systemCollector) Details(ctx context.Context) (string, error) {
	info, err := c.probe(ctx)
	if err != nil {
		return "", err
	}
	return renderSystemDetails(info), nil
}

func (c *systemCollector) probe(ctx context.Context) (systemInfo, error) {
	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return systemInfo{}, classify(DomainSystem, fmt.Errorf("host info: %w", err))
	}

	info := systemInfo{
		Hostname:     hi.Hostname,
		OSName:       strings.TrimSpace(hi.Platform),
		OSVersion:    hi.PlatformVersion,
		KernelBuild:  hi.KernelVersion,
		Architecture: hi.KernelArch,
	}
	if info.Hostname == "" {
		info.Hostname, _ = os.Hostname()
	}

	plat, err := platformSystem(ctx)
	if err != nil {
		c.log.Debug("platform system probe unavailable", zap.Error(err))
	} else {
		info.Manufacturer = plat.Manufacturer
		info.Model = plat.Model
		info.USBDevices = plat.USBDevices
		info.Monitors = plat.Monitors
	}
	sort.Slice(info.USBDevices, func(i, j int) bool {
		return info.USBDevices[i].Name < info.USBDevices[j].Name
	})

	return info, nil
}

func renderSystemSummary(info systemInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Computer Name:** %s\n", orUnknown(info.Hostname))
	fmt.Fprintf(&b, "**Operating System:** %s %s\n", orUnknown(info.OSName), info.OSVersion)
	if info.Manufacturer != "" || info.Model != "" {
		fmt.Fprintf(&b, "**Manufacturer:** %s\n", orUnknown(info.Manufacturer))
		fmt.Fprintf(&b, "**Model:** %s\n", orUnknown(info.Model))
	}
	renderUSBDevices(&b, info.USBDevices, false)
	renderMonitors(&b, info.Monitors, false)
	return b.String()
}

func renderSystemDetails(info systemInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Computer Name:** %s\n", orUnknown(info.Hostname))
	fmt.Fprintf(&b, "**Operating System:** %s %s\n", orUnknown(info.OSName), info.OSVersion)
	fmt.Fprintf(&b, "**OS Build:** %s\n", orUnknown(info.KernelBuild))
	fmt.Fprintf(&b, "**OS Architecture:** %s\n", orUnknown(info.Architecture))
	if info.Manufacturer != "" || info.Model != "" {
		fmt.Fprintf(&b, "**Manufacturer:** %s\n", orUnknown(info.Manufacturer))
		fmt.Fprintf(&b, "**Model:** %s\n", orUnknown(info.Model))
	}
	renderUSBDevices(&b, info.USBDevices, true)
	renderMonitors(&b, info.Monitors, true)
	return b.String()
}

func renderUSBDevices(b *strings.Builder, devices []usbDevice, detailed bool) {
	if len(devices) == 0 {
		return
	}
	b.WriteString("**USB Devices:**\n")
	for _, d := range devices {
		if detailed {
			fmt.Fprintf(b, "- **Device:** %s\n", d.Name)
			fmt.Fprintf(b, "  - **Manufacturer:** %s\n", orUnknown(d.Manufacturer))
			fmt.Fprintf(b, "  - **Device ID:** %s\n", orUnknown(d.DeviceID))
		} else {
			fmt.Fprintf(b, "- %s\n", d.Name)
		}
	}
}

func renderMonitors(b *strings.Builder, monitors []monitorInfo, detailed bool) {
	if len(monitors) == 0 {
		return
	}
	b.WriteString("**Monitors:**\n")
	for _, m := range monitors {
		fmt.Fprintf(b, "- %s\n", m.Name)
		fmt.Fprintf(b, "  - **Resolution:** %dx%d\n", m.Width, m.Height)
		fmt.Fprintf(b, "  - **Refresh Rate:** %d Hz\n", m.RefreshHz)
		if detailed {
			fmt.Fprintf(b, "  - **Device ID:** %s\n", orUnknown(m.DeviceID))
			fmt.Fprintf(b, "  - **Device Key:** %s\n", orUnknown(m.DeviceKey))
			status := "Inactive"
			if m.Active {
				status = "Active"
			}
			fmt.Fprintf(b, "  - **Status:** %s\n", status)
		}
	}
}
