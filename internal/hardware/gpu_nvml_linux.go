//go:build linux && cgo

package hardware

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"go.uber.org/zap"
)

// nvmlBlocks renders the NVIDIA management library enumeration. The
// library is initialized per call and shut down before returning; a
// host without the NVIDIA driver fails Init and contributes nothing.
func (c *gpuCollector) nvmlBlocks(detailed bool) []string {
	lib := nvml.New()
	if ret := lib.Init(); ret != nvml.SUCCESS {
		c.log.Debug("nvml unavailable", zap.String("reason", nvml.ErrorString(ret)))
		return nil
	}
	defer func() { _ = lib.Shutdown() }()

	count, ret := lib.DeviceGetCount()
	if ret != nvml.SUCCESS {
		c.log.Debug("nvml device count failed", zap.String("reason", nvml.ErrorString(ret)))
		return nil
	}

	driver, _ := lib.SystemGetDriverVersion()

	var blocks []string
	for i := 0; i < count; i++ {
		dev, ret := lib.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			c.log.Debug("nvml device handle failed",
				zap.Int("index", i), zap.String("reason", nvml.ErrorString(ret)))
			continue
		}

		name, _ := dev.GetName()
		mem, _ := dev.GetMemoryInfo()

		var b strings.Builder
		fmt.Fprintf(&b, "**Name:** %s\n", orUnknown(name))
		if detailed {
			fmt.Fprintf(&b, "**Total Memory:** %s MB\n", formatMB(float64(mem.Total)/1024/1024))
			fmt.Fprintf(&b, "**Used Memory:** %s MB\n", formatMB(float64(mem.Used)/1024/1024))
			fmt.Fprintf(&b, "**Free Memory:** %s MB\n", formatMB(float64(mem.Free)/1024/1024))
			if util, ret := dev.GetUtilizationRates(); ret == nvml.SUCCESS {
				fmt.Fprintf(&b, "**GPU Utilization:** %d%%\n", util.Gpu)
				fmt.Fprintf(&b, "**Memory Utilization:** %d%%\n", util.Memory)
			}
			if temp, ret := dev.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
				fmt.Fprintf(&b, "**Temperature:** %d°C\n", temp)
			}
			if pci, ret := dev.GetPciInfo(); ret == nvml.SUCCESS {
				fmt.Fprintf(&b, "**PCI Bus ID:** %s\n", busIDString(pci.BusId))
			}
			if serial, ret := dev.GetSerial(); ret == nvml.SUCCESS && serial != "" {
				fmt.Fprintf(&b, "**Serial Number:** %s\n", serial)
			}
			fmt.Fprintf(&b, "**Driver Version:** %s\n", orUnknown(driver))
		} else {
			b.WriteString("**Manufacturer:** NVIDIA\n")
			fmt.Fprintf(&b, "**VRAM:** %s MB\n", formatMB(float64(mem.Total)/1024/1024))
		}
		blocks = append(blocks, b.String())
	}
	return blocks
}

func busIDString(id [32]int8) string {
	b := make([]byte, 0, len(id))
	for _, c := range id {
		if c == 0 {
			break
		}
		b = append(b, byte(c))
	}
	return string(b)
}
