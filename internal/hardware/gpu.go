package hardware

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaypipes/ghw"
	"go.uber.org/zap"
)

// noGPUNotice is returned when none of the probe sources report a device.
const noGPUNotice = "No supported GPU found.\n"

// gpuCollector tries three sources in priority order and concatenates
// whichever are present: the OS display adapter enumeration, the
// generic PCI display class, and the NVIDIA management library. A
// failing source is logged and skipped, so this collector never
// returns an error.
type gpuCollector struct {
	log *zap.Logger
}

func newGPUCollector(log *zap.Logger) *gpuCollector {
	return &gpuCollector{log: log.Named("gpu")}
}

func (c *gpuCollector) Domain() Domain { return DomainGPU }

func (c *gpuCollector) Summary(ctx context.Context) (string, error) {
	return c.render(ctx, false), nil
}

func (c *gpuCollector) Details(ctx context.Context) (string, error) {
	return c.render(ctx, true), nil
}

func (c *gpuCollector) render(ctx context.Context, detailed bool) string {
	var blocks []string
	blocks = append(blocks, c.adapterBlocks(ctx, detailed)...)
	blocks = append(blocks, c.pciBlocks(detailed)...)
	blocks = append(blocks, c.nvmlBlocks(detailed)...)

	if len(blocks) == 0 {
		return noGPUNotice
	}
	return strings.Join(blocks, "\n")
}

// adapterBlocks renders the OS display adapter enumeration.
func (c *gpuCollector) adapterBlocks(ctx context.Context, detailed bool) []string {
	adapters, err := platformGPUAdapters(ctx)
	if err != nil {
		c.log.Debug("display adapter enumeration unavailable", zap.Error(err))
		return nil
	}

	var blocks []string
	for _, a := range adapters {
		var b strings.Builder
		fmt.Fprintf(&b, "**Name:** %s\n", orUnknown(a.Name))
		if detailed {
			fmt.Fprintf(&b, "**Driver Version:** %s\n", orUnknown(a.DriverVersion))
			if a.VRAMBytes > 0 {
				fmt.Fprintf(&b, "**Adapter RAM:** %s MB\n", formatMB(float64(a.VRAMBytes)/1024/1024))
			}
			fmt.Fprintf(&b, "**Manufacturer:** %s\n", orUnknown(a.Manufacturer))
			fmt.Fprintf(&b, "**PNP Device ID:** %s\n", orUnknown(a.PNPDeviceID))
			fmt.Fprintf(&b, "**Driver Date:** %s\n", orUnknown(a.DriverDate))
		} else {
			fmt.Fprintf(&b, "**Manufacturer:** %s\n", orUnknown(a.Manufacturer))
			if a.VRAMBytes > 0 {
				fmt.Fprintf(&b, "**VRAM:** %s MB\n", formatMB(float64(a.VRAMBytes)/1024/1024))
			}
		}
		blocks = append(blocks, b.String())
	}
	return blocks
}

// pciBlocks renders the generic PCI display class enumeration.
func (c *gpuCollector) pciBlocks(detailed bool) []string {
	info, err := ghw.GPU()
	if err != nil {
		c.log.Debug("pci display enumeration unavailable", zap.Error(err))
		return nil
	}

	var blocks []string
	for _, card := range info.GraphicsCards {
		dev := card.DeviceInfo
		if dev == nil {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "**Name:** %s\n", orUnknown(dev.Product.Name))
		fmt.Fprintf(&b, "**Manufacturer:** %s\n", orUnknown(dev.Vendor.Name))
		if detailed {
			fmt.Fprintf(&b, "**PCI Address:** %s\n", orUnknown(card.Address))
			fmt.Fprintf(&b, "**Driver:** %s\n", orUnknown(dev.Driver))
		}
		blocks = append(blocks, b.String())
	}
	return blocks
}

type gpuAdapter struct {
	Name          string
	Manufacturer  string
	VRAMBytes     uint64
	DriverVersion string
	PNPDeviceID   string
	DriverDate    string
}
