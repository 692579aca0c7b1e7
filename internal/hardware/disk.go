package hardware

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
	"go.uber.org/zap"
)

type diskPartition struct {
	Device      string
	Mountpoint  string
	Fstype      string
	TotalBytes  uint64
	UsedBytes   uint64
	FreeBytes   uint64
	UsedPercent float64
}

type physicalDrive struct {
	DeviceID     string
	Model        string
	SerialNumber string
	SizeBytes    uint64
}

type diskCollector struct {
	log *zap.Logger
}

func newDiskCollector(log *zap.Logger) *diskCollector {
	return &diskCollector{log: log.Named("disk")}
}

func (c *diskCollector) Domain() Domain { return DomainDisk }

func (c *diskCollector) Summary(ctx context.Context) (string, error) {
	partitions, err := c.probePartitions(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, p := range partitions {
		fmt.Fprintf(&b, "**Device %d:**\n", i+1)
		fmt.Fprintf(&b, "- **Path:** %s\n", p.Device)
		fmt.Fprintf(&b, "- **Total Size:** %s GB\n\n", formatGB(BytesToGB(p.TotalBytes)))
	}
	return b.String(), nil
}

func (c *diskCollector) Details(ctx context.Context) (string, error) {
	partitions, err := c.probePartitions(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, p := range partitions {
		fmt.Fprintf(&b, "**Device %d:**\n", i+1)
		fmt.Fprintf(&b, "- **Path:** %s\n", p.Device)
		fmt.Fprintf(&b, "- **Mount Point:** %s\n", p.Mountpoint)
		fmt.Fprintf(&b, "- **File System Type:** %s\n", p.Fstype)
		fmt.Fprintf(&b, "- **Total Size:** %s GB\n", formatGB(BytesToGB(p.TotalBytes)))
		fmt.Fprintf(&b, "- **Used:** %s GB\n", formatGB(BytesToGB(p.UsedBytes)))
		fmt.Fprintf(&b, "- **Free:** %s GB\n", formatGB(BytesToGB(p.FreeBytes)))
		fmt.Fprintf(&b, "- **Usage:** %s%%\n\n", strconv.FormatFloat(p.UsedPercent, 'f', 1, 64))
	}

	// Physical drive enumeration is best effort.
	drives, err := platformDisks(ctx)
	if err != nil {
		c.log.Debug("physical drive probe unavailable", zap.Error(err))
	}
	for _, d := range drives {
		fmt.Fprintf(&b, "**Physical Drive:** %s\n", d.DeviceID)
		fmt.Fprintf(&b, "- **Model:** %s\n", orUnknown(d.Model))
		fmt.Fprintf(&b, "- **Serial Number:** %s\n", orUnknown(strings.TrimSpace(d.SerialNumber)))
		if d.SizeBytes > 0 {
			fmt.Fprintf(&b, "- **Size:** %s GB\n\n", formatGB(BytesToGB(d.SizeBytes)))
		} else {
			b.WriteString("- **Size:** Unknown\n\n")
		}
	}

	return b.String(), nil
}

// probePartitions lists mounted partitions, skipping cd-rom entries and
// mounts without a filesystem type.
func (c *diskCollector) probePartitions(ctx context.Context) ([]diskPartition, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, classify(DomainDisk, fmt.Errorf("disk partitions: %w", err))
	}

	var partitions []diskPartition
	for _, p := range parts {
		if p.Fstype == "" || slices.Contains(p.Opts, "cdrom") {
			continue
		}
		dp := diskPartition{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
		}
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			c.log.Warn("disk usage unavailable",
				zap.String("mountpoint", p.Mountpoint), zap.Error(err))
		} else {
			dp.TotalBytes = usage.Total
			dp.UsedBytes = usage.Used
			dp.FreeBytes = usage.Free
			dp.UsedPercent = usage.UsedPercent
		}
		partitions = append(partitions, dp)
	}
	return partitions, nil
}
