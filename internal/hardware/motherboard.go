package hardware

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type motherboardInfo struct {
	Manufacturer string
	Product      string
	SerialNumber string
	Version      string
	BIOSVersion  string
	Slots        []boardSlot
	USBPorts     []usbController
}

type boardSlot struct {
	Designation string
	Type        string
	Status      string
}

type usbController struct {
	DeviceID string
	Name     string
	Status   string
}

type motherboardCollector struct {
	log *zap.Logger
}

func newMotherboardCollector(log *zap.Logger) *motherboardCollector {
	return &motherboardCollector{log: log.Named("motherboard")}
}

func (c *motherboardCollector) Domain() Domain { return DomainMotherboard }

func (c *motherboardCollector) Summary(ctx context.Context) (string, error) {
	info, err := platformMotherboard(ctx)
	if err != nil {
		return "", classify(DomainMotherboard, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Manufacturer:** %s\n", orUnknown(info.Manufacturer))
	fmt.Fprintf(&b, "**Product:** %s\n", orUnknown(info.Product))
	return b.String(), nil
}

func (c *motherboardCollector) Details(ctx context.Context) (string, error) {
	info, err := platformMotherboard(ctx)
	if err != nil {
		return "", classify(DomainMotherboard, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Manufacturer:** %s\n", orUnknown(info.Manufacturer))
	fmt.Fprintf(&b, "**Product:** %s\n", orUnknown(info.Product))
	fmt.Fprintf(&b, "**Serial Number:** %s\n", orUnknown(info.SerialNumber))
	fmt.Fprintf(&b, "**Version:** %s\n", orUnknown(info.Version))
	fmt.Fprintf(&b, "**BIOS Version:** %s\n", orUnknown(info.BIOSVersion))
	fmt.Fprintf(&b, "**Slots:**\n%s\n", renderBoardSlots(info.Slots, false))
	fmt.Fprintf(&b, "**USB Ports:**\n%s\n", renderUSBControllers(info.USBPorts))
	fmt.Fprintf(&b, "**PCIe Slots:**\n%s\n", renderBoardSlots(info.Slots, true))
	return b.String(), nil
}

// renderBoardSlots lists the system slots; with pcieOnly it keeps only
// slots whose type names PCI.
func renderBoardSlots(slots []boardSlot, pcieOnly bool) string {
	var b strings.Builder
	for _, s := range slots {
		if pcieOnly && !strings.Contains(s.Type, "PCI") {
			continue
		}
		fmt.Fprintf(&b, "Slot: %s, Type: %s, Status: %s\n", s.Designation, s.Type, s.Status)
	}
	if b.Len() == 0 {
		if pcieOnly {
			return "No PCIe slot information available"
		}
		return "No slot information available"
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderUSBControllers(ports []usbController) string {
	if len(ports) == 0 {
		return "No USB port information available"
	}
	var b strings.Builder
	for _, p := range ports {
		fmt.Fprintf(&b, "Device ID: %s, Name: %s, Status: %s\n", p.DeviceID, p.Name, p.Status)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
