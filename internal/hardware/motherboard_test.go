package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBoardSlots(t *testing.T) {
	slots := []boardSlot{
		{Designation: "PCIEX16_1", Type: "PCI Express x16", Status: "OK"},
		{Designation: "DIMM_A1", Type: "Memory Slot", Status: "OK"},
	}

	all := renderBoardSlots(slots, false)
	assert.Contains(t, all, "Slot: PCIEX16_1, Type: PCI Express x16, Status: OK")
	assert.Contains(t, all, "Slot: DIMM_A1, Type: Memory Slot, Status: OK")

	pcie := renderBoardSlots(slots, true)
	assert.Contains(t, pcie, "PCIEX16_1")
	assert.NotContains(t, pcie, "DIMM_A1")
}

func TestRenderBoardSlotsEmpty(t *testing.T) {
	assert.Equal(t, "No slot information available", renderBoardSlots(nil, false))
	assert.Equal(t, "No PCIe slot information available", renderBoardSlots(nil, true))
	// Slots exist but none are PCI.
	slots := []boardSlot{{Designation: "DIMM_A1", Type: "Memory Slot", Status: "OK"}}
	assert.Equal(t, "No PCIe slot information available", renderBoardSlots(slots, true))
}

func TestRenderUSBControllers(t *testing.T) {
	assert.Equal(t, "No USB port information available", renderUSBControllers(nil))

	ports := []usbController{{DeviceID: "PCI\\VEN_8086", Name: "USB 3.1 eXtensible Host Controller", Status: "OK"}}
	got := renderUSBControllers(ports)
	assert.Equal(t, "Device ID: PCI\\VEN_8086, Name: USB 3.1 eXtensible Host Controller, Status: OK", got)
}
