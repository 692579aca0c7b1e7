//go:build windows

package hardware

import (
	"context"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

type win32BaseBoard struct {
	Manufacturer string
	Product      string
	SerialNumber string
	Version      string
}

type win32SystemSlot struct {
	SlotDesignation string
	Name            string
	Status          string
}

type win32USBController struct {
	DeviceID string
	Name     string
	Status   string
}

type win32BIOSVersion struct {
	SMBIOSBIOSVersion string
}

// platformMotherboard queries Win32_BaseBoard plus the slot, USB
// controller and BIOS version classes. Only the baseboard query is
// fatal; the secondary lists degrade to empty.
func platformMotherboard(_ context.Context) (motherboardInfo, error) {
	var boards []win32BaseBoard
	if err := wmi.Query("SELECT Manufacturer, Product, SerialNumber, Version FROM Win32_BaseBoard", &boards); err != nil {
		return motherboardInfo{}, err
	}

	var info motherboardInfo
	if len(boards) > 0 {
		info.Manufacturer = strings.TrimSpace(boards[0].Manufacturer)
		info.Product = strings.TrimSpace(boards[0].Product)
		info.SerialNumber = strings.TrimSpace(boards[0].SerialNumber)
		info.Version = strings.TrimSpace(boards[0].Version)
	}

	var bios []win32BIOSVersion
	if err := wmi.Query("SELECT SMBIOSBIOSVersion FROM Win32_BIOS", &bios); err == nil && len(bios) > 0 {
		info.BIOSVersion = bios[0].SMBIOSBIOSVersion
	}

	var slots []win32SystemSlot
	if err := wmi.Query("SELECT SlotDesignation, Name, Status FROM Win32_SystemSlot", &slots); err == nil {
		for _, s := range slots {
			info.Slots = append(info.Slots, boardSlot{
				Designation: s.SlotDesignation,
				Type:        s.Name,
				Status:      s.Status,
			})
		}
	}

	var usb []win32USBController
	if err := wmi.Query("SELECT DeviceID, Name, Status FROM Win32_USBController", &usb); err == nil {
		for _, u := range usb {
			info.USBPorts = append(info.USBPorts, usbController{
				DeviceID: u.DeviceID,
				Name:     u.Name,
				Status:   u.Status,
			})
		}
	}

	return info, nil
}
