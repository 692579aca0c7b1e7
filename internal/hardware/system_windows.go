//go:build windows

package hardware

import (
	"context"
	"strings"
	"unsafe"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"
)

type win32ComputerSystem struct {
	Manufacturer string
	Model        string
}

type win32PnPEntity struct {
	Name         string
	Manufacturer string
	DeviceID     string
}

// platformSystem queries Win32_ComputerSystem for the machine identity,
// Win32_PnPEntity for USB devices, and user32 for attached displays.
func platformSystem(_ context.Context) (systemPlatform, error) {
	var plat systemPlatform

	var cs []win32ComputerSystem
	if err := wmi.Query("SELECT Manufacturer, Model FROM Win32_ComputerSystem", &cs); err != nil {
		return systemPlatform{}, err
	}
	if len(cs) > 0 {
		plat.Manufacturer = strings.TrimSpace(cs[0].Manufacturer)
		plat.Model = strings.TrimSpace(cs[0].Model)
	}

	plat.USBDevices = queryUSBDevices()
	plat.Monitors = enumMonitors()

	return plat, nil
}

// queryUSBDevices lists PnP entities whose name mentions USB, one entry
// per distinct device name.
func queryUSBDevices() []usbDevice {
	var entities []win32PnPEntity
	if err := wmi.Query("SELECT Name, Manufacturer, DeviceID FROM Win32_PnPEntity", &entities); err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var devices []usbDevice
	for _, e := range entities {
		if e.Name == "" || !strings.Contains(e.Name, "USB") || seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		devices = append(devices, usbDevice{
			Name:         e.Name,
			Manufacturer: e.Manufacturer,
			DeviceID:     e.DeviceID,
		})
	}
	return devices
}

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayDevicesW  = user32.NewProc("EnumDisplayDevicesW")
	procEnumDisplaySettingsW = user32.NewProc("EnumDisplaySettingsW")
)

const (
	enumCurrentSettings = 0xFFFFFFFF
	displayDeviceActive = 0x00000001
)

type displayDeviceW struct {
	Cb           uint32
	DeviceName   [32]uint16
	DeviceString [128]uint16
	StateFlags   uint32
	DeviceID     [128]uint16
	DeviceKey    [128]uint16
}

type devModeW struct {
	DeviceName       [32]uint16
	SpecVersion      uint16
	DriverVersion    uint16
	Size             uint16
	DriverExtra      uint16
	Fields           uint32
	Orientation      int16
	PaperSize        int16
	PaperLength      int16
	PaperWidth       int16
	Scale            int16
	Copies           int16
	DefaultSource    int16
	PrintQuality     int16
	Color            int16
	Duplex           int16
	YResolution      int16
	TTOption         int16
	Collate          int16
	FormName         [32]uint16
	LogPixels        uint16
	BitsPerPel       uint32
	PelsWidth        uint32
	PelsHeight       uint32
	DisplayFlags     uint32
	DisplayFrequency uint32
	ICMMethod        uint32
	ICMIntent        uint32
	MediaType        uint32
	DitherType       uint32
	Reserved1        uint32
	Reserved2        uint32
	PanningWidth     uint32
	PanningHeight    uint32
}

// enumMonitors walks the display adapters with EnumDisplayDevicesW and
// reads the active mode of each with EnumDisplaySettingsW. Adapters
// sharing a device string are reported once.
func enumMonitors() []monitorInfo {
	seen := make(map[string]bool)
	var monitors []monitorInfo

	for i := uint32(0); ; i++ {
		var dd displayDeviceW
		dd.Cb = uint32(unsafe.Sizeof(dd))
		ret, _, _ := procEnumDisplayDevicesW.Call(0, uintptr(i), uintptr(unsafe.Pointer(&dd)), 0)
		if ret == 0 {
			break
		}

		name := windows.UTF16ToString(dd.DeviceString[:])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var dm devModeW
		dm.Size = uint16(unsafe.Sizeof(dm))
		ret, _, _ = procEnumDisplaySettingsW.Call(
			uintptr(unsafe.Pointer(&dd.DeviceName[0])),
			uintptr(uint32(enumCurrentSettings)),
			uintptr(unsafe.Pointer(&dm)),
		)
		if ret == 0 {
			continue
		}

		monitors = append(monitors, monitorInfo{
			Name:      name,
			DeviceID:  windows.UTF16ToString(dd.DeviceID[:]),
			DeviceKey: windows.UTF16ToString(dd.DeviceKey[:]),
			Width:     dm.PelsWidth,
			Height:    dm.PelsHeight,
			RefreshHz: dm.DisplayFrequency,
			Active:    dd.StateFlags&displayDeviceActive != 0,
		})
	}
	return monitors
}
