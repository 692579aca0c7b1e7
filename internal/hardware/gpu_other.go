//go:build !windows

package hardware

import (
	"context"
	"errors"
)

// platformGPUAdapters has no OS adapter enumeration off Windows; the
// PCI and NVML sources cover these platforms.
func platformGPUAdapters(_ context.Context) ([]gpuAdapter, error) {
	return nil, errors.New("display adapter enumeration is not supported on this platform")
}
