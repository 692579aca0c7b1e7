//go:build !windows

package hardware

import "context"

// Adapter configuration and mapped network drives are Windows-only
// views; the portable interface probe covers everything else.

func platformAdapterConfigs(_ context.Context) ([]adapterConfig, error) {
	return nil, nil
}

func platformNetworkDrives(_ context.Context) ([]networkDrive, error) {
	return nil, nil
}
