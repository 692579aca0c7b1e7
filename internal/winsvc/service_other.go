//go:build !windows

package winsvc

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

var errUnsupported = errors.New("windows services are only supported on Windows")

// IsWindowsService always returns false on non-Windows platforms.
func IsWindowsService() bool { return false }

// RunService is not supported on non-Windows platforms.
func RunService(_ string, _ *zap.Logger, _ func(ctx context.Context) error) error {
	return errUnsupported
}

// NewEventLogLogger is not supported on non-Windows platforms.
func NewEventLogLogger(_ string) (*zap.Logger, error) {
	return nil, errUnsupported
}

// Install is not supported on non-Windows platforms.
func Install(_, _, _, _ string, _ []string) error { return errUnsupported }

// Uninstall is not supported on non-Windows platforms.
func Uninstall(_ string) error { return errUnsupported }

// Start is not supported on non-Windows platforms.
func Start(_ string) error { return errUnsupported }

// Stop is not supported on non-Windows platforms.
func Stop(_ string) error { return errUnsupported }

// ExePath returns the path to the currently running executable.
func ExePath() (string, error) {
	return "", errUnsupported
}
