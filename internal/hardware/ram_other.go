//go:build !windows && !linux

package hardware

import (
	"context"
	"errors"
)

// platformMemoryModules has no probe source on this platform; the RAM
// collector degrades to totals only.
func platformMemoryModules(_ context.Context) ([]ramModule, error) {
	return nil, errors.New("memory module enumeration is not supported on this platform")
}
