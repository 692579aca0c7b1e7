//go:build !windows

package hardware

import "context"

// platformCPU has no extra sources off Windows; the portable probes
// already report everything available.
func platformCPU(_ context.Context) (cpuPlatform, error) {
	return cpuPlatform{}, nil
}
