//go:build !windows && !linux

package hardware

import (
	"context"
	"errors"
)

func platformSystem(_ context.Context) (systemPlatform, error) {
	return systemPlatform{}, errors.New("machine identity probe is not supported on this platform")
}
