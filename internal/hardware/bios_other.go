//go:build !windows && !linux

package hardware

import "context"

func platformBIOS(_ context.Context) (biosInfo, error) {
	return biosInfo{}, unsupported(DomainBIOS)
}
