//go:build !windows && !linux

package hardware

import "context"

func platformMotherboard(_ context.Context) (motherboardInfo, error) {
	return motherboardInfo{}, unsupported(DomainMotherboard)
}
