//go:build !linux || !cgo

package hardware

// The NVIDIA management library is only loaded on Linux.
func (c *gpuCollector) nvmlBlocks(_ bool) []string {
	return nil
}
