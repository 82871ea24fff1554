//go:build amd64
// +build amd64

package geocluster

import "golang.org/x/sys/cpu"

// hasSIMDAcceleration reports whether the host CPU supports AVX2. It
// sets Config.PreferBatchedGeometry's default; the batched path itself
// is plain Go loops over flat slices.
func hasSIMDAcceleration() bool {
	return cpu.X86.HasAVX2
}
