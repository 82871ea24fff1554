//go:build !amd64
// +build !amd64

package geocluster

// hasSIMDAcceleration reports false on architectures without an
// AVX2-equivalent fast path wired up; the batched-geometry option
// simply has no effect there.
func hasSIMDAcceleration() bool {
	return false
}
