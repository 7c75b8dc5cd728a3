package util

import "runtime"

// GetOptimalPoolSize sizes parser pools and checker worker counts:
// twice the CPU count, clamped to [4, 32]. Tree-sitter parsing happens in
// cgo, so oversubscribing cores keeps them busy while goroutines block in C.
//
// The parser pool and the checker workers must agree on this number, or
// workers end up waiting on parsers.
func GetOptimalPoolSize() int {
	n := runtime.NumCPU() * 2
	if n < 4 {
		return 4
	}
	if n > 32 {
		return 32
	}
	return n
}

// GetOptimalPoolSizeWithOverride returns override when positive, otherwise
// GetOptimalPoolSize.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
