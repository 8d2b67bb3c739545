package wire

import "math"

// Float64bits and Float64frombits are thin aliases over math.Float64bits
// so callers needing the raw IEEE 754 bit pattern (to inspect the biased
// exponent for NaN/Inf detection, as the conformance checker does) don't
// need a separate import.
func Float64bits(f float64) uint64    { return math.Float64bits(f) }
func Float64frombits(b uint64) float64 { return math.Float64frombits(b) }

// IsFiniteBits reports whether the IEEE 754 binary64 bit pattern
// represents a finite value, i.e. its 11-bit biased exponent is not
// 0x7FF (which marks both infinities and all NaNs).
func IsFiniteBits(bits uint64) bool {
	const exponentMask = 0x7FF0000000000000
	return bits&exponentMask != exponentMask
}
