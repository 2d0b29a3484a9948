// Package align provides the integer alignment helpers used by buffer
// layout arithmetic.
package align

import (
	"github.com/cockroachdb/errors"
)

// Up rounds value up to the next multiple of alignment.
// An alignment of 0 or 1 leaves value unchanged. Alignments need not be
// powers of two; stride alignments derived from lcm often are not.
func Up(value, alignment uint32) uint32 {
	if alignment <= 1 {
		return value
	}
	return (value + alignment - 1) / alignment * alignment
}

// Up64 is Up for 64-bit sizes.
func Up64(value, alignment uint64) uint64 {
	if alignment <= 1 {
		return value
	}
	return (value + alignment - 1) / alignment * alignment
}

// IsPowerOfTwo reports whether v is a non-zero power of two.
func IsPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// CheckPow2 returns an assertion failure naming the offending value when
// v is not a power of two.
func CheckPow2(v uint32, name string) error {
	if !IsPowerOfTwo(v) {
		return errors.AssertionFailedf("%s must be a power of two, got %d", name, v)
	}
	return nil
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b.
// When either argument is zero the other is returned, so an absent
// constraint never collapses the result to zero.
func LCM(a, b uint32) uint32 {
	if a == 0 || b == 0 {
		return max(a, b)
	}
	return a / GCD(a, b) * b
}
