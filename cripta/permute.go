package cripta

import "fmt"

// blockBits is the width of the container every DES quantity lives in.
const blockBits = 64

// Permute applies rule to value. Bits are numbered 1..64 starting from the
// most significant bit, so output bit i is input bit rule[i-1]. The result is
// left-aligned: a rule of length n fills the top n bits and leaves the rest
// zero.
func Permute(value uint64, rule []int) uint64 {
	var result uint64

	for i, pos := range rule {
		bit := (value >> (blockBits - pos)) & 1
		result |= bit << (blockBits - 1 - i)
	}

	return result
}

// checkRule reports the first entry of rule that does not address a bit of a
// 64-bit word.
func checkRule(name string, rule []int, length int) error {
	if len(rule) != length {
		return fmt.Errorf("%s must have %d entries, got %d",
			name, length, len(rule))
	}

	for i, pos := range rule {
		if pos < 1 || pos > blockBits {
			return fmt.Errorf("%s[%d] = %d is out of range 1..%d",
				name, i, pos, blockBits)
		}
	}

	return nil
}

// leftMask returns a word with its top width bits set.
func leftMask(width int) uint64 {
	if width <= 0 {
		return 0
	}
	return ^uint64(0) << (blockBits - width)
}
