package cripta

import (
	"fmt"
	"strconv"
	"strings"
)

// maxHexDigits is the number of hex digits that fit into one block.
const maxHexDigits = blockBits / 4

// MessageToHex writes the code of every character of message as upper-case
// hex, without padding, and concatenates the results.
func MessageToHex(message string) string {
	var sb strings.Builder
	for _, ch := range message {
		fmt.Fprintf(&sb, "%X", ch)
	}
	return sb.String()
}

// MessageToBlock turns a short text message into a 64-bit plaintext block by
// reading its character-code hex string as a number.
func MessageToBlock(message string) (uint64, error) {
	if message == "" {
		return 0, ErrEmptyMessage
	}

	digits := MessageToHex(message)
	if len(digits) > maxHexDigits {
		return 0, fmt.Errorf("%q needs %d hex digits, at most %d fit: %w",
			message, len(digits), maxHexDigits, ErrMessageTooLong)
	}

	block, err := strconv.ParseUint(digits, 16, blockBits)
	if err != nil {
		return 0, fmt.Errorf("message %q: %w", message, err)
	}

	return block, nil
}

// ParseBlock reads a 64-bit key or block written as at most 16 hex digits,
// with an optional 0x prefix.
func ParseBlock(s string) (uint64, error) {
	digits, ok := strings.CutPrefix(s, "0x")
	if !ok {
		digits, _ = strings.CutPrefix(s, "0X")
	}
	if digits == "" || len(digits) > maxHexDigits {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidBlock)
	}

	value, err := strconv.ParseUint(digits, 16, blockBits)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidBlock)
	}

	return value, nil
}
