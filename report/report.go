// Package report renders DES values and traces for people: bit strings,
// base64, hex and text tables.
package report

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Output formats understood by Ciphertext.
const (
	FormatBinary = "binary"
	FormatBase64 = "base64"
	FormatHex    = "hex"
	FormatAll    = "all"
)

// Formats lists every supported output format.
var Formats = []string{FormatBinary, FormatBase64, FormatHex, FormatAll}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Binary renders the top width bits of a left-aligned value, keeping leading
// zeros.
func Binary(value uint64, width int) string {
	if width < 0 {
		width = 0
	}
	if width > 64 {
		width = 64
	}

	bits := strconv.FormatUint(value, 2)
	bits = strings.Repeat("0", 64-len(bits)) + bits

	return bits[:width]
}

// Groups renders the top width bits of value in groups of size bits separated
// by spaces.
func Groups(value uint64, width, size int) string {
	bits := Binary(value, width)
	if size <= 0 {
		return bits
	}

	var sb strings.Builder
	for i := 0; i < len(bits); i += size {
		if i > 0 {
			sb.WriteByte(' ')
		}
		end := i + size
		if end > len(bits) {
			end = len(bits)
		}
		sb.WriteString(bits[i:end])
	}
	return sb.String()
}

// Hex renders a full 64-bit value as 16 upper-case hex digits.
func Hex(value uint64) string {
	return fmt.Sprintf("%016X", value)
}

// Base64 encodes the eight little-endian bytes of value.
func Base64(value uint64) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], value)
	return base64.StdEncoding.EncodeToString(buf[:])
}

// Ciphertext writes value to w in the requested format.
func Ciphertext(w io.Writer, value uint64, format string) error {
	var err error
	switch format {
	case FormatBinary:
		_, err = fmt.Fprintf(w, "binary representation: %s\n",
			Binary(value, 64))

	case FormatBase64:
		_, err = fmt.Fprintf(w, "base64 representation: %s\n",
			Base64(value))

	case FormatHex:
		_, err = fmt.Fprintf(w, "hex representation: %s\n", Hex(value))

	case FormatAll:
		for _, f := range []string{FormatBinary, FormatBase64, FormatHex} {
			if err := Ciphertext(w, value, f); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("unknown output format %q, expected one of %v",
			format, Formats)
	}

	return err
}
