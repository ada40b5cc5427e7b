package cripta

import "errors"

var (
	// ErrWrongSubkeyCount is returned when an encryption is handed a
	// round key sequence that does not hold exactly one key per round.
	ErrWrongSubkeyCount = errors.New("wrong subkey count")

	// ErrKeyNotSet is returned by a cipher asked to encrypt before SetKey
	// was called.
	ErrKeyNotSet = errors.New("key not set")

	// ErrEmptyMessage is returned when there is no text to convert into a
	// block.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMessageTooLong is returned when the character codes of a message
	// do not fit into a single 64-bit block.
	ErrMessageTooLong = errors.New("message does not fit into one block")

	// ErrInvalidBlock is returned when a hex string cannot be read as a
	// 64-bit block or key.
	ErrInvalidBlock = errors.New("invalid 64-bit hex value")
)
