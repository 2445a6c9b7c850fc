package phnx

import "fmt"

// Input validation helpers, checked at the boundaries where external
// data (CLI arguments, file contents, passwords) enters phnx's core
// algorithms.

// ValidateBuffer checks that buf is non-nil and at least minSize bytes.
func ValidateBuffer(buf []byte, name string, minSize int) error {
	if buf == nil {
		return &FormatError{Message: fmt.Sprintf("%s: buffer cannot be nil", name)}
	}
	if minSize > 0 && len(buf) < minSize {
		return &FormatError{Message: fmt.Sprintf("%s: buffer too small: got %d bytes, need at least %d", name, len(buf), minSize)}
	}
	return nil
}

// ValidatePassword checks that a password is non-empty.
func ValidatePassword(password []byte) error {
	if len(password) == 0 {
		return ErrEmptyPassword
	}
	return nil
}

// ValidateChunkSize checks that a streaming chunk size is a positive
// multiple of the cipher's 12-byte transpose block, as required by
// the bit-plane transpose in protected mode.
func ValidateChunkSize(size int) error {
	if size <= 0 {
		return &FormatError{Message: fmt.Sprintf("chunk size must be positive, got %d", size)}
	}
	if size%12 != 0 {
		return &FormatError{Message: fmt.Sprintf("chunk size %d is not a multiple of the 12-byte transpose block", size)}
	}
	return nil
}

// ValidateFilePath checks that path is non-empty.
func ValidateFilePath(path string) error {
	if path == "" {
		return &FormatError{Message: "file path cannot be empty"}
	}
	return nil
}
