package phnx

import "fmt"

// KeySchedule is the 34-word round-key schedule derived from a
// password. It is produced once per invocation by DeriveKeySchedule and
// passed by value into every cipher call.
type KeySchedule [34]uint64

// Nonce is the 2-word (128-bit) value mixed into the counter to form
// each cipher block's input words. The body stream uses one per-file
// nonce word for every chunk; trailers use the fixed all-ones nonce.
type Nonce [2]uint64

// PasswordSource supplies the raw password bytes used as key material.
// Password derivation has exactly two sources in phnx: the environment
// variable and an interactive double-entry prompt (see key_provider.go).
type PasswordSource interface {
	Password() ([]byte, error)
}

// Config carries the per-invocation mode phnx applies to one file.
// Compatibility and protected mode share everything except whether the
// output is Golay-encoded and bit-plane transposed across eight slices.
type Config struct {
	// Compatibility selects compatibility mode (-c): encrypt the file
	// in place with a 16-byte trailer and no error correction. When
	// false, protected mode (-g) applies: Golay-encode and scatter the
	// ciphertext across eight slice files with a 24-byte trailer.
	Compatibility bool

	// Password is the raw password as supplied; DeriveKeySchedule does
	// the zero-padding or truncation to 32 bytes. It is never derived
	// through a KDF.
	Password []byte
}

// Validate checks that c is usable, returning a non-fatal warning
// string when the password length is outside the recommended 16-32
// byte range. An empty password is always rejected.
func (c *Config) Validate() (warning string, err error) {
	if c == nil {
		return "", fmt.Errorf("phnx: config cannot be nil")
	}
	if err := ValidatePassword(c.Password); err != nil {
		return "", err
	}
	switch {
	case len(c.Password) < 16:
		return fmt.Sprintf("warning: password is %d bytes, shorter than the recommended 16", len(c.Password)), nil
	case len(c.Password) > 32:
		return fmt.Sprintf("warning: password is %d bytes, longer than 32 will be truncated", len(c.Password)), nil
	default:
		return "", nil
	}
}
