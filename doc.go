// Package phnx encrypts a file under a password, protects the ciphertext
// with a forward-error-correcting code, and splits the result across
// eight storage slices so the original file survives the loss of any
// one slice.
//
// # Overview
//
// phnx implements four tightly coupled pieces:
//
//   - a 128-bit block, 256-bit key, 34-round ARX cipher used in 4-way
//     counter mode to produce a keystream;
//   - a (24,12,8) perfect binary Golay code correcting up to three bit
//     errors per 24-bit codeword;
//   - a bit-plane transpose that encodes each of the 8 bit-planes of a
//     12-byte block through the Golay code independently and scatters
//     the eight resulting codewords across eight output slices;
//   - a file-processing state machine that detects the operation to
//     perform from the input filename, streams the block cipher over
//     the file in counter mode, and appends an encrypted trailer
//     carrying a CRC-32C checksum, a nonce, and (in protected mode)
//     the original length.
//
// # Modes
//
// Compatibility mode encrypts a file in place and appends a 16-byte
// trailer, producing a single "<name>.encrypted" file with no error
// correction. Protected mode additionally Golay-encodes the ciphertext
// and bit-plane-transposes it across eight "<name>.phnx_A".."phnx_H"
// slice files; any single slice can be deleted, or have up to three
// bits flipped per 24-byte aligned group, without losing data.
//
// # Basic usage
//
//	schedule := phnx.DeriveKeySchedule([]byte("correct horse battery staple"))
//	err := phnx.ProcessFile("photo.jpg", schedule, phnx.Config{})
//
// # Security considerations
//
// Protected against:
//   - accidental loss or corruption of a single storage slice;
//   - detection of a wrong decryption password before any output is
//     written.
//
// Not protected against:
//   - an active adversary who can coherently modify multiple slices;
//   - cryptographic tampering in the AEAD sense — integrity uses
//     unauthenticated CRC-32C checksums carried inside the encrypted
//     trailer, not a MAC;
//   - weak passwords — the password is used directly as key material
//     (after zero-padding to 32 bytes) with no key-derivation function.
//
// # Wire format
//
// Compatibility file: ciphertext followed by a 16-byte trailer (two
// little-endian uint64 words: duplicated CRC-32C, then nonce),
// CTR-encrypted with nonce=all-ones, counter=all-ones.
//
// Protected slice (one of eight): the Golay-encoded, bit-plane
// transposed ciphertext, followed by a 24-byte trailer carried through
// the same pipeline (duplicated CRC-32C, nonce, original length).
package phnx
