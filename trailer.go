package phnx

// Both trailer formats carry a CRC-32C duplicated into the two halves
// of one word (a cheap wrong-password detector: a correct key makes
// the halves agree after decryption), the body nonce, and — in
// protected mode only — the original file length. They are encrypted
// not with the body's CTR stream but at two fixed positions: nonce and
// counter both all-ones for the first block, and nonce all-ones with
// counter all-ones minus one for the second. This asymmetric choice is
// reproduced exactly as-is.

const allOnes = ^uint64(0)

// trailerGamma returns the two fixed keystream blocks the trailer is
// encrypted against.
func trailerGamma(schedule KeySchedule) (gamma1w0, gamma1w1, gamma2w0 uint64) {
	gamma1w0, gamma1w1 = encryptBlockWords(allOnes, allOnes, schedule)
	gamma2w0, _ = encryptBlockWords(allOnes, allOnes-1, schedule)
	return
}

// CompatTrailer is the 16-byte trailer appended to a compatibility-mode
// "<name>.encrypted" file.
type CompatTrailer struct {
	CRC   uint32
	Nonce uint64
}

// Encode encrypts t into its 16-byte wire form.
func (t CompatTrailer) Encode(schedule KeySchedule) [16]byte {
	w0 := uint64(t.CRC)<<32 | uint64(t.CRC)
	w1 := t.Nonce
	gamma1w0, gamma1w1, _ := trailerGamma(schedule)
	w0 ^= gamma1w0
	w1 ^= gamma1w1

	var out [16]byte
	wordToBytes(w0, out[0:8])
	wordToBytes(w1, out[8:16])
	return out
}

// DecodeCompatTrailer decrypts a 16-byte trailer. wrongPassword is true
// when the duplicated CRC halves disagree, the signal that the wrong
// password was supplied.
func DecodeCompatTrailer(buf [16]byte, schedule KeySchedule) (t CompatTrailer, wrongPassword bool) {
	w0 := bytesToWord(buf[0:8])
	w1 := bytesToWord(buf[8:16])
	gamma1w0, gamma1w1, _ := trailerGamma(schedule)
	s0 := w0 ^ gamma1w0
	s1 := w1 ^ gamma1w1

	crcLo := uint32(s0)
	crcHi := uint32(s0 >> 32)
	if crcLo != crcHi {
		return CompatTrailer{}, true
	}
	return CompatTrailer{CRC: crcLo, Nonce: s1}, false
}

// ProtectedTrailer is the 24-byte trailer carried through the Golay
// pipeline at the end of a protected-mode slice set.
type ProtectedTrailer struct {
	CRC    uint32
	Nonce  uint64
	Length int64
}

// Encode encrypts t into its 24-byte wire form.
func (t ProtectedTrailer) Encode(schedule KeySchedule) [24]byte {
	w0 := uint64(t.CRC)<<32 | uint64(t.CRC)
	w1 := t.Nonce
	w2 := uint64(t.Length)
	gamma1w0, gamma1w1, gamma2w0 := trailerGamma(schedule)
	w0 ^= gamma1w0
	w1 ^= gamma1w1
	w2 ^= gamma2w0

	var out [24]byte
	wordToBytes(w0, out[0:8])
	wordToBytes(w1, out[8:16])
	wordToBytes(w2, out[16:24])
	return out
}

// DecodeProtectedTrailer decrypts a 24-byte trailer.
func DecodeProtectedTrailer(buf [24]byte, schedule KeySchedule) (t ProtectedTrailer, wrongPassword bool) {
	w0 := bytesToWord(buf[0:8])
	w1 := bytesToWord(buf[8:16])
	w2 := bytesToWord(buf[16:24])
	gamma1w0, gamma1w1, gamma2w0 := trailerGamma(schedule)
	s0 := w0 ^ gamma1w0
	s1 := w1 ^ gamma1w1
	s2 := w2 ^ gamma2w0

	crcLo := uint32(s0)
	crcHi := uint32(s0 >> 32)
	if crcLo != crcHi {
		return ProtectedTrailer{}, true
	}
	return ProtectedTrailer{CRC: crcLo, Nonce: s1, Length: int64(s2)}, false
}

// ChecksumTag computes the single-word checksum tag embedded in a
// ".encrypted-XXXXXXXX" filename: the low word of encryptBlock applied
// to {crcBefore<<32 | crcAfter, length}.
func ChecksumTag(crcBefore, crcAfter uint32, length int64, schedule KeySchedule) uint32 {
	w0 := uint64(crcBefore)<<32 | uint64(crcAfter)
	w1 := uint64(length)
	out := encryptBlock([2]uint64{w0, w1}, schedule)
	return uint32(out[0])
}
