package phnx

import "math/bits"

// The block cipher is a 128-bit block, 256-bit key, 34-round ARX
// construction (a Speck-family round function). The chunk loop runs it
// in 4-way counter mode via encryptBlock4 to produce a keystream, which
// is XORed with plaintext/ciphertext; the trailer uses single-block
// encryptBlock calls at fixed nonce/counter positions instead.

// round applies one ARX round in place: x is rotated right 8, added to
// y, XORed with the round key; y is rotated left 3 and XORed with the
// new x.
func round(x, y *uint64, k uint64) {
	*x = bits.RotateLeft64(*x, -8)
	*x += *y
	*x ^= k
	*y = bits.RotateLeft64(*y, 3)
	*y ^= *x
}

// scheduleKey expands a 4-word key into the 34-word round schedule.
func scheduleKey(key [4]uint64) KeySchedule {
	var schedule KeySchedule
	a := key[0]
	bcd := [3]uint64{key[1], key[2], key[3]}
	for i := 0; i < 33; i++ {
		schedule[i] = a
		round(&bcd[i%3], &a, uint64(i))
	}
	schedule[33] = a
	return schedule
}

// encryptBlock runs the full 34-round schedule over one 128-bit block.
// Following the reference convention, the two input words are swapped
// on entry (x = pt[1], y = pt[0]) and swapped back on exit.
func encryptBlock(pt [2]uint64, schedule KeySchedule) [2]uint64 {
	x, y := pt[1], pt[0]
	for i := 0; i < 34; i++ {
		round(&x, &y, schedule[i])
	}
	return [2]uint64{y, x}
}

// encryptBlock4 is the 4-lane batch form of encryptBlock: in[0:4] are
// the four lanes' y-words (the first input word of each block) and
// in[4:8] are the four lanes' x-words (the second input word of each
// block), matching encryptBlock's internal swap applied independently
// per lane. This is the scalar reference form; the original's AVX2
// intrinsic form produces byte-identical output and is out of scope.
func encryptBlock4(in [8]uint64, schedule KeySchedule) [8]uint64 {
	out := in
	for i := 0; i < 34; i++ {
		si := schedule[i]
		round(&out[4], &out[0], si)
		round(&out[5], &out[1], si)
		round(&out[6], &out[2], si)
		round(&out[7], &out[3], si)
	}
	return out
}

// bytesToWord packs up to 8 little-endian bytes into a uint64, matching
// the reference's bytes_to_uint64.
func bytesToWord(b []byte) uint64 {
	var w uint64
	for i, v := range b {
		w |= uint64(v) << (uint(i) * 8)
	}
	return w
}

// wordToBytes unpacks a uint64 into 8 little-endian bytes.
func wordToBytes(w uint64, out []byte) {
	for i := 0; i < 8; i++ {
		out[i] = byte(w >> (uint(i) * 8))
	}
}

// encryptBlockWords encrypts a single block given as two explicit
// words, for use by the trailer's fixed-position keystream derivation
// (nonce=all-ones, counter=all-ones or all-ones-1).
func encryptBlockWords(w0, w1 uint64, schedule KeySchedule) (uint64, uint64) {
	out := encryptBlock([2]uint64{w0, w1}, schedule)
	return out[0], out[1]
}

// ScheduleKey and EncryptBlock re-export the unexported key schedule
// and single-block primitives for the known-answer self-test, which
// lives outside this package.
func ScheduleKey(key [4]uint64) KeySchedule          { return scheduleKey(key) }
func EncryptBlock(pt [2]uint64, s KeySchedule) [2]uint64 { return encryptBlock(pt, s) }
