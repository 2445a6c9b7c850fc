package phnx

// Bit-plane transpose works in two passes. First, each of the 12
// plaintext bytes in a block contributes one bit to each of 8
// independent 12-bit values — bit-plane i's bit j is bit i of byte j —
// and each bit-plane is Golay-encoded into its own 24-bit codeword.
// Second, those eight codewords are themselves bit-transposed: bit
// (3k+t) of codeword i becomes bit i of slice k's byte t. Losing one
// whole slice therefore costs every codeword exactly 3 specific bit
// positions, always within the Golay code's 3-bit correction radius.
// This is the scalar reference form; the original's BMI2 pext/pdep
// form produces byte-identical output and is out of scope.

// transposeEncode Golay-encodes a 12-byte plaintext block (zero-padded
// if data is shorter than 12 bytes) into eight 3-byte groups, one per
// slice.
func transposeEncode(data []byte, gc *GolayCode) [8][3]byte {
	var block [12]byte
	copy(block[:], data)

	var codewords [8]uint32
	for i := 0; i < 8; i++ {
		var val uint32
		for j := 0; j < 12; j++ {
			if block[j]&(1<<uint(i)) != 0 {
				val |= 1 << uint(j)
			}
		}
		codewords[i] = gc.Encode(val)
	}

	var groups [8][3]byte
	for k := 0; k < 8; k++ {
		for t := 0; t < 3; t++ {
			bitPos := uint(k*3 + t)
			var b byte
			for i := 0; i < 8; i++ {
				if codewords[i]&(1<<bitPos) != 0 {
					b |= 1 << uint(i)
				}
			}
			groups[k][t] = b
		}
	}
	return groups
}

// transposeDecode is the inverse of transposeEncode: eight 3-byte
// groups (one per slice, all-zero for a missing slice) are recombined
// into eight 24-bit codewords, Golay-decoded, and reassembled into a
// 12-byte plaintext block. copyLen bytes of the block are copied into
// out.
func transposeDecode(groups [8][3]byte, gc *GolayCode, out []byte, copyLen int) {
	var block [12]byte
	for i := 0; i < 8; i++ {
		var codeword uint32
		for k := 0; k < 8; k++ {
			for t := 0; t < 3; t++ {
				if groups[k][t]&(1<<uint(i)) != 0 {
					codeword |= 1 << uint(k*3+t)
				}
			}
		}
		// The reference deposits x's bits directly without checking the
		// uncorrectable sentinel: -1 as a bit pattern has every bit set,
		// so an uncorrectable codeword sets every bit of this bit-plane
		// to 1 rather than leaving it untouched. Reproduced as-is.
		val := uint32(gc.Decode(codeword))
		for j := 0; j < 12; j++ {
			if val&(1<<uint(j)) != 0 {
				block[j] |= 1 << uint(i)
			}
		}
	}
	copy(out[:copyLen], block[:copyLen])
}
