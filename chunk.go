package phnx

// ChunkSize is the streaming buffer size in bytes: 1200 CTR batches of
// four 16-byte blocks (64 bytes each), sized so it is always an exact
// multiple of both the 64-byte batch and the 12-byte transpose block.
const ChunkSize = 16 * 4 * 12 * 100

// ksOrder is the keystream word interleave order applied across the
// eight words produced by one encryptBlock4 batch. It alternates
// between the four nonce-derived lanes and the four counter-derived
// lanes; changing it changes the wire format.
var ksOrder = [8]int{0, 4, 1, 5, 2, 6, 3, 7}

func init() {
	if err := ValidateChunkSize(ChunkSize); err != nil {
		panic(err)
	}
}

// ctrCounters holds the four independent per-lane counters advanced by
// ctrXOR, one per 4-way batch lane.
type ctrCounters [4]uint64

// ctrXOR XORs buf[:n] in place with the keystream derived from
// nonceWord (repeated across all four lanes) and the running counters,
// which are advanced by 4 after every batch so a subsequent call
// continues the same stream.
func ctrXOR(buf []byte, n int, nonceWord uint64, counters *ctrCounters, schedule KeySchedule) {
	offset := 0
	for offset < n {
		in := [8]uint64{
			nonceWord, nonceWord, nonceWord, nonceWord,
			counters[0], counters[1], counters[2], counters[3],
		}
		out := encryptBlock4(in, schedule)
		counters[0] += 4
		counters[1] += 4
		counters[2] += 4
		counters[3] += 4

		var wb [8]byte
		for blockIdx, ksIdx := range ksOrder {
			wordToBytes(out[ksIdx], wb[:])
			base := offset + blockIdx*8
			for i := 0; i < 8; i++ {
				pos := base + i
				if pos < n {
					buf[pos] ^= wb[i]
				}
			}
		}
		offset += 64
	}
}

// golayReadAndDecode fills buf[:n] by reading 12-byte plaintext blocks
// from slices, one Golay-decoded bit-plane transpose group at a time.
func golayReadAndDecode(buf []byte, n int, slices *SliceSet, gc *GolayCode) error {
	if err := ValidateBuffer(buf, "golay decode buffer", n); err != nil {
		return err
	}
	blockOffset := 0
	for blockOffset < n {
		groups, err := slices.ReadGroup()
		if err != nil {
			return err
		}
		end := blockOffset + 12
		if end > len(buf) {
			end = len(buf)
		}
		copyLen := end - blockOffset
		transposeDecode(groups, gc, buf[blockOffset:], copyLen)
		blockOffset += 12
	}
	return nil
}

// golayEncodeAndWrite Golay-encodes data[:n] in 12-byte blocks
// (zero-padded in the final block) and writes one bit-plane transpose
// group to each slice.
func golayEncodeAndWrite(data []byte, n int, slices *SliceSet, gc *GolayCode) error {
	if err := ValidateBuffer(data, "golay encode buffer", n); err != nil {
		return err
	}
	blockOffset := 0
	var block [12]byte
	for blockOffset < n {
		copySize := 12
		if n-blockOffset < 12 {
			copySize = n - blockOffset
		}
		for i := copySize; i < 12; i++ {
			block[i] = 0
		}
		copy(block[:copySize], data[blockOffset:blockOffset+copySize])
		groups := transposeEncode(block[:], gc)
		if err := slices.WriteGroup(groups); err != nil {
			return err
		}
		blockOffset += 12
	}
	return nil
}
