package phnx

import "testing"

// TestEncryptBlock_KnownAnswer checks the cipher against the reference
// known-answer test vector.
func TestEncryptBlock_KnownAnswer(t *testing.T) {
	key := [4]uint64{
		0x0706050403020100, 0x0F0E0D0C0B0A0908,
		0x1716151413121110, 0x1F1E1D1C1B1A1918,
	}
	plaintext := [2]uint64{0x202E72656E6F6F70, 0x65736F6874206E49}
	expected := [2]uint64{0x4EEEB48D9C188F43, 0x4109010405C0F53E}

	schedule := scheduleKey(key)
	observed := encryptBlock(plaintext, schedule)

	if observed != expected {
		t.Fatalf("encryptBlock() = %#x, %#x; want %#x, %#x",
			observed[0], observed[1], expected[0], expected[1])
	}
}

func TestBytesToWord_MatchesKnownAnswerPlaintext(t *testing.T) {
	got := [2]uint64{bytesToWord([]byte("pooner. ")), bytesToWord([]byte("In those"))}
	want := [2]uint64{0x202E72656E6F6F70, 0x65736F6874206E49}
	if got != want {
		t.Fatalf("bytesToWord() = %#x, %#x; want %#x, %#x", got[0], got[1], want[0], want[1])
	}
}

func TestWordToBytes_RoundTrip(t *testing.T) {
	want := uint64(0x0123456789ABCDEF)
	var buf [8]byte
	wordToBytes(want, buf[:])
	got := bytesToWord(buf[:])
	if got != want {
		t.Fatalf("round trip = %#x, want %#x", got, want)
	}
}

func TestEncryptBlock4_MatchesEncryptBlockPerLane(t *testing.T) {
	key := [4]uint64{1, 2, 3, 4}
	schedule := scheduleKey(key)

	nonce := uint64(0xAAAABBBBCCCCDDDD)
	counters := [4]uint64{10, 11, 12, 13}

	in := [8]uint64{nonce, nonce, nonce, nonce, counters[0], counters[1], counters[2], counters[3]}
	out := encryptBlock4(in, schedule)

	for lane := 0; lane < 4; lane++ {
		// encryptBlock swaps its two words on entry (x=pt[1], y=pt[0]) and
		// swaps back on exit, so feeding it {nonce, counter} lines up with
		// encryptBlock4's unswapped {y-lane, x-lane} = {nonce, counter}
		// layout and its unswapped output.
		want := encryptBlock([2]uint64{nonce, counters[lane]}, schedule)
		got := [2]uint64{out[lane], out[lane+4]}
		if got != want {
			t.Fatalf("lane %d: encryptBlock4 = %#x, %#x; equivalent single-block = %#x, %#x",
				lane, got[0], got[1], want[0], want[1])
		}
	}
}
