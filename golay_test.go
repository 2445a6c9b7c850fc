package phnx

import (
	"math/bits"
	"testing"
)

func TestGolayCode_RoundTripNoErrors(t *testing.T) {
	gc := &GolayCode{}
	for x := uint32(0); x < 0x1000; x += 37 {
		codeword := gc.Encode(x)
		got := gc.Decode(codeword)
		if got != int32(x) {
			t.Fatalf("Decode(Encode(%#x)) = %#x, want %#x", x, got, x)
		}
	}
	if gc.Corrected != 0 {
		t.Fatalf("Corrected = %d, want 0 for error-free codewords", gc.Corrected)
	}
}

func TestGolayCode_CorrectsUpToThreeBitErrors(t *testing.T) {
	gc := &GolayCode{}
	x := uint32(0xABC)
	codeword := gc.Encode(x)

	for errorCount := 0; errorCount <= 3; errorCount++ {
		var errors uint32
		for b := 0; b < errorCount; b++ {
			errors |= 1 << uint(b*7) // spread across the 24-bit codeword
		}
		got := gc.Decode(codeword ^ errors)
		if got != int32(x) {
			t.Fatalf("%d-bit error: Decode() = %#x, want %#x", errorCount, got, x)
		}
	}
}

func TestGolayCode_FlagsUncorrectable(t *testing.T) {
	gc := &GolayCode{}
	x := uint32(0x5A5)
	codeword := gc.Encode(x)

	// Four flipped bits: with minimum distance 8, no valid codeword lies
	// within radius 3 of the result, so the decoder must flag it. (Heavier
	// patterns can alias: flipping all 24 bits yields another codeword.)
	heavyErrors := uint32(0x00000F) // 4 bits flipped
	got := gc.Decode(codeword ^ heavyErrors)
	if got != -1 {
		t.Fatalf("Decode() = %#x, want -1", got)
	}
	if gc.Processed != 1 {
		t.Fatalf("Processed = %d, want 1", gc.Processed)
	}
	if gc.Uncorrectable != 1 {
		t.Fatalf("Uncorrectable = %d, want 1", gc.Uncorrectable)
	}
}

func TestChecksumBits_Deterministic(t *testing.T) {
	for x := uint32(0); x < 0x1000; x += 113 {
		a := checksumBits(x)
		b := checksumBits(x)
		if a != b {
			t.Fatalf("checksumBits(%#x) not deterministic: %#x vs %#x", x, a, b)
		}
		if bits.Len32(a) > 12 {
			t.Fatalf("checksumBits(%#x) = %#x exceeds 12 bits", x, a)
		}
	}
}
