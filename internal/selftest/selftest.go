// Package selftest runs the two built-in correctness checks the CLI
// performs before touching any file: a known-answer test of the block
// cipher, and a Monte-Carlo test of the Golay decoder confirming it
// corrects every codeword carrying up to three bit errors.
package selftest

import (
	"fmt"

	"github.com/notatuta/phnx"
)

// Cipher runs the block-cipher known-answer test: a fixed key and
// plaintext must encrypt to a fixed ciphertext.
func Cipher() error {
	key := [4]uint64{
		0x0706050403020100, 0x0F0E0D0C0B0A0908,
		0x1716151413121110, 0x1F1E1D1C1B1A1918,
	}
	plaintext := [2]uint64{0x202E72656E6F6F70, 0x65736F6874206E49}
	expected := [2]uint64{0x4EEEB48D9C188F43, 0x4109010405C0F53E}

	schedule := phnx.ScheduleKey(key)
	observed := phnx.EncryptBlock(plaintext, schedule)

	if observed != expected {
		return &phnx.SelfTestError{
			Component: "cipher",
			Message: fmt.Sprintf("expected %#x, %#x; observed %#x, %#x",
				expected[0], expected[1], observed[0], observed[1]),
		}
	}
	return nil
}

// lcg is the same linear congruential generator the reference
// implementation uses for its deterministic Golay self-test, matching
// glibc's rand() well enough to reproduce the same error patterns.
type lcg struct{ state uint32 }

func (g *lcg) next() uint32 {
	g.state = g.state*1103515245 + 12345
	return (g.state >> 16) & 0x7fff
}

// Golay runs 10,000 trials of each error count from 0 through 10 bit
// errors per 24-bit codeword, confirming the decoder corrects every
// case of 3 or fewer errors. Results for 4 or more errors are not
// checked.
func Golay() error {
	gc := &phnx.GolayCode{}
	rng := &lcg{state: 12345}

	for i := 0; i < 10000; i++ {
		for j := 0; j < 11; j++ {
			x := rng.next() & 0xfff
			y := gc.Encode(x)

			var errors uint32
			k := 0
			for k < j {
				bit := uint32(1) << (rng.next() % 24)
				if errors&bit == 0 {
					errors |= bit
					k++
				}
			}

			z := gc.Decode(y ^ errors)
			// Beyond 3 errors the code has no correction guarantee, so a
			// wrong (but non-negative) decode is expected there; only
			// flag a failure within the guaranteed correction radius.
			if j < 4 && (z < 0 || uint32(z) != x) {
				return &phnx.SelfTestError{
					Component: "golay",
					Message: fmt.Sprintf(
						"trial %d/%d: original %#x, transmitted %#x, errors %#x, decoded %#x",
						i, j, x, y, errors, z),
				}
			}
		}
	}
	return nil
}

// All runs every self-test in sequence, returning the first failure.
func All() error {
	if err := Cipher(); err != nil {
		return err
	}
	if err := Golay(); err != nil {
		return err
	}
	return nil
}
