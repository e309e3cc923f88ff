package source

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrSuspiciousSample = errors.New("suspicious sample")

// CheckSample is a quick look at captured device output before the battery
// runs. It cannot prove randomness, but catches a disconnected or stuck
// device.
func CheckSample(buf []byte) error {
	if len(buf) < 2 {
		return nil
	}

	allSame := true
	for i := 1; i < len(buf); i++ {
		if buf[i] != buf[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return fmt.Errorf("%w: device appears stuck (all %d bytes are %#02x)", ErrSuspiciousSample, len(buf), buf[0])
	}

	if len(buf) >= 8 {
		var prev uint32
		repeats, words := 0, 0
		for i := 0; i+4 <= len(buf); i += 4 {
			w := binary.BigEndian.Uint32(buf[i : i+4])
			if words > 0 && w == prev {
				repeats++
			}
			prev = w
			words++
		}
		if words > 1 && repeats > (words-1)*3/4 {
			return fmt.Errorf("%w: device appears stuck (32-bit words repeating excessively)", ErrSuspiciousSample)
		}
	}

	if len(buf) >= 256 {
		var seen [256]bool
		distinct := 0
		for _, b := range buf {
			if !seen[b] {
				seen[b] = true
				distinct++
			}
		}
		if distinct < 8 {
			return fmt.Errorf("%w: only %d distinct byte values", ErrSuspiciousSample, distinct)
		}
	}

	return nil
}
