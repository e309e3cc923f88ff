package bits

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrInputUnavailable means no usable bits could be obtained from the source.
	ErrInputUnavailable = errors.New("input unavailable")
	ErrInvalidMode      = errors.New("invalid mode")
)

type Bit = uint8

// Sequence holds one bit per element. Analyzers treat it as read-only.
type Sequence []Bit

func (s Sequence) Len() int { return len(s) }

// Flip returns a complemented copy of s.
func (s Sequence) Flip() Sequence {
	out := make(Sequence, len(s))
	for i, b := range s {
		out[i] = b ^ 1
	}
	return out
}

type Mode int

const (
	Unpacked Mode = iota
	Packed
	Text
)

func (m Mode) String() string {
	switch m {
	case Unpacked:
		return "unpacked"
	case Packed:
		return "packed"
	case Text:
		return "text"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the long names and the single-letter flags of the CLI.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unpacked", "u":
		return Unpacked, nil
	case "packed", "p":
		return Packed, nil
	case "text", "t":
		return Text, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Decode reads r to the end and converts it to a Sequence under mode m.
// A source yielding zero bits is reported as ErrInputUnavailable.
func Decode(r io.Reader, m Mode) (Sequence, error) {
	if m != Unpacked && m != Packed && m != Text {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, m)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read failed: %w", ErrInputUnavailable, err)
	}

	var seq Sequence
	switch m {
	case Unpacked:
		seq = make(Sequence, len(data))
		for i, b := range data {
			if b != 0 {
				seq[i] = 1
			}
		}
	case Packed:
		seq = make(Sequence, 0, len(data)*8)
		for _, b := range data {
			for shift := 7; shift >= 0; shift-- {
				seq = append(seq, (b>>uint(shift))&1)
			}
		}
	case Text:
		seq = make(Sequence, 0, len(data))
		for _, b := range data {
			switch b {
			case '0':
				seq = append(seq, 0)
			case '1':
				seq = append(seq, 1)
			}
		}
	}

	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: no %s bits decoded", ErrInputUnavailable, m)
	}
	return seq, nil
}

// DecodeFile opens path and decodes it. Open failures are ErrInputUnavailable.
func DecodeFile(path string, m Mode) (Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}
	defer f.Close()

	return Decode(f, m)
}
