package source

import (
	"fmt"
	"os"

	"github.com/lost-woods/randtest/src/bits"
)

const Stdin = "-"

// Load decodes path under mode m and returns the name used in report
// banners. The path "-" reads standard input.
func Load(path string, m bits.Mode) (bits.Sequence, string, error) {
	if path == Stdin {
		seq, err := bits.Decode(os.Stdin, m)
		if err != nil {
			return nil, "stdin", fmt.Errorf("stdin: %w", err)
		}
		return seq, "stdin", nil
	}

	seq, err := bits.DecodeFile(path, m)
	if err != nil {
		return nil, path, fmt.Errorf("%s: %w", path, err)
	}
	return seq, path, nil
}
