package source

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/lost-woods/randtest/src/bits"
)

// SerialConfig describes a hardware TRNG presented as a serial port
// (e.g. /dev/ttyACM0 or COM3).
type SerialConfig struct {
	Name        string
	Baud        int
	ReadTimeout time.Duration
}

func (c SerialConfig) Validate() error {
	if c.Name == "" {
		return errors.New("serial device name is required")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("invalid serial baud rate: %d", c.Baud)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("invalid serial read timeout: %s", c.ReadTimeout)
	}
	return nil
}

// OpenSerial opens the device for reading raw bytes.
func OpenSerial(cfg SerialConfig) (io.ReadCloser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", bits.ErrInputUnavailable, err)
	}

	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Name,
		Baud:        cfg.Baud,
		Size:        8,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", bits.ErrInputUnavailable, cfg.Name, err)
	}
	return p, nil
}

// Capture reads exactly n bytes from r.
func Capture(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: capture size must be positive, got %d", bits.ErrInputUnavailable, n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: serial RNG read failed: %v", bits.ErrInputUnavailable, err)
	}
	return buf, nil
}
