package source_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lost-woods/randtest/src/bits"
	"github.com/lost-woods/randtest/src/source"
)

func TestCheckSample_AllSameFails(t *testing.T) {
	if err := source.CheckSample(make([]byte, 256)); !errors.Is(err, source.ErrSuspiciousSample) {
		t.Fatalf("expected ErrSuspiciousSample for all-identical sample, got %v", err)
	}
}

func TestCheckSample_RepeatingWordsFail(t *testing.T) {
	buf := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 64)
	if err := source.CheckSample(buf); !errors.Is(err, source.ErrSuspiciousSample) {
		t.Fatalf("expected ErrSuspiciousSample for repeating words, got %v", err)
	}
}

func TestCheckSample_FewDistinctValuesFail(t *testing.T) {
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(i*7) % 5
	}
	if err := source.CheckSample(buf); !errors.Is(err, source.ErrSuspiciousSample) {
		t.Fatalf("expected ErrSuspiciousSample for 5 distinct values, got %v", err)
	}
}

func TestCheckSample_OKOnVariedBytes(t *testing.T) {
	buf := make([]byte, 256)
	for i := 0; i < len(buf); i++ {
		buf[i] = byte(i)
	}
	if err := source.CheckSample(buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := source.CheckSample([]byte{7}); err != nil {
		t.Fatalf("single byte should not be judged: %v", err)
	}
}

type shortReader struct{ n int }

func (r *shortReader) Read(p []byte) (int, error) {
	if r.n == 0 {
		return 0, errors.New("timeout")
	}
	n := copy(p, bytes.Repeat([]byte{1}, r.n))
	r.n -= n
	return n, nil
}

func TestCapture(t *testing.T) {
	buf, err := source.Capture(bytes.NewReader([]byte{1, 2, 3, 4, 5}), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4}) {
		t.Fatalf("got %v", buf)
	}

	if _, err := source.Capture(&shortReader{n: 3}, 8); !errors.Is(err, bits.ErrInputUnavailable) {
		t.Fatalf("short read: got %v want ErrInputUnavailable", err)
	}
	if _, err := source.Capture(bytes.NewReader(nil), 0); !errors.Is(err, bits.ErrInputUnavailable) {
		t.Fatalf("zero size: got %v want ErrInputUnavailable", err)
	}
}

func TestSerialConfig_Validate(t *testing.T) {
	tests := []struct {
		cfg     source.SerialConfig
		wantErr bool
	}{
		{source.SerialConfig{Name: "/dev/ttyACM0", Baud: 115200, ReadTimeout: time.Second}, false},
		{source.SerialConfig{Baud: 115200}, true},
		{source.SerialConfig{Name: "COM3", Baud: 0}, true},
		{source.SerialConfig{Name: "COM3", Baud: 9600, ReadTimeout: -time.Millisecond}, true},
	}

	for _, tc := range tests {
		err := tc.cfg.Validate()
		if (err != nil) != tc.wantErr {
			t.Fatalf("cfg=%+v err=%v wantErr=%v", tc.cfg, err, tc.wantErr)
		}
	}

	if _, err := source.OpenSerial(source.SerialConfig{}); !errors.Is(err, bits.ErrInputUnavailable) {
		t.Fatalf("open without device: got %v want ErrInputUnavailable", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.bin")
	if err := os.WriteFile(path, []byte{0xF0}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	seq, name, err := source.Load(path, bits.Packed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != path || seq.Len() != 8 || seq[0] != 1 || seq[7] != 0 {
		t.Fatalf("got name=%q seq=%v", name, seq)
	}

	_, _, err = source.Load(filepath.Join(t.TempDir(), "nope"), bits.Packed)
	if !errors.Is(err, bits.ErrInputUnavailable) {
		t.Fatalf("missing: got %v want ErrInputUnavailable", err)
	}
}
