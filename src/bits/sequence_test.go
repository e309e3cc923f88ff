package bits_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"

	"github.com/lost-woods/randtest/src/bits"
)

func TestDecode_Unpacked(t *testing.T) {
	seq, err := bits.Decode(bytes.NewReader([]byte{0, 1, 1, 0, 2}), bits.Unpacked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := bits.Sequence{0, 1, 1, 0, 1}
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Fatalf("unpacked mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_PackedIsMSBFirst(t *testing.T) {
	in := []byte{0x80, 0x01, 0xA5}
	seq, err := bits.Decode(bytes.NewReader(in), bits.Packed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq.Len() != 8*len(in) {
		t.Fatalf("len=%d want %d", seq.Len(), 8*len(in))
	}
	for i, b := range in {
		for j := 0; j < 8; j++ {
			want := (b >> uint(7-j)) & 1
			if seq[8*i+j] != want {
				t.Fatalf("bit %d of byte %d: got %d want %d", j, i, seq[8*i+j], want)
			}
		}
	}
}

func TestDecode_TextSkipsEverythingElse(t *testing.T) {
	in := "10 1\r\n0x2_1\n\n0"
	seq, err := bits.Decode(bytes.NewBufferString(in), bits.Text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := bits.Sequence{1, 0, 1, 0, 1, 0}
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_ZeroBitsIsInputUnavailable(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		mode bits.Mode
	}{
		{"empty unpacked", nil, bits.Unpacked},
		{"empty packed", []byte{}, bits.Packed},
		{"text without digits", []byte("abc\n\n 2 3"), bits.Text},
	}

	for _, tc := range cases {
		_, err := bits.Decode(bytes.NewReader(tc.in), tc.mode)
		if !errors.Is(err, bits.ErrInputUnavailable) {
			t.Fatalf("%s: got %v want ErrInputUnavailable", tc.name, err)
		}
	}
}

func TestDecode_ReadErrorIsInputUnavailable(t *testing.T) {
	r := iotest.ErrReader(errors.New("device gone"))
	if _, err := bits.Decode(r, bits.Packed); !errors.Is(err, bits.ErrInputUnavailable) {
		t.Fatalf("got %v want ErrInputUnavailable", err)
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seq.txt")
	if err := os.WriteFile(path, []byte("0110\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	seq, err := bits.DecodeFile(path, bits.Text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(bits.Sequence{0, 1, 1, 0}, seq); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := bits.DecodeFile(filepath.Join(dir, "missing"), bits.Text); !errors.Is(err, bits.ErrInputUnavailable) {
		t.Fatalf("missing file: got %v want ErrInputUnavailable", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    bits.Mode
		wantErr bool
	}{
		{"unpacked", bits.Unpacked, false},
		{"u", bits.Unpacked, false},
		{"PACKED", bits.Packed, false},
		{"p", bits.Packed, false},
		{" text ", bits.Text, false},
		{"t", bits.Text, false},
		{"hex", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		got, err := bits.ParseMode(tc.in)
		if tc.wantErr {
			if !errors.Is(err, bits.ErrInvalidMode) {
				t.Fatalf("input=%q expected ErrInvalidMode, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("input=%q unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("input=%q got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestSequence_Flip(t *testing.T) {
	seq := bits.Sequence{0, 1, 1, 0}
	flipped := seq.Flip()
	if diff := cmp.Diff(bits.Sequence{1, 0, 0, 1}, flipped); diff != "" {
		t.Fatalf("flip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bits.Sequence{0, 1, 1, 0}, seq); diff != "" {
		t.Fatalf("flip mutated its receiver (-want +got):\n%s", diff)
	}
}
