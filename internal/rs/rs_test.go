package rs

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	data := []byte("hello reed-solomon")
	codec, err := New(len(data), 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	parity, err := codec.EncodeParity(data)
	if err != nil {
		t.Fatalf("EncodeParity: %v", err)
	}
	if len(parity) != 8 {
		t.Fatalf("len(parity) = %d, want 8", len(parity))
	}

	combined := append(append([]byte(nil), data...), parity...)
	corrected, err := codec.Correct(combined)
	if err != nil {
		t.Fatalf("Correct on clean input: %v", err)
	}
	if !bytes.Equal(corrected, data) {
		t.Fatalf("Correct = %q, want %q", corrected, data)
	}
}

func TestCorrectsErrors(t *testing.T) {
	data := []byte("0123456789abcdef") // 16 bytes
	codec, err := New(len(data), 8)    // tolerates up to 4 byte errors
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	parity, err := codec.EncodeParity(data)
	if err != nil {
		t.Fatalf("EncodeParity: %v", err)
	}
	combined := append(append([]byte(nil), data...), parity...)

	combined[0] ^= 0xFF
	combined[3] ^= 0xFF
	combined[20] ^= 0xFF

	corrected, err := codec.Correct(combined)
	if err != nil {
		t.Fatalf("Correct with 3 errors: %v", err)
	}
	if !bytes.Equal(corrected, data) {
		t.Fatalf("Correct = %q, want %q", corrected, data)
	}
}

func TestSizeLimit(t *testing.T) {
	_, err := New(200, 100)
	if err == nil {
		t.Fatal("expected an error when data+ecc exceeds the 255-byte block limit")
	}
}
