package eccpack

import (
	"bytes"
	"testing"
)

func TestBuildAlwaysHasBaselineCopy(t *testing.T) {
	pack, err := Build([]byte("1234567890"), 0.0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(pack.Blocks) != 1 {
		t.Fatalf("at damage_level=0 expected exactly 1 block, got %d", len(pack.Blocks))
	}
	if pack.Blocks[0].Algorithm != AlgorithmVerbatim {
		t.Fatalf("baseline block should be verbatim, got algorithm %d", pack.Blocks[0].Algorithm)
	}
}

func TestBuildEmptyPayloadErrors(t *testing.T) {
	if _, err := Build(nil, 1.0); err == nil {
		t.Error("Build should reject an empty payload")
	}
}

func TestBuildEmitsRSBlockAtModerateDamage(t *testing.T) {
	payload := []byte("1234567890")
	pack, err := Build(payload, 0.5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var hasRS bool
	for _, b := range pack.Blocks {
		if b.Algorithm == AlgorithmReedSolomon {
			hasRS = true
		}
	}
	if !hasRS {
		t.Error("damage_level=0.5 should emit an RS parity block")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte("abcdefgh")
	pack, err := Build(payload, 2.5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	encoded := pack.Encode()

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Blocks) != len(pack.Blocks) {
		t.Fatalf("len(decoded.Blocks) = %d, want %d", len(decoded.Blocks), len(pack.Blocks))
	}
	for i, b := range pack.Blocks {
		if decoded.Blocks[i].Algorithm != b.Algorithm || !bytes.Equal(decoded.Blocks[i].Bytes, b.Bytes) {
			t.Fatalf("block %d mismatch: got %+v, want %+v", i, decoded.Blocks[i], b)
		}
	}
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	payload := []byte("abcdefgh")
	pack, _ := Build(payload, 1.0)
	encoded := pack.Encode()

	if _, err := Decode(encoded[:len(encoded)-1]); err == nil {
		t.Error("Decode should reject a truncated pack")
	}
}
