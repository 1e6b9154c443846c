package errors

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrEmptyData", ErrEmptyData},
		{"ErrSerialization", ErrSerialization},
		{"ErrDeserialization", ErrDeserialization},
		{"ErrECCRecovery", ErrECCRecovery},
		{"ErrShamirSplit", ErrShamirSplit},
		{"ErrShamirCombine", ErrShamirCombine},
		{"ErrAEADEncryption", ErrAEADEncryption},
		{"ErrAEADDecryption", ErrAEADDecryption},
		{"ErrSizeLimit", ErrSizeLimit},
		{"ErrCancelled", ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Error("sentinel error should not be nil")
			}
			if tt.err.Error() == "" {
				t.Error("sentinel error should have a message")
			}
		})
	}
}

func TestContainerError(t *testing.T) {
	baseErr := errors.New("underlying error")
	cErr := NewContainerError("recover", baseErr)

	if cErr.Error() != "container recover: underlying error" {
		t.Errorf("unexpected error message: %s", cErr.Error())
	}
	if cErr.Unwrap() != baseErr {
		t.Error("Unwrap should return underlying error")
	}

	nilErr := NewContainerError("wrap", nil)
	if nilErr.Error() != "container wrap failed" {
		t.Errorf("unexpected message for nil: %s", nilErr.Error())
	}
}

func TestShamirError(t *testing.T) {
	baseErr := errors.New("insufficient shares")
	sErr := NewShamirError("combine", baseErr)

	if sErr.Error() != "shamir combine: insufficient shares" {
		t.Errorf("unexpected error message: %s", sErr.Error())
	}
	if sErr.Unwrap() != baseErr {
		t.Error("Unwrap should return underlying error")
	}
}

func TestAEADError(t *testing.T) {
	baseErr := errors.New("tag mismatch")
	aErr := NewAEADError("decrypt", baseErr)

	if aErr.Error() != "aead decrypt: tag mismatch" {
		t.Errorf("unexpected error message: %s", aErr.Error())
	}
	if !errors.Is(aErr, baseErr) {
		t.Error("errors.Is should see through Unwrap")
	}
}

func TestIsAndAs(t *testing.T) {
	if !Is(ErrEmptyData, ErrEmptyData) {
		t.Error("Is should return true for same error")
	}
	if Is(ErrEmptyData, ErrSizeLimit) {
		t.Error("Is should return false for different errors")
	}

	cErr := NewContainerError("test", errors.New("test"))
	var target *ContainerError
	if !As(cErr, &target) {
		t.Error("As should find ContainerError")
	}
	if target.Op != "test" {
		t.Errorf("unexpected Op: %s", target.Op)
	}
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base")
	wrapped := Wrap(baseErr, "context")

	if wrapped.Error() != "context: base" {
		t.Errorf("unexpected wrapped message: %s", wrapped.Error())
	}
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}
