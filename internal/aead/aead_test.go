package aead

import (
	"bytes"
	"testing"

	"Shardbox/internal/errors"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	plaintext := []byte("supersecret")

	ciphertext, tag, err := Encrypt(key, plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if len(tag) != TagSize {
		t.Fatalf("len(tag) = %d, want %d", len(tag), TagSize)
	}
	if bytes.Equal(ciphertext, plaintext) {
		t.Error("ciphertext should not equal plaintext")
	}

	decrypted, err := Decrypt(key, ciphertext, tag)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Fatalf("Decrypt = %q, want %q", decrypted, plaintext)
	}
}

func TestDecryptFailsOnTamperedCiphertext(t *testing.T) {
	key, _ := GenerateKey()
	ciphertext, tag, _ := Encrypt(key, []byte("hello"))
	ciphertext[0] ^= 0xFF

	_, err := Decrypt(key, ciphertext, tag)
	if err == nil {
		t.Fatal("Decrypt should fail on a tampered ciphertext")
	}
	if !errors.Is(err, errors.ErrAEADDecryption) {
		t.Errorf("expected ErrAEADDecryption, got %v", err)
	}
}

func TestDecryptFailsOnWrongKey(t *testing.T) {
	key, _ := GenerateKey()
	ciphertext, tag, _ := Encrypt(key, []byte("hello"))

	wrongKey, _ := GenerateKey()
	if _, err := Decrypt(wrongKey, ciphertext, tag); err == nil {
		t.Fatal("Decrypt should fail under the wrong key")
	}
}

func TestEmptyPlaintext(t *testing.T) {
	key, _ := GenerateKey()
	ciphertext, tag, err := Encrypt(key, nil)
	if err != nil {
		t.Fatalf("Encrypt(nil): %v", err)
	}
	plaintext, err := Decrypt(key, ciphertext, tag)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if len(plaintext) != 0 {
		t.Errorf("expected empty plaintext, got %q", plaintext)
	}
}
