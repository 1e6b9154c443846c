// Package aead wraps ChaCha20-Poly1305 behind the secret box contract (C7):
// encrypt a plaintext under a 32-byte ephemeral key with a fixed all-zero
// nonce and empty associated data, and decrypt the reverse.
//
// Grounded on golang.org/x/crypto/chacha20poly1305, the authenticated
// sibling of the golang.org/x/crypto/chacha20 stream cipher the teacher
// already depends on for its XChaCha20 layer.
package aead

import (
	"crypto/rand"

	"Shardbox/internal/errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the ephemeral AEAD key length in bytes.
const KeySize = chacha20poly1305.KeySize

// TagSize is the Poly1305 authentication tag length in bytes.
const TagSize = chacha20poly1305.Overhead

// zeroNonce is safe here only because the key is freshly random and used
// exactly once per split; reusing a key across encryptions would break
// ChaCha20-Poly1305's security entirely.
var zeroNonce = make([]byte, chacha20poly1305.NonceSize)

// GenerateKey draws a fresh 32-byte key from a cryptographic RNG.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.NewAEADError("generate-key", err)
	}
	return key, nil
}

// Encrypt seals plaintext under key, returning the ciphertext and its
// detached authentication tag.
func Encrypt(key, plaintext []byte) (ciphertext, tag []byte, err error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, nil, errors.NewAEADError("encrypt", err)
	}
	sealed := aead.Seal(nil, zeroNonce, plaintext, nil)
	ciphertext = sealed[:len(sealed)-TagSize]
	tag = sealed[len(sealed)-TagSize:]
	return ciphertext, tag, nil
}

// Decrypt opens ciphertext under key, verifying it against tag. Returns
// errors.ErrAEADDecryption (wrapped) if the tag does not verify.
func Decrypt(key, ciphertext, tag []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, errors.NewAEADError("decrypt", err)
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, zeroNonce, sealed, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrAEADDecryption, err.Error())
	}
	return plaintext, nil
}
