// Package splitbox is the share orchestrator (C8): it composes aead, shamir
// and container into the two end-to-end operations the rest of the system
// exposes — Split and Combine. It passes the single damage-level knob (C9)
// unchanged to every container.Wrap call; eccpack.Build and container.Wrap
// turn it into redundancy.
//
// The closest teacher analogue is internal/volume's Encrypt/Decrypt
// (orchestrating several sub-steps while tolerating partial per-chunk
// failure); here the composition is AEAD -> Shamir -> container instead of
// Argon2 -> Serpent -> XChaCha20 -> BLAKE2b. ProgressReporter mirrors the
// teacher's volume.ProgressReporter interface so the CLI's terminal reporter
// can drive status/progress without this package importing internal/cli.
package splitbox

import (
	"encoding/binary"
	"fmt"

	"Shardbox/internal/aead"
	"Shardbox/internal/container"
	"Shardbox/internal/crypto"
	"Shardbox/internal/errors"
	"Shardbox/internal/shamir"
)

// SecretBox is the (ciphertext, tag) pair produced by AEAD-encrypting the
// plaintext under the ephemeral key. The key itself never appears here.
type SecretBox struct {
	Ciphertext []byte
	Tag        []byte
}

// ProgressReporter receives status/progress callbacks during Split/Combine.
// A nil ProgressReporter is valid and simply receives no callbacks.
type ProgressReporter interface {
	SetStatus(text string)
	SetProgress(fraction float32, info string)
	Update()
	IsCancelled() bool
}

func reportStatus(r ProgressReporter, status string) {
	if r == nil {
		return
	}
	r.SetStatus(status)
	r.Update()
}

func reportProgress(r ProgressReporter, fraction float32, info string) {
	if r == nil {
		return
	}
	r.SetProgress(fraction, info)
	r.Update()
}

func cancelled(r ProgressReporter) bool {
	return r != nil && r.IsCancelled()
}

// Split draws a fresh ephemeral key, AEAD-encrypts plaintext under it,
// Shamir-splits the key into n shares, and wraps each share plus the
// serialized secret box with the damage-tolerant container at damageLevel.
//
// Returns the wrapped shares (container streams; a share whose wrapping
// errors is skipped rather than aborting the whole split) and the wrapped
// secret box. reporter may be nil for headless callers (e.g. tests).
func Split(plaintext []byte, damageLevel float64, n, threshold int, reporter ProgressReporter) (wrappedShares [][]byte, wrappedBox []byte, err error) {
	reportStatus(reporter, "generating ephemeral key")
	key, err := aead.GenerateKey()
	if err != nil {
		return nil, nil, err
	}
	km := crypto.NewKeyMaterial(key)
	defer km.Close()
	crypto.SecureZero(key)

	if cancelled(reporter) {
		return nil, nil, errors.ErrCancelled
	}

	reportStatus(reporter, "sealing secret under ephemeral key")
	ciphertext, tag, err := aead.Encrypt(km.Bytes(), plaintext)
	if err != nil {
		return nil, nil, err
	}

	reportProgress(reporter, 0.2, "splitting key into shares")
	rawShares, err := shamir.Split(km.Bytes(), threshold, n)
	if err != nil {
		return nil, nil, err
	}

	for i, raw := range rawShares {
		if cancelled(reporter) {
			crypto.SecureZeroMultiple(rawShares...)
			return nil, nil, errors.ErrCancelled
		}
		reportProgress(reporter, 0.2+0.6*float32(i+1)/float32(len(rawShares)), fmt.Sprintf("wrapping share %d/%d", i+1, len(rawShares)))
		wrapped, werr := container.Wrap(raw, damageLevel)
		if werr != nil {
			continue
		}
		wrappedShares = append(wrappedShares, wrapped)
	}
	crypto.SecureZeroMultiple(rawShares...)

	reportStatus(reporter, "wrapping secret box")
	boxPayload := encodeSecretBox(ciphertext, tag)
	wrappedBox, err = container.Wrap(boxPayload, damageLevel)
	if err != nil {
		return nil, nil, errors.NewContainerError("split", err)
	}

	reportProgress(reporter, 1.0, "done")
	return wrappedShares, wrappedBox, nil
}

// Combine recovers each wrapped share and the wrapped secret box through the
// container's recovery path, Shamir-combines the surviving shares into the
// ephemeral key, and AEAD-decrypts the secret box under it.
//
// A wrapped share that fails to recover is skipped (the orchestrator's only
// local recovery, mirroring the teacher's per-chunk tolerance in fileops);
// if fewer than the share format's own declared threshold survive,
// shamir.Combine reports ErrShamirCombine. reporter may be nil for headless
// callers (e.g. tests).
func Combine(wrappedShares [][]byte, wrappedBox []byte, reporter ProgressReporter) ([]byte, error) {
	var recovered [][]byte
	for i, w := range wrappedShares {
		if cancelled(reporter) {
			crypto.SecureZeroMultiple(recovered...)
			return nil, errors.ErrCancelled
		}
		reportProgress(reporter, 0.6*float32(i+1)/float32(len(wrappedShares)), fmt.Sprintf("recovering share %d/%d", i+1, len(wrappedShares)))
		share, err := container.Recover(w)
		if err != nil {
			continue
		}
		recovered = append(recovered, share)
	}

	reportStatus(reporter, "recombining key")
	key, err := shamir.Combine(recovered)
	if err != nil {
		crypto.SecureZeroMultiple(recovered...)
		return nil, err
	}
	km := crypto.NewKeyMaterial(key)
	defer km.Close()
	crypto.SecureZero(key)
	crypto.SecureZeroMultiple(recovered...)

	reportStatus(reporter, "recovering secret box")
	boxPayload, err := container.Recover(wrappedBox)
	if err != nil {
		return nil, errors.NewContainerError("combine", err)
	}
	ciphertext, tag, err := decodeSecretBox(boxPayload)
	if err != nil {
		return nil, err
	}

	reportStatus(reporter, "decrypting secret")
	plaintext, err := aead.Decrypt(km.Bytes(), ciphertext, tag)
	if err != nil {
		return nil, err
	}
	reportProgress(reporter, 1.0, "done")
	return plaintext, nil
}

// encodeSecretBox serializes a SecretBox's (ciphertext, tag) pair as
// varint(len(ciphertext)) || ciphertext || tag, so it can be wrapped by the
// same container code path as a raw Shamir share.
func encodeSecretBox(ciphertext, tag []byte) []byte {
	buf := binary.AppendUvarint(nil, uint64(len(ciphertext)))
	buf = append(buf, ciphertext...)
	buf = append(buf, tag...)
	return buf
}

func decodeSecretBox(payload []byte) (ciphertext, tag []byte, err error) {
	ln, n := binary.Uvarint(payload)
	if n <= 0 {
		return nil, nil, errors.NewContainerError("secretbox-decode", errors.ErrDeserialization)
	}
	rest := payload[n:]
	if uint64(len(rest)) < ln+aead.TagSize {
		return nil, nil, errors.NewContainerError("secretbox-decode", errors.ErrDeserialization)
	}
	ciphertext = rest[:ln]
	tag = rest[ln : ln+aead.TagSize]
	if len(rest) != int(ln)+aead.TagSize {
		return nil, nil, errors.NewContainerError("secretbox-decode", errors.ErrDeserialization)
	}
	return ciphertext, tag, nil
}
