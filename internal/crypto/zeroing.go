// Package crypto provides memory-zeroing helpers for the ephemeral AEAD key
// used during split and combine.
package crypto

import "crypto/subtle"

// SecureZero overwrites b with zeros to prevent sensitive data from
// persisting in memory. Due to Go's garbage collector and possible compiler
// optimizations this cannot guarantee complete erasure, but it closes most
// of the window during which the key is recoverable from a memory dump.
//
// subtle.ConstantTimeCopy is used (rather than a plain loop) so the compiler
// cannot optimize the zeroing away as a dead store.
func SecureZero(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
}

// SecureZeroMultiple zeros several buffers in one call.
func SecureZeroMultiple(slices ...[]byte) {
	for _, s := range slices {
		SecureZero(s)
	}
}

// KeyMaterial wraps the ephemeral key with automatic zeroing on Close.
type KeyMaterial struct {
	data   []byte
	closed bool
}

// NewKeyMaterial copies data into a new KeyMaterial.
func NewKeyMaterial(data []byte) *KeyMaterial {
	if data == nil {
		return &KeyMaterial{}
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return &KeyMaterial{data: copied}
}

// Bytes returns the underlying key data, or nil once Close has been called.
func (km *KeyMaterial) Bytes() []byte {
	if km.closed {
		return nil
	}
	return km.data
}

// Len returns the length of the key data, or 0 once closed.
func (km *KeyMaterial) Len() int {
	if km.closed || km.data == nil {
		return 0
	}
	return len(km.data)
}

// Close zeros the key data and marks the material closed. Idempotent.
func (km *KeyMaterial) Close() {
	if km.closed || km.data == nil {
		return
	}
	SecureZero(km.data)
	km.data = nil
	km.closed = true
}

// IsClosed reports whether Close has been called.
func (km *KeyMaterial) IsClosed() bool {
	return km.closed
}
