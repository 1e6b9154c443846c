// Package header implements the container's fixed-schema, varint-encoded
// header record (C4): version, encryption_algorithm, data_length,
// crc_algorithm, and the two raw checksum bytes.
//
// This mirrors the teacher's internal/header package split between a format
// (the struct and its validity rules) and encode/decode functions, but trades
// the teacher's fixed-size RS-protected fields for the spec's compact varint
// schema — redundancy here comes from header replication in the container
// (internal/container), not from per-field Reed-Solomon.
package header

import (
	"encoding/binary"

	"Shardbox/internal/errors"
)

// Header is the fixed-schema record prefixed to every container.
type Header struct {
	Version             uint64
	EncryptionAlgorithm uint64
	DataLength          uint64
	CRCAlgorithm        uint64
	ChecksumHi          byte
	ChecksumLo          byte
}

// New builds a header for a payload of the given length and checksum, with
// all currently-defined algorithm fields set to 0.
func New(dataLength int, checksum uint16) Header {
	return Header{
		Version:             0,
		EncryptionAlgorithm: 0,
		DataLength:          uint64(dataLength),
		CRCAlgorithm:        0,
		ChecksumHi:          byte(checksum >> 8),
		ChecksumLo:          byte(checksum),
	}
}

// Checksum reassembles the two checksum bytes into the paranoid checksum.
func (h Header) Checksum() uint16 {
	return uint16(h.ChecksumHi)<<8 | uint16(h.ChecksumLo)
}

// Valid reports whether h passes the relaxed, recovery-time field validation:
// version, encryption_algorithm and crc_algorithm must be 0. data_length is
// deliberately NOT required to be nonzero here so that the "corrupted
// declared length" recovery path (data_length == 0) remains reachable when
// selecting header candidates out of a damaged stream.
func (h Header) Valid() bool {
	return h.Version == 0 && h.EncryptionAlgorithm == 0 && h.CRCAlgorithm == 0
}

// ValidForEncode is the stricter, encode-time invariant: a header that is
// about to be serialized must additionally declare a nonzero data_length.
func (h Header) ValidForEncode() bool {
	return h.Valid() && h.DataLength > 0
}

// Encode serializes h: varint(version) || varint(encryption_algorithm) ||
// varint(data_length) || varint(crc_algorithm) || checksum_hi || checksum_lo.
func (h Header) Encode() []byte {
	buf := make([]byte, 0, 4*binary.MaxVarintLen64+2)
	buf = binary.AppendUvarint(buf, h.Version)
	buf = binary.AppendUvarint(buf, h.EncryptionAlgorithm)
	buf = binary.AppendUvarint(buf, h.DataLength)
	buf = binary.AppendUvarint(buf, h.CRCAlgorithm)
	buf = append(buf, h.ChecksumHi, h.ChecksumLo)
	return buf
}

// Decode parses a serialized header. It does not by itself check Valid();
// callers that need the field-validation invariant call Valid() separately.
func Decode(b []byte) (Header, error) {
	var h Header
	rest := b

	version, n := binary.Uvarint(rest)
	if n <= 0 {
		return Header{}, errors.NewContainerError("header-decode", errors.ErrDeserialization)
	}
	rest = rest[n:]
	h.Version = version

	encAlg, n := binary.Uvarint(rest)
	if n <= 0 {
		return Header{}, errors.NewContainerError("header-decode", errors.ErrDeserialization)
	}
	rest = rest[n:]
	h.EncryptionAlgorithm = encAlg

	dataLen, n := binary.Uvarint(rest)
	if n <= 0 {
		return Header{}, errors.NewContainerError("header-decode", errors.ErrDeserialization)
	}
	rest = rest[n:]
	h.DataLength = dataLen

	crcAlg, n := binary.Uvarint(rest)
	if n <= 0 {
		return Header{}, errors.NewContainerError("header-decode", errors.ErrDeserialization)
	}
	rest = rest[n:]
	h.CRCAlgorithm = crcAlg

	if len(rest) != 2 {
		return Header{}, errors.NewContainerError("header-decode", errors.ErrDeserialization)
	}
	h.ChecksumHi, h.ChecksumLo = rest[0], rest[1]

	return h, nil
}
