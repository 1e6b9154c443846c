// Package eccpack builds and serializes the ECC pack (C3): the ordered list
// of verbatim-copy and Reed-Solomon-parity blocks emitted for a payload at a
// given damage-tolerance level.
//
// The mixture algorithm is grounded on the teacher's RS-codec selection in
// internal/encoding (pick an RS variant sized to the field) and on
// original_source's add_ecc_and_crc, generalized here to the spec's single
// float damage_level knob instead of a fixed per-field table.
package eccpack

import (
	"encoding/binary"
	"math"

	"Shardbox/internal/errors"
	"Shardbox/internal/rs"
)

// Algorithm tags an ECC block's kind.
type Algorithm uint64

const (
	// AlgorithmVerbatim marks a block holding an untouched copy of the payload.
	AlgorithmVerbatim Algorithm = 0
	// AlgorithmReedSolomon marks a block holding Reed-Solomon parity over the payload.
	AlgorithmReedSolomon Algorithm = 1
)

// Block is one tagged unit of redundancy.
type Block struct {
	Algorithm Algorithm
	Bytes     []byte
}

// Pack is the ordered list of blocks emitted by Build, in emission order.
type Pack struct {
	Blocks []Block
}

// Build translates damageLevel into a mixture of copy redundancy and RS
// parity over payload, per spec §4.3:
//  1. total = len(payload) * damageLevel
//  2. copyTimes = floor(total); rsFraction = total - copyTimes
//  3. if copyTimes > 1 and rsFraction == 0, borrow one copy for RS parity
//  4. rsEccLen = len(payload) * floor(2*rsFraction); emit an RS block if it fits
//  5. emit copyTimes extra verbatim copies
//  6. always emit one final baseline verbatim copy
func Build(payload []byte, damageLevel float64) (Pack, error) {
	if len(payload) == 0 {
		return Pack{}, errors.ErrEmptyData
	}

	total := float64(len(payload)) * damageLevel
	copyTimes := int(math.Floor(total))
	rsFraction := total - float64(copyTimes)

	if copyTimes > 1 && rsFraction == 0 {
		rsFraction = 1
		copyTimes--
	}

	var blocks []Block

	rsEccLen := len(payload) * int(math.Floor(2*rsFraction))
	if rsEccLen > 0 && len(payload)+rsEccLen <= rs.MaxBlockSize {
		codec, err := rs.New(len(payload), rsEccLen)
		if err == nil {
			parity, err := codec.EncodeParity(payload)
			if err == nil {
				blocks = append(blocks, Block{Algorithm: AlgorithmReedSolomon, Bytes: parity})
			}
		}
	}

	for range copyTimes {
		blocks = append(blocks, Block{Algorithm: AlgorithmVerbatim, Bytes: payload})
	}

	// Invariant: the baseline verbatim copy is always present.
	blocks = append(blocks, Block{Algorithm: AlgorithmVerbatim, Bytes: payload})

	return Pack{Blocks: blocks}, nil
}

// Encode serializes p: varint(block_count) || for each block:
// varint(algorithm) || varint(len) || bytes.
func (p Pack) Encode() []byte {
	buf := binary.AppendUvarint(nil, uint64(len(p.Blocks)))
	for _, b := range p.Blocks {
		buf = binary.AppendUvarint(buf, uint64(b.Algorithm))
		buf = binary.AppendUvarint(buf, uint64(len(b.Bytes)))
		buf = append(buf, b.Bytes...)
	}
	return buf
}

// Decode parses a serialized ECC pack.
func Decode(b []byte) (Pack, error) {
	rest := b

	count, n := binary.Uvarint(rest)
	if n <= 0 {
		return Pack{}, errors.NewContainerError("eccpack-decode", errors.ErrDeserialization)
	}
	rest = rest[n:]

	blocks := make([]Block, 0, count)
	for range count {
		alg, n := binary.Uvarint(rest)
		if n <= 0 {
			return Pack{}, errors.NewContainerError("eccpack-decode", errors.ErrDeserialization)
		}
		rest = rest[n:]

		ln, n := binary.Uvarint(rest)
		if n <= 0 {
			return Pack{}, errors.NewContainerError("eccpack-decode", errors.ErrDeserialization)
		}
		rest = rest[n:]

		if uint64(len(rest)) < ln {
			return Pack{}, errors.NewContainerError("eccpack-decode", errors.ErrDeserialization)
		}
		blocks = append(blocks, Block{
			Algorithm: Algorithm(alg),
			Bytes:     append([]byte(nil), rest[:ln]...),
		})
		rest = rest[ln:]
	}

	if len(rest) != 0 {
		return Pack{}, errors.NewContainerError("eccpack-decode", errors.ErrDeserialization)
	}

	return Pack{Blocks: blocks}, nil
}
