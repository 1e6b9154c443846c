// Package container implements the damage-tolerant byte-container format:
// Wrap (C5) serializes a header plus an ECC pack into a replicated,
// interleaved byte stream; Recover (C6) parses a possibly-corrupted stream
// back into the original payload by voting on header replicas, trying
// unbroken copies first, and then sliding-window search and Reed-Solomon
// correction over pairs of pack blocks, in pack order.
//
// This is new code: the teacher has no analogue to a resynchronizable,
// self-describing replicated stream (Picocrypt volumes have one header at a
// fixed offset), so the shape here follows the teacher's internal/header
// Writer/Reader split and internal/volume's multi-strategy validation loop,
// rewritten around varint-framed records instead of fixed file offsets.
package container

import (
	"bytes"
	"encoding/binary"
	"math"

	"Shardbox/internal/checksum"
	"Shardbox/internal/eccpack"
	"Shardbox/internal/errors"
	"Shardbox/internal/header"
	"Shardbox/internal/rs"
)

// Wrap serializes payload into a damage-tolerant container stream at the
// given damage level (C5).
func Wrap(payload []byte, damageLevel float64) ([]byte, error) {
	if len(payload) == 0 {
		return nil, errors.ErrEmptyData
	}

	sum := checksum.Compute(payload)
	h := header.New(len(payload), sum)
	if !h.ValidForEncode() {
		return nil, errors.NewContainerError("wrap", errors.ErrSerialization)
	}
	hBytes := h.Encode()

	pack, err := eccpack.Build(payload, damageLevel)
	if err != nil {
		return nil, errors.NewContainerError("wrap", err)
	}
	packBytes := pack.Encode()

	allowedDamageBits := int(math.Floor(damageLevel*float64(len(payload)))) * 8
	headerCopies := allowedDamageBits + 2

	chunkSize := 1
	if len(packBytes) > 0 {
		chunkSize = (len(packBytes) + headerCopies - 1) / headerCopies
		if chunkSize < 1 {
			chunkSize = 1
		}
	}

	var out []byte
	numChunks := 0
	if len(packBytes) > 0 {
		numChunks = (len(packBytes) + chunkSize - 1) / chunkSize
	}
	if numChunks > headerCopies {
		numChunks = headerCopies
	}

	pos := 0
	for i := 0; i < numChunks; i++ {
		end := pos + chunkSize
		if end > len(packBytes) {
			end = len(packBytes)
		}
		out = appendRecord(out, hBytes)
		out = appendRecord(out, packBytes[pos:end])
		pos = end
	}
	for i := numChunks; i < headerCopies; i++ {
		out = appendRecord(out, hBytes)
	}

	return out, nil
}

func appendRecord(out, b []byte) []byte {
	out = binary.AppendUvarint(out, uint64(len(b)))
	out = append(out, b...)
	return out
}

// Recover parses a possibly-corrupted container stream back into the
// original payload (C6).
func Recover(stream []byte) ([]byte, error) {
	records, err := resyncParse(stream)
	if err != nil {
		return nil, err
	}

	h, err := electHeader(records)
	if err != nil {
		return nil, err
	}
	hEncoded := h.Encode()

	// Only admit a record as ECC-pack data when it directly follows a
	// verified header replica with no gap: Wrap always emits header and
	// chunk as a contiguous pair, so a record reached by resync (i.e. one
	// that left a gap behind it) or a record that is itself another header
	// replica (the trailing header-only tail) is never genuine chunk data.
	var packBytes []byte
	for i := 0; i+1 < len(records); i++ {
		if !bytes.Equal(records[i].bytes, hEncoded) {
			continue
		}
		chunk := records[i+1]
		if chunk.start != records[i].end {
			continue
		}
		if bytes.Equal(chunk.bytes, hEncoded) {
			continue
		}
		packBytes = append(packBytes, chunk.bytes...)
	}

	pack, err := eccpack.Decode(packBytes)
	if err != nil {
		return nil, errors.NewContainerError("recover", errors.ErrDeserialization)
	}

	return recoverFromPack(h, pack)
}

// record is one successfully parsed varint(L) || bytes[L] span, carrying
// its start/end offsets in the stream so callers can tell a genuinely
// contiguous pair of records from one reached only by resynchronizing past
// a corrupted gap.
type record struct {
	start int
	end   int
	bytes []byte
}

// resyncParse walks stream as a sequence of varint(L) || bytes[L] records.
// Whenever the length prefix at the current cursor doesn't decode to a
// record that fits in the remaining bytes, the cursor advances by a single
// byte and parsing is retried from there instead of giving up on the rest
// of the stream — this is what lets a single corrupted length byte anywhere
// in the stream resynchronize onto the next genuine record rather than
// permanently derailing every record after it.
func resyncParse(stream []byte) ([]record, error) {
	var records []record
	cursor := 0
	for cursor < len(stream) {
		l, n := binary.Uvarint(stream[cursor:])
		if n <= 0 {
			cursor++
			continue
		}
		start := cursor + n
		end := start + int(l)
		if l > uint64(len(stream)) || end > len(stream) || end < start {
			cursor++
			continue
		}
		records = append(records, record{start: cursor, end: end, bytes: stream[start:end]})
		cursor = end
	}
	if len(records) == 0 {
		return nil, errors.NewContainerError("recover", errors.ErrDeserialization)
	}
	return records, nil
}

// electHeader picks the header replica to trust: among all records that
// decode into a field-valid header, the most frequent value wins; ties are
// broken by first appearance in stream order (spec §9's resolved open
// question). A record only counts as a header candidate if re-encoding the
// decoded value reproduces it byte-for-byte, which is what lets recovery
// tell an actual header replica apart from an ECC-pack chunk that happens
// to share its length.
func electHeader(records []record) (header.Header, error) {
	type tally struct {
		h            header.Header
		count        int
		firstSeenIdx int
	}
	best := map[header.Header]*tally{}

	for idx, r := range records {
		h, err := header.Decode(r.bytes)
		if err != nil || !h.Valid() {
			continue
		}
		if !bytes.Equal(h.Encode(), r.bytes) {
			continue
		}
		t, ok := best[h]
		if !ok {
			t = &tally{h: h, firstSeenIdx: idx}
			best[h] = t
		}
		t.count++
	}

	var winner *tally
	for _, t := range best {
		if winner == nil || t.count > winner.count ||
			(t.count == winner.count && t.firstSeenIdx < winner.firstSeenIdx) {
			winner = t
		}
	}
	if winner == nil {
		return header.Header{}, errors.NewContainerError("recover", errors.ErrDeserialization)
	}
	return winner.h, nil
}

// recoverFromPack implements §4.6 steps 5-7 against an already-elected
// header and a successfully deserialized ECC pack.
func recoverFromPack(h header.Header, pack eccpack.Pack) ([]byte, error) {
	target := h.Checksum()

	// Step 5: try unbroken verbatim copies first.
	for _, b := range pack.Blocks {
		if b.Algorithm != eccpack.AlgorithmVerbatim {
			continue
		}
		if checksum.Compute(b.Bytes) == target {
			return append([]byte(nil), b.Bytes...), nil
		}
	}

	// Step 6: try every ordered pair of a verbatim block against every other
	// distinct block in the pack.
	for pi, p := range pack.Blocks {
		if p.Algorithm != eccpack.AlgorithmVerbatim {
			continue
		}
		for ei, e := range pack.Blocks {
			if ei == pi {
				continue
			}
			switch e.Algorithm {
			case eccpack.AlgorithmVerbatim:
				if found, ok := slidingWindowSearch(e.Bytes, int(h.DataLength), target); ok {
					return found, nil
				}
			case eccpack.AlgorithmReedSolomon:
				if found, ok := tryRSRecover(p.Bytes, e.Bytes, h.DataLength, target); ok {
					return found, nil
				}
			}
		}
	}

	return nil, errors.ErrECCRecovery
}

// slidingWindowSearch slides a window of the given length (or, if length is
// 0, every length from 1 to 255) over data and returns the first window
// whose paranoid checksum matches target.
func slidingWindowSearch(data []byte, length int, target uint16) ([]byte, bool) {
	if length > 0 {
		if length > len(data) {
			return nil, false
		}
		for start := 0; start+length <= len(data); start++ {
			window := data[start : start+length]
			if checksum.Compute(window) == target {
				return append([]byte(nil), window...), true
			}
		}
		return nil, false
	}

	maxLen := len(data)
	if maxLen > 255 {
		maxLen = 255
	}
	for l := 1; l <= maxLen; l++ {
		for start := 0; start+l <= len(data); start++ {
			window := data[start : start+l]
			if checksum.Compute(window) == target {
				return append([]byte(nil), window...), true
			}
		}
	}
	return nil, false
}

// tryRSRecover attempts Reed-Solomon correction of p (a candidate verbatim
// block) paired with eccBytes (an RS parity block), per §4.6 step 6's second
// bullet, including the data_length == 0 ("length corrupted") substitution.
func tryRSRecover(p, eccBytes []byte, dataLength uint64, target uint16) ([]byte, bool) {
	eccLen := len(eccBytes)
	lengthCorrupted := dataLength == 0

	var dataPart []byte
	if lengthCorrupted {
		padLen := rs.MaxBlockSize - eccLen
		if padLen <= 0 {
			return nil, false
		}
		dataPart = make([]byte, padLen)
	} else {
		dataPart = p
	}

	if len(dataPart)+eccLen > rs.MaxBlockSize {
		return nil, false
	}

	codec, err := rs.New(len(dataPart), eccLen)
	if err != nil {
		return nil, false
	}

	combined := append(append([]byte(nil), dataPart...), eccBytes...)
	corrected, err := codec.Correct(combined)
	if err != nil {
		return nil, false
	}

	if lengthCorrupted {
		trimmed := bytes.TrimLeft(corrected, "\x00")
		if checksum.Compute(trimmed) == target {
			return append([]byte(nil), trimmed...), true
		}
		return nil, false
	}

	dl := int(dataLength)
	if len(corrected) < dl {
		return nil, false
	}
	candidate := corrected[:dl]
	if checksum.Compute(candidate) == target {
		return append([]byte(nil), candidate...), true
	}
	return nil, false
}
