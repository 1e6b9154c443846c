// Package rs wraps github.com/Picocrypt/infectious's GF(2^8) Reed-Solomon
// codec behind the narrow contract the damage-tolerant container needs:
// produce parity for a message of up to 255 bytes, and correct unknown-location
// byte errors given the message concatenated with its parity.
//
// This generalizes the teacher's encoding.RSCodecs, which only pre-builds a
// handful of fixed (data, total) pairs for specific header fields; here the
// pair varies per call, driven by the damage-level policy.
package rs

import (
	"Shardbox/internal/errors"

	"github.com/Picocrypt/infectious"
)

// MaxBlockSize is the GF(2^8) Reed-Solomon block size limit: data + parity
// bytes in a single codeword cannot exceed this.
const MaxBlockSize = 255

// Codec produces and corrects parity for messages of a fixed data length.
type Codec struct {
	fec     *infectious.FEC
	dataLen int
	eccLen  int
}

// New builds a codec for messages of dataLen bytes with eccLen parity bytes.
// Returns errors.ErrSizeLimit if dataLen+eccLen would exceed MaxBlockSize.
func New(dataLen, eccLen int) (*Codec, error) {
	if dataLen <= 0 || eccLen <= 0 {
		return nil, errors.NewContainerError("rs-new", errors.ErrDeserialization)
	}
	if dataLen+eccLen > MaxBlockSize {
		return nil, errors.ErrSizeLimit
	}
	fec, err := infectious.NewFEC(dataLen, dataLen+eccLen)
	if err != nil {
		return nil, errors.NewContainerError("rs-new", err)
	}
	return &Codec{fec: fec, dataLen: dataLen, eccLen: eccLen}, nil
}

// EncodeParity returns the eccLen parity bytes for data, whose length must
// equal the codec's dataLen.
func (c *Codec) EncodeParity(data []byte) ([]byte, error) {
	if len(data) != c.dataLen {
		return nil, errors.NewContainerError("rs-encode", errors.ErrSerialization)
	}
	total := make([]byte, c.dataLen+c.eccLen)
	err := c.fec.Encode(data, func(s infectious.Share) {
		total[s.Number] = s.Data[0]
	})
	if err != nil {
		return nil, errors.NewContainerError("rs-encode", err)
	}
	return total[c.dataLen:], nil
}

// Correct reconstructs the original dataLen-byte message from dataAndParity,
// which must be exactly dataLen+eccLen bytes and may contain up to
// floor(eccLen/2) byte errors in unknown positions.
func (c *Codec) Correct(dataAndParity []byte) ([]byte, error) {
	if len(dataAndParity) != c.dataLen+c.eccLen {
		return nil, errors.NewContainerError("rs-correct", errors.ErrDeserialization)
	}
	shares := make([]infectious.Share, len(dataAndParity))
	for i, b := range dataAndParity {
		shares[i] = infectious.Share{Number: i, Data: []byte{b}}
	}
	res, err := c.fec.Decode(nil, shares)
	if err != nil {
		return nil, errors.NewContainerError("rs-correct", err)
	}
	return res, nil
}
