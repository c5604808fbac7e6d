package encoding

import (
	"encoding/base64"
	"fmt"

	"github.com/arloliu/typedkv/endian"
	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
	"github.com/arloliu/typedkv/internal/pool"
)

// boolHeaderSize is the tag byte plus the 4-byte element count.
const boolHeaderSize = 1 + endian.WordSize

// EncodeBools encodes a bool slice as a bit-packed blob.
//
// Blob layout:
//   - 1 byte: TagBool
//   - 4 bytes: element count (canonical little-endian int32)
//   - ceil(count/8) bytes: bits, element i at bit i%8 of byte i/8 (LSB first)
//
// The count header is required because the bit length cannot be recovered
// from the byte length.
//
// Parameters:
//   - words: Word codec for the count header
//   - values: Booleans to encode
//
// Returns:
//   - string: base64 blob
func EncodeBools(words endian.WordCodec, values []bool) string {
	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	size := boolHeaderSize + (len(values)+7)/8
	buf.ExtendOrGrow(size)
	b := buf.Bytes()
	clear(b)

	b[0] = byte(format.TagBool)
	words.PutI32(b[1:boolHeaderSize], int32(len(values))) //nolint:gosec

	for i, v := range values {
		if v {
			b[boolHeaderSize+i/8] |= 1 << (i % 8)
		}
	}

	return base64.StdEncoding.EncodeToString(b)
}

// decodeBools unpacks exactly count bits; padding bits in the last byte are dropped.
func decodeBools(words endian.WordCodec, data []byte) ([]bool, error) {
	if _, err := checkTag(data, format.TagBool); err != nil {
		return nil, err
	}

	cursor := 1
	count, err := words.DecodeI32(data, &cursor)
	if err != nil {
		return nil, fmt.Errorf("bool array count: %w", err)
	}

	if count < 0 {
		return nil, fmt.Errorf("negative bool array count %d: %w", count, errs.ErrMalformedBlob)
	}

	n := int(count)
	if want := boolHeaderSize + (n+7)/8; len(data) != want {
		return nil, fmt.Errorf("bool array of %d needs %d bytes, got %d: %w", n, want, len(data), errs.ErrMalformedBlob)
	}

	out := make([]bool, n)
	for i := range out {
		out[i] = data[boolHeaderSize+i/8]&(1<<(i%8)) != 0
	}

	return out, nil
}
