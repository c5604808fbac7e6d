package encoding

import (
	"fmt"

	"github.com/arloliu/typedkv/endian"
	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
)

// Reader walks the canonical 4-byte blocks of a decoded blob.
//
// A Reader carries the read cursor for exactly one decode call and is never
// shared, so concurrent decodes of different keys cannot disturb each other.
type Reader struct {
	words endian.WordCodec
	data  []byte
	pos   int
}

// NewReader creates a Reader over data starting at offset.
func NewReader(words endian.WordCodec, data []byte, offset int) *Reader {
	return &Reader{words: words, data: data, pos: offset}
}

// I32 reads the next int32 block.
func (r *Reader) I32() (int32, error) {
	return r.words.DecodeI32(r.data, &r.pos)
}

// F32 reads the next float32 block.
func (r *Reader) F32() (float32, error) {
	return r.words.DecodeF32(r.data, &r.pos)
}

// F32s fills dst with the next len(dst) float32 blocks.
func (r *Reader) F32s(dst []float32) error {
	for i := range dst {
		v, err := r.F32()
		if err != nil {
			return err
		}
		dst[i] = v
	}

	return nil
}

// Pos returns the current read offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// checkTag verifies the leading tag byte of data and returns the payload after it.
func checkTag(data []byte, want format.ArrayTag) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty blob: %w", errs.ErrMalformedBlob)
	}

	if got := format.ArrayTag(data[0]); got != want {
		return nil, fmt.Errorf("got %s, want %s: %w", got, want, errs.ErrTagMismatch)
	}

	return data[1:], nil
}
