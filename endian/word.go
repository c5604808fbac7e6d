package endian

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/typedkv/errs"
)

// WordSize is the size in bytes of one canonical block.
const WordSize = 4

// WordCodec converts 32-bit ints and floats to and from canonical
// little-endian 4-byte blocks.
//
// Values are first laid out in the host's natural byte order and then swapped
// when the host is big-endian, so the output is identical on every platform.
// The zero value probes the real host on each call.
type WordCodec struct {
	host EndianEngine
}

// NativeWordCodec returns a WordCodec bound to the real host byte order.
func NativeWordCodec() WordCodec {
	return WordCodec{}
}

// NewWordCodec returns a WordCodec that behaves as if the host used the given
// byte order. It exists so the big-endian path can be exercised on any machine.
//
// Parameters:
//   - host: The byte order to treat as the host's natural order
//
// Returns:
//   - WordCodec: A stateless codec value
func NewWordCodec(host EndianEngine) WordCodec {
	return WordCodec{host: host}
}

// EncodeI32 returns the canonical 4-byte block for v.
func (w WordCodec) EncodeI32(v int32) [WordSize]byte {
	return w.encode(uint32(v)) //nolint:gosec
}

// EncodeF32 returns the canonical 4-byte block for the IEEE 754 bits of v.
func (w WordCodec) EncodeF32(v float32) [WordSize]byte {
	return w.encode(math.Float32bits(v))
}

// PutI32 writes the canonical block for v into dst[0:4].
func (w WordCodec) PutI32(dst []byte, v int32) {
	b := w.EncodeI32(v)
	copy(dst[:WordSize], b[:])
}

// PutF32 writes the canonical block for v into dst[0:4].
func (w WordCodec) PutF32(dst []byte, v float32) {
	b := w.EncodeF32(v)
	copy(dst[:WordSize], b[:])
}

// DecodeI32 reads an int32 from src at *cursor and advances the cursor by 4.
//
// Parameters:
//   - src: Buffer holding canonical blocks
//   - cursor: Read offset, owned by the caller
//
// Returns:
//   - int32: The decoded value
//   - error: errs.ErrShortBuffer if fewer than 4 bytes remain; the cursor is not moved
func (w WordCodec) DecodeI32(src []byte, cursor *int) (int32, error) {
	bits, err := w.decode(src, cursor)

	return int32(bits), err //nolint:gosec
}

// DecodeF32 reads a float32 from src at *cursor and advances the cursor by 4.
//
// Parameters:
//   - src: Buffer holding canonical blocks
//   - cursor: Read offset, owned by the caller
//
// Returns:
//   - float32: The decoded value
//   - error: errs.ErrShortBuffer if fewer than 4 bytes remain; the cursor is not moved
func (w WordCodec) DecodeF32(src []byte, cursor *int) (float32, error) {
	bits, err := w.decode(src, cursor)

	return math.Float32frombits(bits), err
}

func (w WordCodec) engine() EndianEngine {
	if w.host == nil {
		return NativeEngine()
	}

	return w.host
}

func (w WordCodec) encode(bits uint32) [WordSize]byte {
	host := w.engine()

	var b [WordSize]byte
	host.PutUint32(b[:], bits)
	if host == binary.BigEndian {
		swap(&b)
	}

	return b
}

func (w WordCodec) decode(src []byte, cursor *int) (uint32, error) {
	pos := *cursor
	if pos < 0 || pos+WordSize > len(src) {
		return 0, fmt.Errorf("read 4 bytes at offset %d of %d: %w", pos, len(src), errs.ErrShortBuffer)
	}

	host := w.engine()

	var b [WordSize]byte
	copy(b[:], src[pos:pos+WordSize])
	if host == binary.BigEndian {
		swap(&b)
	}
	*cursor = pos + WordSize

	return host.Uint32(b[:]), nil
}

func swap(b *[WordSize]byte) {
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
}
