package encoding

import (
	"encoding/base64"
	"fmt"

	"github.com/arloliu/typedkv/endian"
	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
	"github.com/arloliu/typedkv/internal/pool"
	"github.com/arloliu/typedkv/value"
)

// FixedArrayEncoder encodes arrays whose elements are a fixed number of 4-byte
// components: Int32 and Float (1), Vector2 (2), Vector3 (3), Quaternion and
// Color (4).
//
// Blob layout:
//   - 1 byte: array tag
//   - 4*k bytes per element: the element's k components as canonical little-endian blocks
//
// The encoder writes into a pooled byte buffer; call Finish when done.
type FixedArrayEncoder struct {
	buf   *pool.ByteBuffer
	words endian.WordCodec
	tag   format.ArrayTag
	width int
	count int
}

// NewFixedArrayEncoder creates an encoder for the given fixed-width tag and
// writes the tag byte.
//
// Parameters:
//   - tag: Array tag; must be one of the fixed-width tags
//   - words: Word codec used for every component
//
// Returns:
//   - *FixedArrayEncoder: A new encoder holding a tag-only buffer
//   - error: errs.ErrTagMismatch if tag is Bool, String or unknown
func NewFixedArrayEncoder(tag format.ArrayTag, words endian.WordCodec) (*FixedArrayEncoder, error) {
	k := tag.Components()
	if k == 0 {
		return nil, fmt.Errorf("%s is not a fixed-width array tag: %w", tag, errs.ErrTagMismatch)
	}

	buf := pool.GetBlobBuffer()
	buf.MustWrite([]byte{byte(tag)})

	return &FixedArrayEncoder{
		buf:   buf,
		words: words,
		tag:   tag,
		width: k * endian.WordSize,
	}, nil
}

// Grow pre-allocates room for n more elements.
func (e *FixedArrayEncoder) Grow(n int) {
	e.buf.Grow(n * e.width)
}

// WriteI32 appends one Int32 element.
//
// Panics if the encoder's tag is not TagInt32, or if Finish has been called.
func (e *FixedArrayEncoder) WriteI32(v int32) {
	if e.tag != format.TagInt32 {
		panic("WriteI32 on a non-Int32 array encoder")
	}

	start := e.extend()
	e.words.PutI32(e.buf.Slice(start, start+endian.WordSize), v)
	e.count++
}

// WriteF32 appends one element made of the given float components.
//
// Panics if the number of components does not match the tag's width, or if
// Finish has been called.
func (e *FixedArrayEncoder) WriteF32(components ...float32) {
	if e.tag == format.TagInt32 || len(components)*endian.WordSize != e.width {
		panic(fmt.Sprintf("WriteF32: %d components for %s array", len(components), e.tag))
	}

	start := e.extend()
	for i, c := range components {
		off := start + i*endian.WordSize
		e.words.PutF32(e.buf.Slice(off, off+endian.WordSize), c)
	}
	e.count++
}

// Bytes returns the raw blob. The slice is owned by the encoder until Finish.
func (e *FixedArrayEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// String returns the base64 form of the blob, as stored in a string slot.
func (e *FixedArrayEncoder) String() string {
	return base64.StdEncoding.EncodeToString(e.Bytes())
}

// Len returns the number of elements written.
func (e *FixedArrayEncoder) Len() int {
	return e.count
}

// Size returns the blob size in bytes, including the tag.
func (e *FixedArrayEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *FixedArrayEncoder) Finish() {
	if e.buf != nil {
		pool.PutBlobBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

func (e *FixedArrayEncoder) extend() int {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	start := e.buf.Len()
	e.buf.ExtendOrGrow(e.width)

	return start
}

// encodeFixed encodes items as a base64 blob, one WriteF32/WriteI32 per item.
func encodeFixed[T any](words endian.WordCodec, tag format.ArrayTag, items []T, write func(*FixedArrayEncoder, T)) string {
	enc, err := NewFixedArrayEncoder(tag, words)
	if err != nil {
		panic(err) // tags are compile-time constants at every call site
	}
	defer enc.Finish()

	enc.Grow(len(items))
	for _, item := range items {
		write(enc, item)
	}

	return enc.String()
}

// decodeFixed checks the tag and shape of data and reads one element per k-component group.
func decodeFixed[T any](words endian.WordCodec, data []byte, tag format.ArrayTag, read func(*Reader) (T, error)) ([]T, error) {
	payload, err := checkTag(data, tag)
	if err != nil {
		return nil, err
	}

	width := tag.Components() * endian.WordSize
	if len(payload)%width != 0 {
		return nil, fmt.Errorf("%s payload of %d bytes is not a multiple of %d: %w",
			tag, len(payload), width, errs.ErrMalformedBlob)
	}

	out := make([]T, 0, len(payload)/width)
	r := NewReader(words, data, 1)
	for r.Remaining() > 0 {
		v, err := read(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

func readI32(r *Reader) (int32, error) { return r.I32() }

func readF32(r *Reader) (float32, error) { return r.F32() }

func readVector2(r *Reader) (value.Vector2, error) {
	var c [2]float32
	err := r.F32s(c[:])

	return value.Vector2{X: c[0], Y: c[1]}, err
}

func readVector3(r *Reader) (value.Vector3, error) {
	var c [3]float32
	err := r.F32s(c[:])

	return value.Vector3{X: c[0], Y: c[1], Z: c[2]}, err
}

func readQuaternion(r *Reader) (value.Quaternion, error) {
	var c [4]float32
	err := r.F32s(c[:])

	return value.Quaternion{X: c[0], Y: c[1], Z: c[2], W: c[3]}, err
}

func readColor(r *Reader) (value.Color, error) {
	var c [4]float32
	err := r.F32s(c[:])

	return value.Color{R: c[0], G: c[1], B: c[2], A: c[3]}, err
}
