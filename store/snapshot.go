package store

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/hashicorp/go-multierror"

	"github.com/arloliu/typedkv/compress"
	"github.com/arloliu/typedkv/endian"
	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
	"github.com/arloliu/typedkv/internal/hash"
	"github.com/arloliu/typedkv/internal/pool"
)

// Snapshot file layout:
//
//	[magic:4 "TKV1"][compression:1][body:N][xxhash64(body):8 LE]
//
// body is the compressed CBOR encoding of the key to Entry map.
var snapshotMagic = []byte("TKV1")

const (
	snapshotHeaderSize  = 4 + 1
	snapshotTrailerSize = 8
)

type snapshotCodec struct {
	mu sync.Mutex // serializes Save
	em cbor.EncMode
	dm cbor.DecMode
}

func newSnapshotCodec() (*snapshotCodec, error) {
	// Deterministic encoding keeps identical stores byte-identical on disk.
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("create CBOR encoder: %w", err)
	}

	dm, err := cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels: 4,
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("create CBOR decoder: %w", err)
	}

	return &snapshotCodec{em: em, dm: dm}, nil
}

// encode returns a pooled buffer holding the full snapshot; call release when done.
func (c *snapshotCodec) encode(entries map[string]Entry, compression format.CompressionType) (*pool.ByteBuffer, error) {
	raw, err := c.em.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshal entries: %w", err)
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	body, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot with %s: %w", compression, err)
	}

	buf := pool.GetSnapshotBuffer()
	buf.Grow(snapshotHeaderSize + len(body) + snapshotTrailerSize)
	buf.MustWrite(snapshotMagic)
	buf.MustWrite([]byte{byte(compression)})
	buf.MustWrite(body)
	buf.B = endian.GetLittleEndianEngine().AppendUint64(buf.B, hash.Checksum(body))

	return buf, nil
}

func (c *snapshotCodec) release(buf *pool.ByteBuffer) {
	pool.PutSnapshotBuffer(buf)
}

func (c *snapshotCodec) decode(data []byte) (map[string]Entry, error) {
	if len(data) < snapshotHeaderSize+snapshotTrailerSize || !bytes.Equal(data[:4], snapshotMagic) {
		return nil, errs.ErrInvalidSnapshot
	}

	compression := format.CompressionType(data[4])
	body := data[snapshotHeaderSize : len(data)-snapshotTrailerSize]
	want := endian.GetLittleEndianEngine().Uint64(data[len(data)-snapshotTrailerSize:])
	if got := hash.Checksum(body); got != want {
		return nil, fmt.Errorf("got %016x, want %016x: %w", got, want, errs.ErrChecksumMismatch)
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}

	raw, err := codec.Decompress(body)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	entries := make(map[string]Entry)
	if len(raw) > 0 {
		if err := c.dm.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("unmarshal entries: %w", err)
		}
	}

	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func joinErrors(list []error) error {
	var result *multierror.Error
	for _, err := range list {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}
