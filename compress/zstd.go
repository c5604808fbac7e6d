package compress

// ZstdCompressor provides Zstandard compression for snapshot bodies.
//
// It gives the best ratio of the built-in codecs and is the default for
// FileStore, where a snapshot is written once per Save and read once per Open.
//
// The pure-Go implementation (klauspost/compress/zstd) is used by default; the
// cgo binding in zstd_cgo.go is compiled with cgo and the gozstd build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
