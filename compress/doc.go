// Package compress provides the compression codecs applied to typedkv store
// snapshots.
//
// A snapshot body (the CBOR encoding of every stored entry) is compressed with
// one of the codecs below and the chosen format.CompressionType is written in
// the snapshot header, so readers pick the matching codec automatically:
//   - None: body is stored as-is
//   - Zstd: best ratio; the default for FileStore
//   - S2: fast, moderate ratio
//   - LZ4: fastest decompression
//
// Store values are mostly short base64 blobs and small ints, which compress
// well with any of the dictionary codecs.
//
// # Thread Safety
//
// All codecs are stateless values backed by pooled encoders and are safe for
// concurrent use.
package compress
