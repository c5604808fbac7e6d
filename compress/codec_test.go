package compress

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/arloliu/typedkv/format"
	"github.com/stretchr/testify/require"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// snapshotLikeData resembles a CBOR body full of short base64 blobs.
func snapshotLikeData(n int) []byte {
	var sb strings.Builder
	for i := range n {
		sb.WriteString("player.loadout.slot")
		sb.WriteByte(byte('0' + i%10))
		sb.WriteString("BgAAAAAAAAAAAAAAAAAAgD8=")
	}

	return []byte(sb.String())
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)
	_, err = GetCodec(format.CompressionType(99))
	require.Error(t, err)
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"single byte": {0x42},
		"text":        []byte("hello typedkv"),
		"snapshot":    snapshotLikeData(500),
		"zeros":       make([]byte, 64*1024),
	}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range inputs {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.True(t, bytes.Equal(data, decompressed))
			})
		}
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, decompressed, ct.String())
	}
}

func TestDictionaryCodecs_ShrinkSnapshots(t *testing.T) {
	data := snapshotLikeData(1000)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data)/2, ct.String())
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte("definitely not a compressed stream \x00\xff\x13")

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestNoOpCompressor_SharesInput(t *testing.T) {
	data := []byte("as-is")
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Equal(t, &data[0], &out[0])
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := snapshotLikeData(200)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 20 {
					c, err := codec.Compress(data)
					if err != nil {
						t.Errorf("%s compress: %v", ct, err)
						return
					}
					d, err := codec.Decompress(c)
					if err != nil || !bytes.Equal(d, data) {
						t.Errorf("%s round trip failed: %v", ct, err)
						return
					}
				}
			}()
		}
		wg.Wait()
	}
}

func TestLZ4Compressor_IncompressibleInput(t *testing.T) {
	codec := NewLZ4Compressor()
	data := []byte("xyz")

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, lz4BlockStored, compressed[0])

	out, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, out)

	_, err = codec.Decompress([]byte{0x7f, 1, 2})
	require.Error(t, err)
}
