package compress

import (
	"testing"

	"github.com/flightlog/blackbox/format"
	"github.com/stretchr/testify/require"
)

func allCodecs(t *testing.T) map[string]Codec {
	t.Helper()

	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"Gzip": NewGzipCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	payload := []byte("H Product:Blackbox flight data recorder by Nicholas Sherlock\nI\x00\x00\x00\x00")

	for name, codec := range allCodecs(t) {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			out, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, out)
		})
	}
}

func TestCodec_RoundTrip_Empty(t *testing.T) {
	for name, codec := range allCodecs(t) {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			out, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestCreateCodec(t *testing.T) {
	cases := []format.CompressionType{
		format.CompressionNone,
		format.CompressionGzip,
		format.CompressionZstd,
		format.CompressionLZ4,
		format.CompressionS2,
	}

	for _, c := range cases {
		codec, err := CreateCodec(c)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}
}

func TestCreateCodec_Unsupported(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0xFF))
	require.Error(t, err)
}

func TestStats_Ratio(t *testing.T) {
	s := Stats{OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, s.Ratio(), 0.0001)

	require.Equal(t, float64(0), Stats{}.Ratio())
}

func TestHasGzipMagic(t *testing.T) {
	require.True(t, HasGzipMagic([]byte{0x1f, 0x8b, 0x08}))
	require.False(t, HasGzipMagic([]byte{'H', ' '}))
	require.False(t, HasGzipMagic([]byte{0x1f}))
}

func TestHasLZ4Magic(t *testing.T) {
	require.True(t, HasLZ4Magic([]byte{0x04, 0x22, 0x4d, 0x18, 0x00}))
	require.False(t, HasLZ4Magic([]byte{'H', ' ', 'P', 'r'}))
}
