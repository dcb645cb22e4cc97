package compression

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor implements Compressor with Zstandard. The block encoder
// and decoder are shared; EncodeAll and DecodeAll are safe for concurrent
// use.
type ZstdCompressor struct {
	level   zstd.EncoderLevel
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewZstdCompressor creates a Zstandard compressor. Level 0 selects the
// default speed; other values are zstd command-line levels.
func NewZstdCompressor(level int) (*ZstdCompressor, error) {
	zl := zstd.SpeedDefault
	if level > 0 {
		zl = zstd.EncoderLevelFromZstd(level)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zl))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &ZstdCompressor{level: zl, encoder: enc, decoder: dec}, nil
}

// Compress compresses data using Zstandard
func (zc *ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	return zc.encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses Zstandard compressed data
func (zc *ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	out, err := zc.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress failed: %w", err)
	}
	return out, nil
}

// NewWriter returns a streaming encoder at the configured level.
func (zc *ZstdCompressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zc.level))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return enc, nil
}

// NewReader returns a streaming decoder.
func (zc *ZstdCompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	return dec.IOReadCloser(), nil
}

// Algorithm returns Zstd
func (zc *ZstdCompressor) Algorithm() Algorithm {
	return Zstd
}
