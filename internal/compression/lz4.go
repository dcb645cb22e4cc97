package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4,
	lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// LZ4Compressor implements Compressor with the LZ4 frame format.
type LZ4Compressor struct {
	level lz4.CompressionLevel
}

// NewLZ4Compressor creates an LZ4 compressor. Level 0 is the fast mode;
// 1 through 9 select the high-compression levels, larger values clamp to 9.
func NewLZ4Compressor(level int) *LZ4Compressor {
	return &LZ4Compressor{level: lz4Levels[min(max(level, 0), len(lz4Levels)-1)]}
}

// Compress compresses data into a single LZ4 frame.
func (lc *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	var buf bytes.Buffer
	w, err := lc.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compress failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress decompresses an LZ4 frame.
func (lc *LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, lz4.NewReader(bytes.NewReader(data))); err != nil {
		return nil, fmt.Errorf("lz4 decompress failed: %w", err)
	}
	return buf.Bytes(), nil
}

// NewWriter returns an LZ4 frame writer at the configured level.
func (lc *LZ4Compressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.CompressionLevelOption(lc.level)); err != nil {
		return nil, fmt.Errorf("lz4 level: %w", err)
	}
	return zw, nil
}

// NewReader returns an LZ4 frame reader.
func (lc *LZ4Compressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

// Algorithm returns LZ4
func (lc *LZ4Compressor) Algorithm() Algorithm {
	return LZ4
}
