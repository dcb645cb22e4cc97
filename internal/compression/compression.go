// Package compression provides block and streaming compressors. The
// streaming forms wrap an io.Writer or io.Reader so array streams can be
// layered on top of a compressed file.
package compression

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/soltixdb/fitscore/internal/config"
)

// ErrUnsupportedAlgorithm is returned for an unknown algorithm.
var ErrUnsupportedAlgorithm = errors.New("unsupported compression algorithm")

// Algorithm defines compression types
type Algorithm uint8

const (
	None   Algorithm = 0
	Snappy Algorithm = 1
	LZ4    Algorithm = 2
	Zstd   Algorithm = 3
)

var algorithmNames = [...]string{None: "none", Snappy: "snappy", LZ4: "lz4", Zstd: "zstd"}

func (a Algorithm) String() string {
	if int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", uint8(a))
}

// ParseAlgorithm maps a configuration name to an Algorithm. The empty
// string means None.
func ParseAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return None, nil
	}
	for i, n := range algorithmNames {
		if strings.EqualFold(n, name) {
			return Algorithm(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

// Compressor interface for compression algorithms
type Compressor interface {
	// Compress compresses data
	Compress(data []byte) ([]byte, error)

	// Decompress decompresses data
	Decompress(data []byte) ([]byte, error)

	// NewWriter returns a writer that compresses into w. Closing it
	// flushes the final frame but leaves w open.
	NewWriter(w io.Writer) (io.WriteCloser, error)

	// NewReader returns a reader that decompresses from r. Closing it
	// leaves r open.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// Algorithm returns the compression algorithm type
	Algorithm() Algorithm
}

// GetCompressor returns a compressor for the given algorithm at its
// default level.
func GetCompressor(algo Algorithm) (Compressor, error) {
	return GetCompressorWithLevel(algo, 0)
}

// GetCompressorWithLevel returns a compressor for the given algorithm.
// Level 0 selects the library default; snappy ignores the level.
func GetCompressorWithLevel(algo Algorithm, level int) (Compressor, error) {
	switch algo {
	case None:
		return &NoneCompressor{}, nil
	case Snappy:
		return NewSnappyCompressor(), nil
	case LZ4:
		return NewLZ4Compressor(level), nil
	case Zstd:
		return NewZstdCompressor(level)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, algo)
	}
}

// NewFromConfig creates the compressor named by the configuration.
func NewFromConfig(cfg config.CompressionConfig) (Compressor, error) {
	algo, err := ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	return GetCompressorWithLevel(algo, cfg.Level)
}

// NoneCompressor is a no-op compressor
type NoneCompressor struct{}

func (n *NoneCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (n *NoneCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

func (n *NoneCompressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

func (n *NoneCompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func (n *NoneCompressor) Algorithm() Algorithm {
	return None
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
