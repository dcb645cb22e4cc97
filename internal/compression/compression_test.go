package compression

import (
	"bytes"
	"errors"
	"testing"

	"github.com/soltixdb/fitscore/internal/config"
)

func TestNoneCompressor_Algorithm(t *testing.T) {
	compressor := &NoneCompressor{}

	if compressor.Algorithm() != None {
		t.Errorf("Expected algorithm None (%d), got %d", None, compressor.Algorithm())
	}
}

func TestNoneCompressor_CompressDecompress(t *testing.T) {
	compressor := &NoneCompressor{}

	original := []byte("No compression test data")

	// Compress (should be no-op)
	compressed, err := compressor.Compress(original)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	// Should be identical
	if !bytes.Equal(original, compressed) {
		t.Error("NoneCompressor.Compress should return identical data")
	}

	// Decompress (should be no-op)
	decompressed, err := compressor.Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}

	// Should be identical
	if !bytes.Equal(original, decompressed) {
		t.Error("NoneCompressor.Decompress should return identical data")
	}
}

func TestGetCompressor_None(t *testing.T) {
	compressor, err := GetCompressor(None)
	if err != nil {
		t.Fatalf("GetCompressor(None) failed: %v", err)
	}

	if compressor.Algorithm() != None {
		t.Errorf("Expected None algorithm, got %d", compressor.Algorithm())
	}
}

func TestGetCompressor_Snappy(t *testing.T) {
	compressor, err := GetCompressor(Snappy)
	if err != nil {
		t.Fatalf("GetCompressor(Snappy) failed: %v", err)
	}

	if compressor.Algorithm() != Snappy {
		t.Errorf("Expected Snappy algorithm, got %d", compressor.Algorithm())
	}
}

func TestGetCompressor_AllAlgorithms(t *testing.T) {
	for _, algo := range []Algorithm{None, Snappy, LZ4, Zstd} {
		compressor, err := GetCompressor(algo)
		if err != nil {
			t.Fatalf("GetCompressor(%s) failed: %v", algo, err)
		}
		if compressor.Algorithm() != algo {
			t.Errorf("Expected %s algorithm, got %s", algo, compressor.Algorithm())
		}
	}
}

func TestGetCompressor_Unsupported(t *testing.T) {
	_, err := GetCompressor(Algorithm(99))
	if !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("Expected ErrUnsupportedAlgorithm for algorithm 99, got %v", err)
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		want    Algorithm
		wantErr bool
	}{
		{"", None, false},
		{"none", None, false},
		{"snappy", Snappy, false},
		{"LZ4", LZ4, false},
		{"zstd", Zstd, false},
		{"gzip", None, true},
	}

	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}

	if Algorithm(42).String() != "Algorithm(42)" {
		t.Errorf("Unexpected name for unknown algorithm: %s", Algorithm(42))
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.DefaultConfig().Compression
	compressor, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig(default) failed: %v", err)
	}
	if compressor.Algorithm() != None {
		t.Errorf("Expected None for default config, got %s", compressor.Algorithm())
	}

	cfg.Algorithm = "zstd"
	cfg.Level = 19
	compressor, err = NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig(zstd) failed: %v", err)
	}
	if compressor.Algorithm() != Zstd {
		t.Errorf("Expected Zstd, got %s", compressor.Algorithm())
	}

	cfg.Algorithm = "brotli"
	if _, err := NewFromConfig(cfg); err == nil {
		t.Error("Expected error for unknown algorithm, got nil")
	}
}

func TestAlgorithmConstants(t *testing.T) {
	if None != 0 {
		t.Errorf("Expected None=0, got %d", None)
	}
	if Snappy != 1 {
		t.Errorf("Expected Snappy=1, got %d", Snappy)
	}
	if LZ4 != 2 {
		t.Errorf("Expected LZ4=2, got %d", LZ4)
	}
	if Zstd != 3 {
		t.Errorf("Expected Zstd=3, got %d", Zstd)
	}
}

func BenchmarkCompressors(b *testing.B) {
	data := make([]byte, 256*1024)
	for i := range data {
		data[i] = byte(i / 16 % 256)
	}

	for _, algo := range []Algorithm{None, Snappy, LZ4, Zstd} {
		compressor, err := GetCompressor(algo)
		if err != nil {
			b.Fatalf("GetCompressor(%s) failed: %v", algo, err)
		}

		b.Run(algo.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				compressed, _ := compressor.Compress(data)
				_, _ = compressor.Decompress(compressed)
			}
		})
	}
}
