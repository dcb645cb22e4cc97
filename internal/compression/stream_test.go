package compression

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/soltixdb/fitscore/internal/arrayfuncs"
	"github.com/soltixdb/fitscore/internal/arrayio"
	"github.com/soltixdb/fitscore/internal/primitive"
)

func TestStreams_ArrayRoundTrip(t *testing.T) {
	doubles := arrayfuncs.GenerateArray(primitive.Double, []int{40, 25}).([][]float64)
	ints := arrayfuncs.GenerateArray(primitive.Int, []int{3000}).([]int32)

	for _, algo := range []Algorithm{None, Snappy, LZ4, Zstd} {
		compressor, err := GetCompressor(algo)
		if err != nil {
			t.Fatalf("GetCompressor(%s) failed: %v", algo, err)
		}

		var file bytes.Buffer
		zw, err := compressor.NewWriter(&file)
		if err != nil {
			t.Fatalf("%s: NewWriter failed: %v", algo, err)
		}
		out := arrayio.NewOutputStream(zw, 512)
		if _, err := out.WriteArray(doubles); err != nil {
			t.Fatalf("%s: WriteArray failed: %v", algo, err)
		}
		if _, err := out.WriteArray(ints); err != nil {
			t.Fatalf("%s: WriteArray failed: %v", algo, err)
		}
		// Closing the stream flushes it and closes the compressed writer.
		if err := out.Close(); err != nil {
			t.Fatalf("%s: Close failed: %v", algo, err)
		}

		zr, err := compressor.NewReader(bytes.NewReader(file.Bytes()))
		if err != nil {
			t.Fatalf("%s: NewReader failed: %v", algo, err)
		}
		in := arrayio.NewInputStream(zr, 512)

		gotDoubles := arrayfuncs.NewInstance(primitive.Double, []int{40, 25}).([][]float64)
		gotInts := make([]int32, 3000)
		n, err := in.ReadArray(gotDoubles)
		if err != nil || n != 8000 {
			t.Fatalf("%s: ReadArray doubles = %d, %v", algo, n, err)
		}
		n, err = in.ReadArray(gotInts)
		if err != nil || n != 12000 {
			t.Fatalf("%s: ReadArray ints = %d, %v", algo, n, err)
		}
		for i := range doubles {
			for j := range doubles[i] {
				if doubles[i][j] != gotDoubles[i][j] {
					t.Fatalf("%s: doubles[%d][%d] = %v, want %v", algo, i, j, gotDoubles[i][j], doubles[i][j])
				}
			}
		}
		for i := range ints {
			if ints[i] != gotInts[i] {
				t.Fatalf("%s: ints[%d] = %d, want %d", algo, i, gotInts[i], ints[i])
			}
		}

		if _, err := in.ReadInt(); !errors.Is(err, io.EOF) {
			t.Errorf("%s: expected EOF after the last array, got %v", algo, err)
		}
		if err := in.Close(); err != nil {
			t.Errorf("%s: reader Close failed: %v", algo, err)
		}
	}
}

func TestStreams_WriterLeavesUnderlyingOpen(t *testing.T) {
	for _, algo := range []Algorithm{None, Snappy, LZ4, Zstd} {
		compressor, _ := GetCompressor(algo)
		sink := &closeTracker{}

		zw, err := compressor.NewWriter(sink)
		if err != nil {
			t.Fatalf("%s: NewWriter failed: %v", algo, err)
		}
		if _, err := zw.Write([]byte("payload")); err != nil {
			t.Fatalf("%s: Write failed: %v", algo, err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("%s: Close failed: %v", algo, err)
		}
		if sink.closed {
			t.Errorf("%s: compressed writer closed the underlying writer", algo)
		}
		if sink.Len() == 0 {
			t.Errorf("%s: nothing reached the underlying writer", algo)
		}
	}
}

type closeTracker struct {
	bytes.Buffer
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}
