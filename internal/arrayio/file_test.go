package arrayio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/fitscore/internal/arrayfuncs"
	"github.com/soltixdb/fitscore/internal/config"
	"github.com/soltixdb/fitscore/internal/logging"
	"github.com/soltixdb/fitscore/internal/primitive"
)

func openTemp(t *testing.T, bufferSize int) (*BufferedFile, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	f, err := Open(path, "rw", bufferSize)
	require.NoError(t, err)
	return f, path
}

func TestFileArrayRoundTrip(t *testing.T) {
	f, path := openTemp(t, 64)

	var arrays []any
	for _, v := range primitive.All {
		for _, dims := range [][]int{{5}, {3, 7}, {2, 2, 9}, {3, 0}} {
			arrays = append(arrays, arrayfuncs.GenerateArray(v, dims))
		}
	}

	var total int64
	for _, a := range arrays {
		n, err := f.WriteArray(a)
		require.NoError(t, err)
		total += n
	}
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, total, info.Size())

	f, err = Open(path, "r", 64)
	require.NoError(t, err)
	defer f.Close()

	for _, a := range arrays {
		v, _ := arrayfuncs.VariantOf(a)
		dst := arrayfuncs.NewInstance(v, arrayfuncs.Shape(a))
		if arrayfuncs.NElements(a) == 0 {
			continue
		}
		_, err := f.ReadArray(dst)
		require.NoError(t, err)
		assert.Equal(t, a, dst)
	}
	assert.Equal(t, total, f.FilePointer())

	_, err = f.ReadByte()
	assert.ErrorIs(t, err, ErrEndOfStream)
}

func TestFileSeekWithinWindowAndBeyond(t *testing.T) {
	f, _ := openTemp(t, 32)
	defer f.Close()

	src := make([]int32, 100)
	for i := range src {
		src[i] = int32(i)
	}
	require.NoError(t, f.WriteInts(src, 0, len(src)))
	assert.Equal(t, int64(400), f.FilePointer())

	_, err := f.Seek(40, io.SeekStart)
	require.NoError(t, err)
	v, err := f.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(10), v)

	// Inside the current window: cursor move only.
	pos, err := f.Seek(-4, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(40), pos)
	v, err = f.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(10), v)

	// Before the window: real seek.
	pos, err = f.Seek(36, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(36), pos)
	v, err = f.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(9), v)

	pos, err = f.Seek(-4, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(396), pos)
	v, err = f.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(99), v)

	pos, err = f.Seek(-10, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

func TestFileReadWriteModeSwitch(t *testing.T) {
	f, path := openTemp(t, 16)

	require.NoError(t, f.WriteLongs([]int64{1, 2, 3, 4}, 0, 4))
	_, err := f.Seek(8, io.SeekStart)
	require.NoError(t, err)

	// Read the second value, then overwrite the third in place.
	v, err := f.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	require.NoError(t, f.WriteLong(30))
	assert.Equal(t, int64(24), f.FilePointer())

	// Switch straight back to input.
	v, err = f.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)
	require.NoError(t, f.Close())

	f, err = Open(path, "r", 16)
	require.NoError(t, err)
	defer f.Close()
	got := make([]int64, 4)
	n, err := f.ReadLongs(got, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []int64{1, 2, 30, 4}, got)
}

func TestFilePartialRead(t *testing.T) {
	f, _ := openTemp(t, 16)
	defer f.Close()

	require.NoError(t, f.WriteFloats([]float32{1, 2, 3}, 0, 3))
	_, err := f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	dst := make([]float32, 8)
	n, err := f.ReadFloats(dst, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []float32{1, 2, 3}, dst[:3])

	n, err = f.ReadFloats(dst, 0, 1)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrEndOfStream)

	// The file stays usable after end of stream.
	_, err = f.Seek(4, io.SeekStart)
	require.NoError(t, err)
	x, err := f.ReadFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(2), x)
}

func TestFileLargeWriteBypassesBuffer(t *testing.T) {
	f, path := openTemp(t, 16)

	require.NoError(t, f.WriteByte('<'))
	payload := bytes.Repeat([]byte("0123456789"), 10)
	n, err := f.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	require.NoError(t, f.WriteByte('>'))
	assert.Equal(t, int64(102), f.FilePointer())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<"+string(payload)+">", string(data))
}

func TestFileReadLargerThanBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.bin")
	payload := bytes.Repeat([]byte("abcdefgh"), 100)
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	f, err := Open(path, "r", 16)
	require.NoError(t, err)
	defer f.Close()

	got := make([]byte, 500)
	require.NoError(t, f.ReadFully(got))
	assert.Equal(t, payload[:500], got)

	rest := make([]byte, 500)
	n, err := f.Read(rest)
	require.NoError(t, err)
	assert.Equal(t, 300, n)

	n, err = f.Read(rest)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestFileReadAllAfterWrite(t *testing.T) {
	f, _ := openTemp(t, 16)
	defer f.Close()

	payload := bytes.Repeat([]byte("xyz"), 11)
	_, err := f.Write(payload)
	require.NoError(t, err)
	_, err = f.Seek(5, io.SeekStart)
	require.NoError(t, err)

	rest, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, payload[5:], rest)
	assert.Equal(t, int64(len(payload)), f.FilePointer())
}

func TestFileSkipClamps(t *testing.T) {
	f, _ := openTemp(t, 16)
	defer f.Close()

	_, err := f.Write(make([]byte, 50))
	require.NoError(t, err)
	_, err = f.Seek(10, io.SeekStart)
	require.NoError(t, err)

	n, err := f.Skip(100)
	require.NoError(t, err)
	assert.Equal(t, int64(40), n)
	assert.Equal(t, int64(50), f.FilePointer())

	n, err = f.Skip(-80)
	require.NoError(t, err)
	assert.Equal(t, int64(-50), n)
	assert.Equal(t, int64(0), f.FilePointer())

	m, err := f.SkipBytes(7)
	require.NoError(t, err)
	assert.Equal(t, 7, m)
	assert.Equal(t, int64(7), f.FilePointer())
}

func TestFileLengthAndSetLength(t *testing.T) {
	f, path := openTemp(t, 32)

	require.NoError(t, f.WriteInts(make([]int32, 10), 0, 10))
	length, err := f.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(40), length)

	require.NoError(t, f.SetLength(12))
	assert.Equal(t, int64(12), f.FilePointer())
	length, err = f.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(12), length)

	require.NoError(t, f.WriteInt(7))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 7}, data)
}

func TestFileReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 1}, 0o644))

	f, err := Open(path, "r", 0)
	require.NoError(t, err)
	defer f.Close()

	assert.ErrorIs(t, f.WriteShort(1), ErrReadOnly)
	assert.ErrorIs(t, f.SetLength(0), ErrReadOnly)

	v, err := f.ReadShort()
	require.NoError(t, err)
	assert.Equal(t, int16(1), v)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "x"), "w", 0)
	assert.Error(t, err)

	_, err = Open(filepath.Join(t.TempDir(), "missing"), "r", 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenFileFromConfig(t *testing.T) {
	cfg := config.DefaultConfig().IO
	cfg.BufferSize = 128
	cfg.FileMode = 0o600

	var logs bytes.Buffer
	logger := logging.NewWithWriter(&logs, zerolog.DebugLevel)

	path := filepath.Join(t.TempDir(), "cfg.bin")
	f, err := OpenFileFromConfig(path, "rw", cfg, WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 128, f.bufferSize)

	require.NoError(t, f.WriteDoubles([]float64{1, 2}, 0, 2))
	require.NoError(t, f.Close())
	assert.Contains(t, logs.String(), "flushing buffer")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
