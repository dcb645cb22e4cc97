package arrayio

import (
	"bufio"
	"errors"
	"io"

	"github.com/soltixdb/fitscore/internal/logging"
)

// BufferedDataInputStream decodes primitive arrays from any io.Reader.
type BufferedDataInputStream struct {
	r      *bufio.Reader
	under  io.Reader
	logger *logging.Logger
}

var _ ArrayDataInput = (*BufferedDataInputStream)(nil)

// NewInputStream wraps r with a read buffer of bufferSize bytes
// (non-positive selects the default).
func NewInputStream(r io.Reader, bufferSize int, opts ...Option) *BufferedDataInputStream {
	o := buildOptions(opts)
	return &BufferedDataInputStream{
		r:      bufio.NewReaderSize(r, normalizeBufferSize(bufferSize)),
		under:  r,
		logger: o.logger,
	}
}

func (s *BufferedDataInputStream) fill(want int) ([]byte, error) {
	p, err := s.r.Peek(min(want, s.r.Size()))
	if err != nil && !errors.Is(err, io.EOF) {
		return p, err
	}
	return p, nil
}

func (s *BufferedDataInputStream) advance(n int) {
	_, _ = s.r.Discard(n)
}

// Read implements io.Reader.
func (s *BufferedDataInputStream) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// ReadByte reads one byte.
func (s *BufferedDataInputStream) ReadByte() (byte, error) { return readScalar[byte](s) }

// ReadBoolean reads one byte and reports whether it equals 1.
func (s *BufferedDataInputStream) ReadBoolean() (bool, error) { return readScalar[bool](s) }

func (s *BufferedDataInputStream) ReadShort() (int16, error)    { return readScalar[int16](s) }
func (s *BufferedDataInputStream) ReadChar() (uint16, error)    { return readScalar[uint16](s) }
func (s *BufferedDataInputStream) ReadInt() (int32, error)      { return readScalar[int32](s) }
func (s *BufferedDataInputStream) ReadLong() (int64, error)     { return readScalar[int64](s) }
func (s *BufferedDataInputStream) ReadFloat() (float32, error)  { return readScalar[float32](s) }
func (s *BufferedDataInputStream) ReadDouble() (float64, error) { return readScalar[float64](s) }

func (s *BufferedDataInputStream) ReadBytes(b []byte, off, n int) (int, error) {
	return readElems(s, b, off, n)
}

func (s *BufferedDataInputStream) ReadBooleans(b []bool, off, n int) (int, error) {
	return readElems(s, b, off, n)
}

func (s *BufferedDataInputStream) ReadShorts(b []int16, off, n int) (int, error) {
	return readElems(s, b, off, n)
}

func (s *BufferedDataInputStream) ReadChars(b []uint16, off, n int) (int, error) {
	return readElems(s, b, off, n)
}

func (s *BufferedDataInputStream) ReadInts(b []int32, off, n int) (int, error) {
	return readElems(s, b, off, n)
}

func (s *BufferedDataInputStream) ReadLongs(b []int64, off, n int) (int, error) {
	return readElems(s, b, off, n)
}

func (s *BufferedDataInputStream) ReadFloats(b []float32, off, n int) (int, error) {
	return readElems(s, b, off, n)
}

func (s *BufferedDataInputStream) ReadDoubles(b []float64, off, n int) (int, error) {
	return readElems(s, b, off, n)
}

// ReadArray fills x, which may be a nested primitive slice, and returns
// the number of bytes read.
func (s *BufferedDataInputStream) ReadArray(x any) (int64, error) {
	return readArray(s, x)
}

// ReadFully fills b completely or fails with ErrEndOfStream.
func (s *BufferedDataInputStream) ReadFully(b []byte) error {
	n, err := io.ReadFull(s.r, b)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		if n > 0 {
			s.logger.Warn("short read", "requested", len(b), "read", n)
		}
		return ErrEndOfStream
	}
	return err
}

// Skip discards up to n bytes and returns how many were discarded.
func (s *BufferedDataInputStream) Skip(n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	m, err := io.CopyN(io.Discard, s.r, n)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return m, err
}

// SkipBytes is Skip for int counts.
func (s *BufferedDataInputStream) SkipBytes(n int) (int, error) {
	m, err := s.Skip(int64(n))
	return int(m), err
}

// Close closes the underlying reader if it is an io.Closer.
func (s *BufferedDataInputStream) Close() error {
	if c, ok := s.under.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
