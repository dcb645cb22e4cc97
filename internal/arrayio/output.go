package arrayio

import (
	"bufio"
	"io"

	"github.com/soltixdb/fitscore/internal/logging"
)

// BufferedDataOutputStream encodes primitive arrays onto any io.Writer.
// Output is buffered until Flush or Close.
type BufferedDataOutputStream struct {
	w      *bufio.Writer
	under  io.Writer
	logger *logging.Logger
}

var _ ArrayDataOutput = (*BufferedDataOutputStream)(nil)

// NewOutputStream wraps w with a write buffer of bufferSize bytes
// (non-positive selects the default).
func NewOutputStream(w io.Writer, bufferSize int, opts ...Option) *BufferedDataOutputStream {
	o := buildOptions(opts)
	return &BufferedDataOutputStream{
		w:      bufio.NewWriterSize(w, normalizeBufferSize(bufferSize)),
		under:  w,
		logger: o.logger,
	}
}

func (s *BufferedDataOutputStream) space(want int) ([]byte, error) {
	if s.w.Available() < min(want, 8) {
		if err := s.w.Flush(); err != nil {
			return nil, err
		}
	}
	p := s.w.AvailableBuffer()
	return p[:min(want, cap(p))], nil
}

func (s *BufferedDataOutputStream) commit(p []byte) error {
	_, err := s.w.Write(p)
	return err
}

// Write implements io.Writer.
func (s *BufferedDataOutputStream) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// WriteString writes the raw bytes of str.
func (s *BufferedDataOutputStream) WriteString(str string) (int, error) {
	return s.w.WriteString(str)
}

func (s *BufferedDataOutputStream) WriteByte(v byte) error      { return s.w.WriteByte(v) }
func (s *BufferedDataOutputStream) WriteBoolean(v bool) error   { return writeScalar(s, v) }
func (s *BufferedDataOutputStream) WriteShort(v int16) error    { return writeScalar(s, v) }
func (s *BufferedDataOutputStream) WriteChar(v uint16) error    { return writeScalar(s, v) }
func (s *BufferedDataOutputStream) WriteInt(v int32) error      { return writeScalar(s, v) }
func (s *BufferedDataOutputStream) WriteLong(v int64) error     { return writeScalar(s, v) }
func (s *BufferedDataOutputStream) WriteFloat(v float32) error  { return writeScalar(s, v) }
func (s *BufferedDataOutputStream) WriteDouble(v float64) error { return writeScalar(s, v) }

func (s *BufferedDataOutputStream) WriteBytes(b []byte, off, n int) error {
	if err := checkRange(len(b), off, n); err != nil {
		return err
	}
	_, err := s.w.Write(b[off : off+n])
	return err
}

func (s *BufferedDataOutputStream) WriteBooleans(b []bool, off, n int) error {
	return writeElems(s, b, off, n)
}

func (s *BufferedDataOutputStream) WriteShorts(b []int16, off, n int) error {
	return writeElems(s, b, off, n)
}

func (s *BufferedDataOutputStream) WriteChars(b []uint16, off, n int) error {
	return writeElems(s, b, off, n)
}

func (s *BufferedDataOutputStream) WriteInts(b []int32, off, n int) error {
	return writeElems(s, b, off, n)
}

func (s *BufferedDataOutputStream) WriteLongs(b []int64, off, n int) error {
	return writeElems(s, b, off, n)
}

func (s *BufferedDataOutputStream) WriteFloats(b []float32, off, n int) error {
	return writeElems(s, b, off, n)
}

func (s *BufferedDataOutputStream) WriteDoubles(b []float64, off, n int) error {
	return writeElems(s, b, off, n)
}

// WriteArray encodes x, which may be a nested primitive slice, and returns
// the number of bytes written.
func (s *BufferedDataOutputStream) WriteArray(x any) (int64, error) {
	return writeArray(s, x)
}

// Flush writes buffered output to the underlying writer.
func (s *BufferedDataOutputStream) Flush() error {
	if n := s.w.Buffered(); n > 0 {
		s.logger.Debug("flushing stream buffer", "bytes", n)
	}
	return s.w.Flush()
}

// Close flushes and then closes the underlying writer if it is an
// io.Closer.
func (s *BufferedDataOutputStream) Close() error {
	err := s.Flush()
	if c, ok := s.under.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
