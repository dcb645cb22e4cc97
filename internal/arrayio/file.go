package arrayio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/soltixdb/fitscore/internal/config"
	"github.com/soltixdb/fitscore/internal/logging"
)

// Resource is the seekable storage behind a BufferedFile. *os.File
// satisfies it.
type Resource interface {
	io.ReadWriteSeeker
	io.Closer
	Truncate(size int64) error
}

// BufferedFile is a random-access file with one window buffer shared by
// reads and writes. The window holds either input read ahead from the
// resource or output not yet written to it, never both: switching
// direction flushes pending output or drops the input window.
type BufferedFile struct {
	res      Resource
	readOnly bool

	buf          []byte
	bufferSize   int
	bufferOffset int // cursor within buf
	bufferLength int // valid input bytes in buf
	fileOffset   int64
	doingInput   bool

	logger *logging.Logger
	debug  bool
}

var _ RandomAccess = (*BufferedFile)(nil)

// New wraps an open resource positioned at offset zero.
func New(res Resource, bufferSize int, opts ...Option) *BufferedFile {
	o := buildOptions(opts)
	size := normalizeBufferSize(bufferSize)
	return &BufferedFile{
		res:        res,
		buf:        make([]byte, size),
		bufferSize: size,
		doingInput: true,
		logger:     o.logger,
		debug:      o.logger.Enabled(zerolog.DebugLevel),
	}
}

// Open opens path with mode "r" (read only) or "rw" (read/write, created
// if missing).
func Open(path, mode string, bufferSize int, opts ...Option) (*BufferedFile, error) {
	o := buildOptions(opts)

	var (
		file *os.File
		err  error
	)
	switch mode {
	case "r":
		file, err = os.Open(path)
	case "rw":
		file, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, o.perm)
	default:
		return nil, fmt.Errorf("invalid file mode %q: must be \"r\" or \"rw\"", mode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	f := New(file, bufferSize, opts...)
	f.readOnly = mode == "r"
	f.logger = f.logger.With("path", path)
	return f, nil
}

// OpenFileFromConfig opens path using the buffer size and file mode of the
// io configuration section.
func OpenFileFromConfig(path, mode string, cfg config.IOConfig, opts ...Option) (*BufferedFile, error) {
	opts = append([]Option{WithFileMode(cfg.Permissions())}, opts...)
	return Open(path, mode, cfg.BufferSize, opts...)
}

// checkBuffer switches to input and tries to make need bytes available
// past the cursor. If the resource runs out first the window holds what
// could be read; callers compare bufferOffset with bufferLength.
func (f *BufferedFile) checkBuffer(need int) error {
	if !f.doingInput && f.bufferOffset > 0 {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	f.doingInput = true

	if f.bufferOffset+need < f.bufferLength {
		return nil
	}

	// Slide the unread tail to the front and top up behind it.
	tail := f.bufferLength - f.bufferOffset
	f.fileOffset += int64(f.bufferOffset)
	if tail > 0 {
		copy(f.buf, f.buf[f.bufferOffset:f.bufferLength])
	}
	need -= tail
	f.bufferLength = tail
	f.bufferOffset = 0

	for need > 0 && f.bufferLength < f.bufferSize {
		n, err := f.res.Read(f.buf[f.bufferLength:])
		need -= n
		f.bufferLength += n
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to refill buffer at offset %d: %w", f.fileOffset, err)
		}
	}
	if f.debug {
		f.logger.Debug("buffer refilled", "file_offset", f.fileOffset, "valid", f.bufferLength)
	}
	return nil
}

// needBuffer switches to output and makes room for need bytes.
func (f *BufferedFile) needBuffer(need int) error {
	if f.readOnly {
		return ErrReadOnly
	}
	if f.doingInput {
		f.fileOffset += int64(f.bufferOffset)
		if _, err := f.res.Seek(f.fileOffset, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek to %d: %w", f.fileOffset, err)
		}
		f.doingInput = false
		f.bufferOffset = 0
		f.bufferLength = 0
	}
	if f.bufferOffset+need >= f.bufferSize {
		return f.Flush()
	}
	return nil
}

func (f *BufferedFile) fill(want int) ([]byte, error) {
	if err := f.checkBuffer(min(want, f.bufferSize)); err != nil {
		return nil, err
	}
	return f.buf[f.bufferOffset:f.bufferLength], nil
}

func (f *BufferedFile) advance(n int) {
	f.bufferOffset += n
}

func (f *BufferedFile) space(want int) ([]byte, error) {
	if err := f.needBuffer(min(want, 8)); err != nil {
		return nil, err
	}
	return f.buf[f.bufferOffset:min(f.bufferOffset+want, f.bufferSize)], nil
}

func (f *BufferedFile) commit(p []byte) error {
	f.bufferOffset += len(p)
	return nil
}

// Read implements io.Reader. It keeps reading until p is full or the
// resource is exhausted.
func (f *BufferedFile) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		if f.doingInput && f.bufferOffset < f.bufferLength {
			n := copy(p[total:], f.buf[f.bufferOffset:f.bufferLength])
			f.bufferOffset += n
			total += n
			continue
		}
		if err := f.checkBuffer(min(len(p)-total, f.bufferSize)); err != nil {
			return total, err
		}
		if f.bufferOffset >= f.bufferLength {
			if total == 0 {
				return 0, io.EOF
			}
			break
		}
	}
	return total, nil
}

// Write implements io.Writer. Writes of at least one buffer length go
// straight to the resource.
func (f *BufferedFile) Write(p []byte) (int, error) {
	if len(p) < f.bufferSize {
		if err := f.needBuffer(len(p)); err != nil {
			return 0, err
		}
		copy(f.buf[f.bufferOffset:], p)
		f.bufferOffset += len(p)
		return len(p), nil
	}

	if err := f.needBuffer(0); err != nil {
		return 0, err
	}
	if err := f.Flush(); err != nil {
		return 0, err
	}
	n, err := f.res.Write(p)
	f.fileOffset += int64(n)
	if err != nil {
		return n, fmt.Errorf("failed to write %d bytes at offset %d: %w", len(p), f.fileOffset, err)
	}
	return n, nil
}

// WriteString writes the raw bytes of s.
func (f *BufferedFile) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

func (f *BufferedFile) ReadByte() (byte, error)      { return readScalar[byte](f) }
func (f *BufferedFile) ReadBoolean() (bool, error)   { return readScalar[bool](f) }
func (f *BufferedFile) ReadShort() (int16, error)    { return readScalar[int16](f) }
func (f *BufferedFile) ReadChar() (uint16, error)    { return readScalar[uint16](f) }
func (f *BufferedFile) ReadInt() (int32, error)      { return readScalar[int32](f) }
func (f *BufferedFile) ReadLong() (int64, error)     { return readScalar[int64](f) }
func (f *BufferedFile) ReadFloat() (float32, error)  { return readScalar[float32](f) }
func (f *BufferedFile) ReadDouble() (float64, error) { return readScalar[float64](f) }
func (f *BufferedFile) WriteByte(v byte) error       { return writeScalar(f, v) }
func (f *BufferedFile) WriteBoolean(v bool) error    { return writeScalar(f, v) }
func (f *BufferedFile) WriteShort(v int16) error     { return writeScalar(f, v) }
func (f *BufferedFile) WriteChar(v uint16) error     { return writeScalar(f, v) }
func (f *BufferedFile) WriteInt(v int32) error       { return writeScalar(f, v) }
func (f *BufferedFile) WriteLong(v int64) error      { return writeScalar(f, v) }
func (f *BufferedFile) WriteFloat(v float32) error   { return writeScalar(f, v) }
func (f *BufferedFile) WriteDouble(v float64) error  { return writeScalar(f, v) }

func (f *BufferedFile) ReadBytes(b []byte, off, n int) (int, error) {
	return readElems(f, b, off, n)
}

func (f *BufferedFile) ReadBooleans(b []bool, off, n int) (int, error) {
	return readElems(f, b, off, n)
}

func (f *BufferedFile) ReadShorts(b []int16, off, n int) (int, error) {
	return readElems(f, b, off, n)
}

func (f *BufferedFile) ReadChars(b []uint16, off, n int) (int, error) {
	return readElems(f, b, off, n)
}

func (f *BufferedFile) ReadInts(b []int32, off, n int) (int, error) {
	return readElems(f, b, off, n)
}

func (f *BufferedFile) ReadLongs(b []int64, off, n int) (int, error) {
	return readElems(f, b, off, n)
}

func (f *BufferedFile) ReadFloats(b []float32, off, n int) (int, error) {
	return readElems(f, b, off, n)
}

func (f *BufferedFile) ReadDoubles(b []float64, off, n int) (int, error) {
	return readElems(f, b, off, n)
}

func (f *BufferedFile) WriteBytes(b []byte, off, n int) error {
	if err := checkRange(len(b), off, n); err != nil {
		return err
	}
	_, err := f.Write(b[off : off+n])
	return err
}

func (f *BufferedFile) WriteBooleans(b []bool, off, n int) error {
	return writeElems(f, b, off, n)
}

func (f *BufferedFile) WriteShorts(b []int16, off, n int) error {
	return writeElems(f, b, off, n)
}

func (f *BufferedFile) WriteChars(b []uint16, off, n int) error {
	return writeElems(f, b, off, n)
}

func (f *BufferedFile) WriteInts(b []int32, off, n int) error {
	return writeElems(f, b, off, n)
}

func (f *BufferedFile) WriteLongs(b []int64, off, n int) error {
	return writeElems(f, b, off, n)
}

func (f *BufferedFile) WriteFloats(b []float32, off, n int) error {
	return writeElems(f, b, off, n)
}

func (f *BufferedFile) WriteDoubles(b []float64, off, n int) error {
	return writeElems(f, b, off, n)
}

// ReadArray fills x, which may be a nested primitive slice, and returns
// the number of bytes read.
func (f *BufferedFile) ReadArray(x any) (int64, error) {
	return readArray(f, x)
}

// WriteArray encodes x, which may be a nested primitive slice, and returns
// the number of bytes written.
func (f *BufferedFile) WriteArray(x any) (int64, error) {
	return writeArray(f, x)
}

// ReadFully fills b completely or fails with ErrEndOfStream.
func (f *BufferedFile) ReadFully(b []byte) error {
	n, err := f.Read(b)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if n < len(b) {
		if n > 0 {
			f.logger.Warn("short read", "requested", len(b), "read", n, "file_offset", f.FilePointer())
		}
		return ErrEndOfStream
	}
	return nil
}

// Flush writes pending output to the resource.
func (f *BufferedFile) Flush() error {
	if f.doingInput || f.bufferOffset == 0 {
		return nil
	}
	if f.debug {
		f.logger.Debug("flushing buffer", "file_offset", f.fileOffset, "bytes", f.bufferOffset)
	}
	n, err := f.res.Write(f.buf[:f.bufferOffset])
	f.fileOffset += int64(n)
	if err != nil {
		return fmt.Errorf("failed to flush %d bytes: %w", f.bufferOffset, err)
	}
	f.bufferOffset = 0
	f.bufferLength = 0
	return nil
}

// Seek implements io.Seeker. A target inside the current input window only
// moves the cursor. Negative absolute targets are clamped to zero.
func (f *BufferedFile) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = f.FilePointer() + offset
	case io.SeekEnd:
		length, err := f.Length()
		if err != nil {
			return f.FilePointer(), err
		}
		target = length + offset
	default:
		return f.FilePointer(), fmt.Errorf("invalid whence %d", whence)
	}
	err := f.seek(target)
	return f.FilePointer(), err
}

func (f *BufferedFile) seek(target int64) error {
	if !f.doingInput {
		if err := f.Flush(); err != nil {
			return err
		}
	}

	if f.fileOffset <= target && target < f.fileOffset+int64(f.bufferLength) {
		f.bufferOffset = int(target - f.fileOffset)
		return nil
	}

	target = max(target, 0)
	if f.debug {
		f.logger.Debug("seeking resource", "from", f.FilePointer(), "to", target)
	}
	if _, err := f.res.Seek(target, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to %d: %w", target, err)
	}
	f.fileOffset = target
	f.bufferLength = 0
	f.bufferOffset = 0
	return nil
}

// Skip moves the file pointer by n bytes, clamped to [0, Length], and
// returns the distance actually moved.
func (f *BufferedFile) Skip(n int64) (int64, error) {
	pos := f.FilePointer()
	length, err := f.Length()
	if err != nil {
		return 0, err
	}

	switch {
	case n > 0 && pos+n > length:
		n = length - pos
	case pos+n < 0:
		n = -pos
	}
	if err := f.seek(pos + n); err != nil {
		return 0, err
	}
	return n, nil
}

// SkipBytes is Skip for int counts.
func (f *BufferedFile) SkipBytes(n int) (int, error) {
	m, err := f.Skip(int64(n))
	return int(m), err
}

// FilePointer returns the absolute position of the cursor.
func (f *BufferedFile) FilePointer() int64 {
	return f.fileOffset + int64(f.bufferOffset)
}

// Length flushes pending output and returns the size of the resource.
func (f *BufferedFile) Length() (int64, error) {
	if err := f.Flush(); err != nil {
		return 0, err
	}
	cur, err := f.res.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := f.res.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := f.res.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

// SetLength truncates or extends the resource. A file pointer past the new
// end is moved back to it.
func (f *BufferedFile) SetLength(n int64) error {
	if f.readOnly {
		return ErrReadOnly
	}
	if err := f.Flush(); err != nil {
		return err
	}
	pos := min(f.FilePointer(), n)
	if err := f.res.Truncate(n); err != nil {
		return fmt.Errorf("failed to set length %d: %w", n, err)
	}
	if _, err := f.res.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to %d: %w", pos, err)
	}
	f.fileOffset = pos
	f.bufferOffset = 0
	f.bufferLength = 0
	return nil
}

// Close flushes pending output and releases the resource.
func (f *BufferedFile) Close() error {
	err := f.Flush()
	if cerr := f.res.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close: %w", cerr)
	}
	return err
}
