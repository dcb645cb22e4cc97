// Package arrayio reads and writes primitive arrays in big-endian binary
// form over buffered streams and a buffered random-access file.
//
// Every bulk read follows the same contract: it fills as much of the
// requested range as the source can supply. If nothing at all could be read
// it fails with ErrEndOfStream; if at least one element arrived before the
// source ran dry it returns the short element count and no error.
//
// None of the types here are safe for concurrent use.
package arrayio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/soltixdb/fitscore/internal/logging"
	"github.com/soltixdb/fitscore/internal/utils"
)

var (
	// ErrEndOfStream is returned when no data at all was available for a
	// read. It wraps io.EOF.
	ErrEndOfStream = fmt.Errorf("end of stream: %w", io.EOF)

	// ErrInvalidArrayArgument is returned when a generic array method is
	// given something other than a (nested) primitive slice.
	ErrInvalidArrayArgument = errors.New("invalid array argument")

	// ErrReadOnly is returned when writing to a file opened with mode "r".
	ErrReadOnly = errors.New("file opened read-only")
)

// ArrayDataInput is the read side of the array stream contract.
type ArrayDataInput interface {
	io.Reader
	io.ByteReader
	io.Closer

	ReadBoolean() (bool, error)
	ReadShort() (int16, error)
	ReadChar() (uint16, error)
	ReadInt() (int32, error)
	ReadLong() (int64, error)
	ReadFloat() (float32, error)
	ReadDouble() (float64, error)

	// Bulk reads fill b[off:off+n] and return the number of elements read.
	ReadBytes(b []byte, off, n int) (int, error)
	ReadBooleans(b []bool, off, n int) (int, error)
	ReadShorts(b []int16, off, n int) (int, error)
	ReadChars(b []uint16, off, n int) (int, error)
	ReadInts(b []int32, off, n int) (int, error)
	ReadLongs(b []int64, off, n int) (int, error)
	ReadFloats(b []float32, off, n int) (int, error)
	ReadDoubles(b []float64, off, n int) (int, error)

	// ReadArray fills a primitive slice of any nesting depth and returns
	// the number of bytes read.
	ReadArray(x any) (int64, error)
	ReadFully(b []byte) error
	Skip(n int64) (int64, error)
	SkipBytes(n int) (int, error)
}

// ArrayDataOutput is the write side of the array stream contract.
type ArrayDataOutput interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
	io.Closer

	WriteBoolean(v bool) error
	WriteShort(v int16) error
	WriteChar(v uint16) error
	WriteInt(v int32) error
	WriteLong(v int64) error
	WriteFloat(v float32) error
	WriteDouble(v float64) error

	// Bulk writes encode b[off:off+n].
	WriteBytes(b []byte, off, n int) error
	WriteBooleans(b []bool, off, n int) error
	WriteShorts(b []int16, off, n int) error
	WriteChars(b []uint16, off, n int) error
	WriteInts(b []int32, off, n int) error
	WriteLongs(b []int64, off, n int) error
	WriteFloats(b []float32, off, n int) error
	WriteDoubles(b []float64, off, n int) error

	// WriteArray encodes a primitive slice of any nesting depth and returns
	// the number of bytes written.
	WriteArray(x any) (int64, error)
	Flush() error
}

// RandomAccess combines both directions with positioning.
type RandomAccess interface {
	ArrayDataInput
	ArrayDataOutput
	io.Seeker

	FilePointer() int64
	Length() (int64, error)
	SetLength(n int64) error
}

// Option is a functional option for streams and files.
type Option func(*options)

type options struct {
	logger *logging.Logger
	perm   os.FileMode
}

// WithLogger sets the logger used for buffer and seek tracing.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFileMode sets the permission bits used when Open creates a file.
func WithFileMode(perm os.FileMode) Option {
	return func(o *options) { o.perm = perm }
}

func buildOptions(opts []Option) options {
	o := options{perm: utils.DefaultFileMode}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrNop(o.logger)
	return o
}

// normalizeBufferSize applies the default for non-positive sizes and the
// minimum that still holds one element of every variant.
func normalizeBufferSize(n int) int {
	if n <= 0 {
		return utils.DefaultBufferSize
	}
	return max(n, utils.MinBufferSize)
}

func checkRange(length, off, n int) error {
	if off < 0 || n < 0 || off > length-n {
		return fmt.Errorf("range [%d:%d] outside slice of length %d: %w", off, off+n, length, ErrInvalidArrayArgument)
	}
	return nil
}
