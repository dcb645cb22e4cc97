// Package bytecodec formats and parses numbers in fixed-width byte fields
// without going through intermediate strings.
package bytecodec

import (
	"errors"
	"math"

	"github.com/soltixdb/fitscore/internal/config"
	"github.com/soltixdb/fitscore/internal/utils"
)

var (
	// ErrTruncation is returned when a value does not fit its field and the
	// formatter is configured to report it. The field is still filled.
	ErrTruncation = errors.New("value truncated to fit field")

	// ErrInvalidFormat is returned when the parser does not find the
	// expected lexical form.
	ErrInvalidFormat = errors.New("invalid number format")
)

var digits = [10]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'}

// Formatter writes values into caller-owned byte buffers.
// NOT THREAD-SAFE: it keeps scratch buffers and mutable settings.
type Formatter struct {
	tbuf1 [32]byte
	tbuf2 [32]byte

	truncateOnOverflow bool
	truncationFill     byte
	truncationThrow    bool
	align              bool
	simpleMin          float64
	simpleMax          float64
}

// NewFormatter returns a formatter with the default settings: truncate
// to the field width, fill with '*', report truncation, no alignment, and
// fixed-point notation for magnitudes in [1e-3, 1e6].
func NewFormatter() *Formatter {
	return &Formatter{
		truncateOnOverflow: true,
		truncationFill:     utils.DefaultTruncationFill,
		truncationThrow:    true,
		simpleMin:          utils.SimpleMin,
		simpleMax:          utils.SimpleMax,
	}
}

// NewFormatterFromConfig creates a formatter from configuration.
func NewFormatterFromConfig(cfg config.FormatterConfig) *Formatter {
	f := NewFormatter()
	f.truncateOnOverflow = cfg.TruncateOnOverflow
	if cfg.TruncationFill != "" {
		f.truncationFill = cfg.TruncationFill[0]
	}
	f.truncationThrow = cfg.TruncationThrow
	f.align = cfg.Align
	f.simpleMin = cfg.SimpleMin
	f.simpleMax = cfg.SimpleMax
	return f
}

// SetTruncateOnOverflow controls whether values wider than the requested
// field are truncated. When false a value may spill past the field as long
// as it fits in the buffer.
func (f *Formatter) SetTruncateOnOverflow(v bool) { f.truncateOnOverflow = v }

// SetTruncationThrow controls whether truncation is reported as ErrTruncation.
func (f *Formatter) SetTruncationThrow(v bool) { f.truncationThrow = v }

// SetTruncationFill sets the byte written over a truncated field.
func (f *Formatter) SetTruncationFill(c byte) { f.truncationFill = c }

// SetAlign right-aligns values within their field, padding with spaces.
func (f *Formatter) SetAlign(v bool) { f.align = v }

// SetSimpleRange sets the magnitudes between which reals are written in
// fixed-point notation rather than with an exponent.
func (f *Formatter) SetSimpleRange(lo, hi float64) {
	f.simpleMin = lo
	f.simpleMax = hi
}

// FormatInt writes val into buf[off:off+length] and returns the next offset.
func (f *Formatter) FormatInt(val int32, buf []byte, off, length int) (int, error) {
	if val == math.MinInt32 {
		if length > 10 || (!f.truncateOnOverflow && len(buf)-off > 10) {
			return f.FormatString("-2147483648", buf, off, length), nil
		}
		return off + length, f.truncationFiller(buf, off, length)
	}

	pos := int64(val)
	if pos < 0 {
		pos = -pos
	}
	return f.formatDigits(uint64(pos), val < 0, 10, buf, off, length)
}

// FormatLong writes val into buf[off:off+length] and returns the next offset.
func (f *Formatter) FormatLong(val int64, buf []byte, off, length int) (int, error) {
	if val == math.MinInt64 {
		if length > 19 || (!f.truncateOnOverflow && len(buf)-off > 19) {
			return f.FormatString("-9223372036854775808", buf, off, length), nil
		}
		return off + length, f.truncationFiller(buf, off, length)
	}

	pos := val
	if pos < 0 {
		pos = -pos
	}
	return f.formatDigits(uint64(pos), val < 0, 19, buf, off, length)
}

// formatDigits counts the digits of pos arithmetically, then writes them
// right to left.
func (f *Formatter) formatDigits(pos uint64, negative bool, maxDigits int, buf []byte, off, length int) (int, error) {
	ndig := 1
	dmax := uint64(10)
	for ndig < maxDigits && pos >= dmax {
		ndig++
		dmax *= 10
	}
	if negative {
		ndig++
	}

	if (f.truncateOnOverflow && ndig > length) || ndig > len(buf)-off {
		return off + length, f.truncationFiller(buf, off, length)
	}

	if f.align {
		off = f.AlignFill(buf, off, length-ndig)
	}

	off += ndig
	xoff := off - 1
	for {
		buf[xoff] = digits[pos%10]
		xoff--
		pos /= 10
		if pos == 0 {
			break
		}
	}
	if negative {
		buf[xoff] = '-'
	}
	return off, nil
}

// FormatBool writes 'T' or 'F'.
func (f *Formatter) FormatBool(val bool, buf []byte, off, length int) int {
	if f.align && length > 1 {
		off = f.AlignFill(buf, off, length-1)
	}
	if length > 0 {
		if val {
			buf[off] = 'T'
		} else {
			buf[off] = 'F'
		}
		off++
	}
	return off
}

// FormatString copies val into the field, cutting it to the field width
// when truncation is enabled or the buffer is too short.
func (f *Formatter) FormatString(val string, buf []byte, off, length int) int {
	slen := len(val)
	if (f.truncateOnOverflow && slen > length) || slen > len(buf)-off {
		slen = min(length, len(buf)-off)
		val = val[:slen]
	}
	if f.align && length > slen {
		off = f.AlignFill(buf, off, length-slen)
	}
	copy(buf[off:], val)
	return off + slen
}

// FormatBytes is FormatString for raw bytes. A nil value blanks the field.
func (f *Formatter) FormatBytes(val []byte, buf []byte, off, length int) int {
	if val == nil {
		return f.AlignFill(buf, off, length)
	}
	return f.FormatString(string(val), buf, off, length)
}

// AlignFill writes n spaces at off and returns the offset after them.
func (f *Formatter) AlignFill(buf []byte, off, n int) int {
	end := min(off+n, len(buf))
	for i := off; i < end; i++ {
		buf[i] = ' '
	}
	if n < 0 {
		return off
	}
	return off + n
}

func (f *Formatter) truncationFiller(buf []byte, off, length int) error {
	end := min(off+length, len(buf))
	for i := off; i < end; i++ {
		buf[i] = f.truncationFill
	}
	if f.truncationThrow {
		return ErrTruncation
	}
	return nil
}
