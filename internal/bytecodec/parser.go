package bytecodec

import (
	"fmt"
	"math"
	"strconv"
)

// Parser reads numbers out of a byte buffer, advancing an internal offset.
// After each successful call NumberLength reports how many bytes the value
// consumed. A failed call leaves the offset where it was.
// NOT THREAD-SAFE.
type Parser struct {
	input        []byte
	offset       int
	numberLength int
	fillFields   bool

	scratch []byte
}

// NewParser creates a parser over input, starting at offset zero.
func NewParser(input []byte) *Parser {
	return &Parser{input: input}
}

// SetBuffer replaces the input and rewinds to offset zero.
func (p *Parser) SetBuffer(input []byte) {
	p.input = input
	p.offset = 0
}

// Buffer returns the current input.
func (p *Parser) Buffer() []byte { return p.input }

// SetOffset moves the parse position.
func (p *Parser) SetOffset(offset int) { p.offset = offset }

// Offset returns the parse position.
func (p *Parser) Offset() int { return p.offset }

// NumberLength returns the bytes consumed by the last successful parse.
func (p *Parser) NumberLength() int { return p.numberLength }

// SetFillFields requires the remainder of a fixed-length field to be blank.
func (p *Parser) SetFillFields(v bool) { p.fillFields = v }

// Skip advances the offset by n bytes.
func (p *Parser) Skip(n int) { p.offset += n }

func isWhite(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// skipWhite advances past at most length whitespace bytes and returns how
// many were skipped.
func (p *Parser) skipWhite(length int) int {
	i := 0
	for i < length && p.offset < len(p.input) && isWhite(p.input[p.offset]) {
		p.offset++
		i++
	}
	return i
}

// remaining is the default field length: everything left in the buffer.
func (p *Parser) remaining() int {
	return max(len(p.input)-p.offset, 0)
}

// finish applies the fill-fields rule to the unparsed tail of a field.
func (p *Parser) finish(start, length int) error {
	if p.fillFields && length > 0 {
		for i := 0; i < length; i++ {
			if at := p.offset + i; at >= len(p.input) || !isWhite(p.input[at]) {
				p.offset = start
				return fmt.Errorf("non-blank content after number at offset %d: %w", at, ErrInvalidFormat)
			}
		}
		p.offset += length
	}
	p.numberLength = p.offset - start
	return nil
}

func (p *Parser) fail(start int, msg string) error {
	p.offset = start
	return fmt.Errorf("%s at offset %d: %w", msg, start, ErrInvalidFormat)
}

// GetInt parses an int32 from the rest of the buffer.
func (p *Parser) GetInt() (int32, error) {
	return p.GetIntN(p.remaining())
}

// GetIntN parses an int32 from a field of the given length.
func (p *Parser) GetIntN(length int) (int32, error) {
	v, err := p.getLong(length, 32)
	return int32(v), err
}

// GetLong parses an int64 from the rest of the buffer.
func (p *Parser) GetLong() (int64, error) {
	return p.GetLongN(p.remaining())
}

// GetLongN parses an int64 from a field of the given length.
func (p *Parser) GetLongN(length int) (int64, error) {
	return p.getLong(length, 64)
}

func (p *Parser) getLong(length, bitSize int) (int64, error) {
	start := p.offset
	length -= p.skipWhite(length)
	if length <= 0 || p.offset >= len(p.input) {
		return 0, p.fail(start, "blank field")
	}

	negative := false
	switch p.input[p.offset] {
	case '-':
		negative = true
		p.offset++
		length--
	case '+':
		p.offset++
		length--
	}

	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}
	var mag uint64
	ndig := 0
	for length > 0 && p.offset < len(p.input) {
		c := p.input[p.offset]
		if c < '0' || c > '9' {
			break
		}
		d := uint64(c - '0')
		if mag > (limit-d)/10 {
			return 0, p.fail(start, "integer out of range")
		}
		mag = mag*10 + d
		p.offset++
		length--
		ndig++
	}
	if ndig == 0 {
		return 0, p.fail(start, "no digits found")
	}
	number := int64(mag)
	if negative {
		number = -number
	}
	if bitSize == 32 && (number > math.MaxInt32 || number < math.MinInt32) {
		return 0, p.fail(start, "integer out of range")
	}

	if err := p.finish(start, length); err != nil {
		return 0, err
	}
	return number, nil
}

// GetFloat parses a float32 from the rest of the buffer.
func (p *Parser) GetFloat() (float32, error) {
	v, err := p.GetDoubleN(p.remaining())
	return float32(v), err
}

// GetFloatN parses a float32 from a field of the given length.
func (p *Parser) GetFloatN(length int) (float32, error) {
	v, err := p.GetDoubleN(length)
	return float32(v), err
}

// GetDouble parses a float64 from the rest of the buffer.
func (p *Parser) GetDouble() (float64, error) {
	return p.GetDoubleN(p.remaining())
}

// GetDoubleN parses a float64 from a field of the given length. Accepted
// form: optional sign, digits, optional fraction, optional exponent
// introduced by e, E, d or D. At least one mantissa digit is required.
func (p *Parser) GetDoubleN(length int) (float64, error) {
	start := p.offset
	length -= p.skipWhite(length)
	if length <= 0 || p.offset >= len(p.input) {
		return 0, p.fail(start, "blank field")
	}

	p.scratch = p.scratch[:0]
	if c := p.input[p.offset]; c == '-' || c == '+' {
		p.scratch = append(p.scratch, c)
		p.offset++
		length--
	}

	if v, ok := p.special(&length); ok {
		if len(p.scratch) > 0 && p.scratch[0] == '-' {
			v = -v
		}
		if err := p.finish(start, length); err != nil {
			return 0, err
		}
		return v, nil
	}

	intDigits := p.bareDigits(&length)
	fracDigits := 0
	if length > 0 && p.offset < len(p.input) && p.input[p.offset] == '.' {
		p.scratch = append(p.scratch, '.')
		p.offset++
		length--
		fracDigits = p.bareDigits(&length)
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0, p.fail(start, "no digits found")
	}

	if length > 0 && p.offset < len(p.input) {
		switch p.input[p.offset] {
		case 'e', 'E', 'd', 'D':
			mark := p.offset
			markLen := length
			markScratch := len(p.scratch)

			p.scratch = append(p.scratch, 'e')
			p.offset++
			length--
			if length > 0 && p.offset < len(p.input) {
				if c := p.input[p.offset]; c == '-' || c == '+' {
					p.scratch = append(p.scratch, c)
					p.offset++
					length--
				}
			}
			if p.bareDigits(&length) == 0 {
				// A dangling exponent marker is not part of the number.
				p.offset = mark
				length = markLen
				p.scratch = p.scratch[:markScratch]
			}
		}
	}

	value, err := strconv.ParseFloat(string(p.scratch), 64)
	if err != nil && !math.IsInf(value, 0) {
		return 0, p.fail(start, "malformed real")
	}

	if err := p.finish(start, length); err != nil {
		return 0, err
	}
	return value, nil
}

// special recognizes the NaN and Infinity literals written by Formatter.
func (p *Parser) special(length *int) (float64, bool) {
	for _, lit := range [...]struct {
		text  string
		value float64
	}{{"NaN", math.NaN()}, {"Infinity", math.Inf(1)}} {
		n := len(lit.text)
		if *length >= n && p.offset+n <= len(p.input) && string(p.input[p.offset:p.offset+n]) == lit.text {
			p.offset += n
			*length -= n
			return lit.value, true
		}
	}
	return 0, false
}

// bareDigits consumes a run of decimal digits of any length into the
// scratch buffer and returns how many were read.
func (p *Parser) bareDigits(length *int) int {
	n := 0
	for *length > 0 && p.offset < len(p.input) {
		c := p.input[p.offset]
		if c < '0' || c > '9' {
			break
		}
		p.scratch = append(p.scratch, c)
		p.offset++
		*length--
		n++
	}
	return n
}

// GetBoolean parses T/t or F/f from the rest of the buffer.
func (p *Parser) GetBoolean() (bool, error) {
	return p.GetBooleanN(p.remaining())
}

// GetBooleanN parses T/t or F/f from a field of the given length.
func (p *Parser) GetBooleanN(length int) (bool, error) {
	start := p.offset
	length -= p.skipWhite(length)
	if length <= 0 || p.offset >= len(p.input) {
		return false, p.fail(start, "blank field")
	}

	var value bool
	switch p.input[p.offset] {
	case 'T', 't':
		value = true
	case 'F', 'f':
		value = false
	default:
		return false, p.fail(start, "invalid boolean")
	}
	p.offset++
	length--

	if err := p.finish(start, length); err != nil {
		return false, err
	}
	return value, nil
}

// GetString returns the next length bytes verbatim.
func (p *Parser) GetString(length int) string {
	begin := min(p.offset, len(p.input))
	end := min(begin+max(length, 0), len(p.input))
	s := string(p.input[begin:end])
	p.offset = end
	return s
}
