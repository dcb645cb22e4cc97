package bytecodec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserGetInt(t *testing.T) {
	p := NewParser([]byte("  123\t-456 +7"))

	v, err := p.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int32(123), v)
	assert.Equal(t, 5, p.NumberLength())
	assert.Equal(t, 5, p.Offset())

	v, err = p.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int32(-456), v)

	v, err = p.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
}

func TestParserFailureRewinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		parse func(p *Parser) error
	}{
		{"int without digits", "  abc", func(p *Parser) error { _, err := p.GetInt(); return err }},
		{"sign only", "-", func(p *Parser) error { _, err := p.GetLong(); return err }},
		{"blank", "    ", func(p *Parser) error { _, err := p.GetInt(); return err }},
		{"int out of range", "3000000000", func(p *Parser) error { _, err := p.GetInt(); return err }},
		{"long out of range", "9223372036854775808", func(p *Parser) error { _, err := p.GetLong(); return err }},
		{"long below range", "-9223372036854775809", func(p *Parser) error { _, err := p.GetLong(); return err }},
		{"twenty digit long", "12345678901234567890", func(p *Parser) error { _, err := p.GetLong(); return err }},
		{"double without digits", " .e5", func(p *Parser) error { _, err := p.GetDouble(); return err }},
		{"bad boolean", " x", func(p *Parser) error { _, err := p.GetBoolean(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser([]byte(tt.input))
			err := tt.parse(p)
			assert.ErrorIs(t, err, ErrInvalidFormat)
			assert.Equal(t, 0, p.Offset())
		})
	}
}

func TestParserFillFields(t *testing.T) {
	p := NewParser([]byte("12 x34   "))
	p.SetFillFields(true)

	_, err := p.GetIntN(4)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Equal(t, 0, p.Offset())

	p.SetBuffer([]byte("12  34   "))
	v, err := p.GetIntN(4)
	require.NoError(t, err)
	assert.Equal(t, int32(12), v)
	assert.Equal(t, 4, p.Offset())
	assert.Equal(t, 4, p.NumberLength())

	v, err = p.GetIntN(5)
	require.NoError(t, err)
	assert.Equal(t, int32(34), v)
	assert.Equal(t, 9, p.Offset())
}

func TestParserIgnoresTrailingByDefault(t *testing.T) {
	p := NewParser([]byte("12xyz"))
	v, err := p.GetIntN(5)
	require.NoError(t, err)
	assert.Equal(t, int32(12), v)
	assert.Equal(t, 2, p.Offset())
}

func TestParserGetDouble(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		used  int
	}{
		{"1.5E3", 1500, 5},
		{"2.5d-2", 0.025, 6},
		{"  -.5", -0.5, 5},
		{"7.", 7, 2},
		{"+12", 12, 3},
		{"1e", 1, 1},
		{"3.25D+1", 32.5, 7},
		{"123456789012345678901234567890", 1.2345678901234568e29, 30},
		{"1e400", math.Inf(1), 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := NewParser([]byte(tt.input))
			v, err := p.GetDouble()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.used, p.NumberLength())
		})
	}
}

func TestParserSpecialValues(t *testing.T) {
	v, err := NewParser([]byte("NaN")).GetDouble()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	v, err = NewParser([]byte("-Infinity")).GetDouble()
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))
}

func TestParserGetLong(t *testing.T) {
	p := NewParser([]byte("9223372036854775807"))
	v, err := p.GetLong()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), v)

	v, err = NewParser([]byte("-9223372036854775808")).GetLong()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), v)
}

func TestParserGetBoolean(t *testing.T) {
	p := NewParser([]byte("  T f"))

	v, err := p.GetBoolean()
	require.NoError(t, err)
	assert.True(t, v)

	v, err = p.GetBoolean()
	require.NoError(t, err)
	assert.False(t, v)
}

func TestParserGetString(t *testing.T) {
	p := NewParser([]byte(" abcdef"))
	assert.Equal(t, " ab", p.GetString(3))
	assert.Equal(t, 3, p.Offset())

	p.Skip(1)
	assert.Equal(t, "def", p.GetString(10))
	assert.Equal(t, 7, p.Offset())
	assert.Equal(t, "", p.GetString(2))
}

func TestParserFloat(t *testing.T) {
	v, err := NewParser([]byte("0.1")).GetFloatN(3)
	require.NoError(t, err)
	assert.Equal(t, float32(0.1), v)
}
