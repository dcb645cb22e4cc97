package bytecodec

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/fitscore/internal/config"
)

func TestFormatInt(t *testing.T) {
	tests := []struct {
		name  string
		val   int32
		width int
		align bool
		want  string
	}{
		{"positive", 123, 10, false, "123"},
		{"negative", -45, 10, false, "-45"},
		{"zero", 0, 4, false, "0"},
		{"aligned", 123, 10, true, "       123"},
		{"exact width", 99999, 5, false, "99999"},
		{"max", math.MaxInt32, 10, false, "2147483647"},
		{"min", math.MinInt32, 11, false, "-2147483648"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter()
			f.SetAlign(tt.align)
			buf := make([]byte, tt.width)
			next, err := f.FormatInt(tt.val, buf, 0, tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(buf[:next]))
		})
	}
}

func TestFormatIntTruncation(t *testing.T) {
	f := NewFormatter()
	buf := make([]byte, 5)

	next, err := f.FormatInt(12345, buf, 1, 3)
	assert.ErrorIs(t, err, ErrTruncation)
	assert.Equal(t, 4, next)
	assert.Equal(t, []byte{0, '*', '*', '*', 0}, buf)

	f.SetTruncationThrow(false)
	f.SetTruncationFill('#')
	next, err = f.FormatInt(math.MinInt32, buf, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, next)
	assert.Equal(t, "#####", string(buf))
}

func TestFormatIntWithoutTruncation(t *testing.T) {
	f := NewFormatter()
	f.SetTruncateOnOverflow(false)
	buf := make([]byte, 8)

	next, err := f.FormatInt(123456, buf, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, next)
	assert.Equal(t, "123456", string(buf[:next]))
}

func TestFormatLong(t *testing.T) {
	f := NewFormatter()
	buf := make([]byte, 24)

	next, err := f.FormatLong(1234567890123, buf, 0, 24)
	require.NoError(t, err)
	assert.Equal(t, "1234567890123", string(buf[:next]))

	next, err = f.FormatLong(math.MinInt64, buf, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, "-9223372036854775808", string(buf[:next]))

	next, err = f.FormatLong(-1000000000, buf, 2, 12)
	require.NoError(t, err)
	assert.Equal(t, "-1000000000", string(buf[2:next]))

	_, err = f.FormatLong(math.MaxInt64, buf, 0, 18)
	assert.ErrorIs(t, err, ErrTruncation)
}

func TestFormatBool(t *testing.T) {
	f := NewFormatter()
	buf := make([]byte, 3)

	assert.Equal(t, 1, f.FormatBool(true, buf, 0, 3))
	assert.Equal(t, byte('T'), buf[0])

	f.SetAlign(true)
	assert.Equal(t, 3, f.FormatBool(false, buf, 0, 3))
	assert.Equal(t, "  F", string(buf))

	assert.Equal(t, 0, f.FormatBool(true, buf, 0, 0))
}

func TestFormatString(t *testing.T) {
	f := NewFormatter()
	buf := make([]byte, 10)

	next := f.FormatString("hello", buf, 0, 3)
	assert.Equal(t, 3, next)
	assert.Equal(t, "hel", string(buf[:next]))

	f.SetTruncateOnOverflow(false)
	next = f.FormatString("hello", buf, 0, 3)
	assert.Equal(t, 5, next)
	assert.Equal(t, "hello", string(buf[:next]))

	next = f.FormatString("toolongforbuffer", buf, 4, 20)
	assert.Equal(t, 10, next)
	assert.Equal(t, "toolon", string(buf[4:]))

	f.SetAlign(true)
	next = f.FormatString("ab", buf, 0, 4)
	assert.Equal(t, 4, next)
	assert.Equal(t, "  ab", string(buf[:4]))

	next = f.FormatBytes(nil, buf, 0, 4)
	assert.Equal(t, 4, next)
	assert.Equal(t, "    ", string(buf[:4]))
}

func TestFormatDoubleLayout(t *testing.T) {
	tests := []struct {
		name  string
		val   float64
		width int
		want  string
	}{
		{"zero", 0, 5, "0.0"},
		{"one", 1, 20, "1." + strings.Repeat("0", 17)},
		{"minus one", -1, 5, "-1.00"},
		{"half", 0.5, 6, "0.5000"},
		{"nines round to next decade", 9.96875, 3, "10."},
		{"nines without decimal room", 9.96875, 2, "10"},
		{"exponent rounding", 9.96875e10, 5, "1.E11"},
		{"exponent gains a digit", 9.96875e9, 4, "1E10"},
		{"nan", math.NaN(), 5, "NaN"},
		{"positive infinity", math.Inf(1), 10, "Infinity"},
		{"negative infinity", math.Inf(-1), 10, "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter()
			buf := make([]byte, tt.width)
			next, err := f.FormatDouble(tt.val, buf, 0, tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(buf[:next]))
		})
	}
}

func TestFormatDoubleTruncation(t *testing.T) {
	f := NewFormatter()
	buf := make([]byte, 3)

	next, err := f.FormatDouble(123456.0, buf, 0, 3)
	assert.ErrorIs(t, err, ErrTruncation)
	assert.Equal(t, 3, next)
	assert.Equal(t, "***", string(buf))

	buf = make([]byte, 1)
	_, err = f.FormatDouble(9.96875, buf, 0, 1)
	assert.ErrorIs(t, err, ErrTruncation)
}

func TestFormatDoubleAlign(t *testing.T) {
	f := NewFormatter()
	f.SetAlign(true)
	buf := bytes.Repeat([]byte{'x'}, 25)

	next, err := f.FormatDouble(0.5, buf, 0, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, next)
	assert.Equal(t, strings.Repeat(" ", 6)+"0.5"+strings.Repeat("0", 16), string(buf))
}

func TestFormatDoubleExponentCarryStaysInField(t *testing.T) {
	tests := []struct {
		name  string
		val   float64
		width int
		want  string
	}{
		{"negative exponent", 9.9999999999e-13, 8, "1.00E-12"},
		{"negative value", -9.9999999999e-13, 9, "-1.00E-12"},
		{"exponent rounding", 9.96875e10, 5, "1.E11"},
		{"exponent gains a digit", 9.96875e9, 4, "1E10"},
	}

	for _, tt := range tests {
		for _, align := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s align=%t", tt.name, align), func(t *testing.T) {
				f := NewFormatter()
				f.SetAlign(align)
				buf := make([]byte, tt.width)
				next, err := f.FormatDouble(tt.val, buf, 0, tt.width)
				require.NoError(t, err)
				assert.Equal(t, tt.width, next)
				assert.Equal(t, tt.want, string(buf))
			})
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	values := []float64{
		0, 1, -1, 1e-300, 1e300, 99.99999999999999,
		123.456, -0.000123, 6.02214076e23, 2.5e-7, 1e6, 1e-3,
		math.NaN(), math.Inf(1), math.Inf(-1),
	}

	f := NewFormatter()
	for _, x := range values {
		buf := make([]byte, 25)
		next, err := f.FormatDouble(x, buf, 0, len(buf))
		require.NoError(t, err, "format %g", x)

		p := NewParser(buf[:next])
		got, err := p.GetDouble()
		require.NoError(t, err, "parse %q", buf[:next])
		assert.Equal(t, next, p.NumberLength())

		switch {
		case math.IsNaN(x):
			assert.True(t, math.IsNaN(got))
		case math.IsInf(x, 0) || x == 0:
			assert.Equal(t, x, got)
		default:
			assert.InEpsilon(t, x, got, 1e-14, "value %q", buf[:next])
		}
	}
}

func TestFormatFloatRoundTrip(t *testing.T) {
	values := []float32{3.14159, -2.5e-10, 1.0e20, 42, 0.001}

	f := NewFormatter()
	for _, x := range values {
		buf := make([]byte, 16)
		next, err := f.FormatFloat(x, buf, 0, len(buf))
		require.NoError(t, err)

		p := NewParser(buf[:next])
		got, err := p.GetFloat()
		require.NoError(t, err, "parse %q", buf[:next])
		assert.InEpsilon(t, x, got, 1e-6, "value %q", buf[:next])
	}
}

func TestFormatIntegersParseBack(t *testing.T) {
	f := NewFormatter()
	for _, x := range []int32{0, 7, -7, 1000000, math.MaxInt32, math.MinInt32 + 1} {
		buf := make([]byte, 11)
		next, err := f.FormatInt(x, buf, 0, len(buf))
		require.NoError(t, err)

		got, err := NewParser(buf[:next]).GetInt()
		require.NoError(t, err)
		assert.Equal(t, x, got)
	}
}

func TestNewFormatterFromConfig(t *testing.T) {
	cfg := config.DefaultConfig().Formatter
	cfg.TruncationFill = "#"
	cfg.TruncationThrow = false
	cfg.Align = true

	f := NewFormatterFromConfig(cfg)
	buf := make([]byte, 4)
	next, err := f.FormatInt(123456, buf, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
	assert.Equal(t, "####", string(buf))

	next, err = f.FormatInt(12, buf, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, "  12", string(buf[:next]))
}
