package bytecodec

import (
	"math"
)

var ilog10 = 1 / math.Log(10)

// tenpow[i] holds 10^(i-zeropow), covering the whole float64 exponent range.
var (
	tenpow  []float64
	zeropow int
)

func init() {
	lo := int(math.Log(math.SmallestNonzeroFloat64) * ilog10)
	hi := int(math.Log(math.MaxFloat64)*ilog10) + 1
	tenpow = make([]float64, hi-lo+1)
	for i := range tenpow {
		tenpow[i] = math.Pow(10, float64(i+lo))
	}
	zeropow = -lo
}

// FormatFloat writes a float32 into buf[off:off+length].
//
// The magnitude is scaled to an integer of about nine digits, the digits
// are produced by the integer formatter, and combineReal places the decimal
// point and exponent. The result may differ from the shortest round-trip
// representation in the last digit.
func (f *Formatter) FormatFloat(val float32, buf []byte, off, length int) (int, error) {
	pos := float32(math.Abs(float64(val)))
	switch {
	case pos == 0:
		return f.FormatString("0.0", buf, off, length), nil
	case math.IsNaN(float64(val)):
		return f.FormatString("NaN", buf, off, length), nil
	case math.IsInf(float64(val), 1):
		return f.FormatString("Infinity", buf, off, length), nil
	case math.IsInf(float64(val), -1):
		return f.FormatString("-Infinity", buf, off, length), nil
	}

	power := int(math.Floor(math.Log(float64(pos)) * ilog10))
	shift := 8 - power
	var scale float32
	scale2 := float32(1)
	if shift < 30 {
		scale = float32(tenpow[shift+zeropow])
	} else {
		scale2 = float32(tenpow[30+zeropow])
		scale = float32(tenpow[shift-30+zeropow])
	}
	pos = (pos * scale) * scale2

	bits := math.Float32bits(pos)
	exp := int((bits&0x7F800000)>>23) - 127
	numb := int32(bits & 0x007FFFFF)
	if exp > -127 {
		numb |= 0x00800000
	} else {
		exp++
	}
	if s := exp - 23; s >= 0 {
		numb <<= uint(s)
	} else {
		numb >>= uint(-s)
	}

	oldAlign := f.align
	f.align = false
	ndig, _ := f.FormatInt(numb, f.tbuf1[:], 0, len(f.tbuf1))
	f.align = oldAlign

	return f.combineReal(float64(val), buf, off, length, f.tbuf1[:], ndig, shift)
}

// FormatDouble writes a float64 into buf[off:off+length] using about
// seventeen significant digits.
func (f *Formatter) FormatDouble(val float64, buf []byte, off, length int) (int, error) {
	pos := math.Abs(val)
	switch {
	case pos == 0:
		return f.FormatString("0.0", buf, off, length), nil
	case math.IsNaN(val):
		return f.FormatString("NaN", buf, off, length), nil
	case math.IsInf(val, 1):
		return f.FormatString("Infinity", buf, off, length), nil
	case math.IsInf(val, -1):
		return f.FormatString("-Infinity", buf, off, length), nil
	}

	power := int(math.Log(pos) * ilog10)
	shift := 17 - power
	var scale float64
	scale2 := 1.0
	if shift < 200 {
		scale = tenpow[shift+zeropow]
	} else {
		scale2 = tenpow[200+zeropow]
		scale = tenpow[shift-200+zeropow]
	}
	pos = (pos * scale) * scale2

	bits := math.Float64bits(pos)
	exp := int((bits&0x7FF0000000000000)>>52) - 1023
	numb := int64(bits & 0x000FFFFFFFFFFFFF)
	if exp > -1023 {
		numb |= 0x0010000000000000
	} else {
		exp++
	}
	if s := exp - 52; s >= 0 {
		numb <<= uint(s)
	} else {
		numb >>= uint(-s)
	}

	oldAlign := f.align
	f.align = false
	ndig, _ := f.FormatLong(numb, f.tbuf1[:], 0, len(f.tbuf1))
	f.align = oldAlign

	return f.combineReal(val, buf, off, length, f.tbuf1[:], ndig, shift)
}

// combineReal lays out the lmant digits in mant, which represent
// |val| * 10^shift, as either a fixed-point or an exponential number.
func (f *Formatter) combineReal(val float64, buf []byte, off, length int, mant []byte, lmant, shift int) (int, error) {
	pos := math.Abs(val)
	simple := pos >= f.simpleMin && pos <= f.simpleMax

	exp := lmant - shift - 1
	lexp := 0
	var minSize, maxSize int

	if !simple {
		oldAlign := f.align
		f.align = false
		lexp, _ = f.FormatInt(int32(exp), f.tbuf2[:], 0, len(f.tbuf2))
		f.align = oldAlign
		minSize = lexp + 2
		maxSize = lexp + lmant + 2
	} else if exp >= 0 {
		minSize = exp + 1
		// A run of leading nines that rounds up needs one more digit.
		i := 0
		for ; i < lmant && i <= exp; i++ {
			if mant[i] != '9' {
				break
			}
		}
		if i > exp && i < lmant && mant[i] >= '5' {
			minSize++
		}
		maxSize = lmant + 1
		if maxSize <= minSize {
			maxSize = minSize + 1
		}
	} else {
		minSize = 2
		maxSize = 1 - exp + lmant
	}

	if val < 0 {
		minSize++
		maxSize++
	}

	if (f.truncateOnOverflow && minSize > length) || minSize > len(buf)-off {
		return off + length, f.truncationFiller(buf, off, length)
	}

	end := off + length
	if maxSize < length && f.align {
		nal := length - maxSize
		off = f.AlignFill(buf, off, nal)
		length -= nal
	}

	if val < 0 {
		buf[off] = '-'
		off++
		length--
	}
	mantStart := off

	if simple {
		n := f.mantissa(mant, lmant, exp, true, buf, off, length)
		if n < 0 {
			n = -n
		}
		return n, nil
	}

	off = f.mantissa(mant, lmant, 0, false, buf, off, length-lexp-1)
	if off < 0 {
		// Rounding carried into a new leading digit: bump the exponent.
		off = -off
		if exp == 9 || exp == 99 {
			if off-mantStart <= 1 {
				return end, f.truncationFiller(buf, mantStart, end-mantStart)
			}
			off--
		}
		exp++
		oldAlign := f.align
		f.align = false
		lexp, _ = f.FormatInt(int32(exp), f.tbuf2[:], 0, len(f.tbuf2))
		f.align = oldAlign
	}
	buf[off] = 'E'
	off++
	copy(buf[off:], f.tbuf2[:lexp])
	return off + lexp, nil
}

// mantissa writes the digits with the decimal point after position exp
// (exp < 0 means leading "0.000") and rounds half up on the first digit
// that did not fit. A negative return value signals that rounding carried
// past the first digit, e.g. 9.99 became 10.0.
func (f *Formatter) mantissa(mant []byte, lmant, exp int, simple bool, buf []byte, off, length int) int {
	off0 := off
	pos := 0

	if exp < 0 {
		buf[off] = '0'
		length--
		off++
		if length > 0 {
			buf[off] = '.'
			off++
			length--
		}
		for cexp := exp; cexp < -1 && length > 0; cexp++ {
			buf[off] = '0'
			off++
			length--
		}
	} else {
		for exp >= 0 && pos < lmant {
			buf[off] = mant[pos]
			off++
			pos++
			length--
			exp--
		}
		for i := 0; i <= exp; i++ {
			buf[off] = '0'
			off++
			length--
		}
		if length > 0 {
			buf[off] = '.'
			length--
			off++
		}
	}

	for length > 0 && pos < lmant {
		buf[off] = mant[pos]
		off++
		length--
		pos++
	}

	if pos < lmant && mant[pos] >= '5' {
		i := off - 1
		for ; i >= off0; i-- {
			if buf[i] == '.' || buf[i] == '-' {
				continue
			}
			if buf[i] == '9' {
				buf[i] = '0'
			} else {
				buf[i]++
				break
			}
		}

		if i < off0 {
			buf[off0] = '1'
			foundDecimal := false
			for i = off0 + 1; i < off; i++ {
				if buf[i] == '.' {
					foundDecimal = true
					if simple {
						buf[i] = '0'
						i++
						if i < off {
							buf[i] = '.'
						}
					}
					break
				}
			}
			if simple && !foundDecimal && off < len(buf) {
				// 99 went to 100
				buf[off] = '0'
				off++
			}
			off = -off
		}
	}
	return off
}
