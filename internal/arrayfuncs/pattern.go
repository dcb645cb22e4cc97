package arrayfuncs

import (
	"reflect"

	"github.com/soltixdb/fitscore/internal/primitive"
)

// GenerateArray allocates an array of the given shape and fills it with the
// test pattern starting at zero.
func GenerateArray(v primitive.Variant, dims []int) any {
	x := NewInstance(v, dims)
	if x != nil {
		TestPattern(x, 0)
	}
	return x
}

// TestPattern fills every leaf of x, in row-major order, with a byte counter
// that starts at start and wraps at 256. Numeric leaves receive the counter
// as a signed byte, booleans its low bit. It returns the next counter value.
func TestPattern(x any, start byte) byte {
	switch s := x.(type) {
	case []byte:
		for i := range s {
			s[i] = start
			start++
		}
		return start
	case []int16:
		for i := range s {
			s[i] = int16(int8(start))
			start++
		}
		return start
	case []uint16:
		for i := range s {
			s[i] = uint16(start)
			start++
		}
		return start
	case []int32:
		for i := range s {
			s[i] = int32(int8(start))
			start++
		}
		return start
	case []int64:
		for i := range s {
			s[i] = int64(int8(start))
			start++
		}
		return start
	case []float32:
		for i := range s {
			s[i] = float32(int8(start))
			start++
		}
		return start
	case []float64:
		for i := range s {
			s[i] = float64(int8(start))
			start++
		}
		return start
	case []bool:
		for i := range s {
			s[i] = start&1 == 1
			start++
		}
		return start
	}

	rv := reflect.ValueOf(x)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return start
	}
	for i := 0; i < rv.Len(); i++ {
		e := rv.Index(i)
		if (e.Kind() == reflect.Slice || e.Kind() == reflect.Interface) && e.IsNil() {
			continue
		}
		start = TestPattern(e.Interface(), start)
	}
	return start
}
