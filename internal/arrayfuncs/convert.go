package arrayfuncs

import (
	"math"
	"reflect"

	"github.com/soltixdb/fitscore/internal/primitive"
)

// MimicArray allocates an array with the same shape as x and leaves of
// variant v. Only the outer dimension of each level is sized up front; each
// sub-array is filled by mimicking the matching source sub-array, so ragged
// input stays ragged. It returns nil if x is not a slice.
func MimicArray(x any, v primitive.Variant) any {
	rv := reflect.ValueOf(x)
	if !rv.IsValid() || rv.Kind() != reflect.Slice || !v.Valid() {
		return nil
	}

	depth, _ := sliceDepth(rv.Type())
	n := rv.Len()

	if depth > 1 {
		out := reflect.MakeSlice(nestedType(v, depth), n, n)
		for i := 0; i < n; i++ {
			if m := MimicArray(rv.Index(i).Interface(), v); m != nil {
				out.Index(i).Set(reflect.ValueOf(m))
			}
		}
		return out.Interface()
	}

	if rv.Type().Elem().Kind() == reflect.Interface {
		out := make([]any, n)
		for i := 0; i < n; i++ {
			e := rv.Index(i)
			if e.IsNil() {
				continue
			}
			out[i] = MimicArray(e.Interface(), v)
		}
		return out
	}

	return primitive.NewSlice(v, n)
}

// ConvertArray returns a copy of x with every leaf converted to variant v.
// Conversions follow the usual numeric cast rules: float to integer
// truncates toward zero and saturates, integer narrowing keeps the low bits.
// Booleans only convert to booleans; any other pairing involving a boolean
// leaves the target zeroed.
func ConvertArray(x any, v primitive.Variant) any {
	mimic := MimicArray(x, v)
	if mimic == nil {
		return nil
	}
	CopyInto(x, mimic)
	return mimic
}

// CopyInto copies and converts the leaves of src into dst, which must have
// the same shape (usually produced by MimicArray).
func CopyInto(src, dst any) {
	if primitive.SliceVariant(src) != primitive.Invalid {
		convertLeaf(src, dst)
		return
	}

	sv := reflect.ValueOf(src)
	dv := reflect.ValueOf(dst)
	if !sv.IsValid() || !dv.IsValid() || sv.Kind() != reflect.Slice || dv.Kind() != reflect.Slice {
		return
	}
	switch sv.Type().Elem().Kind() {
	case reflect.Slice, reflect.Interface:
	default:
		return
	}

	n := min(sv.Len(), dv.Len())
	for i := 0; i < n; i++ {
		se, de := sv.Index(i), dv.Index(i)
		if se.IsNil() || de.IsNil() {
			continue
		}
		CopyInto(se.Interface(), de.Interface())
	}
}

func convertLeaf(src, dst any) {
	switch s := src.(type) {
	case []byte:
		fromIntegers(s, dst)
	case []int16:
		fromIntegers(s, dst)
	case []uint16:
		fromIntegers(s, dst)
	case []int32:
		fromIntegers(s, dst)
	case []int64:
		fromIntegers(s, dst)
	case []float32:
		fromFloats(s, dst)
	case []float64:
		fromFloats(s, dst)
	case []bool:
		if d, ok := dst.([]bool); ok {
			copy(d, s)
		}
	}
}

type integer interface {
	~uint8 | ~int16 | ~uint16 | ~int32 | ~int64
}

type floating interface {
	~float32 | ~float64
}

func fromIntegers[S integer](src []S, dst any) {
	switch d := dst.(type) {
	case []byte:
		for i := range min(len(src), len(d)) {
			d[i] = byte(src[i])
		}
	case []int16:
		for i := range min(len(src), len(d)) {
			d[i] = int16(src[i])
		}
	case []uint16:
		for i := range min(len(src), len(d)) {
			d[i] = uint16(src[i])
		}
	case []int32:
		for i := range min(len(src), len(d)) {
			d[i] = int32(src[i])
		}
	case []int64:
		for i := range min(len(src), len(d)) {
			d[i] = int64(src[i])
		}
	case []float32:
		for i := range min(len(src), len(d)) {
			d[i] = float32(src[i])
		}
	case []float64:
		for i := range min(len(src), len(d)) {
			d[i] = float64(src[i])
		}
	}
}

func fromFloats[S floating](src []S, dst any) {
	switch d := dst.(type) {
	case []byte:
		for i := range min(len(src), len(d)) {
			d[i] = byte(FloatToInt32(float64(src[i])))
		}
	case []int16:
		for i := range min(len(src), len(d)) {
			d[i] = int16(FloatToInt32(float64(src[i])))
		}
	case []uint16:
		for i := range min(len(src), len(d)) {
			d[i] = uint16(FloatToInt32(float64(src[i])))
		}
	case []int32:
		for i := range min(len(src), len(d)) {
			d[i] = FloatToInt32(float64(src[i]))
		}
	case []int64:
		for i := range min(len(src), len(d)) {
			d[i] = FloatToInt64(float64(src[i]))
		}
	case []float32:
		for i := range min(len(src), len(d)) {
			d[i] = float32(src[i])
		}
	case []float64:
		for i := range min(len(src), len(d)) {
			d[i] = float64(src[i])
		}
	}
}

// FloatToInt32 truncates f toward zero, saturating at the int32 range and
// mapping NaN to zero.
func FloatToInt32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(f)
	}
}

// FloatToInt64 truncates f toward zero, saturating at the int64 range and
// mapping NaN to zero.
func FloatToInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}
