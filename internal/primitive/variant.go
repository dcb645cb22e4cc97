package primitive

import (
	"fmt"
	"reflect"
)

// Variant identifies one of the eight fixed-width element kinds that every
// array value in this module is built from.
type Variant uint8

const (
	Invalid Variant = iota
	Byte
	Short
	Char
	Int
	Long
	Float
	Double
	Boolean
)

// All lists the valid variants in declaration order.
var All = []Variant{Byte, Short, Char, Int, Long, Float, Double, Boolean}

var variantInfo = [...]struct {
	size int
	code byte
	name string
	typ  reflect.Type
}{
	Invalid: {0, '?', "invalid", nil},
	Byte:    {1, 'B', "byte", reflect.TypeOf(byte(0))},
	Short:   {2, 'S', "short", reflect.TypeOf(int16(0))},
	Char:    {2, 'C', "char", reflect.TypeOf(uint16(0))},
	Int:     {4, 'I', "int", reflect.TypeOf(int32(0))},
	Long:    {8, 'J', "long", reflect.TypeOf(int64(0))},
	Float:   {4, 'F', "float", reflect.TypeOf(float32(0))},
	Double:  {8, 'D', "double", reflect.TypeOf(float64(0))},
	Boolean: {1, 'Z', "boolean", reflect.TypeOf(false)},
}

// Valid reports whether v is one of the eight element kinds.
func (v Variant) Valid() bool {
	return v >= Byte && v <= Boolean
}

// Size returns the encoded width of one element in bytes.
func (v Variant) Size() int {
	if !v.Valid() {
		return 0
	}
	return variantInfo[v].size
}

// Code returns the single character type code (B, S, C, I, J, F, D, Z).
func (v Variant) Code() byte {
	if !v.Valid() {
		return '?'
	}
	return variantInfo[v].code
}

// String returns the display name of the variant.
func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
	return variantInfo[v].name
}

// ElemType returns the Go element type backing the variant.
func (v Variant) ElemType() reflect.Type {
	if !v.Valid() {
		return nil
	}
	return variantInfo[v].typ
}

// FromCode maps a type code back to its variant.
func FromCode(c byte) (Variant, bool) {
	for _, v := range All {
		if variantInfo[v].code == c {
			return v, true
		}
	}
	return Invalid, false
}

// FromName maps a display name (or one of the Go type aliases accepted by the
// CLI, such as "int32" or "float64") to a variant.
func FromName(name string) (Variant, bool) {
	switch name {
	case "byte", "uint8", "B":
		return Byte, true
	case "short", "int16", "S":
		return Short, true
	case "char", "uint16", "C":
		return Char, true
	case "int", "int32", "I":
		return Int, true
	case "long", "int64", "J":
		return Long, true
	case "float", "float32", "F":
		return Float, true
	case "double", "float64", "D":
		return Double, true
	case "boolean", "bool", "Z":
		return Boolean, true
	default:
		return Invalid, false
	}
}

// OfElemType returns the variant whose Go element type is t.
func OfElemType(t reflect.Type) Variant {
	if t == nil {
		return Invalid
	}
	switch t.Kind() {
	case reflect.Uint8:
		return Byte
	case reflect.Int16:
		return Short
	case reflect.Uint16:
		return Char
	case reflect.Int32:
		return Int
	case reflect.Int64:
		return Long
	case reflect.Float32:
		return Float
	case reflect.Float64:
		return Double
	case reflect.Bool:
		return Boolean
	default:
		return Invalid
	}
}

// SliceVariant returns the variant of a one-dimensional primitive slice, or
// Invalid if x is anything else.
func SliceVariant(x any) Variant {
	switch x.(type) {
	case []byte:
		return Byte
	case []int16:
		return Short
	case []uint16:
		return Char
	case []int32:
		return Int
	case []int64:
		return Long
	case []float32:
		return Float
	case []float64:
		return Double
	case []bool:
		return Boolean
	default:
		return Invalid
	}
}

// ScalarVariant returns the variant of a single primitive value.
func ScalarVariant(x any) Variant {
	switch x.(type) {
	case byte:
		return Byte
	case int16:
		return Short
	case uint16:
		return Char
	case int32:
		return Int
	case int64:
		return Long
	case float32:
		return Float
	case float64:
		return Double
	case bool:
		return Boolean
	default:
		return Invalid
	}
}

// NewSlice allocates a zeroed one-dimensional slice of n elements.
func NewSlice(v Variant, n int) any {
	switch v {
	case Byte:
		return make([]byte, n)
	case Short:
		return make([]int16, n)
	case Char:
		return make([]uint16, n)
	case Int:
		return make([]int32, n)
	case Long:
		return make([]int64, n)
	case Float:
		return make([]float32, n)
	case Double:
		return make([]float64, n)
	case Boolean:
		return make([]bool, n)
	default:
		return nil
	}
}

// SliceLen returns the length of a primitive slice, or -1 if x is not one.
func SliceLen(x any) int {
	switch s := x.(type) {
	case []byte:
		return len(s)
	case []int16:
		return len(s)
	case []uint16:
		return len(s)
	case []int32:
		return len(s)
	case []int64:
		return len(s)
	case []float32:
		return len(s)
	case []float64:
		return len(s)
	case []bool:
		return len(s)
	default:
		return -1
	}
}

// CopySlice copies n elements from src[srcOff:] to dst[dstOff:]. Both slices
// must share the same variant; the number of elements copied is returned.
func CopySlice(dst any, dstOff int, src any, srcOff int, n int) (int, error) {
	switch d := dst.(type) {
	case []byte:
		if s, ok := src.([]byte); ok {
			return copy(d[dstOff:dstOff+n], s[srcOff:srcOff+n]), nil
		}
	case []int16:
		if s, ok := src.([]int16); ok {
			return copy(d[dstOff:dstOff+n], s[srcOff:srcOff+n]), nil
		}
	case []uint16:
		if s, ok := src.([]uint16); ok {
			return copy(d[dstOff:dstOff+n], s[srcOff:srcOff+n]), nil
		}
	case []int32:
		if s, ok := src.([]int32); ok {
			return copy(d[dstOff:dstOff+n], s[srcOff:srcOff+n]), nil
		}
	case []int64:
		if s, ok := src.([]int64); ok {
			return copy(d[dstOff:dstOff+n], s[srcOff:srcOff+n]), nil
		}
	case []float32:
		if s, ok := src.([]float32); ok {
			return copy(d[dstOff:dstOff+n], s[srcOff:srcOff+n]), nil
		}
	case []float64:
		if s, ok := src.([]float64); ok {
			return copy(d[dstOff:dstOff+n], s[srcOff:srcOff+n]), nil
		}
	case []bool:
		if s, ok := src.([]bool); ok {
			return copy(d[dstOff:dstOff+n], s[srcOff:srcOff+n]), nil
		}
	}
	return 0, fmt.Errorf("cannot copy %T into %T", src, dst)
}
