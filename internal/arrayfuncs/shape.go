// Package arrayfuncs inspects, reshapes, clones and converts array values.
//
// An array value is a Go slice whose leaves are one of the primitive
// variants, nested to any depth ([]int32, [][]float64, [][][]bool), or an
// []any holding such values. A nil sub-slice stands for a dimension that has
// not been allocated yet.
//
// Everything here is best effort: malformed input yields a nil or empty
// result instead of a panic.
package arrayfuncs

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/soltixdb/fitscore/internal/primitive"
)

// Unallocated marks a dimension whose size could not be discovered, either
// because an earlier dimension had zero length or its first sub-array is nil.
const Unallocated = -1

var (
	// ErrNotAnArray is returned when a non-slice value reaches an operation
	// that only works on arrays.
	ErrNotAnArray = errors.New("not an array")

	// ErrShapeMismatch is returned when an element count does not match the
	// requested or discovered shape.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// sliceDepth counts the leading slice levels of t and returns the leaf type.
func sliceDepth(t reflect.Type) (int, reflect.Type) {
	depth := 0
	for t != nil && t.Kind() == reflect.Slice {
		depth++
		t = t.Elem()
	}
	return depth, t
}

// nestedType builds the type of a depth-level nested slice of v.
func nestedType(v primitive.Variant, depth int) reflect.Type {
	t := v.ElemType()
	for i := 0; i < depth; i++ {
		t = reflect.SliceOf(t)
	}
	return t
}

// VariantOf returns the leaf variant of an array value. The second result is
// false for nil, for non-slices and for slices whose leaves are not one of
// the eight primitive kinds ([]any included).
func VariantOf(x any) (primitive.Variant, bool) {
	if x == nil {
		return primitive.Invalid, false
	}
	depth, leaf := sliceDepth(reflect.TypeOf(x))
	if depth == 0 {
		return primitive.Invalid, false
	}
	v := primitive.OfElemType(leaf)
	return v, v != primitive.Invalid
}

// Shape returns the size of every dimension of x. Discovery descends through
// element 0 of each level and stops at a zero-length level or a nil first
// element; the remaining dimensions are left at Unallocated. Shape returns
// nil for a nil value and an empty shape for a non-slice.
func Shape(x any) []int {
	if x == nil {
		return nil
	}
	rv := reflect.ValueOf(x)
	ndim, _ := sliceDepth(rv.Type())

	dims := make([]int, ndim)
	for i := range dims {
		dims[i] = Unallocated
	}

	for i := 0; i < ndim; i++ {
		dims[i] = rv.Len()
		if dims[i] == 0 {
			return dims
		}
		if i != ndim-1 {
			rv = rv.Index(0)
			if rv.IsNil() {
				return dims
			}
		}
	}
	return dims
}

// BaseArray returns the first one-dimensional slice reached by descending
// through element 0, or nil if some level is empty.
func BaseArray(x any) any {
	rv := reflect.ValueOf(x)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil
	}
	for rv.Type().Elem().Kind() == reflect.Slice {
		if rv.Len() == 0 {
			return nil
		}
		rv = rv.Index(0)
	}
	return rv.Interface()
}

// BaseLength returns the byte width of the leaf variant of x, 0 for nil and
// -1 for values that are not primitive arrays.
func BaseLength(x any) int {
	if x == nil {
		return 0
	}
	v, ok := VariantOf(x)
	if !ok {
		return -1
	}
	return v.Size()
}

// NElements counts the leaf elements of x. A non-slice counts as one.
func NElements(x any) int {
	rv := reflect.ValueOf(x)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return 1
	}
	if rv.Type().Elem().Kind() != reflect.Slice {
		return rv.Len()
	}
	count := 0
	for i := 0; i < rv.Len(); i++ {
		count += NElements(rv.Index(i).Interface())
	}
	return count
}

// ComputeSize returns the number of bytes the primitive content of x
// occupies once encoded. Strings count their length; unknown leaves count
// as zero.
func ComputeSize(x any) int {
	if x == nil {
		return 0
	}
	if v := primitive.SliceVariant(x); v != primitive.Invalid {
		return primitive.SliceLen(x) * v.Size()
	}
	if v := primitive.ScalarVariant(x); v != primitive.Invalid {
		return v.Size()
	}
	if s, ok := x.(string); ok {
		return len(s)
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice {
		return 0
	}
	switch rv.Type().Elem().Kind() {
	case reflect.Slice, reflect.Interface, reflect.String:
		size := 0
		for i := 0; i < rv.Len(); i++ {
			size += ComputeSize(rv.Index(i).Interface())
		}
		return size
	default:
		return 0
	}
}

// NewInstance allocates a nested array of variant v with the given
// dimensions. Trailing zero dimensions yield empty, non-nil sub-slices.
func NewInstance(v primitive.Variant, dims []int) any {
	if !v.Valid() || len(dims) == 0 {
		return nil
	}
	for _, d := range dims {
		if d < 0 {
			return nil
		}
	}
	if len(dims) == 1 {
		return primitive.NewSlice(v, dims[0])
	}
	return makeNested(nestedType(v, len(dims)), dims).Interface()
}

func makeNested(t reflect.Type, dims []int) reflect.Value {
	out := reflect.MakeSlice(t, dims[0], dims[0])
	if len(dims) > 1 {
		for i := 0; i < dims[0]; i++ {
			out.Index(i).Set(makeNested(t.Elem(), dims[1:]))
		}
	}
	return out
}

// Description renders x as its leaf type followed by its shape, for example
// "int[3][4]". A nil value is described as "NULL".
func Description(x any) string {
	if x == nil {
		return "NULL"
	}

	var desc strings.Builder
	if v, ok := VariantOf(x); ok {
		desc.WriteString(v.String())
	} else {
		_, leaf := sliceDepth(reflect.TypeOf(x))
		desc.WriteString(leaf.String())
	}

	for _, d := range Shape(x) {
		desc.WriteByte('[')
		desc.WriteString(strconv.Itoa(d))
		desc.WriteByte(']')
	}
	return desc.String()
}
