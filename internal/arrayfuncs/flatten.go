package arrayfuncs

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/soltixdb/fitscore/internal/primitive"
)

// Flatten copies a rectangular nested array into a one-dimensional slice in
// row-major order. One-dimensional input is returned as is.
func Flatten(x any) (any, error) {
	v, ok := VariantOf(x)
	if !ok {
		return nil, fmt.Errorf("flatten %T: %w", x, ErrNotAnArray)
	}

	dims := Shape(x)
	if len(dims) <= 1 {
		return x, nil
	}

	if slices.Contains(dims, 0) {
		if n := NElements(x); n != 0 {
			return nil, fmt.Errorf("flatten %s: ragged array has %d elements under an empty dimension: %w",
				Description(x), n, ErrShapeMismatch)
		}
		return primitive.NewSlice(v, 0), nil
	}

	size := 1
	for _, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("flatten %s: %w", Description(x), ErrShapeMismatch)
		}
		size *= d
	}
	if n := NElements(x); n != size {
		return nil, fmt.Errorf("flatten %s: ragged array has %d elements, shape implies %d: %w",
			Description(x), n, size, ErrShapeMismatch)
	}

	flat := primitive.NewSlice(v, size)
	if _, err := doFlatten(reflect.ValueOf(x), flat, 0); err != nil {
		return nil, err
	}
	return flat, nil
}

func doFlatten(input reflect.Value, output any, offset int) (int, error) {
	if input.Kind() != reflect.Slice {
		return 0, fmt.Errorf("flatten element %s: %w", input.Type(), ErrNotAnArray)
	}

	size := input.Len()
	if input.Type().Elem().Kind() != reflect.Slice {
		return primitive.CopySlice(output, offset, input.Interface(), 0, size)
	}

	total := 0
	for i := 0; i < size; i++ {
		n, err := doFlatten(input.Index(i), output, offset+total)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// Curl reshapes a one-dimensional primitive slice into a nested array with
// the given dimensions. The product of dims must equal len(flat).
func Curl(flat any, dims []int) (any, error) {
	v := primitive.SliceVariant(flat)
	if v == primitive.Invalid {
		return nil, fmt.Errorf("curl %T: %w", flat, ErrNotAnArray)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("curl: empty shape: %w", ErrShapeMismatch)
	}

	size := primitive.SliceLen(flat)
	test := 1
	for _, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("curl: negative dimension %d: %w", d, ErrShapeMismatch)
		}
		test *= d
	}
	if test != size {
		return nil, fmt.Errorf("curl: %d elements do not fit shape %v: %w", size, dims, ErrShapeMismatch)
	}

	out := NewInstance(v, dims)
	if _, err := doCurl(flat, reflect.ValueOf(out), dims, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func doCurl(input any, output reflect.Value, dims []int, offset int) (int, error) {
	if len(dims) == 1 {
		return primitive.CopySlice(output.Interface(), 0, input, offset, dims[0])
	}

	total := 0
	for i := 0; i < dims[0]; i++ {
		n, err := doCurl(input, output.Index(i), dims[1:], offset+total)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
