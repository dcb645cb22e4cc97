package arrayfuncs

import (
	"reflect"
	"slices"
)

// Cloner is implemented by non-array values that DeepClone can copy.
type Cloner interface {
	Clone() any
}

// DeepClone returns an independent copy of x. Primitive slices are copied,
// nested arrays are rebuilt level by level, and []any elements are cloned
// recursively. A non-slice value is cloned only if it implements Cloner;
// otherwise DeepClone returns nil.
func DeepClone(x any) any {
	if x == nil {
		return nil
	}

	switch s := x.(type) {
	case []byte:
		return slices.Clone(s)
	case []int16:
		return slices.Clone(s)
	case []uint16:
		return slices.Clone(s)
	case []int32:
		return slices.Clone(s)
	case []int64:
		return slices.Clone(s)
	case []float32:
		return slices.Clone(s)
	case []float64:
		return slices.Clone(s)
	case []bool:
		return slices.Clone(s)
	case []string:
		return slices.Clone(s)
	case Cloner:
		return s.Clone()
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	if rv.IsNil() {
		return x
	}

	n := rv.Len()
	out := reflect.MakeSlice(rv.Type(), n, n)
	switch rv.Type().Elem().Kind() {
	case reflect.Slice, reflect.Interface:
		for i := 0; i < n; i++ {
			e := rv.Index(i)
			if e.IsNil() {
				continue
			}
			if c := DeepClone(e.Interface()); c != nil {
				out.Index(i).Set(reflect.ValueOf(c))
			}
		}
	default:
		reflect.Copy(out, rv)
	}
	return out.Interface()
}

// CopyArray copies the content of original into dst when both have the same
// type and, for nested arrays, the same outer lengths. Mismatched input is
// ignored.
func CopyArray(original, dst any) {
	ov := reflect.ValueOf(original)
	dv := reflect.ValueOf(dst)
	if !ov.IsValid() || !dv.IsValid() || ov.Type() != dv.Type() || ov.Kind() != reflect.Slice {
		return
	}

	if ov.Type().Elem().Kind() == reflect.Slice {
		if ov.Len() != dv.Len() {
			return
		}
		for i := 0; i < ov.Len(); i++ {
			CopyArray(ov.Index(i).Interface(), dv.Index(i).Interface())
		}
		return
	}
	reflect.Copy(dv, ov)
}
