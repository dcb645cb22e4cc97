package arrayio

import (
	"errors"
	"fmt"
	"reflect"
)

// readArray walks x depth first and fills every primitive leaf. Once the
// source is exhausted after some bytes were read, the byte count is
// returned without error.
func readArray(in ArrayDataInput, x any) (int64, error) {
	var total int64
	err := readLeaves(in, x, &total)
	if errors.Is(err, ErrEndOfStream) && total > 0 {
		return total, nil
	}
	return total, err
}

func readLeaves(in ArrayDataInput, x any, total *int64) error {
	var (
		n    int
		size int
		err  error
		want int
	)
	switch b := x.(type) {
	case nil:
		return nil
	case []byte:
		want, size = len(b), 1
		n, err = in.ReadBytes(b, 0, len(b))
	case []bool:
		want, size = len(b), 1
		n, err = in.ReadBooleans(b, 0, len(b))
	case []int16:
		want, size = len(b), 2
		n, err = in.ReadShorts(b, 0, len(b))
	case []uint16:
		want, size = len(b), 2
		n, err = in.ReadChars(b, 0, len(b))
	case []int32:
		want, size = len(b), 4
		n, err = in.ReadInts(b, 0, len(b))
	case []int64:
		want, size = len(b), 8
		n, err = in.ReadLongs(b, 0, len(b))
	case []float32:
		want, size = len(b), 4
		n, err = in.ReadFloats(b, 0, len(b))
	case []float64:
		want, size = len(b), 8
		n, err = in.ReadDoubles(b, 0, len(b))
	case []any:
		for _, e := range b {
			if err := readLeaves(in, e, total); err != nil {
				return err
			}
		}
		return nil
	default:
		return eachSub(x, func(sub any) error { return readLeaves(in, sub, total) })
	}

	*total += int64(n * size)
	if err != nil {
		return err
	}
	if n < want {
		return ErrEndOfStream
	}
	return nil
}

// writeArray walks x depth first and encodes every primitive leaf. String
// slices are written as their raw bytes.
func writeArray(out ArrayDataOutput, x any) (int64, error) {
	var total int64
	err := writeLeaves(out, x, &total)
	return total, err
}

func writeLeaves(out ArrayDataOutput, x any, total *int64) error {
	var (
		size int
		n    int
		err  error
	)
	switch b := x.(type) {
	case nil:
		return nil
	case []byte:
		n, size = len(b), 1
		err = out.WriteBytes(b, 0, len(b))
	case []bool:
		n, size = len(b), 1
		err = out.WriteBooleans(b, 0, len(b))
	case []int16:
		n, size = len(b), 2
		err = out.WriteShorts(b, 0, len(b))
	case []uint16:
		n, size = len(b), 2
		err = out.WriteChars(b, 0, len(b))
	case []int32:
		n, size = len(b), 4
		err = out.WriteInts(b, 0, len(b))
	case []int64:
		n, size = len(b), 8
		err = out.WriteLongs(b, 0, len(b))
	case []float32:
		n, size = len(b), 4
		err = out.WriteFloats(b, 0, len(b))
	case []float64:
		n, size = len(b), 8
		err = out.WriteDoubles(b, 0, len(b))
	case []string:
		for _, s := range b {
			w, err := out.WriteString(s)
			*total += int64(w)
			if err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, e := range b {
			if err := writeLeaves(out, e, total); err != nil {
				return err
			}
		}
		return nil
	default:
		return eachSub(x, func(sub any) error { return writeLeaves(out, sub, total) })
	}

	if err != nil {
		return err
	}
	*total += int64(n * size)
	return nil
}

// eachSub calls fn for every element of a slice of slices.
func eachSub(x any, fn func(any) error) error {
	v := reflect.ValueOf(x)
	if v.Kind() != reflect.Slice || v.Type().Elem().Kind() != reflect.Slice {
		return fmt.Errorf("%T: %w", x, ErrInvalidArrayArgument)
	}
	for i := 0; i < v.Len(); i++ {
		sub := v.Index(i)
		if sub.IsNil() {
			continue
		}
		if err := fn(sub.Interface()); err != nil {
			return err
		}
	}
	return nil
}
