package arrayio

import (
	"encoding/binary"
	"math"
)

// element is the set of Go element types carried on the wire.
type element interface {
	uint8 | bool | int16 | uint16 | int32 | int64 | float32 | float64
}

func sizeOf[T element]() int {
	var z T
	switch any(z).(type) {
	case uint8, bool:
		return 1
	case int16, uint16:
		return 2
	case int32, float32:
		return 4
	default:
		return 8
	}
}

// source exposes buffered input without an intermediate copy.
type source interface {
	// fill returns up to want readable bytes, reading from the backing
	// resource if needed. A slice shorter than want means the resource
	// is exhausted or want exceeds the buffer.
	fill(want int) ([]byte, error)
	advance(n int)
}

// sink exposes buffered output space without an intermediate copy.
type sink interface {
	// space returns writable room for up to want bytes and at least
	// min(want, 8).
	space(want int) ([]byte, error)
	commit(p []byte) error
}

func decode[T element](dst []T, src []byte) {
	be := binary.BigEndian
	switch d := any(dst).(type) {
	case []uint8:
		copy(d, src)
	case []bool:
		for i := range d {
			d[i] = src[i] == 1
		}
	case []int16:
		for i := range d {
			d[i] = int16(be.Uint16(src[2*i:]))
		}
	case []uint16:
		for i := range d {
			d[i] = be.Uint16(src[2*i:])
		}
	case []int32:
		for i := range d {
			d[i] = int32(be.Uint32(src[4*i:]))
		}
	case []int64:
		for i := range d {
			d[i] = int64(be.Uint64(src[8*i:]))
		}
	case []float32:
		for i := range d {
			d[i] = math.Float32frombits(be.Uint32(src[4*i:]))
		}
	case []float64:
		for i := range d {
			d[i] = math.Float64frombits(be.Uint64(src[8*i:]))
		}
	}
}

func encode[T element](dst []byte, src []T) {
	be := binary.BigEndian
	switch s := any(src).(type) {
	case []uint8:
		copy(dst, s)
	case []bool:
		for i, v := range s {
			if v {
				dst[i] = 1
			} else {
				dst[i] = 0
			}
		}
	case []int16:
		for i, v := range s {
			be.PutUint16(dst[2*i:], uint16(v))
		}
	case []uint16:
		for i, v := range s {
			be.PutUint16(dst[2*i:], v)
		}
	case []int32:
		for i, v := range s {
			be.PutUint32(dst[4*i:], uint32(v))
		}
	case []int64:
		for i, v := range s {
			be.PutUint64(dst[8*i:], uint64(v))
		}
	case []float32:
		for i, v := range s {
			be.PutUint32(dst[4*i:], math.Float32bits(v))
		}
	case []float64:
		for i, v := range s {
			be.PutUint64(dst[8*i:], math.Float64bits(v))
		}
	}
}

// readElems decodes up to n elements into b[off:]. A trailing fragment
// shorter than one element is consumed and dropped.
func readElems[T element](src source, b []T, off, n int) (int, error) {
	if err := checkRange(len(b), off, n); err != nil {
		return 0, err
	}
	size := sizeOf[T]()
	done := 0
	for done < n {
		p, err := src.fill((n - done) * size)
		if err != nil {
			return done, err
		}
		whole := min(len(p)/size, n-done)
		if whole == 0 {
			src.advance(len(p))
			if done == 0 {
				return 0, ErrEndOfStream
			}
			return done, nil
		}
		decode(b[off+done:off+done+whole], p[:whole*size])
		src.advance(whole * size)
		done += whole
	}
	return done, nil
}

func readScalar[T element](src source) (T, error) {
	var v [1]T
	_, err := readElems(src, v[:], 0, 1)
	return v[0], err
}

func writeElems[T element](dst sink, b []T, off, n int) error {
	if err := checkRange(len(b), off, n); err != nil {
		return err
	}
	size := sizeOf[T]()
	for n > 0 {
		p, err := dst.space(n * size)
		if err != nil {
			return err
		}
		k := len(p) / size
		encode(p[:k*size], b[off:off+k])
		if err := dst.commit(p[:k*size]); err != nil {
			return err
		}
		off += k
		n -= k
	}
	return nil
}

func writeScalar[T element](dst sink, v T) error {
	a := [1]T{v}
	return writeElems(dst, a[:], 0, 1)
}
