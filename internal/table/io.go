package table

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/soltixdb/fitscore/internal/arrayio"
	"github.com/soltixdb/fitscore/internal/primitive"
)

// pointers caches the columns grouped by variant so the row loops index
// typed slices directly. Within each group columns keep table order.
type pointers struct {
	bytes    [][]byte
	shorts   [][]int16
	chars    [][]uint16
	ints     [][]int32
	longs    [][]int64
	floats   [][]float32
	doubles  [][]float64
	booleans [][]bool
}

func (p *pointers) init(arrays []any) {
	*p = pointers{}
	for _, a := range arrays {
		p.add(a)
	}
}

func (p *pointers) add(a any) {
	switch s := a.(type) {
	case []byte:
		p.bytes = append(p.bytes, s)
	case []int16:
		p.shorts = append(p.shorts, s)
	case []uint16:
		p.chars = append(p.chars, s)
	case []int32:
		p.ints = append(p.ints, s)
	case []int64:
		p.longs = append(p.longs, s)
	case []float32:
		p.floats = append(p.floats, s)
	case []float64:
		p.doubles = append(p.doubles, s)
	case []bool:
		p.booleans = append(p.booleans, s)
	}
}

// cursor counts how many columns of each variant a row loop has visited.
type cursor struct {
	b, s, c, i, l, f, d, z int
}

// Read fills the table row by row from in and returns the number of bytes
// read. A source that runs out mid-table yields the bytes of the complete
// columns so far and an error wrapping arrayio.ErrEndOfStream.
func (t *ColumnTable) Read(in arrayio.ArrayDataInput) (int64, error) {
	var total int64
	for row := 0; row < t.nrow; row++ {
		var k cursor
		for col, v := range t.types {
			size := t.sizes[col]
			off := row * size

			var (
				n   int
				err error
			)
			switch v {
			case primitive.Byte:
				n, err = in.ReadBytes(t.ptrs.bytes[k.b], off, size)
				k.b++
			case primitive.Short:
				n, err = in.ReadShorts(t.ptrs.shorts[k.s], off, size)
				k.s++
			case primitive.Char:
				n, err = in.ReadChars(t.ptrs.chars[k.c], off, size)
				k.c++
			case primitive.Int:
				n, err = in.ReadInts(t.ptrs.ints[k.i], off, size)
				k.i++
			case primitive.Long:
				n, err = in.ReadLongs(t.ptrs.longs[k.l], off, size)
				k.l++
			case primitive.Float:
				n, err = in.ReadFloats(t.ptrs.floats[k.f], off, size)
				k.f++
			case primitive.Double:
				n, err = in.ReadDoubles(t.ptrs.doubles[k.d], off, size)
				k.d++
			case primitive.Boolean:
				n, err = in.ReadBooleans(t.ptrs.booleans[k.z], off, size)
				k.z++
			}

			total += int64(n * v.Size())
			if err == nil && n < size {
				err = arrayio.ErrEndOfStream
			}
			if err != nil {
				return total, fmt.Errorf("reading row %d column %d: %w", row, col, err)
			}
		}
	}
	return total, nil
}

// Write encodes the table row by row onto out and returns the number of
// bytes written. Output is flushed after every ChunkRows rows.
func (t *ColumnTable) Write(out arrayio.ArrayDataOutput) (int64, error) {
	if t.rowSize == 0 {
		return 0, nil
	}

	for row := 0; row < t.nrow; row++ {
		var k cursor
		for col, v := range t.types {
			size := t.sizes[col]
			off := row * size

			var err error
			switch v {
			case primitive.Byte:
				err = out.WriteBytes(t.ptrs.bytes[k.b], off, size)
				k.b++
			case primitive.Short:
				err = out.WriteShorts(t.ptrs.shorts[k.s], off, size)
				k.s++
			case primitive.Char:
				err = out.WriteChars(t.ptrs.chars[k.c], off, size)
				k.c++
			case primitive.Int:
				err = out.WriteInts(t.ptrs.ints[k.i], off, size)
				k.i++
			case primitive.Long:
				err = out.WriteLongs(t.ptrs.longs[k.l], off, size)
				k.l++
			case primitive.Float:
				err = out.WriteFloats(t.ptrs.floats[k.f], off, size)
				k.f++
			case primitive.Double:
				err = out.WriteDoubles(t.ptrs.doubles[k.d], off, size)
				k.d++
			case primitive.Boolean:
				err = out.WriteBooleans(t.ptrs.booleans[k.z], off, size)
				k.z++
			}
			if err != nil {
				return int64(row * t.rowSize), fmt.Errorf("writing row %d column %d: %w", row, col, err)
			}
		}

		if t.chunk > 0 && (row+1)%t.chunk == 0 {
			if err := out.Flush(); err != nil {
				return int64((row + 1) * t.rowSize), err
			}
		}
	}
	return int64(t.nrow * t.rowSize), nil
}

// Checksum returns the xxhash64 of each column's big-endian encoding.
func (t *ColumnTable) Checksum() ([]uint64, error) {
	sums := make([]uint64, len(t.arrays))
	for col, a := range t.arrays {
		d := xxhash.New()
		out := arrayio.NewOutputStream(d, 0)
		if _, err := out.WriteArray(a); err != nil {
			return nil, fmt.Errorf("column %d: %w", col, err)
		}
		if err := out.Flush(); err != nil {
			return nil, fmt.Errorf("column %d: %w", col, err)
		}
		sums[col] = d.Sum64()
	}
	return sums, nil
}
