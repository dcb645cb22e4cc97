// Package table stores fixed-row-count tables column by column, one flat
// primitive slice per column, and moves them row by row through the
// arrayio stream contract.
package table

import (
	"errors"
	"fmt"

	"github.com/soltixdb/fitscore/internal/arrayfuncs"
	"github.com/soltixdb/fitscore/internal/primitive"
	"github.com/soltixdb/fitscore/internal/utils"
)

var (
	// ErrTypeOrSizeMismatch is returned when a value's variant or length
	// does not match the column it is stored into.
	ErrTypeOrSizeMismatch = errors.New("type or size mismatch")

	// ErrInconsistentColumns is returned when the columns of a table do not
	// describe the same number of rows or are not flat primitive slices.
	ErrInconsistentColumns = errors.New("inconsistent columns")
)

// ColumnTable is a table whose column col holds sizes[col] elements per
// row in one flat slice. Not safe for concurrent use.
type ColumnTable struct {
	arrays  []any
	sizes   []int
	types   []primitive.Variant
	nrow    int
	rowSize int
	chunk   int
	budget  int

	ptrs pointers
}

// Option configures a ColumnTable.
type Option func(*ColumnTable)

// WithRowChunkBudget sets how many bytes of rows Write encodes between
// flushes of its output.
func WithRowChunkBudget(bytes int) Option {
	return func(t *ColumnTable) {
		if bytes > 0 {
			t.budget = bytes
		}
	}
}

// New builds a table from flat column slices and their per-row element
// counts. The slices are used in place, not copied.
func New(arrays []any, sizes []int, opts ...Option) (*ColumnTable, error) {
	t := &ColumnTable{budget: utils.RowChunkBudget}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.setup(arrays, sizes); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *ColumnTable) setup(arrays []any, sizes []int) error {
	if len(arrays) != len(sizes) {
		return fmt.Errorf("%d arrays but %d sizes: %w", len(arrays), len(sizes), ErrInconsistentColumns)
	}

	types := make([]primitive.Variant, len(arrays))
	nrow := 0
	rowSize := 0
	for i, a := range arrays {
		ratio, err := columnRows(a, sizes[i], nrow)
		if err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
		nrow = ratio
		types[i] = primitive.SliceVariant(a)
		rowSize += sizes[i] * types[i].Size()
	}

	t.arrays = arrays
	t.sizes = sizes
	t.types = types
	t.nrow = nrow
	t.rowSize = rowSize
	t.computeChunk()
	t.ptrs.init(arrays)
	return nil
}

// columnRows validates one column against the row count seen so far
// (zero meaning none yet) and returns the row count after it.
func columnRows(data any, size, nrow int) (int, error) {
	v := primitive.SliceVariant(data)
	if v == primitive.Invalid {
		return 0, fmt.Errorf("non-primitive array %T: %w", data, ErrInconsistentColumns)
	}
	length := primitive.SliceLen(data)
	if size < 0 || (length == 0) != (size == 0) {
		return 0, fmt.Errorf("size mismatch: %d elements with %d per row: %w", length, size, ErrInconsistentColumns)
	}
	if size == 0 {
		return nrow, nil
	}
	if length%size != 0 {
		return 0, fmt.Errorf("row size %d does not divide array of %d: %w", size, length, ErrInconsistentColumns)
	}
	rows := length / size
	if nrow != 0 && rows != nrow {
		return 0, fmt.Errorf("different number of rows in different columns (%d vs %d): %w", rows, nrow, ErrInconsistentColumns)
	}
	return rows, nil
}

// computeChunk derives how many rows fit in the chunk budget.
func (t *ColumnTable) computeChunk() {
	switch {
	case t.rowSize == 0:
		t.chunk = 0
	case t.rowSize > t.budget:
		t.chunk = 1
	case t.budget/t.rowSize >= t.nrow:
		t.chunk = t.nrow
	default:
		t.chunk = t.budget/t.rowSize + 1
	}
}

// NRows returns the number of rows.
func (t *ColumnTable) NRows() int { return t.nrow }

// NCols returns the number of columns.
func (t *ColumnTable) NCols() int { return len(t.arrays) }

// RowSize returns the encoded size of one row in bytes.
func (t *ColumnTable) RowSize() int { return t.rowSize }

// ChunkRows returns the number of rows Write encodes between flushes.
func (t *ColumnTable) ChunkRows() int { return t.chunk }

// Types returns the variant of every column.
func (t *ColumnTable) Types() []primitive.Variant {
	return append([]primitive.Variant(nil), t.types...)
}

// Sizes returns the per-row element count of every column.
func (t *ColumnTable) Sizes() []int {
	return append([]int(nil), t.sizes...)
}

// Column returns the flat slice backing column col. It is not a copy.
func (t *ColumnTable) Column(col int) any { return t.arrays[col] }

// SetColumn replaces column col. A replacement of a different variant or
// length revalidates the whole table; on failure the table is unchanged.
func (t *ColumnTable) SetColumn(col int, x any) error {
	old := t.arrays[col]
	reset := primitive.SliceVariant(x) != primitive.SliceVariant(old) ||
		primitive.SliceLen(x) != primitive.SliceLen(old)

	if !reset {
		t.arrays[col] = x
		t.ptrs.init(t.arrays)
		return nil
	}

	arrays := append([]any(nil), t.arrays...)
	arrays[col] = x
	return t.setup(arrays, t.sizes)
}

// AddColumn appends a column with size elements per row.
func (t *ColumnTable) AddColumn(x any, size int) error {
	nrow, err := columnRows(x, size, t.nrow)
	if err != nil {
		return fmt.Errorf("column %d: %w", len(t.arrays), err)
	}
	v := primitive.SliceVariant(x)

	t.arrays = append(t.arrays, x)
	t.sizes = append(t.sizes, size)
	t.types = append(t.types, v)
	t.nrow = nrow
	t.rowSize += size * v.Size()
	t.computeChunk()
	t.ptrs.add(x)
	return nil
}

// AddRow appends one row. Every column is reallocated, so building a
// large table this way is quadratic. On an empty table each element of
// row becomes a new column with one row.
func (t *ColumnTable) AddRow(row []any) error {
	if len(t.arrays) == 0 {
		for _, x := range row {
			if err := t.AddColumn(x, primitive.SliceLen(x)); err != nil {
				return err
			}
		}
		return nil
	}

	if len(row) != len(t.arrays) {
		return fmt.Errorf("row length mismatch: %d values for %d columns: %w", len(row), len(t.arrays), ErrTypeOrSizeMismatch)
	}
	for col, x := range row {
		if err := t.checkElement(col, x); err != nil {
			return err
		}
	}

	for col, x := range row {
		size := t.sizes[col]
		grown := primitive.NewSlice(t.types[col], (t.nrow+1)*size)
		if _, err := primitive.CopySlice(grown, 0, t.arrays[col], 0, t.nrow*size); err != nil {
			return err
		}
		if _, err := primitive.CopySlice(grown, t.nrow*size, x, 0, size); err != nil {
			return err
		}
		t.arrays[col] = grown
	}
	t.nrow++
	t.computeChunk()
	t.ptrs.init(t.arrays)
	return nil
}

func (t *ColumnTable) checkElement(col int, x any) error {
	if primitive.SliceVariant(x) != t.types[col] {
		return fmt.Errorf("incompatible element type %T for %s column %d: %w", x, t.types[col], col, ErrTypeOrSizeMismatch)
	}
	if n := primitive.SliceLen(x); n != t.sizes[col] {
		return fmt.Errorf("incompatible element size %d for column %d of width %d: %w", n, col, t.sizes[col], ErrTypeOrSizeMismatch)
	}
	return nil
}

// Element returns a copy of the value at row, col as a slice of the
// column's per-row width. Out of range indexes panic.
func (t *ColumnTable) Element(row, col int) any {
	size := t.sizes[col]
	x := primitive.NewSlice(t.types[col], size)
	_, _ = primitive.CopySlice(x, 0, t.arrays[col], row*size, size)
	return x
}

// SetElement copies x into row, col. x must match the column's variant and
// per-row width.
func (t *ColumnTable) SetElement(row, col int, x any) error {
	if err := t.checkElement(col, x); err != nil {
		return err
	}
	size := t.sizes[col]
	_, err := primitive.CopySlice(t.arrays[col], row*size, x, 0, size)
	return err
}

// Row returns copies of every element of row.
func (t *ColumnTable) Row(row int) []any {
	x := make([]any, len(t.arrays))
	for col := range t.arrays {
		x[col] = t.Element(row, col)
	}
	return x
}

// SetRow sets every element of row in column order. It stops at the first
// failing column; earlier columns keep their new values.
func (t *ColumnTable) SetRow(row int, x []any) error {
	if len(x) != len(t.arrays) {
		return fmt.Errorf("incompatible row: %d values for %d columns: %w", len(x), len(t.arrays), ErrTypeOrSizeMismatch)
	}
	for col := range t.arrays {
		if err := t.SetElement(row, col, x[col]); err != nil {
			return err
		}
	}
	return nil
}

// DeepCopy returns a table with independent copies of every column.
func (t *ColumnTable) DeepCopy() (*ColumnTable, error) {
	arrays := make([]any, len(t.arrays))
	for i, a := range t.arrays {
		arrays[i] = arrayfuncs.DeepClone(a)
	}
	return New(arrays, t.Sizes(), WithRowChunkBudget(t.budget))
}
