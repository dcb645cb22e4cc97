package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/soltixdb/fitscore/internal/arrayio"
	"github.com/soltixdb/fitscore/internal/compression"
	"github.com/soltixdb/fitscore/internal/primitive"
	"github.com/soltixdb/fitscore/internal/table"
)

// stack is a reader or writer whose Close releases several layers, top
// layer first.
type stack struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (s *stack) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// newTable allocates zeroed columns for rows rows of the layout.
func (a *app) newTable(l *Layout, rows int) (*table.ColumnTable, error) {
	arrays := make([]any, len(l.Columns))
	sizes := make([]int, len(l.Columns))
	for i, c := range l.Columns {
		v, err := c.Variant()
		if err != nil {
			return nil, err
		}
		arrays[i] = primitive.NewSlice(v, rows*c.Width)
		sizes[i] = c.Width
	}
	return table.New(arrays, sizes, table.WithRowChunkBudget(a.cfg.IO.RowChunkBudget))
}

// createOutput opens path for writing table rows. Uncompressed files are
// written through a BufferedFile truncated to zero length; compressed
// files through a compressing stream.
func (a *app) createOutput(path string, algo compression.Algorithm) (arrayio.ArrayDataOutput, error) {
	opts := []arrayio.Option{arrayio.WithLogger(a.logger)}

	if algo == compression.None {
		f, err := arrayio.OpenFileFromConfig(path, "rw", a.cfg.IO, opts...)
		if err != nil {
			return nil, err
		}
		if err := f.SetLength(0); err != nil {
			_ = f.Close()
			return nil, err
		}
		return f, nil
	}

	compressor, err := compression.GetCompressorWithLevel(algo, a.cfg.Compression.Level)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, a.cfg.IO.Permissions())
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	zw, err := compressor.NewWriter(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	w := &stack{Writer: zw, closers: []io.Closer{zw, file}}
	return arrayio.NewOutputStream(w, a.cfg.IO.BufferSize, opts...), nil
}

// openInput opens a table file described by l. Uncompressed files come
// back as a BufferedFile, which also implements arrayio.RandomAccess.
func (a *app) openInput(path string, l *Layout) (arrayio.ArrayDataInput, error) {
	opts := []arrayio.Option{arrayio.WithLogger(a.logger)}

	algo, err := compression.ParseAlgorithm(l.Compression)
	if err != nil {
		return nil, err
	}
	if algo == compression.None {
		return arrayio.OpenFileFromConfig(path, "r", a.cfg.IO, opts...)
	}

	compressor, err := compression.GetCompressor(algo)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	zr, err := compressor.NewReader(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	r := &stack{Reader: zr, closers: []io.Closer{zr, file}}
	return arrayio.NewInputStream(r, a.cfg.IO.BufferSize, opts...), nil
}

// readTable reads rows rows starting at row start.
func (a *app) readTable(path string, l *Layout, start, rows int) (*table.ColumnTable, error) {
	tab, err := a.newTable(l, rows)
	if err != nil {
		return nil, err
	}

	in, err := a.openInput(path, l)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	if offset := int64(start) * int64(l.RowSize); offset > 0 {
		if ra, ok := in.(arrayio.RandomAccess); ok {
			_, err = ra.Seek(offset, io.SeekStart)
		} else {
			_, err = in.Skip(offset)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to position at row %d: %w", start, err)
		}
	}

	if _, err := tab.Read(in); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return tab, nil
}
