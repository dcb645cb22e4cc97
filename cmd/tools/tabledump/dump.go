package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soltixdb/fitscore/internal/bytecodec"
	"github.com/soltixdb/fitscore/internal/table"
	"github.com/soltixdb/fitscore/internal/utils"
)

func newDumpCommand(a *app) *cobra.Command {
	var (
		start  int
		rows   int
		width  int
		header bool
	)

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print table rows as fixed-width text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dump(cmd, args[0], start, rows, width, header)
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "First row to print")
	cmd.Flags().IntVarP(&rows, "rows", "n", 20, "Number of rows to print (0 for all)")
	cmd.Flags().IntVarP(&width, "width", "w", utils.DefaultFieldWidth, "Width of each field")
	cmd.Flags().BoolVar(&header, "header", true, "Print a header line with column names")

	return cmd
}

func (a *app) dump(cmd *cobra.Command, path string, start, rows, width int, header bool) error {
	if width <= 0 {
		return fmt.Errorf("invalid field width %d", width)
	}
	l, err := readLayout(path)
	if err != nil {
		return err
	}
	if start < 0 || start >= l.Rows {
		return fmt.Errorf("start row %d outside table of %d rows", start, l.Rows)
	}
	count := l.Rows - start
	if rows > 0 {
		count = min(count, rows)
	}

	tab, err := a.readTable(path, l, start, count)
	if err != nil {
		return err
	}

	f := bytecodec.NewFormatterFromConfig(a.cfg.Formatter)
	f.SetAlign(true)
	w := bufio.NewWriter(cmd.OutOrStdout())

	if header {
		line := make([]byte, 0, 128)
		for _, c := range l.Columns {
			for k := 0; k < c.Width; k++ {
				name := c.Name
				if c.Width > 1 {
					name = fmt.Sprintf("%s[%d]", c.Name, k)
				}
				line = appendField(line, width, func(buf []byte) (int, error) {
					return f.FormatString(name, buf, 0, width), nil
				})
			}
		}
		fmt.Fprintf(w, "%s\n", line)
	}

	truncated := 0
	line := make([]byte, 0, 128)
	for row := 0; row < tab.NRows(); row++ {
		line = line[:0]
		for col := range l.Columns {
			line, err = appendElement(line, f, tab, row, col, width)
			if errors.Is(err, bytecodec.ErrTruncation) {
				truncated++
			} else if err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\n", line)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if truncated > 0 {
		a.logger.Warn("Values did not fit their fields", "count", truncated, "width", width)
	}
	a.logger.Debug("Rows dumped", "path", path, "start", start, "rows", tab.NRows())
	return nil
}

// appendField appends one space-separated field produced by format.
func appendField(line []byte, width int, format func(buf []byte) (int, error)) []byte {
	if len(line) > 0 {
		line = append(line, ' ')
	}
	buf := make([]byte, width)
	n, _ := format(buf)
	return append(line, buf[:n]...)
}

// appendElement formats every value of one cell. The first truncation
// error is returned after the whole cell has been written.
func appendElement(line []byte, f *bytecodec.Formatter, tab *table.ColumnTable, row, col, width int) ([]byte, error) {
	var first error
	keep := func(err error) {
		if first == nil {
			first = err
		}
	}

	field := func(format func(buf []byte) (int, error)) {
		line = appendField(line, width, func(buf []byte) (int, error) {
			n, err := format(buf)
			keep(err)
			return n, err
		})
	}

	switch x := tab.Element(row, col).(type) {
	case []byte:
		for _, v := range x {
			field(func(buf []byte) (int, error) { return f.FormatInt(int32(v), buf, 0, width) })
		}
	case []int16:
		for _, v := range x {
			field(func(buf []byte) (int, error) { return f.FormatInt(int32(v), buf, 0, width) })
		}
	case []uint16:
		for _, v := range x {
			field(func(buf []byte) (int, error) { return f.FormatInt(int32(v), buf, 0, width) })
		}
	case []int32:
		for _, v := range x {
			field(func(buf []byte) (int, error) { return f.FormatInt(v, buf, 0, width) })
		}
	case []int64:
		for _, v := range x {
			field(func(buf []byte) (int, error) { return f.FormatLong(v, buf, 0, width) })
		}
	case []float32:
		for _, v := range x {
			field(func(buf []byte) (int, error) { return f.FormatFloat(v, buf, 0, width) })
		}
	case []float64:
		for _, v := range x {
			field(func(buf []byte) (int, error) { return f.FormatDouble(v, buf, 0, width) })
		}
	case []bool:
		for _, v := range x {
			field(func(buf []byte) (int, error) { return f.FormatBool(v, buf, 0, width), nil })
		}
	default:
		return line, fmt.Errorf("column %d: unsupported element %T", col, x)
	}
	return line, first
}
