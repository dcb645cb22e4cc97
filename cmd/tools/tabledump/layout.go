package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/soltixdb/fitscore/internal/arrayfuncs"
	"github.com/soltixdb/fitscore/internal/primitive"
	"github.com/soltixdb/fitscore/internal/utils"
)

const layoutVersion = 1

// Layout is the JSON sidecar describing a table file. The table file
// itself is headerless rows.
type Layout struct {
	Version     int            `json:"version"`
	RunID       string         `json:"run_id"`
	Created     time.Time      `json:"created"`
	Rows        int            `json:"rows"`
	RowSize     int            `json:"row_size"`
	Compression string         `json:"compression"`
	Columns     []ColumnLayout `json:"columns"`
}

// ColumnLayout describes one column of a table file.
type ColumnLayout struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Width    int    `json:"width"`
	Checksum string `json:"checksum,omitempty"`
}

// Variant resolves the column's element type.
func (c ColumnLayout) Variant() (primitive.Variant, error) {
	v, ok := primitive.FromName(c.Type)
	if !ok {
		return primitive.Invalid, fmt.Errorf("column %s: unknown type %q", c.Name, c.Type)
	}
	return v, nil
}

// Description renders the column as a Java-style array declaration,
// e.g. "int[1000][4]".
func (c ColumnLayout) Description(rows int) string {
	v, err := c.Variant()
	if err != nil {
		return "unknown"
	}
	return arrayfuncs.Description(arrayfuncs.NewInstance(v, []int{rows, c.Width}))
}

// parseColumns parses a list such as "int32:1,float32:1,flux=double:3".
// The width defaults to 1 and the name to c<index>.
func parseColumns(def string) ([]ColumnLayout, error) {
	var cols []ColumnLayout
	for i, part := range strings.Split(def, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		col := ColumnLayout{Name: fmt.Sprintf("c%d", i), Width: 1}
		if name, rest, ok := strings.Cut(part, "="); ok {
			col.Name = strings.TrimSpace(name)
			part = rest
		}
		typ, width, hasWidth := strings.Cut(part, ":")
		if hasWidth {
			n, err := strconv.Atoi(width)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("column %q: invalid width %q", part, width)
			}
			col.Width = n
		}

		v, ok := primitive.FromName(strings.TrimSpace(typ))
		if !ok {
			return nil, fmt.Errorf("column %q: unknown type %q", part, typ)
		}
		col.Type = v.String()
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns in %q", def)
	}
	return cols, nil
}

func layoutPath(dataPath string) string {
	return dataPath + utils.LayoutSuffix
}

func writeLayout(dataPath string, l *Layout) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	if err := os.WriteFile(layoutPath(dataPath), append(data, '\n'), utils.DefaultFileMode); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

func readLayout(dataPath string) (*Layout, error) {
	data, err := os.ReadFile(layoutPath(dataPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout %s: %w", layoutPath(dataPath), err)
	}
	if l.Version != layoutVersion {
		return nil, fmt.Errorf("unsupported layout version %d", l.Version)
	}
	for _, c := range l.Columns {
		if _, err := c.Variant(); err != nil {
			return nil, err
		}
	}
	return &l, nil
}
