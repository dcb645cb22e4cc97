package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newChecksumCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checksum FILE",
		Short: "Print per-column xxhash digests and compare them with the layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.checksum(cmd, args[0])
		},
	}
}

func (a *app) checksum(cmd *cobra.Command, path string) error {
	l, err := readLayout(path)
	if err != nil {
		return err
	}
	tab, err := a.readTable(path, l, 0, l.Rows)
	if err != nil {
		return err
	}
	sums, err := tab.Checksum()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	mismatches := 0
	for i, c := range l.Columns {
		got := fmt.Sprintf("%016x", sums[i])
		status := "ok"
		switch {
		case c.Checksum == "":
			status = "unrecorded"
		case c.Checksum != got:
			status = "MISMATCH"
			mismatches++
		}
		fmt.Fprintf(out, "%-16s %-8s %s %s\n", c.Name, c.Type, got, status)
	}

	if mismatches > 0 {
		a.logger.Error("Checksum mismatch", "path", path, "columns", mismatches)
		return fmt.Errorf("%d column(s) do not match the recorded checksums", mismatches)
	}
	return nil
}

// description is the describe command's JSON document.
type description struct {
	Path    string              `json:"path"`
	Layout  *Layout             `json:"layout"`
	Columns []columnDescription `json:"columns"`
}

type columnDescription struct {
	Name  string `json:"name"`
	Array string `json:"array"`
	Bytes int    `json:"bytes"`
}

func newDescribeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe FILE",
		Short: "Print the table layout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.describe(cmd, args[0])
		},
	}
}

func (a *app) describe(cmd *cobra.Command, path string) error {
	l, err := readLayout(path)
	if err != nil {
		return err
	}

	d := description{Path: path, Layout: l}
	for _, c := range l.Columns {
		v, _ := c.Variant()
		d.Columns = append(d.Columns, columnDescription{
			Name:  c.Name,
			Array: c.Description(l.Rows),
			Bytes: l.Rows * c.Width * v.Size(),
		})
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode description: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
	return err
}
