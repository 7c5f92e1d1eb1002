package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-rawarray/array"
	"github.com/robert-malhotra/go-rawarray/element"
)

func newInspectCmd(a *app) *cobra.Command {
	var planes bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the header and value range of an array file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspect(cmd.OutOrStdout(), args[0], planes)
		},
	}
	cmd.Flags().BoolVar(&planes, "planes", false, "Also print the value range of every depth plane of a 3D array")
	return cmd
}

func (a *app) inspect(out io.Writer, path string, planes bool) error {
	f, err := a.fs.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	info, err := array.ReadHeader(f)
	if err != nil {
		return err
	}

	filters := "none"
	if len(info.Filters) > 0 {
		filters = strings.Join(info.Filters, ", ")
	}

	fmt.Fprintf(out, "=== %s ===\n", path)
	fmt.Fprintf(out, "Rank:      %d\n", info.Rank)
	fmt.Fprintf(out, "Extent:    %s\n", info.Extent)
	fmt.Fprintf(out, "Encoding:  %s (%s, %d bytes)\n", info.Encoding, encodingClass(info.Encoding), info.Encoding.Width())
	fmt.Fprintf(out, "Filters:   %s\n", filters)
	fmt.Fprintf(out, "Header:    %d bytes\n", info.HeaderSize)
	fmt.Fprintf(out, "File size: %s\n", humanize.IBytes(uint64(fi.Size())))

	arr, _, err := array.Load(path, array.WithFs(a.fs))
	if err != nil {
		return err
	}
	lo, hi, mean := arr.Stats()
	fmt.Fprintf(out, "Cells:     %s\n", humanize.Comma(int64(arr.Len())))
	fmt.Fprintf(out, "Range:     [%g, %g]\n", lo, hi)
	fmt.Fprintf(out, "Mean:      %g\n", mean)

	if !planes || arr.Rank() < 3 {
		return nil
	}
	depth := arr.Extent()[array.AxisZ]
	for z := 0; z < depth; z++ {
		plane, err := arr.Slice(array.AxisZ, z)
		if err != nil {
			return err
		}
		lo, hi, mean := plane.Stats()
		fmt.Fprintf(out, "  z=%-4d   [%g, %g] mean %g\n", z, lo, hi, mean)
	}
	return nil
}

func encodingClass(e element.Encoding) string {
	switch {
	case e.IsFloat():
		return "float"
	case e.IsSigned():
		return "signed integer"
	default:
		return "unsigned integer"
	}
}
