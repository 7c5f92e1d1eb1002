package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-rawarray/internal/convert"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		output      string
		headerBytes int64
	)

	cmd := &cobra.Command{
		Use:   "convert [flags] " + convert.Usage,
		Short: "Convert a raw file, or a set of raw slice files, into an array file",
		Long: `Convert a raw grid of numX x numY x numZ cells into an array file.

numY = 0 and numZ = 0 produce a 1D array, numZ = 0 a 2D array, and a
positive numZ a 3D array. A negative numZ reads -numZ slice files named by
the printf template <inputFile> (for example "slice%03d.raw").

Encodings are given by code (0-9) or name: uint8 int8 uint16 int16 uint32
int32 uint64 int64 float32 float64. Flags go before the input file.`,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := convert.ParseArgs(args)
			if err != nil {
				return err
			}
			req.HeaderBytes = headerBytes

			save, err := a.saveOptions()
			if err != nil {
				return err
			}

			c := &convert.Converter{
				Fs:     a.fs,
				Logger: a.logger,
				Output: output,
				Save:   save,
			}
			res, err := c.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Output)
			return nil
		},
	}

	// Positional numZ may be negative.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default is the input name with a .qaN suffix)")
	cmd.Flags().Int64Var(&headerBytes, "header-bytes", 0, "Skip this many header bytes before the payload")

	return cmd
}
