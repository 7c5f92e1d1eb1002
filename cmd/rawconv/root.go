package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robert-malhotra/go-rawarray/array"
	"github.com/robert-malhotra/go-rawarray/internal/convert"
	"github.com/robert-malhotra/go-rawarray/internal/filter"
	"github.com/robert-malhotra/go-rawarray/internal/logging"
)

var version = "dev" // Overridden at build time

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	fs      afero.Fs
	stdout  io.Writer
	stderr  io.Writer
	cfgFile string
	logger  *logging.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		v:      viper.New(),
		fs:     afero.NewOsFs(),
		stdout: stdout,
		stderr: stderr,
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rawconv",
		Short: "Convert raw binary grids into self-describing array files",
		Long: `rawconv reads headerless (or header-prefixed) binary grids of 1, 2 or 3
dimensions and saves them as .qa1/.qa2/.qa3 array files that record their
own extent, element encoding and payload filters.

A 3D volume can also be assembled from numbered 2D slice files.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", convert.ErrUsage, err)
	})

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./rawconv.yaml)")

	// Logging flags
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	// Output flags
	rootCmd.PersistentFlags().String("compress", "none", "Payload compression ("+strings.Join(filter.Compressors, ", ")+", none)")
	rootCmd.PersistentFlags().Bool("shuffle", false, "Byte-shuffle the payload before compression")
	rootCmd.PersistentFlags().Bool("checksum", false, "Append a Fletcher-32 checksum to the payload")

	// Bind flags to viper
	a.v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	a.v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	a.v.BindPFlag("compress", rootCmd.PersistentFlags().Lookup("compress"))
	a.v.BindPFlag("shuffle", rootCmd.PersistentFlags().Lookup("shuffle"))
	a.v.BindPFlag("checksum", rootCmd.PersistentFlags().Lookup("checksum"))

	rootCmd.AddCommand(newConvertCmd(a), newInspectCmd(a), newVersionCmd())
	return rootCmd
}

func (a *app) initConfig(*cobra.Command, []string) error {
	a.v.SetFs(a.fs)
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.AddConfigPath(filepath.Join("$HOME", ".config", "rawconv"))
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("rawconv")
	}

	a.v.SetEnvPrefix("RAWCONV")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	logger, err := logging.New(a.stderr, a.v.GetString("log.format"), a.v.GetString("log.level"))
	if err != nil {
		return fmt.Errorf("%w: %w", convert.ErrUsage, err)
	}
	a.logger = logger
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", "path", used)
	}
	return nil
}

// saveOptions returns the array options selected by flags, environment and
// config file.
func (a *app) saveOptions() ([]array.Option, error) {
	compress := a.v.GetString("compress")
	if compress != "" && compress != "none" && !filter.IsCompressor(compress) {
		return nil, fmt.Errorf("%w: unknown compression %q", convert.ErrUsage, compress)
	}

	opts := []array.Option{array.WithCompression(compress)}
	if a.v.GetBool("shuffle") {
		opts = append(opts, array.WithShuffle())
	}
	if a.v.GetBool("checksum") {
		opts = append(opts, array.WithChecksum())
	}
	return opts, nil
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, a *app) int {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return exitOK
	}

	fmt.Fprintln(a.stderr, "Error:", err)
	if errors.Is(err, convert.ErrUsage) {
		fmt.Fprintln(a.stderr, "Usage:", cmd.UseLine())
		return exitUsage
	}
	return exitError
}
