// Command tabledump writes, reads and inspects binary column tables.
//
//	tabledump generate --out t.bin --columns int32:1,float32:1,byte:4 --rows 1000
//	tabledump dump t.bin --rows 10
//	tabledump checksum t.bin
//	tabledump describe t.bin
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/soltixdb/fitscore/internal/config"
	"github.com/soltixdb/fitscore/internal/logging"
)

var version = "0.1.0"

// app carries the state every subcommand shares.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *logging.Logger
	closer io.Closer
	runID  string
}

func main() {
	a := &app{}
	if err := a.execute(context.Background(), newRootCommand(a)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tabledump",
		Short:         "Write, read and inspect binary column tables",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to configuration file (YAML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		newGenerateCommand(a),
		newDumpCommand(a),
		newChecksumCommand(a),
		newDescribeCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Logging.Validate(); err != nil {
			return err
		}
	}

	logger, closer, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.closer = closer
	a.runID = uuid.NewString()
	a.logger = logger.With("run_id", a.runID, "command", cmd.Name())

	ctx := logging.WithLogger(cmd.Context(), a.logger)
	ctx = logging.WithRunID(ctx, a.runID)
	ctx = logging.WithOperation(ctx, cmd.Name())
	cmd.SetContext(ctx)

	a.logger.Debug("Configuration loaded",
		"buffer_size", cfg.IO.BufferSize,
		"row_chunk_budget", cfg.IO.RowChunkBudget,
		"compression", cfg.Compression.Algorithm)
	return nil
}

// execute runs root and then releases the log output, whether or not the
// command failed. Cobra skips post-run hooks after an error.
func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}
