// Command tabdml converts a flat tournament-management export into a
// normalized, hierarchical competition record. It reads one document from
// stdin or a file and writes one document to stdout or a file; any error
// aborts the run with no partial output.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/debatekit/tabdml/internal/adapters/dml"
	"github.com/debatekit/tabdml/internal/adapters/tabroom"
	"github.com/debatekit/tabdml/internal/application"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tabdml",
		Short:         "Convert tournament-management exports to hierarchical competition records",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newConvertCmd())
	return root
}

func newConvertCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		configPath string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Read a flat export and write the normalized document",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runConvert(log, inputPath, outputPath, configPath)
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input export file (default: stdin)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output document file (default: stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file overriding the built-in conversion config")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	// The document goes to stdout; logs must stay off it.
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}

func runConvert(log *zap.Logger, inputPath, outputPath, configPath string) error {
	cfg, err := application.LoadConfig(configPath)
	if err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	doc, err := tabroom.Decode(in)
	if err != nil {
		return err
	}
	src := tabroom.NewSource(doc)

	tourn, err := application.New(cfg, log).Transform(src)
	if err != nil {
		return err
	}

	// Serialize fully before touching the output so a late failure never
	// leaves a partial document behind.
	var buf bytes.Buffer
	if err := dml.Write(&buf, tourn); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}

	out := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Info("conversion complete", zap.Int("bytes", buf.Len()))
	return nil
}
