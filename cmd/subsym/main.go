package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ian-shakespeare/subsym/internal/config"
	"github.com/ian-shakespeare/subsym/internal/logging"
	"github.com/ian-shakespeare/subsym/internal/nameseq"
	"github.com/ian-shakespeare/subsym/internal/subst"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subsym <input-file> <search-token> <replacement-token>",
		Short: "Replace whole tokens in a file",
		Long: `subsym splits a file into tokens, each either a run of ASCII letters and
digits or a single other byte, and writes a copy in which every token equal
to <search-token> is replaced by <replacement-token>.

The output goes next to the input with its number bumped by one, so
toolchain3.sh is written to toolchain4.sh. Use --output to choose another
file, or "-" for stdout.`,
		Version:       version,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringP("output", "o", "", `Output file ("-" for stdout); defaults to the input name with its number incremented`)
	cmd.Flags().String("config", "", "Config file (default ~/.subsym/config.yaml)")
	cmd.Flags().String("log-level", "", "Log level: info, debug or trace")
	cmd.Flags().Int("buffer-size", 0, "Initial token buffer size in bytes")
	cmd.Flags().Int("max-token-size", 0, "Largest token buffer allowed; 0 for no limit")
	cmd.Flags().String("on-growth-failure", "", "What to do with a token that outgrows the buffer: abort or passthrough")

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("buffer-size") {
		cfg.Tokenizer.BufferSize, _ = flags.GetInt("buffer-size")
	}
	if flags.Changed("max-token-size") {
		cfg.Tokenizer.MaxTokenSize, _ = flags.GetInt("max-token-size")
	}
	if flags.Changed("on-growth-failure") {
		cfg.OnGrowthFailure, _ = flags.GetString("on-growth-failure")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string, stdout, stderr io.Writer) (err error) {
	inputPath, search, replace := args[0], args[1], args[2]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(cfg.Logging.Level, stderr)

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath, err = nameseq.Next(inputPath)
		if err != nil {
			return fmt.Errorf("could not derive output file name: %w", err)
		}
	}
	if filepath.Clean(outputPath) == filepath.Clean(inputPath) {
		return errors.New("output file would overwrite the input file")
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("could not open input: %w", err)
	}
	defer input.Close()

	var output io.Writer = stdout
	if outputPath != "-" {
		var f *os.File
		f, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("could not create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("could not close output: %w", cerr)
			}
		}()
		output = f
	}

	s := &subst.Substituter{
		Search:        search,
		Replace:       replace,
		Policy:        cfg.Policy(),
		BufferSize:    cfg.Tokenizer.BufferSize,
		MaxBufferSize: cfg.Tokenizer.MaxTokenSize,
		Logger:        logger,
	}
	logger.Debug("starting substitution", "input", inputPath, "output", outputPath, "search", search, "replace", replace, "policy", s.Policy)

	if _, err := s.Run(input, output); err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	return nil
}
