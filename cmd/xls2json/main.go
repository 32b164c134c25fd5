// Package main provides the CLI entry point for xls2json.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/robarros/parser-json/pkg/xls2json"
	"github.com/robarros/parser-json/pkg/xls2json/parser"
	"github.com/robarros/parser-json/pkg/xls2json/transform"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const usageExamples = `  xls2json contas.xls
  xls2json dados.xlsx resultado.json
  xls2json jogadores.xlsx red
  xls2json jogadores.xlsx red red.json
  xls2json /caminho/para/planilha.xls`

type cliOptions struct {
	outputPath   string
	filterTime   string
	filterColumn string
	keyed        bool
	preview      bool
	quiet        bool
	logFormat    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cli cliOptions

	rootCmd := &cobra.Command{
		Use:   "xls2json <input> [time] [output.json]",
		Short: "Convert spreadsheet files to JSON",
		Long: `xls2json reads an .xls, .xlsx, .xlsm or .xlsb workbook, lower-cases its
headers and text cells, optionally keeps only the rows of one time (team),
and writes JSON next to the input file.

The second argument is a time filter unless it ends in .json, in which case
it is the output path. A third argument is always the output path.`,
		Example:       usageExamples,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(1, 3)(cmd, args); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n\n%s\n", err, cmd.UsageString())
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, cli)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&cli.outputPath, "output", "o", "", "Output file path (default: input path with .json extension)")
	flags.StringVarP(&cli.filterTime, "time", "t", "", "Keep only records whose time column matches (case-insensitive)")
	flags.StringVar(&cli.filterColumn, "filter-column", transform.DefaultFilterColumn, "Column matched by the time filter")
	flags.BoolVar(&cli.keyed, "keyed", false, "Always write an object keyed by sheet name")
	flags.BoolVar(&cli.preview, "preview", false, "Print a preview of the generated JSON")
	flags.BoolVarP(&cli.quiet, "quiet", "q", false, "Only log warnings and errors")
	flags.StringVar(&cli.logFormat, "log-format", "console", "Log format: console or json")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n\n%s\n", err, cmd.UsageString())
		return err
	})

	return rootCmd
}

func run(cmd *cobra.Command, args []string, cli cliOptions) error {
	logger, err := newLogger(cmd.ErrOrStderr(), cli.logFormat, cli.quiet)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	input, filterTime, outputPath := parseArgs(args)
	if cmd.Flags().Changed("time") {
		filterTime = cli.filterTime
	}
	if cmd.Flags().Changed("output") {
		outputPath = cli.outputPath
	}

	opts := xls2json.DefaultOptions()
	opts.OutputPath = outputPath
	opts.FilterTime = filterTime
	opts.FilterColumn = cli.filterColumn
	opts.Keyed = cli.keyed
	opts.Logger = &logger

	res, err := xls2json.Convert(input, opts)
	if err != nil {
		logger.Error().Err(err).Msg(failureMessage(err, input))
		if missingInputFile(err, input) {
			fmt.Fprintf(cmd.ErrOrStderr(), "\nUsage:\n  %s\n\nExamples:\n%s\n", cmd.UseLine(), usageExamples)
		}
		return err
	}

	if cli.preview {
		writePreview(cmd.OutOrStdout(), res)
	}
	return nil
}

// parseArgs splits positional arguments into input, time filter and output
// path. The second argument is the output path when it ends in ".json".
func parseArgs(args []string) (input, filterTime, outputPath string) {
	input = args[0]
	if len(args) >= 2 {
		if strings.HasSuffix(strings.ToLower(args[1]), ".json") {
			outputPath = args[1]
		} else {
			filterTime = args[1]
		}
	}
	if len(args) >= 3 {
		outputPath = args[2]
	}
	return input, filterTime, outputPath
}

func newLogger(w io.Writer, format string, quiet bool) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.WarnLevel
	}

	switch format {
	case "console":
		out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
		return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
	case "json":
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format: %s (must be console or json)", format)
	}
}

// missingInputFile reports whether the first argument looks like a time
// filter given without the spreadsheet it should apply to.
func missingInputFile(err error, input string) bool {
	return errors.Is(err, xls2json.ErrInputNotFound) && !parser.Supported(input)
}

func failureMessage(err error, input string) string {
	switch {
	case missingInputFile(err, input):
		return fmt.Sprintf("missing spreadsheet file: %q looks like a time filter; pass the file first", input)
	case errors.Is(err, xls2json.ErrInputNotFound):
		return "input file not found; check that the path is correct"
	case errors.Is(err, xls2json.ErrInvalidInputType):
		return "input is not a valid spreadsheet file"
	case errors.Is(err, xls2json.ErrParseFailure):
		return "could not read the workbook"
	default:
		return "conversion failed"
	}
}
