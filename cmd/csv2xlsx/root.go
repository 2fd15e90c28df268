package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// ExitError signals a non-zero exit code without printing an error message.
type ExitError struct{ Code int }

func (e *ExitError) Error() string { return "" }

type options struct {
	sheet     string
	delimiter string
	encoding  string

	noFreeze bool
	noFilter bool
	autofit  bool

	chart       string
	chartTitle  string
	xTitle      string
	yTitle      string
	categoryCol string
	valueCols   []string

	configPath string
	dir        bool
	stream     bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "csv2xlsx [flags] INPUT.csv OUTPUT.xlsx",
		Short: "Convert a CSV file into an Excel workbook",
		Long: `Convert a CSV file into an Excel workbook.

The first CSV record is the header row. Numeric fields become numbers,
everything else is stored as text. Use "-" as INPUT to read from standard
input.`,
		Version:       Version,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if o.verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			if err := o.check(cmd); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return &ExitError{Code: 2}
			}
			c := &converter{
				opts:    o,
				changed: cmd.Flags().Changed,
				log:     log,
				stdin:   cmd.InOrStdin(),
				stdout:  cmd.OutOrStdout(),
			}
			return c.run(args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.sheet, "sheet", "", "worksheet name (default \"Sheet1\")")
	f.StringVarP(&o.delimiter, "delimiter", "d", ",", "field delimiter, a single character or \"tab\"")
	f.StringVar(&o.encoding, "encoding", "utf-8", "input encoding: utf-8, latin1 or windows-1252")
	f.BoolVar(&o.noFreeze, "no-freeze", false, "do not freeze the header row")
	f.BoolVar(&o.noFilter, "no-filter", false, "do not add an auto-filter")
	f.BoolVar(&o.autofit, "autofit", false, "size columns to their content")
	f.StringVar(&o.chart, "chart", "", "add a chart: bar, column, line, area, pie, scatter or doughnut")
	f.StringVar(&o.chartTitle, "chart-title", "", "chart title")
	f.StringVar(&o.xTitle, "x-title", "", "category axis title")
	f.StringVar(&o.yTitle, "y-title", "", "value axis title")
	f.StringVar(&o.categoryCol, "category-col", "", "chart category column letter (default A)")
	f.StringSliceVar(&o.valueCols, "value-cols", nil, "chart value column letters, e.g. B,C (default B)")
	f.StringVarP(&o.configPath, "config", "c", "", "YAML file with chart, conditional formats, sparklines and widths")
	f.BoolVar(&o.dir, "dir", false, "write the unzipped package parts into the OUTPUT directory")
	f.BoolVar(&o.stream, "stream", false, "build the sheet row by row through the stream writer")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log progress to stderr")

	return cmd
}

func (o *options) check(cmd *cobra.Command) error {
	if o.dir && o.stream {
		return fmt.Errorf("--dir and --stream cannot be combined")
	}
	if _, err := parseDelimiter(o.delimiter); err != nil {
		return fmt.Errorf("invalid delimiter: %w", err)
	}
	if _, err := inputDecoder(o.encoding); err != nil {
		return err
	}
	if !cmd.Flags().Changed("chart") {
		for _, name := range []string{"chart-title", "x-title", "y-title", "category-col", "value-cols"} {
			if cmd.Flags().Changed(name) && o.configPath == "" {
				return fmt.Errorf("--%s needs --chart or a chart in --config", name)
			}
		}
	}
	return nil
}
