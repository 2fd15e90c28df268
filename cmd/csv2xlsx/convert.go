package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/adnsv/go-xlw/internal/config"
	"github.com/adnsv/go-xlw/xl"
)

const defaultSheetName = "Sheet1"

type converter struct {
	opts    *options
	changed func(flag string) bool
	log     *slog.Logger
	stdin   io.Reader
	stdout  io.Writer
}

func (c *converter) run(input, output string) error {
	start := time.Now()

	file := &config.File{}
	if c.opts.configPath != "" {
		f, err := config.Load(c.opts.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		file = f
		c.log.Debug("loaded config", "path", c.opts.configPath)
	}

	records, err := c.read(input)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%s: no CSV records", input)
	}
	c.log.Debug("read input", "path", input, "records", len(records))

	wopts := c.writeOptions(file)
	sheet := c.sheetName(file)

	var rows int
	if c.opts.stream {
		sw, err := xl.CreateStreamFile(output, sheet, wopts)
		if err != nil {
			return err
		}
		for _, rec := range records {
			sw.WriteRow(rec)
		}
		if err := c.applyFeatures(sw.Workbook(), file, records); err != nil {
			return err
		}
		if err := sw.Finish(); err != nil {
			return err
		}
		rows = sw.RowsWritten()
	} else {
		wb := xl.NewWorkbookWithOptions(wopts)
		if _, err := wb.AddSheet(sheet); err != nil {
			return err
		}
		wb.AddData(records)
		if err := c.applyFeatures(wb, file, records); err != nil {
			return err
		}
		if c.opts.dir {
			err = wb.SaveDir(output)
		} else {
			err = wb.SaveFile(output)
		}
		if err != nil {
			return err
		}
		rows = len(records)
	}
	c.log.Debug("saved workbook", "path", output, "dir", c.opts.dir, "stream", c.opts.stream)

	cols := 0
	for _, rec := range records {
		cols = max(cols, len(rec))
	}
	fmt.Fprintf(c.stdout, "%s %s: %s, %d columns (%s)\n",
		color.GreenString("wrote"),
		color.HiYellowString(output),
		color.HiYellowString("%d rows", rows),
		cols,
		time.Since(start).Round(time.Millisecond))
	return nil
}

func (c *converter) read(input string) ([][]string, error) {
	delim, err := parseDelimiter(c.opts.delimiter)
	if err != nil {
		return nil, err
	}
	dec, err := inputDecoder(c.opts.encoding)
	if err != nil {
		return nil, err
	}
	if input == "-" {
		return readRecords(c.stdin, delim, dec)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := readRecords(f, delim, dec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	return records, nil
}

// writeOptions merges the defaults, the config file and the flags, in
// increasing precedence.
func (c *converter) writeOptions(file *config.File) xl.WriteOptions {
	opts := xl.DefaultWriteOptions()
	if file.FreezeHeader != nil {
		opts.FreezeHeader = *file.FreezeHeader
	}
	if file.AutoFilter != nil {
		opts.AutoFilter = *file.AutoFilter
	}
	if c.opts.noFreeze {
		opts.FreezeHeader = false
	}
	if c.opts.noFilter {
		opts.AutoFilter = false
	}
	return opts
}

func (c *converter) sheetName(file *config.File) string {
	switch {
	case c.changed("sheet"):
		return c.opts.sheet
	case file.Sheet != "":
		return file.Sheet
	}
	return defaultSheetName
}

func (c *converter) applyFeatures(wb *xl.Workbook, file *config.File, records [][]string) error {
	if c.opts.autofit || file.AutoFit {
		wb.AutoFitColumns()
	}
	widths, err := file.Widths()
	if err != nil {
		return err
	}
	for col, w := range widths {
		wb.SetColumnWidth(col, w)
	}

	formats, err := file.Formats()
	if err != nil {
		return err
	}
	for _, cf := range formats {
		wb.AddConditionalFormat(cf)
	}

	groups, err := file.SparklineGroups()
	if err != nil {
		return err
	}
	for _, g := range groups {
		wb.AddSparklineGroup(g)
	}
	c.log.Debug("applied features", "widths", len(widths), "conditional_formats", len(formats), "sparkline_groups", len(groups))

	cfg, err := c.chartConfig(file)
	if err != nil {
		return err
	}
	if cfg != nil {
		c.warnOutOfRange(cfg, records)
		wb.SetChart(*cfg, records)
		c.log.Debug("added chart", "type", cfg.Type, "series", len(cfg.ValueColumns))
	}
	return nil
}

// chartConfig starts from the config file's chart, if any, and lets the
// chart flags override it.
func (c *converter) chartConfig(file *config.File) (*xl.ChartConfig, error) {
	cfg, err := file.ChartConfig()
	if err != nil {
		return nil, err
	}
	if c.changed("chart") {
		t, err := xl.ParseChartType(c.opts.chart)
		if err != nil {
			return nil, err
		}
		if cfg == nil {
			def := xl.DefaultChartConfig()
			cfg = &def
		}
		cfg.Type = t
	}
	if cfg == nil {
		return nil, nil
	}

	if c.changed("chart-title") {
		cfg.Title = c.opts.chartTitle
	}
	if c.changed("x-title") {
		cfg.XAxisTitle = c.opts.xTitle
	}
	if c.changed("y-title") {
		cfg.YAxisTitle = c.opts.yTitle
	}
	if c.changed("category-col") {
		n, err := xl.ColumnLettersAsNumber(c.opts.categoryCol)
		if err != nil {
			return nil, fmt.Errorf("--category-col: %w", err)
		}
		cfg.CategoryColumn = n - 1
	}
	if c.changed("value-cols") {
		cfg.ValueColumns = nil
		for _, s := range c.opts.valueCols {
			n, err := xl.ColumnLettersAsNumber(s)
			if err != nil {
				return nil, fmt.Errorf("--value-cols: %w", err)
			}
			cfg.ValueColumns = append(cfg.ValueColumns, n-1)
		}
	}
	return cfg, nil
}

func (c *converter) warnOutOfRange(cfg *xl.ChartConfig, records [][]string) {
	width := len(records[0])
	for _, col := range append([]int{cfg.CategoryColumn}, cfg.ValueColumns...) {
		if col >= width {
			c.log.Warn("chart column is beyond the header row", "column", xl.ColumnNumberAsLetters(col+1), "header_columns", width)
		}
	}
}
