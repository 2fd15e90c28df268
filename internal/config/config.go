// Package config reads the YAML file that describes the workbook features
// csv2xlsx adds on top of the CSV data.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adnsv/go-xlw/xl"
)

// File is the decoded feature file. Columns are given as letters ("A",
// "AB"); colors as hex RGB.
type File struct {
	Sheet        string             `yaml:"sheet"`
	FreezeHeader *bool              `yaml:"freeze_header"`
	AutoFilter   *bool              `yaml:"auto_filter"`
	AutoFit      bool               `yaml:"autofit"`
	ColumnWidths map[string]float64 `yaml:"column_widths"`

	Chart              *Chart              `yaml:"chart"`
	ConditionalFormats []ConditionalFormat `yaml:"conditional_formats"`
	Sparklines         []SparklineGroup    `yaml:"sparklines"`
}

type Chart struct {
	Type     string   `yaml:"type"`
	Title    string   `yaml:"title"`
	XTitle   string   `yaml:"x_title"`
	YTitle   string   `yaml:"y_title"`
	Category string   `yaml:"category"`
	Values   []string `yaml:"values"`
	Colors   []string `yaml:"colors"`
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	Legend   *bool    `yaml:"legend"`
}

type ConditionalFormat struct {
	Range string `yaml:"range"`
	Rules []Rule `yaml:"rules"`
}

// Rule holds the fields of every rule type; Type selects which apply.
type Rule struct {
	Type      string `yaml:"type"` // color_scale, three_color_scale, data_bar, icon_set, formula, cell_value
	Min       string `yaml:"min"`
	Mid       string `yaml:"mid"`
	Max       string `yaml:"max"`
	Color     string `yaml:"color"`
	Style     string `yaml:"style"`
	Formula   string `yaml:"formula"`
	Operator  string `yaml:"operator"`
	Value     string `yaml:"value"`
	BgColor   string `yaml:"bg_color"`
	FontColor string `yaml:"font_color"`
	Bold      bool   `yaml:"bold"`
}

type SparklineGroup struct {
	Type    string      `yaml:"type"` // line, column, win_loss
	Color   string      `yaml:"color"`
	Markers bool        `yaml:"markers"`
	Items   []Sparkline `yaml:"items"`
}

type Sparkline struct {
	Location string `yaml:"location"`
	Range    string `yaml:"range"`
}

// Load reads and decodes the feature file at path. Unknown keys are
// errors.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &f, nil
}

// ChartConfig converts the chart section, starting from the library
// defaults. It returns nil when the file has no chart.
func (f *File) ChartConfig() (*xl.ChartConfig, error) {
	if f.Chart == nil {
		return nil, nil
	}
	c := f.Chart
	cfg := xl.DefaultChartConfig()
	if c.Type != "" {
		t, err := xl.ParseChartType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("chart.type: %w", err)
		}
		cfg.Type = t
	}
	cfg.Title = c.Title
	cfg.XAxisTitle = c.XTitle
	cfg.YAxisTitle = c.YTitle
	if c.Category != "" {
		col, err := columnIndex(c.Category)
		if err != nil {
			return nil, fmt.Errorf("chart.category: %w", err)
		}
		cfg.CategoryColumn = col
	}
	if len(c.Values) > 0 {
		cfg.ValueColumns = cfg.ValueColumns[:0]
		for i, v := range c.Values {
			col, err := columnIndex(v)
			if err != nil {
				return nil, fmt.Errorf("chart.values[%d]: %w", i, err)
			}
			cfg.ValueColumns = append(cfg.ValueColumns, col)
		}
	}
	for i, color := range c.Colors {
		if _, err := xl.ParseHexColor(color); err != nil {
			return nil, fmt.Errorf("chart.colors[%d]: %w", i, err)
		}
	}
	cfg.Colors = c.Colors
	if c.Width > 0 {
		cfg.Width = c.Width
	}
	if c.Height > 0 {
		cfg.Height = c.Height
	}
	if c.Legend != nil {
		cfg.ShowLegend = *c.Legend
	}
	return &cfg, nil
}

func (f *File) Formats() ([]xl.ConditionalFormat, error) {
	var ret []xl.ConditionalFormat
	for i, cf := range f.ConditionalFormats {
		if cf.Range == "" {
			return nil, fmt.Errorf("conditional_formats[%d]: missing range", i)
		}
		out := xl.ConditionalFormat{Range: cf.Range}
		for j, r := range cf.Rules {
			rule, err := r.convert()
			if err != nil {
				return nil, fmt.Errorf("conditional_formats[%d].rules[%d]: %w", i, j, err)
			}
			out.Rules = append(out.Rules, rule)
		}
		ret = append(ret, out)
	}
	return ret, nil
}

func (r *Rule) convert() (xl.ConditionalRule, error) {
	switch strings.ToLower(r.Type) {
	case "color_scale":
		if err := checkColors(r.Min, r.Max); err != nil {
			return nil, err
		}
		return xl.ColorScale{Min: r.Min, Max: r.Max}, nil
	case "three_color_scale":
		if err := checkColors(r.Min, r.Mid, r.Max); err != nil {
			return nil, err
		}
		return xl.ThreeColorScale{Min: r.Min, Mid: r.Mid, Max: r.Max}, nil
	case "data_bar":
		if err := checkColors(r.Color); err != nil {
			return nil, err
		}
		return xl.DataBar{Color: r.Color}, nil
	case "icon_set":
		if r.Style == "" {
			return nil, errors.New("icon_set needs a style")
		}
		return xl.IconSet{Style: r.Style}, nil
	case "formula":
		if r.Formula == "" {
			return nil, errors.New("formula rule needs a formula")
		}
		if err := checkOptionalColors(r.BgColor, r.FontColor); err != nil {
			return nil, err
		}
		return xl.FormulaRule{Formula: r.Formula, BgColor: r.BgColor, FontColor: r.FontColor, Bold: r.Bold}, nil
	case "cell_value":
		if r.Operator == "" || r.Value == "" {
			return nil, errors.New("cell_value rule needs an operator and a value")
		}
		if err := checkOptionalColors(r.BgColor); err != nil {
			return nil, err
		}
		return xl.CellValue{Operator: r.Operator, Value: r.Value, BgColor: r.BgColor}, nil
	}
	return nil, fmt.Errorf("unknown rule type %q", r.Type)
}

func (f *File) SparklineGroups() ([]xl.SparklineGroup, error) {
	var ret []xl.SparklineGroup
	for i, g := range f.Sparklines {
		out := xl.DefaultSparklineGroup()
		switch strings.ToLower(g.Type) {
		case "", "line":
		case "column":
			out.Type = xl.SparklineColumn
		case "win_loss", "winloss", "stacked":
			out.Type = xl.SparklineWinLoss
		default:
			return nil, fmt.Errorf("sparklines[%d]: unknown type %q", i, g.Type)
		}
		if g.Color != "" {
			if _, err := xl.ParseHexColor(g.Color); err != nil {
				return nil, fmt.Errorf("sparklines[%d]: %w", i, err)
			}
			out.Color = g.Color
		}
		out.ShowMarkers = g.Markers
		for j, sp := range g.Items {
			if sp.Location == "" || sp.Range == "" {
				return nil, fmt.Errorf("sparklines[%d].items[%d]: needs a location and a range", i, j)
			}
			out.Sparklines = append(out.Sparklines, xl.Sparkline{Location: sp.Location, DataRange: sp.Range})
		}
		ret = append(ret, out)
	}
	return ret, nil
}

// Widths returns the configured column widths keyed by 0-based column.
func (f *File) Widths() (map[int]float64, error) {
	ret := make(map[int]float64, len(f.ColumnWidths))
	for k, w := range f.ColumnWidths {
		col, err := columnIndex(k)
		if err != nil {
			return nil, fmt.Errorf("column_widths.%s: %w", k, err)
		}
		if w <= 0 || w > 255 {
			return nil, fmt.Errorf("column_widths.%s: width %v out of range", k, w)
		}
		ret[col] = w
	}
	return ret, nil
}

// columnIndex converts column letters to a 0-based index.
func columnIndex(letters string) (int, error) {
	n, err := xl.ColumnLettersAsNumber(strings.TrimSpace(letters))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

func checkColors(colors ...string) error {
	for _, c := range colors {
		if _, err := xl.ParseHexColor(c); err != nil {
			return err
		}
	}
	return nil
}

func checkOptionalColors(colors ...string) error {
	for _, c := range colors {
		if c == "" {
			continue
		}
		if _, err := xl.ParseHexColor(c); err != nil {
			return err
		}
	}
	return nil
}
