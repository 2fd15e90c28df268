package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adnsv/go-xlw/xl"
)

const sample = `
sheet: Sales
freeze_header: false
autofit: true
column_widths:
  A: 14
  C: 30.5
chart:
  type: line
  title: Revenue
  category: A
  values: [B, C]
  colors: ["#FF0000"]
  width: 800
  legend: false
conditional_formats:
  - range: B2:B100
    rules:
      - type: color_scale
        min: F8696B
        max: 63BE7B
      - type: cell_value
        operator: between
        value: "10,20"
        bg_color: C6EFCE
sparklines:
  - type: column
    color: 70AD47
    items:
      - location: E2
        range: B2:D2
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if f.Sheet != "Sales" || !f.AutoFit {
		t.Errorf("sheet = %q autofit = %v", f.Sheet, f.AutoFit)
	}
	if f.FreezeHeader == nil || *f.FreezeHeader {
		t.Error("freeze_header should be set to false")
	}
	if f.AutoFilter != nil {
		t.Error("auto_filter should be unset")
	}

	cfg, err := f.ChartConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Type != xl.ChartLine || cfg.Title != "Revenue" {
		t.Errorf("chart = %+v", cfg)
	}
	if len(cfg.ValueColumns) != 2 || cfg.ValueColumns[0] != 1 || cfg.ValueColumns[1] != 2 {
		t.Errorf("value columns = %v", cfg.ValueColumns)
	}
	if cfg.Width != 800 || cfg.Height != 400 {
		t.Errorf("size = %dx%d, want 800x400", cfg.Width, cfg.Height)
	}
	if cfg.ShowLegend {
		t.Error("legend should be off")
	}

	formats, err := f.Formats()
	if err != nil {
		t.Fatal(err)
	}
	if len(formats) != 1 || len(formats[0].Rules) != 2 {
		t.Fatalf("formats = %+v", formats)
	}
	if _, ok := formats[0].Rules[0].(xl.ColorScale); !ok {
		t.Errorf("first rule is %T", formats[0].Rules[0])
	}
	if cv, ok := formats[0].Rules[1].(xl.CellValue); !ok || cv.Operator != "between" {
		t.Errorf("second rule is %#v", formats[0].Rules[1])
	}

	groups, err := f.SparklineGroups()
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 || groups[0].Type != xl.SparklineColumn || groups[0].Sparklines[0].DataRange != "B2:D2" {
		t.Errorf("sparklines = %+v", groups)
	}

	widths, err := f.Widths()
	if err != nil {
		t.Fatal(err)
	}
	if widths[0] != 14 || widths[2] != 30.5 || len(widths) != 2 {
		t.Errorf("widths = %v", widths)
	}
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := f.ChartConfig()
	if err != nil || cfg != nil {
		t.Errorf("ChartConfig = %v, %v; want nil, nil", cfg, err)
	}
}

func TestParseUnknownKey(t *testing.T) {
	if _, err := Parse([]byte("shet: typo\n")); err == nil {
		t.Error("unknown key was accepted")
	}
}

func TestInvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		conv func(*File) error
		want string
	}{
		{"chart type", "chart: {type: radar}", func(f *File) error { _, err := f.ChartConfig(); return err }, "chart.type"},
		{"chart column", "chart: {values: [B, '1']}", func(f *File) error { _, err := f.ChartConfig(); return err }, "chart.values[1]"},
		{"chart color", "chart: {colors: [blue]}", func(f *File) error { _, err := f.ChartConfig(); return err }, "chart.colors[0]"},
		{"rule type", "conditional_formats: [{range: 'A1:A2', rules: [{type: sparkle}]}]", func(f *File) error { _, err := f.Formats(); return err }, "conditional_formats[0].rules[0]"},
		{"rule color", "conditional_formats: [{range: 'A1:A2', rules: [{type: data_bar, color: nope}]}]", func(f *File) error { _, err := f.Formats(); return err }, "rules[0]"},
		{"missing range", "conditional_formats: [{rules: []}]", func(f *File) error { _, err := f.Formats(); return err }, "missing range"},
		{"sparkline type", "sparklines: [{type: pie}]", func(f *File) error { _, err := f.SparklineGroups(); return err }, "sparklines[0]"},
		{"sparkline item", "sparklines: [{items: [{location: E2}]}]", func(f *File) error { _, err := f.SparklineGroups(); return err }, "items[0]"},
		{"width", "column_widths: {A: 300}", func(f *File) error { _, err := f.Widths(); return err }, "column_widths.A"},
		{"width column", "column_widths: {'A1': 10}", func(f *File) error { _, err := f.Widths(); return err }, "column_widths.A1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			err = tt.conv(f)
			if err == nil {
				t.Fatal("conversion succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not name %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "features.yaml")
	if err := os.WriteFile(p, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if f.Chart == nil {
		t.Error("chart section was not loaded")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("sheet: [unclosed"), 0o644)
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("Load error %v does not name the file", err)
	}
}
