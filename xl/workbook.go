package xl

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Workbook is an in-memory spreadsheet. Rows and per-sheet extras are
// always appended to the most recently added sheet; before the first
// AddSheet those calls are silently dropped. The zero value is an empty
// workbook with zero WriteOptions.
//
// Sheets may be inspected and reordered; sheets appended to it directly
// bypass AddSheet, so their names are checked again by Save.
type Workbook struct {
	Sheets  []*Sheet
	Options WriteOptions
}

func NewWorkbook() *Workbook {
	return NewWorkbookWithOptions(DefaultWriteOptions())
}

func NewWorkbookWithOptions(opts WriteOptions) *Workbook {
	return &Workbook{Options: opts}
}

// AddSheet appends a new empty sheet and makes it the current one. The
// name is stored as given.
func (wb *Workbook) AddSheet(name string) (*Sheet, error) {
	if err := validateSheetName(name); err != nil {
		return nil, err
	}
	sheet := &Sheet{Name: name}
	wb.Sheets = append(wb.Sheets, sheet)
	return sheet, nil
}

func validateSheetName(s string) error {
	if utf8.RuneCountInString(s) > 31 {
		return &SheetNameError{Name: s, Reason: "the sheet name is longer than 31 characters"}
	}
	if strings.ContainsAny(s, "\\/?*[]") {
		return &SheetNameError{Name: s, Reason: "the sheet name can not contain any of the characters \\/?*[]"}
	}
	return nil
}

// Sheet returns the first sheet with exactly the given name, or nil.
func (wb *Workbook) Sheet(name string) *Sheet {
	for _, sh := range wb.Sheets {
		if sh.Name == name {
			return sh
		}
	}
	return nil
}

func (wb *Workbook) current() *Sheet {
	if len(wb.Sheets) == 0 {
		return nil
	}
	return wb.Sheets[len(wb.Sheets)-1]
}

func (wb *Workbook) AddRow(r Row) {
	if sh := wb.current(); sh != nil {
		sh.AddRow(r)
	}
}

// AddData appends one row per record, classifying each value with
// ParseCell.
func (wb *Workbook) AddData(data [][]string) {
	sh := wb.current()
	if sh == nil {
		return
	}
	for _, rec := range data {
		sh.AddRow(ParseRow(rec))
	}
}

func (wb *Workbook) SetColumnWidth(col int, w float64) {
	if sh := wb.current(); sh != nil {
		sh.SetColumnWidth(col, w)
	}
}

func (wb *Workbook) AutoFitColumns() {
	if sh := wb.current(); sh != nil {
		sh.AutoFitColumns()
	}
}

func (wb *Workbook) AddConditionalFormat(cf ConditionalFormat) {
	if sh := wb.current(); sh != nil {
		sh.ConditionalFormats = append(sh.ConditionalFormats, cf)
	}
}

func (wb *Workbook) AddSparklineGroup(g SparklineGroup) {
	if sh := wb.current(); sh != nil {
		sh.SparklineGroups = append(sh.SparklineGroups, g)
	}
}

// SetChart attaches a chart to the current sheet, replacing any previous
// one. data is the snapshot (header row first) the chart caches are built
// from; it is usually the same records passed to AddData.
func (wb *Workbook) SetChart(cfg ChartConfig, data [][]string) {
	if sh := wb.current(); sh != nil {
		sh.Chart = &SheetChart{Config: cfg, Data: data}
	}
}

// Save writes the workbook as an .xlsx package to out.
func (wb *Workbook) Save(out io.Writer) error {
	zs := NewZipStorage(out)
	if err := NewWriter(zs).Write(wb); err != nil {
		zs.Close()
		return err
	}
	return zs.Close()
}

// SaveFile writes the workbook to the named file, replacing it.
func (wb *Workbook) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(f, 64*1024)
	if err := wb.Save(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveDir writes every package part as a plain file under dir, which is
// handy for inspecting the generated XML.
func (wb *Workbook) SaveDir(dir string) error {
	return NewWriter(NewDirStorage(dir)).Write(wb)
}
