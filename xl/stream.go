package xl

import "io"

// StreamWriter fills a single-sheet workbook row by row. Rows are kept in
// memory until Finish, so memory grows with the row count.
type StreamWriter struct {
	wb    *Workbook
	path  string
	count int
}

// NewStreamWriter starts a workbook with one sheet. Write it out with
// FinishTo.
func NewStreamWriter(sheetName string, opts WriteOptions) (*StreamWriter, error) {
	wb := NewWorkbookWithOptions(opts)
	if _, err := wb.AddSheet(sheetName); err != nil {
		return nil, err
	}
	return &StreamWriter{wb: wb}, nil
}

// CreateStreamFile is NewStreamWriter bound to the file Finish writes.
func CreateStreamFile(path, sheetName string, opts WriteOptions) (*StreamWriter, error) {
	sw, err := NewStreamWriter(sheetName, opts)
	if err != nil {
		return nil, err
	}
	sw.path = path
	return sw, nil
}

// WriteRow appends values, classified the same way as Workbook.AddData.
func (sw *StreamWriter) WriteRow(values []string) {
	sw.WriteRowData(ParseRow(values))
}

// WriteRowData appends a row as is.
func (sw *StreamWriter) WriteRowData(r Row) {
	sw.wb.AddRow(r)
	sw.count++
}

func (sw *StreamWriter) RowsWritten() int {
	return sw.count
}

// Workbook exposes the underlying workbook, e.g. to set column widths or
// a chart before finishing.
func (sw *StreamWriter) Workbook() *Workbook {
	return sw.wb
}

// Finish writes the workbook to the path given to CreateStreamFile.
func (sw *StreamWriter) Finish() error {
	if sw.path == "" {
		return errNoStreamPath
	}
	return sw.wb.SaveFile(sw.path)
}

func (sw *StreamWriter) FinishTo(out io.Writer) error {
	return sw.wb.Save(out)
}
