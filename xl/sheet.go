package xl

import "golang.org/x/text/width"

// DefaultColumnWidth is the width of a column that was never widened.
const DefaultColumnWidth = 8.43

type Sheet struct {
	Name               string
	Rows               []Row
	ColumnWidths       []float64 // 0-based, padded with DefaultColumnWidth
	ConditionalFormats []ConditionalFormat
	SparklineGroups    []SparklineGroup
	Chart              *SheetChart
}

// SheetChart is a chart bound to its sheet together with the data the
// chart caches were built from (header row first).
type SheetChart struct {
	Config ChartConfig
	Data   [][]string
}

func (s *Sheet) AddRow(r Row) {
	s.Rows = append(s.Rows, r)
}

// SetColumnWidth sets the width of the 0-based column col, padding any
// columns before it with DefaultColumnWidth.
func (s *Sheet) SetColumnWidth(col int, w float64) {
	if col < 0 {
		return
	}
	for len(s.ColumnWidths) <= col {
		s.ColumnWidths = append(s.ColumnWidths, DefaultColumnWidth)
	}
	s.ColumnWidths[col] = w
}

// extent returns the number of rows and the widest row.
func (s *Sheet) extent() (rows, cols int) {
	for _, r := range s.Rows {
		cols = max(cols, len(r.Cells))
	}
	return len(s.Rows), cols
}

// AutoFitColumns widens every column to its longest value plus two
// characters of padding. Wide and fullwidth runes count as two characters.
func (s *Sheet) AutoFitColumns() {
	var widths []int
	for _, r := range s.Rows {
		for i, c := range r.Cells {
			for len(widths) <= i {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], displayWidth(cellDisplayText(c)))
		}
	}
	for i, w := range widths {
		if w == 0 {
			continue
		}
		s.SetColumnWidth(i, float64(min(w+2, 255)))
	}
}

func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func cellDisplayText(c Cell) string {
	switch c.Type() {
	case CellTypeEmpty:
		return ""
	case CellTypeString:
		return c.Text()
	case CellTypeNumber:
		return formatNumber(c.Number())
	case CellTypeFormula:
		return ""
	}
	panic("unknown cell type " + c.Type().String())
}
