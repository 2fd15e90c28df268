package xl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Row is an ordered list of cells starting at column A.
type Row struct {
	Cells []Cell
}

func NewRow(cells ...Cell) Row {
	return Row{Cells: cells}
}

func (r *Row) AddString(s string)  { r.Cells = append(r.Cells, StringCell(s)) }
func (r *Row) AddNumber(v float64) { r.Cells = append(r.Cells, NumberCell(v)) }
func (r *Row) AddFormula(f string) { r.Cells = append(r.Cells, FormulaCell(f)) }
func (r *Row) AddEmpty()           { r.Cells = append(r.Cells, EmptyCell()) }

// ParseRow classifies every value with ParseCell.
func ParseRow(values []string) Row {
	r := Row{Cells: make([]Cell, 0, len(values))}
	for _, v := range values {
		r.Cells = append(r.Cells, ParseCell(v))
	}
	return r
}

// ColumnNumberAsLetters converts a 1-based column number to its letters:
// 1 is "A", 26 is "Z", 27 is "AA", 703 is "AAA".
func ColumnNumberAsLetters(n int) string {
	if n < 1 {
		panic("invalid column number")
	}
	var s string
	for n > 0 {
		s = string(rune((n-1)%26+65)) + s
		n = (n - 1) / 26
	}
	return s
}

// MaxColumns is the number of columns in a worksheet, "XFD" is the last.
const MaxColumns = 16384

// ColumnLettersAsNumber is the inverse of ColumnNumberAsLetters.
// Letters are case-insensitive; columns past MaxColumns are rejected.
func ColumnLettersAsNumber(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty column name")
	}
	n := 0
	for _, c := range strings.ToUpper(s) {
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("invalid column name %q", s)
		}
		n = n*26 + int(c-'A'+1)
		if n > MaxColumns {
			return 0, fmt.Errorf("column %q is past the last column XFD", s)
		}
	}
	return n, nil
}

func CellCoordAsString(col, row int) string {
	if row < 0 {
		panic("invalid row number")
	}
	return ColumnNumberAsLetters(col) + strconv.Itoa(row)
}

var cellRefRe = regexp.MustCompile(`^\$?([A-Za-z]+)\$?(\d+)$`)

// ParseCellRef parses a reference like "B7" or "$B$7" into 1-based
// column and row numbers.
func ParseCellRef(ref string) (col, row int, err error) {
	m := cellRefRe.FindStringSubmatch(ref)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	col, err = ColumnLettersAsNumber(m[1])
	if err != nil {
		return 0, 0, err
	}
	row, err = strconv.Atoi(m[2])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("invalid row in cell reference %q", ref)
	}
	return col, row, nil
}

// absColumnRange renders "$C$first:$C$last" for a 1-based column.
func absColumnRange(col, first, last int) string {
	c := ColumnNumberAsLetters(col)
	return "$" + c + "$" + strconv.Itoa(first) + ":$" + c + "$" + strconv.Itoa(last)
}

// quoteSheetName renders a sheet name for use in a formula reference.
func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
