package xl

import (
	"math"
	"strconv"
	"strings"
)

// CellType is the type of cell value type.
type CellType int

// Cell value types enumeration. The set is closed: every emission site
// switches over all four and panics on anything else.
const (
	CellTypeEmpty CellType = iota
	CellTypeString
	CellTypeNumber
	CellTypeFormula
)

func (t CellType) String() string {
	switch t {
	case CellTypeEmpty:
		return "empty"
	case CellTypeString:
		return "string"
	case CellTypeNumber:
		return "number"
	case CellTypeFormula:
		return "formula"
	}
	return "CellType(" + strconv.Itoa(int(t)) + ")"
}

// Cell holds a single value. The zero Cell is empty.
type Cell struct {
	typ CellType
	s   string  // text for strings and formulas
	n   float64 // number
}

func StringCell(s string) Cell { return Cell{typ: CellTypeString, s: s} }
func NumberCell(v float64) Cell { return Cell{typ: CellTypeNumber, n: v} }
func FormulaCell(f string) Cell { return Cell{typ: CellTypeFormula, s: f} }
func EmptyCell() Cell { return Cell{} }
func (c Cell) Type() CellType { return c.typ }
func (c Cell) IsEmpty() bool { return c.typ == CellTypeEmpty }
func (c Cell) Number() float64 { return c.n }
func (c Cell) Text() string { return c.s }

// Formula returns the formula text without a leading '='.
func (c Cell) Formula() string {
	return strings.TrimPrefix(c.s, "=")
}

// ParseCell classifies a raw text value: a finite number becomes a
// Number cell, the empty string an Empty cell, anything else a String cell.
func ParseCell(s string) Cell {
	if s == "" {
		return EmptyCell()
	}
	if v, ok := parseFiniteNumber(s); ok {
		return NumberCell(v)
	}
	return StringCell(s)
}

func parseFiniteNumber(s string) (float64, bool) {
	// strconv accepts hex floats and underscores after a base prefix;
	// those are text in a spreadsheet.
	t := strings.TrimLeft(s, "+-")
	if len(t) > 1 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X') {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// formatNumber renders v the way it is stored in a <v> element.
func formatNumber(v float64) string {
	a := math.Abs(v)
	if a != 0 && (a < 1e-5 || a >= 1e15) {
		return strconv.FormatFloat(v, 'E', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
