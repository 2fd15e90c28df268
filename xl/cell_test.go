package xl

import "testing"

func TestParseCell(t *testing.T) {
	tests := []struct {
		in   string
		typ  CellType
		num  float64
		text string
	}{
		{"", CellTypeEmpty, 0, ""},
		{"42", CellTypeNumber, 42, ""},
		{"-3.5", CellTypeNumber, -3.5, ""},
		{"1e3", CellTypeNumber, 1000, ""},
		{"+7", CellTypeNumber, 7, ""},
		{"hello", CellTypeString, 0, "hello"},
		{"0x1F", CellTypeString, 0, "0x1F"},
		{"NaN", CellTypeString, 0, "NaN"},
		{"Inf", CellTypeString, 0, "Inf"},
		{"1e999", CellTypeString, 0, "1e999"},
		{" 12", CellTypeString, 0, " 12"},
		{"12 apples", CellTypeString, 0, "12 apples"},
		{"=B2*2", CellTypeString, 0, "=B2*2"},
	}
	for _, tt := range tests {
		c := ParseCell(tt.in)
		if c.Type() != tt.typ {
			t.Errorf("ParseCell(%q) type = %v, want %v", tt.in, c.Type(), tt.typ)
			continue
		}
		if tt.typ == CellTypeNumber && c.Number() != tt.num {
			t.Errorf("ParseCell(%q) = %v, want %v", tt.in, c.Number(), tt.num)
		}
		if tt.typ == CellTypeString && c.Text() != tt.text {
			t.Errorf("ParseCell(%q) text = %q, want %q", tt.in, c.Text(), tt.text)
		}
	}
}

func TestFormulaCell(t *testing.T) {
	for _, in := range []string{"=SUM(A1:A3)", "SUM(A1:A3)"} {
		c := FormulaCell(in)
		if c.Type() != CellTypeFormula {
			t.Fatalf("FormulaCell(%q) type = %v", in, c.Type())
		}
		if got := c.Formula(); got != "SUM(A1:A3)" {
			t.Errorf("FormulaCell(%q).Formula() = %q", in, got)
		}
	}
	if !EmptyCell().IsEmpty() {
		t.Error("EmptyCell is not empty")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-3.25, "-3.25"},
		{0.1, "0.1"},
		{123456789012, "123456789012"},
		{1e15, "1E+15"},
		{1e-7, "1E-07"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
