package xl

import (
	"strings"
	"testing"
)

func TestColumnNumberAsLetters(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
		{16384, "XFD"},
	}
	for _, tt := range tests {
		if got := ColumnNumberAsLetters(tt.n); got != tt.want {
			t.Errorf("ColumnNumberAsLetters(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestColumnLettersRoundTrip(t *testing.T) {
	for n := 1; n <= 703; n++ {
		s := ColumnNumberAsLetters(n)
		got, err := ColumnLettersAsNumber(s)
		if err != nil {
			t.Fatalf("ColumnLettersAsNumber(%q): %v", s, err)
		}
		if got != n {
			t.Fatalf("round trip %d -> %q -> %d", n, s, got)
		}
	}
}

func TestColumnLettersAsNumberInvalid(t *testing.T) {
	for _, s := range []string{"", "A1", "-", "Ä", "XFE", "AAAA", strings.Repeat("Z", 40)} {
		if _, err := ColumnLettersAsNumber(s); err == nil {
			t.Errorf("ColumnLettersAsNumber(%q) succeeded", s)
		}
	}
	if n, err := ColumnLettersAsNumber("ab"); err != nil || n != 28 {
		t.Errorf("ColumnLettersAsNumber(ab) = %d, %v", n, err)
	}
	if n, err := ColumnLettersAsNumber("XFD"); err != nil || n != MaxColumns {
		t.Errorf("ColumnLettersAsNumber(XFD) = %d, %v", n, err)
	}
}

func TestParseCellRef(t *testing.T) {
	tests := []struct {
		ref      string
		col, row int
		wantErr  bool
	}{
		{"A1", 1, 1, false},
		{"$B$7", 2, 7, false},
		{"aa10", 27, 10, false},
		{"E", 0, 0, true},
		{"A0", 0, 0, true},
		{"1A", 0, 0, true},
		{"XFE1", 0, 0, true},
	}
	for _, tt := range tests {
		col, row, err := ParseCellRef(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCellRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (col != tt.col || row != tt.row) {
			t.Errorf("ParseCellRef(%q) = %d,%d want %d,%d", tt.ref, col, row, tt.col, tt.row)
		}
	}
}

func TestCellCoordAsString(t *testing.T) {
	if got := CellCoordAsString(28, 5); got != "AB5" {
		t.Errorf("CellCoordAsString(28, 5) = %q", got)
	}
	if got := absColumnRange(3, 2, 11); got != "$C$2:$C$11" {
		t.Errorf("absColumnRange = %q", got)
	}
}

func TestQuoteSheetName(t *testing.T) {
	tests := map[string]string{
		"Sheet1":     "'Sheet1'",
		"Q1 Results": "'Q1 Results'",
		"Bob's":      "'Bob''s'",
	}
	for in, want := range tests {
		if got := quoteSheetName(in); got != want {
			t.Errorf("quoteSheetName(%q) = %q, want %q", in, got, want)
		}
	}
}
