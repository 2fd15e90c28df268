package xl

import "testing"

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"4472C4", 0x4472C4, false},
		{"#ffffff", 0xFFFFFF, false},
		{"000000", 0, false},
		{"FFF", 0, true},
		{"GG0000", 0, true},
		{"FF4472C4", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseHexColor(%q) = %06X, %v", tt.in, got, err)
		}
	}
}

func TestColorForms(t *testing.T) {
	if got := argb("#4472c4"); got != "FF4472C4" {
		t.Errorf("argb = %q", got)
	}
	if got := argb("804472C4"); got != "804472C4" {
		t.Errorf("argb kept alpha wrong: %q", got)
	}
	if got := rgb("FF70AD47"); got != "70AD47" {
		t.Errorf("rgb = %q", got)
	}
	if got := rgb("70ad47"); got != "70AD47" {
		t.Errorf("rgb = %q", got)
	}
}

func TestStyleDefaults(t *testing.T) {
	var s CellStyle
	if !s.IsDefault() {
		t.Error("zero CellStyle is not default")
	}
	h := HeaderStyle()
	if h.IsDefault() || !h.Bold || h.BgColor != "4472C4" {
		t.Errorf("HeaderStyle = %+v", h)
	}
	opts := DefaultWriteOptions()
	if !opts.FreezeHeader || !opts.AutoFilter || !opts.StyleHeader {
		t.Errorf("DefaultWriteOptions = %+v", opts)
	}
}

func TestRowBuilders(t *testing.T) {
	var r Row
	r.AddString("a")
	r.AddNumber(1.5)
	r.AddFormula("=A1")
	r.AddEmpty()
	want := []CellType{CellTypeString, CellTypeNumber, CellTypeFormula, CellTypeEmpty}
	if len(r.Cells) != len(want) {
		t.Fatalf("got %d cells", len(r.Cells))
	}
	for i, typ := range want {
		if r.Cells[i].Type() != typ {
			t.Errorf("cell %d type = %v, want %v", i, r.Cells[i].Type(), typ)
		}
	}
}
