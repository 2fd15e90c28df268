package xl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/adnsv/srw/xml"
)

func TestConditionalFormattingXMLEmpty(t *testing.T) {
	s, dxfs := ConditionalFormattingXML(nil, 3)
	if s != "" || len(dxfs) != 0 {
		t.Errorf("got %q and %d dxfs, want nothing", s, len(dxfs))
	}
}

func TestConditionalFormattingDxfStart(t *testing.T) {
	formats := []ConditionalFormat{{
		Range: "A1:A10",
		Rules: []ConditionalRule{FormulaRule{Formula: "=A1>5", BgColor: "FFC7CE", Bold: true}},
	}}
	s, dxfs := ConditionalFormattingXML(formats, 5)
	if !strings.Contains(s, `dxfId="5"`) {
		t.Errorf("missing dxfId=\"5\" in %s", s)
	}
	if !strings.Contains(s, `sqref="A1:A10"`) {
		t.Errorf("missing sqref in %s", s)
	}
	if !strings.Contains(s, "<formula>A1&gt;5</formula>") {
		t.Errorf("formula not stripped and escaped in %s", s)
	}
	if len(dxfs) != 1 {
		t.Fatalf("got %d dxfs, want 1", len(dxfs))
	}
	if want := (Dxf{Bold: true, BgColor: "FFC7CE"}); dxfs[0] != want {
		t.Errorf("dxf = %+v, want %+v", dxfs[0], want)
	}
}

func TestPlanConditionalFormats(t *testing.T) {
	formats := []ConditionalFormat{
		{Range: "B2:B10", Rules: []ConditionalRule{
			ColorScale{Min: "F8696B", Max: "63BE7B"},
			CellValue{Operator: "greaterThan", Value: "100", BgColor: "C6EFCE"},
		}},
		{Range: "C2:C10", Rules: []ConditionalRule{
			FormulaRule{Formula: "C2<0", FontColor: "9C0006"},
			DataBar{Color: "638EC6"},
		}},
	}
	blocks, dxfs, next := planConditionalFormats(formats, 2)
	if next != 4 {
		t.Errorf("next dxf id = %d, want 4", next)
	}
	if len(dxfs) != 2 {
		t.Fatalf("got %d dxfs, want 2", len(dxfs))
	}
	if dxfs[0].BgColor != "C6EFCE" || dxfs[1].FontColor != "9C0006" {
		t.Errorf("dxfs out of order: %+v", dxfs)
	}

	var got []int
	var ids []int
	for _, b := range blocks {
		for _, r := range b.rules {
			got = append(got, r.priority)
			ids = append(ids, r.dxfID)
		}
	}
	wantPriorities := []int{3, 4, 5, 6}
	wantIDs := []int{-1, 2, 3, -1}
	for i := range wantPriorities {
		if got[i] != wantPriorities[i] {
			t.Errorf("priority[%d] = %d, want %d", i, got[i], wantPriorities[i])
		}
		if ids[i] != wantIDs[i] {
			t.Errorf("dxfID[%d] = %d, want %d", i, ids[i], wantIDs[i])
		}
	}
}

func TestConditionalFormattingRules(t *testing.T) {
	tests := []struct {
		name string
		rule ConditionalRule
		want []string
	}{
		{"color scale", ColorScale{Min: "F8696B", Max: "63BE7B"},
			[]string{`type="colorScale"`, `type="min"`, `type="max"`, `rgb="FFF8696B"`, `rgb="FF63BE7B"`}},
		{"three color scale", ThreeColorScale{Min: "F8696B", Mid: "FFEB84", Max: "63BE7B"},
			[]string{`type="percentile"`, `val="50"`, `rgb="FFFFEB84"`}},
		{"data bar", DataBar{Color: "638EC6"},
			[]string{`type="dataBar"`, `<dataBar`, `rgb="FF638EC6"`}},
		{"icon set", IconSet{Style: "3TrafficLights1"},
			[]string{`type="iconSet"`, `iconSet="3TrafficLights1"`, `val="0"`, `val="33"`, `val="67"`}},
		{"cell value", CellValue{Operator: "lessThan", Value: "0", BgColor: "FFC7CE"},
			[]string{`type="cellIs"`, `operator="lessThan"`, `dxfId="0"`, "<formula>0</formula>"}},
		{"between", CellValue{Operator: "between", Value: "10, 20", BgColor: "FFC7CE"},
			[]string{`operator="between"`, "<formula>10</formula>", "<formula>20</formula>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := ConditionalFormattingXML([]ConditionalFormat{{Range: "A1:A5", Rules: []ConditionalRule{tt.rule}}}, 0)
			for _, w := range tt.want {
				if !strings.Contains(s, w) {
					t.Errorf("missing %s in %s", w, s)
				}
			}
			if !strings.Contains(s, `priority="1"`) {
				t.Errorf("missing priority=\"1\" in %s", s)
			}
		})
	}
}

func TestIconThresholds(t *testing.T) {
	tests := []struct {
		style string
		want  []int
	}{
		{"3Arrows", []int{0, 33, 67}},
		{"4Rating", []int{0, 25, 50, 75}},
		{"5Quarters", []int{0, 20, 40, 60, 80}},
		{"", []int{0, 33, 67}},
	}
	for _, tt := range tests {
		got := iconThresholds(tt.style)
		if len(got) != len(tt.want) {
			t.Errorf("iconThresholds(%q) = %v, want %v", tt.style, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("iconThresholds(%q) = %v, want %v", tt.style, got, tt.want)
				break
			}
		}
	}
}

func TestDxfCombinesFont(t *testing.T) {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{})
	writeDxf(x, Dxf{Bold: true, FontColor: "9C0006", BgColor: "FFC7CE"})
	s := bb.String()
	if strings.Count(s, "<font") != 1 {
		t.Errorf("bold and font color should share one <font>: %s", s)
	}
	for _, w := range []string{"<b", `<color rgb="FF9C0006"`, `<bgColor rgb="FFFFC7CE"`} {
		if !strings.Contains(s, w) {
			t.Errorf("missing %s in %s", w, s)
		}
	}

	styles := string(stylesPart([]Dxf{{BgColor: "FFC7CE"}, {Bold: true}}))
	if !strings.Contains(styles, `<dxfs count="2"`) {
		t.Errorf("styles.xml does not list both dxfs: %s", styles)
	}
}
