package xl

import (
	"bytes"
	"strings"

	"github.com/adnsv/srw/xml"
)

// ConditionalFormat applies an ordered list of rules to an A1 range such as
// "B2:B10".
type ConditionalFormat struct {
	Range string
	Rules []ConditionalRule
}

// ConditionalRule is one of ColorScale, ThreeColorScale, DataBar, IconSet,
// FormulaRule or CellValue.
type ConditionalRule interface {
	// needsDxf reports whether the rule references a differential format.
	needsDxf() bool
}

// ColorScale shades the range from Min (lowest value) to Max (highest).
type ColorScale struct {
	Min, Max string
}

// ThreeColorScale adds a midpoint color at the 50th percentile.
type ThreeColorScale struct {
	Min, Mid, Max string
}

type DataBar struct {
	Color string
}

// IconSet uses one of the built-in icon sets, e.g. "3TrafficLights1",
// "4Arrows" or "5Quarters".
type IconSet struct {
	Style string
}

// FormulaRule formats cells for which Formula evaluates to true.
// Empty colors leave that property unchanged.
type FormulaRule struct {
	Formula   string
	BgColor   string
	FontColor string
	Bold      bool
}

// CellValue compares each cell against Value with Operator (greaterThan,
// lessThan, equal, between, ...). For between and notBetween, Value holds
// both bounds separated by a comma.
type CellValue struct {
	Operator string
	Value    string
	BgColor  string
}

func (ColorScale) needsDxf() bool      { return false }
func (ThreeColorScale) needsDxf() bool { return false }
func (DataBar) needsDxf() bool         { return false }
func (IconSet) needsDxf() bool         { return false }
func (FormulaRule) needsDxf() bool     { return true }
func (CellValue) needsDxf() bool       { return true }

// Dxf is a differential format: the style delta a rule applies.
type Dxf struct {
	Bold      bool
	FontColor string
	BgColor   string
}

type cfRule struct {
	rule     ConditionalRule
	priority int
	dxfID    int // -1 when the rule has no differential format
}

type cfBlock struct {
	sqref string
	rules []cfRule
}

// planConditionalFormats assigns priorities and dxf ids. The dxf counter
// starts at dxfStart and advances once per FormulaRule or CellValue, in
// format then rule order; next is the first unused id. Priorities count
// every rule on the sheet.
func planConditionalFormats(formats []ConditionalFormat, dxfStart int) (blocks []cfBlock, dxfs []Dxf, next int) {
	dxfID := dxfStart
	n := 0
	for _, cf := range formats {
		b := cfBlock{sqref: cf.Range}
		for _, rule := range cf.Rules {
			r := cfRule{rule: rule, priority: dxfStart + n + 1, dxfID: -1}
			n++
			if rule.needsDxf() {
				r.dxfID = dxfID
				dxfs = append(dxfs, dxfFor(rule))
				dxfID++
			}
			b.rules = append(b.rules, r)
		}
		blocks = append(blocks, b)
	}
	return blocks, dxfs, dxfID
}

func dxfFor(rule ConditionalRule) Dxf {
	switch r := rule.(type) {
	case FormulaRule:
		return Dxf{Bold: r.Bold, FontColor: r.FontColor, BgColor: r.BgColor}
	case CellValue:
		return Dxf{BgColor: r.BgColor}
	}
	return Dxf{}
}

// ConditionalFormattingXML renders the <conditionalFormatting> blocks for
// formats and returns the differential formats they reference, numbered
// from dxfStart. The same input always yields the same output.
func ConditionalFormattingXML(formats []ConditionalFormat, dxfStart int) (string, []Dxf) {
	blocks, dxfs, _ := planConditionalFormats(formats, dxfStart)
	if len(blocks) == 0 {
		return "", dxfs
	}
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{})
	writeConditionalFormatting(x, blocks)
	return bb.String(), dxfs
}

func writeConditionalFormatting(x *xml.Writer, blocks []cfBlock) {
	for _, b := range blocks {
		x.OTag("+conditionalFormatting").Attr("sqref", b.sqref)
		for _, r := range b.rules {
			writeCfRule(x, r)
		}
		x.CTag()
	}
}

func writeCfRule(x *xml.Writer, r cfRule) {
	x.OTag("+cfRule")
	switch rule := r.rule.(type) {
	case ColorScale:
		x.Attr("type", "colorScale").Attr("priority", r.priority)
		x.OTag("colorScale")
		x.OTag("cfvo").Attr("type", "min").CTag()
		x.OTag("cfvo").Attr("type", "max").CTag()
		x.OTag("color").Attr("rgb", argb(rule.Min)).CTag()
		x.OTag("color").Attr("rgb", argb(rule.Max)).CTag()
		x.CTag()

	case ThreeColorScale:
		x.Attr("type", "colorScale").Attr("priority", r.priority)
		x.OTag("colorScale")
		x.OTag("cfvo").Attr("type", "min").CTag()
		x.OTag("cfvo").Attr("type", "percentile").Attr("val", 50).CTag()
		x.OTag("cfvo").Attr("type", "max").CTag()
		x.OTag("color").Attr("rgb", argb(rule.Min)).CTag()
		x.OTag("color").Attr("rgb", argb(rule.Mid)).CTag()
		x.OTag("color").Attr("rgb", argb(rule.Max)).CTag()
		x.CTag()

	case DataBar:
		x.Attr("type", "dataBar").Attr("priority", r.priority)
		x.OTag("dataBar")
		x.OTag("cfvo").Attr("type", "min").CTag()
		x.OTag("cfvo").Attr("type", "max").CTag()
		x.OTag("color").Attr("rgb", argb(rule.Color)).CTag()
		x.CTag()

	case IconSet:
		x.Attr("type", "iconSet").Attr("priority", r.priority)
		x.OTag("iconSet").Attr("iconSet", rule.Style)
		for _, pct := range iconThresholds(rule.Style) {
			x.OTag("cfvo").Attr("type", "percent").Attr("val", pct).CTag()
		}
		x.CTag()

	case FormulaRule:
		x.Attr("type", "expression").Attr("dxfId", r.dxfID).Attr("priority", r.priority)
		x.OTag("formula").Write(xmlSafe(strings.TrimPrefix(rule.Formula, "="))).CTag()

	case CellValue:
		x.Attr("type", "cellIs").Attr("dxfId", r.dxfID).Attr("priority", r.priority)
		x.Attr("operator", rule.Operator)
		for _, v := range cellValueOperands(rule) {
			x.OTag("formula").Write(xmlSafe(v)).CTag()
		}

	default:
		panic("unknown conditional rule")
	}
	x.CTag() // cfRule
}

// iconThresholds spreads one percent threshold per icon, starting at 0.
func iconThresholds(style string) []int {
	icons := 3
	if style != "" && style[0] >= '3' && style[0] <= '5' {
		icons = int(style[0] - '0')
	}
	ret := make([]int, icons)
	for i := range ret {
		ret[i] = (i*100 + icons/2) / icons
	}
	return ret
}

func cellValueOperands(r CellValue) []string {
	if r.Operator == "between" || r.Operator == "notBetween" {
		if lo, hi, ok := strings.Cut(r.Value, ","); ok {
			return []string{strings.TrimSpace(lo), strings.TrimSpace(hi)}
		}
	}
	return []string{r.Value}
}

func writeDxf(x *xml.Writer, d Dxf) {
	x.OTag("+dxf")
	if d.Bold || d.FontColor != "" {
		x.OTag("font")
		if d.Bold {
			x.OTag("b").CTag()
		}
		if d.FontColor != "" {
			x.OTag("color").Attr("rgb", argb(d.FontColor)).CTag()
		}
		x.CTag()
	}
	if d.BgColor != "" {
		x.OTag("fill")
		x.OTag("patternFill")
		x.OTag("bgColor").Attr("rgb", argb(d.BgColor)).CTag()
		x.CTag()
		x.CTag()
	}
	x.CTag()
}
