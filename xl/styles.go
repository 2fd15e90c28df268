package xl

import (
	"bytes"

	"github.com/adnsv/srw/xml"
)

// stylesPart generates xl/styles.xml. The cell formats are fixed:
//
//	xf 0  default
//	xf 1  header: bold, blue fill, thin border, centered
//	xf 2  centered
//
// dxfs lists the differential formats referenced by conditional formatting,
// in dxfId order.
func stylesPart(dxfs []Dxf) []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("styleSheet")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")

	x.OTag("+numFmts").Attr("count", 0).CTag()

	x.OTag("+fonts").Attr("count", 2)
	writeCalibri(x, false)
	writeCalibri(x, true)
	x.CTag()

	x.OTag("+fills").Attr("count", 3)
	x.OTag("+fill")
	x.OTag("patternFill").CTag()
	x.CTag()
	x.OTag("+fill")
	x.OTag("patternFill").Attr("patternType", "gray125").CTag()
	x.CTag()
	x.OTag("+fill")
	x.OTag("patternFill").Attr("patternType", "solid")
	x.OTag("fgColor").Attr("rgb", argb(HeaderStyle().BgColor)).CTag()
	x.OTag("bgColor").Attr("indexed", 64).CTag()
	x.CTag()
	x.CTag()
	x.CTag() // fills

	x.OTag("+borders").Attr("count", 2)
	x.OTag("+border")
	x.OTag("left").CTag()
	x.OTag("right").CTag()
	x.OTag("top").CTag()
	x.OTag("bottom").CTag()
	x.OTag("diagonal").CTag()
	x.CTag()
	x.OTag("+border")
	x.OTag("left").Attr("style", "thin")
	x.OTag("color").Attr("auto", 1).CTag()
	x.CTag()
	x.OTag("right").Attr("style", "thin")
	x.OTag("color").Attr("auto", 1).CTag()
	x.CTag()
	x.OTag("top").Attr("style", "thin")
	x.OTag("color").Attr("auto", 1).CTag()
	x.CTag()
	x.OTag("bottom").Attr("style", "thin")
	x.OTag("color").Attr("auto", 1).CTag()
	x.CTag()
	x.OTag("diagonal").CTag()
	x.CTag()
	x.CTag() // borders

	x.OTag("+cellStyleXfs").Attr("count", 1)
	x.OTag("xf").Attr("numFmtId", 0).Attr("fontId", 0).Attr("fillId", 0).Attr("borderId", 0).CTag()
	x.CTag()

	x.OTag("+cellXfs").Attr("count", 3)
	x.OTag("+xf").Attr("numFmtId", 0).Attr("fontId", 0).Attr("fillId", 0).Attr("borderId", 0).Attr("xfId", 0).CTag()
	x.OTag("+xf").Attr("numFmtId", 0).Attr("fontId", 1).Attr("fillId", 2).Attr("borderId", 1).Attr("xfId", 0)
	x.Attr("applyFont", 1).Attr("applyFill", 1).Attr("applyBorder", 1)
	x.OTag("alignment").Attr("horizontal", "center").CTag()
	x.CTag()
	x.OTag("+xf").Attr("numFmtId", 0).Attr("fontId", 0).Attr("fillId", 0).Attr("borderId", 0).Attr("xfId", 0)
	x.OTag("alignment").Attr("horizontal", "center").CTag()
	x.CTag()
	x.CTag() // cellXfs

	x.OTag("+cellStyles").Attr("count", 1)
	x.OTag("cellStyle").Attr("name", "Normal").Attr("xfId", 0).Attr("builtinId", 0).CTag()
	x.CTag()

	x.OTag("+dxfs").Attr("count", len(dxfs))
	for _, d := range dxfs {
		writeDxf(x, d)
	}
	x.CTag()

	x.OTag("+tableStyles").Attr("count", 0)
	x.Attr("defaultTableStyle", "TableStyleMedium9").Attr("defaultPivotStyle", "PivotStyleLight16")
	x.CTag()

	x.CTag() // styleSheet
	return bb.Bytes()
}

func writeCalibri(x *xml.Writer, bold bool) {
	x.OTag("+font")
	if bold {
		x.OTag("b").CTag()
	}
	x.OTag("name").Attr("val", "Calibri").CTag()
	x.OTag("family").Attr("val", 2).CTag()
	x.OTag("color").Attr("theme", 1).CTag()
	x.OTag("sz").Attr("val", 11).CTag()
	x.OTag("scheme").Attr("val", "minor").CTag()
	x.CTag()
}

// themePart generates xl/theme/theme1.xml, a minimal Office theme.
func themePart() []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("a:theme")
	x.Attr("xmlns:a", "http://schemas.openxmlformats.org/drawingml/2006/main")
	x.Attr("name", "Office Theme")
	x.OTag("+a:themeElements")

	x.OTag("+a:clrScheme").Attr("name", "Office")
	x.OTag("+a:dk1")
	x.OTag("a:sysClr").Attr("val", "windowText").Attr("lastClr", "000000").CTag()
	x.CTag()
	x.OTag("+a:lt1")
	x.OTag("a:sysClr").Attr("val", "window").Attr("lastClr", "FFFFFF").CTag()
	x.CTag()
	x.OTag("+a:dk2")
	writeSrgbClr(x, "1F497D")
	x.CTag()
	x.OTag("+a:lt2")
	writeSrgbClr(x, "EEECE1")
	x.CTag()
	x.OTag("+a:accent1")
	writeSrgbClr(x, "4F81BD")
	x.CTag()
	x.OTag("+a:accent2")
	writeSrgbClr(x, "C0504D")
	x.CTag()
	x.OTag("+a:accent3")
	writeSrgbClr(x, "9BBB59")
	x.CTag()
	x.OTag("+a:accent4")
	writeSrgbClr(x, "8064A2")
	x.CTag()
	x.OTag("+a:accent5")
	writeSrgbClr(x, "4BACC6")
	x.CTag()
	x.OTag("+a:accent6")
	writeSrgbClr(x, "F79646")
	x.CTag()
	x.OTag("+a:hlink")
	writeSrgbClr(x, "0000FF")
	x.CTag()
	x.OTag("+a:folHlink")
	writeSrgbClr(x, "800080")
	x.CTag()
	x.CTag() // clrScheme

	x.OTag("+a:fontScheme").Attr("name", "Office")
	x.OTag("+a:majorFont")
	writeThemeTypeface(x, "Cambria")
	x.CTag()
	x.OTag("+a:minorFont")
	writeThemeTypeface(x, "Calibri")
	x.CTag()
	x.CTag() // fontScheme

	x.OTag("+a:fmtScheme").Attr("name", "Office")
	x.OTag("+a:fillStyleLst")
	for i := 0; i < 3; i++ {
		writePlaceholderFill(x)
	}
	x.CTag()
	x.OTag("+a:lnStyleLst")
	for _, w := range []int{9525, 25400, 38100} {
		x.OTag("a:ln").Attr("w", w)
		writePlaceholderFill(x)
		x.CTag()
	}
	x.CTag()
	x.OTag("+a:effectStyleLst")
	for i := 0; i < 3; i++ {
		x.OTag("a:effectStyle")
		x.OTag("a:effectLst").CTag()
		x.CTag()
	}
	x.CTag()
	x.OTag("+a:bgFillStyleLst")
	for i := 0; i < 3; i++ {
		writePlaceholderFill(x)
	}
	x.CTag()
	x.CTag() // fmtScheme

	x.CTag() // themeElements
	x.CTag() // theme
	return bb.Bytes()
}

func writeSrgbClr(x *xml.Writer, rgb string) {
	x.OTag("a:srgbClr").Attr("val", rgb).CTag()
}

func writeThemeTypeface(x *xml.Writer, latin string) {
	x.OTag("a:latin").Attr("typeface", latin).CTag()
	x.OTag("a:ea").Attr("typeface", "").CTag()
	x.OTag("a:cs").Attr("typeface", "").CTag()
}

func writePlaceholderFill(x *xml.Writer) {
	x.OTag("a:solidFill")
	x.OTag("a:schemeClr").Attr("val", "phClr").CTag()
	x.CTag()
}
