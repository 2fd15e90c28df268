package xl

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adnsv/srw/xml"
)

// ChartType is the family of an embedded chart.
type ChartType int

const (
	ChartBar ChartType = iota
	ChartColumn
	ChartLine
	ChartArea
	ChartPie
	ChartScatter
	ChartDoughnut
)

var chartTypeNames = map[ChartType]string{
	ChartBar:      "bar",
	ChartColumn:   "column",
	ChartLine:     "line",
	ChartArea:     "area",
	ChartPie:      "pie",
	ChartScatter:  "scatter",
	ChartDoughnut: "doughnut",
}

func (t ChartType) String() string {
	if s, ok := chartTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ChartType(%d)", int(t))
}

// ParseChartType accepts bar, column, line, area, pie, scatter and
// doughnut (or donut), in any case.
func ParseChartType(s string) (ChartType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "donut" {
		return ChartDoughnut, nil
	}
	for t, name := range chartTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown chart type %q: use bar, column, line, area, pie, scatter or doughnut", s)
}

// ChartConfig describes a chart over the sheet's data, where row 1 holds
// the headers. Column indices are 0-based.
type ChartConfig struct {
	Type       ChartType
	Title      string // empty hides the title
	XAxisTitle string
	YAxisTitle string

	CategoryColumn int
	ValueColumns   []int
	Colors         []string // hex RGB, used before the default palette

	Width, Height int // pixels
	ShowLegend    bool
}

func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Type:           ChartColumn,
		CategoryColumn: 0,
		ValueColumns:   []int{1},
		Width:          600,
		Height:         400,
		ShowLegend:     true,
	}
}

func (cfg *ChartConfig) validate() error {
	if cfg.CategoryColumn < 0 {
		return fmt.Errorf("chart category column %d is negative", cfg.CategoryColumn)
	}
	for _, c := range cfg.ValueColumns {
		if c < 0 {
			return fmt.Errorf("chart value column %d is negative", c)
		}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("chart size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	for _, c := range cfg.Colors {
		if _, err := ParseHexColor(c); err != nil {
			return fmt.Errorf("chart color: %w", err)
		}
	}
	return nil
}

// defaultChartColors is the Office theme palette.
var defaultChartColors = []string{
	"4472C4", "ED7D31", "A5A5A5", "FFC000", "5B9BD5", "70AD47", "264478", "9B57A0",
}

// seriesColor picks the custom color at idx if there is one, otherwise
// cycles through the default palette.
func seriesColor(cfg *ChartConfig, idx int) string {
	if idx < len(cfg.Colors) {
		return rgb(cfg.Colors[idx])
	}
	return defaultChartColors[idx%len(defaultChartColors)]
}

const emuPerPixel = 9525

const (
	catAxisID = 1
	valAxisID = 2
)

// chartSource is the data a chart's references and caches are built from.
type chartSource struct {
	cfg      *ChartConfig
	data     [][]string
	sheet    string // quoted sheet name, ready for a formula
	chartNum int
}

// dataRows is the number of rows below the header.
func (src *chartSource) dataRows() int {
	if len(src.data) > 1 {
		return len(src.data) - 1
	}
	return 0
}

// colRef returns the absolute reference to the data cells of a 0-based
// column.
func (src *chartSource) colRef(col int) string {
	return src.sheet + "!" + absColumnRange(col+1, 2, src.dataRows()+1)
}

// chartPart generates xl/charts/chart{n}.xml.
func chartPart(cfg *ChartConfig, data [][]string, sheetName string, chartNum int) []byte {
	src := &chartSource{
		cfg:      cfg,
		data:     data,
		sheet:    quoteSheetName(sheetName),
		chartNum: chartNum,
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("c:chartSpace")
	x.Attr("xmlns:c", "http://schemas.openxmlformats.org/drawingml/2006/chart")
	x.Attr("xmlns:a", "http://schemas.openxmlformats.org/drawingml/2006/main")
	x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	x.OTag("+c:roundedCorners").Attr("val", 0).CTag()

	x.OTag("+c:chart")
	if cfg.Title != "" {
		writeChartTitle(x, cfg.Title)
		x.OTag("+c:autoTitleDeleted").Attr("val", 0).CTag()
	} else {
		x.OTag("+c:autoTitleDeleted").Attr("val", 1).CTag()
	}

	x.OTag("+c:plotArea")
	x.OTag("+c:layout").CTag()
	switch cfg.Type {
	case ChartPie, ChartDoughnut:
		writePieChart(x, src)
	case ChartScatter:
		writeScatterChart(x, src)
	default:
		writeAxisChart(x, src)
	}
	x.CTag() // plotArea

	if cfg.ShowLegend {
		x.OTag("+c:legend")
		x.OTag("+c:legendPos").Attr("val", "r").CTag()
		x.OTag("+c:overlay").Attr("val", 0).CTag()
		x.CTag()
	}
	x.OTag("+c:plotVisOnly").Attr("val", 1).CTag()
	x.OTag("+c:dispBlanksAs").Attr("val", "gap").CTag()
	x.CTag() // chart

	x.CTag() // chartSpace
	return bb.Bytes()
}

func writeChartTitle(x *xml.Writer, text string) {
	x.OTag("+c:title")
	x.OTag("+c:tx")
	x.OTag("c:rich")
	x.OTag("a:bodyPr").CTag()
	x.OTag("a:lstStyle").CTag()
	x.OTag("a:p")
	x.OTag("a:r")
	x.OTag("a:t").Write(xmlSafe(text)).CTag()
	x.CTag() // r
	x.CTag() // p
	x.CTag() // rich
	x.CTag() // tx
	x.OTag("+c:overlay").Attr("val", 0).CTag()
	x.CTag()
}

// writeAxisChart handles bar, column, line and area charts.
func writeAxisChart(x *xml.Writer, src *chartSource) {
	cfg := src.cfg
	switch cfg.Type {
	case ChartLine:
		x.OTag("+c:lineChart")
		x.OTag("+c:grouping").Attr("val", "standard").CTag()
	case ChartArea:
		x.OTag("+c:areaChart")
		x.OTag("+c:grouping").Attr("val", "standard").CTag()
	default:
		x.OTag("+c:barChart")
		if cfg.Type == ChartBar {
			x.OTag("+c:barDir").Attr("val", "bar").CTag()
		} else {
			x.OTag("+c:barDir").Attr("val", "col").CTag()
		}
		x.OTag("+c:grouping").Attr("val", "clustered").CTag()
	}
	x.OTag("+c:varyColors").Attr("val", 0).CTag()

	for i, col := range cfg.ValueColumns {
		color := seriesColor(cfg, i)
		x.OTag("+c:ser")
		writeSeriesHead(x, src, i, col)
		if cfg.Type == ChartLine {
			writeLineFill(x, color)
			x.OTag("+c:marker")
			x.OTag("c:symbol").Attr("val", "none").CTag()
			x.CTag()
		} else {
			writeSolidFill(x, color)
			if cfg.Type != ChartArea {
				x.OTag("+c:invertIfNegative").Attr("val", 0).CTag()
			}
		}
		if src.dataRows() > 0 {
			x.OTag("+c:cat")
			writeStrRef(x, src, cfg.CategoryColumn)
			x.CTag()
			x.OTag("+c:val")
			writeNumRef(x, src, col)
			x.CTag()
		}
		if cfg.Type == ChartLine {
			x.OTag("+c:smooth").Attr("val", 0).CTag()
		}
		writeSeriesUID(x, src, i)
		x.CTag() // ser
	}

	switch cfg.Type {
	case ChartLine:
		x.OTag("+c:marker").Attr("val", 1).CTag()
	case ChartBar, ChartColumn:
		x.OTag("+c:gapWidth").Attr("val", 150).CTag()
	}
	x.OTag("+c:axId").Attr("val", catAxisID).CTag()
	x.OTag("+c:axId").Attr("val", valAxisID).CTag()
	x.CTag() // barChart, lineChart or areaChart

	// horizontal bars swap the axis positions
	catPos, valPos := "b", "l"
	if cfg.Type == ChartBar {
		catPos, valPos = "l", "b"
	}

	x.OTag("+c:catAx")
	writeAxisHead(x, catAxisID, catPos, false, cfg.XAxisTitle)
	x.OTag("+c:crossAx").Attr("val", valAxisID).CTag()
	x.OTag("+c:crosses").Attr("val", "autoZero").CTag()
	x.OTag("+c:auto").Attr("val", 1).CTag()
	x.OTag("+c:lblAlgn").Attr("val", "ctr").CTag()
	x.OTag("+c:lblOffset").Attr("val", 100).CTag()
	x.CTag()

	x.OTag("+c:valAx")
	writeAxisHead(x, valAxisID, valPos, true, cfg.YAxisTitle)
	x.OTag("+c:crossAx").Attr("val", catAxisID).CTag()
	x.OTag("+c:crosses").Attr("val", "autoZero").CTag()
	x.OTag("+c:crossBetween").Attr("val", "between").CTag()
	x.CTag()
}

// writePieChart handles pie and doughnut charts: one series over the first
// value column, one colored data point per row.
func writePieChart(x *xml.Writer, src *chartSource) {
	cfg := src.cfg
	if cfg.Type == ChartDoughnut {
		x.OTag("+c:doughnutChart")
	} else {
		x.OTag("+c:pieChart")
	}
	x.OTag("+c:varyColors").Attr("val", 1).CTag()

	col := 1
	if len(cfg.ValueColumns) > 0 {
		col = cfg.ValueColumns[0]
	}

	x.OTag("+c:ser")
	writeSeriesHead(x, src, 0, col)
	for i := 0; i < src.dataRows(); i++ {
		x.OTag("+c:dPt")
		x.OTag("c:idx").Attr("val", i).CTag()
		x.OTag("c:bubble3D").Attr("val", 0).CTag()
		writeSolidFill(x, seriesColor(cfg, i))
		x.CTag()
	}
	if src.dataRows() > 0 {
		x.OTag("+c:cat")
		writeStrRef(x, src, cfg.CategoryColumn)
		x.CTag()
		x.OTag("+c:val")
		writeNumRef(x, src, col)
		x.CTag()
	}
	writeSeriesUID(x, src, 0)
	x.CTag() // ser

	x.OTag("+c:firstSliceAng").Attr("val", 0).CTag()
	if cfg.Type == ChartDoughnut {
		x.OTag("+c:holeSize").Attr("val", 50).CTag()
	}
	x.CTag() // pieChart or doughnutChart
}

// writeScatterChart plots every value column against the category column
// on two value axes.
func writeScatterChart(x *xml.Writer, src *chartSource) {
	cfg := src.cfg
	x.OTag("+c:scatterChart")
	x.OTag("+c:scatterStyle").Attr("val", "lineMarker").CTag()
	x.OTag("+c:varyColors").Attr("val", 0).CTag()

	for i, col := range cfg.ValueColumns {
		x.OTag("+c:ser")
		writeSeriesHead(x, src, i, col)
		writeLineFill(x, seriesColor(cfg, i))
		if src.dataRows() > 0 {
			x.OTag("+c:xVal")
			writeNumRef(x, src, cfg.CategoryColumn)
			x.CTag()
			x.OTag("+c:yVal")
			writeNumRef(x, src, col)
			x.CTag()
		}
		x.OTag("+c:smooth").Attr("val", 0).CTag()
		writeSeriesUID(x, src, i)
		x.CTag() // ser
	}
	x.OTag("+c:axId").Attr("val", catAxisID).CTag()
	x.OTag("+c:axId").Attr("val", valAxisID).CTag()
	x.CTag() // scatterChart

	x.OTag("+c:valAx")
	writeAxisHead(x, catAxisID, "b", false, cfg.XAxisTitle)
	x.OTag("+c:crossAx").Attr("val", valAxisID).CTag()
	x.OTag("+c:crosses").Attr("val", "autoZero").CTag()
	x.OTag("+c:crossBetween").Attr("val", "midCat").CTag()
	x.CTag()

	x.OTag("+c:valAx")
	writeAxisHead(x, valAxisID, "l", true, cfg.YAxisTitle)
	x.OTag("+c:crossAx").Attr("val", catAxisID).CTag()
	x.OTag("+c:crosses").Attr("val", "autoZero").CTag()
	x.OTag("+c:crossBetween").Attr("val", "midCat").CTag()
	x.CTag()
}

// writeSeriesHead emits idx, order and the series name, which points at
// the header cell of col. The header text is cached only when there is
// data to plot.
func writeSeriesHead(x *xml.Writer, src *chartSource, idx, col int) {
	x.OTag("+c:idx").Attr("val", idx).CTag()
	x.OTag("+c:order").Attr("val", idx).CTag()
	x.OTag("+c:tx")
	x.OTag("+c:strRef")
	x.OTag("+c:f").Write(xmlSafe(src.sheet + "!$" + ColumnNumberAsLetters(col+1) + "$1")).CTag()
	if src.dataRows() > 0 && col >= 0 && col < len(src.data[0]) {
		x.OTag("+c:strCache")
		x.OTag("+c:ptCount").Attr("val", 1).CTag()
		x.OTag("+c:pt").Attr("idx", 0)
		x.OTag("c:v").Write(xmlSafe(src.data[0][col])).CTag()
		x.CTag()
		x.CTag()
	}
	x.CTag() // strRef
	x.CTag() // tx
}

// writeAxisHead emits the elements every axis starts with, up to and
// including the tick marks.
func writeAxisHead(x *xml.Writer, id int, pos string, gridlines bool, title string) {
	x.OTag("+c:axId").Attr("val", id).CTag()
	x.OTag("+c:scaling")
	x.OTag("c:orientation").Attr("val", "minMax").CTag()
	x.CTag()
	x.OTag("+c:delete").Attr("val", 0).CTag()
	x.OTag("+c:axPos").Attr("val", pos).CTag()
	if gridlines {
		x.OTag("+c:majorGridlines").CTag()
	}
	if title != "" {
		writeChartTitle(x, title)
	}
	x.OTag("+c:majorTickMark").Attr("val", "out").CTag()
	x.OTag("+c:minorTickMark").Attr("val", "none").CTag()
	x.OTag("+c:tickLblPos").Attr("val", "nextTo").CTag()
}

func writeSolidFill(x *xml.Writer, color string) {
	x.OTag("+c:spPr")
	x.OTag("a:solidFill")
	x.OTag("a:srgbClr").Attr("val", color).CTag()
	x.CTag()
	x.CTag()
}

func writeLineFill(x *xml.Writer, color string) {
	x.OTag("+c:spPr")
	x.OTag("a:ln").Attr("w", 28575).Attr("cap", "rnd")
	x.OTag("a:solidFill")
	x.OTag("a:srgbClr").Attr("val", color).CTag()
	x.CTag()
	x.OTag("a:round").CTag()
	x.CTag()
	x.CTag()
}

// writeStrRef references the data cells of col and caches them as text.
func writeStrRef(x *xml.Writer, src *chartSource, col int) {
	x.OTag("+c:strRef")
	x.OTag("+c:f").Write(xmlSafe(src.colRef(col))).CTag()
	x.OTag("+c:strCache")
	x.OTag("+c:ptCount").Attr("val", src.dataRows()).CTag()
	for i, row := range src.data[1:] {
		if col < 0 || col >= len(row) {
			continue
		}
		x.OTag("+c:pt").Attr("idx", i)
		x.OTag("c:v").Write(xmlSafe(row[col])).CTag()
		x.CTag()
	}
	x.CTag() // strCache
	x.CTag() // strRef
}

// writeNumRef references the data cells of col and caches the values that
// are numbers; other cells are left out of the cache.
func writeNumRef(x *xml.Writer, src *chartSource, col int) {
	x.OTag("+c:numRef")
	x.OTag("+c:f").Write(xmlSafe(src.colRef(col))).CTag()
	x.OTag("+c:numCache")
	x.OTag("+c:formatCode").Write("General").CTag()
	x.OTag("+c:ptCount").Attr("val", src.dataRows()).CTag()
	for i, row := range src.data[1:] {
		if col < 0 || col >= len(row) {
			continue
		}
		v, ok := parseFiniteNumber(strings.TrimSpace(row[col]))
		if !ok {
			continue
		}
		x.OTag("+c:pt").Attr("idx", i)
		x.OTag("c:v").Write(formatNumber(v)).CTag()
		x.CTag()
	}
	x.CTag() // numCache
	x.CTag() // numRef
}

func writeSeriesUID(x *xml.Writer, src *chartSource, idx int) {
	x.OTag("+c:extLst")
	x.OTag("+c:ext")
	x.Attr("uri", "{C3380CC4-5D6E-409C-BE32-E72D297353CC}")
	x.Attr("xmlns:c16", "http://schemas.microsoft.com/office/drawing/2014/chart")
	x.OTag("+c16:uniqueId").Attr("val", seriesUID(src.sheet, src.chartNum, idx)).CTag()
	x.CTag()
	x.CTag()
}

// drawingPart generates xl/drawings/drawing{n}.xml: one graphic frame
// anchored from E2 to O21 that holds the chart behind chartRID.
func drawingPart(chartRID string, widthPx, heightPx int) []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("xdr:wsDr")
	x.Attr("xmlns:xdr", "http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing")
	x.Attr("xmlns:a", "http://schemas.openxmlformats.org/drawingml/2006/main")
	x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	x.OTag("+xdr:twoCellAnchor")
	writeAnchorPoint(x, "from", 4, 1)
	writeAnchorPoint(x, "to", 14, 20)

	x.OTag("+xdr:graphicFrame").Attr("macro", "")
	x.OTag("+xdr:nvGraphicFramePr")
	x.OTag("xdr:cNvPr").Attr("id", 2).Attr("name", "Chart 1").CTag()
	x.OTag("xdr:cNvGraphicFramePr").CTag()
	x.CTag()

	x.OTag("+xdr:xfrm")
	x.OTag("a:off").Attr("x", 0).Attr("y", 0).CTag()
	x.OTag("a:ext").Attr("cx", widthPx*emuPerPixel).Attr("cy", heightPx*emuPerPixel).CTag()
	x.CTag()

	x.OTag("+a:graphic")
	x.OTag("+a:graphicData").Attr("uri", "http://schemas.openxmlformats.org/drawingml/2006/chart")
	x.OTag("+c:chart")
	x.Attr("xmlns:c", "http://schemas.openxmlformats.org/drawingml/2006/chart")
	x.Attr("r:id", chartRID)
	x.CTag()
	x.CTag() // graphicData
	x.CTag() // graphic
	x.CTag() // graphicFrame

	x.OTag("+xdr:clientData").CTag()
	x.CTag() // twoCellAnchor

	x.CTag() // wsDr
	return bb.Bytes()
}

func writeAnchorPoint(x *xml.Writer, which string, col, row int) {
	if which == "from" {
		x.OTag("+xdr:from")
	} else {
		x.OTag("+xdr:to")
	}
	x.OTag("xdr:col").Write(col).CTag()
	x.OTag("xdr:colOff").Write(0).CTag()
	x.OTag("xdr:row").Write(row).CTag()
	x.OTag("xdr:rowOff").Write(0).CTag()
	x.CTag()
}
