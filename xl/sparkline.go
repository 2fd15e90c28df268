package xl

import "github.com/adnsv/srw/xml"

type SparklineType int

const (
	SparklineLine SparklineType = iota
	SparklineColumn
	SparklineWinLoss
)

func (t SparklineType) String() string {
	switch t {
	case SparklineLine:
		return "line"
	case SparklineColumn:
		return "column"
	case SparklineWinLoss:
		return "stacked"
	}
	panic("unknown sparkline type")
}

// Sparkline draws the values of DataRange (e.g. "A2:D2") inside the cell
// Location (e.g. "E2").
type Sparkline struct {
	Location  string
	DataRange string
}

// SparklineGroup is a set of sparklines sharing one style. ShowMarkers only
// applies to line sparklines.
type SparklineGroup struct {
	Type        SparklineType
	Sparklines  []Sparkline
	Color       string // hex RGB without '#'
	ShowMarkers bool
}

func DefaultSparklineGroup() SparklineGroup {
	return SparklineGroup{
		Type:  SparklineLine,
		Color: "4472C4",
	}
}

const (
	sparklineExtURI    = "{05C60535-1F16-4fd2-B633-F4F36F0B64E0}"
	sparklineMarkerRGB = "FFD00000"
)

// writeSparklineExt emits the worksheet <extLst> carrying the x14
// sparkline groups. Nothing is written for an empty group list.
func writeSparklineExt(x *xml.Writer, groups []SparklineGroup, sheetName string) {
	if len(groups) == 0 {
		return
	}
	x.OTag("+extLst")
	x.OTag("+ext")
	x.Attr("xmlns:x14", "http://schemas.microsoft.com/office/spreadsheetml/2009/9/main")
	x.Attr("uri", sparklineExtURI)

	x.OTag("+x14:sparklineGroups")
	x.Attr("xmlns:xm", "http://schemas.microsoft.com/office/excel/2006/main")
	for _, g := range groups {
		markers := g.ShowMarkers && g.Type == SparklineLine

		x.OTag("+x14:sparklineGroup").Attr("type", g.Type.String())
		if markers {
			x.Attr("markers", 1)
		}
		x.OTag("+x14:colorSeries").Attr("rgb", argb(g.Color)).CTag()
		if markers {
			x.OTag("+x14:colorMarkers").Attr("rgb", sparklineMarkerRGB).CTag()
		}

		x.OTag("+x14:sparklines")
		for _, sp := range g.Sparklines {
			x.OTag("+x14:sparkline")
			x.OTag("+xm:f").Write(xmlSafe(quoteSheetName(sheetName) + "!" + sp.DataRange)).CTag()
			x.OTag("+xm:sqref").Write(xmlSafe(sp.Location)).CTag()
			x.CTag()
		}
		x.CTag() // sparklines
		x.CTag() // sparklineGroup
	}
	x.CTag() // sparklineGroups

	x.CTag() // ext
	x.CTag() // extLst
}
