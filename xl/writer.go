package xl

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/adnsv/srw/xml"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

const (
	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relWorksheet      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relDrawing        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/drawing"
	relChart          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"

	ctWorkbook  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ctWorksheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ctStyles    = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ctTheme     = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctChart     = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
	ctDrawing   = "application/vnd.openxmlformats-officedocument.drawing+xml"
)

// Writer turns a Workbook into package parts. A Writer is used for a
// single Write; create a new one for every save.
type Writer struct {
	out            Storage
	lastGlobalId   int
	lastWorkbookId int

	GlobalRels          map[int]RelInfo   // package relationships by id number
	WorkbookRels        map[int]RelInfo   // workbook relationships by id number
	DefaultContentTypes map[string]string // maps path extension to content-type
	PartContentTypes    map[string]string // maps path partname to content-type

	dxfs  []Dxf
	parts []part
}

type RelInfo struct {
	Type   string // url to schema type
	Target string // relative path
}

// part is one package entry, rendered when it is written.
type part struct {
	path   string
	render func() []byte
}

// sheetPlan carries the cross references of one worksheet.
type sheetPlan struct {
	sheet *Sheet
	num   int // 1-based position, also the sheetId
	rid   string
	cf    []cfBlock
}

func NewWriter(s Storage) *Writer {
	w := &Writer{
		out:                 s,
		GlobalRels:          map[int]RelInfo{},
		WorkbookRels:        map[int]RelInfo{},
		DefaultContentTypes: map[string]string{},
		PartContentTypes:    map[string]string{},
	}

	w.DefaultContentTypes["xml"] = "application/xml"
	w.DefaultContentTypes["rels"] = "application/vnd.openxmlformats-package.relationships+xml"

	return w
}

func (w *Writer) nextGlobalID() (int, string) {
	w.lastGlobalId++
	return w.lastGlobalId, fmt.Sprintf("rId%d", w.lastGlobalId)
}
func (w *Writer) nextWorkbookID() (int, string) {
	w.lastWorkbookId++
	return w.lastWorkbookId, fmt.Sprintf("rId%d", w.lastWorkbookId)
}

// Write plans the package, then stores every part in order. The first
// failing part aborts the write.
func (w *Writer) Write(wb *Workbook) error {
	if err := w.plan(wb); err != nil {
		return err
	}
	for _, p := range w.parts {
		if err := w.out.WriteBlob(p.path, p.render()); err != nil {
			return &PartError{Path: p.path, Err: err}
		}
	}
	return nil
}

// plan registers every relationship and content type and fixes the part
// order, so that parts rendered later can refer to each other.
func (w *Writer) plan(wb *Workbook) error {
	id, _ := w.nextGlobalID()
	w.GlobalRels[id] = RelInfo{Type: relOfficeDocument, Target: "xl/workbook.xml"}
	w.PartContentTypes["/xl/workbook.xml"] = ctWorkbook

	sheets := make([]*sheetPlan, 0, len(wb.Sheets))
	dxfID := 0
	for i, sh := range wb.Sheets {
		if err := validateSheetName(sh.Name); err != nil {
			return &PartError{Path: "xl/workbook.xml", Err: err}
		}
		id, rid := w.nextWorkbookID()
		sp := &sheetPlan{sheet: sh, num: i + 1, rid: rid}

		relpath := fmt.Sprintf("worksheets/sheet%d.xml", sp.num)
		w.WorkbookRels[id] = RelInfo{Type: relWorksheet, Target: relpath}
		w.PartContentTypes["/xl/"+relpath] = ctWorksheet

		var dxfs []Dxf
		sp.cf, dxfs, dxfID = planConditionalFormats(sh.ConditionalFormats, dxfID)
		w.dxfs = append(w.dxfs, dxfs...)

		if sh.Chart != nil {
			if err := sh.Chart.Config.validate(); err != nil {
				return &PartError{Path: fmt.Sprintf("/xl/charts/chart%d.xml", sp.num), Err: err}
			}
			w.PartContentTypes[fmt.Sprintf("/xl/charts/chart%d.xml", sp.num)] = ctChart
			w.PartContentTypes[fmt.Sprintf("/xl/drawings/drawing%d.xml", sp.num)] = ctDrawing
		}
		sheets = append(sheets, sp)
	}

	id, _ = w.nextWorkbookID()
	w.WorkbookRels[id] = RelInfo{Type: relStyles, Target: "styles.xml"}
	w.PartContentTypes["/xl/styles.xml"] = ctStyles

	id, _ = w.nextWorkbookID()
	w.WorkbookRels[id] = RelInfo{Type: relTheme, Target: "theme/theme1.xml"}
	w.PartContentTypes["/xl/theme/theme1.xml"] = ctTheme

	w.add("[Content_Types].xml", w.contentTypesPart)
	w.add("_rels/.rels", func() []byte { return relsPart(w.GlobalRels) })
	w.add("xl/workbook.xml", func() []byte { return workbookPart(sheets) })
	w.add("xl/_rels/workbook.xml.rels", func() []byte { return relsPart(w.WorkbookRels) })
	w.add("xl/styles.xml", func() []byte { return stylesPart(w.dxfs) })

	for _, sp := range sheets {
		sp := sp
		w.add(fmt.Sprintf("xl/worksheets/sheet%d.xml", sp.num), func() []byte {
			return worksheetPart(sp, &wb.Options)
		})
		if sp.sheet.Chart != nil {
			rels := map[int]RelInfo{1: {Type: relDrawing, Target: fmt.Sprintf("../drawings/drawing%d.xml", sp.num)}}
			w.add(fmt.Sprintf("xl/worksheets/_rels/sheet%d.xml.rels", sp.num), func() []byte {
				return relsPart(rels)
			})
		}
	}

	for _, sp := range sheets {
		sp := sp
		ch := sp.sheet.Chart
		if ch == nil {
			continue
		}
		w.add(fmt.Sprintf("xl/charts/chart%d.xml", sp.num), func() []byte {
			return chartPart(&ch.Config, ch.Data, sp.sheet.Name, sp.num)
		})
		w.add(fmt.Sprintf("xl/drawings/drawing%d.xml", sp.num), func() []byte {
			return drawingPart("rId1", ch.Config.Width, ch.Config.Height)
		})
		rels := map[int]RelInfo{1: {Type: relChart, Target: fmt.Sprintf("../charts/chart%d.xml", sp.num)}}
		w.add(fmt.Sprintf("xl/drawings/_rels/drawing%d.xml.rels", sp.num), func() []byte {
			return relsPart(rels)
		})
	}

	w.add("xl/theme/theme1.xml", themePart)
	return nil
}

func (w *Writer) add(path string, render func() []byte) {
	w.parts = append(w.parts, part{path: path, render: render})
}

func (w *Writer) contentTypesPart() []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})

	x.XmlStandaloneDecl()
	x.OTag("Types")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/package/2006/content-types")
	enumerate(w.DefaultContentTypes, func(ext, ctype string) error {
		x.OTag("+Default").Attr("Extension", ext).Attr("ContentType", ctype).CTag()
		return nil
	})
	enumerate(w.PartContentTypes, func(abspath, ctype string) error {
		x.OTag("+Override").Attr("PartName", abspath).Attr("ContentType", ctype).CTag()
		return nil
	})

	x.CTag()
	return bb.Bytes()
}

func workbookPart(sheets []*sheetPlan) []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("workbook")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	x.OTag("+workbookPr").CTag()
	x.OTag("+bookViews")
	x.OTag("+workbookView").Attr("activeTab", 0).CTag()
	x.CTag()

	x.OTag("+sheets")
	for _, sp := range sheets {
		x.OTag("+sheet")
		x.Attr("name", xmlSafe(sp.sheet.Name))
		x.Attr("sheetId", sp.num)
		x.Attr("r:id", sp.rid)
		x.CTag()
	}
	x.CTag()

	x.OTag("+calcPr").Attr("calcId", 124519).Attr("fullCalcOnLoad", 1).CTag()

	x.CTag()
	return bb.Bytes()
}

func worksheetPart(sp *sheetPlan, opts *WriteOptions) []byte {
	sh := sp.sheet
	rows, cols := sh.extent()
	extent := "A1"
	if rows > 0 && cols > 0 {
		extent = "A1:" + CellCoordAsString(cols, rows)
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("worksheet")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	x.OTag("+sheetPr")
	x.OTag("outlinePr").Attr("summaryBelow", 1).Attr("summaryRight", 1).CTag()
	x.OTag("pageSetUpPr").CTag()
	x.CTag()

	x.OTag("+dimension").Attr("ref", extent).CTag()

	x.OTag("+sheetViews")
	x.OTag("+sheetView").Attr("workbookViewId", 0)
	if opts.FreezeHeader {
		x.OTag("+pane").Attr("ySplit", 1).Attr("topLeftCell", "A2").Attr("activePane", "bottomLeft").Attr("state", "frozen").CTag()
		x.OTag("+selection").Attr("pane", "bottomLeft").Attr("activeCell", "A2").Attr("sqref", "A2").CTag()
	} else {
		x.OTag("+selection").Attr("activeCell", "A1").Attr("sqref", "A1").CTag()
	}
	x.CTag() // sheetView
	x.CTag() // sheetViews

	x.OTag("+sheetFormatPr").Attr("baseColWidth", 8).Attr("defaultRowHeight", 15).CTag()

	if slices.ContainsFunc(sh.ColumnWidths, func(v float64) bool { return v != DefaultColumnWidth }) {
		x.OTag("+cols")
		for i, v := range sh.ColumnWidths {
			if v == DefaultColumnWidth {
				continue
			}
			x.OTag("+col").Attr("min", i+1).Attr("max", i+1)
			x.Attr("width", strconv.FormatFloat(v, 'f', -1, 64)).Attr("customWidth", 1)
			x.CTag()
		}
		x.CTag()
	}

	x.OTag("+sheetData")
	for ri, row := range sh.Rows {
		x.OTag("+row").Attr("r", ri+1)
		for ci, cell := range row.Cells {
			writeCell(x, CellCoordAsString(ci+1, ri+1), cell)
		}
		x.CTag() // row
	}
	x.CTag() // sheetData

	if opts.AutoFilter && rows > 0 && cols > 0 {
		x.OTag("+autoFilter").Attr("ref", extent).CTag()
	}

	writeConditionalFormatting(x, sp.cf)

	x.OTag("+pageMargins")
	x.Attr("left", "0.75").Attr("right", "0.75")
	x.Attr("top", 1).Attr("bottom", 1)
	x.Attr("header", "0.5").Attr("footer", "0.5")
	x.CTag()

	if sh.Chart != nil {
		x.OTag("+drawing").Attr("r:id", "rId1").CTag()
	}

	writeSparklineExt(x, sh.SparklineGroups, sh.Name)

	x.CTag() // worksheet
	return bb.Bytes()
}

// writeCell emits one cell; empty cells produce nothing.
func writeCell(x *xml.Writer, coord string, cell Cell) {
	switch cell.Type() {
	case CellTypeEmpty:
		return
	case CellTypeString:
		s := xmlSafe(cell.Text())
		x.OTag("+c").Attr("r", coord).Attr("t", "inlineStr")
		x.OTag("is")
		x.OTag("t")
		if strings.TrimSpace(s) != s {
			x.Attr("xml:space", "preserve")
		}
		x.Write(s).CTag()
		x.CTag() // is
	case CellTypeNumber:
		x.OTag("+c").Attr("r", coord).Attr("t", "n")
		x.OTag("v").Write(formatNumber(cell.Number())).CTag()
	case CellTypeFormula:
		x.OTag("+c").Attr("r", coord)
		x.OTag("f").Write(xmlSafe(cell.Formula())).CTag()
	default:
		panic("unknown cell type " + cell.Type().String())
	}
	x.CTag() // c
}

func relsPart(rels map[int]RelInfo) []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Relationships")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
	enumerate(rels, func(id int, info RelInfo) error {
		x.OTag("+Relationship").Attr("Id", fmt.Sprintf("rId%d", id)).Attr("Type", info.Type).Attr("Target", info.Target)
		x.CTag()
		return nil
	})
	x.CTag()

	return bb.Bytes()
}

func enumerate[M ~map[K]V, K constraints.Ordered, V any](m M, callback func(k K, v V) error) error {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		err := callback(k, m[k])
		if err != nil {
			return err
		}
	}
	return nil
}
