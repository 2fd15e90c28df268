package xl

import (
	"fmt"
	"strconv"
	"strings"
)

// CellStyle represents formatting properties for cell content.
type CellStyle struct {
	Bold         bool
	Italic       bool
	BgColor      string  // hex RGB without '#', e.g. "4472C4"
	FontColor    string  // hex RGB without '#'
	FontSize     float64 // points, 0 = default of 11
	Border       bool    // thin border on all sides
	Align        string  // horizontal alignment: "left", "center", "right"
	NumberFormat string  // e.g. "0.00", "#,##0", "yyyy-mm-dd"
}

// HeaderStyle is bold white text on the header blue with a thin border.
func HeaderStyle() CellStyle {
	return CellStyle{
		Bold:      true,
		BgColor:   "4472C4",
		FontColor: "FFFFFF",
		Border:    true,
		Align:     "center",
	}
}

// IsDefault returns true if the style uses all default properties.
func (s *CellStyle) IsDefault() bool {
	return *s == CellStyle{}
}

// WriteOptions controls the sheet-level presentation of every sheet in a
// workbook.
//
// StyleHeader, HeaderStyle and ColumnStyles are accepted but not yet
// attached to emitted cells: styles.xml carries a fixed table and cells
// are written without a style index.
type WriteOptions struct {
	FreezeHeader bool // freeze the top row
	AutoFilter   bool // auto-filter over the full data extent

	StyleHeader  bool
	HeaderStyle  CellStyle
	ColumnStyles map[int]CellStyle // 0-based column index
}

func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		FreezeHeader: true,
		AutoFilter:   true,
		StyleHeader:  true,
		HeaderStyle:  HeaderStyle(),
	}
}

// ParseHexColor parses "RRGGBB" (optionally prefixed with '#') into
// 0xRRGGBB.
func ParseHexColor(hex string) (uint32, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color %q", hex)
	}
	return uint32(v), nil
}

// argb renders a caller color as the 8-digit ARGB string OOXML expects.
// Six-digit colors get an opaque alpha; eight-digit colors pass through.
func argb(color string) string {
	color = strings.ToUpper(strings.TrimPrefix(color, "#"))
	if len(color) == 6 {
		return "FF" + color
	}
	return color
}

// rgb renders a caller color as the 6-digit form DrawingML expects.
func rgb(color string) string {
	color = strings.ToUpper(strings.TrimPrefix(color, "#"))
	if len(color) == 8 {
		return color[2:]
	}
	return color
}
