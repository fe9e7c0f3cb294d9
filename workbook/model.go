package workbook

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-report/payload"
)

// Style is presentational metadata attached to rows and cells. Serializers
// map each tag onto their own formatting primitives.
type Style string

const (
	StyleNone        Style = ""
	StyleTitle       Style = "title"
	StyleSubtitle    Style = "subtitle"
	StyleSection     Style = "section"
	StyleSubsection  Style = "subsection"
	StyleTableHeader Style = "table_header"
	StyleBandEven    Style = "band_even"
	StyleBandOdd     Style = "band_odd"
	StyleNumeric     Style = "numeric"
	StyleTotals      Style = "totals"
)

// Cell values are either strings or float64.
type Cell struct {
	Value any
	Style Style
}

// Text returns the displayed text of the cell.
func (c Cell) Text() string {
	switch v := c.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return payload.FormatNumber(v)
	default:
		return fmt.Sprint(v)
	}
}

// EffectiveStyle prefers the cell's own tag over the row's.
func (c Cell) EffectiveStyle(row Row) Style {
	if c.Style != StyleNone {
		return c.Style
	}
	return row.Style
}

// Row is an ordered list of cells. An empty row is a spacer.
type Row struct {
	Cells []Cell
	Style Style
}

// Sheet is a named grid with column widths in characters.
type Sheet struct {
	Name   string
	Rows   []Row
	Widths []float64
}

// Workbook is the serializer-independent output of the builder.
type Workbook struct {
	Sheets []Sheet
}

// Sheet returns the sheet with the given name.
func (w Workbook) Sheet(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

func textRow(style Style, values ...any) Row {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Value: v}
	}
	return Row{Cells: cells, Style: style}
}

// MaxSheetNameLength is the spreadsheet limit on sheet names.
const MaxSheetNameLength = 31

var sheetNameReplacer = strings.NewReplacer(
	"[", "", "]", "", ":", "", "*", "", "?", "", "/", "", "\\", "",
)

// sheetNames hands out unique, valid sheet names.
type sheetNames struct {
	used map[string]bool
}

func newSheetNames() *sheetNames {
	return &sheetNames{used: map[string]bool{}}
}

func (n *sheetNames) next(name string) string {
	base := strings.TrimSpace(sheetNameReplacer.Replace(name))
	base = strings.Trim(base, "'")
	if base == "" {
		base = "Sheet"
	}
	base = truncateRunes(base, MaxSheetNameLength)

	candidate := base
	for i := 2; n.used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncateRunes(base, MaxSheetNameLength-utf8.RuneCountInString(suffix)) + suffix
	}
	n.used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
