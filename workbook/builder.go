package workbook

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-report/helpers"
	"github.com/goliatone/go-report/labels"
	"github.com/goliatone/go-report/payload"
)

// SummarySheetName is the English name of the first sheet.
const SummarySheetName = "Summary"

// Column width bounds, in characters.
const (
	summaryMinWidth = 12
	summaryPadding  = 4
	summaryMaxWidth = 60
	listMinWidth    = 10
	listPadding     = 2
	listMaxWidth    = 50
)

// Builder lays out report data as a workbook: a summary sheet followed by
// one sheet per non-empty list.
type Builder struct {
	Locale *helpers.Locale
	// Labels translates headings and type names. Nil renders English.
	Labels *labels.Labels
}

type field struct {
	key   string
	value any
}

// Build never fails. Absent or empty lists are skipped.
func (b Builder) Build(title string, data *payload.Map, generatedAt time.Time) Workbook {
	if data == nil {
		data = payload.NewMap()
	}
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	locale := b.locale()

	var scalars, maps, lists []field
	data.Each(func(key string, value any) bool {
		switch value.(type) {
		case []any:
			lists = append(lists, field{key, value})
		case *payload.Map:
			maps = append(maps, field{key, value})
		default:
			scalars = append(scalars, field{key, value})
		}
		return true
	})

	names := newSheetNames()
	wb := Workbook{}
	wb.Sheets = append(wb.Sheets, b.summary(names.next(b.summarySheetName()), title, generatedAt, scalars, maps, lists, locale))

	for _, f := range lists {
		list := f.value.([]any)
		if len(list) == 0 {
			continue
		}
		wb.Sheets = append(wb.Sheets, b.listSheet(names.next(Humanize(f.key)), f.key, list, locale))
	}
	return wb
}

func (b Builder) summary(name, title string, generatedAt time.Time, scalars, maps, lists []field, locale helpers.Locale) Sheet {
	sheet := &sheetBuilder{}
	sheet.add(textRow(StyleTitle, strings.ToUpper(title)))
	sheet.blank()
	sheet.add(textRow(StyleSubtitle, b.text(labels.DetailedReport)))
	sheet.data(textRow(StyleNone, b.text(labels.GeneratedAtLabel), locale.DateTime(generatedAt)))
	sheet.blank()

	if len(scalars) > 0 {
		sheet.add(textRow(StyleSection, b.text(labels.GeneralInfo)))
		sheet.blank()
		sheet.add(textRow(StyleTableHeader, b.text(labels.HeaderField), b.text(labels.HeaderValue), b.text(labels.HeaderType)))
		var numbers []float64
		for _, f := range scalars {
			sheet.data(b.valueRow(Humanize(f.key), f.value, locale))
			if n := helpers.JSNumber(f.value); !math.IsNaN(n) {
				numbers = append(numbers, n)
			}
		}
		sheet.blank()

		if len(numbers) > 0 {
			sheet.add(textRow(StyleSection, b.text(labels.NumericStats)))
			sheet.blank()
			sheet.add(textRow(StyleTableHeader, b.text(labels.HeaderMetric), b.text(labels.HeaderValue)))
			for _, stat := range statistics(numbers) {
				sheet.data(Row{Cells: []Cell{{Value: b.text(stat.label)}, {Value: stat.value, Style: StyleNumeric}}})
			}
			sheet.blank()
		}
	}

	if len(maps) > 0 {
		sheet.add(textRow(StyleSection, b.text(labels.StructuredData)))
		sheet.blank()
		for _, f := range maps {
			sheet.add(textRow(StyleSubsection, "📁 "+Humanize(f.key)))
			sheet.add(textRow(StyleTableHeader, b.text(labels.HeaderProperty), b.text(labels.HeaderValue), b.text(labels.HeaderType)))
			f.value.(*payload.Map).Each(func(key string, value any) bool {
				sheet.data(b.valueRow(Humanize(key), value, locale))
				return true
			})
			sheet.blank()
		}
	}

	if len(lists) > 0 {
		sheet.add(textRow(StyleSection, b.text(labels.ListSummary)))
		sheet.blank()
		sheet.add(textRow(StyleTableHeader,
			b.text(labels.HeaderList), b.text(labels.HeaderCount), b.text(labels.HeaderDataType), b.text(labels.HeaderSample)))
		for _, f := range lists {
			list := f.value.([]any)
			typeLabel := b.text(labels.TypeUndefined)
			if len(list) > 0 {
				typeLabel = b.typeLabel(list[0])
			}
			sheet.data(Row{Cells: []Cell{
				{Value: Humanize(f.key)},
				{Value: float64(len(list)), Style: StyleNumeric},
				{Value: typeLabel},
				{Value: b.sample(list)},
			}})
		}
		sheet.blank()
	}

	return Sheet{Name: name, Rows: sheet.rows, Widths: columnWidths(sheet.rows, summaryMinWidth, summaryPadding, 0, summaryMaxWidth)}
}

func (b Builder) listSheet(name, key string, list []any, locale helpers.Locale) Sheet {
	sheet := &sheetBuilder{}
	sheet.add(textRow(StyleTitle, Humanize(key)))
	sheet.blank()

	if first, ok := list[0].(*payload.Map); ok {
		keys := first.Keys()
		headers := make([]any, len(keys))
		for i, k := range keys {
			headers[i] = Humanize(k)
		}
		sheet.add(textRow(StyleTableHeader, headers...))

		numeric := numericColumns(list, keys)
		for _, item := range list {
			m, _ := item.(*payload.Map)
			cells := make([]Cell, len(keys))
			for i, k := range keys {
				var value any
				if m != nil {
					value, _ = m.Get(k)
				}
				cells[i] = Cell{Value: FormatValue(locale, value)}
				if _, isNum := numberValue(value); isNum {
					cells[i].Style = StyleNumeric
				}
			}
			sheet.data(Row{Cells: cells})
		}

		if len(numeric) > 0 {
			totals := make([]Cell, len(keys))
			for i, k := range keys {
				switch {
				case numeric[k]:
					totals[i] = Cell{Value: round2(columnSum(list, k))}
				case i == 0:
					totals[i] = Cell{Value: b.text(labels.Totals)}
				default:
					totals[i] = Cell{Value: ""}
				}
			}
			sheet.add(Row{Cells: totals, Style: StyleTotals})
		}
	} else {
		sheet.add(textRow(StyleTableHeader, "#", b.text(labels.HeaderItem)))
		for i, item := range list {
			sheet.data(Row{Cells: []Cell{
				{Value: strconv.Itoa(i + 1)},
				{Value: FormatValue(locale, item)},
			}})
		}
	}

	return Sheet{Name: name, Rows: sheet.rows, Widths: columnWidths(sheet.rows, listMinWidth, 0, listPadding, listMaxWidth)}
}

func (b Builder) locale() helpers.Locale {
	if b.Locale != nil {
		return *b.Locale
	}
	return helpers.DefaultLocale()
}

func (b Builder) text(key string, args ...any) string {
	return b.Labels.Text(key, args...)
}

func (b Builder) summarySheetName() string {
	return b.text(labels.SummarySheet)
}

// typeLabel translates TypeLabel.
func (b Builder) typeLabel(v any) string {
	if list, ok := v.([]any); ok {
		return b.text(labels.TypeList, len(list))
	}
	if key, ok := typeKeys[TypeLabel(v)]; ok {
		return b.text(key)
	}
	return TypeLabel(v)
}

func (b Builder) sample(list []any) string {
	if len(list) == 0 {
		return b.text(labels.SampleEmpty)
	}
	return sample(list)
}

func (b Builder) valueRow(label string, value any, locale helpers.Locale) Row {
	row := Row{Cells: []Cell{
		{Value: label},
		{Value: FormatValue(locale, value)},
		{Value: b.typeLabel(value)},
	}}
	if _, ok := numberValue(value); ok {
		row.Cells[1].Style = StyleNumeric
	}
	return row
}

type stat struct {
	label string
	value float64
}

func statistics(numbers []float64) []stat {
	sum := 0.0
	high, low := math.Inf(-1), math.Inf(1)
	for _, n := range numbers {
		sum += n
		high = math.Max(high, n)
		low = math.Min(low, n)
	}
	return []stat{
		{labels.StatCount, float64(len(numbers))},
		{labels.StatSum, round2(sum)},
		{labels.StatMean, round2(sum / float64(len(numbers)))},
		{labels.StatMax, round2(high)},
		{labels.StatMin, round2(low)},
	}
}

// sheetBuilder bands data rows by their position in the sheet.
type sheetBuilder struct {
	rows []Row
}

func (s *sheetBuilder) add(row Row) {
	s.rows = append(s.rows, row)
}

func (s *sheetBuilder) blank() {
	s.rows = append(s.rows, Row{})
}

func (s *sheetBuilder) data(row Row) {
	if len(s.rows)%2 == 0 {
		row.Style = StyleBandEven
	} else {
		row.Style = StyleBandOdd
	}
	s.add(row)
}

// columnWidths sizes every column from its longest cell text. Empty cells
// are ignored.
func columnWidths(rows []Row, minWidth, cellPadding, extra, maxWidth int) []float64 {
	var widths []int
	for _, row := range rows {
		for i, cell := range row.Cells {
			for len(widths) <= i {
				widths = append(widths, minWidth)
			}
			text := cell.Text()
			if text == "" {
				continue
			}
			if w := utf8.RuneCountInString(text) + cellPadding; w > widths[i] {
				widths[i] = w
			}
		}
	}
	out := make([]float64, len(widths))
	for i, w := range widths {
		out[i] = float64(min(w+extra, maxWidth))
	}
	return out
}
