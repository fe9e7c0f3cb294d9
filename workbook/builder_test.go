package workbook

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-report/labels"
	"github.com/goliatone/go-report/payload"
)

var fixedTime = time.Date(2024, 3, 5, 15, 30, 0, 0, time.UTC)

func rowTexts(row Row) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.Text()
	}
	return out
}

func findRow(t *testing.T, sheet Sheet, first string) (int, Row) {
	t.Helper()
	for i, row := range sheet.Rows {
		if len(row.Cells) > 0 && row.Cells[0].Text() == first {
			return i, row
		}
	}
	t.Fatalf("row starting with %q not found in sheet %q", first, sheet.Name)
	return -1, Row{}
}

func TestBuild_ListOfMapsSheetWithTotals(t *testing.T) {
	data := payload.MustParse(`{"items":[{"n":"a","v":10},{"n":"b","v":20}]}`)
	wb := Builder{}.Build("T", data, fixedTime)

	require.Len(t, wb.Sheets, 2)
	assert.Equal(t, SummarySheetName, wb.Sheets[0].Name)

	sheet := wb.Sheets[1]
	assert.Equal(t, "Items", sheet.Name)
	require.Len(t, sheet.Rows, 6)

	assert.Equal(t, []string{"Items"}, rowTexts(sheet.Rows[0]))
	assert.Empty(t, sheet.Rows[1].Cells)
	assert.Equal(t, []string{"N", "V"}, rowTexts(sheet.Rows[2]))
	assert.Equal(t, StyleTableHeader, sheet.Rows[2].Style)
	assert.Equal(t, []string{"a", "10"}, rowTexts(sheet.Rows[3]))
	assert.Equal(t, []string{"b", "20"}, rowTexts(sheet.Rows[4]))

	totals := sheet.Rows[5]
	assert.Equal(t, StyleTotals, totals.Style)
	assert.Equal(t, "TOTALS", totals.Cells[0].Value)
	assert.InDelta(t, 30.0, totals.Cells[1].Value, 1e-9)
}

func TestBuild_TotalsOnlyForNumberColumns(t *testing.T) {
	data := payload.MustParse(`{"sales":[{"amount":1.5,"code":"10"},{"amount":"2.5 units","code":"20"}]}`)
	wb := Builder{}.Build("T", data, fixedTime)
	sheet, ok := wb.Sheet("Sales")
	require.True(t, ok)

	totals := sheet.Rows[len(sheet.Rows)-1]
	require.Equal(t, StyleTotals, totals.Style)
	// amount holds a number in the first row; "2.5 units" is read as 2.5
	assert.InDelta(t, 4.0, totals.Cells[0].Value, 1e-9)
	assert.Equal(t, "", totals.Cells[1].Value)
}

func TestBuild_NoTotalsWithoutNumbers(t *testing.T) {
	data := payload.MustParse(`{"people":[{"name":"a"},{"name":"b"}]}`)
	sheet, ok := Builder{}.Build("T", data, fixedTime).Sheet("People")
	require.True(t, ok)
	for _, row := range sheet.Rows {
		assert.NotEqual(t, StyleTotals, row.Style)
	}
}

func TestBuild_ScalarListSheet(t *testing.T) {
	data := payload.MustParse(`{"tags":["x",true,1500.5],"empty":[]}`)
	wb := Builder{}.Build("T", data, fixedTime)

	require.Len(t, wb.Sheets, 2, "empty lists get no sheet")
	sheet := wb.Sheets[1]
	assert.Equal(t, []string{"#", "Item"}, rowTexts(sheet.Rows[2]))
	assert.Equal(t, []string{"1", "x"}, rowTexts(sheet.Rows[3]))
	assert.Equal(t, []string{"2", "Yes"}, rowTexts(sheet.Rows[4]))
	assert.Equal(t, []string{"3", "1.500,50"}, rowTexts(sheet.Rows[5]))
}

func TestBuild_SummarySections(t *testing.T) {
	data := payload.MustParse(`{
		"clientName": "Ana",
		"total": 10,
		"ratio": "2.5",
		"email": "a@b.co",
		"company": {"legal_name": "ACME", "founded": "2001-05-01"},
		"items": [{"n": "a"}],
		"tags": []
	}`)
	summary := Builder{}.Build("quarterly report", data, fixedTime).Sheets[0]

	assert.Equal(t, []string{"QUARTERLY REPORT"}, rowTexts(summary.Rows[0]))
	assert.Equal(t, StyleTitle, summary.Rows[0].Style)
	assert.Equal(t, []string{"DETAILED REPORT"}, rowTexts(summary.Rows[2]))
	assert.Equal(t, []string{"Generated at:", "05/03/2024 12:30"}, rowTexts(summary.Rows[3]))

	_, header := findRow(t, summary, "Field")
	assert.Equal(t, StyleTableHeader, header.Style)

	_, client := findRow(t, summary, "Client Name")
	assert.Equal(t, []string{"Client Name", "Ana", "Text"}, rowTexts(client))
	_, ratio := findRow(t, summary, "Ratio")
	assert.Equal(t, "Numeric Text", ratio.Cells[2].Value)
	_, email := findRow(t, summary, "Email")
	assert.Equal(t, "Email", email.Cells[2].Value)

	_, count := findRow(t, summary, "Numeric fields")
	assert.Equal(t, 2.0, count.Cells[1].Value)
	_, sum := findRow(t, summary, "Sum")
	assert.Equal(t, 12.5, sum.Cells[1].Value)
	_, mean := findRow(t, summary, "Mean")
	assert.Equal(t, 6.25, mean.Cells[1].Value)
	_, high := findRow(t, summary, "Max")
	assert.Equal(t, 10.0, high.Cells[1].Value)
	_, low := findRow(t, summary, "Min")
	assert.Equal(t, 2.5, low.Cells[1].Value)

	idx, sub := findRow(t, summary, "📁 Company")
	assert.Equal(t, StyleSubsection, sub.Style)
	assert.Equal(t, []string{"Property", "Value", "Type"}, rowTexts(summary.Rows[idx+1]))
	assert.Equal(t, []string{"Legal Name", "ACME", "Text"}, rowTexts(summary.Rows[idx+2]))
	assert.Equal(t, []string{"Founded", "2001-05-01", "Date"}, rowTexts(summary.Rows[idx+3]))

	_, items := findRow(t, summary, "Items")
	assert.Equal(t, []string{"Items", "1", "Object", "n"}, rowTexts(items))
	_, tags := findRow(t, summary, "Tags")
	assert.Equal(t, []string{"Tags", "0", "Undefined", "Empty"}, rowTexts(tags))
}

func TestBuild_StatisticsCoerceLikeNumber(t *testing.T) {
	data := payload.MustParse(`{"active":true,"n":null,"blank":"","count":"5","name":"ana"}`)
	summary := Builder{}.Build("T", data, fixedTime).Sheets[0]

	_, count := findRow(t, summary, "Numeric fields")
	assert.Equal(t, 4.0, count.Cells[1].Value)
	_, sum := findRow(t, summary, "Sum")
	assert.Equal(t, 6.0, sum.Cells[1].Value)
	_, low := findRow(t, summary, "Min")
	assert.Equal(t, 0.0, low.Cells[1].Value)
}

func TestBuild_SummaryWithoutNumbersHasNoStatistics(t *testing.T) {
	summary := Builder{}.Build("T", payload.MustParse(`{"a":"x"}`), fixedTime).Sheets[0]
	for _, row := range summary.Rows {
		if len(row.Cells) > 0 {
			assert.NotEqual(t, "NUMERIC STATISTICS", row.Cells[0].Text())
		}
	}
}

func TestBuild_DataRowsAreBanded(t *testing.T) {
	summary := Builder{}.Build("T", payload.MustParse(`{"a":"x","b":"y"}`), fixedTime).Sheets[0]
	ia, a := findRow(t, summary, "A")
	ib, b := findRow(t, summary, "B")
	require.Equal(t, ia+1, ib)
	assert.NotEqual(t, a.Style, b.Style)
	assert.Contains(t, []Style{StyleBandEven, StyleBandOdd}, a.Style)
}

func TestBuild_SheetNamesAreValidAndUnique(t *testing.T) {
	long := strings.Repeat("very_long_name_", 4)
	data := payload.MustParse(`{"summary":[1],"` + long + `a":[1],"` + long + `b":[1],"a/b":[1]}`)
	wb := Builder{}.Build("T", data, fixedTime)

	seen := map[string]bool{}
	for _, s := range wb.Sheets {
		assert.LessOrEqual(t, len([]rune(s.Name)), MaxSheetNameLength)
		assert.False(t, seen[strings.ToLower(s.Name)], "duplicate sheet %q", s.Name)
		seen[strings.ToLower(s.Name)] = true
	}
	assert.Equal(t, "Summary (2)", wb.Sheets[1].Name)
	assert.Equal(t, "Ab", wb.Sheets[4].Name)
}

func TestBuild_ColumnWidths(t *testing.T) {
	data := payload.MustParse(`{"items":[{"description":"` + strings.Repeat("x", 80) + `","v":1}]}`)
	wb := Builder{}.Build("T", data, fixedTime)

	sheet := wb.Sheets[1]
	require.Len(t, sheet.Widths, 2)
	assert.Equal(t, 50.0, sheet.Widths[0])
	assert.Equal(t, 12.0, sheet.Widths[1])

	for _, w := range wb.Sheets[0].Widths {
		assert.GreaterOrEqual(t, w, 12.0)
		assert.LessOrEqual(t, w, 60.0)
	}
}

func TestBuild_NilData(t *testing.T) {
	wb := Builder{}.Build("T", nil, time.Time{})
	require.Len(t, wb.Sheets, 1)
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"clientName":   "Client Name",
		"legal_name":   "Legal Name",
		"due-date":     "Due Date",
		"v":            "V",
		"TOTAL":        "T O T A L",
		"already_done": "Already Done",
	}
	for in, want := range cases {
		assert.Equal(t, want, Humanize(in), in)
	}
}

func TestTypeLabel(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{nil, TypeNull},
		{true, TypeBoolean},
		{1.5, TypeNumber},
		{"2024-01-01T10:00", TypeDate},
		{"123.45", TypeNumericText},
		{"x@y", TypeEmail},
		{strings.Repeat("a", 101), TypeLongText},
		{"hello", TypeText},
		{[]any{1, 2}, "List (2 items)"},
		{payload.NewMap(), TypeObject},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TypeLabel(tc.value))
	}
}

func TestBuild_TranslatedLabels(t *testing.T) {
	pt, err := labels.New("pt-BR")
	require.NoError(t, err)

	data := payload.MustParse(`{"cliente":"Ana","total":10,"itens":[{"n":"a","v":2},{"n":"b","v":3}],"vazia":[]}`)
	wb := Builder{Labels: pt}.Build("vendas", data, fixedTime)

	summary := wb.Sheets[0]
	assert.Equal(t, "Resumo", summary.Name)
	assert.Equal(t, []string{"RELATÓRIO DETALHADO"}, rowTexts(summary.Rows[2]))
	assert.Equal(t, "Gerado em:", summary.Rows[3].Cells[0].Text())
	findRow(t, summary, "INFORMAÇÕES GERAIS")
	findRow(t, summary, "ESTATÍSTICAS NUMÉRICAS")
	findRow(t, summary, "RESUMO DE LISTAS")

	_, header := findRow(t, summary, "Campo")
	assert.Equal(t, []string{"Campo", "Valor", "Tipo"}, rowTexts(header))
	_, client := findRow(t, summary, "Cliente")
	assert.Equal(t, "Texto", client.Cells[2].Text())
	_, count := findRow(t, summary, "Total de campos numéricos")
	assert.Equal(t, 1.0, count.Cells[1].Value)
	_, empty := findRow(t, summary, "Vazia")
	assert.Equal(t, []string{"Vazia", "0", "Indefinido", "Vazio"}, rowTexts(empty))

	items := wb.Sheets[1]
	last := items.Rows[len(items.Rows)-1]
	assert.Equal(t, StyleTotals, last.Style)
	assert.Equal(t, "TOTAIS", last.Cells[0].Text())
	assert.Equal(t, 5.0, last.Cells[1].Value)
}
