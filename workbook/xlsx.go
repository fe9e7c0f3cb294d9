package workbook

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

const numericFormat = "#,##0.00"

// Encoder serializes a workbook into a spreadsheet container.
type Encoder interface {
	Encode(wb Workbook) ([]byte, error)
}

// XLSXEncoder writes Office Open XML workbooks.
type XLSXEncoder struct{}

func (XLSXEncoder) Encode(wb Workbook) ([]byte, error) {
	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	styles, err := buildXLSXStyles(file)
	if err != nil {
		return nil, err
	}

	for i, sheet := range wb.Sheets {
		if i == 0 {
			file.SetSheetName(file.GetSheetName(0), sheet.Name)
		} else if _, err := file.NewSheet(sheet.Name); err != nil {
			return nil, err
		}
		if err := writeXLSXSheet(file, sheet, styles); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSXSheet(file *excelize.File, sheet Sheet, styles map[Style]int) error {
	stream, err := file.NewStreamWriter(sheet.Name)
	if err != nil {
		return err
	}
	for i, width := range sheet.Widths {
		if err := stream.SetColWidth(i+1, i+1, width); err != nil {
			return err
		}
	}

	for r, row := range sheet.Rows {
		cells := make([]interface{}, len(row.Cells))
		for c, cell := range row.Cells {
			cells[c] = excelize.Cell{StyleID: styles[cell.EffectiveStyle(row)], Value: cell.Value}
		}
		ref, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := stream.SetRow(ref, cells); err != nil {
			return err
		}
	}
	return stream.Flush()
}

func buildXLSXStyles(file *excelize.File) (map[Style]int, error) {
	thin := func(color string) []excelize.Border {
		return []excelize.Border{
			{Type: "top", Color: color, Style: 1},
			{Type: "bottom", Color: color, Style: 1},
			{Type: "left", Color: color, Style: 1},
			{Type: "right", Color: color, Style: 1},
		}
	}
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
	}
	numFmt := numericFormat

	definitions := map[Style]*excelize.Style{
		StyleTitle: {
			Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
			Fill:      fill("1F4E79"),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
		StyleSubtitle: {
			Font:      &excelize.Font{Bold: true, Size: 14, Color: "1F4E79"},
			Fill:      fill("E7F3FF"),
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
		StyleSection: {
			Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
			Fill:      fill("2E8B57"),
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		},
		StyleSubsection: {
			Font:      &excelize.Font{Bold: true, Italic: true, Color: "4A90E2"},
			Fill:      fill("F0F8FF"),
			Alignment: &excelize.Alignment{Horizontal: "left"},
		},
		StyleTableHeader: {
			Font:      &excelize.Font{Bold: true, Color: "1F4E79"},
			Fill:      fill("B4D7FF"),
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border: []excelize.Border{
				{Type: "top", Color: "1F4E79", Style: 2},
				{Type: "bottom", Color: "1F4E79", Style: 2},
				{Type: "left", Color: "1F4E79", Style: 1},
				{Type: "right", Color: "1F4E79", Style: 1},
			},
		},
		StyleBandEven: {
			Fill:      fill("F8F9FA"),
			Border:    thin("E0E0E0"),
			Alignment: &excelize.Alignment{Vertical: "center"},
		},
		StyleBandOdd: {
			Fill:      fill("FFFFFF"),
			Border:    thin("E0E0E0"),
			Alignment: &excelize.Alignment{Vertical: "center"},
		},
		StyleNumeric: {
			Border:       thin("E0E0E0"),
			Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			CustomNumFmt: &numFmt,
		},
		StyleTotals: {
			Font:         &excelize.Font{Bold: true},
			Fill:         fill("E6E6FA"),
			Border:       []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
			CustomNumFmt: &numFmt,
		},
	}

	ids := make(map[Style]int, len(definitions))
	for tag, def := range definitions {
		id, err := file.NewStyle(def)
		if err != nil {
			return nil, err
		}
		ids[tag] = id
	}
	return ids, nil
}
