package workbook

import (
	"bytes"
	"encoding/xml"
)

// LegacyEncoder writes the XML Spreadsheet 2003 container, readable by
// spreadsheet applications that predate Office Open XML.
type LegacyEncoder struct{}

const (
	spreadsheetNS   = "urn:schemas-microsoft-com:office:spreadsheet"
	legacyCharWidth = 7.0
)

type xmlWorkbook struct {
	XMLName   xml.Name       `xml:"Workbook"`
	NS        string         `xml:"xmlns,attr"`
	SSNS      string         `xml:"xmlns:ss,attr"`
	Styles    []xmlStyle     `xml:"Styles>Style"`
	Worksheet []xmlWorksheet `xml:"Worksheet"`
}

type xmlStyle struct {
	ID           string           `xml:"ss:ID,attr"`
	Alignment    *xmlAlignment    `xml:"Alignment,omitempty"`
	Borders      *xmlBorders      `xml:"Borders,omitempty"`
	Font         *xmlFont         `xml:"Font,omitempty"`
	Interior     *xmlInterior     `xml:"Interior,omitempty"`
	NumberFormat *xmlNumberFormat `xml:"NumberFormat,omitempty"`
}

type xmlAlignment struct {
	Horizontal string `xml:"ss:Horizontal,attr,omitempty"`
	Vertical   string `xml:"ss:Vertical,attr,omitempty"`
}

type xmlBorders struct {
	Border []xmlBorder `xml:"Border"`
}

type xmlBorder struct {
	Position  string `xml:"ss:Position,attr"`
	LineStyle string `xml:"ss:LineStyle,attr"`
	Weight    int    `xml:"ss:Weight,attr"`
	Color     string `xml:"ss:Color,attr,omitempty"`
}

type xmlFont struct {
	Bold   int     `xml:"ss:Bold,attr,omitempty"`
	Italic int     `xml:"ss:Italic,attr,omitempty"`
	Size   float64 `xml:"ss:Size,attr,omitempty"`
	Color  string  `xml:"ss:Color,attr,omitempty"`
}

type xmlInterior struct {
	Color   string `xml:"ss:Color,attr"`
	Pattern string `xml:"ss:Pattern,attr"`
}

type xmlNumberFormat struct {
	Format string `xml:"ss:Format,attr"`
}

type xmlWorksheet struct {
	Name  string   `xml:"ss:Name,attr"`
	Table xmlTable `xml:"Table"`
}

type xmlTable struct {
	Columns []xmlColumn `xml:"Column"`
	Rows    []xmlRow    `xml:"Row"`
}

type xmlColumn struct {
	Width float64 `xml:"ss:Width,attr"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"Cell"`
}

type xmlCell struct {
	StyleID string  `xml:"ss:StyleID,attr,omitempty"`
	Data    xmlData `xml:"Data"`
}

type xmlData struct {
	Type  string `xml:"ss:Type,attr"`
	Value string `xml:",chardata"`
}

func (LegacyEncoder) Encode(wb Workbook) ([]byte, error) {
	doc := xmlWorkbook{
		NS:     spreadsheetNS,
		SSNS:   spreadsheetNS,
		Styles: legacyStyles(),
	}
	for _, sheet := range wb.Sheets {
		doc.Worksheet = append(doc.Worksheet, legacySheet(sheet))
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<?mso-application progid="Excel.Sheet"?>` + "\n")
	enc := xml.NewEncoder(&buf)
	enc.Indent("", " ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func legacySheet(sheet Sheet) xmlWorksheet {
	ws := xmlWorksheet{Name: sheet.Name}
	for _, width := range sheet.Widths {
		ws.Table.Columns = append(ws.Table.Columns, xmlColumn{Width: width * legacyCharWidth})
	}
	for _, row := range sheet.Rows {
		xr := xmlRow{}
		for _, cell := range row.Cells {
			xc := xmlCell{StyleID: string(cell.EffectiveStyle(row))}
			if _, ok := cell.Value.(float64); ok {
				xc.Data = xmlData{Type: "Number", Value: cell.Text()}
			} else {
				xc.Data = xmlData{Type: "String", Value: cell.Text()}
			}
			xr.Cells = append(xr.Cells, xc)
		}
		ws.Table.Rows = append(ws.Table.Rows, xr)
	}
	return ws
}

func legacyStyles() []xmlStyle {
	solid := func(color string) *xmlInterior {
		return &xmlInterior{Color: color, Pattern: "Solid"}
	}
	thin := func(color string) *xmlBorders {
		return &xmlBorders{Border: []xmlBorder{
			{Position: "Top", LineStyle: "Continuous", Weight: 1, Color: color},
			{Position: "Bottom", LineStyle: "Continuous", Weight: 1, Color: color},
			{Position: "Left", LineStyle: "Continuous", Weight: 1, Color: color},
			{Position: "Right", LineStyle: "Continuous", Weight: 1, Color: color},
		}}
	}

	return []xmlStyle{
		{
			ID:        string(StyleTitle),
			Alignment: &xmlAlignment{Horizontal: "Center", Vertical: "Center"},
			Font:      &xmlFont{Bold: 1, Size: 16, Color: "#FFFFFF"},
			Interior:  solid("#1F4E79"),
		},
		{
			ID:        string(StyleSubtitle),
			Alignment: &xmlAlignment{Horizontal: "Center"},
			Font:      &xmlFont{Bold: 1, Size: 14, Color: "#1F4E79"},
			Interior:  solid("#E7F3FF"),
		},
		{
			ID:        string(StyleSection),
			Alignment: &xmlAlignment{Horizontal: "Left", Vertical: "Center"},
			Font:      &xmlFont{Bold: 1, Size: 12, Color: "#FFFFFF"},
			Interior:  solid("#2E8B57"),
		},
		{
			ID:       string(StyleSubsection),
			Font:     &xmlFont{Bold: 1, Italic: 1, Color: "#4A90E2"},
			Interior: solid("#F0F8FF"),
		},
		{
			ID:        string(StyleTableHeader),
			Alignment: &xmlAlignment{Horizontal: "Center"},
			Borders: &xmlBorders{Border: []xmlBorder{
				{Position: "Top", LineStyle: "Continuous", Weight: 2, Color: "#1F4E79"},
				{Position: "Bottom", LineStyle: "Continuous", Weight: 2, Color: "#1F4E79"},
				{Position: "Left", LineStyle: "Continuous", Weight: 1, Color: "#1F4E79"},
				{Position: "Right", LineStyle: "Continuous", Weight: 1, Color: "#1F4E79"},
			}},
			Font:     &xmlFont{Bold: 1, Color: "#1F4E79"},
			Interior: solid("#B4D7FF"),
		},
		{
			ID:        string(StyleBandEven),
			Alignment: &xmlAlignment{Vertical: "Center"},
			Borders:   thin("#E0E0E0"),
			Interior:  solid("#F8F9FA"),
		},
		{
			ID:        string(StyleBandOdd),
			Alignment: &xmlAlignment{Vertical: "Center"},
			Borders:   thin("#E0E0E0"),
			Interior:  solid("#FFFFFF"),
		},
		{
			ID:           string(StyleNumeric),
			Alignment:    &xmlAlignment{Horizontal: "Right", Vertical: "Center"},
			Borders:      thin("#E0E0E0"),
			NumberFormat: &xmlNumberFormat{Format: numericFormat},
		},
		{
			ID:           string(StyleTotals),
			Font:         &xmlFont{Bold: 1},
			Interior:     solid("#E6E6FA"),
			NumberFormat: &xmlNumberFormat{Format: numericFormat},
		},
	}
}
