package workbook

import (
	"bytes"
	"context"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-report/payload"
	"github.com/goliatone/go-report/report"
)

type EncoderSuite struct {
	suite.Suite
	data *payload.Map
}

func TestEncoderSuite(t *testing.T) {
	suite.Run(t, new(EncoderSuite))
}

func (s *EncoderSuite) SetupTest() {
	s.data = payload.MustParse(`{
		"client": "Ana",
		"items": [{"n": "a", "v": 10}, {"n": "b", "v": 20}],
		"tags": ["x", "y"]
	}`)
}

func (s *EncoderSuite) TestXLSXSheetsAndTotals() {
	out, err := Renderer{}.Render(context.Background(), "Report", s.data, report.FormatSpreadsheet, fixedTime)
	s.Require().NoError(err)

	file, err := excelize.OpenReader(bytes.NewReader(out))
	s.Require().NoError(err)
	defer func() { _ = file.Close() }()

	s.Equal([]string{"Summary", "Items", "Tags"}, file.GetSheetList())

	rows, err := file.GetRows("Items")
	s.Require().NoError(err)
	s.Require().Len(rows, 6)
	s.Equal([]string{"N", "V"}, rows[2])
	s.Equal("TOTALS", rows[5][0])

	total, err := file.GetCellValue("Items", "B6", excelize.Options{RawCellValue: true})
	s.Require().NoError(err)
	s.Equal("30", total)

	title, err := file.GetCellValue("Summary", "A1")
	s.Require().NoError(err)
	s.Equal("REPORT", title)

	width, err := file.GetColWidth("Items", "A")
	s.Require().NoError(err)
	s.InDelta(12.0, width, 0.01)
}

func (s *EncoderSuite) TestXLSXAppliesStyles() {
	out, err := XLSXEncoder{}.Encode(Builder{}.Build("Report", s.data, fixedTime))
	s.Require().NoError(err)

	file, err := excelize.OpenReader(bytes.NewReader(out))
	s.Require().NoError(err)
	defer func() { _ = file.Close() }()

	titleStyle, err := file.GetCellStyle("Summary", "A1")
	s.Require().NoError(err)
	style, err := file.GetStyle(titleStyle)
	s.Require().NoError(err)
	s.Require().NotNil(style.Font)
	s.True(style.Font.Bold)
}

func (s *EncoderSuite) TestLegacyIsSpreadsheetXML() {
	out, err := Renderer{}.Render(context.Background(), "Report", s.data, report.FormatSpreadsheetLegacy, fixedTime)
	s.Require().NoError(err)
	s.True(bytes.HasPrefix(out, []byte(xml.Header)))
	s.Contains(string(out), `<?mso-application progid="Excel.Sheet"?>`)

	var doc struct {
		Worksheets []struct {
			Name string `xml:"Name,attr"`
			Rows []struct {
				Cells []struct {
					Data struct {
						Type  string `xml:"Type,attr"`
						Value string `xml:",chardata"`
					} `xml:"Data"`
				} `xml:"Cell"`
			} `xml:"Table>Row"`
		} `xml:"Worksheet"`
	}
	s.Require().NoError(xml.Unmarshal(out[len(xml.Header):], &doc))
	s.Require().Len(doc.Worksheets, 3)
	s.Equal("Items", doc.Worksheets[1].Name)

	totals := doc.Worksheets[1].Rows[5].Cells
	s.Equal("TOTALS", totals[0].Data.Value)
	s.Equal("Number", totals[1].Data.Type)
	s.Equal("30", totals[1].Data.Value)
}

func (s *EncoderSuite) TestSameContentAcrossContainers() {
	wb := Builder{}.Build("Report", s.data, fixedTime)

	modern, err := XLSXEncoder{}.Encode(wb)
	s.Require().NoError(err)
	file, err := excelize.OpenReader(bytes.NewReader(modern))
	s.Require().NoError(err)
	defer func() { _ = file.Close() }()

	for _, sheet := range wb.Sheets {
		rows, err := file.GetRows(sheet.Name)
		s.Require().NoError(err)
		for r, row := range sheet.Rows {
			for c, cell := range row.Cells {
				if cell.Text() == "" {
					continue
				}
				if _, numeric := cell.Value.(float64); numeric {
					continue
				}
				s.Require().Greater(len(rows), r)
				s.Require().Greater(len(rows[r]), c)
				s.Equal(cell.Text(), rows[r][c], "sheet %s row %d col %d", sheet.Name, r, c)
			}
		}
	}
}

func (s *EncoderSuite) TestRejectsDocumentFormat() {
	_, err := Renderer{}.Render(context.Background(), "Report", s.data, report.FormatDocument, fixedTime)
	s.Equal(report.KindValidation, report.KindFromError(err))
}

func (s *EncoderSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Renderer{}.Render(ctx, "Report", s.data, report.FormatSpreadsheet, fixedTime)
	s.Equal(report.KindCanceled, report.KindFromError(err))
}
