package report

import (
	"errors"
	"math"
	"testing"

	"github.com/goliatone/go-report/payload"
)

func TestValidateRequest_CollectsFieldErrors(t *testing.T) {
	err := ValidateRequest(Request{
		Format: FormatDocument,
		Options: PageOptions{
			PageSize:    "B5",
			Orientation: "diagonal",
			Margins:     Margins{Top: "abc"},
		},
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if KindFromError(err) != KindValidation {
		t.Fatalf("expected validation kind, got %v", KindFromError(err))
	}

	fields := map[string]bool{}
	for _, detail := range FieldErrors(err) {
		fields[detail.Field] = true
	}
	for _, want := range []string{"title", "data", "template.markup", "options.pageSize", "options.orientation", "options.margins.top"} {
		if !fields[want] {
			t.Fatalf("expected field error for %s, got %v", want, FieldErrors(err))
		}
	}
}

func TestValidateRequest_SpreadsheetDoesNotNeedMarkup(t *testing.T) {
	err := ValidateRequest(NormalizeRequest(Request{
		Title:  "Sales",
		Format: FormatSpreadsheet,
		Data:   payload.NewMap(),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequest_UnknownFormat(t *testing.T) {
	err := ValidateRequest(Request{Title: "T", Format: "docx", Data: payload.NewMap()})
	details := FieldErrors(err)
	if len(details) != 1 || details[0].Field != "format" {
		t.Fatalf("expected single format error, got %v", details)
	}
}

func TestNormalizeRequest_Defaults(t *testing.T) {
	req := NormalizeRequest(Request{Title: "  T  ", Options: PageOptions{PageSize: "letter", Margins: Margins{Left: "2cm"}}})
	if req.Title != "T" {
		t.Fatalf("expected trimmed title, got %q", req.Title)
	}
	if req.Options.PageSize != PageLetter {
		t.Fatalf("expected canonical page size, got %q", req.Options.PageSize)
	}
	if req.Options.Orientation != Portrait {
		t.Fatalf("expected portrait default, got %q", req.Options.Orientation)
	}
	m := req.Options.Margins
	if m.Top != "1cm" || m.Right != "1cm" || m.Bottom != "1cm" || m.Left != "2cm" {
		t.Fatalf("unexpected margins: %+v", m)
	}
}

func TestParseLengthInches(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"1in", 1},
		{"2.54cm", 1},
		{"25.4mm", 1},
		{"72pt", 1},
		{"96px", 1},
		{"0.5", 0.5},
	}
	for _, tc := range cases {
		got, err := ParseLengthInches(tc.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.input, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("parse %q = %v, want %v", tc.input, got, tc.want)
		}
	}

	if _, err := ParseLengthInches("3em"); err == nil {
		t.Fatalf("expected unsupported unit error")
	}
}

func TestFilename(t *testing.T) {
	got := Filename("Relatório de Vendas 2024", "abc", FormatSpreadsheetLegacy)
	if got != "Relat_rio_de_Vendas_2024_abc.xls" {
		t.Fatalf("unexpected filename %q", got)
	}
}

func TestParseFormat_Aliases(t *testing.T) {
	cases := map[string]Format{
		"pdf":                FormatDocument,
		"XLSX":               FormatSpreadsheet,
		"xls":                FormatSpreadsheetLegacy,
		"spreadsheet-legacy": FormatSpreadsheetLegacy,
	}
	for input, want := range cases {
		got, ok := ParseFormat(input)
		if !ok || got != want {
			t.Fatalf("ParseFormat(%q) = %v %v, want %v", input, got, ok, want)
		}
	}
	if _, ok := ParseFormat("csv"); ok {
		t.Fatalf("expected csv to be rejected")
	}
}

func TestAsGoError_Categories(t *testing.T) {
	ge := AsGoError(NewError(KindUnauthorized, "nope", nil))
	if ge.TextCode != "unauthorized" {
		t.Fatalf("expected unauthorized code, got %q", ge.TextCode)
	}
	ge = AsGoError(NewError(KindRenderExhausted, "all failed", errors.New("boom")))
	if ge.TextCode != "render_exhausted" || ge.Message != "all failed" {
		t.Fatalf("unexpected mapping: %+v", ge)
	}
	ge = AsGoError(errors.New("plain"))
	if ge.TextCode != "internal" {
		t.Fatalf("expected internal code, got %q", ge.TextCode)
	}
}
