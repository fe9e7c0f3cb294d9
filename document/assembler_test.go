package document

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-report/labels"
	"github.com/goliatone/go-report/report"
)

func TestAssembler_Defaults(t *testing.T) {
	generated := time.Date(2024, 3, 5, 15, 30, 0, 0, time.UTC)
	out, err := Assembler{}.Assemble(report.AssembleInput{
		Title:       "Sales",
		Markup:      "<p>ok</p>",
		GeneratedAt: generated,
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<meta charset="UTF-8">`,
		"<title>Sales</title>",
		"@page { size: A4 portrait; margin: 1cm 1cm 1cm 1cm; }",
		"<p>ok</p>",
		"<h1>Sales</h1>",
		"Generated at 05/03/2024 12:30",
		"Report generated automatically",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestAssembler_TranslatedLines(t *testing.T) {
	pt, err := labels.New(labels.BrazilianPortuguese)
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	out, err := Assembler{Labels: pt}.Assemble(report.AssembleInput{
		Title:       "Vendas",
		Markup:      "<p>ok</p>",
		GeneratedAt: time.Date(2024, 3, 5, 15, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	for _, want := range []string{"Gerado em 05/03/2024 12:30", "Relatório gerado automaticamente"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Generated at") {
		t.Fatalf("english header left in translated output")
	}
}

func TestAssembler_CallerStyleComesLast(t *testing.T) {
	out, err := Assembler{}.Assemble(report.AssembleInput{
		Title:  "T",
		Markup: "<p>x</p>",
		Style:  "h1 { color: red; }",
		Options: report.PageOptions{
			PageSize:    report.PageLetter,
			Orientation: report.Landscape,
			Margins:     report.Margins{Top: "2cm", Left: "5mm"},
		},
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	base := strings.Index(out, "h1 { color: #2c3e50")
	page := strings.Index(out, "@page { size: Letter landscape; margin: 2cm 1cm 1cm 5mm; }")
	caller := strings.Index(out, "h1 { color: red; }")
	if base < 0 || page < 0 || caller < 0 {
		t.Fatalf("missing style blocks in output:\n%s", out)
	}
	if !(base < page && page < caller) {
		t.Fatalf("expected base < page rule < caller style, got %d %d %d", base, page, caller)
	}
}

func TestAssembler_EscapesTitleNotMarkup(t *testing.T) {
	out, err := Assembler{}.Assemble(report.AssembleInput{
		Title:  "A & <B>",
		Markup: "<table><tr><td>1</td></tr></table>",
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !strings.Contains(out, "<title>A &amp; &lt;B&gt;</title>") {
		t.Fatalf("expected escaped title:\n%s", out)
	}
	if !strings.Contains(out, "<table><tr><td>1</td></tr></table>") {
		t.Fatalf("expected raw markup:\n%s", out)
	}
}

type failingShell struct{}

func (failingShell) ExecuteWriter(ctx pongo2.Context, w io.Writer) error {
	return errors.New("boom")
}

type echoShell struct{}

func (echoShell) ExecuteWriter(ctx pongo2.Context, w io.Writer) error {
	_, err := io.WriteString(w, ctx["page_size"].(string))
	return err
}

func TestAssembler_CustomShell(t *testing.T) {
	_, err := Assembler{Shell: failingShell{}}.Assemble(report.AssembleInput{})
	if report.KindFromError(err) != report.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}

	out, err := Assembler{Shell: echoShell{}}.Assemble(report.AssembleInput{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if out != "A4 portrait" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMarginRule(t *testing.T) {
	if got := MarginRule(report.Margins{Bottom: "0"}); got != "1cm 1cm 0 1cm" {
		t.Fatalf("unexpected margin rule %q", got)
	}
}
