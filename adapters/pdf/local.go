package reportpdf

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-report/helpers"
	"github.com/goliatone/go-report/labels"
	"github.com/goliatone/go-report/report"
)

// DefaultTextLimit caps the extracted body text in the degraded document.
const DefaultTextLimit = 2000

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	textPolicy        = bluemonday.StrictPolicy()
)

// LocalStrategy produces a simplified PDF in-process: title, timestamp, a
// degraded-mode notice, the document text without markup, and page numbers.
// It needs no network access and is the last resort of the chain.
type LocalStrategy struct {
	TextLimit int
	Locale    *helpers.Locale
	Labels    *labels.Labels
}

func (s LocalStrategy) Name() string {
	return "local"
}

func (s LocalStrategy) Render(ctx context.Context, job report.DocumentJob) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	opts := job.Options.WithDefaults()
	margins, err := marginsMillimeters(opts.Margins)
	if err != nil {
		return nil, err
	}

	orientation := "P"
	if opts.IsLandscape() {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", gofpdfSize(opts.PageSize), "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(margins.left, margins.top, margins.right)
	pdf.SetAutoPageBreak(true, margins.bottom+10)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-(margins.bottom + 8))
		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(0, 8, tr(s.Labels.Text(labels.PageOf, pdf.PageNo(), "{nb}")), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.MultiCell(0, 10, tr(job.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 12)
	generated, notice := s.captions(job)
	pdf.CellFormat(0, 7, tr(generated), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, tr(notice), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, tr(ExtractText(job.HTML, s.textLimit())), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("local pdf render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// ExtractText strips markup, drops script and style contents, unescapes
// entities, collapses whitespace and truncates to limit runes. A limit of zero
// or less keeps the whole text.
func ExtractText(markup string, limit int) string {
	text := html.UnescapeString(textPolicy.Sanitize(markup))
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	if limit > 0 {
		if runes := []rune(text); len(runes) > limit {
			text = string(runes[:limit])
		}
	}
	return text
}

// captions returns the timestamp line and the degraded-mode notice printed
// under the title.
func (s LocalStrategy) captions(job report.DocumentJob) (generated, notice string) {
	generated = s.Labels.Text(labels.GeneratedAt, s.locale().DateTime(generatedAt(job)))
	return generated, s.Labels.Text(labels.DegradedNotice)
}

func (s LocalStrategy) textLimit() int {
	if s.TextLimit > 0 {
		return s.TextLimit
	}
	return DefaultTextLimit
}

func (s LocalStrategy) locale() helpers.Locale {
	if s.Locale != nil {
		return *s.Locale
	}
	return helpers.DefaultLocale()
}

func generatedAt(job report.DocumentJob) time.Time {
	if job.GeneratedAt.IsZero() {
		return time.Now()
	}
	return job.GeneratedAt
}

func gofpdfSize(pageSize string) string {
	switch strings.ToUpper(pageSize) {
	case "A3":
		return "A3"
	case "LETTER":
		return "Letter"
	default:
		return "A4"
	}
}

type pageMarginsMM struct {
	top, right, bottom, left float64
}

func marginsMillimeters(m report.Margins) (pageMarginsMM, error) {
	var out pageMarginsMM
	fields := []struct {
		value string
		dst   *float64
	}{
		{m.Top, &out.top},
		{m.Right, &out.right},
		{m.Bottom, &out.bottom},
		{m.Left, &out.left},
	}
	for _, f := range fields {
		mm, err := report.ParseLengthMillimeters(f.value)
		if err != nil {
			return pageMarginsMM{}, err
		}
		*f.dst = mm
	}
	return out, nil
}
