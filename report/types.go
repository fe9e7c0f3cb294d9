package report

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-report/payload"
)

// Format identifies the artifact kind produced for a request.
type Format string

const (
	FormatDocument          Format = "document"
	FormatSpreadsheet       Format = "spreadsheet-modern"
	FormatSpreadsheetLegacy Format = "spreadsheet-legacy"
)

var formatAliases = map[string]Format{
	"document":           FormatDocument,
	"pdf":                FormatDocument,
	"spreadsheet-modern": FormatSpreadsheet,
	"xlsx":               FormatSpreadsheet,
	"spreadsheet-legacy": FormatSpreadsheetLegacy,
	"xls":                FormatSpreadsheetLegacy,
}

// ParseFormat resolves a format selector, accepting the short aliases pdf, xlsx and xls.
func ParseFormat(value string) (Format, bool) {
	format, ok := formatAliases[strings.ToLower(strings.TrimSpace(value))]
	return format, ok
}

// IsSpreadsheet reports whether the format is built from raw data.
func (f Format) IsSpreadsheet() bool {
	return f == FormatSpreadsheet || f == FormatSpreadsheetLegacy
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatSpreadsheet:
		return "xlsx"
	case FormatSpreadsheetLegacy:
		return "xls"
	default:
		return "pdf"
	}
}

// ContentType returns the MIME type of the artifact.
func (f Format) ContentType() string {
	switch f {
	case FormatSpreadsheet:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatSpreadsheetLegacy:
		return "application/vnd.ms-excel"
	default:
		return "application/pdf"
	}
}

// Page sizes.
const (
	PageA4     = "A4"
	PageA3     = "A3"
	PageLetter = "Letter"
)

// Orientation values.
const (
	Portrait  = "portrait"
	Landscape = "landscape"
)

// DefaultMargin applies to every unset side.
const DefaultMargin = "1cm"

// Margins holds CSS lengths for each side of the page.
type Margins struct {
	Top    string `json:"top,omitempty"`
	Right  string `json:"right,omitempty"`
	Bottom string `json:"bottom,omitempty"`
	Left   string `json:"left,omitempty"`
}

// PageOptions configures page layout for document output.
type PageOptions struct {
	PageSize    string  `json:"pageSize,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	Margins     Margins `json:"margins,omitempty"`
}

// IsLandscape reports whether the orientation is landscape.
func (o PageOptions) IsLandscape() bool {
	return strings.EqualFold(o.Orientation, Landscape)
}

// WithDefaults fills unset fields with A4, portrait and 1cm margins.
func (o PageOptions) WithDefaults() PageOptions {
	if strings.TrimSpace(o.PageSize) == "" {
		o.PageSize = PageA4
	}
	if strings.TrimSpace(o.Orientation) == "" {
		o.Orientation = Portrait
	}
	o.Margins.Top = defaultMargin(o.Margins.Top)
	o.Margins.Right = defaultMargin(o.Margins.Right)
	o.Margins.Bottom = defaultMargin(o.Margins.Bottom)
	o.Margins.Left = defaultMargin(o.Margins.Left)
	return o
}

func defaultMargin(value string) string {
	if strings.TrimSpace(value) == "" {
		return DefaultMargin
	}
	return strings.TrimSpace(value)
}

// Template holds the markup and optional style sheet for document output.
type Template struct {
	Markup string `json:"markup"`
	Style  string `json:"style,omitempty"`
}

// Request describes a single report generation call.
type Request struct {
	Title    string
	Format   Format
	Data     *payload.Map
	Template Template
	Options  PageOptions
}

// Result is the rendered artifact plus descriptive metadata.
type Result struct {
	ID          string
	Format      Format
	ContentType string
	Filename    string
	GeneratedAt time.Time
	Buffer      []byte
	// Strategy names the render strategy that produced a document.
	Strategy string
	Pages    int
}

// DocumentJob carries an assembled document into the render pipeline.
type DocumentJob struct {
	HTML        string
	Title       string
	Options     PageOptions
	GeneratedAt time.Time
}

// DocumentOutput is the render pipeline's result.
type DocumentOutput struct {
	PDF      []byte
	Strategy string
	Pages    int
}

// AssembleInput is what the document assembler wraps into a full document.
type AssembleInput struct {
	Title       string
	Markup      string
	Style       string
	Options     PageOptions
	GeneratedAt time.Time
}

// TemplateResolver merges data into markup.
type TemplateResolver interface {
	Resolve(markup string, data *payload.Map) string
}

// DocumentAssembler wraps resolved markup into a renderable document.
type DocumentAssembler interface {
	Assemble(in AssembleInput) (string, error)
}

// DocumentRenderer turns an assembled document into paginated binary output.
type DocumentRenderer interface {
	Render(ctx context.Context, job DocumentJob) (DocumentOutput, error)
}

// WorkbookRenderer builds and serializes a workbook from raw data.
type WorkbookRenderer interface {
	Render(ctx context.Context, title string, data *payload.Map, format Format, generatedAt time.Time) ([]byte, error)
}

// Logger is a minimal logging interface.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
