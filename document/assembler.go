package document

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-report/helpers"
	"github.com/goliatone/go-report/labels"
	"github.com/goliatone/go-report/report"
)

// TemplateExecutor executes the document shell with a context.
type TemplateExecutor interface {
	ExecuteWriter(ctx pongo2.Context, w io.Writer) error
}

// Assembler wraps resolved markup into a complete printable HTML document.
type Assembler struct {
	// Locale formats the "Generated at" timestamp. Zero value uses helpers.DefaultLocale().
	Locale *helpers.Locale
	// Labels translates the header and footer lines. Nil renders English.
	Labels *labels.Labels
	// Shell overrides the built-in document template.
	Shell TemplateExecutor
}

var _ report.DocumentAssembler = Assembler{}

var (
	shellOnce sync.Once
	shellTpl  *pongo2.Template
	shellErr  error
)

func defaultShell() (*pongo2.Template, error) {
	shellOnce.Do(func() {
		shellTpl, shellErr = pongo2.FromString(shellTemplate)
	})
	return shellTpl, shellErr
}

// Assemble never rejects input; missing options fall back to A4 portrait with
// 1cm margins.
func (a Assembler) Assemble(in report.AssembleInput) (string, error) {
	shell := a.Shell
	if shell == nil {
		tpl, err := defaultShell()
		if err != nil {
			return "", report.NewError(report.KindInternal, "document shell template is invalid", err)
		}
		shell = tpl
	}

	var b strings.Builder
	if err := shell.ExecuteWriter(a.context(in), &b); err != nil {
		return "", report.NewError(report.KindInternal, "document assembly failed", err)
	}
	return b.String(), nil
}

func (a Assembler) context(in report.AssembleInput) pongo2.Context {
	opts := in.Options.WithDefaults()
	locale := a.locale()

	generated := in.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	stamp := locale.DateTime(generated)
	return pongo2.Context{
		"title":          in.Title,
		"markup":         in.Markup,
		"style":          in.Style,
		"base_style":     BaseStyle,
		"page_size":      PageRule(opts),
		"margin":         MarginRule(opts.Margins),
		"generated_at":   stamp,
		"generated_line": a.Labels.Text(labels.GeneratedAt, stamp),
		"footer":         a.Labels.Text(labels.Footer),
	}
}

func (a Assembler) locale() helpers.Locale {
	if a.Locale != nil {
		return *a.Locale
	}
	return helpers.DefaultLocale()
}

// PageRule returns the value of the CSS @page size property, e.g. "A4 landscape".
func PageRule(opts report.PageOptions) string {
	opts = opts.WithDefaults()
	return fmt.Sprintf("%s %s", opts.PageSize, opts.Orientation)
}

// MarginRule returns the four-value CSS margin shorthand.
func MarginRule(m report.Margins) string {
	m = report.PageOptions{Margins: m}.WithDefaults().Margins
	return strings.Join([]string{m.Top, m.Right, m.Bottom, m.Left}, " ")
}
