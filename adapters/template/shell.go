package reporttemplate

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-report/document"
	"github.com/goliatone/go-report/report"
)

var markupRef = regexp.MustCompile(`\{\{-?\s*markup\b`)

// Shell is a compiled custom document shell.
type Shell struct {
	Name string
	tpl  *pongo2.Template
}

var _ document.TemplateExecutor = (*Shell)(nil)

// ExecuteWriter renders the shell.
func (s *Shell) ExecuteWriter(ctx pongo2.Context, w io.Writer) error {
	if s == nil || s.tpl == nil {
		return report.NewError(report.KindInternal, "document shell is not loaded", nil)
	}
	return s.tpl.ExecuteWriter(ctx, w)
}

// LoadShell compiles the shell template at path. Includes and extends are
// resolved relative to the file's directory.
func LoadShell(path string) (*Shell, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, report.NewError(report.KindValidation, "shell path is required", nil)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, report.NewError(report.KindValidation, "read document shell", err)
	}
	if !markupRef.Match(source) {
		return nil, report.NewError(report.KindValidation, fmt.Sprintf("document shell %s never prints markup", path), nil)
	}

	loader, err := pongo2.NewLocalFileSystemLoader(filepath.Dir(path))
	if err != nil {
		return nil, report.NewError(report.KindValidation, "document shell directory", err)
	}
	set := pongo2.NewSet("go-report-shell", loader)
	tpl, err := set.FromBytes(source)
	if err != nil {
		return nil, report.NewError(report.KindValidation, "compile document shell "+path, err)
	}
	return &Shell{Name: filepath.Base(path), tpl: tpl}, nil
}

// ParseShell compiles a shell from source.
func ParseShell(name, source string) (*Shell, error) {
	if !markupRef.MatchString(source) {
		return nil, report.NewError(report.KindValidation, fmt.Sprintf("document shell %s never prints markup", name), nil)
	}
	tpl, err := pongo2.FromString(source)
	if err != nil {
		return nil, report.NewError(report.KindValidation, "compile document shell "+name, err)
	}
	return &Shell{Name: name, tpl: tpl}, nil
}

// Preview renders the shell against placeholder content so a broken shell is
// caught at startup rather than on the first request.
func (s *Shell) Preview() (string, error) {
	if s == nil {
		return "", report.NewError(report.KindInternal, "document shell is not loaded", nil)
	}
	var buf bytes.Buffer
	err := s.ExecuteWriter(pongo2.Context{
		"title":          "Preview",
		"markup":         "<p>preview</p>",
		"style":          "",
		"base_style":     document.BaseStyle,
		"page_size":      "A4 portrait",
		"margin":         "1cm 1cm 1cm 1cm",
		"generated_at":   "",
		"generated_line": "",
		"footer":         "",
	}, &buf)
	if err != nil {
		return "", report.NewError(report.KindValidation, "document shell "+s.Name+" failed to render", err)
	}
	return buf.String(), nil
}
