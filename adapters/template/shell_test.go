package reporttemplate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-report/document"
	"github.com/goliatone/go-report/report"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadShell_WithInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "footer.html", `<footer>{{ title }} footer</footer>`)
	path := writeFile(t, dir, "shell.html", `<html><head><style>{{ base_style|safe }}{{ style|safe }}</style></head>`+
		`<body><h1>{{ title }}</h1>{{ markup|safe }}{% include "footer.html" %}</body></html>`)

	shell, err := LoadShell(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	out, err := document.Assembler{Shell: shell}.Assemble(report.AssembleInput{
		Title:       "Q1",
		Markup:      "<table></table>",
		Style:       ".x{}",
		GeneratedAt: time.Date(2024, 3, 5, 15, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	for _, want := range []string{"<h1>Q1</h1>", "<table></table>", "<footer>Q1 footer</footer>", ".x{}", "page-break"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestLoadShell_RequiresMarkup(t *testing.T) {
	path := writeFile(t, t.TempDir(), "shell.html", `<html>{{ title }}</html>`)
	_, err := LoadShell(path)
	if report.KindFromError(err) != report.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoadShell_Missing(t *testing.T) {
	_, err := LoadShell(filepath.Join(t.TempDir(), "none.html"))
	if report.KindFromError(err) != report.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := LoadShell("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestParseShell_SyntaxError(t *testing.T) {
	_, err := ParseShell("broken", `{{ markup|safe }}{% if %}`)
	if report.KindFromError(err) != report.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestShell_Preview(t *testing.T) {
	shell, err := ParseShell("inline", `<main>{{ markup|safe }}</main>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := shell.Preview()
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if out != "<main><p>preview</p></main>" {
		t.Fatalf("unexpected preview %q", out)
	}

	var empty *Shell
	if _, err := empty.Preview(); err == nil {
		t.Fatalf("expected error from unloaded shell")
	}
}
