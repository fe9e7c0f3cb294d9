// Package document assembles resolved report markup into a printable HTML
// document.
//
// The shell is a pongo2 template: baseline styles, an @page rule derived from
// the page options, the caller's style sheet, a header with the title and the
// generation timestamp, the markup unescaped, and a footer note. Provide a
// custom TemplateExecutor through Assembler.Shell to replace it.
package document
