// Package reporttemplate loads custom document shells for the assembler.
//
// A shell is a pongo2 (Django-style) template that receives the variables
// title, markup, style, base_style, page_size, margin and generated_at, plus
// the translated generated_line and footer. It must print markup with the safe filter so resolved content is not escaped.
package reporttemplate
