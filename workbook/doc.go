// Package workbook lays out report data as a multi-sheet spreadsheet.
//
// Builder produces a serializer-independent Workbook: a summary sheet with the
// scalar fields, numeric statistics, nested objects and a list overview,
// followed by one sheet per non-empty list. Rows and cells carry Style tags
// that XLSXEncoder (Office Open XML via excelize) and LegacyEncoder (XML
// Spreadsheet 2003) translate into formatting. Renderer wires both into
// report.WorkbookRenderer.
package workbook
