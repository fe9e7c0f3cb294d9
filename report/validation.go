package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var lengthPattern = regexp.MustCompile(`^\s*([0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]*)\s*$`)

var pageSizes = map[string]string{
	"A4":     PageA4,
	"A3":     PageA3,
	"LETTER": PageLetter,
}

// NormalizeRequest canonicalizes page options and applies layout defaults.
func NormalizeRequest(req Request) Request {
	req.Title = strings.TrimSpace(req.Title)
	if canonical, ok := pageSizes[strings.ToUpper(strings.TrimSpace(req.Options.PageSize))]; ok {
		req.Options.PageSize = canonical
	}
	req.Options.Orientation = strings.ToLower(strings.TrimSpace(req.Options.Orientation))
	req.Options = req.Options.WithDefaults()
	return req
}

// ValidateRequest checks request shape and reports every violation at once.
func ValidateRequest(req Request) error {
	var details []FieldError

	if strings.TrimSpace(req.Title) == "" {
		details = append(details, FieldError{Field: "title", Message: "title is required"})
	}

	switch req.Format {
	case FormatDocument, FormatSpreadsheet, FormatSpreadsheetLegacy:
	default:
		details = append(details, FieldError{
			Field:   "format",
			Message: "format must be one of: document, spreadsheet-modern, spreadsheet-legacy",
		})
	}

	if req.Data == nil {
		details = append(details, FieldError{Field: "data", Message: "data is required"})
	}

	if req.Format == FormatDocument && strings.TrimSpace(req.Template.Markup) == "" {
		details = append(details, FieldError{Field: "template.markup", Message: "template markup is required for document format"})
	}

	if size := req.Options.PageSize; size != "" {
		if _, ok := pageSizes[strings.ToUpper(size)]; !ok {
			details = append(details, FieldError{Field: "options.pageSize", Message: "page size must be one of: A4, A3, Letter"})
		}
	}

	switch strings.ToLower(req.Options.Orientation) {
	case "", Portrait, Landscape:
	default:
		details = append(details, FieldError{Field: "options.orientation", Message: "orientation must be portrait or landscape"})
	}

	margins := []struct {
		field string
		value string
	}{
		{"options.margins.top", req.Options.Margins.Top},
		{"options.margins.right", req.Options.Margins.Right},
		{"options.margins.bottom", req.Options.Margins.Bottom},
		{"options.margins.left", req.Options.Margins.Left},
	}
	for _, margin := range margins {
		if strings.TrimSpace(margin.value) == "" {
			continue
		}
		if _, err := ParseLengthInches(margin.value); err != nil {
			details = append(details, FieldError{Field: margin.field, Message: err.Error()})
		}
	}

	if len(details) > 0 {
		return NewValidationError(details)
	}
	return nil
}

// ParseLengthInches converts a CSS length (in, cm, mm, pt, px) to inches.
// A bare number is read as inches.
func ParseLengthInches(value string) (float64, error) {
	matches := lengthPattern.FindStringSubmatch(value)
	if len(matches) != 3 {
		return 0, NewError(KindValidation, fmt.Sprintf("invalid length: %s", value), nil)
	}

	unit := strings.ToLower(matches[2])
	if unit == "" {
		unit = "in"
	}

	amount, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, NewError(KindValidation, fmt.Sprintf("invalid length: %s", value), err)
	}

	switch unit {
	case "in":
		return amount, nil
	case "cm":
		return amount / 2.54, nil
	case "mm":
		return amount / 25.4, nil
	case "pt":
		return amount / 72.0, nil
	case "px":
		return amount / 96.0, nil
	default:
		return 0, NewError(KindValidation, fmt.Sprintf("unsupported length unit: %s", unit), nil)
	}
}

// ParseLengthMillimeters is ParseLengthInches scaled to millimeters.
func ParseLengthMillimeters(value string) (float64, error) {
	inches, err := ParseLengthInches(value)
	if err != nil {
		return 0, err
	}
	return inches * 25.4, nil
}

// SanitizeTitle replaces every character outside [A-Za-z0-9] with an underscore.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// Filename builds the suggested download name for a report.
func Filename(title, id string, format Format) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeTitle(title), id, format.Extension())
}
