package report

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/goliatone/go-report/payload"
)

type templatePayload struct {
	Markup string `json:"markup"`
	HTML   string `json:"html"`
	Style  string `json:"style"`
	CSS    string `json:"css"`
}

type requestPayload struct {
	Title    string          `json:"title"`
	Format   string          `json:"format"`
	Data     json.RawMessage `json:"data"`
	Template templatePayload `json:"template"`
	Options  PageOptions     `json:"options"`
}

// DecodeRequest parses a JSON request body. The template accepts markup/html
// and style/css as field names. Shape problems surface as validation errors.
func DecodeRequest(body []byte) (Request, error) {
	var raw requestPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return Request{}, NewValidationError([]FieldError{{Field: "body", Message: "malformed JSON: " + err.Error()}})
	}

	req := Request{
		Title:   raw.Title,
		Options: raw.Options,
		Template: Template{
			Markup: firstNonEmpty(raw.Template.Markup, raw.Template.HTML),
			Style:  firstNonEmpty(raw.Template.Style, raw.Template.CSS),
		},
	}
	if format, ok := ParseFormat(raw.Format); ok {
		req.Format = format
	} else {
		req.Format = Format(raw.Format)
	}

	trimmed := bytes.TrimSpace(raw.Data)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if trimmed[0] != '{' {
			return Request{}, NewValidationError([]FieldError{{Field: "data", Message: "data must be a JSON object"}})
		}
		data, err := payload.Parse(trimmed)
		if err != nil {
			return Request{}, NewValidationError([]FieldError{{Field: "data", Message: err.Error()}})
		}
		req.Data = data
	}

	return req, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
