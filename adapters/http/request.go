package reporthttp

import (
	"strings"

	"github.com/goliatone/go-router"

	"github.com/goliatone/go-report/report"
)

func decodeRequest(c router.Context) (report.Request, error) {
	body, err := jsonBody(c)
	if err != nil {
		return report.Request{}, err
	}
	return report.DecodeRequest(body)
}

// jsonBody rejects non-JSON content types and empty bodies.
func jsonBody(c router.Context) ([]byte, error) {
	contentType := strings.ToLower(c.Header("Content-Type"))
	if contentType != "" && !strings.Contains(contentType, "json") {
		return nil, report.NewValidationError([]report.FieldError{{
			Field:   "body",
			Message: "content type must be application/json",
		}})
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, report.NewValidationError([]report.FieldError{{
			Field:   "body",
			Message: "request body is required",
		}})
	}
	return body, nil
}
