package reporthttp

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	errorslib "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	"github.com/goliatone/go-report/report"
)

// Response headers describing a generated artifact.
const (
	HeaderReportID       = "X-Report-ID"
	HeaderGeneratedAt    = "X-Generated-At"
	HeaderRenderStrategy = "X-Render-Strategy"
	HeaderPageCount      = "X-Page-Count"
)

// ErrorResponse describes JSON error responses.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Code    string              `json:"code,omitempty"`
	Details []report.FieldError `json:"details,omitempty"`
}

func writeDownload(c router.Context, result report.Result) error {
	c.SetHeader("Content-Type", result.ContentType)
	c.SetHeader("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.SetHeader("Content-Length", strconv.Itoa(len(result.Buffer)))
	c.SetHeader(HeaderReportID, result.ID)
	c.SetHeader(HeaderGeneratedAt, result.GeneratedAt.UTC().Format(time.RFC3339))
	if result.Strategy != "" {
		c.SetHeader(HeaderRenderStrategy, result.Strategy)
	}
	if result.Pages > 0 {
		c.SetHeader(HeaderPageCount, strconv.Itoa(result.Pages))
	}
	return c.Status(http.StatusOK).Send(result.Buffer)
}

// writeImage serves a capture inline. Captures are never cached.
func writeImage(c router.Context, result report.ScreenshotResult) error {
	c.SetHeader("Content-Type", result.ContentType)
	c.SetHeader("Content-Disposition", fmt.Sprintf("inline; filename=%q", result.Filename))
	c.SetHeader("Content-Length", strconv.Itoa(len(result.Buffer)))
	c.SetHeader("Cache-Control", "no-cache, no-store, must-revalidate")
	c.SetHeader("Pragma", "no-cache")
	c.SetHeader("Expires", "0")
	c.SetHeader(HeaderReportID, result.ID)
	c.SetHeader(HeaderGeneratedAt, result.GeneratedAt.UTC().Format(time.RFC3339))
	if result.Strategy != "" {
		c.SetHeader(HeaderRenderStrategy, result.Strategy)
	}
	return c.Status(http.StatusOK).Send(result.Buffer)
}

func (h *Handler) writeError(c router.Context, err error) error {
	status, payload := h.errorResponse(c.Method(), c.Path(), err)
	return c.JSON(status, payload)
}

func (h *Handler) errorResponse(method, path string, err error) (int, ErrorResponse) {
	ge := report.AsGoError(err)
	status := statusForError(ge)
	payload := ErrorResponse{
		Error: errorLabel(status),
		Code:  ge.TextCode,
	}

	switch status {
	case http.StatusBadRequest:
		payload.Details = report.FieldErrors(err)
		if len(payload.Details) == 0 {
			payload.Message = ge.Message
		}
	case http.StatusInternalServerError:
		h.logger.Errorf("report request %s %s failed: %v", method, path, err)
		payload.Message = ge.Message
	default:
		payload.Message = ge.Message
	}
	return status, payload
}

func errorLabel(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid input data"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return http.StatusText(status)
	}
}

func statusForError(err *errorslib.Error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	switch err.TextCode {
	case "not_implemented":
		return http.StatusNotImplemented
	case "unauthorized":
		return http.StatusUnauthorized
	}
	switch err.Category {
	case errorslib.CategoryValidation:
		return http.StatusBadRequest
	case errorslib.CategoryAuthz:
		return http.StatusForbidden
	case errorslib.CategoryNotFound:
		return http.StatusNotFound
	case errorslib.CategoryOperation:
		if err.TextCode == "canceled" {
			return http.StatusConflict
		}
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
