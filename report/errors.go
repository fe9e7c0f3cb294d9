package report

import (
	"context"
	"errors"
	"strings"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines report error kinds.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindTemplate        ErrorKind = "template"
	KindRenderExhausted ErrorKind = "render_exhausted"
	KindTimeout         ErrorKind = "timeout"
	KindCanceled        ErrorKind = "canceled"
	KindInternal        ErrorKind = "internal"
	KindNotImpl         ErrorKind = "not_implemented"
)

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error wraps errors with a kind.
type Error struct {
	Kind    ErrorKind
	Msg     string
	Err     error
	Details []FieldError
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new report error.
func NewError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// NewValidationError reports malformed request fields.
func NewValidationError(details []FieldError) *Error {
	msgs := make([]string, 0, len(details))
	for _, detail := range details {
		msgs = append(msgs, detail.Field+": "+detail.Message)
	}
	return &Error{
		Kind:    KindValidation,
		Msg:     "invalid request: " + strings.Join(msgs, "; "),
		Details: details,
	}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindFromError(err)
	msg := err.Error()

	var reportErr *Error
	if errors.As(err, &reportErr) && reportErr.Msg != "" {
		msg = reportErr.Msg
	}

	switch kind {
	case KindValidation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("validation")
	case KindUnauthorized:
		return errorslib.New(msg, errorslib.CategoryAuthz).WithTextCode("unauthorized")
	case KindTemplate:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("template")
	case KindTimeout:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("timeout")
	case KindCanceled:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("canceled")
	case KindNotImpl:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("not_implemented")
	case KindRenderExhausted:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("render_exhausted")
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("internal")
	}
}

// KindFromError maps an error to its report error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var reportErr *Error
	if errors.As(err, &reportErr) {
		return reportErr.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}

	return KindInternal
}

// FieldErrors extracts per-field validation details, if any.
func FieldErrors(err error) []FieldError {
	var reportErr *Error
	if errors.As(err, &reportErr) {
		return reportErr.Details
	}
	return nil
}
