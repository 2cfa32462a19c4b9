// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code such as "UNKNOWN_QUOTE".
	Code string `json:"code"`

	Message string `json:"message"`

	// Details carries field-level messages for validation errors.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	ErrorCodeValidation     = "VALIDATION_ERROR"
	ErrorCodeBadRequest     = "BAD_REQUEST"
	ErrorCodeDuplicateName  = "DUPLICATE_NAME"
	ErrorCodeConflict       = "CONFLICT"
	ErrorCodeUnknownAuthor  = "UNKNOWN_AUTHOR"
	ErrorCodeUnknownQuote   = "UNKNOWN_QUOTE"
	ErrorCodeUnauthorized   = "UNAUTHORIZED"
	ErrorCodeNotFound       = "NOT_FOUND"
	ErrorCodeEmptyResult    = "EMPTY_RESULT"
	ErrorCodeNoComments     = "NO_COMMENTS"
	ErrorCodeMismatch       = "MISMATCH"
	ErrorCodeRecordTooLarge = "RECORD_TOO_LARGE"
	ErrorCodeStorage        = "STORAGE_FAULT"
	ErrorCodeUnavailable    = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout        = "TIMEOUT"
	ErrorCodeInternal       = "INTERNAL_ERROR"
)

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// NewErrorResponseWithDetails creates an error response with additional details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeDuplicateName, ErrorCodeConflict, ErrorCodeMismatch:
		return http.StatusConflict
	case ErrorCodeUnknownAuthor:
		return http.StatusUnprocessableEntity
	case ErrorCodeUnknownQuote, ErrorCodeNotFound, ErrorCodeEmptyResult, ErrorCodeNoComments:
		return http.StatusNotFound
	case ErrorCodeUnauthorized:
		return http.StatusForbidden
	case ErrorCodeRecordTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// codeFor picks the most specific code for err. Kinds are checked before categories.
func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrBinding):
		return ErrorCodeBadRequest
	case errors.Is(err, ErrValidation), domain.IsValidation(err):
		return ErrorCodeValidation
	case errors.Is(err, domain.ErrDuplicateName):
		return ErrorCodeDuplicateName
	case errors.Is(err, domain.ErrUnknownAuthor):
		return ErrorCodeUnknownAuthor
	case errors.Is(err, domain.ErrUnknownQuote):
		return ErrorCodeUnknownQuote
	case errors.Is(err, domain.ErrNoComments):
		return ErrorCodeNoComments
	case errors.Is(err, domain.ErrRecordTooLarge):
		return ErrorCodeRecordTooLarge
	case domain.IsUnauthorized(err):
		return ErrorCodeUnauthorized
	case domain.IsNotFound(err):
		return ErrorCodeNotFound
	case errors.Is(err, domain.ErrEmptyResult):
		return ErrorCodeEmptyResult
	case errors.Is(err, domain.ErrMismatch):
		return ErrorCodeMismatch
	case domain.IsConflict(err):
		return ErrorCodeConflict
	case domain.IsUnavailable(err):
		return ErrorCodeUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorCodeTimeout
	case domain.IsStorage(err):
		return ErrorCodeStorage
	default:
		return ErrorCodeInternal
	}
}

// MapError maps err to an HTTP status and error envelope.
// Storage faults and unknown errors get a generic message so internals do not leak.
func MapError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	code := codeFor(err)
	status := HTTPStatusFromCode(code)

	switch code {
	case ErrorCodeStorage, ErrorCodeInternal:
		return status, NewErrorResponse(code, "an internal error occurred")
	case ErrorCodeTimeout:
		return status, NewErrorResponse(code, "request timeout exceeded")
	case ErrorCodeBadRequest:
		return status, NewErrorResponse(code, "request body could not be parsed")
	case ErrorCodeValidation:
		return status, NewErrorResponseWithDetails(code, "request validation failed", validationDetails(err))
	default:
		return status, NewErrorResponse(code, rootMessage(err))
	}
}

// validationDetails collects field messages from validator tags or a domain ValidationError.
func validationDetails(err error) map[string]string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) && ve.Field != "" {
		return map[string]string{ve.Field: ve.Message}
	}

	if details := ValidationErrors(err); len(details) > 0 {
		return details
	}

	return nil
}

// rootMessage strips layer prefixes added while wrapping and returns the domain error text.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil || isCategory(next) {
			return err.Error()
		}

		err = next
	}
}

func isCategory(err error) bool {
	switch err { //nolint:errorlint // identity check on an already unwrapped value
	case domain.ErrNotFound, domain.ErrConflict, domain.ErrValidation, domain.ErrUnauthorized,
		domain.ErrMismatch, domain.ErrEmptyResult, domain.ErrUnavailable:
		return true
	default:
		return false
	}
}

// GetTraceID returns the OpenTelemetry trace id of the request, or "".
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// HandleError writes the error envelope for err. Server-side faults are logged with the full error.
func HandleError(c *gin.Context, err error) {
	status, resp := MapError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			slog.Any("error", err),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.AbortWithStatusJSON(status, resp)
}
