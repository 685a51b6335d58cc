package dto

import "net/http"

// Standard API error codes. Handlers translate domain error codes into
// these before choosing an HTTP status.
const (
	// Validation and input errors
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"

	// Authentication and authorization
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"

	// Resource errors
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeReferenceInUse      = "ERR_REFERENCE_IN_USE"

	// Business rule errors
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"

	// Upload errors
	ErrCodeImageTooLarge        = "ERR_IMAGE_TOO_LARGE"
	ErrCodeUnsupportedImageType = "ERR_UNSUPPORTED_IMAGE_TYPE"

	// PDF rendering errors
	ErrCodeRenderTimeout = "ERR_RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "ERR_RENDER_FAILED"

	// Rate limiting
	ErrCodeRateLimited = "ERR_RATE_LIMITED"

	// Server errors
	ErrCodeInternal = "ERR_INTERNAL"
	ErrCodeUnknown  = "ERR_UNKNOWN"
)

// ErrorCodeHTTPStatus maps API error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeReferenceInUse:      http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeImageTooLarge:        http.StatusRequestEntityTooLarge,
	ErrCodeUnsupportedImageType: http.StatusUnsupportedMediaType,

	ErrCodeRenderTimeout: http.StatusGatewayTimeout,
	ErrCodeRenderFailed:  http.StatusBadGateway,

	ErrCodeRateLimited: http.StatusTooManyRequests,

	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeUnknown:  http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an API error code.
// Unknown codes default to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping translates domain error codes to API error codes.
// Domain codes describe what went wrong in business terms; API codes pick
// the transport semantics.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"REFERENCE_IN_USE":     ErrCodeReferenceInUse,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,

	// Template and label validation
	"INVALID_NAME":            ErrCodeInvalidInput,
	"INVALID_ACCENT_COLOR":    ErrCodeInvalidInput,
	"INVALID_IMAGE_POSITION":  ErrCodeInvalidInput,
	"INVALID_TEXT_ALIGN":      ErrCodeInvalidInput,
	"INVALID_PARTS_PER_LABEL": ErrCodeInvalidInput,
	"INVALID_TEMPLATE_ID":     ErrCodeInvalidInput,
	"INVALID_PART":            ErrCodeInvalidInput,

	// Uploads
	"IMAGE_TOO_LARGE":        ErrCodeImageTooLarge,
	"UNSUPPORTED_IMAGE_TYPE": ErrCodeUnsupportedImageType,

	// PDF rendering
	"RENDER_TIMEOUT": ErrCodeRenderTimeout,
	"RENDER_FAILED":  ErrCodeRenderFailed,
	"INVALID_HTML":   ErrCodeRenderFailed,
	"STORAGE_FAILED": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its API error code.
// Codes already in ERR_* form pass through; anything unrecognized maps
// to ERR_UNKNOWN.
func NormalizeErrorCode(code string) string {
	if mapped, ok := DomainErrorCodeMapping[code]; ok {
		return mapped
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeUnknown
}
