package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeInvalidCredentials is used when login fails
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to standardized codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INTERNAL_ERROR":       ErrCodeInternal,
	"BAD_REQUEST":          ErrCodeBadRequest,

	// Identity
	"INVALID_CREDENTIALS":  ErrCodeInvalidCredentials,
	"TOKEN_EXPIRED":        ErrCodeTokenExpired,
	"TOKEN_INVALID":        ErrCodeTokenInvalid,
	"ACCOUNT_REMOVED":      ErrCodeTokenInvalid,
	"ACCOUNT_NOT_FOUND":    ErrCodeNotFound,
	"EMAIL_EXISTS":         ErrCodeAlreadyExists,
	"INVALID_EMAIL":        ErrCodeInvalidInput,
	"INVALID_ROLE":         ErrCodeInvalidInput,
	"INVALID_PASSWORD":     ErrCodeInvalidInput,
	"INVALID_DISPLAY_NAME": ErrCodeInvalidInput,
	"HASH_FAILED":          ErrCodeInternal,

	// Catalog
	"PRODUCT_EXISTS":            ErrCodeAlreadyExists,
	"PRODUCT_NOT_FOUND":         ErrCodeNotFound,
	"PRODUCT_INACTIVE":          ErrCodeBusinessRule,
	"RELATION_EXISTS":           ErrCodeAlreadyExists,
	"INVALID_NUMBER":            ErrCodeInvalidInput,
	"INVALID_NAME":              ErrCodeInvalidInput,
	"INVALID_UNIT":              ErrCodeInvalidInput,
	"INVALID_PRICE":             ErrCodeInvalidInput,
	"INVALID_RELATION":          ErrCodeInvalidInput,
	"INVALID_PRODUCT_ID":        ErrCodeInvalidInput,
	"INVALID_KIND":              ErrCodeInvalidInput,
	"INVALID_FILE_SIZE":         ErrCodeInvalidInput,
	"INVALID_FILE_NAME":         ErrCodeInvalidInput,
	"INVALID_CONTENT_TYPE":      ErrCodeInvalidInput,
	"INVALID_STORAGE_KEY":       ErrCodeInvalidInput,
	"INVALID_ATTACHMENT":        ErrCodeInvalidInput,
	"ALREADY_ACTIVE":            ErrCodeInvalidState,
	"ALREADY_INACTIVE":          ErrCodeInvalidState,
	"ATTACHMENT_LIMIT_EXCEEDED": ErrCodeBusinessRule,
	"DISALLOWED_CONTENT_TYPE":   ErrCodeInvalidInput,
	"UPLOAD_URL_FAILED":         ErrCodeInternal,
	"DOWNLOAD_URL_FAILED":       ErrCodeInternal,
	"STORAGE_CHECK_FAILED":      ErrCodeInternal,

	// Import
	"IMPORT_FILE_TOO_LARGE":   ErrCodeInvalidInput,
	"IMPORT_EMPTY_FILE":       ErrCodeInvalidInput,
	"IMPORT_INVALID_ENCODING": ErrCodeInvalidInput,
	"IMPORT_INVALID_FILE":     ErrCodeInvalidInput,
	"IMPORT_MISSING_HEADER":   ErrCodeInvalidInput,
	"IMPORT_MISSING_COLUMNS":  ErrCodeInvalidInput,
	"IMPORT_MALFORMED_ROW":    ErrCodeInvalidInput,
	"IMPORT_NO_DATA":          ErrCodeInvalidInput,
	"IMPORT_TOO_MANY_ROWS":    ErrCodeInvalidInput,

	// Ordering
	"EMPTY_ORDER":          ErrCodeBusinessRule,
	"INVALID_STATUS":       ErrCodeInvalidInput,
	"DUPLICATE_PRODUCT":    ErrCodeBusinessRule,
	"INVALID_QUANTITY":     ErrCodeInvalidInput,
	"NO_CONFIRMATION":      ErrCodeNotFound,
	"INVALID_MESSAGE":      ErrCodeInvalidInput,
	"CART_UNAVAILABLE":     ErrCodeInternal,
	"INVALID_ORDER_ID":     ErrCodeInvalidInput,
	"INVALID_ORDER_NUMBER": ErrCodeInvalidInput,
	"INVALID_CUSTOMER":     ErrCodeInvalidInput,
	"INVALID_PRODUCT":      ErrCodeInvalidInput,
	"INVALID_PRODUCT_NAME": ErrCodeInvalidInput,
	"INVALID_ACTOR":        ErrCodeInvalidInput,
	"INVALID_AUTHOR":       ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
