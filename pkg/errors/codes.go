package errors

import "net/http"

// ErrorCode identifies a failure category. Codes are grouped by module prefix:
// COMMON for cross-cutting conditions, REF for reference-data access, CHAT for
// message processing, HOSP for the hospital lookup collaborator, and FDB for
// feedback handling.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_012"
)

// Reference-data (lexicon, keyword, and condition stores) error codes.
const (
	ErrCodeReferenceUnavailable ErrorCode = "REF_001"
	ErrCodeReferenceCorrupt     ErrorCode = "REF_002"
	ErrCodeSeedFailed           ErrorCode = "REF_003"
)

// Chat / message-processing error codes.
const (
	ErrCodeMessageEmpty    ErrorCode = "CHAT_001"
	ErrCodeMessageTooLong  ErrorCode = "CHAT_002"
	ErrCodeSessionRequired ErrorCode = "CHAT_003"
	ErrCodeRateLimited     ErrorCode = "CHAT_004"
)

// Hospital lookup error codes.
const (
	ErrCodeLocationRequired  ErrorCode = "HOSP_001"
	ErrCodeLookupUnavailable ErrorCode = "HOSP_002"
)

// Feedback error codes.
const (
	ErrCodeRatingInvalid   ErrorCode = "FDB_001"
	ErrCodeProfileNotFound ErrorCode = "FDB_002"
)

// Shorthand aliases used throughout the codebase.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeUnknown      = ErrorCode("")
	CodeOK           = ErrorCode("OK")
)

// errorCodeHTTPStatus maps every ErrorCode to the HTTP status the interface
// layer should respond with.
var errorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,

	ErrCodeReferenceUnavailable: http.StatusServiceUnavailable,
	ErrCodeReferenceCorrupt:     http.StatusInternalServerError,
	ErrCodeSeedFailed:           http.StatusInternalServerError,

	ErrCodeMessageEmpty:    http.StatusBadRequest,
	ErrCodeMessageTooLong:  http.StatusBadRequest,
	ErrCodeSessionRequired: http.StatusBadRequest,
	ErrCodeRateLimited:     http.StatusTooManyRequests,

	ErrCodeLocationRequired:  http.StatusBadRequest,
	ErrCodeLookupUnavailable: http.StatusServiceUnavailable,

	ErrCodeRatingInvalid:   http.StatusBadRequest,
	ErrCodeProfileNotFound: http.StatusNotFound,
}

// HTTPStatusForCode returns the HTTP status for an ErrorCode, defaulting to
// 500 for unmapped codes.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether the ErrorCode maps to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError reports whether the ErrorCode maps to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}
