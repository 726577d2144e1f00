package xerrors

import "net/http"

// ErrorCode is the business code carried on the wire by the signup API
// family of endpoints, plus the suite-side codes used to classify failures
// that never reach the wire (transport, schema, expectation mismatches).
type ErrorCode string

const (
	// Wire codes observed on the signup API.
	CodeSuccess         ErrorCode = "SUCCESS"
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeUsernameExists  ErrorCode = "USERNAME_EXISTS"
	CodeCodeMismatch    ErrorCode = "CODE_MISMATCH"
	CodeCodeResent      ErrorCode = "ConfirmationCodeResent"
	CodeAlreadyVerified ErrorCode = "ALREADY_VERIFIED"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"

	// Suite-side codes. Never produced by the API; used to classify test
	// failures so a run report separates infrastructure problems from
	// behavioral regressions.
	CodeTransportError   ErrorCode = "TRANSPORT_ERROR"
	CodeUnexpectedStatus ErrorCode = "UNEXPECTED_STATUS"
	CodeSchemaValidation ErrorCode = "SCHEMA_VALIDATION"
	CodeSlowResponse     ErrorCode = "SLOW_RESPONSE"
	CodeKnownDefect      ErrorCode = "KNOWN_DEFECT"
)

// codeMessages are the default human-readable messages per code.
var codeMessages = map[ErrorCode]string{
	CodeSuccess:          "Success",
	CodeValidationError:  "Request validation failed",
	CodeUsernameExists:   "User already exists",
	CodeCodeMismatch:     "Invalid verification code provided",
	CodeCodeResent:       "Confirmation code resent successfully.",
	CodeAlreadyVerified:  "User is already verified",
	CodeNotFound:         "Resource not found",
	CodeTooManyRequests:  "Attempt limit exceeded, please try after some time",
	CodeInternalError:    "Internal server error",
	CodeTransportError:   "Failed to reach the API",
	CodeUnexpectedStatus: "API returned an unexpected status code",
	CodeSchemaValidation: "Response body does not match the expected schema",
	CodeSlowResponse:     "API response exceeded the allowed time",
	CodeKnownDefect:      "Known server defect",
}

// httpStatusByCode maps wire codes to the HTTP status the API pairs them
// with. Suite-side codes intentionally have no mapping.
var httpStatusByCode = map[ErrorCode]int{
	CodeSuccess:         http.StatusOK,
	CodeValidationError: http.StatusBadRequest,
	CodeUsernameExists:  http.StatusConflict,
	CodeCodeMismatch:    http.StatusBadRequest,
	CodeCodeResent:      http.StatusOK,
	CodeAlreadyVerified: http.StatusBadRequest,
	CodeNotFound:        http.StatusNotFound,
	CodeTooManyRequests: http.StatusTooManyRequests,
	CodeInternalError:   http.StatusInternalServerError,
}

// Message returns the default message for a code.
func (c ErrorCode) Message() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return codeMessages[CodeInternalError]
}

// HTTPStatus returns the HTTP status paired with a wire code, falling back
// to 500 for unknown or suite-side codes.
func (c ErrorCode) HTTPStatus() int {
	if status, ok := httpStatusByCode[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsValid reports whether the code is one the suite knows about.
func (c ErrorCode) IsValid() bool {
	_, exists := codeMessages[c]
	return exists
}

// isRetryableByCode marks codes where a later attempt could succeed.
func isRetryableByCode(code ErrorCode) bool {
	switch code {
	case CodeTooManyRequests, CodeTransportError, CodeInternalError:
		return true
	default:
		return false
	}
}
