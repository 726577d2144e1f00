package apitest

import (
	"encoding/json"
	"strconv"
	"time"

	"signup-qa/internal/pkg/response"
)

// SignupPayload is the request body for the signup endpoint. Extra fields
// are merged in last on marshaling, so callers can inject or override
// arbitrary keys, including intentionally malformed ones.
type SignupPayload struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Extra           map[string]any
}

// MarshalJSON renders the payload as the wire object. ConfirmPassword is
// omitted when empty; Extra wins over the named fields.
func (p SignupPayload) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"name":     p.Name,
		"email":    p.Email,
		"password": p.Password,
	}
	if p.ConfirmPassword != "" {
		m["confirm_password"] = p.ConfirmPassword
	}
	for k, v := range p.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// OtpVerificationRequest is the confirm endpoint body. The code is modeled
// as an arbitrary string, not six digits, so validation behavior can be
// probed.
type OtpVerificationRequest struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmation_code"`
}

// ResendRequest is the resend-code endpoint body.
type ResendRequest struct {
	Email string `json:"email"`
}

// ApiResult captures one API call's outcome. Immutable once returned.
type ApiResult struct {
	StatusCode int
	// Raw is the response body as received.
	Raw []byte
	// Body is the parsed envelope, nil when the body was not envelope JSON.
	Body *response.Envelope
	// OK is true for 2xx statuses.
	OK bool
	// Duration is the wall-clock time of the round trip, body read
	// included.
	Duration time.Duration
}

// Code returns the business code from the envelope, or "".
func (r *ApiResult) Code() string {
	if r == nil || r.Body == nil {
		return ""
	}
	return r.Body.Code
}

// IsError returns the envelope's error flag; a missing envelope counts as
// an error.
func (r *ApiResult) IsError() bool {
	if r == nil || r.Body == nil {
		return true
	}
	return r.Body.Error
}

// Text returns the raw body as a string, for assertion messages.
func (r *ApiResult) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Raw)
}

// RateLimitProbeResult reports a rate-limit probe run.
type RateLimitProbeResult struct {
	// SuccessfulAttempts counts the leading unbroken run of 200s.
	SuccessfulAttempts int
	// BlockedResult is the final, uncounted call made to trigger the
	// limit.
	BlockedResult *ApiResult
}

// UniqueSuffix returns a short unique string for test data.
func UniqueSuffix() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}
