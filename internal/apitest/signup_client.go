package apitest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"signup-qa/internal/pkg/xerrors"
)

// Endpoint paths for the signup API family.
const (
	SignupEndpoint     = "/api/authentication/signup/"
	ConfirmEndpoint    = "/api/authentication/signup/confirm/"
	ResendCodeEndpoint = "/api/authentication/signup/resend-code/"
)

// DefaultProbeAttempts is the resend quota the remote API is known to
// enforce.
const DefaultProbeAttempts = 5

// SignupClient wraps the three signup endpoints. It is a thin transport
// wrapper: every call is a real round-trip, nothing is validated locally
// and nothing is retried.
type SignupClient struct {
	client *Client
}

// NewSignupClient binds a signup client to the shared session client.
func NewSignupClient(client *Client) *SignupClient {
	return &SignupClient{client: client}
}

// CreateUser sends a POST to the signup endpoint. The payload is typically
// a SignupPayload but any marshalable value is accepted so tests can send
// deliberately incomplete or malformed bodies.
func (s *SignupClient) CreateUser(ctx context.Context, payload any) (*ApiResult, error) {
	return s.client.PostJSON(ctx, SignupEndpoint, payload)
}

// ConfirmSignup sends a POST to the confirm endpoint.
func (s *SignupClient) ConfirmSignup(ctx context.Context, req OtpVerificationRequest) (*ApiResult, error) {
	return s.client.PostJSON(ctx, ConfirmEndpoint, req)
}

// ResendConfirmationCode sends a POST to the resend-code endpoint.
func (s *SignupClient) ResendConfirmationCode(ctx context.Context, req ResendRequest) (*ApiResult, error) {
	return s.client.PostJSON(ctx, ResendCodeEndpoint, req)
}

// ProbeResendRateLimit drives resend calls for an email until the server
// throttles. Up to maxAttempts calls are counted as successful while each
// returns 200; the count stops at the first non-200. One additional,
// uncounted call is then made unconditionally and captured as the blocked
// result. When the server starts rejecting before maxAttempts the final
// call is redundant, but it is observable probe behavior callers rely on
// and is kept rather than optimized away. Calls are strictly sequential;
// the server's rate-limit counter must observe attempts in order.
func (s *SignupClient) ProbeResendRateLimit(ctx context.Context, email string, maxAttempts int) (*RateLimitProbeResult, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultProbeAttempts
	}
	req := ResendRequest{Email: email}

	successful := 0
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err := s.ResendConfirmationCode(ctx, req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			break
		}
		successful++
	}

	blocked, err := s.ResendConfirmationCode(ctx, req)
	if err != nil {
		return nil, err
	}

	return &RateLimitProbeResult{
		SuccessfulAttempts: successful,
		BlockedResult:      blocked,
	}, nil
}

// ExpectStatus checks a result's status against a scenario's expected set,
// returning an UnexpectedStatusError carrying the body when it falls
// outside.
func ExpectStatus(res *ApiResult, want ...int) error {
	for _, status := range want {
		if Status(res) == status {
			return nil
		}
	}
	return xerrors.NewUnexpectedStatusError(Status(res), want, res.Text())
}

// ExpectResponseTime checks that a call's round trip stayed within max.
func ExpectResponseTime(res *ApiResult, max time.Duration) error {
	if res == nil {
		return xerrors.FromCode(xerrors.CodeSlowResponse)
	}
	if res.Duration <= max {
		return nil
	}
	return xerrors.New(xerrors.CodeSlowResponse,
		fmt.Sprintf("response took %s, allowed %s", res.Duration, max))
}
