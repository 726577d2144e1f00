package verification

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signup-qa/internal/apitest"
)

// registerFreshUser signs up a new unique account and returns its email.
func registerFreshUser(t *testing.T, s *apitest.Session) string {
	t.Helper()

	payload := s.Factory.NewSignupPayload()
	res, err := s.Signup.CreateUser(context.Background(), payload)
	require.NoError(t, err)
	require.NoError(t, apitest.ExpectStatus(res, http.StatusOK, http.StatusCreated))
	return payload.Email
}

func TestConfirmSignupWithValidCode(t *testing.T) {
	apitest.Meta{
		Feature:  "Email Verification",
		Story:    "User confirms signup with the emailed code",
		Severity: "blocker",
	}.Log(t)

	s := apitest.NewSession(t)
	ctx := context.Background()
	email := registerFreshUser(t, s)

	code, ok := s.ConfirmationCode(email)
	if !ok {
		t.Skip("confirmation codes are not readable against a live environment")
	}

	res, err := s.Signup.ConfirmSignup(ctx, apitest.OtpVerificationRequest{
		Email:            email,
		ConfirmationCode: code,
	})
	require.NoError(t, err)
	require.NoError(t, apitest.ExpectStatus(res, http.StatusOK))
	assert.False(t, res.IsError())
	assert.Equal(t, "Email verified successfully.", res.Body.Message)
}

func TestConfirmSignupWithWrongCode(t *testing.T) {
	s := apitest.NewSession(t)
	ctx := context.Background()
	email := registerFreshUser(t, s)

	wrong := "000000"
	if code, ok := s.ConfirmationCode(email); ok && code == wrong {
		wrong = "000001"
	}

	res, err := s.Signup.ConfirmSignup(ctx, apitest.OtpVerificationRequest{
		Email:            email,
		ConfirmationCode: wrong,
	})
	require.NoError(t, err)
	require.NoError(t, apitest.ExpectStatus(res, http.StatusBadRequest))

	apitest.AssertValid(t, res.Raw, apitest.SchemaSignupError, "mismatch response")
	assert.Equal(t, "CODE_MISMATCH", res.Code())
}

func TestConfirmSignupForUnknownEmail(t *testing.T) {
	s := apitest.NewSession(t)

	res, err := s.Signup.ConfirmSignup(context.Background(), apitest.OtpVerificationRequest{
		Email:            s.Factory.UniqueEmail("never_registered"),
		ConfirmationCode: "999999",
	})
	require.NoError(t, err)
	require.NoError(t, apitest.ExpectStatus(res, http.StatusNotFound))
	assert.True(t, res.IsError())
}

func TestConfirmSignupWithIncompleteCode(t *testing.T) {
	s := apitest.NewSession(t)
	email := registerFreshUser(t, s)

	res, err := s.Signup.ConfirmSignup(context.Background(), apitest.OtpVerificationRequest{
		Email:            email,
		ConfirmationCode: "123",
	})
	require.NoError(t, err)
	require.NoError(t, apitest.ExpectStatus(res, http.StatusBadRequest))
	assert.True(t, res.IsError())
}

func TestConfirmSignupWithMissingCode(t *testing.T) {
	s := apitest.NewSession(t)
	email := registerFreshUser(t, s)

	res, err := s.Signup.ConfirmSignup(context.Background(), apitest.OtpVerificationRequest{
		Email: email,
	})
	require.NoError(t, err)
	require.NoError(t, apitest.ExpectStatus(res, http.StatusBadRequest))
	assert.Equal(t, "VALIDATION_ERROR", res.Code())
	assert.Contains(t, res.Body.Data, "confirmation_code")
}

func TestResendConfirmationCode(t *testing.T) {
	apitest.Meta{
		Feature:  "Email Verification",
		Story:    "User asks for a fresh confirmation code",
		Severity: "critical",
	}.Log(t)

	s := apitest.NewSession(t)
	email := registerFreshUser(t, s)

	res, err := s.Signup.ResendConfirmationCode(context.Background(), apitest.ResendRequest{Email: email})
	require.NoError(t, err)
	require.NoError(t, apitest.ExpectStatus(res, http.StatusOK))

	apitest.AssertValid(t, res.Raw, apitest.SchemaSignupSuccess, "resend response")
	assert.Equal(t, "ConfirmationCodeResent", res.Code())
	assert.Equal(t, "Confirmation code resent successfully.", res.Body.Message)
}

func TestResendConfirmationCodeMissingEmail(t *testing.T) {
	s := apitest.NewSession(t)

	res, err := s.Signup.ResendConfirmationCode(context.Background(), apitest.ResendRequest{})
	require.NoError(t, err)
	require.NoError(t, apitest.ExpectStatus(res, http.StatusBadRequest))
	assert.Equal(t, "VALIDATION_ERROR", res.Code())
}

func TestResendConfirmationCodeUnknownEmail(t *testing.T) {
	s := apitest.NewSession(t)

	res, err := s.Signup.ResendConfirmationCode(context.Background(), apitest.ResendRequest{
		Email: s.Factory.UniqueEmail("never_registered"),
	})
	require.NoError(t, err)
	require.NoError(t, apitest.ExpectStatus(res, http.StatusNotFound))
}

func TestResendConfirmationCodeAfterVerification(t *testing.T) {
	s := apitest.NewSession(t)
	ctx := context.Background()
	email := registerFreshUser(t, s)

	code, ok := s.ConfirmationCode(email)
	if !ok {
		t.Skip("confirmation codes are not readable against a live environment")
	}
	res, err := s.Signup.ConfirmSignup(ctx, apitest.OtpVerificationRequest{
		Email:            email,
		ConfirmationCode: code,
	})
	require.NoError(t, err)
	require.NoError(t, apitest.ExpectStatus(res, http.StatusOK))

	res, err = s.Signup.ResendConfirmationCode(ctx, apitest.ResendRequest{Email: email})
	require.NoError(t, err)
	require.NoError(t, apitest.ExpectStatus(res, http.StatusBadRequest))
	assert.True(t, res.IsError())
}

func TestResendConfirmationCodeRateLimit(t *testing.T) {
	apitest.Meta{
		Feature:  "Email Verification",
		Story:    "Resend requests are throttled per email",
		Severity: "critical",
	}.Log(t)

	s := apitest.NewSession(t)
	email := registerFreshUser(t, s)

	result, err := s.Signup.ProbeResendRateLimit(context.Background(), email, apitest.DefaultProbeAttempts)
	require.NoError(t, err)

	assert.Equal(t, apitest.DefaultProbeAttempts, result.SuccessfulAttempts,
		"all attempts within the quota should succeed")

	blocked := result.BlockedResult
	require.NotNil(t, blocked)
	// 429 is the documented throttle status, 400 is tolerated for older
	// deployments.
	require.NoError(t, apitest.ExpectStatus(blocked, http.StatusTooManyRequests, http.StatusBadRequest))
	assert.True(t, blocked.IsError())
}
