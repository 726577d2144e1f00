package apitest

import (
	"net/http/httptest"
	"testing"

	"signup-qa/internal/modules/signupstub"
)

// Session is the shared fixture for an integration test package. When
// BASE_URL is set the session talks to that live environment; otherwise it
// starts the in-process stub server, which reproduces the remote API's
// behavior including its tracked defects.
type Session struct {
	Config  Config
	Client  *Client
	Signup  *SignupClient
	Factory Factory

	stub *signupstub.Module
}

// NewSession builds the session from the environment. The caller owns
// teardown via t.Cleanup, wired here.
func NewSession(t testing.TB) *Session {
	t.Helper()

	cfg := LoadConfig()
	s := &Session{Config: cfg, Factory: NewFactory(cfg)}

	baseURL := cfg.BaseURL
	if !cfg.HasLiveEnvironment() {
		s.stub = signupstub.New(signupstub.Options{})
		srv := httptest.NewServer(s.stub.Echo)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
		t.Logf("no BASE_URL configured, using in-process stub at %s", baseURL)
	}

	s.Client = NewClientForURL(baseURL, cfg.APITimeout)
	t.Cleanup(s.Client.Close)
	s.Signup = NewSignupClient(s.Client)
	return s
}

// ConfirmationCode returns the pending OTP for an email when the session
// runs against the stub. Against a live environment codes arrive over
// email and cannot be read here, so ok is false.
func (s *Session) ConfirmationCode(email string) (string, bool) {
	if s.stub == nil {
		return "", false
	}
	return s.stub.Service.ConfirmationCode(email)
}
