package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"signup-qa/internal/pkg/log"
	"signup-qa/internal/pkg/metrics"
	"signup-qa/internal/pkg/xerrors"
)

// DefaultResendLimit is how many resend-code calls succeed per email
// before the service starts throttling, matching the remote API.
const DefaultResendLimit = 5

// publicEmailDomains are consumer domains the API rejects at signup.
var publicEmailDomains = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
}

// RegisterInput carries a signup request into the service.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type account struct {
	name     string
	password string
	code     string
	verified bool
	resends  int
}

// SignupService is an in-memory stand-in for the remote signup backend.
// It reproduces the observed behavior of that backend, including its known
// defects, so the suite's expected-failure bookkeeping works the same
// against the stub as against the real environment.
type SignupService struct {
	mu          sync.Mutex
	accounts    map[string]*account
	resendLimit int
	logger      log.Logger
	metrics     *metrics.SignupMetrics
}

// NewSignupService creates a service with the given resend limit; zero or
// negative means DefaultResendLimit. Metrics may be nil.
func NewSignupService(resendLimit int, logger log.Logger, m *metrics.SignupMetrics) *SignupService {
	if resendLimit <= 0 {
		resendLimit = DefaultResendLimit
	}
	if logger == nil {
		logger = log.GetLogger()
	}
	return &SignupService{
		accounts:    make(map[string]*account),
		resendLimit: resendLimit,
		logger:      logger,
		metrics:     m,
	}
}

// Register creates an unverified account and issues its first confirmation
// code. Returned data feeds the success envelope.
func (s *SignupService) Register(ctx context.Context, in RegisterInput) (map[string]any, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if domain := emailDomain(email); publicEmailDomains[domain] {
		return nil, xerrors.NewValidationError("email", "Public email domains are not allowed.")
	}

	// The remote API takes weak passwords to an unhandled exception
	// instead of a 400. Reproduced here so the known-defect tests observe
	// the same 500 against the stub.
	if !passwordMeetsComplexity(in.Password) {
		return nil, xerrors.New(xerrors.CodeInternalError, "unhandled password policy error")
	}

	// No name charset/length checks and no confirm_password comparison:
	// both are documented gaps in the remote API that the suite tracks as
	// known defects.

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[email]; exists {
		return nil, xerrors.FromCode(xerrors.CodeUsernameExists)
	}

	code, err := generateConfirmationCode()
	if err != nil {
		return nil, xerrors.Wrap(err, xerrors.CodeInternalError, "generate confirmation code")
	}

	s.accounts[email] = &account{
		name:     in.Name,
		password: in.Password,
		code:     code,
	}
	if s.metrics != nil {
		s.metrics.CodesIssuedTotal.Inc()
	}
	s.logger.DebugContext(ctx, "issued confirmation code",
		log.String("email", email), log.String("code", code))

	return map[string]any{
		"email":                 email,
		"verification_required": true,
	}, nil
}

// Confirm verifies an account with its OTP.
func (s *SignupService) Confirm(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, exists := s.accounts[email]
	if !exists {
		return xerrors.NewNotFoundError("signup", email)
	}
	if acct.verified {
		return xerrors.FromCode(xerrors.CodeAlreadyVerified)
	}
	if len(code) != 6 {
		return xerrors.NewValidationError("confirmation_code", "Code must be exactly 6 digits.")
	}
	if code != acct.code {
		return xerrors.FromCode(xerrors.CodeCodeMismatch)
	}

	acct.verified = true
	if s.metrics != nil {
		s.metrics.VerifiedTotal.Inc()
	}
	s.logger.InfoContext(ctx, "account verified", log.String("email", email))
	return nil
}

// Resend issues a fresh confirmation code, throttling per email after the
// resend limit is reached.
func (s *SignupService) Resend(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, exists := s.accounts[email]
	if !exists {
		return xerrors.NewNotFoundError("signup", email)
	}
	if acct.verified {
		return xerrors.FromCode(xerrors.CodeAlreadyVerified)
	}
	if acct.resends >= s.resendLimit {
		if s.metrics != nil {
			s.metrics.RateLimitedTotal.Inc()
		}
		return xerrors.FromCode(xerrors.CodeTooManyRequests)
	}

	code, err := generateConfirmationCode()
	if err != nil {
		return xerrors.Wrap(err, xerrors.CodeInternalError, "generate confirmation code")
	}
	acct.code = code
	acct.resends++
	if s.metrics != nil {
		s.metrics.CodesIssuedTotal.Inc()
	}
	s.logger.DebugContext(ctx, "resent confirmation code",
		log.String("email", email), log.Int("resends", acct.resends))
	return nil
}

// ConfirmationCode exposes the pending OTP for an email. Test hook; the
// real backend delivers codes over email.
func (s *SignupService) ConfirmationCode(email string) (string, bool) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, exists := s.accounts[email]
	if !exists {
		return "", false
	}
	return acct.code, true
}

// IsVerified reports whether the account completed verification.
func (s *SignupService) IsVerified(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, exists := s.accounts[email]
	return exists && acct.verified
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at+1:]
}

func passwordMeetsComplexity(password string) bool {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("!@#$%^&*", r):
			special = true
		}
	}
	return len(password) >= 8 && upper && lower && digit && special
}

func generateConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
