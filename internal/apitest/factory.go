package apitest

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Password alphabet pieces. Specials match the set the remote API's
// password policy recognizes.
const (
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*"
)

// Small fixed name pools; enough variety for test data, never any digits.
var (
	firstNames = []string{"Alice", "Bruno", "Chandra", "Dmitri", "Elena", "Farid", "Grace", "Hiro", "Ingrid", "Jonas"}
	lastNames  = []string{"Anders", "Baptiste", "Castillo", "Dubois", "Eriksen", "Fontaine", "Grimaldi", "Hassan", "Ivanova", "Jensen"}
)

// Factory generates unique signup payloads so concurrently running test
// cases cannot collide on the shared backend.
type Factory struct {
	EmailPrefix string
	EmailDomain string
}

// NewFactory builds a factory bound to the provided config.
func NewFactory(cfg Config) Factory {
	return Factory{
		EmailPrefix: cfg.EmailPrefix,
		EmailDomain: cfg.EmailDomain,
	}
}

// UniqueEmail returns prefix_<token>@domain with a nanosecond-timestamp
// token. Two calls in the same nanosecond tick can collide; that risk is
// accepted rather than solved with a counter, matching the backend suite's
// uniqueness guarantees.
func (f Factory) UniqueEmail(prefix string) string {
	if prefix == "" {
		prefix = f.EmailPrefix
	}
	return fmt.Sprintf("%s_%s@%s", prefix, UniqueSuffix(), f.EmailDomain)
}

// RandomName returns a realistic two-part name containing no digits.
func RandomName() string {
	return firstNames[randIndex(len(firstNames))] + " " + lastNames[randIndex(len(lastNames))]
}

// RandomPassword generates a password guaranteed to contain at least one
// uppercase letter, one lowercase letter, one digit and, when enabled, one
// special character, in a randomized order. Uses crypto/rand throughout:
// generated credentials end up in shared test logs, so they must not come
// from a predictable source.
func RandomPassword(length int, includeSpecial bool) string {
	chars := []byte{
		randomFrom(upperChars),
		randomFrom(lowerChars),
		randomFrom(digitChars),
	}
	if includeSpecial {
		chars = append(chars, randomFrom(specialChars))
	}

	alphabet := upperChars + lowerChars + digitChars
	if includeSpecial {
		alphabet += specialChars
	}
	for len(chars) < length {
		chars = append(chars, randomFrom(alphabet))
	}

	// Shuffle so the complexity-required characters are not positionally
	// predictable.
	for i := len(chars) - 1; i > 0; i-- {
		j := randIndex(i + 1)
		chars[i], chars[j] = chars[j], chars[i]
	}
	return string(chars)
}

// NewSignupPayload returns a fully valid payload: generated name, unique
// email, 12-character password with specials, confirm_password equal to
// password. Callers adjust fields directly for negative scenarios.
func (f Factory) NewSignupPayload() SignupPayload {
	password := RandomPassword(12, true)
	return SignupPayload{
		Name:            RandomName(),
		Email:           f.UniqueEmail(""),
		Password:        password,
		ConfirmPassword: password,
	}
}

// InvalidSignupPayload starts from a valid payload and overwrites exactly
// one field, either with the supplied value or with the canonical
// known-bad value for that field. An unknown field name lands in Extra
// with an empty-string value rather than erroring, so callers can probe
// fields the API does not define.
func (f Factory) InvalidSignupPayload(field string, value ...any) SignupPayload {
	p := f.NewSignupPayload()

	var v any
	if len(value) > 0 {
		v = value[0]
	}

	switch field {
	case "name":
		p.Name = stringOr(v, "User123!")
	case "email":
		p.Email = stringOr(v, "invalid-email-format")
	case "password":
		p.Password = stringOr(v, "weak")
	case "confirm_password":
		p.ConfirmPassword = stringOr(v, p.Password+"_mismatch")
	default:
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		if v == nil {
			v = ""
		}
		p.Extra[field] = v
	}
	return p
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

// Adversarial inputs for negative scenarios. The server is expected to
// treat all of these as plain invalid data, never to interpret them.

// SQLInjectionPayloads returns classic injection strings for free-text
// fields.
func SQLInjectionPayloads() []string {
	return []string{
		"' OR '1'='1",
		"'; DROP TABLE users; --",
		"admin'--",
		"1' UNION SELECT NULL--",
		"' OR 1=1 LIMIT 1;--",
	}
}

// XSSPayloads returns script-injection strings for fields echoed back in
// responses.
func XSSPayloads() []string {
	return []string{
		"<script>alert('XSS')</script>",
		"<img src=x onerror=alert(1)>",
		"\"><svg onload=alert(1)>",
		"javascript:alert(1)",
	}
}

// BoundaryStrings returns edge-case values: empty, whitespace, oversized,
// control characters, and non-ASCII text.
func BoundaryStrings() []string {
	long := make([]byte, 1025)
	for i := range long {
		long[i] = 'a'
	}
	return []string{
		"",
		" ",
		string(long),
		"\x00",
		"null",
		"undefined",
		"ñàmé",
		"名前",
		"🔥💯🎉",
	}
}

func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the platform RNG is broken; test data
		// generation cannot proceed meaningfully.
		panic(err)
	}
	return int(v.Int64())
}

func randomFrom(alphabet string) byte {
	return alphabet[randIndex(len(alphabet))]
}
