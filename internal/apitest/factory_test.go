package apitest

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFactory() Factory {
	return Factory{EmailPrefix: "test", EmailDomain: "example.com"}
}

func TestUniqueEmailFormat(t *testing.T) {
	f := testFactory()

	email := f.UniqueEmail("signup")
	require.True(t, strings.HasPrefix(email, "signup_"), email)
	require.True(t, strings.HasSuffix(email, "@example.com"), email)

	// Default prefix when none is given.
	require.True(t, strings.HasPrefix(f.UniqueEmail(""), "test_"))
}

func TestUniqueEmailDistinctAcrossTicks(t *testing.T) {
	f := testFactory()

	e1 := f.UniqueEmail("uniq")
	time.Sleep(time.Millisecond)
	e2 := f.UniqueEmail("uniq")
	require.NotEqual(t, e1, e2)
}

func TestRandomPasswordComplexity(t *testing.T) {
	for _, length := range []int{8, 12, 20} {
		password := RandomPassword(length, true)
		require.Len(t, password, length)
		assert.True(t, strings.ContainsAny(password, upperChars), "missing upper: %s", password)
		assert.True(t, strings.ContainsAny(password, lowerChars), "missing lower: %s", password)
		assert.True(t, strings.ContainsAny(password, digitChars), "missing digit: %s", password)
		assert.True(t, strings.ContainsAny(password, specialChars), "missing special: %s", password)
	}
}

func TestRandomPasswordWithoutSpecials(t *testing.T) {
	password := RandomPassword(12, false)
	require.Len(t, password, 12)
	assert.False(t, strings.ContainsAny(password, specialChars), "unexpected special: %s", password)
	assert.True(t, strings.ContainsAny(password, upperChars))
	assert.True(t, strings.ContainsAny(password, lowerChars))
	assert.True(t, strings.ContainsAny(password, digitChars))
}

func TestRandomNameHasNoDigits(t *testing.T) {
	for i := 0; i < 20; i++ {
		name := RandomName()
		assert.False(t, strings.ContainsAny(name, digitChars), name)
		assert.GreaterOrEqual(t, len(name), 3)
	}
}

func TestNewSignupPayloadDefaults(t *testing.T) {
	f := testFactory()
	p := f.NewSignupPayload()

	require.Equal(t, p.Password, p.ConfirmPassword)
	require.Contains(t, p.Email, "@example.com")

	// A default payload satisfies the signup request contract.
	buf, err := json.Marshal(p)
	require.NoError(t, err)
	ok, verr := Validate(buf, SchemaSignupRequest)
	require.True(t, ok, "default payload should be valid: %v", verr)
}

func TestInvalidSignupPayloadCanonicalValues(t *testing.T) {
	f := testFactory()

	t.Run("password", func(t *testing.T) {
		p := f.InvalidSignupPayload("password")
		require.Equal(t, "weak", p.Password)

		buf, err := json.Marshal(p)
		require.NoError(t, err)
		ok, _ := Validate(buf, SchemaSignupRequest)
		require.False(t, ok, "weak password must fail the request contract")
	})

	t.Run("email", func(t *testing.T) {
		p := f.InvalidSignupPayload("email")
		require.Equal(t, "invalid-email-format", p.Email)
	})

	t.Run("name", func(t *testing.T) {
		p := f.InvalidSignupPayload("name")
		require.True(t, strings.ContainsAny(p.Name, digitChars), p.Name)
	})

	t.Run("confirm_password", func(t *testing.T) {
		p := f.InvalidSignupPayload("confirm_password")
		require.NotEqual(t, p.Password, p.ConfirmPassword)
	})

	t.Run("caller value wins", func(t *testing.T) {
		p := f.InvalidSignupPayload("email", "nonsense@")
		require.Equal(t, "nonsense@", p.Email)
	})

	t.Run("unknown field falls back to empty string", func(t *testing.T) {
		p := f.InvalidSignupPayload("role")
		require.Equal(t, "", p.Extra["role"])
	})
}

func TestSignupPayloadMarshalExtraWins(t *testing.T) {
	f := testFactory()
	p := f.NewSignupPayload()
	p.Extra = map[string]any{"email": 12345, "plan": "free"}

	buf, err := json.Marshal(p)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf, &m))
	assert.EqualValues(t, 12345, m["email"], "extra fields must override named fields")
	assert.Equal(t, "free", m["plan"])
	assert.Equal(t, p.Name, m["name"])
}

func TestAttackVectorLists(t *testing.T) {
	sql := SQLInjectionPayloads()
	require.NotEmpty(t, sql)
	assert.Contains(t, sql, "' OR '1'='1")

	xss := XSSPayloads()
	require.NotEmpty(t, xss)
	assert.Contains(t, xss, "<script>alert('XSS')</script>")

	boundary := BoundaryStrings()
	require.NotEmpty(t, boundary)
	assert.Contains(t, boundary, "")
	assert.Contains(t, boundary, "🔥💯🎉")

	var hasOversized bool
	for _, s := range boundary {
		if len(s) > 1024 {
			hasOversized = true
		}
	}
	assert.True(t, hasOversized, "boundary list should include an oversized value")
}

func TestSignupPayloadMarshalOmitsEmptyConfirm(t *testing.T) {
	f := testFactory()
	p := f.NewSignupPayload()
	p.ConfirmPassword = ""

	buf, err := json.Marshal(p)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf, &m))
	_, present := m["confirm_password"]
	require.False(t, present)
}
