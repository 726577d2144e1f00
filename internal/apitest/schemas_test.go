package apitest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSignupSuccessEnvelope(t *testing.T) {
	body := []byte(`{"message":"User registered successfully.","error":false,"code":"SUCCESS","data":{"email":"a@example.com"}}`)

	ok, err := Validate(body, SchemaSignupSuccess)
	require.True(t, ok)
	require.NoError(t, err)
}

func TestValidateRejectsUnrelatedBody(t *testing.T) {
	ok, err := Validate([]byte(`{"wrong_field":"x"}`), SchemaSignupSuccess)
	require.False(t, ok)
	require.Error(t, err)
}

func TestValidateIsIdempotent(t *testing.T) {
	body := []byte(`{"message":"ok","error":false,"code":"SUCCESS"}`)

	ok1, err1 := Validate(body, SchemaSignupSuccess)
	ok2, err2 := Validate(body, SchemaSignupSuccess)
	require.Equal(t, ok1, ok2)
	require.Equal(t, err1 == nil, err2 == nil)
	require.True(t, ok1)
}

func TestValidateToleratesExtraFields(t *testing.T) {
	body := []byte(`{"message":"ok","error":false,"code":"SUCCESS","server_time":"2026-08-30T12:00:00Z","trace_id":"abc"}`)

	ok, err := Validate(body, SchemaSignupSuccess)
	require.True(t, ok, "open schema must ignore unknown fields: %v", err)
}

func TestValidateExplicitErrorFalsePasses(t *testing.T) {
	// error:false is a present value, not a missing one.
	ok, err := Validate([]byte(`{"error":false,"code":"SUCCESS","message":"ok"}`), SchemaSignupError)
	require.True(t, ok, "%v", err)
}

func TestValidateSignupErrorEnvelope(t *testing.T) {
	body := map[string]any{
		"error":   true,
		"code":    "USERNAME_EXISTS",
		"message": "User already exists",
	}

	ok, err := Validate(body, SchemaSignupError)
	require.True(t, ok, "%v", err)

	ok, _ = Validate(map[string]any{"message": "no code"}, SchemaSignupError)
	require.False(t, ok)
}

func TestValidateSignupRequestRules(t *testing.T) {
	valid := map[string]any{
		"name":             "Alice Carter",
		"email":            "alice@example.com",
		"password":         "Str0ng!Pass",
		"confirm_password": "Str0ng!Pass",
	}

	cases := []struct {
		name   string
		mutate func(m map[string]any)
		want   bool
	}{
		{"valid", func(m map[string]any) {}, true},
		{"confirm omitted", func(m map[string]any) { delete(m, "confirm_password") }, true},
		{"name with digits", func(m map[string]any) { m["name"] = "User123" }, false},
		{"name too short", func(m map[string]any) { m["name"] = "Al" }, false},
		{"bad email", func(m map[string]any) { m["email"] = "invalid-email-format" }, false},
		{"short password", func(m map[string]any) { m["password"] = "weak" }, false},
		{"confirm mismatch", func(m map[string]any) { m["confirm_password"] = "Different1!" }, false},
		{"missing email", func(m map[string]any) { delete(m, "email") }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := make(map[string]any, len(valid))
			for k, v := range valid {
				m[k] = v
			}
			tc.mutate(m)

			ok, err := Validate(m, SchemaSignupRequest)
			require.Equal(t, tc.want, ok, "err=%v", err)
		})
	}
}

func TestValidateUserProfile(t *testing.T) {
	ok, err := Validate(map[string]any{
		"name":     "Bob Fisher",
		"email":    "bob@example.com",
		"verified": true,
	}, SchemaUserProfile)
	require.True(t, ok, "%v", err)

	ok, _ = Validate(map[string]any{
		"name":  "Bob2",
		"email": "bob@example.com",
	}, SchemaUserProfile)
	require.False(t, ok, "digits in the profile name must be rejected")
}

func TestValidateUnknownKind(t *testing.T) {
	ok, err := Validate([]byte(`{}`), SchemaKind("no_such_schema"))
	require.False(t, ok)
	require.Error(t, err)
}

func TestValidateNilBody(t *testing.T) {
	ok, err := Validate(nil, SchemaSignupSuccess)
	require.False(t, ok)
	require.Error(t, err)
}

func TestValidateStringAndBytesAgree(t *testing.T) {
	raw := `{"message":"ok","error":false,"code":"SUCCESS"}`

	okBytes, _ := Validate([]byte(raw), SchemaSignupSuccess)
	okString, _ := Validate(raw, SchemaSignupSuccess)
	require.Equal(t, okBytes, okString)
	require.True(t, okBytes)
}
