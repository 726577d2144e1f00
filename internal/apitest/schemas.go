package apitest

import (
	"encoding/json"
	"errors"
	"testing"

	"signup-qa/internal/pkg/validator"
	"signup-qa/internal/pkg/xerrors"
)

// SchemaKind selects a response/request contract to validate against.
// Schemas are open: unknown fields in the body are permitted and ignored,
// so API additions do not break existing tests.
type SchemaKind string

const (
	SchemaSignupRequest SchemaKind = "signup_request"
	SchemaSignupSuccess SchemaKind = "signup_success"
	SchemaSignupError   SchemaKind = "signup_error"
	SchemaLoginSuccess  SchemaKind = "login_success"
	SchemaUserProfile   SchemaKind = "user_profile"
)

// SignupRequestSchema checks an outbound signup body. confirm_password is
// only compared against password when present.
type SignupRequestSchema struct {
	Name            string `json:"name" validate:"required,min=3,max=80,nodigits"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"omitempty,min=8,eqfield=Password"`
}

// SignupSuccessSchema is the success envelope for the signup family.
// Error is a pointer so an explicit false satisfies required.
type SignupSuccessSchema struct {
	Message string         `json:"message" validate:"required"`
	Error   *bool          `json:"error" validate:"required"`
	Code    string         `json:"code" validate:"required"`
	Data    map[string]any `json:"data"`
}

// SignupErrorSchema is the failure envelope for the signup family.
type SignupErrorSchema struct {
	Error   *bool          `json:"error" validate:"required"`
	Code    string         `json:"code" validate:"required"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// LoginSuccessSchema mirrors the login success envelope; the session token
// travels inside data when present.
type LoginSuccessSchema struct {
	Message string         `json:"message" validate:"required"`
	Error   *bool          `json:"error" validate:"required"`
	Code    string         `json:"code" validate:"required"`
	Data    map[string]any `json:"data"`
}

// UserProfileSchema checks a user profile object.
type UserProfileSchema struct {
	Name      string `json:"name" validate:"required,min=3,max=80,nodigits"`
	Email     string `json:"email" validate:"required,email"`
	Verified  bool   `json:"verified"`
	CreatedAt string `json:"created_at" validate:"omitempty"`
}

// Validate checks a body against a schema kind. The body may be raw bytes,
// a string, or any marshalable value (e.g. a decoded map). Pure function:
// validating the same body twice yields the same result.
func Validate(body any, kind SchemaKind) (bool, error) {
	raw, err := normalizeBody(body)
	if err != nil {
		return false, err
	}

	target, err := schemaTarget(kind)
	if err != nil {
		return false, err
	}

	// Unknown fields are deliberately ignored here; the schemas are open
	// records.
	if err := json.Unmarshal(raw, target); err != nil {
		return false, err
	}
	if err := validator.Instance().Struct(target); err != nil {
		return false, err
	}
	return true, nil
}

// AssertValid fails the test with the message prefix and the underlying
// field error when the body does not match the schema.
func AssertValid(t testing.TB, body any, kind SchemaKind, messagePrefix string) {
	t.Helper()
	ok, err := Validate(body, kind)
	if !ok {
		t.Fatalf("%s: %v", messagePrefix, xerrors.NewSchemaValidationError(err))
	}
}

func schemaTarget(kind SchemaKind) (any, error) {
	switch kind {
	case SchemaSignupRequest:
		return &SignupRequestSchema{}, nil
	case SchemaSignupSuccess:
		return &SignupSuccessSchema{}, nil
	case SchemaSignupError:
		return &SignupErrorSchema{}, nil
	case SchemaLoginSuccess:
		return &LoginSuccessSchema{}, nil
	case SchemaUserProfile:
		return &UserProfileSchema{}, nil
	default:
		return nil, errors.New("unknown schema kind: " + string(kind))
	}
}

func normalizeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, errors.New("empty response body")
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return json.Marshal(body)
	}
}
