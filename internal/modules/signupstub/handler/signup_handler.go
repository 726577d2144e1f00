package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"signup-qa/internal/modules/signupstub/service"
	"signup-qa/internal/pkg/response"
	"signup-qa/internal/pkg/xerrors"
)

// SignupHandler exposes the three signup endpoints over HTTP.
type SignupHandler struct {
	service *service.SignupService
}

// NewSignupHandler creates a handler bound to the service.
func NewSignupHandler(svc *service.SignupService) *SignupHandler {
	return &SignupHandler{service: svc}
}

// ==================== HTTP Request Models ====================

// RegisterRequest mirrors the signup endpoint body. Only presence and email
// syntax are validated here; name rules and confirm_password comparison are
// intentionally absent to match the remote API's observed gaps.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password"`
}

// ConfirmRequest mirrors the confirm endpoint body.
type ConfirmRequest struct {
	Email            string `json:"email" validate:"required,email"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

// ResendRequest mirrors the resend-code endpoint body.
type ResendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ==================== HTTP Handlers ====================

// Register handles POST /api/authentication/signup/.
func (h *SignupHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.EchoBadRequest(c, "Malformed request body.")
	}
	if err := c.Validate(&req); err != nil {
		return response.EchoError(c, err)
	}

	data, err := h.service.Register(c.Request().Context(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		if xerrors.CodeOf(err) == xerrors.CodeInternalError {
			// Mimic the remote unhandled-exception path: generic 500, no
			// diagnostic detail on the wire.
			return response.EchoInternalError(c)
		}
		return response.EchoError(c, err)
	}

	return response.EchoOK(c, http.StatusCreated, xerrors.CodeSuccess,
		"User registered successfully. Please verify your email.", data)
}

// Confirm handles POST /api/authentication/signup/confirm/.
func (h *SignupHandler) Confirm(c echo.Context) error {
	var req ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return response.EchoBadRequest(c, "Malformed request body.")
	}
	if err := c.Validate(&req); err != nil {
		return response.EchoError(c, err)
	}

	if err := h.service.Confirm(c.Request().Context(), req.Email, req.ConfirmationCode); err != nil {
		return response.EchoError(c, err)
	}

	return response.EchoOK(c, http.StatusOK, xerrors.CodeSuccess,
		"Email verified successfully.", nil)
}

// Resend handles POST /api/authentication/signup/resend-code/.
func (h *SignupHandler) Resend(c echo.Context) error {
	var req ResendRequest
	if err := c.Bind(&req); err != nil {
		return response.EchoBadRequest(c, "Malformed request body.")
	}
	if err := c.Validate(&req); err != nil {
		return response.EchoError(c, err)
	}

	if err := h.service.Resend(c.Request().Context(), req.Email); err != nil {
		return response.EchoError(c, err)
	}

	return response.EchoOK(c, http.StatusOK, xerrors.CodeCodeResent,
		xerrors.CodeCodeResent.Message(), nil)
}
