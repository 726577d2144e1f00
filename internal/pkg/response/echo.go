package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"signup-qa/internal/pkg/xerrors"
)

// Echo adapters so handlers stay one-liners.

// EchoOK writes a success envelope with an explicit HTTP status.
func EchoOK(c echo.Context, status int, code xerrors.ErrorCode, message string, data map[string]any) error {
	return c.JSON(status, Success(code, message, data))
}

// EchoError writes a failure envelope, deriving the HTTP status from the
// error's business code. Non-AppError values become 500s.
func EchoError(c echo.Context, err error) error {
	var appErr *xerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = xerrors.Wrap(err, xerrors.CodeInternalError, xerrors.CodeInternalError.Message())
	}
	return c.JSON(appErr.HTTPStatus(), Failure(appErr))
}

// EchoBadRequest writes a 400 validation failure for a malformed body.
func EchoBadRequest(c echo.Context, message string) error {
	return EchoError(c, xerrors.New(xerrors.CodeValidationError, message))
}

// EchoNotFound writes a 404 failure.
func EchoNotFound(c echo.Context, resource, identifier string) error {
	return EchoError(c, xerrors.NewNotFoundError(resource, identifier))
}

// EchoInternalError writes a 500 failure. The stub uses this to mimic the
// remote API's unhandled-exception paths, so the message stays generic.
func EchoInternalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, Failure(xerrors.FromCode(xerrors.CodeInternalError)))
}
