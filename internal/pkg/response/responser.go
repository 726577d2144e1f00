package response

import (
	"signup-qa/internal/pkg/xerrors"
)

// Envelope is the signup API family wire format. Every response, success or
// failure, is shaped this way; data is optional and open-ended.
type Envelope struct {
	Error   bool           `json:"error"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Success builds a non-error envelope.
func Success(code xerrors.ErrorCode, message string, data map[string]any) *Envelope {
	if message == "" {
		message = code.Message()
	}
	return &Envelope{
		Error:   false,
		Code:    string(code),
		Message: message,
		Data:    data,
	}
}

// Failure builds an error envelope from an AppError, folding per-field
// validation detail into data.
func Failure(appErr *xerrors.AppError) *Envelope {
	env := &Envelope{
		Error:   true,
		Code:    string(appErr.Code),
		Message: appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		env.Data = make(map[string]any, len(appErr.Fields))
		for field, msg := range appErr.Fields {
			env.Data[field] = msg
		}
	}
	return env
}
