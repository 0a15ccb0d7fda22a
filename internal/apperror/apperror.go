package apperror

import "net/http"

type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindUnauthorized       Kind = "unauthorized"
	KindUnknownTarget      Kind = "unknown_target"
	KindDuplicateRequest   Kind = "duplicate_request"
	KindRequestNotFound    Kind = "request_not_found"
	KindInvalidID          Kind = "invalid_id"
	KindInvalidResetToken  Kind = "invalid_reset_token"
	KindTooManyRequests    Kind = "too_many_requests"
	KindInternal           Kind = "internal"
)

// AppError is the only error type that reaches clients with its message intact.
// Two AppErrors match under errors.Is when their kinds are equal.
type AppError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, status int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Status:  status,
		Message: message,
	}
}

// Sentinels for errors.Is matching; never mutate them.
var (
	ErrValidation         = New(KindValidation, http.StatusBadRequest, "invalid request")
	ErrDuplicateEmail     = New(KindDuplicateEmail, http.StatusConflict, "Email already registered")
	ErrInvalidCredentials = New(KindInvalidCredentials, http.StatusUnauthorized, "Invalid credentials")
	ErrUnauthorized       = New(KindUnauthorized, http.StatusUnauthorized, "Could not validate credentials")
	ErrUnknownTarget      = New(KindUnknownTarget, http.StatusNotFound, "Target user not found")
	ErrDuplicateRequest   = New(KindDuplicateRequest, http.StatusConflict, "Request already exists")
	ErrRequestNotFound    = New(KindRequestNotFound, http.StatusNotFound, "Friend request not found")
	ErrInvalidID          = New(KindInvalidID, http.StatusBadRequest, "Invalid notification id")
	ErrInvalidResetToken  = New(KindInvalidResetToken, http.StatusBadRequest, "Invalid or expired reset token")
	ErrTooManyRequests    = New(KindTooManyRequests, http.StatusTooManyRequests, "Too many requests")
)

func Validation(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message)
}

func DuplicateEmail() *AppError {
	return New(KindDuplicateEmail, ErrDuplicateEmail.Status, ErrDuplicateEmail.Message)
}

func InvalidCredentials() *AppError {
	return New(KindInvalidCredentials, ErrInvalidCredentials.Status, ErrInvalidCredentials.Message)
}

func Unauthorized() *AppError {
	return New(KindUnauthorized, ErrUnauthorized.Status, ErrUnauthorized.Message)
}

func UnknownTarget() *AppError {
	return New(KindUnknownTarget, ErrUnknownTarget.Status, ErrUnknownTarget.Message)
}

func DuplicateRequest() *AppError {
	return New(KindDuplicateRequest, ErrDuplicateRequest.Status, ErrDuplicateRequest.Message)
}

func RequestNotFound() *AppError {
	return New(KindRequestNotFound, ErrRequestNotFound.Status, ErrRequestNotFound.Message)
}

func InvalidID() *AppError {
	return New(KindInvalidID, ErrInvalidID.Status, ErrInvalidID.Message)
}

func InvalidResetToken() *AppError {
	return New(KindInvalidResetToken, ErrInvalidResetToken.Status, ErrInvalidResetToken.Message)
}

func TooManyRequests() *AppError {
	return New(KindTooManyRequests, ErrTooManyRequests.Status, ErrTooManyRequests.Message)
}
