package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the request boundary. Handlers map kinds to
// HTTP status codes and user-facing messages; anything without a kind is
// rendered as a generic internal failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlanLimitExceeded
	KindFileValidation
	KindOwnershipViolation
	KindNotFound
	KindExternalService
)

// Error carries a kind and a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// PlanLimitExceeded reports a quantitative plan cap violation.
func PlanLimitExceeded(format string, args ...any) error {
	return &Error{Kind: KindPlanLimitExceeded, Message: fmt.Sprintf(format, args...)}
}

// FileValidation reports a malformed or disallowed upload.
func FileValidation(format string, args ...any) error {
	return &Error{Kind: KindFileValidation, Message: fmt.Sprintf(format, args...)}
}

// OwnershipViolation reports an authorization failure.
func OwnershipViolation(format string, args ...any) error {
	return &Error{Kind: KindOwnershipViolation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ExternalService wraps a collaborator failure (storage, SMS, prober).
func ExternalService(msg string, err error) error {
	return &Error{Kind: KindExternalService, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Sentinels shared across services.
var (
	ErrReadOnlyGracePeriod   = errors.New("subscription expired. Read-only access during grace period")
	ErrSubscriptionExpired   = errors.New("subscription expired. Please renew to continue")
	ErrAccountBlocked        = errors.New("account has been blocked")
	ErrInvalidCredentials    = errors.New("invalid username/mobile number or password")
	ErrInvalidToken          = errors.New("invalid token")
	ErrAuthHeaderEmpty       = errors.New("authorization header is empty")
	ErrAuthHeaderWrongFormat = errors.New("authorization header format must be Bearer <token>")
)
