package apperror

import (
	"errors"
	"fmt"
)

// Kind phân loại lỗi ở tầng service, được map sang response code + HTTP status
// đúng một lần trong response.Fail
type Kind int

const (
	KindSystem Kind = iota
	KindNotFound
	KindMissingParams
	KindValidation
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindMissingParams:
		return "missing_params"
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "system"
	}
}

// Error is the failure half of every service result.
// Message is only shown to clients for KindValidation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(err error) *Error {
	return &Error{Kind: KindNotFound, Err: err}
}

func MissingParams() *Error {
	return &Error{Kind: KindMissingParams}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func RateLimited(message string) *Error {
	return &Error{Kind: KindRateLimited, Message: message}
}

func System(err error) *Error {
	return &Error{Kind: KindSystem, Err: err}
}

// From trả về *Error nằm trong chuỗi err.
// Lỗi không xác định được coi là KindSystem.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return System(err)
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
