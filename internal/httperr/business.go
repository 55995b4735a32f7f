package httperr

import (
	"errors"
	"net/http"
)

// Kind classifies a business failure. Each kind maps to one HTTP status.
type Kind int

const (
	KindInvalidArgument Kind = iota + 1
	KindInvalidOperation
	KindNotFound
	KindConflict
	KindPermissionDenied
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPermissionDenied:
		return "permission_denied"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status for the kind.
func (k Kind) Status() int {
	switch k {
	case KindInvalidArgument, KindInvalidOperation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func New(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return New(KindNotFound, code, message)
}

func ErrConflict(code, message string) error {
	return New(KindConflict, code, message)
}

func ErrPermissionDenied(code, message string) error {
	return New(KindPermissionDenied, code, message)
}

func ErrInvalidArgument(code, message string) error {
	return New(KindInvalidArgument, code, message)
}

func ErrInvalidOperation(code, message string) error {
	return New(KindInvalidOperation, code, message)
}

func ErrUnauthenticated(code, message string) error {
	return New(KindUnauthenticated, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the kind of a business error, or false for anything else.
func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}
