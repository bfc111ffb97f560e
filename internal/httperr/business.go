package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure. Each kind maps to one HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindTenantNotFound
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindValidation
	KindRateLimited
	KindInvalidTransition
)

func (k Kind) String() string {
	switch k {
	case KindTenantNotFound:
		return "tenant_not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation_error"
	case KindRateLimited:
		return "rate_limited"
	case KindInvalidTransition:
		return "invalid_transition"
	default:
		return "internal_error"
	}
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newErr(kind Kind, code, message string) error {
	if code == "" {
		code = kind.String()
	}
	return BusinessError{Kind: kind, Code: code, Message: message}
}

// ErrBusiness is a validation failure identified only by its code.
func ErrBusiness(code string) error {
	return newErr(KindValidation, code, "")
}

func ErrTenantNotFound() error {
	return newErr(KindTenantNotFound, "tenant_not_found", "Barbershop not found")
}

func ErrUnauthorized(code, message string) error {
	return newErr(KindUnauthorized, code, message)
}

func ErrForbidden(code, message string) error {
	return newErr(KindForbidden, code, message)
}

func ErrNotFound(code, message string) error {
	return newErr(KindNotFound, code, message)
}

func ErrConflict(code, message string) error {
	return newErr(KindConflict, code, message)
}

func ErrValidation(code, message string) error {
	return newErr(KindValidation, code, message)
}

func ErrRateLimited() error {
	return newErr(KindRateLimited, "rate_limited", "Too many requests")
}

func ErrInvalidTransition(code, message string) error {
	return newErr(KindInvalidTransition, code, message)
}

// KindOf returns KindInternal for anything that is not a BusinessError.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
