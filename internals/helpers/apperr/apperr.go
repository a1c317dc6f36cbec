// Package apperr berisi error bertipe untuk domain booking kelas.
// Controller memetakan Kind ke status HTTP; service cukup mengembalikan *Error.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation          Kind = "validation"
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindCapacityExceeded    Kind = "capacity_exceeded"
	KindDuplicateEnrollment Kind = "duplicate_enrollment"
	KindInvalidState        Kind = "invalid_state"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is: dua *Error dianggap sama kalau Kind-nya sama, jadi
// errors.Is(err, apperr.ErrCapacityExceeded) bisa dipakai di test/controller.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel per kind (untuk errors.Is)
var (
	ErrValidation          = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict            = &Error{Kind: KindConflict, Message: "conflict"}
	ErrCapacityExceeded    = &Error{Kind: KindCapacityExceeded, Message: "session is full"}
	ErrDuplicateEnrollment = &Error{Kind: KindDuplicateEnrollment, Message: "member already enrolled"}
	ErrInvalidState        = &Error{Kind: KindInvalidState, Message: "invalid state"}
)

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func CapacityExceeded(format string, args ...any) *Error {
	return &Error{Kind: KindCapacityExceeded, Message: fmt.Sprintf(format, args...)}
}

func DuplicateEnrollment(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicateEnrollment, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Wrap menempelkan error penyebab (biasanya error store) ke kind tertentu.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf mengembalikan kind dari err; "" kalau bukan *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
