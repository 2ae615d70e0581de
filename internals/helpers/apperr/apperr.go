// Package apperr is the error taxonomy shared by services and controllers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string, fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NotFound(entity string, id any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", entity, id)}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Persistence(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: op + " failed", Err: err}
}

// FromDB classifies a storage error. Errors that are already classified pass
// through unchanged so transaction callbacks can return them as-is.
func FromDB(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	// 23505 unique_violation, 23503 foreign_key_violation,
	// 23502 not_null_violation, 22001 string_data_right_truncation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &Error{Kind: KindConflict, Message: op + ": duplicate value", Err: err}
		case "23503":
			return &Error{Kind: KindValidation, Message: op + ": referenced record does not exist", Err: err}
		case "23502", "22001":
			return &Error{Kind: KindValidation, Message: op + ": " + pgErr.Message, Err: err}
		}
	}

	// driver-neutral translations (gorm.Config.TranslateError)
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Message: op + ": duplicate value", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Kind: KindValidation, Message: op + ": referenced record does not exist", Err: err}
	}
	return Persistence(op, err)
}

func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindPersistence
}

func Is(err error, k Kind) bool { return err != nil && KindOf(err) == k }
