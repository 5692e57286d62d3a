package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindBusiness Kind = iota
	KindInvalidInput
	KindNotFound
	KindConflict
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindBusiness, Code: code}
}

func ErrInvalidInput(code string) error {
	return BusinessError{Kind: KindInvalidInput, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf reports the kind of a BusinessError anywhere in err's chain.
// ok is false for any other error.
func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

// IsExclusionConflict detects unique (23505) and exclusion (23P01)
// constraint violations raised by postgres.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}
