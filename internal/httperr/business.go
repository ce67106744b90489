package httperr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type BusinessError struct {
	Code   string
	Fields []string
}

func (e BusinessError) Error() string {
	if len(e.Fields) == 0 {
		return e.Code
	}
	return e.Code + ": " + strings.Join(e.Fields, ", ")
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrFields is a business error that names the offending input fields.
func ErrFields(code string, fields ...string) error {
	return BusinessError{Code: code, Fields: fields}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// IsUniqueViolation reports whether err comes from a unique index rejecting
// an insert or update, for Postgres (23505) and for the sqlite test driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
