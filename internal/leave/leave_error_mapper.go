package leave

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation      = "23505"
	pgInvalidTextRepresent  = "22P02"
)

// mapNotFound converts lookups that cannot match a row into notFound.
func mapNotFound(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresent {
		return notFound
	}
	if strings.Contains(strings.ToLower(err.Error()), "invalid input syntax for type uuid") {
		return notFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func mapUniqueViolation(err error, conflict error) error {
	if err != nil && isUniqueViolation(err) {
		return conflict
	}
	return err
}
