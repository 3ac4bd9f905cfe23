package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/anubhawdwd/hrms-be/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	// invalid_text_representation: a malformed uuid never matches a row
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return employeeerrors.ErrEmployeeNotFound
	}

	if strings.Contains(strings.ToLower(err.Error()), "invalid input syntax for type uuid") {
		return employeeerrors.ErrEmployeeNotFound
	}

	return err
}
