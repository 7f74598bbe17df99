package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	PgErrNotNullViolation    = "23502"
	PgErrForeignKeyViolation = "23503"
	PgErrUniqueViolation     = "23505"
	PgErrCheckViolation      = "23514"

	integrityConstraintClass = "23"
)

// IntegrityViolation сообщает, отклонила ли база запись по ограничению
// целостности (класс 23), и возвращает имя ограничения, если оно известно.
func IntegrityViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || !strings.HasPrefix(pgErr.Code, integrityConstraintClass) {
		return "", false
	}
	return pgErr.ConstraintName, true
}
