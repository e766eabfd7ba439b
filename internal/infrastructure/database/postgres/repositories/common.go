// Package repositories contains the PostgreSQL implementations of the domain
// repository ports.
package repositories

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5"

	"github.com/afyabot/afyabot/pkg/errors"
)

// wrapQueryError maps a pgx error to an AppError, translating pgx.ErrNoRows
// to the given not-found code.
func wrapQueryError(err error, notFoundCode errors.ErrorCode, notFoundMsg string) error {
	if stderrors.Is(err, pgx.ErrNoRows) {
		return errors.New(notFoundCode, notFoundMsg)
	}
	return errors.Wrap(err, errors.ErrCodeDatabaseError, "query failed")
}
