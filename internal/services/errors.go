package service

import (
	"database/sql"
	"errors"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	repository "github.com/aaravmahajanofficial/catalog-admin/internal/repositories"
)

// queryError turns a repository failure into the AppError the adapters render.
func queryError(err error, message string) error {
	if errors.Is(err, repository.ErrInvalidSortField) {
		return appErrors.FieldError("sortBy", "Trường sắp xếp không hợp lệ").WithError(err)
	}

	return appErrors.DatabaseError(message).WithError(err)
}

// lookupError distinguishes a missing row from a failing query.
func lookupError(err error, notFound string, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFoundError(notFound).WithError(err)
	}

	return appErrors.DatabaseError(message).WithError(err)
}

// writeError maps a unique index violation onto the same field error the
// pre-check reports, so a lost race looks like an ordinary duplicate.
func writeError(err error, field, duplicate, message string) error {
	if repository.IsUniqueViolation(err) {
		return appErrors.FieldError(field, duplicate).WithError(err)
	}

	return appErrors.DatabaseError(message).WithError(err)
}
