package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/lib/pq"
)

var ErrInvalidSortField = errors.New("invalid sort field")

const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

// sortColumns maps the sort fields the adapters accept to SQL columns. Every map
// carries "id", used as the tie breaker.
type sortColumns map[string]string

func (c sortColumns) orderBy(sort *models.Sort, fallback string) (string, error) {
	if sort == nil {
		return fallback, nil
	}

	column, ok := c[sort.Field]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidSortField, sort.Field)
	}

	direction := "ASC"
	if sort.Direction == models.Desc {
		direction = "DESC"
	}

	// ties are broken by id so paging stays stable
	idColumn := c["id"]
	if column == idColumn {
		return column + " " + direction, nil
	}

	return column + " " + direction + ", " + idColumn + " ASC", nil
}

// IsUniqueViolation reports whether the driver rejected a write on a unique index.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}

	return false
}

// ConstraintName returns the violated constraint, or "" for other errors.
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}

	return ""
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching keyword anywhere, literally.
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(keyword)) + "%"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
