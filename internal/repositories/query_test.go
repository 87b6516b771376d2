package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBy(t *testing.T) {
	t.Run("Fallback when unsorted", func(t *testing.T) {
		orderBy, err := productSortColumns.orderBy(nil, "p.id ASC")
		require.NoError(t, err)
		assert.Equal(t, "p.id ASC", orderBy)
	})

	t.Run("Id sort has no tie breaker", func(t *testing.T) {
		orderBy, err := categorySortColumns.orderBy(&models.Sort{Field: "id", Direction: models.Desc}, "id ASC")
		require.NoError(t, err)
		assert.Equal(t, "id DESC", orderBy)
	})

	t.Run("Mapped column with tie breaker", func(t *testing.T) {
		orderBy, err := productSortColumns.orderBy(&models.Sort{Field: "createDate", Direction: models.Desc}, "p.id ASC")
		require.NoError(t, err)
		assert.Equal(t, "p.create_date DESC, p.id ASC", orderBy)
	})

	t.Run("Unknown field", func(t *testing.T) {
		_, err := userSortColumns.orderBy(&models.Sort{Field: "password", Direction: models.Asc}, "id ASC")
		assert.ErrorIs(t, err, ErrInvalidSortField)
	})
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%phone%", containsPattern(" phone "))
	assert.Equal(t, `%100\%\_off%`, containsPattern("100%_off"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pq.Error{Code: "23505", Constraint: "users_email_lower_key"}

	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", uniqueErr)))
	assert.Equal(t, "users_email_lower_key", ConstraintName(uniqueErr))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.Empty(t, ConstraintName(errors.New("boom")))
}
