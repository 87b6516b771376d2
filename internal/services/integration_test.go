//go:build integration

package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-admin/internal/repositories"
	service "github.com/aaravmahajanofficial/catalog-admin/internal/services"
)

func setupPostgres(t *testing.T) *repository.Repository {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("catalog"),
		postgres.WithPassword("catalog"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repository.Migrate(ctx, db))
	// second run must be a no-op
	require.NoError(t, repository.Migrate(ctx, db))

	return repository.NewFromDB(db)
}

func TestIntegration_Catalog(t *testing.T) {
	repo := setupPostgres(t)
	ctx := t.Context()

	categories := service.NewCategoryService(repo.Category, nil, 0)
	users := service.NewUserService(repo.User, repo.Category)
	products := service.NewProductService(repo.Product, repo.Category, repo.User, nil)

	category, err := categories.Create(ctx, &models.CategoryInput{Name: ptr("Laptops")})
	require.NoError(t, err)
	require.NotZero(t, category.ID)

	t.Run("Error - Duplicate Category Name Ignores Case", func(t *testing.T) {
		_, err := categories.Create(ctx, &models.CategoryInput{Name: ptr("LAPTOPS")})

		requireAppError(t, err, appErrors.ErrCodeValidation, "name", "Tên category đã tồn tại")
	})

	t.Run("Success - Name Exists Until Deleted", func(t *testing.T) {
		temp, err := categories.Create(ctx, &models.CategoryInput{Name: ptr("Tablets")})
		require.NoError(t, err)

		exists, err := categories.ExistsByName(ctx, "tablets")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, categories.DeleteByID(ctx, temp.ID))

		exists, err = categories.ExistsByName(ctx, "Tablets")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Error - Missing Category", func(t *testing.T) {
		_, err := categories.FindByID(ctx, category.ID+1000)

		assert.True(t, appErrors.IsNotFound(err))
	})

	user, err := users.Create(ctx, &models.UserInput{
		Fullname:    ptr("Nguyen Van A"),
		Email:       ptr("A@Example.com"),
		Password:    ptr("secret123"),
		CategoryIDs: &[]int64{category.ID},
	})
	require.NoError(t, err)

	t.Run("Success - User Stored With Categories", func(t *testing.T) {
		found, err := users.FindByEmail(ctx, "a@example.com")
		require.NoError(t, err)

		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, []int64{category.ID}, found.CategoryIDs())
		assert.NotEqual(t, "secret123", found.Password)
	})

	price := decimal.RequireFromString("1200.50")
	product, err := products.Create(ctx, &models.ProductInput{
		Title:      ptr("ThinkPad X1"),
		Quantity:   ptr(3),
		Price:      &price,
		Discount:   ptr(10),
		Status:     ptr(true),
		UserID:     &user.ID,
		CategoryID: &category.ID,
	})
	require.NoError(t, err)

	t.Run("Success - Product Search And Stats", func(t *testing.T) {
		page, err := products.SearchByNameAndCategory(ctx, "thinkpad", &category.ID, models.NewPageable(0, 10))
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		assert.Equal(t, product.ID, page.Content[0].ID)
		assert.Equal(t, "Laptops", page.Content[0].CategoryName)

		stats, err := products.Stats(ctx, 5)
		require.NoError(t, err)
		assert.EqualValues(t, 1, stats.Total)
		assert.EqualValues(t, 1, stats.LowStock)
	})

	t.Run("Success - Update Keeps Create Date", func(t *testing.T) {
		updated, err := products.UpdateByID(ctx, product.ID, &models.ProductInput{Quantity: ptr(7)})
		require.NoError(t, err)

		assert.Equal(t, 7, updated.Quantity)
		assert.True(t, updated.CreateDate.Equal(product.CreateDate),
			"createDate changed from %v to %v", product.CreateDate, updated.CreateDate)
	})

	t.Run("Success - Deleting User Removes Their Products", func(t *testing.T) {
		owner, err := users.Create(ctx, &models.UserInput{
			Fullname: ptr("Tran Thi B"),
			Email:    ptr("b@example.com"),
			Password: ptr("secret456"),
		})
		require.NoError(t, err)

		mousePrice := decimal.RequireFromString("25.00")
		mouse, err := products.Create(ctx, &models.ProductInput{
			Title:      ptr("MX Master"),
			Quantity:   ptr(10),
			Price:      &mousePrice,
			UserID:     &owner.ID,
			CategoryID: &category.ID,
		})
		require.NoError(t, err)

		require.NoError(t, users.DeleteByID(ctx, owner.ID))

		_, err = products.FindByID(ctx, mouse.ID)
		assert.True(t, appErrors.IsNotFound(err))

		_, err = products.FindByID(ctx, product.ID)
		assert.NoError(t, err)
	})

	t.Run("Success - Deleting Category Keeps Product", func(t *testing.T) {
		require.NoError(t, categories.DeleteByID(ctx, category.ID))

		found, err := products.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Nil(t, found.CategoryID)
	})
}
