package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/cache"
	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-admin/internal/repositories"
	"github.com/aaravmahajanofficial/catalog-admin/internal/validation"
)

const duplicateCategoryName = "Tên category đã tồn tại"

type CategoryService interface {
	FindAll(ctx context.Context) ([]*models.Category, error)
	FindAllPaged(ctx context.Context, pageable models.Pageable) (*models.Page[*models.Category], error)
	FindAllSorted(ctx context.Context, sortBy string, direction models.Direction) ([]*models.Category, error)
	SearchByName(ctx context.Context, keyword string, pageable models.Pageable) (*models.Page[*models.Category], error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	FindAllByID(ctx context.Context, ids []int64) ([]*models.Category, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByNameAndNotID(ctx context.Context, name string, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteByID(ctx context.Context, id int64) error
	Create(ctx context.Context, input *models.CategoryInput) (*models.Category, error)
	UpdateByID(ctx context.Context, id int64, input *models.CategoryInput) (*models.Category, error)
}

type categoryService struct {
	repo     repository.CategoryRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewCategoryService accepts a nil cache; lookups then always hit the database.
func NewCategoryService(repo repository.CategoryRepository, c cache.Cache, cacheTTL time.Duration) CategoryService {
	return &categoryService{repo: repo, cache: c, cacheTTL: cacheTTL}
}

func categoryNotFound(id int64) string {
	return fmt.Sprintf("Không tìm thấy category với ID: %d", id)
}

func (s *categoryService) FindAll(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, queryError(err, "Failed to fetch categories")
	}

	return categories, nil
}

func (s *categoryService) FindAllPaged(ctx context.Context, pageable models.Pageable) (*models.Page[*models.Category], error) {
	categories, total, err := s.repo.FindAllPaged(ctx, pageable)
	if err != nil {
		return nil, queryError(err, "Failed to fetch categories")
	}

	return models.NewPage(categories, total, pageable), nil
}

func (s *categoryService) FindAllSorted(ctx context.Context, sortBy string, direction models.Direction) ([]*models.Category, error) {
	var sort *models.Sort
	if strings.TrimSpace(sortBy) != "" {
		sort = &models.Sort{Field: strings.TrimSpace(sortBy), Direction: direction}
	}

	categories, err := s.repo.FindAllSorted(ctx, sort)
	if err != nil {
		return nil, queryError(err, "Failed to fetch categories")
	}

	return categories, nil
}

// SearchByName falls back to the unfiltered listing for a blank keyword.
func (s *categoryService) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) (*models.Page[*models.Category], error) {
	if strings.TrimSpace(keyword) == "" {
		return s.FindAllPaged(ctx, pageable)
	}

	categories, total, err := s.repo.SearchByName(ctx, keyword, pageable)
	if err != nil {
		return nil, queryError(err, "Failed to search categories")
	}

	return models.NewPage(categories, total, pageable), nil
}

func (s *categoryService) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.IDKey(cache.CategoryKeyPrefix, id)

	if s.cache != nil {
		var cached models.Category

		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("Category cache read failed", slog.String("key", key), slog.Any("error", err))
		} else if found {
			return &cached, nil
		}
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, categoryNotFound(id), "Failed to fetch category")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, category, s.cacheTTL); err != nil {
			logger.Warn("Category cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return category, nil
}

func (s *categoryService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}

	key := cache.IDKey(cache.CategoryKeyPrefix, id)

	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Category cache invalidation failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (s *categoryService) FindAllByID(ctx context.Context, ids []int64) ([]*models.Category, error) {
	categories, err := s.repo.FindAllByID(ctx, ids)
	if err != nil {
		return nil, queryError(err, "Failed to fetch categories")
	}

	return categories, nil
}

func (s *categoryService) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, queryError(err, "Failed to check category")
	}

	return exists, nil
}

func (s *categoryService) ExistsByName(ctx context.Context, name string) (bool, error) {
	exists, err := s.repo.ExistsByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return false, queryError(err, "Failed to check category name")
	}

	return exists, nil
}

func (s *categoryService) ExistsByNameAndNotID(ctx context.Context, name string, id int64) (bool, error) {
	exists, err := s.repo.ExistsByNameAndNotID(ctx, strings.TrimSpace(name), id)
	if err != nil {
		return false, queryError(err, "Failed to check category name")
	}

	return exists, nil
}

func (s *categoryService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, queryError(err, "Failed to count categories")
	}

	return total, nil
}

// Save inserts a new category or rewrites an existing one. Uniqueness is the
// caller's concern; a unique index hit still surfaces as a field error.
func (s *categoryService) Save(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID != 0 {
		return s.Update(ctx, category)
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, writeError(err, "name", duplicateCategoryName, "Failed to create category")
	}

	return category, nil
}

func (s *categoryService) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, writeError(err, "name", duplicateCategoryName, "Failed to update category")
	}

	s.invalidate(ctx, category.ID)

	return category, nil
}

// DeleteByID is silent when the id is absent. Products keep existing with no
// category; user links are dropped by the database.
func (s *categoryService) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return appErrors.DatabaseError("Failed to delete category").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *categoryService) Create(ctx context.Context, input *models.CategoryInput) (*models.Category, error) {
	category := &models.Category{}
	applyCategoryInput(category, input)

	if err := validation.Struct(category); err != nil {
		return nil, err
	}

	exists, err := s.ExistsByName(ctx, category.Name)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, appErrors.FieldError("name", duplicateCategoryName)
	}

	return s.Save(ctx, category)
}

func (s *categoryService) UpdateByID(ctx context.Context, id int64, input *models.CategoryInput) (*models.Category, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, categoryNotFound(id), "Failed to fetch category")
	}

	applyCategoryInput(current, input)

	if err := validation.Struct(current); err != nil {
		return nil, err
	}

	exists, err := s.ExistsByNameAndNotID(ctx, current.Name, id)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, appErrors.FieldError("name", duplicateCategoryName)
	}

	return s.Update(ctx, current)
}

func applyCategoryInput(category *models.Category, input *models.CategoryInput) {
	if input == nil {
		return
	}

	if input.Name != nil {
		category.Name = validation.Sanitize(*input.Name)
	}

	if input.Images != nil {
		category.Images = strings.TrimSpace(*input.Images)
	}

	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
}
