package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/stretchr/testify/mock"
)

type CategoryRepository struct {
	mock.Mock
}

func categoryList(args mock.Arguments) []*models.Category {
	if v := args.Get(0); v != nil {
		return v.([]*models.Category)
	}

	return nil
}

func (m *CategoryRepository) FindAll(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	return categoryList(args), args.Error(1)
}

func (m *CategoryRepository) FindAllSorted(ctx context.Context, sort *models.Sort) ([]*models.Category, error) {
	args := m.Called(ctx, sort)
	return categoryList(args), args.Error(1)
}

func (m *CategoryRepository) FindAllPaged(ctx context.Context, pageable models.Pageable) ([]*models.Category, int64, error) {
	args := m.Called(ctx, pageable)
	return categoryList(args), args.Get(1).(int64), args.Error(2)
}

func (m *CategoryRepository) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) ([]*models.Category, int64, error) {
	args := m.Called(ctx, keyword, pageable)
	return categoryList(args), args.Get(1).(int64), args.Error(2)
}

func (m *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Category), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CategoryRepository) FindAllByID(ctx context.Context, ids []int64) ([]*models.Category, error) {
	args := m.Called(ctx, ids)
	return categoryList(args), args.Error(1)
}

func (m *CategoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryRepository) ExistsByNameAndNotID(ctx context.Context, name string, id int64) (bool, error) {
	args := m.Called(ctx, name, id)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
