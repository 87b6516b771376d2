package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/stretchr/testify/mock"
)

type CategoryService struct {
	mock.Mock
}

func categoryOrNil(args mock.Arguments) *models.Category {
	if v := args.Get(0); v != nil {
		return v.(*models.Category)
	}

	return nil
}

func categoryList(args mock.Arguments) []*models.Category {
	if v := args.Get(0); v != nil {
		return v.([]*models.Category)
	}

	return nil
}

func categoryPage(args mock.Arguments) *models.Page[*models.Category] {
	if v := args.Get(0); v != nil {
		return v.(*models.Page[*models.Category])
	}

	return nil
}

func (m *CategoryService) FindAll(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	return categoryList(args), args.Error(1)
}

func (m *CategoryService) FindAllPaged(ctx context.Context, pageable models.Pageable) (*models.Page[*models.Category], error) {
	args := m.Called(ctx, pageable)
	return categoryPage(args), args.Error(1)
}

func (m *CategoryService) FindAllSorted(ctx context.Context, sortBy string, direction models.Direction) ([]*models.Category, error) {
	args := m.Called(ctx, sortBy, direction)
	return categoryList(args), args.Error(1)
}

func (m *CategoryService) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) (*models.Page[*models.Category], error) {
	args := m.Called(ctx, keyword, pageable)
	return categoryPage(args), args.Error(1)
}

func (m *CategoryService) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	return categoryOrNil(args), args.Error(1)
}

func (m *CategoryService) FindAllByID(ctx context.Context, ids []int64) ([]*models.Category, error) {
	args := m.Called(ctx, ids)
	return categoryList(args), args.Error(1)
}

func (m *CategoryService) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryService) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryService) ExistsByNameAndNotID(ctx context.Context, name string, id int64) (bool, error) {
	args := m.Called(ctx, name, id)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CategoryService) Save(ctx context.Context, category *models.Category) (*models.Category, error) {
	args := m.Called(ctx, category)
	return categoryOrNil(args), args.Error(1)
}

func (m *CategoryService) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	args := m.Called(ctx, category)
	return categoryOrNil(args), args.Error(1)
}

func (m *CategoryService) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CategoryService) Create(ctx context.Context, input *models.CategoryInput) (*models.Category, error) {
	args := m.Called(ctx, input)
	return categoryOrNil(args), args.Error(1)
}

func (m *CategoryService) UpdateByID(ctx context.Context, id int64, input *models.CategoryInput) (*models.Category, error) {
	args := m.Called(ctx, id, input)
	return categoryOrNil(args), args.Error(1)
}
