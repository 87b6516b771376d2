package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func productOrNil(args mock.Arguments) *models.Product {
	if v := args.Get(0); v != nil {
		return v.(*models.Product)
	}

	return nil
}

func productList(args mock.Arguments) []*models.Product {
	if v := args.Get(0); v != nil {
		return v.([]*models.Product)
	}

	return nil
}

func productPage(args mock.Arguments) *models.Page[*models.Product] {
	if v := args.Get(0); v != nil {
		return v.(*models.Page[*models.Product])
	}

	return nil
}

func (m *ProductService) FindAll(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return productList(args), args.Error(1)
}

func (m *ProductService) FindAllPaged(ctx context.Context, pageable models.Pageable) (*models.Page[*models.Product], error) {
	args := m.Called(ctx, pageable)
	return productPage(args), args.Error(1)
}

func (m *ProductService) FindAllOrderByPriceAsc(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return productList(args), args.Error(1)
}

func (m *ProductService) FindByCategoryID(ctx context.Context, categoryID int64) ([]*models.Product, error) {
	args := m.Called(ctx, categoryID)
	return productList(args), args.Error(1)
}

func (m *ProductService) FindByCategoryIDPaged(ctx context.Context, categoryID int64, pageable models.Pageable) (*models.Page[*models.Product], error) {
	args := m.Called(ctx, categoryID, pageable)
	return productPage(args), args.Error(1)
}

func (m *ProductService) FindByUserID(ctx context.Context, userID int64) ([]*models.Product, error) {
	args := m.Called(ctx, userID)
	return productList(args), args.Error(1)
}

func (m *ProductService) FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]*models.Product, error) {
	args := m.Called(ctx, minPrice, maxPrice)
	return productList(args), args.Error(1)
}

func (m *ProductService) FindOutOfStock(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return productList(args), args.Error(1)
}

func (m *ProductService) FindLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	args := m.Called(ctx, threshold)
	return productList(args), args.Error(1)
}

func (m *ProductService) FindDiscounted(ctx context.Context, pageable models.Pageable) (*models.Page[*models.Product], error) {
	args := m.Called(ctx, pageable)
	return productPage(args), args.Error(1)
}

func (m *ProductService) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) (*models.Page[*models.Product], error) {
	args := m.Called(ctx, keyword, pageable)
	return productPage(args), args.Error(1)
}

func (m *ProductService) SearchByNameAndCategory(ctx context.Context, keyword string, categoryID *int64, pageable models.Pageable) (*models.Page[*models.Product], error) {
	args := m.Called(ctx, keyword, categoryID, pageable)
	return productPage(args), args.Error(1)
}

func (m *ProductService) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	return productOrNil(args), args.Error(1)
}

func (m *ProductService) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ProductService) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	args := m.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

func (m *ProductService) ExistsByTitleAndNotID(ctx context.Context, title string, id int64) (bool, error) {
	args := m.Called(ctx, title, id)
	return args.Bool(0), args.Error(1)
}

func (m *ProductService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductService) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductService) CountByStatus(ctx context.Context, active bool) (int64, error) {
	args := m.Called(ctx, active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductService) Stats(ctx context.Context, lowStockThreshold int) (*models.ProductStats, error) {
	args := m.Called(ctx, lowStockThreshold)
	if v := args.Get(0); v != nil {
		return v.(*models.ProductStats), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductService) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	args := m.Called(ctx, product)
	return productOrNil(args), args.Error(1)
}

func (m *ProductService) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductService) Create(ctx context.Context, input *models.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, input)
	return productOrNil(args), args.Error(1)
}

func (m *ProductService) UpdateByID(ctx context.Context, id int64, input *models.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, id, input)
	return productOrNil(args), args.Error(1)
}
