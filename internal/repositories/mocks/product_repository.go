package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func productList(args mock.Arguments) []*models.Product {
	if v := args.Get(0); v != nil {
		return v.([]*models.Product)
	}

	return nil
}

func (m *ProductRepository) FindAll(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return productList(args), args.Error(1)
}

func (m *ProductRepository) FindAllPaged(ctx context.Context, pageable models.Pageable) ([]*models.Product, int64, error) {
	args := m.Called(ctx, pageable)
	return productList(args), args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepository) FindAllOrderByPriceAsc(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return productList(args), args.Error(1)
}

func (m *ProductRepository) FindByCategoryID(ctx context.Context, categoryID int64) ([]*models.Product, error) {
	args := m.Called(ctx, categoryID)
	return productList(args), args.Error(1)
}

func (m *ProductRepository) FindByCategoryIDPaged(ctx context.Context, categoryID int64, pageable models.Pageable) ([]*models.Product, int64, error) {
	args := m.Called(ctx, categoryID, pageable)
	return productList(args), args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepository) FindByUserID(ctx context.Context, userID int64) ([]*models.Product, error) {
	args := m.Called(ctx, userID)
	return productList(args), args.Error(1)
}

func (m *ProductRepository) FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]*models.Product, error) {
	args := m.Called(ctx, minPrice, maxPrice)
	return productList(args), args.Error(1)
}

func (m *ProductRepository) FindOutOfStock(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return productList(args), args.Error(1)
}

func (m *ProductRepository) FindLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	args := m.Called(ctx, threshold)
	return productList(args), args.Error(1)
}

func (m *ProductRepository) FindDiscounted(ctx context.Context, pageable models.Pageable) ([]*models.Product, int64, error) {
	args := m.Called(ctx, pageable)
	return productList(args), args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepository) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) ([]*models.Product, int64, error) {
	args := m.Called(ctx, keyword, pageable)
	return productList(args), args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepository) SearchByNameAndCategory(ctx context.Context, keyword string, categoryID int64, pageable models.Pageable) ([]*models.Product, int64, error) {
	args := m.Called(ctx, keyword, categoryID, pageable)
	return productList(args), args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Product), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	args := m.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepository) ExistsByTitleAndNotID(ctx context.Context, title string, id int64) (bool, error) {
	args := m.Called(ctx, title, id)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepository) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepository) CountByStatus(ctx context.Context, active bool) (int64, error) {
	args := m.Called(ctx, active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepository) Stats(ctx context.Context, lowStockThreshold int) (*models.ProductStats, error) {
	args := m.Called(ctx, lowStockThreshold)
	if v := args.Get(0); v != nil {
		return v.(*models.ProductStats), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
