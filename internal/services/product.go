package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-admin/internal/repositories"
	"github.com/aaravmahajanofficial/catalog-admin/internal/validation"
	"github.com/shopspring/decimal"
)

const duplicateProductTitle = "Tên sản phẩm đã tồn tại"

// UploadRemover deletes a stored upload given the URL saved on the entity.
// URLs outside the upload area are ignored.
type UploadRemover interface {
	DeleteByURL(url string) error
}

type ProductService interface {
	FindAll(ctx context.Context) ([]*models.Product, error)
	FindAllPaged(ctx context.Context, pageable models.Pageable) (*models.Page[*models.Product], error)
	FindAllOrderByPriceAsc(ctx context.Context) ([]*models.Product, error)
	FindByCategoryID(ctx context.Context, categoryID int64) ([]*models.Product, error)
	FindByCategoryIDPaged(ctx context.Context, categoryID int64, pageable models.Pageable) (*models.Page[*models.Product], error)
	FindByUserID(ctx context.Context, userID int64) ([]*models.Product, error)
	FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]*models.Product, error)
	FindOutOfStock(ctx context.Context) ([]*models.Product, error)
	FindLowStock(ctx context.Context, threshold int) ([]*models.Product, error)
	FindDiscounted(ctx context.Context, pageable models.Pageable) (*models.Page[*models.Product], error)
	SearchByName(ctx context.Context, keyword string, pageable models.Pageable) (*models.Page[*models.Product], error)
	SearchByNameAndCategory(ctx context.Context, keyword string, categoryID *int64, pageable models.Pageable) (*models.Page[*models.Product], error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	ExistsByTitleAndNotID(ctx context.Context, title string, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByCategoryID(ctx context.Context, categoryID int64) (int64, error)
	CountByStatus(ctx context.Context, active bool) (int64, error)
	Stats(ctx context.Context, lowStockThreshold int) (*models.ProductStats, error)
	Save(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteByID(ctx context.Context, id int64) error
	Create(ctx context.Context, input *models.ProductInput) (*models.Product, error)
	UpdateByID(ctx context.Context, id int64, input *models.ProductInput) (*models.Product, error)
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	uploads      UploadRemover
}

func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, userRepo repository.UserRepository, uploads UploadRemover) ProductService {
	return &productService{repo: repo, categoryRepo: categoryRepo, userRepo: userRepo, uploads: uploads}
}

func productNotFound(id int64) string {
	return fmt.Sprintf("Không tìm thấy sản phẩm với ID: %d", id)
}

func (s *productService) FindAll(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, queryError(err, "Failed to fetch products")
	}

	return products, nil
}

func (s *productService) FindAllPaged(ctx context.Context, pageable models.Pageable) (*models.Page[*models.Product], error) {
	products, total, err := s.repo.FindAllPaged(ctx, pageable)
	if err != nil {
		return nil, queryError(err, "Failed to fetch products")
	}

	return models.NewPage(products, total, pageable), nil
}

func (s *productService) FindAllOrderByPriceAsc(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.FindAllOrderByPriceAsc(ctx)
	if err != nil {
		return nil, queryError(err, "Failed to fetch products")
	}

	return products, nil
}

func (s *productService) FindByCategoryID(ctx context.Context, categoryID int64) ([]*models.Product, error) {
	products, err := s.repo.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, queryError(err, "Failed to fetch products by category")
	}

	return products, nil
}

func (s *productService) FindByCategoryIDPaged(ctx context.Context, categoryID int64, pageable models.Pageable) (*models.Page[*models.Product], error) {
	products, total, err := s.repo.FindByCategoryIDPaged(ctx, categoryID, pageable)
	if err != nil {
		return nil, queryError(err, "Failed to fetch products by category")
	}

	return models.NewPage(products, total, pageable), nil
}

func (s *productService) FindByUserID(ctx context.Context, userID int64) ([]*models.Product, error) {
	products, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, queryError(err, "Failed to fetch products by user")
	}

	return products, nil
}

func (s *productService) FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]*models.Product, error) {
	if minPrice.GreaterThan(maxPrice) {
		return nil, appErrors.FieldError("minPrice", "Giá tối thiểu không được lớn hơn giá tối đa")
	}

	products, err := s.repo.FindByPriceRange(ctx, minPrice, maxPrice)
	if err != nil {
		return nil, queryError(err, "Failed to fetch products by price range")
	}

	return products, nil
}

func (s *productService) FindOutOfStock(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.FindOutOfStock(ctx)
	if err != nil {
		return nil, queryError(err, "Failed to fetch out of stock products")
	}

	return products, nil
}

func (s *productService) FindLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	products, err := s.repo.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, queryError(err, "Failed to fetch low stock products")
	}

	return products, nil
}

func (s *productService) FindDiscounted(ctx context.Context, pageable models.Pageable) (*models.Page[*models.Product], error) {
	products, total, err := s.repo.FindDiscounted(ctx, pageable)
	if err != nil {
		return nil, queryError(err, "Failed to fetch discounted products")
	}

	return models.NewPage(products, total, pageable), nil
}

// SearchByName falls back to the unfiltered listing for a blank keyword.
func (s *productService) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) (*models.Page[*models.Product], error) {
	if strings.TrimSpace(keyword) == "" {
		return s.FindAllPaged(ctx, pageable)
	}

	products, total, err := s.repo.SearchByName(ctx, keyword, pageable)
	if err != nil {
		return nil, queryError(err, "Failed to search products")
	}

	return models.NewPage(products, total, pageable), nil
}

// SearchByNameAndCategory drops whichever filter is absent.
func (s *productService) SearchByNameAndCategory(ctx context.Context, keyword string, categoryID *int64, pageable models.Pageable) (*models.Page[*models.Product], error) {
	if categoryID == nil {
		return s.SearchByName(ctx, keyword, pageable)
	}

	if strings.TrimSpace(keyword) == "" {
		return s.FindByCategoryIDPaged(ctx, *categoryID, pageable)
	}

	products, total, err := s.repo.SearchByNameAndCategory(ctx, keyword, *categoryID, pageable)
	if err != nil {
		return nil, queryError(err, "Failed to search products")
	}

	return models.NewPage(products, total, pageable), nil
}

func (s *productService) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, productNotFound(id), "Failed to fetch product")
	}

	return product, nil
}

func (s *productService) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, queryError(err, "Failed to check product")
	}

	return exists, nil
}

func (s *productService) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	exists, err := s.repo.ExistsByTitle(ctx, strings.TrimSpace(title))
	if err != nil {
		return false, queryError(err, "Failed to check product title")
	}

	return exists, nil
}

func (s *productService) ExistsByTitleAndNotID(ctx context.Context, title string, id int64) (bool, error) {
	exists, err := s.repo.ExistsByTitleAndNotID(ctx, strings.TrimSpace(title), id)
	if err != nil {
		return false, queryError(err, "Failed to check product title")
	}

	return exists, nil
}

func (s *productService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, queryError(err, "Failed to count products")
	}

	return total, nil
}

func (s *productService) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	total, err := s.repo.CountByCategoryID(ctx, categoryID)
	if err != nil {
		return 0, queryError(err, "Failed to count products")
	}

	return total, nil
}

func (s *productService) CountByStatus(ctx context.Context, active bool) (int64, error) {
	total, err := s.repo.CountByStatus(ctx, active)
	if err != nil {
		return 0, queryError(err, "Failed to count products")
	}

	return total, nil
}

func (s *productService) Stats(ctx context.Context, lowStockThreshold int) (*models.ProductStats, error) {
	stats, err := s.repo.Stats(ctx, lowStockThreshold)
	if err != nil {
		return nil, queryError(err, "Failed to compute product statistics")
	}

	return stats, nil
}

// Save persists without the business checks of Create and UpdateByID.
func (s *productService) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	var err error

	if product.ID == 0 {
		err = s.repo.CreateProduct(ctx, product)
	} else {
		err = s.repo.UpdateProduct(ctx, product)
	}

	if err != nil {
		return nil, writeError(err, "title", duplicateProductTitle, "Failed to save product")
	}

	return product, nil
}

// DeleteByID is silent when the id is absent and drops the product's upload.
func (s *productService) DeleteByID(ctx context.Context, id int64) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}

		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.removeUpload(ctx, product.Images)

	return nil
}

func (s *productService) removeUpload(ctx context.Context, url string) {
	if s.uploads == nil || url == "" {
		return
	}

	if err := s.uploads.DeleteByURL(url); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to remove stored upload", slog.String("url", url), slog.Any("error", err))
	}
}

func (s *productService) Create(ctx context.Context, input *models.ProductInput) (*models.Product, error) {
	if input == nil {
		input = &models.ProductInput{}
	}

	if input.Price == nil {
		return nil, appErrors.FieldError("price", "Giá không được để trống")
	}

	if input.Quantity == nil {
		return nil, appErrors.FieldError("quantity", "Số lượng không được để trống")
	}

	product := &models.Product{Status: true}
	applyProductInput(product, input)

	if err := s.validate(ctx, product); err != nil {
		return nil, err
	}

	exists, err := s.ExistsByTitle(ctx, product.Title)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, appErrors.FieldError("title", duplicateProductTitle)
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, writeError(err, "title", duplicateProductTitle, "Failed to create product")
	}

	return s.reload(ctx, product)
}

func (s *productService) UpdateByID(ctx context.Context, id int64, input *models.ProductInput) (*models.Product, error) {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousImages := current.Images

	if input != nil {
		applyProductInput(current, input)
	}

	if err := s.validate(ctx, current); err != nil {
		return nil, err
	}

	exists, err := s.ExistsByTitleAndNotID(ctx, current.Title, id)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, appErrors.FieldError("title", duplicateProductTitle)
	}

	if err := s.repo.UpdateProduct(ctx, current); err != nil {
		return nil, writeError(err, "title", duplicateProductTitle, "Failed to update product")
	}

	if previousImages != current.Images {
		s.removeUpload(ctx, previousImages)
	}

	return s.reload(ctx, current)
}

// priceCeiling is the first value that does not fit NUMERIC(10,2).
var priceCeiling = decimal.New(1, 8)

// validate runs the field rules and then checks that the referenced rows exist.
func (s *productService) validate(ctx context.Context, product *models.Product) error {
	if err := validation.Struct(product); err != nil {
		return err
	}

	if !product.Price.IsPositive() {
		return appErrors.FieldError("price", "Giá sản phẩm phải > 0")
	}

	if product.Price.GreaterThanOrEqual(priceCeiling) {
		return appErrors.FieldError("price", "Giá sản phẩm phải < 100.000.000")
	}

	categoryExists, err := s.categoryRepo.ExistsByID(ctx, *product.CategoryID)
	if err != nil {
		return queryError(err, "Failed to check category")
	}

	if !categoryExists {
		return appErrors.FieldError("categoryId", "Danh mục không tồn tại")
	}

	userExists, err := s.userRepo.ExistsByID(ctx, product.UserID)
	if err != nil {
		return queryError(err, "Failed to check user")
	}

	if !userExists {
		return appErrors.FieldError("userId", "Người tạo không tồn tại")
	}

	return nil
}

// reload returns the stored row so the user and category names are filled in.
func (s *productService) reload(ctx context.Context, product *models.Product) (*models.Product, error) {
	stored, err := s.repo.FindByID(ctx, product.ID)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to reload saved product", slog.Int64("productId", product.ID), slog.Any("error", err))
		return product, nil
	}

	return stored, nil
}

func applyProductInput(product *models.Product, input *models.ProductInput) {
	if input.Title != nil {
		product.Title = validation.Sanitize(*input.Title)
	}

	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}

	if input.Description != nil {
		product.Description = validation.Sanitize(*input.Description)
	}

	if input.Price != nil {
		product.Price = input.Price.Round(2)
	}

	if input.Discount != nil {
		product.Discount = *input.Discount
	}

	if input.Status != nil {
		product.Status = *input.Status
	}

	if input.Images != nil {
		product.Images = strings.TrimSpace(*input.Images)
	}

	if input.UserID != nil {
		product.UserID = *input.UserID
	}

	if input.CategoryID != nil {
		id := *input.CategoryID
		product.CategoryID = &id
	}
}
