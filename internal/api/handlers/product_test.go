package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/services/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductHandler(t *testing.T) (*handlers.ProductHandler, *mocks.ProductService) {
	t.Helper()

	mockProductService := new(mocks.ProductService)
	store, _ := newMemStorage(t)

	return handlers.NewProductHandler(mockProductService, store, maxUploadBytes, 5), mockProductService
}

func TestListProducts(t *testing.T) {
	t.Run("Success - Keyword And Category", func(t *testing.T) {
		// Arrange
		productHandler, mockProductService := newProductHandler(t)
		categoryID := int64(4)
		pageable := models.NewPageable(0, 10)
		page := models.NewPage([]*models.Product{{ID: 1, Title: "Hammer"}}, 1, pageable)

		mockProductService.On("SearchByNameAndCategory", mock.Anything, "ham", &categoryID, pageable).Return(page, nil).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/product?q=ham&categoryId=4", nil)

		// Act
		productHandler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		env := decodeEnvelope(t, rr)
		assert.Equal(t, "Lấy danh sách sản phẩm thành công", env.Message)
		assert.Equal(t, int64(1), *env.TotalElements)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Success - No Filters", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)
		pageable := models.NewPageable(0, 10)

		mockProductService.On("SearchByNameAndCategory", mock.Anything, "", (*int64)(nil), pageable).
			Return(models.NewPage([]*models.Product{}, 0, pageable), nil).Once()

		rr := httptest.NewRecorder()
		productHandler.ListProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/product", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockProductService.AssertExpectations(t)
	})
}

func TestGetProduct(t *testing.T) {
	productHandler, mockProductService := newProductHandler(t)

	t.Run("Success - Price As Number", func(t *testing.T) {
		// Arrange
		mockProductService.On("FindByID", mock.Anything, int64(2)).
			Return(&models.Product{ID: 2, Title: "Saw", Price: decimal.RequireFromString("12.50")}, nil).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/product/2", nil)
		req.SetPathValue("id", "2")

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"price":12.5`)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockProductService.On("FindByID", mock.Anything, int64(3)).
			Return(nil, appErrors.NotFoundError("Không tìm thấy sản phẩm với ID: 3")).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/product/3", nil)
		req.SetPathValue("id", "3")

		productHandler.GetProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Không tìm thấy sản phẩm với ID: 3", decodeEnvelope(t, rr).Message)
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("Success - Multipart With Image", func(t *testing.T) {
		// Arrange
		productHandler, mockProductService := newProductHandler(t)

		var captured *models.ProductInput

		mockProductService.On("Create", mock.Anything, mock.AnythingOfType("*models.ProductInput")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*models.ProductInput) }).
			Return(&models.Product{ID: 10, Title: "Hammer"}, nil).Once()

		rr := httptest.NewRecorder()
		req := multipartRequest(t, http.MethodPost, "/api/product", map[string]string{
			"title":      "Hammer",
			"quantity":   "3",
			"price":      "19.99",
			"userId":     "1",
			"categoryId": "2",
		}, map[string]string{"images": "hammer.png"})

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "Thêm sản phẩm thành công", decodeEnvelope(t, rr).Message)

		require.NotNil(t, captured)
		assert.Equal(t, "Hammer", *captured.Title)
		assert.Equal(t, 3, *captured.Quantity)
		assert.True(t, decimal.RequireFromString("19.99").Equal(*captured.Price))
		assert.Equal(t, int64(1), *captured.UserID)
		assert.Equal(t, int64(2), *captured.CategoryID)
		require.NotNil(t, captured.Images)
		assert.Regexp(t, `^/uploads/product_[0-9a-f-]{36}\.png$`, *captured.Images)
		assert.Nil(t, captured.Status)
	})

	t.Run("Success - JSON Image URL", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		var captured *models.ProductInput

		mockProductService.On("Create", mock.Anything, mock.AnythingOfType("*models.ProductInput")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*models.ProductInput) }).
			Return(&models.Product{ID: 11}, nil).Once()

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPost, "/api/product", map[string]any{
			"title": "Saw", "quantity": 1, "price": 5, "userId": 1, "categoryId": 2,
			"status": false, "images": "https://cdn.example.com/saw.png",
		})

		productHandler.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "https://cdn.example.com/saw.png", *captured.Images)
		assert.False(t, *captured.Status)
	})

	t.Run("Invalid Input - Price Not A Number", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPost, "/api/product", map[string]any{"title": "Saw", "price": "cheap"})

		productHandler.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "price", decodeEnvelope(t, rr).Field)
		mockProductService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Input - Business Rule", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		mockProductService.On("Create", mock.Anything, mock.Anything).
			Return(nil, appErrors.FieldError("price", "Giá sản phẩm phải lớn hơn 0")).Once()

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPost, "/api/product", map[string]any{"title": "Saw", "price": 0})

		productHandler.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		env := decodeEnvelope(t, rr)
		assert.Equal(t, "bad_request", env.Status)
		assert.Equal(t, "price", env.Field)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Success - Product Updated", func(t *testing.T) {
		// Arrange
		productHandler, mockProductService := newProductHandler(t)
		quantity := 0

		mockProductService.On("FindByID", mock.Anything, int64(4)).Return(&models.Product{ID: 4}, nil).Once()
		mockProductService.On("UpdateByID", mock.Anything, int64(4), &models.ProductInput{Quantity: &quantity}).
			Return(&models.Product{ID: 4}, nil).Once()

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPut, "/api/product/4", map[string]any{"quantity": 0})
		req.SetPathValue("id", "4")

		// Act
		productHandler.UpdateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Cập nhật sản phẩm thành công", decodeEnvelope(t, rr).Message)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		mockProductService.On("FindByID", mock.Anything, int64(4)).
			Return(nil, appErrors.NotFoundError("Không tìm thấy sản phẩm với ID: 4")).Once()

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPut, "/api/product/4", map[string]any{"quantity": 1})
		req.SetPathValue("id", "4")

		productHandler.UpdateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockProductService.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteProduct(t *testing.T) {
	productHandler, mockProductService := newProductHandler(t)

	mockProductService.On("FindByID", mock.Anything, int64(6)).Return(&models.Product{ID: 6}, nil).Once()
	mockProductService.On("DeleteByID", mock.Anything, int64(6)).Return(nil).Once()

	rr := httptest.NewRecorder()
	req := newTestRequest(http.MethodDelete, "/api/product/6", nil)
	req.SetPathValue("id", "6")

	productHandler.DeleteProduct().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Xóa sản phẩm thành công", decodeEnvelope(t, rr).Message)
	mockProductService.AssertExpectations(t)
}

func TestProductListings(t *testing.T) {
	t.Run("Sorted By Price", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		mockProductService.On("FindAllOrderByPriceAsc", mock.Anything).
			Return([]*models.Product{{ID: 1}, {ID: 2}}, nil).Once()

		rr := httptest.NewRecorder()
		productHandler.ListProductsSortedByPrice().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/product/sorted-by-price", nil))

		assert.Equal(t, http.StatusOK, rr.Code)

		var products []models.Product
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Body, &products))
		assert.Len(t, products, 2)
	})

	t.Run("By Category", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		mockProductService.On("FindByCategoryID", mock.Anything, int64(9)).Return([]*models.Product{}, nil).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/product/category/9", nil)
		req.SetPathValue("categoryId", "9")

		productHandler.ListProductsByCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Lấy danh sách sản phẩm của category thành công", decodeEnvelope(t, rr).Message)
	})

	t.Run("By User", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		mockProductService.On("FindByUserID", mock.Anything, int64(2)).Return([]*models.Product{{ID: 3}}, nil).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/product/user/2", nil)
		req.SetPathValue("userId", "2")

		productHandler.ListProductsByUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Price Range", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		mockProductService.On("FindByPriceRange", mock.Anything,
			mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(10)) }),
			mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("20.5")) }),
		).Return([]*models.Product{}, nil).Once()

		rr := httptest.NewRecorder()
		productHandler.ListProductsByPriceRange().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/product/price-range?minPrice=10&maxPrice=20.5", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Price Range - Missing Bound", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		rr := httptest.NewRecorder()
		productHandler.ListProductsByPriceRange().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/product/price-range?minPrice=10", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "maxPrice", decodeEnvelope(t, rr).Field)
		mockProductService.AssertNotCalled(t, "FindByPriceRange", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Low Stock - Configured Threshold", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		mockProductService.On("FindLowStock", mock.Anything, 5).Return([]*models.Product{}, nil).Once()

		rr := httptest.NewRecorder()
		productHandler.ListLowStockProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/product/low-stock", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Low Stock - Query Threshold", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		mockProductService.On("FindLowStock", mock.Anything, 2).Return([]*models.Product{}, nil).Once()

		rr := httptest.NewRecorder()
		productHandler.ListLowStockProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/product/low-stock?threshold=2", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Out Of Stock", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)

		mockProductService.On("FindOutOfStock", mock.Anything).Return(nil, appErrors.DatabaseError("Không thể tải danh sách sản phẩm")).Once()

		rr := httptest.NewRecorder()
		productHandler.ListOutOfStockProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/product/out-of-stock", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("Discounted", func(t *testing.T) {
		productHandler, mockProductService := newProductHandler(t)
		pageable := models.NewPageable(0, 10)

		mockProductService.On("FindDiscounted", mock.Anything, pageable).
			Return(models.NewPage([]*models.Product{{ID: 1, Discount: 10}}, 1, pageable), nil).Once()

		rr := httptest.NewRecorder()
		productHandler.ListDiscountedProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/product/discounted", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, *decodeEnvelope(t, rr).TotalPages)
	})
}
