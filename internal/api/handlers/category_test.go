package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListCategories(t *testing.T) {
	mockCategoryService := new(mocks.CategoryService)
	store, _ := newMemStorage(t)
	categoryHandler := handlers.NewCategoryHandler(mockCategoryService, store, maxUploadBytes)

	t.Run("Success - Paged Search", func(t *testing.T) {
		// Arrange
		pageable := models.NewPageable(1, 2)
		page := models.NewPage([]*models.Category{{ID: 3, Name: "Tools"}}, 3, pageable)

		mockCategoryService.On("SearchByName", mock.Anything, "too", pageable).Return(page, nil).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/category?q=too&page=1&size=2", nil)

		// Act
		categoryHandler.ListCategories().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		env := decodeEnvelope(t, rr)
		assert.Equal(t, "success", env.Status)
		assert.Equal(t, "Lấy danh sách category thành công", env.Message)
		require.NotNil(t, env.TotalElements)
		assert.Equal(t, int64(3), *env.TotalElements)
		assert.Equal(t, 2, *env.TotalPages)
		assert.Equal(t, 1, *env.CurrentPage)
		assert.Equal(t, 2, *env.PageSize)
		mockCategoryService.AssertExpectations(t)
	})

	t.Run("Invalid Input - Unknown Sort Field", func(t *testing.T) {
		// Arrange
		pageable := models.NewPageable(0, 10).WithSort("price", models.Asc)

		mockCategoryService.On("SearchByName", mock.Anything, "", pageable).
			Return(nil, appErrors.FieldError("sortBy", "Trường sắp xếp không hợp lệ: price")).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/category?sortBy=price", nil)

		// Act
		categoryHandler.ListCategories().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "sortBy", decodeEnvelope(t, rr).Field)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		mockCategoryService.On("SearchByName", mock.Anything, "", models.NewPageable(0, 10)).
			Return(nil, appErrors.DatabaseError("Không thể tải danh sách category")).Once()

		rr := httptest.NewRecorder()
		categoryHandler.ListCategories().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/category", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		env := decodeEnvelope(t, rr)
		assert.Equal(t, "error", env.Status)
		assert.Equal(t, "Lỗi server: Không thể tải danh sách category", env.Message)
	})
}

func TestGetCategory(t *testing.T) {
	mockCategoryService := new(mocks.CategoryService)
	store, _ := newMemStorage(t)
	categoryHandler := handlers.NewCategoryHandler(mockCategoryService, store, maxUploadBytes)

	t.Run("Success - Category Found", func(t *testing.T) {
		// Arrange
		mockCategoryService.On("FindByID", mock.Anything, int64(7)).Return(&models.Category{ID: 7, Name: "Tools"}, nil).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/category/7", nil)
		req.SetPathValue("id", "7")

		// Act
		categoryHandler.GetCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var category models.Category
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Body, &category))
		assert.Equal(t, "Tools", category.Name)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockCategoryService.On("FindByID", mock.Anything, int64(8)).
			Return(nil, appErrors.NotFoundError("Không tìm thấy category với ID: 8")).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/category/8", nil)
		req.SetPathValue("id", "8")

		categoryHandler.GetCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "not_found", decodeEnvelope(t, rr).Status)
	})

	t.Run("Invalid Input - Non Numeric ID", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/category/abc", nil)
		req.SetPathValue("id", "abc")

		categoryHandler.GetCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "ID không hợp lệ: abc", decodeEnvelope(t, rr).Message)
		mockCategoryService.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestCreateCategory(t *testing.T) {
	t.Run("Success - JSON Body", func(t *testing.T) {
		// Arrange
		mockCategoryService := new(mocks.CategoryService)
		store, _ := newMemStorage(t)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService, store, maxUploadBytes)

		name := "Tools"
		expected := &models.CategoryInput{Name: &name}

		mockCategoryService.On("Create", mock.Anything, expected).Return(&models.Category{ID: 1, Name: "Tools"}, nil).Once()

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPost, "/api/category", map[string]any{"name": "Tools"})

		// Act
		categoryHandler.CreateCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		env := decodeEnvelope(t, rr)
		assert.Equal(t, "created", env.Status)
		assert.Equal(t, "Thêm category thành công", env.Message)

		var category models.Category
		require.NoError(t, json.Unmarshal(env.Body, &category))
		assert.Equal(t, int64(1), category.ID)
		mockCategoryService.AssertExpectations(t)
	})

	t.Run("Success - Multipart Image Stored", func(t *testing.T) {
		// Arrange
		mockCategoryService := new(mocks.CategoryService)
		store, _ := newMemStorage(t)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService, store, maxUploadBytes)

		var captured *models.CategoryInput

		mockCategoryService.On("Create", mock.Anything, mock.AnythingOfType("*models.CategoryInput")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*models.CategoryInput) }).
			Return(&models.Category{ID: 2, Name: "Garden"}, nil).Once()

		rr := httptest.NewRecorder()
		req := multipartRequest(t, http.MethodPost, "/api/category",
			map[string]string{"name": "Garden", "sortOrder": "4"},
			map[string]string{"imageFile": "garden.png"})

		// Act
		categoryHandler.CreateCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, captured)
		require.NotNil(t, captured.Images)
		assert.Regexp(t, `^/uploads/category_[0-9a-f-]{36}\.png$`, *captured.Images)
		assert.True(t, store.Exists(strings.TrimPrefix(*captured.Images, "/uploads/")))
		assert.Equal(t, 4, *captured.SortOrder)
	})

	t.Run("Invalid Input - Duplicate Name", func(t *testing.T) {
		// Arrange
		mockCategoryService := new(mocks.CategoryService)
		store, _ := newMemStorage(t)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService, store, maxUploadBytes)

		mockCategoryService.On("Create", mock.Anything, mock.Anything).
			Return(nil, appErrors.FieldError("name", "Tên category đã tồn tại")).Once()

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPost, "/api/category", map[string]any{"name": "tools"})

		// Act
		categoryHandler.CreateCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		env := decodeEnvelope(t, rr)
		assert.Equal(t, "bad_request", env.Status)
		assert.Equal(t, "Tên category đã tồn tại", env.Message)
		assert.Equal(t, "name", env.Field)
	})

	t.Run("Invalid Input - Bad JSON", func(t *testing.T) {
		mockCategoryService := new(mocks.CategoryService)
		store, _ := newMemStorage(t)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService, store, maxUploadBytes)

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodPost, "/api/category", strings.NewReader("{invalid json"))
		req.Header.Set("Content-Type", "application/json")

		categoryHandler.CreateCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCategoryService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Input - Sort Order Not A Number", func(t *testing.T) {
		mockCategoryService := new(mocks.CategoryService)
		store, _ := newMemStorage(t)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService, store, maxUploadBytes)

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPost, "/api/category", map[string]any{"name": "Tools", "sortOrder": "first"})

		categoryHandler.CreateCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "sortOrder", decodeEnvelope(t, rr).Field)
		mockCategoryService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("Success - Category Updated", func(t *testing.T) {
		// Arrange
		mockCategoryService := new(mocks.CategoryService)
		store, _ := newMemStorage(t)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService, store, maxUploadBytes)

		name := "Hand Tools"
		mockCategoryService.On("FindByID", mock.Anything, int64(3)).Return(&models.Category{ID: 3, Name: "Tools"}, nil).Once()
		mockCategoryService.On("UpdateByID", mock.Anything, int64(3), &models.CategoryInput{Name: &name}).
			Return(&models.Category{ID: 3, Name: name}, nil).Once()

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPut, "/api/category/3", map[string]any{"name": name})
		req.SetPathValue("id", "3")

		// Act
		categoryHandler.UpdateCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Cập nhật category thành công", decodeEnvelope(t, rr).Message)
		mockCategoryService.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockCategoryService := new(mocks.CategoryService)
		store, _ := newMemStorage(t)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService, store, maxUploadBytes)

		mockCategoryService.On("FindByID", mock.Anything, int64(99)).
			Return(nil, appErrors.NotFoundError("Không tìm thấy category với ID: 99")).Once()

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPut, "/api/category/99", map[string]any{"name": "X1"})
		req.SetPathValue("id", "99")

		categoryHandler.UpdateCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockCategoryService.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("Success - Category Deleted", func(t *testing.T) {
		// Arrange
		mockCategoryService := new(mocks.CategoryService)
		store, _ := newMemStorage(t)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService, store, maxUploadBytes)

		mockCategoryService.On("FindByID", mock.Anything, int64(5)).Return(&models.Category{ID: 5}, nil).Once()
		mockCategoryService.On("DeleteByID", mock.Anything, int64(5)).Return(nil).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodDelete, "/api/category/5", nil)
		req.SetPathValue("id", "5")

		// Act
		categoryHandler.DeleteCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Xóa category thành công", decodeEnvelope(t, rr).Message)
		mockCategoryService.AssertExpectations(t)
	})

	t.Run("Failure - Absent ID Is 404", func(t *testing.T) {
		mockCategoryService := new(mocks.CategoryService)
		store, _ := newMemStorage(t)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService, store, maxUploadBytes)

		mockCategoryService.On("FindByID", mock.Anything, int64(5)).
			Return(nil, appErrors.NotFoundError("Không tìm thấy category với ID: 5")).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodDelete, "/api/category/5", nil)
		req.SetPathValue("id", "5")

		categoryHandler.DeleteCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockCategoryService.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})
}
