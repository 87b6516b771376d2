package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
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

func TestListUsers(t *testing.T) {
	mockUserService := new(mocks.UserService)
	userHandler := handlers.NewUserHandler(mockUserService, maxUploadBytes)

	pageable := models.NewPageable(0, 5)
	mockUserService.On("SearchByName", mock.Anything, "an", pageable).
		Return(models.NewPage([]*models.User{{ID: 1, Fullname: "An"}}, 1, pageable), nil).Once()

	rr := httptest.NewRecorder()
	userHandler.ListUsers().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/user?q=an&size=5", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	env := decodeEnvelope(t, rr)
	assert.Equal(t, "Lấy danh sách user thành công", env.Message)
	assert.Equal(t, 5, *env.PageSize)
	mockUserService.AssertExpectations(t)
}

func TestGetUser(t *testing.T) {
	mockUserService := new(mocks.UserService)
	userHandler := handlers.NewUserHandler(mockUserService, maxUploadBytes)

	t.Run("Success - Password Never Serialised", func(t *testing.T) {
		// Arrange
		mockUserService.On("FindByID", mock.Anything, int64(1)).
			Return(&models.User{ID: 1, Fullname: "An", Email: "an@example.com", Password: "$2a$10$hash"}, nil).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/user/1", nil)
		req.SetPathValue("id", "1")

		// Act
		userHandler.GetUser().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "$2a$10$hash")
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockUserService.On("FindByID", mock.Anything, int64(2)).
			Return(nil, appErrors.NotFoundError("Không tìm thấy user với ID: 2")).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/user/2", nil)
		req.SetPathValue("id", "2")

		userHandler.GetUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("Success - Urlencoded With Repeated Category IDs", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService, maxUploadBytes)

		fullname, email, password := "An Nguyen", "An@Example.com", "secret"
		expected := &models.UserInput{
			Fullname:    &fullname,
			Email:       &email,
			Password:    &password,
			CategoryIDs: &[]int64{1, 2},
		}

		mockUserService.On("Create", mock.Anything, expected).
			Return(&models.User{ID: 3, Fullname: fullname, Email: "an@example.com"}, nil).Once()

		form := url.Values{
			"fullname":    {fullname},
			"email":       {email},
			"password":    {password},
			"categoryIds": {"1", "2"},
		}

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodPost, "/api/user", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		// Act
		userHandler.CreateUser().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var user models.User
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Body, &user))
		assert.Equal(t, "an@example.com", user.Email)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Invalid Input - Duplicate Email", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService, maxUploadBytes)

		mockUserService.On("Create", mock.Anything, mock.Anything).
			Return(nil, appErrors.FieldError("email", "Email đã tồn tại")).Once()

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPost, "/api/user", map[string]any{
			"fullname": "An", "email": "an@example.com", "password": "x",
		})

		userHandler.CreateUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Email đã tồn tại", decodeEnvelope(t, rr).Message)
	})

	t.Run("Invalid Input - Category IDs Not Numbers", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService, maxUploadBytes)

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPost, "/api/user", map[string]any{"categoryIds": []any{"a"}})

		userHandler.CreateUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "categoryIds", decodeEnvelope(t, rr).Field)
		mockUserService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Success - Empty Category List Clears", func(t *testing.T) {
		// Arrange
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService, maxUploadBytes)

		mockUserService.On("FindByID", mock.Anything, int64(4)).Return(&models.User{ID: 4}, nil).Once()
		mockUserService.On("UpdateByID", mock.Anything, int64(4), &models.UserInput{CategoryIDs: &[]int64{}}).
			Return(&models.User{ID: 4, Categories: []models.Category{}}, nil).Once()

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPut, "/api/user/4", map[string]any{"categoryIds": []int64{}})
		req.SetPathValue("id", "4")

		// Act
		userHandler.UpdateUser().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Cập nhật user thành công", decodeEnvelope(t, rr).Message)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Success - Omitted Category List Untouched", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService, maxUploadBytes)

		phone := "0900000000"
		mockUserService.On("FindByID", mock.Anything, int64(4)).Return(&models.User{ID: 4}, nil).Once()
		mockUserService.On("UpdateByID", mock.Anything, int64(4), &models.UserInput{Phone: &phone}).
			Return(&models.User{ID: 4, Phone: phone}, nil).Once()

		rr := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPut, "/api/user/4", map[string]any{"phone": phone})
		req.SetPathValue("id", "4")

		userHandler.UpdateUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockUserService.AssertExpectations(t)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Success - User Deleted", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService, maxUploadBytes)

		mockUserService.On("FindByID", mock.Anything, int64(8)).Return(&models.User{ID: 8}, nil).Once()
		mockUserService.On("DeleteByID", mock.Anything, int64(8)).Return(nil).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodDelete, "/api/user/8", nil)
		req.SetPathValue("id", "8")

		userHandler.DeleteUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Xóa user thành công", decodeEnvelope(t, rr).Message)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService, maxUploadBytes)

		mockUserService.On("FindByID", mock.Anything, int64(8)).Return(&models.User{ID: 8}, nil).Once()
		mockUserService.On("DeleteByID", mock.Anything, int64(8)).Return(appErrors.DatabaseError("Không thể xóa user")).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodDelete, "/api/user/8", nil)
		req.SetPathValue("id", "8")

		userHandler.DeleteUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Lỗi server: Không thể xóa user", decodeEnvelope(t, rr).Message)
	})
}
