package utils_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForm_JSON(t *testing.T) {
	t.Run("Success - Typed Values", func(t *testing.T) {
		// Arrange
		body := `{"title":"Pen","quantity":3,"price":"12.50","status":false,"categoryIds":[1,2],"images":null}`
		req := httptest.NewRequest(http.MethodPost, "/api/product", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		// Act
		form, err := utils.ParseForm(req, 0)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Pen", *form.String("title"))
		assert.Equal(t, 3, *form.Int("quantity"))
		assert.True(t, decimal.RequireFromString("12.5").Equal(*form.Decimal("price")))
		assert.False(t, *form.Bool("status"))
		assert.Equal(t, []int64{1, 2}, *form.Int64List("categoryIds"))
		assert.Nil(t, form.String("images"))
		assert.False(t, form.Has("images"))
		require.NoError(t, form.Err())
	})

	t.Run("Success - Empty Array Is Present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/user/1", strings.NewReader(`{"categoryIds":[]}`))
		req.Header.Set("Content-Type", "application/json")

		form, err := utils.ParseForm(req, 0)

		require.NoError(t, err)
		ids := form.Int64List("categoryIds")
		require.NotNil(t, ids)
		assert.Empty(t, *ids)
		assert.Nil(t, form.Int64List("missing"))
	})

	t.Run("Success - Empty Body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/category", nil)
		req.Header.Set("Content-Type", "application/json")

		form, err := utils.ParseForm(req, 0)

		require.NoError(t, err)
		assert.Nil(t, form.String("name"))
	})

	t.Run("Invalid Input - Object For Scalar Field", func(t *testing.T) {
		// Arrange
		body := `{"title":"Pen","price":{"amount":"12.50"}}`
		req := httptest.NewRequest(http.MethodPost, "/api/product", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		// Act
		form, err := utils.ParseForm(req, 0)

		// Assert
		require.Error(t, err)
		assert.Nil(t, form)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, "price", appErr.Field)
		assert.Equal(t, "Trường price không hợp lệ", appErr.Message)
	})

	t.Run("Invalid Input - Object Inside List", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(`{"categoryIds":[1,{"id":2}]}`))
		req.Header.Set("Content-Type", "application/json")

		// Act
		_, err := utils.ParseForm(req, 0)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "categoryIds", appErr.Field)
	})

	t.Run("Invalid Input - Array For Scalar Field", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodPost, "/api/category", strings.NewReader(`{"name":["Books","Pens"]}`))
		req.Header.Set("Content-Type", "application/json")

		// Act
		form, err := utils.ParseForm(req, 0)
		require.NoError(t, err)
		name := form.String("name")

		// Assert
		assert.Nil(t, name)

		appErr, ok := appErrors.IsAppError(form.Err())
		require.True(t, ok)
		assert.Equal(t, "name", appErr.Field)
		assert.Equal(t, "Trường name không hợp lệ", appErr.Message)
	})

	t.Run("Failure - Malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/category", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")

		_, err := utils.ParseForm(req, 0)

		require.Error(t, err)
		assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeBadRequest))
	})
}

func TestParseForm_URLEncoded(t *testing.T) {
	// Arrange
	req := httptest.NewRequest(http.MethodPost, "/users/save",
		strings.NewReader("fullname=An&categoryIds=1&categoryIds=3,4&phone=&status=on&status=false"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Act
	form, err := utils.ParseForm(req, 0)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "An", *form.String("fullname"))
	assert.Equal(t, []int64{1, 3, 4}, *form.Int64List("categoryIds"))
	assert.Equal(t, "", *form.String("phone"))
	assert.True(t, *form.Bool("status"), "a checked box wins over the hidden fallback")
}

func TestParseForm_Multipart(t *testing.T) {
	// Arrange
	var body bytes.Buffer

	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("name", "Books"))
	part, err := w.CreateFormFile("imageFile", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	_, err = w.CreateFormFile("empty", "")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/category", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	// Act
	form, err := utils.ParseForm(req, 1<<20)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Books", *form.String("name"))
	fh := form.File("imageFile")
	require.NotNil(t, fh)
	assert.Equal(t, "cover.png", fh.Filename)
	assert.Nil(t, form.File("empty"))
	assert.Nil(t, form.File("missing"))
}

func TestForm_ConversionErrors(t *testing.T) {
	form := utils.NewForm(map[string][]string{
		"quantity": {"many"},
		"price":    {"abc"},
		"userId":   {"  "},
	})

	assert.Nil(t, form.Int("quantity"))
	assert.Nil(t, form.Decimal("price"))
	assert.Nil(t, form.Int64("userId"), "blank counts as missing")

	err := form.Err()
	require.Error(t, err)

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "quantity", appErr.Field, "the first failure is kept")
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/category/12", nil)
	req.SetPathValue("id", "12")

	id, err := utils.PathID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	req.SetPathValue("id", "abc")
	_, err = utils.PathID(req, "id")
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
}

func TestPageableFromQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/categories?page=-2&size=500&sortBy=name&sortDir=DESC", nil)

	pageable := utils.PageableFromQuery(req, 10)

	assert.Equal(t, 0, pageable.Page)
	assert.Equal(t, models.MaxPageSize, pageable.Size)
	require.NotNil(t, pageable.Sort)
	assert.Equal(t, "name", pageable.Sort.Field)
	assert.Equal(t, models.Desc, pageable.Sort.Direction)

	req = httptest.NewRequest(http.MethodGet, "/categories?page=x", nil)
	pageable = utils.PageableFromQuery(req, 5)

	assert.Equal(t, 0, pageable.Page)
	assert.Equal(t, 5, pageable.Size)
	assert.Nil(t, pageable.Sort)
}

func TestQueryInt64Ptr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?categoryId=4&bad=x", nil)

	assert.Equal(t, int64(4), *utils.QueryInt64Ptr(req, "categoryId"))
	assert.Nil(t, utils.QueryInt64Ptr(req, "bad"))
	assert.Nil(t, utils.QueryInt64Ptr(req, "missing"))
}
