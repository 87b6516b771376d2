package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	service "github.com/aaravmahajanofficial/catalog-admin/internal/services"
	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils/response"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	storage         storage.Storage
	maxUploadBytes  int64
}

func NewCategoryHandler(categoryService service.CategoryService, store storage.Storage, maxUploadBytes int64) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, storage: store, maxUploadBytes: maxUploadBytes}
}

// ListCategories godoc
//
//	@Summary		List categories
//	@Description	Returns a page of categories, optionally filtered by a case-insensitive name match.
//	@Tags			Categories
//	@Produce		json
//	@Param			q		query		string	false	"Search keyword"
//	@Param			page	query		int		false	"Page number (0-based)"	default(0)
//	@Param			size	query		int		false	"Page size"				default(10)
//	@Success		200		{object}	response.APIResponse{body=models.Page[models.Category]}
//	@Failure		400		{object}	response.APIResponse	"Unknown sort field"
//	@Failure		500		{object}	response.APIResponse
//	@Router			/api/category [get]
func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		pageable := utils.PageableFromQuery(r, models.DefaultPageSize)

		page, err := h.categoryService.SearchByName(r.Context(), r.URL.Query().Get("q"), pageable)
		if err != nil {
			logFailure(logger, "Failed to list categories", err)
			response.Error(w, err)
			return
		}

		response.Paged(w, "Lấy danh sách category thành công", page)
	}
}

// GetCategory godoc
//
//	@Summary	Get a category by ID
//	@Tags		Categories
//	@Produce	json
//	@Param		id	path		int	true	"Category ID"
//	@Success	200	{object}	response.APIResponse{body=models.Category}
//	@Failure	400	{object}	response.APIResponse	"Invalid ID"
//	@Failure	404	{object}	response.APIResponse	"Category not found"
//	@Router		/api/category/{id} [get]
func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		category, err := h.categoryService.FindByID(r.Context(), id)
		if err != nil {
			logFailure(logger, "Failed to get category", err)
			response.Error(w, err)
			return
		}

		response.Success(w, "Lấy thông tin category thành công", category)
	}
}

// CreateCategory godoc
//
//	@Summary		Create a category
//	@Description	Accepts JSON, urlencoded or multipart bodies. A multipart imageFile is stored and its URL saved as images.
//	@Tags			Categories
//	@Accept			json,x-www-form-urlencoded,mpfd
//	@Produce		json
//	@Param			name		formData	string	true	"Category name"
//	@Param			images		formData	string	false	"Image URL"
//	@Param			sortOrder	formData	int		false	"Sort order"
//	@Param			imageFile	formData	file	false	"Image upload"
//	@Success		201			{object}	response.APIResponse{body=models.Category}
//	@Failure		400			{object}	response.APIResponse	"Validation error or duplicate name"
//	@Failure		500			{object}	response.APIResponse
//	@Router			/api/category [post]
func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		input, err := h.readInput(w, r)
		if err != nil {
			logFailure(logger, "Invalid create category input", err)
			response.Error(w, err)
			return
		}

		category, err := h.categoryService.Create(r.Context(), input)
		if err != nil {
			logFailure(logger, "Failed to create category", err)
			response.Error(w, err)
			return
		}

		logger.Info("Category created successfully", slog.Int64("categoryId", category.ID))
		response.Created(w, "Thêm category thành công", category)
	}
}

// UpdateCategory godoc
//
//	@Summary	Update a category
//	@Tags		Categories
//	@Accept		json,x-www-form-urlencoded,mpfd
//	@Produce	json
//	@Param		id			path		int		true	"Category ID"
//	@Param		name		formData	string	false	"Category name"
//	@Param		images		formData	string	false	"Image URL"
//	@Param		sortOrder	formData	int		false	"Sort order"
//	@Param		imageFile	formData	file	false	"Image upload"
//	@Success	200			{object}	response.APIResponse{body=models.Category}
//	@Failure	400			{object}	response.APIResponse
//	@Failure	404			{object}	response.APIResponse
//	@Router		/api/category/{id} [put]
func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.Int64("categoryId", id))

		if _, err := h.categoryService.FindByID(r.Context(), id); err != nil {
			logFailure(logger, "Failed to get category", err)
			response.Error(w, err)
			return
		}

		input, err := h.readInput(w, r)
		if err != nil {
			logFailure(logger, "Invalid update category input", err)
			response.Error(w, err)
			return
		}

		category, err := h.categoryService.UpdateByID(r.Context(), id, input)
		if err != nil {
			logFailure(logger, "Failed to update category", err)
			response.Error(w, err)
			return
		}

		logger.Info("Category updated successfully")
		response.Success(w, "Cập nhật category thành công", category)
	}
}

// DeleteCategory godoc
//
//	@Summary		Delete a category
//	@Description	Products of the category are kept without a category.
//	@Tags			Categories
//	@Produce		json
//	@Param			id	path		int	true	"Category ID"
//	@Success		200	{object}	response.APIResponse
//	@Failure		404	{object}	response.APIResponse
//	@Router			/api/category/{id} [delete]
func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if _, err := h.categoryService.FindByID(r.Context(), id); err != nil {
			logFailure(logger, "Failed to get category", err)
			response.Error(w, err)
			return
		}

		if err := h.categoryService.DeleteByID(r.Context(), id); err != nil {
			logFailure(logger, "Failed to delete category", err)
			response.Error(w, err)
			return
		}

		logger.Info("Category deleted successfully", slog.Int64("categoryId", id))
		response.Success(w, "Xóa category thành công", nil)
	}
}

func (h *CategoryHandler) readInput(w http.ResponseWriter, r *http.Request) (*models.CategoryInput, error) {
	form, err := parseBody(w, r, h.maxUploadBytes)
	if err != nil {
		return nil, err
	}

	input := &models.CategoryInput{
		Name:      form.String("name"),
		SortOrder: form.Int("sortOrder"),
	}

	if err := form.Err(); err != nil {
		return nil, err
	}

	input.Images, err = utils.StoreUpload(h.storage, form, "imageFile", "images", storage.CategoryPrefix)
	if err != nil {
		return nil, err
	}

	return input, nil
}
