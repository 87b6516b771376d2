package web

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
)

const categoriesPath = "/categories"

func (h *Handler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		query, pageable := readListQuery(r, categoriesPath, "id")

		result, err := h.categoryService.SearchByName(r.Context(), query.Keyword, pageable)
		if err != nil {
			if appErrors.IsValidation(err) {
				redirect(w, r, categoriesPath, errorFlash(err.Error()))
				return
			}

			logger.Error("Failed to list categories", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

			return
		}

		h.render(w, r, http.StatusOK, "categories_list", page{
			Title:  "Quản lý Category",
			Active: "categories",
			Data:   newListView(result, query),
		})
	}
}

func (h *Handler) NewCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderCategoryForm(w, r, http.StatusOK, formView[*models.Category]{Item: &models.Category{}})
	}
}

func (h *Handler) EditCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := h.lookupCategory(w, r)
		if !ok {
			return
		}

		h.renderCategoryForm(w, r, http.StatusOK, formView[*models.Category]{IsEdit: true, Item: category})
	}
}

func (h *Handler) ViewCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := h.lookupCategory(w, r)
		if !ok {
			return
		}

		h.render(w, r, http.StatusOK, "categories_view", page{Title: category.Name, Active: "categories", Data: category})
	}
}

func (h *Handler) SaveCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

		form, err := utils.ParseForm(r, h.cfg.MaxUploadBytes)
		if err != nil {
			redirect(w, r, categoriesPath, errorFlash("Lỗi khi lưu category: "+err.Error()))
			return
		}

		id := form.Int64("id")
		input := &models.CategoryInput{
			Name:      form.String("name"),
			SortOrder: form.Int("sortOrder"),
		}

		view := formView[*models.Category]{IsEdit: id != nil, Item: categoryFromInput(id, input)}

		if err := form.Err(); err != nil {
			view.Errors, view.Error, _ = formErrors(err)
			h.renderCategoryForm(w, r, http.StatusBadRequest, view)

			return
		}

		input.Images, err = utils.StoreUpload(h.storage, form, "imageFile", "images", storage.CategoryPrefix)
		if err != nil {
			view.Errors, view.Error, _ = formErrors(err)
			h.renderCategoryForm(w, r, http.StatusBadRequest, view)

			return
		}

		if input.Images != nil {
			view.Item.Images = *input.Images
		}

		var message string
		if id == nil {
			_, err = h.categoryService.Create(r.Context(), input)
			message = "Tạo category thành công!"
		} else {
			_, err = h.categoryService.UpdateByID(r.Context(), *id, input)
			message = "Cập nhật category thành công!"
		}

		if err != nil {
			if fields, general, ok := formErrors(err); ok {
				view.Errors, view.Error = fields, general
				h.renderCategoryForm(w, r, http.StatusBadRequest, view)

				return
			}

			logger.Error("Failed to save category", slog.Any("error", err))
			redirect(w, r, categoriesPath, errorFlash("Lỗi khi lưu category: "+err.Error()))

			return
		}

		redirect(w, r, categoriesPath, successFlash(message))
	}
}

func (h *Handler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			redirect(w, r, categoriesPath, errorFlash(err.Error()))
			return
		}

		if _, err := h.categoryService.FindByID(r.Context(), id); err != nil {
			if appErrors.IsNotFound(err) {
				redirect(w, r, categoriesPath, errorFlash("Category không tồn tại!"))
				return
			}

			redirect(w, r, categoriesPath, errorFlash("Lỗi khi xóa category: "+err.Error()))

			return
		}

		if err := h.categoryService.DeleteByID(r.Context(), id); err != nil {
			logger.Error("Failed to delete category", slog.Int64("categoryId", id), slog.Any("error", err))
			redirect(w, r, categoriesPath, errorFlash("Lỗi khi xóa category: "+err.Error()))

			return
		}

		redirect(w, r, categoriesPath, successFlash("Xóa category thành công!"))
	}
}

func (h *Handler) lookupCategory(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		redirect(w, r, categoriesPath, errorFlash(err.Error()))
		return nil, false
	}

	category, err := h.categoryService.FindByID(r.Context(), id)
	if err != nil {
		redirect(w, r, categoriesPath, errorFlash(err.Error()))
		return nil, false
	}

	return category, true
}

func (h *Handler) renderCategoryForm(w http.ResponseWriter, r *http.Request, status int, view formView[*models.Category]) {
	title := "Thêm category"
	if view.IsEdit {
		title = "Sửa category"
	}

	h.render(w, r, status, "categories_form", page{Title: title, Active: "categories", Data: view})
}

func categoryFromInput(id *int64, input *models.CategoryInput) *models.Category {
	c := &models.Category{}
	if id != nil {
		c.ID = *id
	}

	if input.Name != nil {
		c.Name = *input.Name
	}

	if input.SortOrder != nil {
		c.SortOrder = *input.SortOrder
	}

	return c
}
