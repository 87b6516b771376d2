package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
)

const productsPath = "/products"

// productList adds the category filter to the generic list view.
type productList struct {
	listView[*models.Product]
	CategoryID *int64
	Categories []*models.Category
}

// Selected reports whether id is the active category filter.
func (p productList) Selected(id int64) bool {
	return p.CategoryID != nil && *p.CategoryID == id
}

func (h *Handler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		query, pageable := readListQuery(r, productsPath, "createDate")

		categoryID := utils.QueryInt64Ptr(r, "categoryId")
		if categoryID != nil {
			query.Extra.Set("categoryId", strconv.FormatInt(*categoryID, 10))
		}

		result, err := h.productService.SearchByNameAndCategory(r.Context(), query.Keyword, categoryID, pageable)
		if err != nil {
			if appErrors.IsValidation(err) {
				redirect(w, r, productsPath, errorFlash(err.Error()))
				return
			}

			logger.Error("Failed to list products", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

			return
		}

		categories, err := h.categoryService.FindAll(r.Context())
		if err != nil {
			logger.Error("Failed to load categories", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

			return
		}

		h.render(w, r, http.StatusOK, "products_list", page{
			Title:  "Quản lý Sản phẩm",
			Active: "products",
			Data: productList{
				listView:   newListView(result, query),
				CategoryID: categoryID,
				Categories: categories,
			},
		})
	}
}

func (h *Handler) NewProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderProductForm(w, r, http.StatusOK, formView[*models.Product]{Item: &models.Product{Status: true}})
	}
}

func (h *Handler) EditProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, ok := h.lookupProduct(w, r)
		if !ok {
			return
		}

		h.renderProductForm(w, r, http.StatusOK, formView[*models.Product]{IsEdit: true, Item: product})
	}
}

func (h *Handler) ViewProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, ok := h.lookupProduct(w, r)
		if !ok {
			return
		}

		h.render(w, r, http.StatusOK, "products_view", page{Title: product.Title, Active: "products", Data: product})
	}
}

func (h *Handler) SaveProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

		form, err := utils.ParseForm(r, h.cfg.MaxUploadBytes)
		if err != nil {
			redirect(w, r, productsPath, errorFlash("Lỗi khi lưu sản phẩm: "+err.Error()))
			return
		}

		id := form.Int64("id")
		input := &models.ProductInput{
			Title:       form.String("title"),
			Quantity:    form.Int("quantity"),
			Description: form.String("description"),
			Price:       form.Decimal("price"),
			Discount:    form.Int("discount"),
			Status:      form.Bool("status"),
			UserID:      form.Int64("userId"),
			CategoryID:  form.Int64("categoryId"),
		}

		// A missing status means the box was left unchecked.
		if input.Status == nil {
			inactive := false
			input.Status = &inactive
		}

		view := formView[*models.Product]{IsEdit: id != nil, Item: productFromInput(id, input)}

		if err := form.Err(); err != nil {
			view.Errors, view.Error, _ = formErrors(err)
			h.renderProductForm(w, r, http.StatusBadRequest, view)

			return
		}

		input.Images, err = utils.StoreUpload(h.storage, form, "imageFile", "images", storage.ProductPrefix)
		if err != nil {
			view.Errors, view.Error, _ = formErrors(err)
			h.renderProductForm(w, r, http.StatusBadRequest, view)

			return
		}

		if input.Images != nil {
			view.Item.Images = *input.Images
		}

		var message string
		if id == nil {
			_, err = h.productService.Create(r.Context(), input)
			message = "Thêm sản phẩm thành công!"
		} else {
			_, err = h.productService.UpdateByID(r.Context(), *id, input)
			message = "Cập nhật sản phẩm thành công!"
		}

		if err != nil {
			if fields, general, ok := formErrors(err); ok {
				view.Errors, view.Error = fields, general
				h.renderProductForm(w, r, http.StatusBadRequest, view)

				return
			}

			logger.Error("Failed to save product", slog.Any("error", err))
			redirect(w, r, productsPath, errorFlash("Lỗi khi lưu sản phẩm: "+err.Error()))

			return
		}

		redirect(w, r, productsPath, successFlash(message))
	}
}

func (h *Handler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			redirect(w, r, productsPath, errorFlash(err.Error()))
			return
		}

		if _, err := h.productService.FindByID(r.Context(), id); err != nil {
			if appErrors.IsNotFound(err) {
				redirect(w, r, productsPath, errorFlash("Sản phẩm không tồn tại!"))
				return
			}

			redirect(w, r, productsPath, errorFlash("Lỗi khi xóa sản phẩm: "+err.Error()))

			return
		}

		if err := h.productService.DeleteByID(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.Int64("productId", id), slog.Any("error", err))
			redirect(w, r, productsPath, errorFlash("Lỗi khi xóa sản phẩm: "+err.Error()))

			return
		}

		redirect(w, r, productsPath, successFlash("Xóa sản phẩm thành công!"))
	}
}

func (h *Handler) lookupProduct(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		redirect(w, r, productsPath, errorFlash(err.Error()))
		return nil, false
	}

	product, err := h.productService.FindByID(r.Context(), id)
	if err != nil {
		redirect(w, r, productsPath, errorFlash(err.Error()))
		return nil, false
	}

	return product, true
}

// renderProductForm loads the category and owner choices before rendering.
func (h *Handler) renderProductForm(w http.ResponseWriter, r *http.Request, status int, view formView[*models.Product]) {
	logger := middleware.LoggerFromContext(r.Context())

	categories, err := h.categoryService.FindAll(r.Context())
	if err != nil {
		logger.Error("Failed to load categories", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	users, err := h.userService.FindAll(r.Context())
	if err != nil {
		logger.Error("Failed to load users", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	view.Categories, view.Users = categories, users

	title := "Thêm sản phẩm"
	if view.IsEdit {
		title = "Sửa sản phẩm"
	}

	h.render(w, r, status, "products_form", page{Title: title, Active: "products", Data: view})
}

func productFromInput(id *int64, input *models.ProductInput) *models.Product {
	p := &models.Product{CategoryID: input.CategoryID}
	if id != nil {
		p.ID = *id
	}

	if input.Title != nil {
		p.Title = *input.Title
	}

	if input.Quantity != nil {
		p.Quantity = *input.Quantity
	}

	if input.Description != nil {
		p.Description = *input.Description
	}

	if input.Price != nil {
		p.Price = *input.Price
	}

	if input.Discount != nil {
		p.Discount = *input.Discount
	}

	if input.Status != nil {
		p.Status = *input.Status
	}

	if input.UserID != nil {
		p.UserID = *input.UserID
	}

	return p
}
