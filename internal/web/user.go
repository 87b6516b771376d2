package web

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
)

const usersPath = "/users"

func (h *Handler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		query, pageable := readListQuery(r, usersPath, "id")

		result, err := h.userService.SearchByName(r.Context(), query.Keyword, pageable)
		if err != nil {
			if appErrors.IsValidation(err) {
				redirect(w, r, usersPath, errorFlash(err.Error()))
				return
			}

			logger.Error("Failed to list users", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

			return
		}

		h.render(w, r, http.StatusOK, "users_list", page{
			Title:  "Quản lý User",
			Active: "users",
			Data:   newListView(result, query),
		})
	}
}

func (h *Handler) NewUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderUserForm(w, r, http.StatusOK, formView[*models.User]{Item: &models.User{}})
	}
}

func (h *Handler) EditUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.lookupUser(w, r)
		if !ok {
			return
		}

		h.renderUserForm(w, r, http.StatusOK, formView[*models.User]{IsEdit: true, Item: user})
	}
}

func (h *Handler) ViewUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.lookupUser(w, r)
		if !ok {
			return
		}

		h.render(w, r, http.StatusOK, "users_view", page{Title: user.Fullname, Active: "users", Data: user})
	}
}

func (h *Handler) SaveUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

		form, err := utils.ParseForm(r, h.cfg.MaxUploadBytes)
		if err != nil {
			redirect(w, r, usersPath, errorFlash("Lỗi khi lưu user: "+err.Error()))
			return
		}

		id := form.Int64("id")
		input := &models.UserInput{
			Fullname:    form.String("fullname"),
			Email:       form.String("email"),
			Password:    form.String("password"),
			Phone:       form.String("phone"),
			CategoryIDs: form.Int64List("categoryIds"),
		}

		view := formView[*models.User]{IsEdit: id != nil, Item: userFromInput(id, input)}

		if err := form.Err(); err != nil {
			view.Errors, view.Error, _ = formErrors(err)
			h.renderUserForm(w, r, http.StatusBadRequest, view)

			return
		}

		var message string
		if id == nil {
			_, err = h.userService.Create(r.Context(), input)
			message = "Tạo user thành công!"
		} else {
			_, err = h.userService.UpdateByID(r.Context(), *id, input)
			message = "Cập nhật user thành công!"
		}

		if err != nil {
			if fields, general, ok := formErrors(err); ok {
				view.Errors, view.Error = fields, general
				h.renderUserForm(w, r, http.StatusBadRequest, view)

				return
			}

			if appErrors.IsNotFound(err) {
				redirect(w, r, usersPath, errorFlash("User không tồn tại!"))
				return
			}

			logger.Error("Failed to save user", slog.Any("error", err))
			redirect(w, r, usersPath, errorFlash("Lỗi khi lưu user: "+err.Error()))

			return
		}

		redirect(w, r, usersPath, successFlash(message))
	}
}

func (h *Handler) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			redirect(w, r, usersPath, errorFlash(err.Error()))
			return
		}

		if _, err := h.userService.FindByID(r.Context(), id); err != nil {
			if appErrors.IsNotFound(err) {
				redirect(w, r, usersPath, errorFlash("User không tồn tại!"))
				return
			}

			redirect(w, r, usersPath, errorFlash("Lỗi khi xóa user: "+err.Error()))

			return
		}

		if err := h.userService.DeleteByID(r.Context(), id); err != nil {
			logger.Error("Failed to delete user", slog.Int64("userId", id), slog.Any("error", err))
			redirect(w, r, usersPath, errorFlash("Lỗi khi xóa user: "+err.Error()))

			return
		}

		redirect(w, r, usersPath, successFlash("Xóa user thành công!"))
	}
}

func (h *Handler) lookupUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		redirect(w, r, usersPath, errorFlash(err.Error()))
		return nil, false
	}

	user, err := h.userService.FindByID(r.Context(), id)
	if err != nil {
		redirect(w, r, usersPath, errorFlash(err.Error()))
		return nil, false
	}

	return user, true
}

func (h *Handler) renderUserForm(w http.ResponseWriter, r *http.Request, status int, view formView[*models.User]) {
	categories, err := h.categoryService.FindAll(r.Context())
	if err != nil {
		middleware.LoggerFromContext(r.Context()).Error("Failed to load categories", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	view.Categories = categories

	title := "Thêm user"
	if view.IsEdit {
		title = "Sửa user"
	}

	h.render(w, r, status, "users_form", page{Title: title, Active: "users", Data: view})
}

// userFromInput never carries the password back into the form.
func userFromInput(id *int64, input *models.UserInput) *models.User {
	u := &models.User{}
	if id != nil {
		u.ID = *id
	}

	if input.Fullname != nil {
		u.Fullname = *input.Fullname
	}

	if input.Email != nil {
		u.Email = *input.Email
	}

	if input.Phone != nil {
		u.Phone = *input.Phone
	}

	if input.CategoryIDs != nil {
		for _, cid := range *input.CategoryIDs {
			u.Categories = append(u.Categories, models.Category{ID: cid})
		}
	}

	return u
}
