package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	service "github.com/aaravmahajanofficial/catalog-admin/internal/services"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils/response"
)

type UserHandler struct {
	userService    service.UserService
	maxUploadBytes int64
}

func NewUserHandler(userService service.UserService, maxUploadBytes int64) *UserHandler {
	return &UserHandler{userService: userService, maxUploadBytes: maxUploadBytes}
}

// ListUsers godoc
//
//	@Summary		List users
//	@Description	Returns a page of users, optionally filtered by a case-insensitive fullname match.
//	@Tags			Users
//	@Produce		json
//	@Param			q		query		string	false	"Search keyword"
//	@Param			page	query		int		false	"Page number (0-based)"	default(0)
//	@Param			size	query		int		false	"Page size"				default(10)
//	@Success		200		{object}	response.APIResponse{body=models.Page[models.User]}
//	@Failure		500		{object}	response.APIResponse
//	@Router			/api/user [get]
func (h *UserHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		pageable := utils.PageableFromQuery(r, models.DefaultPageSize)

		page, err := h.userService.SearchByName(r.Context(), r.URL.Query().Get("q"), pageable)
		if err != nil {
			logFailure(logger, "Failed to list users", err)
			response.Error(w, err)
			return
		}

		response.Paged(w, "Lấy danh sách user thành công", page)
	}
}

// GetUser godoc
//
//	@Summary	Get a user by ID
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	response.APIResponse{body=models.User}
//	@Failure	400	{object}	response.APIResponse	"Invalid ID"
//	@Failure	404	{object}	response.APIResponse	"User not found"
//	@Router		/api/user/{id} [get]
func (h *UserHandler) GetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			logger.Warn("Invalid user id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		user, err := h.userService.FindByID(r.Context(), id)
		if err != nil {
			logFailure(logger, "Failed to get user", err)
			response.Error(w, err)
			return
		}

		response.Success(w, "Lấy thông tin user thành công", user)
	}
}

// CreateUser godoc
//
//	@Summary	Create a user
//	@Tags		Users
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		fullname	formData	string	true	"Full name"
//	@Param		email		formData	string	true	"Email"
//	@Param		password	formData	string	true	"Password"
//	@Param		phone		formData	string	false	"Phone"
//	@Param		categoryIds	formData	[]int	false	"Category IDs"	collectionFormat(multi)
//	@Success	201			{object}	response.APIResponse{body=models.User}
//	@Failure	400			{object}	response.APIResponse	"Validation error or duplicate email"
//	@Failure	500			{object}	response.APIResponse
//	@Router		/api/user [post]
func (h *UserHandler) CreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		input, err := h.readInput(w, r)
		if err != nil {
			logFailure(logger, "Invalid create user input", err)
			response.Error(w, err)
			return
		}

		user, err := h.userService.Create(r.Context(), input)
		if err != nil {
			logFailure(logger, "Failed to create user", err)
			response.Error(w, err)
			return
		}

		logger.Info("User created successfully", slog.Int64("userId", user.ID))
		response.Created(w, "Thêm user thành công", user)
	}
}

// UpdateUser godoc
//
//	@Summary		Update a user
//	@Description	A blank password keeps the current one. categoryIds, when sent, replaces the whole list.
//	@Tags			Users
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			id			path		int		true	"User ID"
//	@Param			fullname	formData	string	false	"Full name"
//	@Param			email		formData	string	false	"Email"
//	@Param			password	formData	string	false	"Password"
//	@Param			phone		formData	string	false	"Phone"
//	@Param			categoryIds	formData	[]int	false	"Category IDs"	collectionFormat(multi)
//	@Success		200			{object}	response.APIResponse{body=models.User}
//	@Failure		400			{object}	response.APIResponse
//	@Failure		404			{object}	response.APIResponse
//	@Router			/api/user/{id} [put]
func (h *UserHandler) UpdateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			logger.Warn("Invalid user id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.Int64("userId", id))

		if _, err := h.userService.FindByID(r.Context(), id); err != nil {
			logFailure(logger, "Failed to get user", err)
			response.Error(w, err)
			return
		}

		input, err := h.readInput(w, r)
		if err != nil {
			logFailure(logger, "Invalid update user input", err)
			response.Error(w, err)
			return
		}

		user, err := h.userService.UpdateByID(r.Context(), id, input)
		if err != nil {
			logFailure(logger, "Failed to update user", err)
			response.Error(w, err)
			return
		}

		logger.Info("User updated successfully")
		response.Success(w, "Cập nhật user thành công", user)
	}
}

// DeleteUser godoc
//
//	@Summary		Delete a user
//	@Description	The user's products are deleted with it.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		int	true	"User ID"
//	@Success		200	{object}	response.APIResponse
//	@Failure		404	{object}	response.APIResponse
//	@Router			/api/user/{id} [delete]
func (h *UserHandler) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			logger.Warn("Invalid user id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if _, err := h.userService.FindByID(r.Context(), id); err != nil {
			logFailure(logger, "Failed to get user", err)
			response.Error(w, err)
			return
		}

		if err := h.userService.DeleteByID(r.Context(), id); err != nil {
			logFailure(logger, "Failed to delete user", err)
			response.Error(w, err)
			return
		}

		logger.Info("User deleted successfully", slog.Int64("userId", id))
		response.Success(w, "Xóa user thành công", nil)
	}
}

func (h *UserHandler) readInput(w http.ResponseWriter, r *http.Request) (*models.UserInput, error) {
	form, err := parseBody(w, r, h.maxUploadBytes)
	if err != nil {
		return nil, err
	}

	input := &models.UserInput{
		Fullname:    form.String("fullname"),
		Email:       form.String("email"),
		Password:    form.String("password"),
		Phone:       form.String("phone"),
		CategoryIDs: form.Int64List("categoryIds"),
	}

	if err := form.Err(); err != nil {
		return nil, err
	}

	return input, nil
}
