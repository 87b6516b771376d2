package response

import (
	"encoding/json"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
)

const (
	StatusSuccess    = "success"
	StatusCreated    = "created"
	StatusError      = "error"
	StatusBadRequest = "bad_request"
	StatusNotFound   = "not_found"
	StatusTooMany    = "too_many_requests"
)

// APIResponse is the envelope every REST endpoint answers with. The pagination
// fields are only present on list responses.
type APIResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Body          any    `json:"body,omitempty"`
	Field         string `json:"field,omitempty"`
	TotalElements *int64 `json:"totalElements,omitempty"`
	TotalPages    *int   `json:"totalPages,omitempty"`
	CurrentPage   *int   `json:"currentPage,omitempty"`
	PageSize      *int   `json:"pageSize,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, message string, body any) {
	WriteJson(w, http.StatusOK, APIResponse{Status: StatusSuccess, Message: message, Body: body})
}

func Created(w http.ResponseWriter, message string, body any) {
	WriteJson(w, http.StatusCreated, APIResponse{Status: StatusCreated, Message: message, Body: body})
}

func Paged[T any](w http.ResponseWriter, message string, page *models.Page[T]) {
	WriteJson(w, http.StatusOK, APIResponse{
		Status:        StatusSuccess,
		Message:       message,
		Body:          page,
		TotalElements: &page.TotalElements,
		TotalPages:    &page.TotalPages,
		CurrentPage:   &page.Number,
		PageSize:      &page.Size,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteJson(w, http.StatusBadRequest, APIResponse{Status: StatusBadRequest, Message: message})
}

func TooManyRequests(w http.ResponseWriter, message string) {
	WriteJson(w, http.StatusTooManyRequests, APIResponse{Status: StatusTooMany, Message: message})
}

// Error renders err with the status its AppError code implies. Anything that is
// not a client error is reported as a server error.
func Error(w http.ResponseWriter, err error) {
	appErr, ok := errors.IsAppError(err)
	if !ok {
		WriteJson(w, http.StatusInternalServerError, APIResponse{
			Status:  StatusError,
			Message: "Lỗi server: " + err.Error(),
		})

		return
	}

	switch {
	case appErr.Code == errors.ErrCodeNotFound:
		WriteJson(w, http.StatusNotFound, APIResponse{Status: StatusNotFound, Message: appErr.Message})
	case appErr.StatusCode == http.StatusBadRequest:
		WriteJson(w, http.StatusBadRequest, APIResponse{
			Status:  StatusBadRequest,
			Message: appErr.Message,
			Field:   appErr.Field,
		})
	default:
		WriteJson(w, http.StatusInternalServerError, APIResponse{
			Status:  StatusError,
			Message: "Lỗi server: " + appErr.Message,
		})
	}
}
