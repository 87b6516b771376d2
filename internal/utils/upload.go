package utils

import (
	"net/http"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
)

// StoreUpload saves the file under field, if any, and returns its public URL.
// Otherwise the plain value of fallbackField is returned, which may be nil.
func StoreUpload(store storage.Storage, form *Form, field, fallbackField, prefix string) (*string, error) {
	file := form.File(field)
	if file == nil {
		return form.String(fallbackField), nil
	}

	filename, err := store.Store(file, prefix)
	if err != nil {
		if appErr, ok := appErrors.IsAppError(err); ok && appErr.StatusCode == http.StatusBadRequest {
			return nil, appErrors.FieldError(field, "Lỗi upload ảnh: "+appErr.Message).WithError(err)
		}

		return nil, err
	}

	url := store.URL(filename)

	return &url, nil
}
