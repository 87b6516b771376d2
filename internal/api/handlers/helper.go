package handlers

import (
	"log/slog"
	"net/http"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
)

// parseBody caps the body size and decodes it into a Form.
func parseBody(w http.ResponseWriter, r *http.Request, maxUploadBytes int64) (*utils.Form, error) {
	if maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	}

	return utils.ParseForm(r, maxUploadBytes)
}

func logFailure(logger *slog.Logger, message string, err error) {
	if appErrors.IsValidation(err) || appErrors.IsNotFound(err) || appErrors.IsCode(err, appErrors.ErrCodeBadRequest) {
		logger.Warn(message, slog.String("error", err.Error()))
		return
	}

	logger.Error(message, slog.Any("error", err))
}
