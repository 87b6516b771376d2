package handlers

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
)

type UploadHandler struct {
	storage storage.Storage
}

func NewUploadHandler(store storage.Storage) *UploadHandler {
	return &UploadHandler{storage: store}
}

// ServeUpload streams a stored image. Names with separators or ".." are
// rejected before touching the filesystem.
func (h *UploadHandler) ServeUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		filename := r.PathValue("filename")

		if !storage.ValidName(filename) {
			logger.Warn("Rejected upload path", slog.String("filename", filename))
			http.NotFound(w, r)
			return
		}

		file, err := h.storage.Open(filename)
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}

			logger.Error("Failed to open upload", slog.String("filename", filename), slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		contentType, err := h.storage.ContentType(filename)
		if err != nil || !storage.IsImage(contentType) {
			// files that predate the image check are never rendered inline
			contentType = "application/octet-stream"
			w.Header().Set("Content-Disposition", "attachment")
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")

		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeContent(w, r, filename, info.ModTime(), file)
	}
}
