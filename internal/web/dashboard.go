package web

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
)

type dashboard struct {
	Categories        int64
	Users             int64
	Products          *models.ProductStats
	LowStockThreshold int
}

func (h *Handler) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		categories, err := h.categoryService.Count(r.Context())
		if err != nil {
			logger.Error("Failed to count categories", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

			return
		}

		users, err := h.userService.Count(r.Context())
		if err != nil {
			logger.Error("Failed to count users", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

			return
		}

		stats, err := h.productService.Stats(r.Context(), h.cfg.LowStockThreshold)
		if err != nil {
			logger.Error("Failed to compute product statistics", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

			return
		}

		h.render(w, r, http.StatusOK, "dashboard", page{
			Title:  "Dashboard",
			Active: "dashboard",
			Data: dashboard{
				Categories:        categories,
				Users:             users,
				Products:          stats,
				LowStockThreshold: h.cfg.LowStockThreshold,
			},
		})
	}
}
