package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
)

func DecodeJSONBody(r *http.Request, dest any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("Failed to read request body",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)
		return fmt.Errorf("failed to read request body: %w", err)
	}

	defer r.Body.Close()

	if len(body) == 0 {
		slog.Warn("Empty request body", slog.String("endpoint", r.URL.Path))
		return errors.New("request body cannot be empty")
	}

	if err := json.Unmarshal(body, dest); err != nil {
		slog.Warn("Failed to parse request JSON",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

// PathID reads a numeric path wildcard such as {id}.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)

	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, appErrors.FieldError(name, "ID không hợp lệ: "+raw).WithError(err)
	}

	return id, nil
}

// QueryInt falls back to def for a missing or malformed parameter.
func QueryInt(r *http.Request, key string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return v
}

// QueryInt64Ptr returns nil for a missing or malformed parameter.
func QueryInt64Ptr(r *http.Request, key string) *int64 {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}

	return &v
}

// PageableFromQuery reads page, size, sortBy and sortDir. Out of range values
// are clamped by models.NewPageable.
func PageableFromQuery(r *http.Request, defaultSize int) models.Pageable {
	q := r.URL.Query()
	pageable := models.NewPageable(QueryInt(r, "page", 0), QueryInt(r, "size", defaultSize))

	return pageable.WithSort(q.Get("sortBy"), models.ParseDirection(q.Get("sortDir")))
}
