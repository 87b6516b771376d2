package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
)

// PNG is the signature and header chunk of a 1x1 PNG, enough for content sniffing.
var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

// NewRequest builds a request whose context carries a discarding logger, the
// way the Logging middleware would, plus any path values.
func NewRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}

// NewMemStorage returns an initialised upload store on an in-memory fs that
// publishes files under /uploads.
func NewMemStorage(t *testing.T) (*storage.FileSystemStorage, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	store := storage.NewFileSystemStorage(fs, "uploads", "/uploads")
	require.NoError(t, store.Init())

	return store, fs
}
