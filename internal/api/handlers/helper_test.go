package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
	"github.com/aaravmahajanofficial/catalog-admin/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const maxUploadBytes = 1 << 20

// 1x1 transparent PNG
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

type envelope struct {
	Status        string          `json:"status"`
	Message       string          `json:"message"`
	Body          json.RawMessage `json:"body"`
	Field         string          `json:"field"`
	TotalElements *int64          `json:"totalElements"`
	TotalPages    *int            `json:"totalPages"`
	CurrentPage   *int            `json:"currentPage"`
	PageSize      *int            `json:"pageSize"`
}

func newTestRequest(method, target string, body io.Reader) *http.Request {
	return testutils.NewRequest(method, target, body, nil)
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req := newTestRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	return req
}

// multipartRequest writes fields first and then one file part per entry of files.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	for field, filename := range files {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(pngBytes)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	req := newTestRequest(method, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))

	return env
}

func newMemStorage(t *testing.T) (*storage.FileSystemStorage, afero.Fs) {
	t.Helper()

	return testutils.NewMemStorage(t)
}
