package web_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aaravmahajanofficial/catalog-admin/internal/services/mocks"
	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
	"github.com/aaravmahajanofficial/catalog-admin/internal/testutils"
	"github.com/aaravmahajanofficial/catalog-admin/internal/web"
)

const lowStockThreshold = 5

type fixture struct {
	categories *mocks.CategoryService
	products   *mocks.ProductService
	users      *mocks.UserService
	store      *storage.FileSystemStorage
	mux        *http.ServeMux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, _ := testutils.NewMemStorage(t)

	f := &fixture{
		categories: new(mocks.CategoryService),
		products:   new(mocks.ProductService),
		users:      new(mocks.UserService),
		store:      store,
		mux:        http.NewServeMux(),
	}

	h, err := web.NewHandler(f.categories, f.products, f.users, f.store, web.Config{
		MaxUploadBytes:    1 << 20,
		LowStockThreshold: lowStockThreshold,
	})
	require.NoError(t, err)

	h.Register(f.mux)

	t.Cleanup(func() {
		f.categories.AssertExpectations(t)
		f.products.AssertExpectations(t)
		f.users.AssertExpectations(t)
	})

	return f
}

func (f *fixture) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	return rec
}

func (f *fixture) get(target string) *httptest.ResponseRecorder {
	return f.serve(httptest.NewRequest(http.MethodGet, target, nil))
}

func (f *fixture) postForm(target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return f.serve(req)
}

func (f *fixture) postMultipart(t *testing.T, target string, values url.Values, fileField, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer

	w := multipart.NewWriter(&body)
	for k, list := range values {
		for _, v := range list {
			require.NoError(t, w.WriteField(k, v))
		}
	}

	part, err := w.CreateFormFile(fileField, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return f.serve(req)
}

// followFlash replays the flash cookie of a redirect and returns the message
// the next page renders.
func (f *fixture) followFlash(t *testing.T, rec *httptest.ResponseRecorder, target string) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	next := f.serve(req)
	require.Equal(t, http.StatusOK, next.Code)

	return next.Body.String()
}

func newPost(target string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}
