package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
)

// listQuery is the state a list page keeps in its links.
type listQuery struct {
	Path    string
	Keyword string
	SortBy  string
	SortDir string
	Size    int
	Extra   url.Values
}

// readListQuery accepts "search" as an alias of "keyword".
func readListQuery(r *http.Request, path, defaultSort string) (listQuery, models.Pageable) {
	q := r.URL.Query()

	keyword := q.Get("keyword")
	if strings.TrimSpace(keyword) == "" {
		keyword = q.Get("search")
	}

	sortBy := strings.TrimSpace(q.Get("sortBy"))
	if sortBy == "" {
		sortBy = defaultSort
	}

	sortDir := "desc"
	if strings.EqualFold(q.Get("sortDir"), "asc") {
		sortDir = "asc"
	}

	pageable := models.NewPageable(utils.QueryInt(r, "page", 0), utils.QueryInt(r, "size", models.DefaultPageSize)).
		WithSort(sortBy, models.ParseDirection(sortDir))

	return listQuery{
		Path:    path,
		Keyword: strings.TrimSpace(keyword),
		SortBy:  sortBy,
		SortDir: sortDir,
		Size:    pageable.Size,
		Extra:   url.Values{},
	}, pageable
}

func (l listQuery) url(page int, sortBy, sortDir string) string {
	v := url.Values{}
	for k, list := range l.Extra {
		v[k] = list
	}

	if l.Keyword != "" {
		v.Set("keyword", l.Keyword)
	}

	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(l.Size))
	v.Set("sortBy", sortBy)
	v.Set("sortDir", sortDir)

	return l.Path + "?" + v.Encode()
}

type listView[T any] struct {
	Items []T
	Page  *models.Page[T]
	Query listQuery
}

func newListView[T any](p *models.Page[T], q listQuery) listView[T] {
	return listView[T]{Items: p.Content, Page: p, Query: q}
}

func (v listView[T]) PageURL(n int) string {
	return v.Query.url(n, v.Query.SortBy, v.Query.SortDir)
}

// SortURL flips the direction when field is already the sort column.
func (v listView[T]) SortURL(field string) string {
	dir := models.Asc
	if field == v.Query.SortBy {
		dir = models.ParseDirection(v.Query.SortDir).Reverse()
	}

	return v.Query.url(0, field, strings.ToLower(string(dir)))
}

func (v listView[T]) PageNumbers() []int {
	n := make([]int, v.Page.TotalPages)
	for i := range n {
		n[i] = i
	}

	return n
}

// formView backs every create/edit page. Errors holds per-field messages and
// Error a message that belongs to no single field.
type formView[T any] struct {
	IsEdit     bool
	Item       T
	Errors     map[string]string
	Error      string
	Categories []*models.Category
	Users      []*models.User
}

// formErrors splits a client error into field messages and a general message.
// ok is false for anything that should not be shown on the form.
func formErrors(err error) (fields map[string]string, general string, ok bool) {
	appErr, isApp := appErrors.IsAppError(err)
	if !isApp || appErr.StatusCode != http.StatusBadRequest {
		return nil, "", false
	}

	if appErr.Field != "" {
		return map[string]string{appErr.Field: appErr.Message}, "", true
	}

	return map[string]string{}, appErr.Message, true
}
